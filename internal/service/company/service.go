package company

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/company"
	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/user"
	"github.com/dayflow-hr/dayflow-backend-go/internal/service/file"
)

type CompanyServiceImpl struct {
	company.CompanyRepository
	fileService file.FileService
}

func NewCompanyService(companyRepository company.CompanyRepository, fileService file.FileService) company.CompanyService {
	return &CompanyServiceImpl{
		CompanyRepository: companyRepository,
		fileService:       fileService,
	}
}

// GetMyCompany implements company.CompanyService.
func (c *CompanyServiceImpl) GetMyCompany(ctx context.Context, principal user.Principal) (company.CompanyResponse, error) {
	companyData, err := c.CompanyRepository.GetByID(ctx, principal.CompanyID)
	if err != nil {
		if errors.Is(err, company.ErrCompanyNotFound) {
			return company.CompanyResponse{}, err
		}
		return company.CompanyResponse{}, fmt.Errorf("failed to get company by ID: %w", err)
	}
	return company.NewCompanyResponse(companyData), nil
}

// UpdateMyCompany implements company.CompanyService. A replaced logo is removed from storage.
func (c *CompanyServiceImpl) UpdateMyCompany(ctx context.Context, principal user.Principal, req company.UpdateCompanyRequest) (company.CompanyResponse, error) {
	if !principal.Can(user.PermissionCompanyManage) {
		return company.CompanyResponse{}, user.ErrAdminPrivilegeRequired
	}

	current, err := c.CompanyRepository.GetByID(ctx, principal.CompanyID)
	if err != nil {
		if errors.Is(err, company.ErrCompanyNotFound) {
			return company.CompanyResponse{}, err
		}
		return company.CompanyResponse{}, fmt.Errorf("failed to get company by ID: %w", err)
	}

	if req.Logo != nil && req.LogoHeader != nil {
		logoURL, err := c.fileService.UploadCompanyLogo(ctx, current.ID, req.Logo, req.LogoHeader.Filename)
		if err != nil {
			return company.CompanyResponse{}, fmt.Errorf("failed to upload company logo: %w", err)
		}
		req.LogoURL = &logoURL
	}

	updated, err := c.CompanyRepository.Update(ctx, current.ID, req)
	if err != nil {
		if errors.Is(err, company.ErrCompanyNotFound) {
			return company.CompanyResponse{}, err
		}
		return company.CompanyResponse{}, fmt.Errorf("failed to update company: %w", err)
	}

	if req.LogoURL != nil && current.LogoURL != nil && *current.LogoURL != *req.LogoURL {
		if err := c.fileService.DeleteByURL(ctx, *current.LogoURL); err != nil {
			slog.Warn("failed to delete previous company logo", "company_id", current.ID, "error", err)
		}
	}

	return company.NewCompanyResponse(updated), nil
}
