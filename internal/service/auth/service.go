package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/auth"
	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/company"
	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/employee"
	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/user"
	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/credential"
	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/database"
	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/jwt"
	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/metrics"
	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/validator"
	"github.com/dayflow-hr/dayflow-backend-go/internal/service/file"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	tx database.Transactor
	user.UserRepository
	company.CompanyRepository
	employee.EmployeeRepository
	jwt.Service
	auth.RefreshTokenRepository
	fileService file.FileService
	now         func() time.Time
}

func NewAuthService(
	tx database.Transactor,
	userRepository user.UserRepository,
	companyRepository company.CompanyRepository,
	employeeRepository employee.EmployeeRepository,
	jwtService jwt.Service,
	refreshTokenRepository auth.RefreshTokenRepository,
	fileService file.FileService,
) auth.AuthService {
	return &AuthServiceImpl{
		tx:                     tx,
		UserRepository:         userRepository,
		CompanyRepository:      companyRepository,
		EmployeeRepository:     employeeRepository,
		Service:                jwtService,
		RefreshTokenRepository: refreshTokenRepository,
		fileService:            fileService,
		now:                    time.Now,
	}
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// issueTokens creates an access/refresh pair and stores the refresh token hash.
func (a *AuthServiceImpl) issueTokens(ctx context.Context, principal user.Principal, session auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	var tokenResponse auth.TokenResponse
	var err error

	tokenResponse.AccessToken, tokenResponse.AccessTokenExpiresIn, err = a.Service.GenerateAccessToken(principal)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}
	tokenResponse.RefreshToken, tokenResponse.RefreshTokenExpiresIn, err = a.Service.GenerateRefreshToken(principal.UserID)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create refresh token: %w", err)
	}

	err = a.CreateRefreshToken(ctx, principal.UserID, tokenResponse.RefreshToken, tokenResponse.RefreshTokenExpiresIn, session)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to save refresh token to database: %w", err)
	}
	return tokenResponse, nil
}

// Register implements auth.AuthService.
func (a *AuthServiceImpl) Register(ctx context.Context, req auth.RegisterRequest, session auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	exists, err := a.UserRepository.ExistsByEmail(ctx, email)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return auth.TokenResponse{}, auth.ErrEmailAlreadyExists
	}

	prefix := strings.ToUpper(strings.TrimSpace(req.CompanyPrefix))
	if prefix == "" {
		prefix = credential.CompanyPrefix(req.CompanyName)
		if !validator.IsValidCompanyPrefix(prefix) {
			var errs validator.ValidationErrors
			errs.Add("company_prefix", "company_prefix is required when the company name has fewer than 2 letters")
			return auth.TokenResponse{}, errs
		}
	}

	hashedPassword, err := hashPassword(req.Password)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	now := a.now()
	var tokenResponse auth.TokenResponse
	var companyID string

	err = a.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		newCompany, err := a.CompanyRepository.Create(txCtx, company.Company{
			Name:   strings.TrimSpace(req.CompanyName),
			Prefix: prefix,
		})
		if err != nil {
			if errors.Is(err, company.ErrCompanyPrefixTaken) {
				return err
			}
			return fmt.Errorf("failed to create company: %w", err)
		}
		companyID = newCompany.ID

		newUser, err := a.UserRepository.Create(txCtx, user.User{
			CompanyID:    newCompany.ID,
			Email:        email,
			PasswordHash: hashedPassword,
			Role:         user.RoleAdmin,
		})
		if err != nil {
			if errors.Is(err, user.ErrUserEmailExists) {
				return auth.ErrEmailAlreadyExists
			}
			return fmt.Errorf("failed to create user: %w", err)
		}

		serial, err := a.CompanyRepository.NextJoiningSerial(txCtx, newCompany.ID, now.Year())
		if err != nil {
			return err
		}

		var phone *string
		if req.Phone != "" {
			phone = &req.Phone
		}
		admin, err := a.EmployeeRepository.Create(txCtx, employee.Employee{
			UserID:        newUser.ID,
			CompanyID:     newCompany.ID,
			LoginID:       credential.AdminLoginID(prefix),
			FirstName:     strings.TrimSpace(req.FirstName),
			LastName:      strings.TrimSpace(req.LastName),
			Email:         email,
			Phone:         phone,
			DateOfJoining: time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
			JoiningSerial: serial,
			JoiningYear:   now.Year(),
		})
		if err != nil {
			if errors.Is(err, employee.ErrLoginIDExists) {
				return company.ErrCompanyPrefixTaken
			}
			return fmt.Errorf("failed to create admin employee: %w", err)
		}

		newUser.EmployeeID = &admin.ID
		tokenResponse, err = a.issueTokens(txCtx, newUser.Principal(), session)
		return err
	})
	if err != nil {
		return auth.TokenResponse{}, err
	}

	if req.Logo != nil && req.LogoHeader != nil {
		logoURL, err := a.fileService.UploadCompanyLogo(ctx, companyID, req.Logo, req.LogoHeader.Filename)
		if err != nil {
			slog.Error("failed to upload company logo", "company_id", companyID, "error", err)
		} else if _, err := a.CompanyRepository.Update(ctx, companyID, company.UpdateCompanyRequest{LogoURL: &logoURL}); err != nil {
			slog.Error("failed to save company logo", "company_id", companyID, "error", err)
		}
	}

	return tokenResponse, nil
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest, session auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	identifier := strings.TrimSpace(req.Identifier)

	var userData user.User
	var err error
	if req.IsEmail() {
		userData, err = a.UserRepository.GetByEmail(ctx, identifier)
	} else {
		userData, err = a.UserRepository.GetByLoginID(ctx, strings.ToUpper(identifier))
	}
	if err != nil {
		metrics.RecordLogin(false)
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(userData.PasswordHash), []byte(req.Password)); err != nil {
		metrics.RecordLogin(false)
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	var tokenResponse auth.TokenResponse
	err = a.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		tokenResponse, err = a.issueTokens(txCtx, userData.Principal(), session)
		return err
	})
	if err != nil {
		return auth.TokenResponse{}, err
	}

	metrics.RecordLogin(true)
	return tokenResponse, nil
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(ctx context.Context, token string) error {
	return a.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		_, isRevoked, err := a.RefreshTokenRepository.IsRefreshTokenRevoked(txCtx, token)
		if err != nil {
			if errors.Is(err, auth.ErrInvalidToken) {
				return err
			}
			return fmt.Errorf("failed to check if refresh token is revoked: %w", err)
		}
		if !isRevoked {
			if err := a.RefreshTokenRepository.RevokeRefreshToken(txCtx, token); err != nil {
				return fmt.Errorf("failed to revoke refresh token: %w", err)
			}
		}
		return nil
	})
}

// RefreshToken implements auth.AuthService.
func (a *AuthServiceImpl) RefreshToken(ctx context.Context, req auth.RefreshTokenRequest) (auth.AccessTokenResponse, error) {
	var accessTokenResponse auth.AccessTokenResponse

	// 1. Verify signature, expiry and token type
	subject, err := a.Service.VerifyRefreshToken(req.RefreshToken)
	if err != nil {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}

	// 2. Check DB for revocation/expiry
	userID, isRevoked, err := a.RefreshTokenRepository.IsRefreshTokenRevoked(ctx, req.RefreshToken)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidToken) {
			return auth.AccessTokenResponse{}, err
		}
		return auth.AccessTokenResponse{}, fmt.Errorf("failed to check refresh token: %w", err)
	}
	if isRevoked {
		return auth.AccessTokenResponse{}, auth.ErrRefreshTokenRevoked
	}
	if userID != subject {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}

	// 3. Reload the user so role changes take effect
	userData, err := a.UserRepository.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.AccessTokenResponse{}, auth.ErrUserNotFound
		}
		return auth.AccessTokenResponse{}, fmt.Errorf("failed to get user: %w", err)
	}

	accessTokenResponse.AccessToken, accessTokenResponse.AccessTokenExpiresIn, err = a.Service.GenerateAccessToken(userData.Principal())
	if err != nil {
		return auth.AccessTokenResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	return accessTokenResponse, nil
}

// Me implements auth.AuthService.
func (a *AuthServiceImpl) Me(ctx context.Context, principal user.Principal) (auth.MeResponse, error) {
	userData, err := a.UserRepository.GetByID(ctx, principal.UserID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.MeResponse{}, auth.ErrUserNotFound
		}
		return auth.MeResponse{}, fmt.Errorf("failed to get user: %w", err)
	}

	companyData, err := a.CompanyRepository.GetByID(ctx, userData.CompanyID)
	if err != nil {
		if errors.Is(err, company.ErrCompanyNotFound) {
			return auth.MeResponse{}, auth.ErrCompanyNotFound
		}
		return auth.MeResponse{}, fmt.Errorf("failed to get company: %w", err)
	}

	resp := auth.MeResponse{
		User:    user.NewUserResponse(userData),
		Company: company.NewCompanyResponse(companyData),
	}

	employeeData, err := a.EmployeeRepository.GetByUserID(ctx, userData.ID)
	switch {
	case err == nil:
		emp := employee.NewEmployeeResponse(employeeData)
		resp.Employee = &emp
	case !errors.Is(err, employee.ErrEmployeeNotFound):
		return auth.MeResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	return resp, nil
}

// ChangePassword implements auth.AuthService. Every refresh token of the user is revoked.
func (a *AuthServiceImpl) ChangePassword(ctx context.Context, principal user.Principal, req auth.ChangePasswordRequest) error {
	userData, err := a.UserRepository.GetByID(ctx, principal.UserID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.ErrUserNotFound
		}
		return fmt.Errorf("failed to get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(userData.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return auth.ErrIncorrectPassword
	}

	hashedPassword, err := hashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return a.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		if err := a.UserRepository.UpdatePassword(txCtx, userData.ID, hashedPassword); err != nil {
			return fmt.Errorf("failed to update password: %w", err)
		}
		if err := a.RefreshTokenRepository.RevokeAllForUser(txCtx, userData.ID); err != nil {
			return fmt.Errorf("failed to revoke refresh tokens: %w", err)
		}
		return nil
	})
}
