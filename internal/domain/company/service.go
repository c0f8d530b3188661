package company

import (
	"context"

	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/user"
)

type CompanyService interface {
	GetMyCompany(ctx context.Context, principal user.Principal) (CompanyResponse, error)
	UpdateMyCompany(ctx context.Context, principal user.Principal, req UpdateCompanyRequest) (CompanyResponse, error)
}
