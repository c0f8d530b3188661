package company

import "context"

type CompanyRepository interface {
	GetByID(ctx context.Context, id string) (Company, error)
	Create(ctx context.Context, newCompany Company) (Company, error)
	Update(ctx context.Context, id string, req UpdateCompanyRequest) (Company, error)
	// NextJoiningSerial atomically allocates the next hire serial for the company and year.
	NextJoiningSerial(ctx context.Context, companyID string, year int) (int, error)
}
