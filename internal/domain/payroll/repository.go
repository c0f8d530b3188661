package payroll

import "context"

// SalaryInfoRepository persists compensation configs.
// Reads are scoped by companyID so one tenant cannot load another's records.
type SalaryInfoRepository interface {
	GetByEmployeeID(ctx context.Context, companyID, employeeID string) (SalaryInfo, error)
	Upsert(ctx context.Context, info SalaryInfo) (SalaryInfo, error)
}
