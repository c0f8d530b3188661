package payroll

import (
	"context"

	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/user"
)

type PayrollService interface {
	GetSalaryInfo(ctx context.Context, principal user.Principal, employeeID string) (SalaryInfoResponse, error)
	UpsertSalaryInfo(ctx context.Context, principal user.Principal, employeeID string, req UpsertSalaryInfoRequest) (SalaryInfoResponse, error)
	PreviewBreakdown(ctx context.Context, req UpsertSalaryInfoRequest) (BreakdownResponse, error)
}
