package payroll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/employee"
	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/payroll"
	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/user"
	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/metrics"
)

type PayrollServiceImpl struct {
	salaryRepo   payroll.SalaryInfoRepository
	employeeRepo employee.EmployeeRepository
}

func NewPayrollService(
	salaryRepo payroll.SalaryInfoRepository,
	employeeRepo employee.EmployeeRepository,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		salaryRepo:   salaryRepo,
		employeeRepo: employeeRepo,
	}
}

func (s *PayrollServiceImpl) ensureEmployee(ctx context.Context, companyID, employeeID string) error {
	if _, err := s.employeeRepo.GetByID(ctx, companyID, employeeID); err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return payroll.ErrEmployeeNotFound
		}
		return fmt.Errorf("failed to get employee: %w", err)
	}
	return nil
}

// GetSalaryInfo implements payroll.PayrollService. The breakdown is recomputed on every read.
func (s *PayrollServiceImpl) GetSalaryInfo(ctx context.Context, principal user.Principal, employeeID string) (payroll.SalaryInfoResponse, error) {
	if !principal.CanAccessEmployee(employeeID) {
		return payroll.SalaryInfoResponse{}, payroll.ErrUnauthorized
	}
	if err := s.ensureEmployee(ctx, principal.CompanyID, employeeID); err != nil {
		return payroll.SalaryInfoResponse{}, err
	}

	info, err := s.salaryRepo.GetByEmployeeID(ctx, principal.CompanyID, employeeID)
	if err != nil {
		if errors.Is(err, payroll.ErrSalaryInfoNotFound) {
			return payroll.SalaryInfoResponse{}, err
		}
		return payroll.SalaryInfoResponse{}, fmt.Errorf("failed to get salary info: %w", err)
	}

	metrics.RecordBreakdown(info.Config.FixedAllowance != nil)
	return payroll.NewSalaryInfoResponse(info), nil
}

// UpsertSalaryInfo implements payroll.PayrollService.
func (s *PayrollServiceImpl) UpsertSalaryInfo(ctx context.Context, principal user.Principal, employeeID string, req payroll.UpsertSalaryInfoRequest) (payroll.SalaryInfoResponse, error) {
	if !principal.Can(user.PermissionSalaryManage) {
		return payroll.SalaryInfoResponse{}, payroll.ErrUnauthorized
	}
	if err := s.ensureEmployee(ctx, principal.CompanyID, employeeID); err != nil {
		return payroll.SalaryInfoResponse{}, err
	}

	base := payroll.DefaultCompensationConfig
	existing, err := s.salaryRepo.GetByEmployeeID(ctx, principal.CompanyID, employeeID)
	switch {
	case err == nil:
		base = existing.Config
	case !errors.Is(err, payroll.ErrSalaryInfoNotFound):
		return payroll.SalaryInfoResponse{}, fmt.Errorf("failed to get salary info: %w", err)
	}

	cfg := req.ApplyTo(base)
	saved, err := s.salaryRepo.Upsert(ctx, payroll.SalaryInfo{
		EmployeeID: employeeID,
		Config:     cfg,
		YearlyWage: payroll.YearlyWage(cfg.MonthlyWage),
	})
	if err != nil {
		if errors.Is(err, payroll.ErrEmployeeNotFound) {
			return payroll.SalaryInfoResponse{}, err
		}
		return payroll.SalaryInfoResponse{}, fmt.Errorf("failed to save salary info: %w", err)
	}

	slog.Info("Salary info saved", "employee_id", employeeID, "monthly_wage", cfg.MonthlyWage.String(), "updated_by", principal.UserID)
	metrics.RecordBreakdown(cfg.FixedAllowance != nil)
	return payroll.NewSalaryInfoResponse(saved), nil
}

// PreviewBreakdown implements payroll.PayrollService. Nothing is persisted.
func (s *PayrollServiceImpl) PreviewBreakdown(_ context.Context, req payroll.UpsertSalaryInfoRequest) (payroll.BreakdownResponse, error) {
	cfg := req.ApplyTo(payroll.DefaultCompensationConfig)
	metrics.RecordBreakdown(cfg.FixedAllowance != nil)
	return payroll.NewBreakdownResponse(cfg), nil
}
