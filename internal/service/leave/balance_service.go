package leave

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/leave"
)

// BalanceService owns the yearly leave_balances rows. Rows are created lazily with
// the default entitlements the first time a year is touched.
type BalanceService struct {
	leave.LeaveBalanceRepository
}

func NewBalanceService(leaveBalanceRepository leave.LeaveBalanceRepository) *BalanceService {
	return &BalanceService{LeaveBalanceRepository: leaveBalanceRepository}
}

func (b *BalanceService) Get(ctx context.Context, employeeID string, year int) (leave.LeaveBalance, error) {
	balance, err := b.LeaveBalanceRepository.GetOrCreate(ctx, employeeID, year)
	if err != nil {
		if errors.Is(err, leave.ErrNoEmployeeProfile) {
			return leave.LeaveBalance{}, err
		}
		return leave.LeaveBalance{}, fmt.Errorf("failed to get leave balance: %w", err)
	}
	return balance, nil
}

// Consume deducts an approved request from the balance of its start year.
// Unpaid leave is recorded without touching the balance.
func (b *BalanceService) Consume(ctx context.Context, request leave.LeaveRequest) error {
	if !request.LeaveType.Deductible() {
		return nil
	}

	year := request.StartDate.Year()
	balance, err := b.Get(ctx, request.EmployeeID, year)
	if err != nil {
		return err
	}
	if !balance.CanCover(request.LeaveType, request.Allocation) {
		return leave.ErrInsufficientBalance
	}

	updated, err := b.LeaveBalanceRepository.Deduct(ctx, request.EmployeeID, year, request.LeaveType, request.Allocation)
	if err != nil {
		if errors.Is(err, leave.ErrInsufficientBalance) {
			return err
		}
		return fmt.Errorf("failed to deduct leave balance: %w", err)
	}

	slog.Info("Leave balance deducted",
		"employee_id", request.EmployeeID,
		"year", year,
		"leave_type", request.LeaveType,
		"days", request.Allocation,
		"remaining", updated.Available(request.LeaveType).String(),
	)
	return nil
}
