package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/leave"
	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type leaveBalanceRepositoryImpl struct {
	db *database.DB
}

func NewLeaveBalanceRepository(db *database.DB) leave.LeaveBalanceRepository {
	return &leaveBalanceRepositoryImpl{db: db}
}

const leaveBalanceColumns = `id, employee_id, year, paid_leave, sick_leave, unpaid_leave, created_at, updated_at`

func scanLeaveBalance(row pgx.Row) (leave.LeaveBalance, error) {
	var b leave.LeaveBalance
	err := row.Scan(&b.ID, &b.EmployeeID, &b.Year, &b.PaidLeave, &b.SickLeave, &b.UnpaidLeave, &b.CreatedAt, &b.UpdatedAt)
	return b, err
}

// GetOrCreate implements leave.LeaveBalanceRepository.
func (r *leaveBalanceRepositoryImpl) GetOrCreate(ctx context.Context, employeeID string, year int) (leave.LeaveBalance, error) {
	q := GetQuerier(ctx, r.db)

	defaults := leave.NewDefaultBalance(employeeID, year)
	insert := `
		INSERT INTO leave_balances (employee_id, year, paid_leave, sick_leave, unpaid_leave)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT ON CONSTRAINT uk_leave_balances_employee_year DO NOTHING
	`
	if _, err := q.Exec(ctx, insert, employeeID, year, defaults.PaidLeave, defaults.SickLeave, defaults.UnpaidLeave); err != nil {
		if isForeignKeyViolation(err, "") {
			return leave.LeaveBalance{}, leave.ErrNoEmployeeProfile
		}
		return leave.LeaveBalance{}, fmt.Errorf("failed to create leave balance for employee %s/%d: %w", employeeID, year, err)
	}

	b, err := scanLeaveBalance(q.QueryRow(ctx,
		`SELECT `+leaveBalanceColumns+` FROM leave_balances WHERE employee_id = $1 AND year = $2`, employeeID, year))
	if err != nil {
		return leave.LeaveBalance{}, fmt.Errorf("failed to get leave balance for employee %s/%d: %w", employeeID, year, err)
	}
	return b, nil
}

// Deduct implements leave.LeaveBalanceRepository.
func (r *leaveBalanceRepositoryImpl) Deduct(ctx context.Context, employeeID string, year int, leaveType leave.LeaveType, days int) (leave.LeaveBalance, error) {
	q := GetQuerier(ctx, r.db)

	var column string
	switch leaveType {
	case leave.TypePaid:
		column = "paid_leave"
	case leave.TypeSick:
		column = "sick_leave"
	default:
		return r.GetOrCreate(ctx, employeeID, year)
	}

	query := fmt.Sprintf(`
		UPDATE leave_balances
		SET %[1]s = %[1]s - $1, updated_at = NOW()
		WHERE employee_id = $2 AND year = $3 AND %[1]s >= $1
		RETURNING %[2]s
	`, column, leaveBalanceColumns)

	b, err := scanLeaveBalance(q.QueryRow(ctx, query, days, employeeID, year))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveBalance{}, leave.ErrInsufficientBalance
		}
		return leave.LeaveBalance{}, fmt.Errorf("failed to deduct %s for employee %s/%d: %w", column, employeeID, year, err)
	}
	return b, nil
}
