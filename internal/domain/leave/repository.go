package leave

import (
	"context"
	"time"
)

// LeaveRequestRepository - interface for leave_requests table
type LeaveRequestRepository interface {
	Create(ctx context.Context, request LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, companyID, id string) (LeaveRequest, error)
	List(ctx context.Context, companyID string, filter LeaveRequestFilter) ([]LeaveRequest, int64, error)
	// HasOverlap reports a pending or approved request of the employee intersecting [start, end].
	HasOverlap(ctx context.Context, employeeID string, start, end time.Time) (bool, error)
	// Review moves a pending request to status; a non-pending request yields ErrLeaveRequestAlreadyProcessed.
	Review(ctx context.Context, id string, status RequestStatus, reviewerID string, comment *string, at time.Time) (LeaveRequest, error)
}

// LeaveBalanceRepository - interface for leave_balances table
type LeaveBalanceRepository interface {
	// GetOrCreate returns the year's balance, inserting the defaults on first access.
	GetOrCreate(ctx context.Context, employeeID string, year int) (LeaveBalance, error)
	// Deduct subtracts days atomically; ErrInsufficientBalance when the balance is short.
	Deduct(ctx context.Context, employeeID string, year int, leaveType LeaveType, days int) (LeaveBalance, error)
}
