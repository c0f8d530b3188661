package leave

import (
	"context"

	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/user"
)

type LeaveService interface {
	// Request
	CreateLeaveRequest(ctx context.Context, principal user.Principal, req CreateLeaveRequestRequest) (LeaveRequestResponse, error)
	ListLeaveRequests(ctx context.Context, principal user.Principal, filter LeaveRequestFilter) (ListLeaveRequestResponse, error)
	GetLeaveRequest(ctx context.Context, principal user.Principal, id string) (LeaveRequestResponse, error)
	ApproveLeaveRequest(ctx context.Context, principal user.Principal, id string, req ReviewLeaveRequest) (LeaveRequestResponse, error)
	RejectLeaveRequest(ctx context.Context, principal user.Principal, id string, req ReviewLeaveRequest) (LeaveRequestResponse, error)
	// Balance
	GetMyBalance(ctx context.Context, principal user.Principal, year int) (LeaveBalanceResponse, error)
	GetEmployeeBalance(ctx context.Context, principal user.Principal, employeeID string, year int) (LeaveBalanceResponse, error)
}
