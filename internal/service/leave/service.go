package leave

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/employee"
	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/leave"
	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/user"
	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/metrics"
	"github.com/dayflow-hr/dayflow-backend-go/internal/service/file"
)

type LeaveServiceImpl struct {
	leave.LeaveRequestRepository
	employee.EmployeeRepository
	balanceService *BalanceService
	requestService *RequestService
	fileService    file.FileService
	now            func() time.Time
}

func NewLeaveService(
	leaveRequestRepository leave.LeaveRequestRepository,
	employeeRepository employee.EmployeeRepository,
	balanceService *BalanceService,
	requestService *RequestService,
	fileService file.FileService,
) leave.LeaveService {
	return &LeaveServiceImpl{
		LeaveRequestRepository: leaveRequestRepository,
		EmployeeRepository:     employeeRepository,
		balanceService:         balanceService,
		requestService:         requestService,
		fileService:            fileService,
		now:                    time.Now,
	}
}

// CreateLeaveRequest implements leave.LeaveService.
func (l *LeaveServiceImpl) CreateLeaveRequest(ctx context.Context, principal user.Principal, req leave.CreateLeaveRequestRequest) (leave.LeaveRequestResponse, error) {
	if principal.EmployeeID == "" {
		return leave.LeaveRequestResponse{}, leave.ErrNoEmployeeProfile
	}

	start, end := req.Dates()
	if leave.Allocation(start, end) <= 0 {
		return leave.LeaveRequestResponse{}, leave.ErrInvalidAllocation
	}

	if req.File != nil && req.FileHeader != nil {
		url, err := l.fileService.UploadLeaveAttachment(ctx, principal.EmployeeID, req.File, req.FileHeader.Filename)
		if err != nil {
			return leave.LeaveRequestResponse{}, fmt.Errorf("failed to upload leave attachment: %w", err)
		}
		req.AttachmentURL = &url
	}

	created, err := l.requestService.Submit(ctx, leave.LeaveRequest{
		EmployeeID:    principal.EmployeeID,
		CompanyID:     principal.CompanyID,
		LeaveType:     leave.LeaveType(req.LeaveType),
		StartDate:     start,
		EndDate:       end,
		Remarks:       req.Remarks,
		AttachmentURL: req.AttachmentURL,
	})
	if err != nil {
		if req.AttachmentURL != nil {
			if delErr := l.fileService.DeleteByURL(ctx, *req.AttachmentURL); delErr != nil {
				slog.Warn("failed to delete orphaned leave attachment", "url", *req.AttachmentURL, "error", delErr)
			}
		}
		return leave.LeaveRequestResponse{}, err
	}

	return leave.NewLeaveRequestResponse(created), nil
}

// ListLeaveRequests implements leave.LeaveService.
func (l *LeaveServiceImpl) ListLeaveRequests(ctx context.Context, principal user.Principal, filter leave.LeaveRequestFilter) (leave.ListLeaveRequestResponse, error) {
	if !principal.Can(user.PermissionLeaveViewAll) {
		if principal.EmployeeID == "" {
			return leave.ListLeaveRequestResponse{}, leave.ErrNoEmployeeProfile
		}
		filter.EmployeeID = principal.EmployeeID
		filter.Search = ""
	}
	filter.Normalize()

	requests, total, err := l.LeaveRequestRepository.List(ctx, principal.CompanyID, filter)
	if err != nil {
		return leave.ListLeaveRequestResponse{}, fmt.Errorf("failed to list leave requests: %w", err)
	}
	return leave.NewListLeaveRequestResponse(requests, total, filter), nil
}

// GetLeaveRequest implements leave.LeaveService.
func (l *LeaveServiceImpl) GetLeaveRequest(ctx context.Context, principal user.Principal, id string) (leave.LeaveRequestResponse, error) {
	request, err := l.LeaveRequestRepository.GetByID(ctx, principal.CompanyID, id)
	if err != nil {
		if errors.Is(err, leave.ErrLeaveRequestNotFound) {
			return leave.LeaveRequestResponse{}, err
		}
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to get leave request: %w", err)
	}
	if !principal.CanAccessEmployee(request.EmployeeID) {
		return leave.LeaveRequestResponse{}, leave.ErrUnauthorized
	}
	return leave.NewLeaveRequestResponse(request), nil
}

// ApproveLeaveRequest implements leave.LeaveService.
func (l *LeaveServiceImpl) ApproveLeaveRequest(ctx context.Context, principal user.Principal, id string, req leave.ReviewLeaveRequest) (leave.LeaveRequestResponse, error) {
	if !principal.Can(user.PermissionLeaveApprove) {
		return leave.LeaveRequestResponse{}, leave.ErrUnauthorized
	}

	approved, err := l.requestService.Approve(ctx, principal.CompanyID, id, principal.UserID, req.AdminComment, l.now())
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	metrics.RecordLeaveDecision(string(approved.Status), string(approved.LeaveType))
	slog.Info("Leave request approved", "request_id", approved.ID, "employee_id", approved.EmployeeID, "reviewed_by", principal.UserID)
	return leave.NewLeaveRequestResponse(approved), nil
}

// RejectLeaveRequest implements leave.LeaveService.
func (l *LeaveServiceImpl) RejectLeaveRequest(ctx context.Context, principal user.Principal, id string, req leave.ReviewLeaveRequest) (leave.LeaveRequestResponse, error) {
	if !principal.Can(user.PermissionLeaveApprove) {
		return leave.LeaveRequestResponse{}, leave.ErrUnauthorized
	}

	rejected, err := l.requestService.Reject(ctx, principal.CompanyID, id, principal.UserID, req.AdminComment, l.now())
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	metrics.RecordLeaveDecision(string(rejected.Status), string(rejected.LeaveType))
	slog.Info("Leave request rejected", "request_id", rejected.ID, "employee_id", rejected.EmployeeID, "reviewed_by", principal.UserID)
	return leave.NewLeaveRequestResponse(rejected), nil
}

func (l *LeaveServiceImpl) yearOrCurrent(year int) int {
	if year <= 0 {
		return l.now().Year()
	}
	return year
}

// GetMyBalance implements leave.LeaveService.
func (l *LeaveServiceImpl) GetMyBalance(ctx context.Context, principal user.Principal, year int) (leave.LeaveBalanceResponse, error) {
	if principal.EmployeeID == "" {
		return leave.LeaveBalanceResponse{}, leave.ErrNoEmployeeProfile
	}
	balance, err := l.balanceService.Get(ctx, principal.EmployeeID, l.yearOrCurrent(year))
	if err != nil {
		return leave.LeaveBalanceResponse{}, err
	}
	return leave.NewLeaveBalanceResponse(balance), nil
}

// GetEmployeeBalance implements leave.LeaveService.
func (l *LeaveServiceImpl) GetEmployeeBalance(ctx context.Context, principal user.Principal, employeeID string, year int) (leave.LeaveBalanceResponse, error) {
	if !principal.CanAccessEmployee(employeeID) {
		return leave.LeaveBalanceResponse{}, leave.ErrUnauthorized
	}
	if _, err := l.EmployeeRepository.GetByID(ctx, principal.CompanyID, employeeID); err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return leave.LeaveBalanceResponse{}, err
		}
		return leave.LeaveBalanceResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	balance, err := l.balanceService.Get(ctx, employeeID, l.yearOrCurrent(year))
	if err != nil {
		return leave.LeaveBalanceResponse{}, err
	}
	return leave.NewLeaveBalanceResponse(balance), nil
}
