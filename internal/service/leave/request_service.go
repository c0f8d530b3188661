package leave

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/leave"
	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/database"
)

// RequestService runs the pending -> approved | rejected workflow.
type RequestService struct {
	tx database.Transactor
	leave.LeaveRequestRepository
	balanceService *BalanceService
}

func NewRequestService(tx database.Transactor, leaveRequestRepository leave.LeaveRequestRepository, balanceService *BalanceService) *RequestService {
	return &RequestService{
		tx:                     tx,
		LeaveRequestRepository: leaveRequestRepository,
		balanceService:         balanceService,
	}
}

// Submit validates the date range against existing requests and stores a pending request.
func (r *RequestService) Submit(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	request.Allocation = leave.Allocation(request.StartDate, request.EndDate)
	if request.Allocation <= 0 {
		return leave.LeaveRequest{}, leave.ErrInvalidAllocation
	}

	overlaps, err := r.LeaveRequestRepository.HasOverlap(ctx, request.EmployeeID, request.StartDate, request.EndDate)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to check overlapping leave: %w", err)
	}
	if overlaps {
		return leave.LeaveRequest{}, leave.ErrOverlappingLeave
	}

	request.Status = leave.StatusPending
	created, err := r.LeaveRequestRepository.Create(ctx, request)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to create leave request: %w", err)
	}
	return created, nil
}

// Approve marks the request approved and deducts its allocation in one transaction.
func (r *RequestService) Approve(ctx context.Context, companyID, requestID, reviewerID string, comment *string, at time.Time) (leave.LeaveRequest, error) {
	var approved leave.LeaveRequest
	err := r.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		request, err := r.pending(txCtx, companyID, requestID)
		if err != nil {
			return err
		}

		approved, err = r.LeaveRequestRepository.Review(txCtx, request.ID, leave.StatusApproved, reviewerID, comment, at)
		if err != nil {
			return r.reviewError(err)
		}
		return r.balanceService.Consume(txCtx, approved)
	})
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	return approved, nil
}

func (r *RequestService) Reject(ctx context.Context, companyID, requestID, reviewerID string, comment *string, at time.Time) (leave.LeaveRequest, error) {
	request, err := r.pending(ctx, companyID, requestID)
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	rejected, err := r.LeaveRequestRepository.Review(ctx, request.ID, leave.StatusRejected, reviewerID, comment, at)
	if err != nil {
		return leave.LeaveRequest{}, r.reviewError(err)
	}
	return rejected, nil
}

func (r *RequestService) pending(ctx context.Context, companyID, requestID string) (leave.LeaveRequest, error) {
	request, err := r.LeaveRequestRepository.GetByID(ctx, companyID, requestID)
	if err != nil {
		if errors.Is(err, leave.ErrLeaveRequestNotFound) {
			return leave.LeaveRequest{}, err
		}
		return leave.LeaveRequest{}, fmt.Errorf("failed to get leave request: %w", err)
	}
	if request.Status != leave.StatusPending {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestAlreadyProcessed
	}
	return request, nil
}

func (r *RequestService) reviewError(err error) error {
	if errors.Is(err, leave.ErrLeaveRequestAlreadyProcessed) {
		return err
	}
	return fmt.Errorf("failed to review leave request: %w", err)
}
