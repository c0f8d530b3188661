package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/leave"
	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

const leaveRequestSelect = `
	SELECT lr.id, lr.employee_id, lr.company_id, lr.leave_type, lr.start_date, lr.end_date, lr.allocation,
		   lr.remarks, lr.attachment_url, lr.status, lr.admin_comment, lr.reviewed_by, lr.reviewed_at,
		   lr.created_at, lr.updated_at,
		   CONCAT(e.first_name, ' ', e.last_name), e.login_id, u.email
	FROM leave_requests lr
	JOIN employees e ON e.id = lr.employee_id
	LEFT JOIN users u ON u.id = lr.reviewed_by
`

func scanLeaveRequest(row pgx.Row) (leave.LeaveRequest, error) {
	var lr leave.LeaveRequest
	err := row.Scan(
		&lr.ID, &lr.EmployeeID, &lr.CompanyID, &lr.LeaveType, &lr.StartDate, &lr.EndDate, &lr.Allocation,
		&lr.Remarks, &lr.AttachmentURL, &lr.Status, &lr.AdminComment, &lr.ReviewedBy, &lr.ReviewedAt,
		&lr.CreatedAt, &lr.UpdatedAt,
		&lr.EmployeeName, &lr.LoginID, &lr.ReviewerEmail,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, err
	}
	return lr, nil
}

// Create implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_requests (
			employee_id, company_id, leave_type, start_date, end_date, allocation, remarks, attachment_url, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`

	var id string
	err := q.QueryRow(ctx, query,
		request.EmployeeID,
		request.CompanyID,
		request.LeaveType,
		request.StartDate,
		request.EndDate,
		request.Allocation,
		request.Remarks,
		request.AttachmentURL,
		request.Status,
	).Scan(&id)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return r.GetByID(ctx, request.CompanyID, id)
}

// GetByID implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, companyID, id string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	lr, err := scanLeaveRequest(q.QueryRow(ctx, leaveRequestSelect+` WHERE lr.id = $1 AND lr.company_id = $2`, id, companyID))
	if err != nil {
		if errors.Is(err, leave.ErrLeaveRequestNotFound) {
			return leave.LeaveRequest{}, err
		}
		return leave.LeaveRequest{}, fmt.Errorf("failed to get leave request with id %s: %w", id, err)
	}
	return lr, nil
}

// List implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) List(ctx context.Context, companyID string, filter leave.LeaveRequestFilter) ([]leave.LeaveRequest, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"lr.company_id = $1"}
	args := []interface{}{companyID}
	argIdx := 2

	if filter.EmployeeID != "" {
		conditions = append(conditions, fmt.Sprintf("lr.employee_id = $%d", argIdx))
		args = append(args, filter.EmployeeID)
		argIdx++
	}
	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("lr.status = $%d", argIdx))
		args = append(args, filter.Status)
		argIdx++
	}
	if filter.LeaveType != "" {
		conditions = append(conditions, fmt.Sprintf("lr.leave_type = $%d", argIdx))
		args = append(args, filter.LeaveType)
		argIdx++
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(CONCAT(e.first_name, ' ', e.last_name) ILIKE $%d OR e.login_id ILIKE $%d)", argIdx, argIdx))
		args = append(args, "%"+filter.Search+"%")
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf(`
		SELECT COUNT(*) FROM leave_requests lr
		JOIN employees e ON e.id = lr.employee_id
		WHERE %s`, whereClause)
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count leave requests: %w", err)
	}

	offset := (filter.Page - 1) * filter.Limit
	query := fmt.Sprintf(`%s WHERE %s ORDER BY lr.created_at DESC LIMIT $%d OFFSET $%d`,
		leaveRequestSelect, whereClause, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list leave requests: %w", err)
	}
	defer rows.Close()

	requests := make([]leave.LeaveRequest, 0)
	for rows.Next() {
		lr, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan leave request: %w", err)
		}
		requests = append(requests, lr)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return requests, total, nil
}

// HasOverlap implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) HasOverlap(ctx context.Context, employeeID string, start, end time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM leave_requests
			WHERE employee_id = $1 AND status IN ('pending', 'approved')
			  AND start_date <= $3 AND end_date >= $2
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, employeeID, start, end).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check overlapping leave for employee %s: %w", employeeID, err)
	}
	return exists, nil
}

// Review implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) Review(ctx context.Context, id string, status leave.RequestStatus, reviewerID string, comment *string, at time.Time) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET status = $1, reviewed_by = $2, admin_comment = $3, reviewed_at = $4, updated_at = NOW()
		WHERE id = $5 AND status = 'pending'
		RETURNING company_id
	`

	var companyID string
	err := q.QueryRow(ctx, query, status, reviewerID, comment, at, id).Scan(&companyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestAlreadyProcessed
		}
		return leave.LeaveRequest{}, fmt.Errorf("failed to review leave request with id %s: %w", id, err)
	}

	return r.GetByID(ctx, companyID, id)
}
