package leave

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/validator"
)

const dateLayout = "2006-01-02"

// CreateLeaveRequestRequest arrives as multipart form fields with an optional attachment.
type CreateLeaveRequestRequest struct {
	LeaveType string  `json:"leave_type"`
	StartDate string  `json:"start_date"`
	EndDate   string  `json:"end_date"`
	Remarks   *string `json:"remarks,omitempty"`

	AttachmentURL *string               `json:"-"`
	File          multipart.File        `json:"-"`
	FileHeader    *multipart.FileHeader `json:"-"`
}

func (r *CreateLeaveRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.LeaveType) {
		errs.Add("leave_type", "leave_type is required")
	} else if !LeaveType(r.LeaveType).IsValid() {
		errs.Add("leave_type", "leave_type must be one of: paid, sick, unpaid")
	}

	start, okStart := validator.IsValidDate(r.StartDate)
	if validator.IsEmpty(r.StartDate) {
		errs.Add("start_date", "start_date is required")
	} else if !okStart {
		errs.Add("start_date", "start_date must be in YYYY-MM-DD format")
	}
	end, okEnd := validator.IsValidDate(r.EndDate)
	if validator.IsEmpty(r.EndDate) {
		errs.Add("end_date", "end_date is required")
	} else if !okEnd {
		errs.Add("end_date", "end_date must be in YYYY-MM-DD format")
	}
	if okStart && okEnd && Allocation(start, end) <= 0 {
		errs.Add("end_date", "end_date must not be before start_date")
	}

	if r.Remarks != nil && len(*r.Remarks) > 1000 {
		errs.Add("remarks", "remarks must not exceed 1000 characters")
	}

	if r.FileHeader != nil {
		ext := strings.ToLower(filepath.Ext(r.FileHeader.Filename))
		if !slices.Contains([]string{".jpg", ".jpeg", ".png", ".pdf"}, ext) {
			errs.Add("attachment", "invalid file type: only jpg, jpeg, png, pdf allowed")
		}
		if r.FileHeader.Size > 10<<20 {
			errs.Add("attachment", "attachment size must not exceed 10MB")
		}
	}

	return errs.Err()
}

// Dates returns the parsed start and end dates. Call after Validate.
func (r *CreateLeaveRequestRequest) Dates() (time.Time, time.Time) {
	start, _ := validator.IsValidDate(r.StartDate)
	end, _ := validator.IsValidDate(r.EndDate)
	return start, end
}

type ReviewLeaveRequest struct {
	AdminComment *string `json:"admin_comment,omitempty"`
}

func (r *ReviewLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.AdminComment != nil && len(*r.AdminComment) > 1000 {
		errs.Add("admin_comment", "admin_comment must not exceed 1000 characters")
	}

	return errs.Err()
}

type LeaveRequestFilter struct {
	Status     string
	LeaveType  string
	Search     string
	EmployeeID string
	Page       int
	Limit      int
}

func (f *LeaveRequestFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Status != "" && !RequestStatus(f.Status).IsValid() {
		errs.Add("status", "status must be one of: pending, approved, rejected")
	}
	if f.LeaveType != "" && !LeaveType(f.LeaveType).IsValid() {
		errs.Add("leave_type", "leave_type must be one of: paid, sick, unpaid")
	}
	if f.EmployeeID != "" && !validator.IsValidUUID(f.EmployeeID) {
		errs.Add("employee_id", "employee_id must be a valid UUID")
	}

	return errs.Err()
}

func (f *LeaveRequestFilter) Normalize() {
	f.Search = strings.TrimSpace(f.Search)
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 20
	}
}

type LeaveRequestResponse struct {
	ID            string  `json:"id"`
	EmployeeID    string  `json:"employee_id"`
	EmployeeName  *string `json:"employee_name,omitempty"`
	LoginID       *string `json:"login_id,omitempty"`
	LeaveType     string  `json:"leave_type"`
	StartDate     string  `json:"start_date"`
	EndDate       string  `json:"end_date"`
	Allocation    int     `json:"allocation"`
	Remarks       *string `json:"remarks,omitempty"`
	AttachmentURL *string `json:"attachment_url,omitempty"`
	Status        string  `json:"status"`
	AdminComment  *string `json:"admin_comment,omitempty"`
	ReviewedBy    *string `json:"reviewed_by,omitempty"`
	ReviewerEmail *string `json:"reviewer_email,omitempty"`
	ReviewedAt    *string `json:"reviewed_at,omitempty"`
	CreatedAt     string  `json:"created_at"`
	UpdatedAt     string  `json:"updated_at"`
}

func NewLeaveRequestResponse(r LeaveRequest) LeaveRequestResponse {
	resp := LeaveRequestResponse{
		ID:            r.ID,
		EmployeeID:    r.EmployeeID,
		EmployeeName:  r.EmployeeName,
		LoginID:       r.LoginID,
		LeaveType:     string(r.LeaveType),
		StartDate:     r.StartDate.Format(dateLayout),
		EndDate:       r.EndDate.Format(dateLayout),
		Allocation:    r.Allocation,
		Remarks:       r.Remarks,
		AttachmentURL: r.AttachmentURL,
		Status:        string(r.Status),
		AdminComment:  r.AdminComment,
		ReviewedBy:    r.ReviewedBy,
		ReviewerEmail: r.ReviewerEmail,
		CreatedAt:     r.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     r.UpdatedAt.Format(time.RFC3339),
	}
	if r.ReviewedAt != nil {
		s := r.ReviewedAt.Format(time.RFC3339)
		resp.ReviewedAt = &s
	}
	return resp
}

type ListLeaveRequestResponse struct {
	TotalCount    int64                  `json:"total_count"`
	PendingCount  int                    `json:"pending_count"`
	Page          int                    `json:"page"`
	Limit         int                    `json:"limit"`
	TotalPages    int                    `json:"total_pages"`
	Showing       string                 `json:"showing"`
	LeaveRequests []LeaveRequestResponse `json:"leave_requests"`
}

func NewListLeaveRequestResponse(items []LeaveRequest, total int64, filter LeaveRequestFilter) ListLeaveRequestResponse {
	resp := ListLeaveRequestResponse{
		TotalCount:    total,
		Page:          filter.Page,
		Limit:         filter.Limit,
		TotalPages:    int((total + int64(filter.Limit) - 1) / int64(filter.Limit)),
		LeaveRequests: make([]LeaveRequestResponse, 0, len(items)),
	}
	for _, r := range items {
		if r.Status == StatusPending {
			resp.PendingCount++
		}
		resp.LeaveRequests = append(resp.LeaveRequests, NewLeaveRequestResponse(r))
	}
	start := (filter.Page-1)*filter.Limit + 1
	if len(items) == 0 {
		start = 0
	}
	resp.Showing = fmt.Sprintf("%d-%d of %d", start, (filter.Page-1)*filter.Limit+len(items), total)
	return resp
}

type LeaveBalanceResponse struct {
	EmployeeID  string `json:"employee_id"`
	Year        int    `json:"year"`
	PaidLeave   string `json:"paid_leave"`
	SickLeave   string `json:"sick_leave"`
	UnpaidLeave string `json:"unpaid_leave"`
}

func NewLeaveBalanceResponse(b LeaveBalance) LeaveBalanceResponse {
	return LeaveBalanceResponse{
		EmployeeID:  b.EmployeeID,
		Year:        b.Year,
		PaidLeave:   b.PaidLeave.StringFixed(1),
		SickLeave:   b.SickLeave.StringFixed(1),
		UnpaidLeave: b.UnpaidLeave.StringFixed(1),
	}
}
