package attendance

import (
	"context"
	"time"

	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/user"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// CheckIn opens today's row for the authenticated employee
	CheckIn(ctx context.Context, principal user.Principal) (AttendanceResponse, error)

	// CheckOut closes today's row and records worked hours
	CheckOut(ctx context.Context, principal user.Principal) (AttendanceResponse, error)

	// GetToday reports where the employee is in today's check-in cycle
	GetToday(ctx context.Context, principal user.Principal) (TodayResponse, error)

	// ListAttendance lists the company (admin) or the caller's own rows (employee)
	ListAttendance(ctx context.Context, principal user.Principal, filter AttendanceFilter) (ListAttendanceResponse, error)

	// MarkAbsentees is run by the scheduler for a finished day
	MarkAbsentees(ctx context.Context, date time.Time) (MarkAbsentResult, error)
}
