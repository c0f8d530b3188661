package attendance

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// AttendanceRepository defines data access methods for attendance records.
type AttendanceRepository interface {
	// Create inserts a check-in row; a second row for the same day is ErrAlreadyCheckedIn.
	Create(ctx context.Context, attendance Attendance) (Attendance, error)

	// GetByEmployeeAndDate returns nil without error when the employee has no row that day.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error)

	// CheckOut closes an open row. A row already checked out yields ErrAlreadyCheckedOut.
	CheckOut(ctx context.Context, id string, at time.Time, workHours, extraHours decimal.Decimal) (Attendance, error)

	// List retrieves attendance records of a company with filters and pagination
	List(ctx context.Context, companyID string, filter AttendanceFilter) ([]Attendance, int64, error)

	// MarkAbsentees fills in rows for every employee without one on date: "leave" when an
	// approved leave covers it, "absent" otherwise.
	MarkAbsentees(ctx context.Context, date time.Time) (MarkAbsentResult, error)
}
