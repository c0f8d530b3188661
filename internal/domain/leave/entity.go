package leave

import (
	"time"

	"github.com/shopspring/decimal"
)

type LeaveType string

const (
	TypePaid   LeaveType = "paid"
	TypeSick   LeaveType = "sick"
	TypeUnpaid LeaveType = "unpaid"
)

func (t LeaveType) IsValid() bool {
	return t == TypePaid || t == TypeSick || t == TypeUnpaid
}

// Deductible reports whether approving this type consumes balance. Unpaid leave never does.
func (t LeaveType) Deductible() bool {
	return t == TypePaid || t == TypeSick
}

type RequestStatus string

const (
	StatusPending  RequestStatus = "pending"
	StatusApproved RequestStatus = "approved"
	StatusRejected RequestStatus = "rejected"
)

func (s RequestStatus) IsValid() bool {
	return s == StatusPending || s == StatusApproved || s == StatusRejected
}

// LeaveRequest entity
type LeaveRequest struct {
	ID            string
	EmployeeID    string
	CompanyID     string
	LeaveType     LeaveType
	StartDate     time.Time
	EndDate       time.Time
	Allocation    int
	Remarks       *string
	AttachmentURL *string
	Status        RequestStatus
	AdminComment  *string
	ReviewedBy    *string
	ReviewedAt    *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Join
	EmployeeName  *string
	LoginID       *string
	ReviewerEmail *string
}

// Allocation counts the days from start to end inclusive; end before start yields <= 0.
func Allocation(start, end time.Time) int {
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	return int(e.Sub(s).Hours()/24) + 1
}

// Default yearly entitlements, used when a balance row is first created.
var (
	DefaultPaidLeave   = decimal.NewFromInt(24)
	DefaultSickLeave   = decimal.NewFromInt(7)
	DefaultUnpaidLeave = decimal.Zero
)

// LeaveBalance holds the remaining days of each type for one employee and year.
type LeaveBalance struct {
	ID          string
	EmployeeID  string
	Year        int
	PaidLeave   decimal.Decimal
	SickLeave   decimal.Decimal
	UnpaidLeave decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func NewDefaultBalance(employeeID string, year int) LeaveBalance {
	return LeaveBalance{
		EmployeeID:  employeeID,
		Year:        year,
		PaidLeave:   DefaultPaidLeave,
		SickLeave:   DefaultSickLeave,
		UnpaidLeave: DefaultUnpaidLeave,
	}
}

// Available returns the remaining days for a deductible type.
func (b LeaveBalance) Available(t LeaveType) decimal.Decimal {
	switch t {
	case TypePaid:
		return b.PaidLeave
	case TypeSick:
		return b.SickLeave
	default:
		return b.UnpaidLeave
	}
}

// CanCover reports whether days of type t can be approved against this balance.
func (b LeaveBalance) CanCover(t LeaveType, days int) bool {
	if !t.Deductible() {
		return true
	}
	return b.Available(t).GreaterThanOrEqual(decimal.NewFromInt(int64(days)))
}
