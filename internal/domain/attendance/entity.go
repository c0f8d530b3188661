package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
	StatusHalfDay Status = "half-day"
	StatusLeave   Status = "leave"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPresent, StatusAbsent, StatusHalfDay, StatusLeave:
		return true
	}
	return false
}

// StandardWorkHours is the length of a regular day; time beyond it is extra.
var StandardWorkHours = decimal.NewFromInt(8)

type Attendance struct {
	ID         string
	EmployeeID string
	CompanyID  string
	Date       time.Time
	CheckIn    *time.Time
	CheckOut   *time.Time
	WorkHours  *decimal.Decimal
	ExtraHours *decimal.Decimal
	Status     Status
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// Join
	EmployeeName *string
	LoginID      *string
}

// TodayState drives the check-in button: check-in -> check-out -> done.
type TodayState string

const (
	StateCheckIn  TodayState = "check-in"
	StateCheckOut TodayState = "check-out"
	StateDone     TodayState = "done"
)

// StateOf derives the day's state from the employee's row, which may be nil.
func StateOf(a *Attendance) TodayState {
	switch {
	case a == nil || a.CheckIn == nil:
		return StateCheckIn
	case a.CheckOut == nil:
		return StateCheckOut
	default:
		return StateDone
	}
}

// WorkedHours returns elapsed hours rounded to 2 places and the part above
// StandardWorkHours. A check-out before check-in counts as zero.
func WorkedHours(checkIn, checkOut time.Time) (work, extra decimal.Decimal) {
	elapsed := checkOut.Sub(checkIn)
	if elapsed < 0 {
		elapsed = 0
	}
	work = decimal.NewFromInt(int64(elapsed / time.Second)).Div(decimal.NewFromInt(3600)).Round(2)
	extra = decimal.Max(decimal.Zero, work.Sub(StandardWorkHours))
	return work, extra
}

// DateOf truncates t to its calendar day in t's location, stored as UTC midnight.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
