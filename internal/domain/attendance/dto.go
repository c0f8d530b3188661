package attendance

import (
	"fmt"
	"strings"
	"time"

	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/validator"
)

const dateLayout = "2006-01-02"

// AttendanceFilter selects a date range. View "month" expands Date to its whole month;
// otherwise From/To are used, both defaulting to today.
type AttendanceFilter struct {
	From       string
	To         string
	View       string
	Date       string
	Search     string
	EmployeeID string
	Page       int
	Limit      int

	// Resolved by Resolve
	FromDate time.Time
	ToDate   time.Time
}

func (f *AttendanceFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.View != "" && f.View != "day" && f.View != "month" {
		errs.Add("view", "view must be one of: day, month")
	}
	if f.Date != "" {
		if _, ok := validator.IsValidDate(f.Date); !ok {
			errs.Add("date", "date must be in YYYY-MM-DD format")
		}
	}
	var from, to time.Time
	var okFrom, okTo bool
	if f.From != "" {
		if from, okFrom = validator.IsValidDate(f.From); !okFrom {
			errs.Add("from", "from must be in YYYY-MM-DD format")
		}
	}
	if f.To != "" {
		if to, okTo = validator.IsValidDate(f.To); !okTo {
			errs.Add("to", "to must be in YYYY-MM-DD format")
		}
	}
	if okFrom && okTo && to.Before(from) {
		errs.Add("to", "to must not be before from")
	}
	if f.EmployeeID != "" && !validator.IsValidUUID(f.EmployeeID) {
		errs.Add("employee_id", "employee_id must be a valid UUID")
	}

	return errs.Err()
}

// Resolve fills FromDate/ToDate and paging defaults. Call after Validate.
func (f *AttendanceFilter) Resolve(today time.Time) {
	f.Search = strings.TrimSpace(f.Search)
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 31
	}

	anchor := DateOf(today)
	if d, ok := validator.IsValidDate(f.Date); ok {
		anchor = d
	}

	if f.View == "month" {
		f.FromDate = time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, time.UTC)
		f.ToDate = f.FromDate.AddDate(0, 1, -1)
		return
	}

	f.FromDate, f.ToDate = anchor, anchor
	if d, ok := validator.IsValidDate(f.From); ok {
		f.FromDate = d
		if f.To == "" {
			f.ToDate = d
		}
	}
	if d, ok := validator.IsValidDate(f.To); ok {
		f.ToDate = d
		if f.From == "" {
			f.FromDate = d
		}
	}
}

type AttendanceResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName *string `json:"employee_name,omitempty"`
	LoginID      *string `json:"login_id,omitempty"`
	Date         string  `json:"date"`
	CheckIn      *string `json:"check_in,omitempty"`
	CheckOut     *string `json:"check_out,omitempty"`
	WorkHours    *string `json:"work_hours,omitempty"`
	ExtraHours   *string `json:"extra_hours,omitempty"`
	Status       string  `json:"status"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}

func NewAttendanceResponse(a Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		ID:           a.ID,
		EmployeeID:   a.EmployeeID,
		EmployeeName: a.EmployeeName,
		LoginID:      a.LoginID,
		Date:         a.Date.Format(dateLayout),
		Status:       string(a.Status),
		CreatedAt:    a.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    a.UpdatedAt.Format(time.RFC3339),
	}
	if a.CheckIn != nil {
		s := a.CheckIn.Format(time.RFC3339)
		resp.CheckIn = &s
	}
	if a.CheckOut != nil {
		s := a.CheckOut.Format(time.RFC3339)
		resp.CheckOut = &s
	}
	if a.WorkHours != nil {
		s := a.WorkHours.StringFixed(2)
		resp.WorkHours = &s
	}
	if a.ExtraHours != nil {
		s := a.ExtraHours.StringFixed(2)
		resp.ExtraHours = &s
	}
	return resp
}

type TodayResponse struct {
	State      TodayState          `json:"state"`
	Attendance *AttendanceResponse `json:"attendance,omitempty"`
}

type ListAttendanceResponse struct {
	From        string               `json:"from"`
	To          string               `json:"to"`
	TotalCount  int64                `json:"total_count"`
	Page        int                  `json:"page"`
	Limit       int                  `json:"limit"`
	TotalPages  int                  `json:"total_pages"`
	Showing     string               `json:"showing"`
	Attendances []AttendanceResponse `json:"attendances"`
}

func NewListAttendanceResponse(items []Attendance, total int64, filter AttendanceFilter) ListAttendanceResponse {
	resp := ListAttendanceResponse{
		From:        filter.FromDate.Format(dateLayout),
		To:          filter.ToDate.Format(dateLayout),
		TotalCount:  total,
		Page:        filter.Page,
		Limit:       filter.Limit,
		TotalPages:  int((total + int64(filter.Limit) - 1) / int64(filter.Limit)),
		Attendances: make([]AttendanceResponse, 0, len(items)),
	}
	for _, a := range items {
		resp.Attendances = append(resp.Attendances, NewAttendanceResponse(a))
	}
	start := (filter.Page-1)*filter.Limit + 1
	if len(items) == 0 {
		start = 0
	}
	resp.Showing = fmt.Sprintf("%d-%d of %d", start, (filter.Page-1)*filter.Limit+len(items), total)
	return resp
}

// MarkAbsentResult counts the rows inserted for one day.
type MarkAbsentResult struct {
	Date   string `json:"date"`
	Leave  int64  `json:"leave"`
	Absent int64  `json:"absent"`
}
