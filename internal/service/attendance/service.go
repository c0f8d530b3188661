package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/attendance"
	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/user"
	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/metrics"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	now func() time.Time
}

func NewAttendanceService(attendanceRepository attendance.AttendanceRepository) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepository,
		now:                  time.Now,
	}
}

func (a *AttendanceServiceImpl) today(ctx context.Context, principal user.Principal) (*attendance.Attendance, time.Time, error) {
	if principal.EmployeeID == "" {
		return nil, time.Time{}, attendance.ErrNoEmployeeProfile
	}
	now := a.now().UTC()
	row, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, principal.EmployeeID, attendance.DateOf(now))
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}
	return row, now, nil
}

// CheckIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckIn(ctx context.Context, principal user.Principal) (attendance.AttendanceResponse, error) {
	row, now, err := a.today(ctx, principal)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if attendance.StateOf(row) != attendance.StateCheckIn {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedIn
	}

	created, err := a.AttendanceRepository.Create(ctx, attendance.Attendance{
		EmployeeID: principal.EmployeeID,
		CompanyID:  principal.CompanyID,
		Date:       attendance.DateOf(now),
		CheckIn:    &now,
		Status:     attendance.StatusPresent,
	})
	if err != nil {
		if errors.Is(err, attendance.ErrAlreadyCheckedIn) {
			return attendance.AttendanceResponse{}, err
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	metrics.RecordAttendance("check_in", 1)
	return attendance.NewAttendanceResponse(created), nil
}

// CheckOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckOut(ctx context.Context, principal user.Principal) (attendance.AttendanceResponse, error) {
	row, now, err := a.today(ctx, principal)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	switch attendance.StateOf(row) {
	case attendance.StateCheckIn:
		return attendance.AttendanceResponse{}, attendance.ErrNotCheckedIn
	case attendance.StateDone:
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedOut
	}

	work, extra := attendance.WorkedHours(*row.CheckIn, now)
	closed, err := a.AttendanceRepository.CheckOut(ctx, row.ID, now, work, extra)
	if err != nil {
		if errors.Is(err, attendance.ErrAlreadyCheckedOut) {
			return attendance.AttendanceResponse{}, err
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to check out: %w", err)
	}

	metrics.RecordAttendance("check_out", 1)
	return attendance.NewAttendanceResponse(closed), nil
}

// GetToday implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetToday(ctx context.Context, principal user.Principal) (attendance.TodayResponse, error) {
	row, _, err := a.today(ctx, principal)
	if err != nil {
		return attendance.TodayResponse{}, err
	}

	resp := attendance.TodayResponse{State: attendance.StateOf(row)}
	if row != nil {
		r := attendance.NewAttendanceResponse(*row)
		resp.Attendance = &r
	}
	return resp, nil
}

// ListAttendance implements attendance.AttendanceService. Employees only ever see their own rows.
func (a *AttendanceServiceImpl) ListAttendance(ctx context.Context, principal user.Principal, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	if !principal.Can(user.PermissionAttendanceViewAll) {
		if principal.EmployeeID == "" {
			return attendance.ListAttendanceResponse{}, attendance.ErrNoEmployeeProfile
		}
		filter.EmployeeID = principal.EmployeeID
		filter.Search = ""
	}
	filter.Resolve(a.now().UTC())

	rows, total, err := a.AttendanceRepository.List(ctx, principal.CompanyID, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list attendance: %w", err)
	}
	return attendance.NewListAttendanceResponse(rows, total, filter), nil
}

// MarkAbsentees implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) MarkAbsentees(ctx context.Context, date time.Time) (attendance.MarkAbsentResult, error) {
	result, err := a.AttendanceRepository.MarkAbsentees(ctx, attendance.DateOf(date))
	if err != nil {
		return attendance.MarkAbsentResult{}, fmt.Errorf("failed to mark absentees: %w", err)
	}

	metrics.RecordAttendance("marked_leave", result.Leave)
	metrics.RecordAttendance("marked_absent", result.Absent)
	slog.Info("Absentees marked", "date", result.Date, "leave", result.Leave, "absent", result.Absent)
	return result, nil
}
