package attendance

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/attendance"
	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/user"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAttendanceRepo struct {
	rows       []attendance.Attendance
	lastFilter attendance.AttendanceFilter
	marked     time.Time
}

func (r *fakeAttendanceRepo) Create(_ context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	for _, row := range r.rows {
		if row.EmployeeID == a.EmployeeID && row.Date.Equal(a.Date) {
			return attendance.Attendance{}, attendance.ErrAlreadyCheckedIn
		}
	}
	a.ID = fmt.Sprintf("att-%d", len(r.rows)+1)
	r.rows = append(r.rows, a)
	return a, nil
}

func (r *fakeAttendanceRepo) GetByEmployeeAndDate(_ context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	for i := range r.rows {
		if r.rows[i].EmployeeID == employeeID && r.rows[i].Date.Equal(date) {
			row := r.rows[i]
			return &row, nil
		}
	}
	return nil, nil
}

func (r *fakeAttendanceRepo) CheckOut(_ context.Context, id string, at time.Time, work, extra decimal.Decimal) (attendance.Attendance, error) {
	for i := range r.rows {
		if r.rows[i].ID != id {
			continue
		}
		if r.rows[i].CheckOut != nil {
			return attendance.Attendance{}, attendance.ErrAlreadyCheckedOut
		}
		r.rows[i].CheckOut = &at
		r.rows[i].WorkHours = &work
		r.rows[i].ExtraHours = &extra
		return r.rows[i], nil
	}
	return attendance.Attendance{}, attendance.ErrAttendanceNotFound
}

func (r *fakeAttendanceRepo) List(_ context.Context, _ string, filter attendance.AttendanceFilter) ([]attendance.Attendance, int64, error) {
	r.lastFilter = filter
	var out []attendance.Attendance
	for _, row := range r.rows {
		if filter.EmployeeID == "" || row.EmployeeID == filter.EmployeeID {
			out = append(out, row)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeAttendanceRepo) MarkAbsentees(_ context.Context, date time.Time) (attendance.MarkAbsentResult, error) {
	r.marked = date
	return attendance.MarkAbsentResult{Date: date.Format("2006-01-02"), Leave: 1, Absent: 2}, nil
}

var employeeJohn = user.Principal{UserID: "u1", EmployeeID: "e1", CompanyID: "c1", Role: user.RoleEmployee}

func newService(repo *fakeAttendanceRepo, clock *time.Time) *AttendanceServiceImpl {
	svc := NewAttendanceService(repo).(*AttendanceServiceImpl)
	svc.now = func() time.Time { return *clock }
	return svc
}

func TestCheckInCheckOut_StateMachine(t *testing.T) {
	repo := &fakeAttendanceRepo{}
	clock := time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)
	svc := newService(repo, &clock)
	ctx := context.Background()

	today, err := svc.GetToday(ctx, employeeJohn)
	require.NoError(t, err)
	assert.Equal(t, attendance.StateCheckIn, today.State)
	assert.Nil(t, today.Attendance)

	_, err = svc.CheckOut(ctx, employeeJohn)
	assert.ErrorIs(t, err, attendance.ErrNotCheckedIn)

	in, err := svc.CheckIn(ctx, employeeJohn)
	require.NoError(t, err)
	assert.Equal(t, "present", in.Status)
	assert.Equal(t, "2024-03-15", in.Date)

	_, err = svc.CheckIn(ctx, employeeJohn)
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)

	today, err = svc.GetToday(ctx, employeeJohn)
	require.NoError(t, err)
	assert.Equal(t, attendance.StateCheckOut, today.State)

	clock = clock.Add(9*time.Hour + 15*time.Minute)
	out, err := svc.CheckOut(ctx, employeeJohn)
	require.NoError(t, err)
	require.NotNil(t, out.WorkHours)
	assert.Equal(t, "9.25", *out.WorkHours)
	assert.Equal(t, "1.25", *out.ExtraHours)

	_, err = svc.CheckOut(ctx, employeeJohn)
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)

	today, err = svc.GetToday(ctx, employeeJohn)
	require.NoError(t, err)
	assert.Equal(t, attendance.StateDone, today.State)

	// A new day starts a new cycle.
	clock = clock.Add(24 * time.Hour)
	today, err = svc.GetToday(ctx, employeeJohn)
	require.NoError(t, err)
	assert.Equal(t, attendance.StateCheckIn, today.State)
}

func TestCheckIn_WithoutEmployeeProfile(t *testing.T) {
	clock := time.Now()
	svc := newService(&fakeAttendanceRepo{}, &clock)

	_, err := svc.CheckIn(context.Background(), user.Principal{UserID: "u9", CompanyID: "c1", Role: user.RoleAdmin})
	assert.ErrorIs(t, err, attendance.ErrNoEmployeeProfile)
}

func TestListAttendance_ScopesEmployees(t *testing.T) {
	repo := &fakeAttendanceRepo{}
	clock := time.Date(2024, 2, 10, 9, 0, 0, 0, time.UTC)
	svc := newService(repo, &clock)
	ctx := context.Background()

	mary := user.Principal{UserID: "u2", EmployeeID: "e2", CompanyID: "c1", Role: user.RoleEmployee}
	_, err := svc.CheckIn(ctx, employeeJohn)
	require.NoError(t, err)
	_, err = svc.CheckIn(ctx, mary)
	require.NoError(t, err)

	resp, err := svc.ListAttendance(ctx, employeeJohn, attendance.AttendanceFilter{EmployeeID: "e2", Search: "mary"})
	require.NoError(t, err)
	assert.Equal(t, "e1", repo.lastFilter.EmployeeID)
	assert.Empty(t, repo.lastFilter.Search)
	assert.EqualValues(t, 1, resp.TotalCount)
	assert.Equal(t, "2024-02-10", resp.From)
	assert.Equal(t, "2024-02-10", resp.To)

	admin := user.Principal{UserID: "u0", EmployeeID: "e0", CompanyID: "c1", Role: user.RoleAdmin}
	resp, err = svc.ListAttendance(ctx, admin, attendance.AttendanceFilter{View: "month"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, resp.TotalCount)
	assert.Equal(t, "2024-02-01", resp.From)
	assert.Equal(t, "2024-02-29", resp.To)
}

func TestMarkAbsentees_TruncatesDate(t *testing.T) {
	repo := &fakeAttendanceRepo{}
	clock := time.Now()
	svc := newService(repo, &clock)

	result, err := svc.MarkAbsentees(context.Background(), time.Date(2024, 3, 14, 23, 59, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC), repo.marked)
	assert.Equal(t, "2024-03-14", result.Date)
	assert.EqualValues(t, 2, result.Absent)
}
