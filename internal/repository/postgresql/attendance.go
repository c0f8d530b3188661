package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/attendance"
	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

const attendanceColumns = `
	a.id, a.employee_id, a.company_id, a.date, a.check_in, a.check_out,
	a.work_hours, a.extra_hours, a.status, a.created_at, a.updated_at`

func attendanceDest(a *attendance.Attendance) []any {
	return []any{
		&a.ID, &a.EmployeeID, &a.CompanyID, &a.Date, &a.CheckIn, &a.CheckOut,
		&a.WorkHours, &a.ExtraHours, &a.Status, &a.CreatedAt, &a.UpdatedAt,
	}
}

// Create implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Create(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance AS a (employee_id, company_id, date, check_in, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + attendanceColumns

	var created attendance.Attendance
	err := q.QueryRow(ctx, query, a.EmployeeID, a.CompanyID, a.Date, a.CheckIn, a.Status).
		Scan(attendanceDest(&created)...)
	if err != nil {
		if isUniqueViolation(err, "uk_attendance_employee_date") {
			return attendance.Attendance{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}
	return created, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + attendanceColumns + ` FROM attendance a WHERE a.employee_id = $1 AND a.date = $2`

	var found attendance.Attendance
	err := q.QueryRow(ctx, query, employeeID, date).Scan(attendanceDest(&found)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance for employee %s: %w", employeeID, err)
	}
	return &found, nil
}

// CheckOut implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) CheckOut(ctx context.Context, id string, at time.Time, workHours, extraHours decimal.Decimal) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance AS a
		SET check_out = $1, work_hours = $2, extra_hours = $3, updated_at = NOW()
		WHERE a.id = $4 AND a.check_in IS NOT NULL AND a.check_out IS NULL
		RETURNING ` + attendanceColumns

	var updated attendance.Attendance
	err := q.QueryRow(ctx, query, at, workHours, extraHours, id).Scan(attendanceDest(&updated)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAlreadyCheckedOut
		}
		return attendance.Attendance{}, fmt.Errorf("failed to check out attendance %s: %w", id, err)
	}
	return updated, nil
}

// List implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) List(ctx context.Context, companyID string, filter attendance.AttendanceFilter) ([]attendance.Attendance, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"a.company_id = $1", "a.date >= $2", "a.date <= $3"}
	args := []interface{}{companyID, filter.FromDate, filter.ToDate}
	argIdx := 4

	if filter.EmployeeID != "" {
		conditions = append(conditions, fmt.Sprintf("a.employee_id = $%d", argIdx))
		args = append(args, filter.EmployeeID)
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
		SELECT COUNT(*) FROM attendance a
		JOIN employees e ON e.id = a.employee_id
		WHERE %s`, whereClause)
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendance: %w", err)
	}

	offset := (filter.Page - 1) * filter.Limit
	query := fmt.Sprintf(`
		SELECT %s, CONCAT(e.first_name, ' ', e.last_name), e.login_id
		FROM attendance a
		JOIN employees e ON e.id = a.employee_id
		WHERE %s
		ORDER BY a.date DESC, e.first_name, e.last_name
		LIMIT $%d OFFSET $%d
	`, attendanceColumns, whereClause, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendance: %w", err)
	}
	defer rows.Close()

	records := make([]attendance.Attendance, 0)
	for rows.Next() {
		var a attendance.Attendance
		if err := rows.Scan(append(attendanceDest(&a), &a.EmployeeName, &a.LoginID)...); err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

// MarkAbsentees implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) MarkAbsentees(ctx context.Context, date time.Time) (attendance.MarkAbsentResult, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		WITH inserted AS (
			INSERT INTO attendance (employee_id, company_id, date, status)
			SELECT e.id, e.company_id, $1::date,
				CASE WHEN EXISTS (
					SELECT 1 FROM leave_requests lr
					WHERE lr.employee_id = e.id AND lr.status = 'approved'
					  AND $1::date BETWEEN lr.start_date AND lr.end_date
				) THEN 'leave' ELSE 'absent' END
			FROM employees e
			WHERE e.date_of_joining <= $1::date
			  AND NOT EXISTS (SELECT 1 FROM attendance a WHERE a.employee_id = e.id AND a.date = $1::date)
			ON CONFLICT ON CONSTRAINT uk_attendance_employee_date DO NOTHING
			RETURNING status
		)
		SELECT
			COUNT(*) FILTER (WHERE status = 'leave'),
			COUNT(*) FILTER (WHERE status = 'absent')
		FROM inserted
	`

	result := attendance.MarkAbsentResult{Date: date.Format("2006-01-02")}
	if err := q.QueryRow(ctx, query, date).Scan(&result.Leave, &result.Absent); err != nil {
		return attendance.MarkAbsentResult{}, fmt.Errorf("failed to mark absentees for %s: %w", result.Date, err)
	}
	return result, nil
}
