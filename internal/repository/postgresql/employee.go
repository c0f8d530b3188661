package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/employee"
	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeColumns = `
	e.id, e.user_id, e.company_id, e.login_id, e.first_name, e.last_name, e.email, e.phone,
	e.profile_picture, e.job_position, e.department, e.manager_id, e.location, e.date_of_joining,
	e.date_of_birth, e.residing_address, e.nationality, e.personal_email, e.gender,
	e.about, e.what_i_love_about_job, e.interests_hobbies, e.skills, e.certifications,
	e.bank_name, e.account_number, e.ifsc_code, e.pan_no, e.uan_no, e.emp_code,
	e.joining_serial, e.joining_year, e.created_at, e.updated_at,
	NULLIF(TRIM(CONCAT(m.first_name, ' ', m.last_name)), '') AS manager_name`

const employeeFrom = `
	FROM employees e
	LEFT JOIN employees m ON m.id = e.manager_id`

// employeeDest returns scan targets matching employeeColumns, plus a hook that
// finishes conversions that cannot scan directly.
func employeeDest(emp *employee.Employee) ([]any, func()) {
	var gender *string
	dest := []any{
		&emp.ID, &emp.UserID, &emp.CompanyID, &emp.LoginID, &emp.FirstName, &emp.LastName, &emp.Email, &emp.Phone,
		&emp.ProfilePicture, &emp.JobPosition, &emp.Department, &emp.ManagerID, &emp.Location, &emp.DateOfJoining,
		&emp.DateOfBirth, &emp.ResidingAddress, &emp.Nationality, &emp.PersonalEmail, &gender,
		&emp.About, &emp.WhatILoveAboutJob, &emp.InterestsHobbies, &emp.Skills, &emp.Certifications,
		&emp.BankName, &emp.AccountNumber, &emp.IFSCCode, &emp.PANNo, &emp.UANNo, &emp.EmpCode,
		&emp.JoiningSerial, &emp.JoiningYear, &emp.CreatedAt, &emp.UpdatedAt,
		&emp.ManagerName,
	}
	return dest, func() {
		if gender != nil {
			g := employee.Gender(*gender)
			emp.Gender = &g
		}
	}
}

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var emp employee.Employee
	dest, finish := employeeDest(&emp)
	if err := row.Scan(dest...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, err
	}
	finish()
	return emp, nil
}

func mapEmployeeWriteError(err error) error {
	switch {
	case isUniqueViolation(err, "uk_employees_company_email"):
		return employee.ErrEmailExists
	case isUniqueViolation(err, "uk_employees_login_id"):
		return employee.ErrLoginIDExists
	case isForeignKeyViolation(err, "employees_manager_id_fkey"):
		return employee.ErrManagerNotFound
	}
	return err
}

// Create implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		INSERT INTO employees (
			user_id, company_id, login_id, first_name, last_name, email, phone,
			job_position, department, manager_id, location, date_of_joining,
			joining_serial, joining_year
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id
	`

	var id string
	err := q.QueryRow(ctx, query,
		newEmployee.UserID,
		newEmployee.CompanyID,
		newEmployee.LoginID,
		newEmployee.FirstName,
		newEmployee.LastName,
		newEmployee.Email,
		newEmployee.Phone,
		newEmployee.JobPosition,
		newEmployee.Department,
		newEmployee.ManagerID,
		newEmployee.Location,
		newEmployee.DateOfJoining,
		newEmployee.JoiningSerial,
		newEmployee.JoiningYear,
	).Scan(&id)
	if err != nil {
		if mapped := mapEmployeeWriteError(err); mapped != err {
			return employee.Employee{}, mapped
		}
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}

	return e.GetByID(ctx, newEmployee.CompanyID, id)
}

// GetByID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByID(ctx context.Context, companyID, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `SELECT ` + employeeColumns + employeeFrom + ` WHERE e.id = $1 AND e.company_id = $2`
	emp, err := scanEmployee(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.Employee{}, err
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee with id %s: %w", id, err)
	}
	return emp, nil
}

// GetByUserID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByUserID(ctx context.Context, userID string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `SELECT ` + employeeColumns + employeeFrom + ` WHERE e.user_id = $1`
	emp, err := scanEmployee(q.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.Employee{}, err
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee for user %s: %w", userID, err)
	}
	return emp, nil
}

// List implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) List(ctx context.Context, companyID string, filter employee.EmployeeFilter, day time.Time) ([]employee.DirectoryEntry, int64, error) {
	q := GetQuerier(ctx, e.db)

	conditions := []string{"e.company_id = $1"}
	args := []interface{}{companyID}
	argIdx := 2

	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(CONCAT(e.first_name, ' ', e.last_name) ILIKE $%d OR e.login_id ILIKE $%d OR e.email ILIKE $%d OR e.department ILIKE $%d)",
			argIdx, argIdx, argIdx, argIdx))
		args = append(args, "%"+filter.Search+"%")
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM employees e WHERE %s", whereClause)
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count employees: %w", err)
	}

	offset := (filter.Page - 1) * filter.Limit
	query := fmt.Sprintf(`
		SELECT %s,
			EXISTS (
				SELECT 1 FROM leave_requests lr
				WHERE lr.employee_id = e.id AND lr.status = 'approved'
				  AND $%d::date BETWEEN lr.start_date AND lr.end_date
			) AS on_leave,
			a.status AS attendance_status
		%s
		LEFT JOIN attendance a ON a.employee_id = e.id AND a.date = $%d::date
		WHERE %s
		ORDER BY e.first_name, e.last_name
		LIMIT $%d OFFSET $%d
	`, employeeColumns, argIdx, employeeFrom, argIdx, whereClause, argIdx+1, argIdx+2)
	args = append(args, day, filter.Limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	entries := make([]employee.DirectoryEntry, 0)
	for rows.Next() {
		var entry employee.DirectoryEntry
		var onLeave bool
		var attendanceStatus *string
		dest, finish := employeeDest(&entry.Employee)
		if err := rows.Scan(append(dest, &onLeave, &attendanceStatus)...); err != nil {
			return nil, 0, fmt.Errorf("failed to scan employee: %w", err)
		}
		finish()
		entry.TodayStatus = employee.ResolveTodayStatus(onLeave, attendanceStatus)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}

// Update implements employee.EmployeeRepository. Every mutable column is written;
// callers load, modify and save.
func (e *employeeRepositoryImpl) Update(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	var gender *string
	if emp.Gender != nil {
		g := string(*emp.Gender)
		gender = &g
	}
	skills := emp.Skills
	if skills == nil {
		skills = []string{}
	}
	certifications := emp.Certifications
	if certifications == nil {
		certifications = []string{}
	}

	query := `
		UPDATE employees SET
			first_name = $1, last_name = $2, phone = $3,
			job_position = $4, department = $5, manager_id = $6, location = $7, date_of_joining = $8,
			date_of_birth = $9, residing_address = $10, nationality = $11, personal_email = $12, gender = $13,
			about = $14, what_i_love_about_job = $15, interests_hobbies = $16, skills = $17, certifications = $18,
			bank_name = $19, account_number = $20, ifsc_code = $21, pan_no = $22, uan_no = $23, emp_code = $24,
			updated_at = NOW()
		WHERE id = $25 AND company_id = $26
		RETURNING id
	`

	var id string
	err := q.QueryRow(ctx, query,
		emp.FirstName, emp.LastName, emp.Phone,
		emp.JobPosition, emp.Department, emp.ManagerID, emp.Location, emp.DateOfJoining,
		emp.DateOfBirth, emp.ResidingAddress, emp.Nationality, emp.PersonalEmail, gender,
		emp.About, emp.WhatILoveAboutJob, emp.InterestsHobbies, skills, certifications,
		emp.BankName, emp.AccountNumber, emp.IFSCCode, emp.PANNo, emp.UANNo, emp.EmpCode,
		emp.ID, emp.CompanyID,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		if mapped := mapEmployeeWriteError(err); mapped != err {
			return employee.Employee{}, mapped
		}
		return employee.Employee{}, fmt.Errorf("failed to update employee with id %s: %w", emp.ID, err)
	}

	return e.GetByID(ctx, emp.CompanyID, id)
}

// UpdateProfilePicture implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) UpdateProfilePicture(ctx context.Context, companyID, id, url string) error {
	q := GetQuerier(ctx, e.db)

	tag, err := q.Exec(ctx,
		`UPDATE employees SET profile_picture = $1, updated_at = NOW() WHERE id = $2 AND company_id = $3`,
		url, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to update profile picture for employee with id %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}
