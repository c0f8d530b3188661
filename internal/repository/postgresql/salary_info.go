package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/payroll"
	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type salaryInfoRepository struct {
	db *database.DB
}

func NewSalaryInfoRepository(db *database.DB) payroll.SalaryInfoRepository {
	return &salaryInfoRepository{db: db}
}

const salaryInfoColumns = `
	s.id, s.employee_id, s.monthly_wage, s.yearly_wage, s.working_days_per_week, s.break_time_hours,
	s.basic_salary_percentage, s.hra_percentage, s.standard_allowance_percentage,
	s.performance_bonus_percentage, s.leave_travel_allowance_percentage, s.fixed_allowance,
	s.pf_employee_percentage, s.pf_employer_percentage, s.professional_tax,
	s.created_at, s.updated_at`

func scanSalaryInfo(row pgx.Row) (payroll.SalaryInfo, error) {
	var info payroll.SalaryInfo
	cfg := &info.Config
	err := row.Scan(
		&info.ID, &info.EmployeeID, &cfg.MonthlyWage, &info.YearlyWage, &cfg.WorkingDaysPerWeek, &cfg.BreakTimeHours,
		&cfg.BasicSalaryPercentage, &cfg.HRAPercentage, &cfg.StandardAllowancePercentage,
		&cfg.PerformanceBonusPercentage, &cfg.LeaveTravelAllowancePercentage, &cfg.FixedAllowance,
		&cfg.PFEmployeePercentage, &cfg.PFEmployerPercentage, &cfg.ProfessionalTax,
		&info.CreatedAt, &info.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.SalaryInfo{}, payroll.ErrSalaryInfoNotFound
		}
		return payroll.SalaryInfo{}, err
	}
	return info, nil
}

// GetByEmployeeID implements payroll.SalaryInfoRepository.
func (r *salaryInfoRepository) GetByEmployeeID(ctx context.Context, companyID, employeeID string) (payroll.SalaryInfo, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + salaryInfoColumns + `
		FROM salary_info s
		JOIN employees e ON e.id = s.employee_id
		WHERE s.employee_id = $1 AND e.company_id = $2
	`

	info, err := scanSalaryInfo(q.QueryRow(ctx, query, employeeID, companyID))
	if err != nil {
		if errors.Is(err, payroll.ErrSalaryInfoNotFound) {
			return payroll.SalaryInfo{}, err
		}
		return payroll.SalaryInfo{}, fmt.Errorf("failed to get salary info for employee %s: %w", employeeID, err)
	}
	return info, nil
}

// Upsert implements payroll.SalaryInfoRepository.
func (r *salaryInfoRepository) Upsert(ctx context.Context, info payroll.SalaryInfo) (payroll.SalaryInfo, error) {
	q := GetQuerier(ctx, r.db)

	cfg := info.Config
	query := `
		INSERT INTO salary_info AS s (
			employee_id, monthly_wage, yearly_wage, working_days_per_week, break_time_hours,
			basic_salary_percentage, hra_percentage, standard_allowance_percentage,
			performance_bonus_percentage, leave_travel_allowance_percentage, fixed_allowance,
			pf_employee_percentage, pf_employer_percentage, professional_tax
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT ON CONSTRAINT uk_salary_info_employee DO UPDATE SET
			monthly_wage = EXCLUDED.monthly_wage,
			yearly_wage = EXCLUDED.yearly_wage,
			working_days_per_week = EXCLUDED.working_days_per_week,
			break_time_hours = EXCLUDED.break_time_hours,
			basic_salary_percentage = EXCLUDED.basic_salary_percentage,
			hra_percentage = EXCLUDED.hra_percentage,
			standard_allowance_percentage = EXCLUDED.standard_allowance_percentage,
			performance_bonus_percentage = EXCLUDED.performance_bonus_percentage,
			leave_travel_allowance_percentage = EXCLUDED.leave_travel_allowance_percentage,
			fixed_allowance = EXCLUDED.fixed_allowance,
			pf_employee_percentage = EXCLUDED.pf_employee_percentage,
			pf_employer_percentage = EXCLUDED.pf_employer_percentage,
			professional_tax = EXCLUDED.professional_tax,
			updated_at = NOW()
		RETURNING ` + salaryInfoColumns

	saved, err := scanSalaryInfo(q.QueryRow(ctx, query,
		info.EmployeeID,
		cfg.MonthlyWage,
		info.YearlyWage,
		cfg.WorkingDaysPerWeek,
		cfg.BreakTimeHours,
		cfg.BasicSalaryPercentage,
		cfg.HRAPercentage,
		cfg.StandardAllowancePercentage,
		cfg.PerformanceBonusPercentage,
		cfg.LeaveTravelAllowancePercentage,
		cfg.FixedAllowance,
		cfg.PFEmployeePercentage,
		cfg.PFEmployerPercentage,
		cfg.ProfessionalTax,
	))
	if err != nil {
		if isForeignKeyViolation(err, "") {
			return payroll.SalaryInfo{}, payroll.ErrEmployeeNotFound
		}
		return payroll.SalaryInfo{}, fmt.Errorf("failed to save salary info for employee %s: %w", info.EmployeeID, err)
	}
	return saved, nil
}
