package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// CompensationConfig is the admin-owned pay structure of one employee.
// All percentage fields are plain numbers (50 means 50%).
type CompensationConfig struct {
	MonthlyWage decimal.Decimal

	// Informational only; not used by ComputeBreakdown.
	WorkingDaysPerWeek int
	BreakTimeHours     decimal.Decimal

	BasicSalaryPercentage          decimal.Decimal
	HRAPercentage                  decimal.Decimal // of basic, not of wage
	StandardAllowancePercentage    decimal.Decimal
	PerformanceBonusPercentage     decimal.Decimal
	LeaveTravelAllowancePercentage decimal.Decimal

	// nil means derive the balancing amount. A zero override is still an override.
	FixedAllowance *decimal.Decimal

	PFEmployeePercentage decimal.Decimal // of basic
	PFEmployerPercentage decimal.Decimal // of basic
	ProfessionalTax      decimal.Decimal // flat monthly amount
}

// SalaryBreakdown is derived from a CompensationConfig on every read and never stored.
type SalaryBreakdown struct {
	BasicSalary          decimal.Decimal `json:"basic_salary"`
	HRA                  decimal.Decimal `json:"hra"`
	StandardAllowance    decimal.Decimal `json:"standard_allowance"`
	PerformanceBonus     decimal.Decimal `json:"performance_bonus"`
	LeaveTravelAllowance decimal.Decimal `json:"leave_travel_allowance"`
	FixedAllowance       decimal.Decimal `json:"fixed_allowance"`
	PFEmployee           decimal.Decimal `json:"pf_employee"`
	PFEmployer           decimal.Decimal `json:"pf_employer"`
	ProfessionalTax      decimal.Decimal `json:"professional_tax"`
	ComponentsTotal      decimal.Decimal `json:"components_total"`
	GrossSalary          decimal.Decimal `json:"gross_salary"`
	NetSalary            decimal.Decimal `json:"net_salary"`
}

// SalaryInfo is the persisted compensation record, one per employee.
type SalaryInfo struct {
	ID         string
	EmployeeID string
	Config     CompensationConfig
	YearlyWage decimal.Decimal
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
