package payroll

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/currency"
	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// OptionalDecimal distinguishes an absent JSON key (Set == false) from an explicit
// null (Set == true, Value == nil).
type OptionalDecimal struct {
	Set   bool
	Value *decimal.Decimal
}

func (o *OptionalDecimal) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Value = nil
		return nil
	}
	var d decimal.Decimal
	if err := json.Unmarshal(data, &d); err != nil {
		return err
	}
	o.Value = &d
	return nil
}

// UpsertSalaryInfoRequest carries a partial config. Absent fields keep the stored
// value, or DefaultCompensationConfig when the employee has no record yet.
// fixed_allowance: null clears the override, a number sets it.
type UpsertSalaryInfoRequest struct {
	MonthlyWage                    *decimal.Decimal `json:"monthly_wage,omitempty"`
	WorkingDaysPerWeek             *int             `json:"working_days_per_week,omitempty"`
	BreakTimeHours                 *decimal.Decimal `json:"break_time_hours,omitempty"`
	BasicSalaryPercentage          *decimal.Decimal `json:"basic_salary_percentage,omitempty"`
	HRAPercentage                  *decimal.Decimal `json:"hra_percentage,omitempty"`
	StandardAllowancePercentage    *decimal.Decimal `json:"standard_allowance_percentage,omitempty"`
	PerformanceBonusPercentage     *decimal.Decimal `json:"performance_bonus_percentage,omitempty"`
	LeaveTravelAllowancePercentage *decimal.Decimal `json:"leave_travel_allowance_percentage,omitempty"`
	FixedAllowance                 OptionalDecimal  `json:"fixed_allowance"`
	PFEmployeePercentage           *decimal.Decimal `json:"pf_employee_percentage,omitempty"`
	PFEmployerPercentage           *decimal.Decimal `json:"pf_employer_percentage,omitempty"`
	ProfessionalTax                *decimal.Decimal `json:"professional_tax,omitempty"`
}

func (r *UpsertSalaryInfoRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.MonthlyWage != nil && !r.MonthlyWage.IsPositive() {
		errs.Add("monthly_wage", "must be greater than 0")
	}
	if r.WorkingDaysPerWeek != nil && (*r.WorkingDaysPerWeek < 1 || *r.WorkingDaysPerWeek > 7) {
		errs.Add("working_days_per_week", "must be between 1 and 7")
	}
	if r.BreakTimeHours != nil && r.BreakTimeHours.IsNegative() {
		errs.Add("break_time_hours", "must be non-negative")
	}

	nonNegative := []struct {
		field string
		value *decimal.Decimal
	}{
		{"basic_salary_percentage", r.BasicSalaryPercentage},
		{"hra_percentage", r.HRAPercentage},
		{"standard_allowance_percentage", r.StandardAllowancePercentage},
		{"performance_bonus_percentage", r.PerformanceBonusPercentage},
		{"leave_travel_allowance_percentage", r.LeaveTravelAllowancePercentage},
		{"pf_employee_percentage", r.PFEmployeePercentage},
		{"pf_employer_percentage", r.PFEmployerPercentage},
		{"professional_tax", r.ProfessionalTax},
		{"fixed_allowance", r.FixedAllowance.Value},
	}
	for _, f := range nonNegative {
		if f.value != nil && f.value.IsNegative() {
			errs.Add(f.field, "must be non-negative")
		}
	}

	return errs.Err()
}

// ApplyTo overlays the fields present in the request onto base.
func (r *UpsertSalaryInfoRequest) ApplyTo(base CompensationConfig) CompensationConfig {
	cfg := base
	if r.MonthlyWage != nil {
		cfg.MonthlyWage = *r.MonthlyWage
	}
	if r.WorkingDaysPerWeek != nil {
		cfg.WorkingDaysPerWeek = *r.WorkingDaysPerWeek
	}
	if r.BreakTimeHours != nil {
		cfg.BreakTimeHours = *r.BreakTimeHours
	}
	if r.BasicSalaryPercentage != nil {
		cfg.BasicSalaryPercentage = *r.BasicSalaryPercentage
	}
	if r.HRAPercentage != nil {
		cfg.HRAPercentage = *r.HRAPercentage
	}
	if r.StandardAllowancePercentage != nil {
		cfg.StandardAllowancePercentage = *r.StandardAllowancePercentage
	}
	if r.PerformanceBonusPercentage != nil {
		cfg.PerformanceBonusPercentage = *r.PerformanceBonusPercentage
	}
	if r.LeaveTravelAllowancePercentage != nil {
		cfg.LeaveTravelAllowancePercentage = *r.LeaveTravelAllowancePercentage
	}
	if r.FixedAllowance.Set {
		cfg.FixedAllowance = r.FixedAllowance.Value
	}
	if r.PFEmployeePercentage != nil {
		cfg.PFEmployeePercentage = *r.PFEmployeePercentage
	}
	if r.PFEmployerPercentage != nil {
		cfg.PFEmployerPercentage = *r.PFEmployerPercentage
	}
	if r.ProfessionalTax != nil {
		cfg.ProfessionalTax = *r.ProfessionalTax
	}
	return cfg
}

// BreakdownDisplay holds the breakdown as Indian Rupee strings (no decimals).
type BreakdownDisplay struct {
	MonthlyWage          string `json:"monthly_wage"`
	YearlyWage           string `json:"yearly_wage"`
	BasicSalary          string `json:"basic_salary"`
	HRA                  string `json:"hra"`
	StandardAllowance    string `json:"standard_allowance"`
	PerformanceBonus     string `json:"performance_bonus"`
	LeaveTravelAllowance string `json:"leave_travel_allowance"`
	FixedAllowance       string `json:"fixed_allowance"`
	PFEmployee           string `json:"pf_employee"`
	PFEmployer           string `json:"pf_employer"`
	ProfessionalTax      string `json:"professional_tax"`
	GrossSalary          string `json:"gross_salary"`
	NetSalary            string `json:"net_salary"`
}

func NewBreakdownDisplay(monthly decimal.Decimal, b SalaryBreakdown) BreakdownDisplay {
	return BreakdownDisplay{
		MonthlyWage:          currency.FormatINR(monthly),
		YearlyWage:           currency.FormatINR(YearlyWage(monthly)),
		BasicSalary:          currency.FormatINR(b.BasicSalary),
		HRA:                  currency.FormatINR(b.HRA),
		StandardAllowance:    currency.FormatINR(b.StandardAllowance),
		PerformanceBonus:     currency.FormatINR(b.PerformanceBonus),
		LeaveTravelAllowance: currency.FormatINR(b.LeaveTravelAllowance),
		FixedAllowance:       currency.FormatINR(b.FixedAllowance),
		PFEmployee:           currency.FormatINR(b.PFEmployee),
		PFEmployer:           currency.FormatINR(b.PFEmployer),
		ProfessionalTax:      currency.FormatINR(b.ProfessionalTax),
		GrossSalary:          currency.FormatINR(b.GrossSalary),
		NetSalary:            currency.FormatINR(b.NetSalary),
	}
}

type BreakdownResponse struct {
	MonthlyWage decimal.Decimal  `json:"monthly_wage"`
	YearlyWage  decimal.Decimal  `json:"yearly_wage"`
	Breakdown   SalaryBreakdown  `json:"breakdown"`
	Display     BreakdownDisplay `json:"display"`
}

func NewBreakdownResponse(cfg CompensationConfig) BreakdownResponse {
	b := ComputeBreakdown(cfg)
	return BreakdownResponse{
		MonthlyWage: cfg.MonthlyWage,
		YearlyWage:  YearlyWage(cfg.MonthlyWage),
		Breakdown:   b,
		Display:     NewBreakdownDisplay(cfg.MonthlyWage, b),
	}
}

type SalaryInfoResponse struct {
	ID                             string           `json:"id"`
	EmployeeID                     string           `json:"employee_id"`
	MonthlyWage                    decimal.Decimal  `json:"monthly_wage"`
	YearlyWage                     decimal.Decimal  `json:"yearly_wage"`
	WorkingDaysPerWeek             int              `json:"working_days_per_week"`
	BreakTimeHours                 decimal.Decimal  `json:"break_time_hours"`
	BasicSalaryPercentage          decimal.Decimal  `json:"basic_salary_percentage"`
	HRAPercentage                  decimal.Decimal  `json:"hra_percentage"`
	StandardAllowancePercentage    decimal.Decimal  `json:"standard_allowance_percentage"`
	PerformanceBonusPercentage     decimal.Decimal  `json:"performance_bonus_percentage"`
	LeaveTravelAllowancePercentage decimal.Decimal  `json:"leave_travel_allowance_percentage"`
	FixedAllowance                 *decimal.Decimal `json:"fixed_allowance"`
	PFEmployeePercentage           decimal.Decimal  `json:"pf_employee_percentage"`
	PFEmployerPercentage           decimal.Decimal  `json:"pf_employer_percentage"`
	ProfessionalTax                decimal.Decimal  `json:"professional_tax"`
	Breakdown                      SalaryBreakdown  `json:"breakdown"`
	Display                        BreakdownDisplay `json:"display"`
	UpdatedAt                      string           `json:"updated_at"`
}

func NewSalaryInfoResponse(info SalaryInfo) SalaryInfoResponse {
	cfg := info.Config
	b := ComputeBreakdown(cfg)
	return SalaryInfoResponse{
		ID:                             info.ID,
		EmployeeID:                     info.EmployeeID,
		MonthlyWage:                    cfg.MonthlyWage,
		YearlyWage:                     info.YearlyWage,
		WorkingDaysPerWeek:             cfg.WorkingDaysPerWeek,
		BreakTimeHours:                 cfg.BreakTimeHours,
		BasicSalaryPercentage:          cfg.BasicSalaryPercentage,
		HRAPercentage:                  cfg.HRAPercentage,
		StandardAllowancePercentage:    cfg.StandardAllowancePercentage,
		PerformanceBonusPercentage:     cfg.PerformanceBonusPercentage,
		LeaveTravelAllowancePercentage: cfg.LeaveTravelAllowancePercentage,
		FixedAllowance:                 cfg.FixedAllowance,
		PFEmployeePercentage:           cfg.PFEmployeePercentage,
		PFEmployerPercentage:           cfg.PFEmployerPercentage,
		ProfessionalTax:                cfg.ProfessionalTax,
		Breakdown:                      b,
		Display:                        NewBreakdownDisplay(cfg.MonthlyWage, b),
		UpdatedAt:                      info.UpdatedAt.Format(time.RFC3339),
	}
}
