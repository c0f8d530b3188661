package payroll

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// DefaultCompensationConfig is applied to every field an admin leaves out when
// creating or updating a salary record.
var DefaultCompensationConfig = CompensationConfig{
	MonthlyWage:                    decimal.NewFromInt(50000),
	WorkingDaysPerWeek:             5,
	BreakTimeHours:                 decimal.NewFromInt(1),
	BasicSalaryPercentage:          decimal.NewFromInt(50),
	HRAPercentage:                  decimal.NewFromInt(50),
	StandardAllowancePercentage:    decimal.RequireFromString("4.167"),
	PerformanceBonusPercentage:     decimal.RequireFromString("8.33"),
	LeaveTravelAllowancePercentage: decimal.RequireFromString("8.33"),
	FixedAllowance:                 nil,
	PFEmployeePercentage:           decimal.NewFromInt(12),
	PFEmployerPercentage:           decimal.NewFromInt(12),
	ProfessionalTax:                decimal.NewFromInt(200),
}

func percentOf(base, pct decimal.Decimal) decimal.Decimal {
	return base.Mul(pct).Div(hundred)
}

// ComputeBreakdown itemizes a monthly salary. It never fails and does not validate
// its input: a negative wage or a percentage above 100 flows straight through the
// arithmetic, and components exceeding the wage yield a negative fixed allowance.
func ComputeBreakdown(cfg CompensationConfig) SalaryBreakdown {
	wage := cfg.MonthlyWage

	basic := percentOf(wage, cfg.BasicSalaryPercentage)
	hra := percentOf(basic, cfg.HRAPercentage)
	standard := percentOf(wage, cfg.StandardAllowancePercentage)
	bonus := percentOf(wage, cfg.PerformanceBonusPercentage)
	lta := percentOf(wage, cfg.LeaveTravelAllowancePercentage)

	componentsTotal := basic.Add(hra).Add(standard).Add(bonus).Add(lta)

	fixed := wage.Sub(componentsTotal)
	if cfg.FixedAllowance != nil {
		fixed = *cfg.FixedAllowance
	}

	pfEmployee := percentOf(basic, cfg.PFEmployeePercentage)
	pfEmployer := percentOf(basic, cfg.PFEmployerPercentage)

	gross := componentsTotal.Add(fixed)
	net := gross.Sub(pfEmployee).Sub(cfg.ProfessionalTax)

	return SalaryBreakdown{
		BasicSalary:          basic,
		HRA:                  hra,
		StandardAllowance:    standard,
		PerformanceBonus:     bonus,
		LeaveTravelAllowance: lta,
		FixedAllowance:       fixed,
		PFEmployee:           pfEmployee,
		PFEmployer:           pfEmployer,
		ProfessionalTax:      cfg.ProfessionalTax,
		ComponentsTotal:      componentsTotal,
		GrossSalary:          gross,
		NetSalary:            net,
	}
}

// YearlyWage is the display-only annual figure stored next to the monthly wage.
func YearlyWage(monthly decimal.Decimal) decimal.Decimal {
	return monthly.Mul(decimal.NewFromInt(12))
}
