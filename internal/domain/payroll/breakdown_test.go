package payroll

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertAmount(t *testing.T, want string, got decimal.Decimal, field string) {
	t.Helper()
	assert.True(t, d(want).Equal(got), "%s: want %s, got %s", field, want, got)
}

func TestComputeBreakdown_DefaultConfig(t *testing.T) {
	b := ComputeBreakdown(DefaultCompensationConfig)

	assertAmount(t, "25000", b.BasicSalary, "basic")
	assertAmount(t, "12500", b.HRA, "hra")
	assertAmount(t, "2083.5", b.StandardAllowance, "standard allowance")
	assertAmount(t, "4165", b.PerformanceBonus, "performance bonus")
	assertAmount(t, "4165", b.LeaveTravelAllowance, "lta")
	assertAmount(t, "47913.5", b.ComponentsTotal, "components total")
	assertAmount(t, "2086.5", b.FixedAllowance, "fixed allowance")
	assertAmount(t, "50000", b.GrossSalary, "gross")
	assertAmount(t, "3000", b.PFEmployee, "pf employee")
	assertAmount(t, "3000", b.PFEmployer, "pf employer")
	assertAmount(t, "200", b.ProfessionalTax, "professional tax")
	assertAmount(t, "46800", b.NetSalary, "net")
}

func TestComputeBreakdown_FixedAllowanceOverride(t *testing.T) {
	zero := decimal.Zero
	cfg := DefaultCompensationConfig
	cfg.FixedAllowance = &zero

	b := ComputeBreakdown(cfg)

	assertAmount(t, "0", b.FixedAllowance, "fixed allowance")
	assertAmount(t, "47913.5", b.GrossSalary, "gross")
	assert.False(t, b.GrossSalary.Equal(cfg.MonthlyWage))
	assertAmount(t, "44713.5", b.NetSalary, "net")

	bonus := d("10000")
	cfg.FixedAllowance = &bonus
	assertAmount(t, "57913.5", ComputeBreakdown(cfg).GrossSalary, "gross with positive override")
}

func TestComputeBreakdown_ZeroPercentages(t *testing.T) {
	cfg := CompensationConfig{
		MonthlyWage:     d("30000"),
		ProfessionalTax: d("200"),
	}

	b := ComputeBreakdown(cfg)

	for name, v := range map[string]decimal.Decimal{
		"basic": b.BasicSalary, "hra": b.HRA, "standard": b.StandardAllowance,
		"bonus": b.PerformanceBonus, "lta": b.LeaveTravelAllowance,
		"pf employee": b.PFEmployee, "pf employer": b.PFEmployer,
	} {
		assert.True(t, v.IsZero(), "%s should be zero, got %s", name, v)
	}
	assertAmount(t, "30000", b.FixedAllowance, "fixed allowance")
	assertAmount(t, "30000", b.GrossSalary, "gross")
	assertAmount(t, "29800", b.NetSalary, "net")
}

func TestComputeBreakdown_NegativeFixedAllowance(t *testing.T) {
	cfg := DefaultCompensationConfig
	cfg.BasicSalaryPercentage = d("80")
	cfg.HRAPercentage = d("50")

	b := ComputeBreakdown(cfg)

	assert.True(t, b.FixedAllowance.IsNegative())
	assertAmount(t, "-20413.5", b.FixedAllowance, "fixed allowance")
	assertAmount(t, "50000", b.GrossSalary, "gross still reconciles")
}

func TestComputeBreakdown_Properties(t *testing.T) {
	configs := map[string]CompensationConfig{
		"default": DefaultCompensationConfig,
		"odd wage": func() CompensationConfig {
			c := DefaultCompensationConfig
			c.MonthlyWage = d("33333.33")
			return c
		}(),
		"generous": func() CompensationConfig {
			c := DefaultCompensationConfig
			c.MonthlyWage = d("1234567.89")
			c.BasicSalaryPercentage = d("40")
			c.HRAPercentage = d("40")
			c.StandardAllowancePercentage = d("7.5")
			c.PFEmployeePercentage = d("10")
			c.PFEmployerPercentage = d("13.61")
			return c
		}(),
		"out of range percentages": func() CompensationConfig {
			c := DefaultCompensationConfig
			c.BasicSalaryPercentage = d("150")
			c.PerformanceBonusPercentage = d("120")
			return c
		}(),
		"negative wage": func() CompensationConfig {
			c := DefaultCompensationConfig
			c.MonthlyWage = d("-1000")
			return c
		}(),
	}

	for name, cfg := range configs {
		t.Run(name, func(t *testing.T) {
			b := ComputeBreakdown(cfg)

			assert.True(t, b.GrossSalary.Equal(cfg.MonthlyWage), "gross %s != wage %s", b.GrossSalary, cfg.MonthlyWage)
			assert.True(t, b.NetSalary.Equal(b.GrossSalary.Sub(b.PFEmployee).Sub(b.ProfessionalTax)))

			again := ComputeBreakdown(cfg)
			assert.Equal(t, b, again)

			employerHeavy := cfg
			employerHeavy.PFEmployerPercentage = d("99")
			assert.True(t, ComputeBreakdown(employerHeavy).NetSalary.Equal(b.NetSalary), "pf employer must not move net")
		})
	}
}

func TestComputeBreakdown_IgnoresInformationalFields(t *testing.T) {
	a := DefaultCompensationConfig
	b := DefaultCompensationConfig
	b.WorkingDaysPerWeek = 6
	b.BreakTimeHours = d("0.5")

	assert.Equal(t, ComputeBreakdown(a), ComputeBreakdown(b))
}

func TestYearlyWage(t *testing.T) {
	assertAmount(t, "600000", YearlyWage(d("50000")), "yearly")
	assertAmount(t, "399999.96", YearlyWage(d("33333.33")), "yearly")
}

func TestDefaultCompensationConfig_Unchanged(t *testing.T) {
	before := DefaultCompensationConfig
	cfg := DefaultCompensationConfig
	cfg.MonthlyWage = d("1")
	_ = ComputeBreakdown(cfg)

	assert.Nil(t, DefaultCompensationConfig.FixedAllowance)
	assert.True(t, before.MonthlyWage.Equal(DefaultCompensationConfig.MonthlyWage))
}
