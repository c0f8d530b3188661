package main

import (
	"fmt"

	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

type decimalFlag struct {
	name   string
	target *decimal.Decimal
	raw    string
}

func newBreakdownCmd() *cobra.Command {
	cfg := payroll.DefaultCompensationConfig
	var fixed string

	flags := []*decimalFlag{
		{name: "wage", target: &cfg.MonthlyWage},
		{name: "basic", target: &cfg.BasicSalaryPercentage},
		{name: "hra", target: &cfg.HRAPercentage},
		{name: "standard", target: &cfg.StandardAllowancePercentage},
		{name: "bonus", target: &cfg.PerformanceBonusPercentage},
		{name: "lta", target: &cfg.LeaveTravelAllowancePercentage},
		{name: "pf-employee", target: &cfg.PFEmployeePercentage},
		{name: "pf-employer", target: &cfg.PFEmployerPercentage},
		{name: "ptax", target: &cfg.ProfessionalTax},
	}

	cmd := &cobra.Command{
		Use:   "breakdown",
		Short: "Compute a monthly salary breakdown without touching the database",
		Example: "  dayflowctl breakdown --wage 50000\n" +
			"  dayflowctl breakdown --wage 80000 --fixed 0",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, f := range flags {
				d, err := decimal.NewFromString(f.raw)
				if err != nil {
					return fmt.Errorf("invalid --%s: %w", f.name, err)
				}
				*f.target = d
			}
			if fixed != "" {
				d, err := decimal.NewFromString(fixed)
				if err != nil {
					return fmt.Errorf("invalid --fixed: %w", err)
				}
				cfg.FixedAllowance = &d
			}
			return writeJSON(cmd.OutOrStdout(), payroll.NewBreakdownResponse(cfg))
		},
	}

	for _, f := range flags {
		cmd.Flags().StringVar(&f.raw, f.name, f.target.String(), "")
	}
	cmd.Flags().Lookup("wage").Usage = "Monthly wage"
	cmd.Flags().Lookup("basic").Usage = "Basic salary, percent of wage"
	cmd.Flags().Lookup("hra").Usage = "HRA, percent of basic"
	cmd.Flags().Lookup("standard").Usage = "Standard allowance, percent of wage"
	cmd.Flags().Lookup("bonus").Usage = "Performance bonus, percent of wage"
	cmd.Flags().Lookup("lta").Usage = "Leave travel allowance, percent of wage"
	cmd.Flags().Lookup("pf-employee").Usage = "Employee PF, percent of basic"
	cmd.Flags().Lookup("pf-employer").Usage = "Employer PF, percent of basic"
	cmd.Flags().Lookup("ptax").Usage = "Professional tax, flat amount"
	cmd.Flags().StringVar(&fixed, "fixed", "", "Fixed allowance override (empty derives the balance)")
	return cmd
}
