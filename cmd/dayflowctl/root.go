package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "dayflowctl",
		Short:        "Dayflow HR maintenance tools",
		SilenceUsage: true,
	}
	cmd.AddCommand(newMigrateCmd())
	cmd.AddCommand(newBreakdownCmd())
	cmd.AddCommand(newLoginIDCmd())
	cmd.AddCommand(newPasswordCmd())
	cmd.AddCommand(newJobsCmd())
	return cmd
}
