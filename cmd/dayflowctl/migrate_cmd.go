package main

import (
	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/database"
	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or inspect the embedded schema migrations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply every pending migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := connectDB(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()
			return database.Migrate(cmd.Context(), db)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := connectDB(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()
			return database.MigrateDown(cmd.Context(), db)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Print applied and pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := connectDB(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			statuses, err := database.Status(cmd.Context(), db)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), statuses)
		},
	})
	return cmd
}
