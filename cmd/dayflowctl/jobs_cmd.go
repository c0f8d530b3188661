package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/cron"
	"github.com/dayflow-hr/dayflow-backend-go/internal/repository/postgresql"
	attendanceService "github.com/dayflow-hr/dayflow-backend-go/internal/service/attendance"
	"github.com/spf13/cobra"
)

func newJobsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jobs",
		Short: "Run background jobs once, outside the API process",
	}

	cmd.AddCommand(&cobra.Command{
		Use:       "run <job>",
		Short:     fmt.Sprintf("Run one job now (%s, %s)", cron.MarkAbsentJob, cron.PurgeRefreshTokensJob),
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{cron.MarkAbsentJob, cron.PurgeRefreshTokensJob},
		RunE: func(cmd *cobra.Command, args []string) error {
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

			db, _, err := connectDB(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			scheduler := cron.NewScheduler()
			cron.NewAttendanceJobs(attendanceService.NewAttendanceService(postgresql.NewAttendanceRepository(db))).RegisterJobs(scheduler)
			cron.NewSessionJobs(postgresql.NewJWTRepository(db)).RegisterJobs(scheduler)
			return scheduler.RunJob(cmd.Context(), args[0])
		},
	})
	return cmd
}
