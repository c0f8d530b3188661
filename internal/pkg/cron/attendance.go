package cron

import (
	"context"
	"time"

	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/attendance"
)

const MarkAbsentJob = "mark_absent_employees"

type AttendanceJobs struct {
	attendanceService attendance.AttendanceService
	now               func() time.Time
}

func NewAttendanceJobs(attendanceService attendance.AttendanceService) *AttendanceJobs {
	return &AttendanceJobs{
		attendanceService: attendanceService,
		now:               time.Now,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	// Hourly so a missed midnight is caught up; rows are only inserted where none exist.
	scheduler.AddJob(MarkAbsentJob, 1*time.Hour, j.MarkAbsentEmployees)
}

// MarkAbsentEmployees closes out yesterday (UTC): employees on approved leave get
// a "leave" row, everyone else without a row gets "absent".
func (j *AttendanceJobs) MarkAbsentEmployees(ctx context.Context) error {
	yesterday := j.now().UTC().AddDate(0, 0, -1)
	_, err := j.attendanceService.MarkAbsentees(ctx, yesterday)
	return err
}
