package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "dayflow"

var (
	breakdownsComputed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "payroll",
		Name:      "breakdowns_total",
		Help:      "Total number of salary breakdowns computed, by whether the fixed allowance was overridden or derived.",
	}, []string{"fixed_allowance"})

	employeesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "employee",
		Name:      "created_total",
		Help:      "Total number of employees created with generated credentials.",
	})

	attendanceEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "attendance",
		Name:      "events_total",
		Help:      "Total number of attendance events broken down by kind.",
	}, []string{"kind"})

	leaveDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "leave",
		Name:      "decisions_total",
		Help:      "Total number of leave request decisions broken down by status and leave type.",
	}, []string{"status", "leave_type"})

	loginAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "auth",
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts broken down by result.",
	}, []string{"result"})

	jobRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "cron",
		Name:      "job_runs_total",
		Help:      "Total number of scheduled job runs broken down by job and result.",
	}, []string{"job", "result"})
)

func RecordBreakdown(overridden bool) {
	label := "derived"
	if overridden {
		label = "override"
	}
	breakdownsComputed.WithLabelValues(label).Inc()
}

func RecordEmployeeCreated() {
	employeesCreated.Inc()
}

// RecordAttendance counts check_in, check_out, marked_absent and marked_leave events.
func RecordAttendance(kind string, n int64) {
	attendanceEvents.WithLabelValues(kind).Add(float64(n))
}

func RecordLeaveDecision(status, leaveType string) {
	leaveDecisions.WithLabelValues(status, leaveType).Inc()
}

func RecordLogin(success bool) {
	result := "failure"
	if success {
		result = "success"
	}
	loginAttempts.WithLabelValues(result).Inc()
}

func RecordJobRun(job string, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	jobRuns.WithLabelValues(job, result).Inc()
}
