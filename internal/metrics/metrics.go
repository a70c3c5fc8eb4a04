package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	RegistrationsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "events_registrations_total", Help: "Total successful event registrations"},
	)
	CancellationsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "events_cancellations_total", Help: "Total registrations cancelled"},
	)
	CapacityRejectionsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "events_capacity_rejections_total", Help: "Total registrations rejected because the event was full"},
	)
	AttendanceMarkedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "events_attendance_marked_total", Help: "Total registrations marked attended"},
	)
	KeyVerificationFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "events_key_verification_failures_total", Help: "Total attendance key submissions that did not match"},
	)
	KeysGeneratedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "events_attendance_keys_generated_total", Help: "Total attendance keys generated"},
	)
)

func Register() {
	prometheus.MustRegister(
		RegistrationsTotal,
		CancellationsTotal,
		CapacityRejectionsTotal,
		AttendanceMarkedTotal,
		KeyVerificationFailuresTotal,
		KeysGeneratedTotal,
	)
}
