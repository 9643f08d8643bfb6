package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	signupsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "roster_service",
		Subsystem: "roster",
		Name:      "signups_total",
		Help:      "Number of participants successfully signed up.",
	})
	removalsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "roster_service",
		Subsystem: "roster",
		Name:      "removals_total",
		Help:      "Number of participants successfully removed.",
	})
	rejectionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "roster_service",
		Subsystem: "roster",
		Name:      "rejections_total",
		Help:      "Roster requests rejected by validation, by reason.",
	}, []string{"reason"})
)

func init() {
	prometheus.MustRegister(signupsTotal, removalsTotal, rejectionsTotal)
}

// RecordSignup counts a successful signup.
func RecordSignup() {
	signupsTotal.Inc()
}

// RecordRemoval counts a successful removal.
func RecordRemoval() {
	removalsTotal.Inc()
}

// RecordRejection counts a validation rejection under the given reason.
func RecordRejection(reason string) {
	rejectionsTotal.WithLabelValues(reason).Inc()
}
