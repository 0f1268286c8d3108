package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	transitionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "runpro",
		Subsystem: "tracker",
		Name:      "transitions_total",
		Help:      "Goal, record and shoe operations by outcome.",
	}, []string{"operation", "result"})
	commitDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "runpro",
		Subsystem: "tracker",
		Name:      "commit_duration_seconds",
		Help:      "Time spent persisting one change.",
		Buckets:   prometheus.DefBuckets,
	})
	mileageKm = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "runpro",
		Subsystem: "ledger",
		Name:      "mileage_km_total",
		Help:      "Absolute kilometers applied to shoe mileage, by reason.",
	}, []string{"reason"})
	mileageClamped = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "runpro",
		Subsystem: "ledger",
		Name:      "clamped_total",
		Help:      "Mileage decrements that were clamped at zero.",
	})
	coachCalls = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "runpro",
		Subsystem: "coach",
		Name:      "calls_total",
		Help:      "AI coach requests by operation and outcome.",
	}, []string{"operation", "outcome"})
)

func init() {
	prometheus.MustRegister(transitionsTotal, commitDuration, mileageKm, mileageClamped, coachCalls)
}

// RecordTransition counts one operation. err == nil counts as "ok".
func RecordTransition(operation string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	transitionsTotal.WithLabelValues(operation, result).Inc()
}

func ObserveCommit(start time.Time) {
	commitDuration.Observe(time.Since(start).Seconds())
}

// RecordMileage counts one applied delta. clamped marks a delta that was cut
// short at zero.
func RecordMileage(reason string, applied float64, clamped bool) {
	if applied < 0 {
		applied = -applied
	}
	mileageKm.WithLabelValues(reason).Add(applied)
	if clamped {
		mileageClamped.Inc()
	}
}

// RecordCoachCall counts a coach request. outcome is ok, fallback or error.
func RecordCoachCall(operation, outcome string) {
	coachCalls.WithLabelValues(operation, outcome).Inc()
}
