package reconciler

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	resultPromoted     = "promoted"
	resultReminded     = "reminded"
	resultFinalWarning = "final_warning"
	resultExpired      = "expired"
	resultWaiting      = "waiting"
	resultConflict     = "conflict"
	resultError        = "error"
)

type Metrics struct {
	transitions  *prometheus.CounterVec
	tickDuration *prometheus.HistogramVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "photoexpress",
			Subsystem: "reconciler",
			Name:      "transitions_total",
			Help:      "Orders handled by the reconciler loops, by outcome.",
		}, []string{"loop", "result"}),
		tickDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "photoexpress",
			Subsystem: "reconciler",
			Name:      "tick_duration_seconds",
			Help:      "Time spent on one reconciler pass.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"loop"}),
	}
	reg.MustRegister(m.transitions, m.tickDuration)
	return m
}
