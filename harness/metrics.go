package harness

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "contactbench"

// Metrics records every timed trial.
type Metrics struct {
	// TrialDuration observes the wall time of one trial.
	// Labels: structure, operation (insert, search, update, delete), size
	TrialDuration *prometheus.HistogramVec

	// TrialsTotal counts trials run.
	// Labels: structure, operation
	TrialsTotal *prometheus.CounterVec
}

// NewMetrics creates the trial metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		TrialDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Name:      "trial_duration_seconds",
				Help:      "Wall time of one timed benchmark trial.",
				Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 12),
			},
			[]string{"structure", "operation", "size"},
		),
		TrialsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "trials_total",
				Help:      "Number of timed benchmark trials.",
			},
			[]string{"structure", "operation"},
		),
	}

	reg.MustRegister(m.TrialDuration, m.TrialsTotal)

	return m
}

func (m *Metrics) observe(structure, op string, size int, d time.Duration) {
	if m == nil {
		return
	}

	m.TrialDuration.WithLabelValues(structure, op, strconv.Itoa(size)).
		Observe(d.Seconds())
	m.TrialsTotal.WithLabelValues(structure, op).Inc()
}
