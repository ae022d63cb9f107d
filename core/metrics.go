package core

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics is a snapshot of a Search's lifecycle counters. It is always
// available through Search.Metrics(), independent of whether a
// prometheus.Registerer has been attached.
type Metrics struct {
	Runtime                  time.Duration
	Steps                    int
	Accepted                 int
	Rejected                 int
	TimeSinceLastImprovement time.Duration
}

// promCollectors mirrors a Search's counters into Prometheus when a
// Registerer has been supplied via WithMetricsRegisterer. Each Search
// constructs and registers its own collectors rather than using
// package-level promauto globals, since a process may host many
// concurrent searches distinguished by name.
type promCollectors struct {
	steps    prometheus.Counter
	accepted prometheus.Counter
	rejected prometheus.Counter
	runtime  prometheus.Gauge
}

func newPromCollectors(reg prometheus.Registerer, searchName string) *promCollectors {
	if reg == nil {
		return nil
	}
	labels := prometheus.Labels{"search": searchName}
	c := &promCollectors{
		steps: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "optframe",
			Name:        "search_steps_total",
			Help:        "Total search steps executed.",
			ConstLabels: labels,
		}),
		accepted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "optframe",
			Name:        "search_moves_accepted_total",
			Help:        "Total moves accepted.",
			ConstLabels: labels,
		}),
		rejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "optframe",
			Name:        "search_moves_rejected_total",
			Help:        "Total moves rejected.",
			ConstLabels: labels,
		}),
		runtime: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   "optframe",
			Name:        "search_runtime_seconds",
			Help:        "Runtime of the most recent (or in-progress) run, in seconds.",
			ConstLabels: labels,
		}),
	}
	reg.MustRegister(c.steps, c.accepted, c.rejected, c.runtime)
	return c
}
