package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Command outcomes.
const (
	OutcomeOK     = "ok"
	OutcomeDenied = "denied"
	OutcomeError  = "error"
)

// Metrics holds the command collectors.
type Metrics struct {
	CommandCount   *prometheus.CounterVec
	CommandLatency *prometheus.HistogramVec
}

// Default is the set the command middleware reports to.
var Default = New()

// New returns an unregistered set of collectors.
func New() *Metrics {
	return &Metrics{
		CommandCount: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "modbot",
				Name:      "commands_total",
				Help:      "Number of resolved command invocations by outcome.",
			},
			[]string{"command", "outcome"},
		),
		CommandLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
				Namespace: "modbot",
				Name:      "command_duration_seconds",
				Help:      "How long a command takes to run in seconds, including platform calls.",
			},
			[]string{"command"},
		),
	}
}

// Observe records one finished invocation.
func (m *Metrics) Observe(command, outcome string, took time.Duration) {
	m.CommandCount.WithLabelValues(command, outcome).Inc()
	m.CommandLatency.WithLabelValues(command).Observe(took.Seconds())
}

// Collectors lists everything to register with a prometheus registry.
func (m *Metrics) Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.CommandCount,
		m.CommandLatency,
	}
}
