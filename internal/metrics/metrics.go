// Package metrics holds the Prometheus collectors for the assistant.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels for CommandsTotal.
const (
	OutcomeOK                    = "ok"
	OutcomeInvalidFormat         = "invalid_format"
	OutcomeNotFound              = "not_found"
	OutcomeInsufficientArguments = "insufficient_arguments"
	OutcomeError                 = "error"
	OutcomeUnknownCommand        = "unknown_command"
)

// Metrics groups the collectors and the registry they are registered on.
type Metrics struct {
	Registry *prometheus.Registry

	// CommandsTotal counts commands by name and outcome.
	CommandsTotal *prometheus.CounterVec

	// CommandDuration observes how long each command took to run.
	CommandDuration *prometheus.HistogramVec

	// Contacts is the number of contacts in the address book.
	Contacts prometheus.Gauge
}

// New creates the collectors on a fresh registry, along with the standard
// Go runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		Registry: reg,
		CommandsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "addressbook",
			Name:      "commands_total",
			Help:      "Commands processed, by command and outcome.",
		}, []string{"command", "outcome"}),
		CommandDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "addressbook",
			Name:      "command_duration_seconds",
			Help:      "Time spent running a command.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 8),
		}, []string{"command"}),
		Contacts: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "addressbook",
			Name:      "contacts",
			Help:      "Contacts currently in the address book.",
		}),
	}
	reg.MustRegister(
		m.CommandsTotal,
		m.CommandDuration,
		m.Contacts,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}
