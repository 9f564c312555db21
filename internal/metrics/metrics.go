package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Trigger results.
const (
	TriggerSuccess  = "success"
	TriggerNotFound = "not_found"
	TriggerError    = "error"
)

// TTS results.
const (
	TTSAudio    = "audio"
	TTSFallback = "fallback"
)

// Metrics holds the relay's counters. A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	callTriggers   *prometheus.CounterVec
	ttsRequests    *prometheus.CounterVec
	leadOutcomes   *prometheus.CounterVec
	updateFailures prometheus.Counter
}

// New registers the relay counters on a fresh registry, plus Go and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		callTriggers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "relay_call_triggers_total",
			Help: "Outbound call triggers by result.",
		}, []string{"result"}),
		ttsRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "relay_tts_requests_total",
			Help: "Script renders by audio source: synthesized audio or spoken-text fallback.",
		}, []string{"result"}),
		leadOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "relay_lead_outcomes_total",
			Help: "Outcome webhooks by resulting lead status.",
		}, []string{"status"}),
		updateFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "relay_lead_update_failures_total",
			Help: "Outcome webhooks whose lead store write failed.",
		}),
	}
	reg.MustRegister(
		m.callTriggers,
		m.ttsRequests,
		m.leadOutcomes,
		m.updateFailures,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) CallTriggered(result string) {
	if m == nil {
		return
	}
	m.callTriggers.WithLabelValues(result).Inc()
}

func (m *Metrics) ScriptRendered(result string) {
	if m == nil {
		return
	}
	m.ttsRequests.WithLabelValues(result).Inc()
}

func (m *Metrics) OutcomeRecorded(status string) {
	if m == nil {
		return
	}
	m.leadOutcomes.WithLabelValues(status).Inc()
}

func (m *Metrics) LeadUpdateFailed() {
	if m == nil {
		return
	}
	m.updateFailures.Inc()
}

// Gatherer exposes the underlying registry.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	if m == nil {
		return prometheus.NewRegistry()
	}
	return m.registry
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
