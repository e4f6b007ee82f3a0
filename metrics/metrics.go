// Package metrics holds the Prometheus collectors of one fabric instance.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "myfabric"

// Metrics owns a private registry so several fabric instances can live in one process.
type Metrics struct {
	registry *prometheus.Registry

	heartbeats          *prometheus.CounterVec
	consecutiveFailures prometheus.Gauge
	registrations       *prometheus.CounterVec
	messagesSent        *prometheus.CounterVec
	messagesReceived    *prometheus.CounterVec
}

// New creates the collectors and registers them together with the process and Go collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		heartbeats: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "registry",
				Name:      "heartbeat_total",
				Help:      "Total number of presence refreshes by result.",
			},
			[]string{"result"},
		),
		consecutiveFailures: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "registry",
				Name:      "heartbeat_consecutive_failures",
				Help:      "Number of presence refreshes that failed in a row.",
			},
		),
		registrations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "registry",
				Name:      "registrations_total",
				Help:      "Total number of registration attempts by result.",
			},
			[]string{"result"},
		),
		messagesSent: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "umf",
				Name:      "messages_sent_total",
				Help:      "Total number of envelopes published by delivery mode and result.",
			},
			[]string{"mode", "result"},
		),
		messagesReceived: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "umf",
				Name:      "messages_received_total",
				Help:      "Total number of inbound envelopes by channel kind and result.",
			},
			[]string{"channel", "result"},
		),
	}

	m.registry.MustRegister(
		m.heartbeats,
		m.consecutiveFailures,
		m.registrations,
		m.messagesSent,
		m.messagesReceived,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
	return m
}

// Handler returns an HTTP handler exposing the registered metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveHeartbeat records one presence refresh and the current failure streak.
func (m *Metrics) ObserveHeartbeat(err error, consecutiveFailures int) {
	m.heartbeats.WithLabelValues(result(err)).Inc()
	m.consecutiveFailures.Set(float64(consecutiveFailures))
}

// ObserveRegistration records one registration attempt.
func (m *Metrics) ObserveRegistration(err error) {
	m.registrations.WithLabelValues(result(err)).Inc()
}

// ObserveSend records one publish attempt.
func (m *Metrics) ObserveSend(direct bool, err error) {
	mode := "service"
	if direct {
		mode = "direct"
	}
	m.messagesSent.WithLabelValues(mode, result(err)).Inc()
}

// ObserveReceive records one inbound payload; channel is "service" or "instance".
func (m *Metrics) ObserveReceive(channel string, err error) {
	m.messagesReceived.WithLabelValues(channel, result(err)).Inc()
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
