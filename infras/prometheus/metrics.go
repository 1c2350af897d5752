package prometheus

import (
	"larisa/config"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	TransitionBook            = "book"
	TransitionCancel          = "cancel"
	TransitionMarkUnavailable = "mark_unavailable"

	OutcomeApplied  = "applied"
	OutcomeNoop     = "noop"
	OutcomeConflict = "conflict"
	OutcomeError    = "error"
)

// Metrics owns a private registry so tests can build as many as they need.
type Metrics struct {
	registry         *prometheus.Registry
	httpRequests     *prometheus.CounterVec
	httpLatency      *prometheus.HistogramVec
	transitions      *prometheus.CounterVec
	externalRequests *prometheus.CounterVec
	externalLatency  *prometheus.HistogramVec
	cacheEvents      *prometheus.CounterVec
}

func New(config *config.Config) *Metrics {
	namespace := config.App.Name
	if namespace == "" {
		namespace = "larisa"
	}

	metrics := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{Namespace: namespace, Name: "http_requests_total", Help: "HTTP requests."},
			[]string{"route", "method", "status"},
		),
		httpLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration seconds.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"route", "method"},
		),
		transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{Namespace: namespace, Name: "availability_transitions_total", Help: "Room availability transitions by outcome."},
			[]string{"transition", "outcome"},
		),
		externalRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{Namespace: namespace, Name: "external_requests_total", Help: "Outbound requests."},
			[]string{"service", "status"},
		),
		externalLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "external_request_duration_seconds",
				Help:      "Outbound request duration seconds.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"service"},
		),
		cacheEvents: prometheus.NewCounterVec(
			prometheus.CounterOpts{Namespace: namespace, Name: "cache_events_total", Help: "Cache hits and misses."},
			[]string{"cache", "event"},
		),
	}

	metrics.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		metrics.httpRequests,
		metrics.httpLatency,
		metrics.transitions,
		metrics.externalRequests,
		metrics.externalLatency,
		metrics.cacheEvents,
	)

	return metrics
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) ObserveHTTP(route, method string, status int, dur time.Duration) {
	m.httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.httpLatency.WithLabelValues(route, method).Observe(dur.Seconds())
}

func (m *Metrics) ObserveTransition(transition, outcome string) {
	m.transitions.WithLabelValues(transition, outcome).Inc()
}

// ObserveExternal records a call to a third party; status is "ok" or "error".
func (m *Metrics) ObserveExternal(service string, err error, dur time.Duration) {
	status := "ok"
	if err != nil {
		status = "error"
	}

	m.externalRequests.WithLabelValues(service, status).Inc()
	m.externalLatency.WithLabelValues(service).Observe(dur.Seconds())
}

// ObserveCache counts a lookup; event is "hit" or "miss".
func (m *Metrics) ObserveCache(cache, event string) {
	m.cacheEvents.WithLabelValues(cache, event).Inc()
}
