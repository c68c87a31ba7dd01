package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors for the service on a private registry.
type Metrics struct {
	registry        *prometheus.Registry
	requestDuration *prometheus.HistogramVec
	errorCount      *prometheus.CounterVec
	PeopleCreated   prometheus.Counter
	PeopleRenamed   prometheus.Counter
	DutiesAssigned  prometheus.Counter
	Retirements     prometheus.Counter
}

// NewMetrics registers all collectors.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Metrics{
		registry: reg,
		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "stargate_http_request_duration_seconds",
			Help:    "HTTP request latency by route, method and status",
			Buckets: prometheus.DefBuckets,
		}, []string{"path", "method", "status"}),
		errorCount: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "stargate_http_errors_total",
			Help: "Failed HTTP requests by route, method and error code",
		}, []string{"path", "method", "code"}),
		PeopleCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "stargate_people_created_total",
			Help: "People added to the roster",
		}),
		PeopleRenamed: factory.NewCounter(prometheus.CounterOpts{
			Name: "stargate_people_renamed_total",
			Help: "People renamed",
		}),
		DutiesAssigned: factory.NewCounter(prometheus.CounterOpts{
			Name: "stargate_duties_assigned_total",
			Help: "Astronaut duties assigned",
		}),
		Retirements: factory.NewCounter(prometheus.CounterOpts{
			Name: "stargate_retirements_total",
			Help: "RETIRED duties assigned",
		}),
	}
}

// RecordRequest observes one handled request.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.requestDuration.WithLabelValues(path, method, strconv.Itoa(status)).Observe(duration.Seconds())
}

// RecordError increments error counters.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	m.errorCount.WithLabelValues(path, method, code).Inc()
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the private registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
