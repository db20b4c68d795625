package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsManager holds the process metrics on a private registry.
type MetricsManager struct {
	Registry           *prometheus.Registry
	APIRequestsTotal   *prometheus.CounterVec
	APIRequestLatency  *prometheus.HistogramVec
	NotificationsTotal *prometheus.CounterVec
}

func NewMetricsManager(serviceName string) *MetricsManager {
	registry := prometheus.NewRegistry()

	apiRequestsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "api_requests_total",
		Help:      "Remote API calls by endpoint and HTTP status (0 = no response).",
	}, []string{"endpoint", "status"})

	apiRequestLatency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: serviceName,
		Name:      "api_request_latency_seconds",
		Help:      "Latency of remote API calls by endpoint.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"endpoint"})

	notificationsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "notifications_total",
		Help:      "Notifications shown to the user by kind.",
	}, []string{"kind"})

	registry.MustRegister(
		apiRequestsTotal,
		apiRequestLatency,
		notificationsTotal,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &MetricsManager{
		Registry:           registry,
		APIRequestsTotal:   apiRequestsTotal,
		APIRequestLatency:  apiRequestLatency,
		NotificationsTotal: notificationsTotal,
	}
}

func (m *MetricsManager) ObserveAPIRequest(endpoint string, status int, elapsed time.Duration) {
	m.APIRequestsTotal.WithLabelValues(endpoint, strconv.Itoa(status)).Inc()
	m.APIRequestLatency.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}

func (m *MetricsManager) IncNotification(kind string) {
	m.NotificationsTotal.WithLabelValues(kind).Inc()
}

// Handler exposes the registry in the Prometheus text format.
func (m *MetricsManager) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}
