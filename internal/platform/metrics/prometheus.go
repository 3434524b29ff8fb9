package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/rajasharmaa/dttt/internal/platform/logger"
)

// Manager holds the service's Prometheus metrics on a private registry.
type Manager struct {
	Registry *prometheus.Registry

	RequestsTotal         *prometheus.CounterVec
	RequestLatency        *prometheus.HistogramVec
	UsersRegisteredTotal  prometheus.Counter
	InquiriesCreatedTotal prometheus.Counter
	InquiryUpdatesTotal   prometheus.Counter
}

// NewManager initializes and registers the storefront metrics.
func NewManager(serviceName string) *Manager {
	registry := prometheus.NewRegistry()

	requestsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests by method, route and status code.",
	}, []string{"method", "route", "status"})

	requestLatency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: serviceName,
		Name:      "http_request_latency_seconds",
		Help:      "Latency of HTTP requests by method and route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	usersRegisteredTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "users_registered_total",
		Help:      "Total number of user registrations.",
	})
	inquiriesCreatedTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "inquiries_created_total",
		Help:      "Total number of inquiries submitted.",
	})
	inquiryUpdatesTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "inquiry_updates_total",
		Help:      "Total number of admin inquiry updates.",
	})

	registry.MustRegister(
		requestsTotal,
		requestLatency,
		usersRegisteredTotal,
		inquiriesCreatedTotal,
		inquiryUpdatesTotal,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &Manager{
		Registry:              registry,
		RequestsTotal:         requestsTotal,
		RequestLatency:        requestLatency,
		UsersRegisteredTotal:  usersRegisteredTotal,
		InquiriesCreatedTotal: inquiriesCreatedTotal,
		InquiryUpdatesTotal:   inquiryUpdatesTotal,
	}
}

// StartServer exposes /metrics on its own port. A blank port disables the
// server.
func StartServer(port string, appLogger *logger.Logger, registry *prometheus.Registry) error {
	if port == "" {
		appLogger.Info("Prometheus metrics port not configured, metrics server will not start")
		return nil
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	appLogger.Info("Prometheus metrics server starting", zap.String("port", port), zap.String("path", "/metrics"))

	server := &http.Server{
		Addr:    ":" + port,
		Handler: mux,
	}
	return server.ListenAndServe()
}
