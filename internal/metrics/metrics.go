package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsRegistry holds all Prometheus metrics for ReserveHub
type MetricsRegistry struct {
	// HTTP Metrics
	HTTPRequestsTotal    prometheus.CounterVec
	HTTPRequestDuration  prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.GaugeVec

	// Business Metrics
	EquipmentAssignments   prometheus.Counter
	EquipmentReturns       prometheus.Counter
	NotificationsFannedOut prometheus.Counter
	ActivitySignups        prometheus.CounterVec
	OverdueReminders       prometheus.Counter
}

// NewMetricsRegistry initializes and returns a new MetricsRegistry with all metrics
func NewMetricsRegistry() *MetricsRegistry {
	return &MetricsRegistry{
		// HTTP Metrics
		HTTPRequestsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "reservehub_http_requests_total",
				Help: "Total HTTP requests processed by endpoint, method, and status code",
			},
			[]string{"endpoint", "method", "status_code"},
		),
		HTTPRequestDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "reservehub_http_request_duration_seconds",
				Help:    "HTTP request latency distribution in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint", "method"},
		),
		HTTPRequestsInFlight: *promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "reservehub_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"endpoint"},
		),

		// Business Metrics
		EquipmentAssignments: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "reservehub_equipment_assignments_total",
				Help: "Total equipment checkouts created",
			},
		),
		EquipmentReturns: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "reservehub_equipment_returns_total",
				Help: "Total equipment check-ins recorded",
			},
		),
		NotificationsFannedOut: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "reservehub_notification_recipients_total",
				Help: "Total notification recipient rows created by fan-out",
			},
		),
		ActivitySignups: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "reservehub_activity_signups_total",
				Help: "Total sign-ups by activity kind",
			},
			[]string{"activity"},
		),
		OverdueReminders: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "reservehub_overdue_reminders_total",
				Help: "Total overdue-equipment reminders sent by the worker",
			},
		),
	}
}
