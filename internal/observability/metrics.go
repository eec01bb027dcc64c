package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the service.
type Metrics struct {
	CustomersRegistered prometheus.Counter
	LoansCreated        prometheus.Counter
	Decisions           *prometheus.CounterVec
	RequestDuration     *prometheus.HistogramVec
}

// NewMetrics creates all metrics and registers them on the default registry.
func NewMetrics() *Metrics {
	return NewMetricsWith(prometheus.DefaultRegisterer)
}

// NewMetricsWith registers the metrics on the given registerer. Tests pass
// their own registry so repeated construction does not collide.
func NewMetricsWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		CustomersRegistered: factory.NewCounter(prometheus.CounterOpts{
			Name: "credit_engine_customers_registered_total",
			Help: "Total number of customers registered",
		}),
		LoansCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "credit_engine_loans_created_total",
			Help: "Total number of loans created",
		}),
		Decisions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "credit_engine_decisions_total",
			Help: "Credit decisions by operation and outcome",
		}, []string{"operation", "outcome"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "credit_engine_http_request_duration_seconds",
			Help:    "HTTP request latency by route and status",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "status"}),
	}
}

// ObserveDecision records a decision outcome for an operation.
func (m *Metrics) ObserveDecision(operation string, approved bool) {
	outcome := "rejected"
	if approved {
		outcome = "approved"
	}
	m.Decisions.WithLabelValues(operation, outcome).Inc()
}
