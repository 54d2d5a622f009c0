package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/burndown/roadmap-api/pkg/models"
)

var histogramBuckets = []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25}

// Metrics tracks planner activity on a dedicated registry
type Metrics struct {
	registry     *prometheus.Registry
	runs         *prometheus.CounterVec
	items        *prometheus.CounterVec
	fallbackFTE  prometheus.Counter
	planDuration *prometheus.HistogramVec
}

// New registers the roadmap collectors on a fresh registry
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "roadmap",
			Name:      "runs_total",
			Help:      "Number of roadmap plans computed",
		}, []string{"source"}),
		items: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "roadmap",
			Name:      "items_total",
			Help:      "Scheduled roadmap items by risk level",
		}, []string{"risk"}),
		fallbackFTE: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "roadmap",
			Name:      "fallback_fte_total",
			Help:      "Plans computed with no team capacity data",
		}),
		planDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "roadmap",
			Name:      "plan_duration_seconds",
			Help:      "Time spent computing a roadmap",
			Buckets:   histogramBuckets,
		}, []string{"source"}),
	}
	m.registry.MustRegister(m.runs, m.items, m.fallbackFTE, m.planDuration)
	return m
}

// ObservePlan records one planner invocation
func (m *Metrics) ObservePlan(source string, rm models.Roadmap, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.runs.WithLabelValues(source).Inc()
	m.planDuration.WithLabelValues(source).Observe(elapsed.Seconds())
	for _, item := range rm.Items {
		m.items.WithLabelValues(string(item.RiskLevel)).Inc()
	}
	if rm.Summary.FallbackFTEUsed {
		m.fallbackFTE.Inc()
	}
}

// Handler exposes the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
