package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "bazaar"

// Metrics groups the collectors of one process. Each instance owns its own
// registry so tests do not collide on the global one.
type Metrics struct {
	Registry *prometheus.Registry

	SuppliersAdded  prometheus.Counter
	ReviewsAdded    *prometheus.CounterVec
	QueryDuration   *prometheus.HistogramVec
	SupplierRating  *prometheus.GaugeVec
	HTTPRequests    *prometheus.CounterVec
	DashboardActive prometheus.Gauge
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		Registry: reg,
		SuppliersAdded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "catalog",
			Name:      "suppliers_added_total",
			Help:      "Suppliers created through the add-supplier operation.",
		}),
		ReviewsAdded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "catalog",
			Name:      "reviews_added_total",
			Help:      "Add-review attempts by outcome.",
		}, []string{"outcome"}),
		QueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "catalog",
			Name:      "query_duration_seconds",
			Help:      "Time spent deriving catalog views.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 8),
		}, []string{"query"}),
		SupplierRating: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "catalog",
			Name:      "supplier_rating",
			Help:      "Current aggregate rating per supplier.",
		}, []string{"supplier_id"}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method, path and status.",
		}, []string{"method", "path", "status"}),
		DashboardActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "dashboard",
			Name:      "sessions",
			Help:      "Open dashboard sessions.",
		}),
	}

	reg.MustRegister(
		m.SuppliersAdded,
		m.ReviewsAdded,
		m.QueryDuration,
		m.SupplierRating,
		m.HTTPRequests,
		m.DashboardActive,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}

func (m *Metrics) ObserveHTTP(method, path string, status int) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
}
