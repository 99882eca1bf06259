// Package metrics exposes Prometheus counters for the ledger and HTTP latency.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/rhu-inventory-api/internal/application/ports"
)

// Metrics owns a private registry so tests and multiple apps do not collide.
type Metrics struct {
	registry     *prometheus.Registry
	entries      *prometheus.CounterVec
	units        *prometheus.CounterVec
	rejections   *prometheus.CounterVec
	lockWait     prometheus.Histogram
	httpDuration *prometheus.HistogramVec
}

// New registers every collector, plus the Go and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		entries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rhu",
			Name:      "ledger_entries_total",
			Help:      "Ledger entries appended, by transaction type.",
		}, []string{"type"}),
		units: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rhu",
			Name:      "ledger_units_total",
			Help:      "Absolute units moved through the ledger, by transaction type.",
		}, []string{"type"}),
		rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rhu",
			Name:      "stock_rejections_total",
			Help:      "Mutations rejected by stock rules, by operation and reason.",
		}, []string{"operation", "reason"}),
		lockWait: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "rhu",
			Name:      "item_lock_wait_seconds",
			Help:      "Time spent waiting for item locks.",
			Buckets:   []float64{.0005, .001, .005, .01, .05, .1, .5, 1, 5},
		}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "rhu",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method, route and status.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
	m.registry.MustRegister(
		m.entries, m.units, m.rejections, m.lockWait, m.httpDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

var _ ports.InventoryObserver = (*Metrics)(nil)

// EntryAppended counts a ledger entry.
func (m *Metrics) EntryAppended(txType string, delta int64) {
	m.entries.WithLabelValues(txType).Inc()
	if delta < 0 {
		delta = -delta
	}
	m.units.WithLabelValues(txType).Add(float64(delta))
}

// Rejected counts a rejected mutation.
func (m *Metrics) Rejected(operation, reason string) {
	m.rejections.WithLabelValues(operation, reason).Inc()
}

// LockWaited records lock wait time.
func (m *Metrics) LockWaited(d time.Duration) {
	m.lockWait.Observe(d.Seconds())
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry is exposed for tests.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Middleware observes request latency labelled with the matched route pattern.
func (m *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		route := c.Route().Path
		m.httpDuration.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Observe(time.Since(start).Seconds())
		return err
	}
}
