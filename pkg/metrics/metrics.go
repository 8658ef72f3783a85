// Package metrics exposes the Prometheus metrics of the rankings service.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "statsdb"

// Cache tiers used on the tier label.
const (
	TierMemory = "memory"
	TierRedis  = "redis"
)

// Metrics holds every collector of the service on its own registry.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	cacheHits       *prometheus.CounterVec
	cacheMisses     *prometheus.CounterVec
	cacheErrors     *prometheus.CounterVec
	cacheEvictions  prometheus.Counter
	computeDuration *prometheus.HistogramVec
	computeErrors   *prometheus.CounterVec
}

// New creates the collectors and registers them, along with the Go runtime ones.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		cacheHits: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "hits_total",
			Help:      "Cached results served, by computation and tier.",
		}, []string{"name", "tier"}),
		cacheMisses: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "misses_total",
			Help:      "Results that had to be computed, by computation.",
		}, []string{"name"}),
		cacheErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "errors_total",
			Help:      "Cache tier failures that were bypassed, by tier.",
		}, []string{"tier"}),
		cacheEvictions: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "evictions_total",
			Help:      "Live entries evicted from the memory cache to respect its size.",
		}),
		computeDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "rankings",
			Name:      "compute_duration_seconds",
			Help:      "Time spent computing a ranking on a cache miss.",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}, []string{"name"}),
		computeErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "rankings",
			Name:      "compute_errors_total",
			Help:      "Ranking computations that failed on the data store.",
		}, []string{"name"}),
	}
}

// Handler serves the registry on the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) CacheHit(name, tier string) {
	if m == nil {
		return
	}
	m.cacheHits.WithLabelValues(name, tier).Inc()
}

func (m *Metrics) CacheMiss(name string) {
	if m == nil {
		return
	}
	m.cacheMisses.WithLabelValues(name).Inc()
}

func (m *Metrics) CacheError(tier string) {
	if m == nil {
		return
	}
	m.cacheErrors.WithLabelValues(tier).Inc()
}

func (m *Metrics) CacheEviction() {
	if m == nil {
		return
	}
	m.cacheEvictions.Inc()
}

// ObserveCompute records a finished computation.
func (m *Metrics) ObserveCompute(name string, elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	m.computeDuration.WithLabelValues(name).Observe(elapsed.Seconds())
	if err != nil {
		m.computeErrors.WithLabelValues(name).Inc()
	}
}
