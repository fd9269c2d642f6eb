package cache

import "github.com/prometheus/client_golang/prometheus"

// Metrics exports cache effectiveness as prometheus collectors.
//
// Metrics:
//   - <ns>_<sub>_cache_hits_total: Total cache hits by cache name
//   - <ns>_<sub>_cache_misses_total: Total cache misses by cache name
//   - <ns>_<sub>_cache_entries: Current number of installed evaluators
//   - <ns>_<sub>_cache_evictions_total: Total LRU evictions
type Metrics struct {
	hitsTotal      *prometheus.CounterVec
	missesTotal    *prometheus.CounterVec
	entries        *prometheus.GaugeVec
	evictionsTotal *prometheus.CounterVec
}

// NewMetrics creates and registers cache metrics with the provided registry.
func NewMetrics(namespace, subsystem string, reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		hitsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "cache_hits_total",
				Help:      "Total number of compiled-evaluator cache hits",
			},
			[]string{"cache"},
		),

		missesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "cache_misses_total",
				Help:      "Total number of compiled-evaluator cache misses",
			},
			[]string{"cache"},
		),

		entries: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "cache_entries",
				Help:      "Current number of installed compiled evaluators",
			},
			[]string{"cache"},
		),

		evictionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "cache_evictions_total",
				Help:      "Total number of compiled evaluators evicted by LRU pressure",
			},
			[]string{"cache"},
		),
	}

	reg.MustRegister(
		m.hitsTotal,
		m.missesTotal,
		m.entries,
		m.evictionsTotal,
	)

	return m
}

// RecordHit records a cache hit.
func (m *Metrics) RecordHit(cacheName string) {
	m.hitsTotal.WithLabelValues(cacheName).Inc()
}

// RecordMiss records a cache miss.
func (m *Metrics) RecordMiss(cacheName string) {
	m.missesTotal.WithLabelValues(cacheName).Inc()
}

// UpdateSize updates the current entry count for a cache.
func (m *Metrics) UpdateSize(cacheName string, size int) {
	m.entries.WithLabelValues(cacheName).Set(float64(size))
}

// RecordEviction records an LRU eviction.
func (m *Metrics) RecordEviction(cacheName string) {
	m.evictionsTotal.WithLabelValues(cacheName).Inc()
}
