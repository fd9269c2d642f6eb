package cache

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"meridian-hq/polaris/pkg/constraint/registry"
)

// TestMetricsTrackCacheActivity tests that hits, misses, size, and
// evictions reach the prometheus collectors
func TestMetricsTrackCacheActivity(t *testing.T) {
	promReg := prometheus.NewRegistry()
	metrics := NewMetrics("polaris", "constraints", promReg)

	cfg := DefaultConfig()
	cfg.Capacity = 2
	cfg.Metrics = metrics
	c := New(registry.New(), cfg, nil)

	setA, setB, setC := roleSet("a"), roleSet("b"), roleSet("c")

	// miss, hit, miss, miss with eviction
	if _, err := c.GetOrCompile(setA); err != nil {
		t.Fatalf("GetOrCompile: %v", err)
	}
	if _, err := c.GetOrCompile(setA); err != nil {
		t.Fatalf("GetOrCompile: %v", err)
	}
	if _, err := c.GetOrCompile(setB); err != nil {
		t.Fatalf("GetOrCompile: %v", err)
	}
	if _, err := c.GetOrCompile(setC); err != nil {
		t.Fatalf("GetOrCompile: %v", err)
	}

	if got := testutil.ToFloat64(metrics.hitsTotal.WithLabelValues("programs")); got != 1 {
		t.Errorf("hits = %v, want 1", got)
	}
	if got := testutil.ToFloat64(metrics.missesTotal.WithLabelValues("programs")); got != 3 {
		t.Errorf("misses = %v, want 3", got)
	}
	if got := testutil.ToFloat64(metrics.evictionsTotal.WithLabelValues("programs")); got != 1 {
		t.Errorf("evictions = %v, want 1", got)
	}
	if got := testutil.ToFloat64(metrics.entries.WithLabelValues("programs")); got != 2 {
		t.Errorf("entries = %v, want 2", got)
	}

	c.Clear()
	if got := testutil.ToFloat64(metrics.entries.WithLabelValues("programs")); got != 0 {
		t.Errorf("entries after Clear = %v, want 0", got)
	}
}

func TestMetricsRegistered(t *testing.T) {
	promReg := prometheus.NewRegistry()
	metrics := NewMetrics("polaris", "constraints", promReg)
	metrics.RecordHit("programs")

	families, err := promReg.Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	names := make(map[string]bool, len(families))
	for _, f := range families {
		names[f.GetName()] = true
	}
	if !names["polaris_constraints_cache_hits_total"] {
		t.Errorf("hits metric not registered; got %v", names)
	}
}

func TestCacheWithoutMetrics(t *testing.T) {
	// Metrics are optional; a nil Metrics must not panic.
	c := New(registry.New(), nil, nil)
	if _, err := c.GetOrCompile(roleSet("a")); err != nil {
		t.Fatalf("GetOrCompile: %v", err)
	}
	if got, err := c.GetOrCompile(roleSet("a")); err != nil || got == nil {
		t.Fatalf("GetOrCompile hit: %v", err)
	}
	c.Clear()
}
