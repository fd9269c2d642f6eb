package cache

import (
	"testing"

	"meridian-hq/polaris/pkg/constraint/registry"
)

// BenchmarkCacheHit benchmarks the warm lookup path
func BenchmarkCacheHit(b *testing.B) {
	c := New(registry.New(), nil, nil)
	set := roleSet("admin")
	if _, err := c.GetOrCompile(set); err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := c.GetOrCompile(set); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkCacheMiss benchmarks lookup plus compilation
func BenchmarkCacheMiss(b *testing.B) {
	reg := registry.New()
	set := roleSet("admin")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c := New(reg, nil, nil)
		if _, err := c.GetOrCompile(set); err != nil {
			b.Fatal(err)
		}
	}
}
