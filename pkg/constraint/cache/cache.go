package cache

import (
	"fmt"
	"log/slog"
	"sync"

	"meridian-hq/polaris/pkg/constraint"
	"meridian-hq/polaris/pkg/constraint/compile"
	"meridian-hq/polaris/pkg/constraint/registry"
)

// DefaultCapacity is the LRU capacity used when none is configured.
const DefaultCapacity = 128

// Config contains configuration for the compiled-evaluator cache.
type Config struct {
	// Name labels this cache in logs and metrics.
	// Default: "programs".
	Name string

	// Capacity is the maximum number of compiled evaluators kept.
	// Default: DefaultCapacity.
	Capacity int

	// AllowQuantifiers admits quantified sets to compilation by running the
	// quantifier-aware analyzer instead of the baseline one.
	// Default: false.
	AllowQuantifiers bool

	// Metrics, when set, receives hit/miss/size/eviction updates.
	Metrics *Metrics
}

// DefaultConfig returns the default cache configuration.
func DefaultConfig() *Config {
	return &Config{
		Name:     "programs",
		Capacity: DefaultCapacity,
	}
}

// Validate validates the cache configuration.
func (c *Config) Validate() error {
	if c.Capacity <= 0 {
		return fmt.Errorf("cache capacity must be positive, got %d", c.Capacity)
	}
	return nil
}

// Stats is a point-in-time snapshot of cache effectiveness.
type Stats struct {
	Hits    uint64
	Misses  uint64
	Total   uint64
	HitRate float64
	Size    int
}

// entry owns one compiled evaluator. lastUsed orders eviction; both hits and
// fresh insertions count as a use.
type entry struct {
	program  *compile.Program
	lastUsed uint64
}

// Cache is a thread-safe LRU store of compiled evaluators keyed by
// set signature under the current registry version.
type Cache struct {
	reg     *registry.Registry
	logger  *slog.Logger
	name    string
	cap     int
	quant   bool
	metrics *Metrics

	mu      sync.Mutex
	entries map[string]*entry
	tick    uint64
	hits    uint64
	misses  uint64
}

// New creates a cache over the given operator registry. A nil config uses
// DefaultConfig; a nil logger uses slog.Default.
func New(reg *registry.Registry, cfg *Config, logger *slog.Logger) *Cache {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cfg.Name == "" {
		cfg.Name = "programs"
	}
	if cfg.Capacity <= 0 {
		cfg.Capacity = DefaultCapacity
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Cache{
		reg:     reg,
		logger:  logger,
		name:    cfg.Name,
		cap:     cfg.Capacity,
		quant:   cfg.AllowQuantifiers,
		metrics: cfg.Metrics,
		entries: make(map[string]*entry),
	}
}

// GetOrCompile returns the compiled evaluator for the set, compiling and
// installing it on first use. Repeated calls with an unchanged set and
// registry version return the same *compile.Program instance.
//
// Ineligible sets are not this layer's responsibility to interpret: the miss
// is recorded and an *compile.IneligibleError is returned for the caller to
// route to the generic interpreter.
func (c *Cache) GetOrCompile(set *constraint.Set) (*compile.Program, error) {
	if set == nil {
		return nil, fmt.Errorf("nil constraint set")
	}

	sig := set.Signature(c.reg.Version())

	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[sig]; ok {
		c.tick++
		e.lastUsed = c.tick
		c.hits++
		if c.metrics != nil {
			c.metrics.RecordHit(c.name)
		}
		return e.program, nil
	}

	c.misses++
	if c.metrics != nil {
		c.metrics.RecordMiss(c.name)
	}

	report := c.analyze(set)
	if !report.Eligible {
		return nil, &compile.IneligibleError{Reasons: report.Reasons}
	}

	program, err := compile.Compile(set)
	if err != nil {
		return nil, fmt.Errorf("compiling constraint set: %w", err)
	}

	if len(c.entries) >= c.cap {
		c.evictLocked()
	}

	c.tick++
	c.entries[sig] = &entry{program: program, lastUsed: c.tick}
	if c.metrics != nil {
		c.metrics.UpdateSize(c.name, len(c.entries))
	}

	c.logger.Debug("compiled evaluator installed",
		"cache", c.name,
		"signature", sig[:12],
		"nodes", program.NodeCount(),
		"size", len(c.entries),
	)

	return program, nil
}

// analyze picks the configured eligibility analysis.
func (c *Cache) analyze(set *constraint.Set) compile.Report {
	if c.quant {
		return compile.AnalyzeWithQuantifiers(set, c.reg)
	}
	return compile.Analyze(set, c.reg)
}

// evictLocked removes the least-recently-used entry.
// Must be called with the mutex held.
func (c *Cache) evictLocked() {
	var (
		oldestSig string
		oldest    uint64
	)

	for sig, e := range c.entries {
		if oldestSig == "" || e.lastUsed < oldest {
			oldestSig = sig
			oldest = e.lastUsed
		}
	}

	if oldestSig == "" {
		return
	}

	delete(c.entries, oldestSig)
	if c.metrics != nil {
		c.metrics.RecordEviction(c.name)
		c.metrics.UpdateSize(c.name, len(c.entries))
	}

	c.logger.Debug("evicted compiled evaluator",
		"cache", c.name,
		"signature", oldestSig[:12],
	)
}

// Warm eagerly compiles and installs a batch of sets. The first set that is
// ineligible or fails to compile aborts the warm-up with an error naming its
// position; already-installed entries stay installed.
func (c *Cache) Warm(sets []*constraint.Set) error {
	for i, set := range sets {
		if _, err := c.GetOrCompile(set); err != nil {
			return fmt.Errorf("warming constraint set %d of %d: %w", i+1, len(sets), err)
		}
	}
	return nil
}

// Stats returns a snapshot of hit/miss counters and current size.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Stats{
		Hits:   c.hits,
		Misses: c.misses,
		Total:  c.hits + c.misses,
		Size:   len(c.entries),
	}
	if s.Total > 0 {
		s.HitRate = float64(s.Hits) / float64(s.Total)
	}
	return s
}

// Size returns the current number of installed evaluators.
func (c *Cache) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Contains reports whether an evaluator is currently installed for the set
// under the current registry version, without counting as a use.
func (c *Cache) Contains(set *constraint.Set) bool {
	sig := set.Signature(c.reg.Version())

	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[sig]
	return ok
}

// Clear drops all entries and resets the counters.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*entry)
	c.tick = 0
	c.hits = 0
	c.misses = 0
	if c.metrics != nil {
		c.metrics.UpdateSize(c.name, 0)
	}

	c.logger.Debug("cache cleared", "cache", c.name)
}
