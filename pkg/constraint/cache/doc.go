// Package cache installs compiled evaluators behind an LRU store keyed by
// constraint-set signature.
//
// The signature folds the operator registry's version token into the hash of
// the set, so a registry bump changes the signatures of future lookups and
// evaluators compiled against stale operator definitions are never returned;
// they age out under normal LRU pressure instead of being actively
// invalidated.
//
// The store is the only shared mutable state in the engine. A single coarse
// mutex covers lookup, compilation, insertion, and eviction: compilation is
// pure, synchronous CPU work that is fast enough to run inline, so the
// simple critical-section discipline wins over lock juggling.
//
// # Basic Usage
//
//	reg := registry.New()
//	c := cache.New(reg, nil, nil)
//
//	prog, err := c.GetOrCompile(set)
//	if err != nil {
//	    var inel *compile.IneligibleError
//	    if errors.As(err, &inel) {
//	        // route the set to the generic interpreter
//	    }
//	}
//	residual := prog.Evaluate(doc)
//
// Hit/miss/eviction counts are available through Stats and, optionally,
// exported as prometheus metrics via Config.Metrics.
package cache
