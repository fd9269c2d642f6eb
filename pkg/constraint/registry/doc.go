// Package registry provides the operator registry consulted by the
// eligibility analyzer, the generic interpreter, and the compiled-evaluator
// cache.
//
// The registry knows the built-in operator table and holds user-registered
// extension operators. It exposes an opaque version token that changes
// whenever an extension is registered or Bump is called to signal an
// operator-semantics change. The cache folds this token into its signatures,
// so evaluators compiled against stale operator definitions are never served
// again; they simply age out of the cache.
//
// Registries are explicit, constructed instances. There is no package-level
// default, which keeps tests isolated and lets callers run independent
// engines side by side.
package registry
