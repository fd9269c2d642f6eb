// Package interp provides the generic tree-walking evaluator for constraint
// sets.
//
// The interpreter accepts the same Set and Document inputs as a compiled
// Program and produces residuals in the same shape, so callers can treat the
// compiled and interpreted paths interchangeably. It is the required route
// for sets the eligibility analyzer rejects, in particular sets using
// user-registered extension operators, which are resolved through the
// operator registry at evaluation time.
//
// Interpretation pays generic dispatch on every call: operator selection by
// switch, pattern compilation per evaluation, residual construction per
// outcome. Hot policies belong behind package cache.
package interp
