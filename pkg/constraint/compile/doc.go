// Package compile turns a constraint set into a specialized evaluator
// instead of interpreting the constraint tree generically on every call.
//
// Compilation performs static analysis of the set, precomputes the residual
// values evaluation can produce, and composes a fixed chain of closures, one
// per node, specialized for the exact shape of that set. The cost is paid
// once; evaluation then runs the chain with no tree-walking dispatch and no
// structural allocation.
//
// # Pipeline
//
//	Set → Analyze (eligibility) → extract templates → compile nodes → Program
//
//  1. The eligibility analyzer decides whether a set can be compiled at all.
//     Ineligible sets (extension operators, malformed nodes) belong to the
//     generic interpreter; the compiler must never see them.
//  2. The template extractor prebuilds, per node, the exact Open residual to
//     return when the path is absent and a conflict constructor per
//     constraint with everything but the runtime witness fixed.
//  3. The scalar-path compiler emits one closure per path: navigate, check
//     each constraint in declaration order, short-circuit to the prebuilt
//     residuals. Integer operators compile to direct int64 comparisons,
//     membership operators to a probe of a prebuilt set literal, pattern
//     operators to a precompiled regexp.
//  4. The quantifier compiler emits streaming forall/exists loops over
//     collection paths with the same short-circuit discipline.
//
// Programs are immutable and safe for unbounded concurrent use. A Program
// evaluates to exactly the residuals the generic interpreter would produce
// for the same set.
//
// An operator that reaches the code generator without support is a broken
// invariant (the analyzer admitted something the generator cannot emit);
// Compile fails loudly with UnsupportedOperatorError rather than degrading
// to wrong results.
package compile
