package compile

import (
	"fmt"

	"meridian-hq/polaris/pkg/constraint"
	"meridian-hq/polaris/pkg/constraint/registry"
)

// Report is the outcome of eligibility analysis. When Eligible is false,
// Reasons names every disqualifier found.
type Report struct {
	Eligible bool
	Reasons  []string
}

// Analyze decides whether a set can be handed to the baseline compiler.
// A set is eligible iff it has at least one node, every path is non-empty
// with a non-empty constraint list, every operator is built-in, and no
// quantifier nodes are present. Quantified sets need the quantifier-aware
// analysis (AnalyzeWithQuantifiers).
//
// Analysis is pure: it never mutates the set and has no side effects.
func Analyze(set *constraint.Set, reg *registry.Registry) Report {
	return analyze(set, reg, false)
}

// AnalyzeWithQuantifiers is Analyze with quantifier nodes admitted and
// checked for well-formedness instead of rejected outright.
func AnalyzeWithQuantifiers(set *constraint.Set, reg *registry.Registry) Report {
	return analyze(set, reg, true)
}

func analyze(set *constraint.Set, reg *registry.Registry, allowQuantifiers bool) Report {
	var reasons []string

	if set == nil || set.Len() == 0 {
		return Report{Reasons: []string{"set has no constraints"}}
	}

	for i, n := range set.Nodes() {
		switch n.Kind {
		case constraint.NodeScalar:
			reasons = append(reasons, analyzeScalar(i, n, reg)...)

		case constraint.NodeQuantifier:
			if !allowQuantifiers {
				reasons = append(reasons, fmt.Sprintf("node %d: quantifier nodes are not compilable by the baseline compiler", i))
				continue
			}
			reasons = append(reasons, analyzeQuantifier(i, n.Quantifier, reg)...)

		default:
			reasons = append(reasons, fmt.Sprintf("node %d: unknown node kind %d", i, n.Kind))
		}
	}

	return Report{Eligible: len(reasons) == 0, Reasons: reasons}
}

func analyzeScalar(i int, n constraint.Node, reg *registry.Registry) []string {
	var reasons []string

	if n.Path.IsZero() {
		reasons = append(reasons, fmt.Sprintf("node %d: empty path", i))
	}
	if len(n.Constraints) == 0 {
		reasons = append(reasons, fmt.Sprintf("node %d (%s): no constraints", i, n.Path))
	}
	for _, c := range n.Constraints {
		if !reg.Builtin(c.Op) {
			reasons = append(reasons, fmt.Sprintf("node %d (%s): operator %q is not built-in", i, n.Path, c.Op))
		}
	}

	return reasons
}

func analyzeQuantifier(i int, q constraint.Quantifier, reg *registry.Registry) []string {
	var reasons []string

	switch q.Kind {
	case constraint.ForAll, constraint.Exists:
	default:
		reasons = append(reasons, fmt.Sprintf("node %d: unknown quantifier kind %q", i, q.Kind))
	}

	if q.Collection.IsZero() {
		reasons = append(reasons, fmt.Sprintf("node %d: quantifier with empty collection path", i))
	}
	if len(q.Where) == 0 {
		reasons = append(reasons, fmt.Sprintf("node %d (%s): quantifier with no element constraints", i, q.Collection))
	}
	for _, ec := range q.Where {
		if ec.Path.IsZero() {
			reasons = append(reasons, fmt.Sprintf("node %d (%s): element constraint with empty relative path", i, q.Collection))
		}
		if !reg.Builtin(ec.Constraint.Op) {
			reasons = append(reasons, fmt.Sprintf("node %d (%s): operator %q is not built-in", i, q.Collection, ec.Constraint.Op))
		}
	}

	return reasons
}
