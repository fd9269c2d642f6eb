package compile

import (
	"fmt"

	"meridian-hq/polaris/pkg/constraint"
)

// step evaluates one set node against a document. A nil result means the
// node holds and evaluation falls through to the next node.
type step func(doc constraint.Document) *constraint.Residual

// Program is a compiled evaluator for exactly one constraint set: a fixed
// chain of specialized closures produced by Compile. Programs are immutable
// and safe for unbounded concurrent use.
type Program struct {
	steps []step
	nodes int
}

// Compile specializes the set into a Program. The set is expected to have
// passed eligibility analysis; Compile fails loudly on anything the code
// generator cannot emit rather than degrading to wrong results.
func Compile(set *constraint.Set) (*Program, error) {
	if set == nil || set.Len() == 0 {
		return nil, fmt.Errorf("cannot compile an empty constraint set")
	}

	templates := extractTemplates(set)
	steps := make([]step, 0, set.Len())

	for i, n := range set.Nodes() {
		var (
			s   step
			err error
		)

		switch n.Kind {
		case constraint.NodeScalar:
			s, err = compileScalar(n.Path, n.Constraints, templates[i])
		case constraint.NodeQuantifier:
			s, err = compileQuantifier(n.Quantifier, templates[i])
		default:
			err = fmt.Errorf("node %d: unknown node kind %d", i, n.Kind)
		}

		if err != nil {
			return nil, fmt.Errorf("compiling node %d: %w", i, err)
		}
		steps = append(steps, s)
	}

	return &Program{steps: steps, nodes: set.Len()}, nil
}

// Evaluate runs the document through the compiled step chain. The first
// node that does not hold decides the residual; when every node falls
// through, the canonical satisfied residual is returned.
func (p *Program) Evaluate(doc constraint.Document) *constraint.Residual {
	for _, s := range p.steps {
		if r := s(doc); r != nil {
			return r
		}
	}
	return constraint.Satisfied
}

// NodeCount returns the number of set nodes the program was compiled from.
func (p *Program) NodeCount() int {
	return p.nodes
}
