package interp

import (
	"fmt"

	"meridian-hq/polaris/pkg/constraint"
	"meridian-hq/polaris/pkg/constraint/registry"
)

// Interpreter evaluates constraint sets generically, without compilation.
type Interpreter struct {
	reg *registry.Registry
}

// New creates an interpreter backed by the given operator registry.
func New(reg *registry.Registry) *Interpreter {
	return &Interpreter{reg: reg}
}

// Evaluate walks the set's nodes in declaration order against the document.
// Errors arise only from extension operator callbacks or operators unknown
// to the registry; built-in evaluation cannot fail.
func (in *Interpreter) Evaluate(set *constraint.Set, doc constraint.Document) (*constraint.Residual, error) {
	for _, n := range set.Nodes() {
		var (
			r   *constraint.Residual
			err error
		)

		switch n.Kind {
		case constraint.NodeScalar:
			r, err = in.evalScalar(n, doc)
		case constraint.NodeQuantifier:
			r, err = in.evalQuantifier(n.Quantifier, doc)
		default:
			err = fmt.Errorf("unknown node kind %d", n.Kind)
		}

		if err != nil {
			return nil, err
		}
		if r != nil {
			return r, nil
		}
	}

	return constraint.Satisfied, nil
}

func (in *Interpreter) evalScalar(n constraint.Node, doc constraint.Document) (*constraint.Residual, error) {
	v, ok := doc.Resolve(n.Path)
	if !ok {
		return constraint.NewOpen(n.Path, n.Constraints), nil
	}

	for _, c := range n.Constraints {
		holds, err := in.holds(c, v)
		if err != nil {
			return nil, fmt.Errorf("evaluating %s at %s: %w", c, n.Path, err)
		}
		if !holds {
			return constraint.NewConflict(n.Path, c, v), nil
		}
	}

	return nil, nil
}

func (in *Interpreter) evalQuantifier(q constraint.Quantifier, doc constraint.Document) (*constraint.Residual, error) {
	restated := make([]constraint.Constraint, len(q.Where))
	for i, ec := range q.Where {
		restated[i] = ec.Constraint
	}

	col, ok := doc.Resolve(q.Collection)
	if !ok {
		return constraint.NewOpen(q.Collection, restated), nil
	}

	elems, ok := constraint.AsCollection(col)
	if !ok {
		return constraint.NewOpen(q.Collection, restated), nil
	}

	switch q.Kind {
	case constraint.ForAll:
		for _, elem := range elems {
			for i, ec := range q.Where {
				v, ok := constraint.ResolveIn(elem, ec.Path)
				if !ok {
					return constraint.NewOpen(q.Collection, restated), nil
				}
				holds, err := in.holds(ec.Constraint, v)
				if err != nil {
					return nil, fmt.Errorf("evaluating %s over %s: %w", ec, q.Collection, err)
				}
				if !holds {
					return constraint.NewConflict(q.Collection.Join(q.Where[i].Path), ec.Constraint, v), nil
				}
			}
		}
		return nil, nil

	case constraint.Exists:
		for _, elem := range elems {
			sat := true
			for _, ec := range q.Where {
				v, ok := constraint.ResolveIn(elem, ec.Path)
				if !ok {
					sat = false
					break
				}
				holds, err := in.holds(ec.Constraint, v)
				if err != nil {
					return nil, fmt.Errorf("evaluating %s over %s: %w", ec, q.Collection, err)
				}
				if !holds {
					sat = false
					break
				}
			}
			if sat {
				return nil, nil
			}
		}
		if len(q.Where) == 0 {
			return nil, fmt.Errorf("exists quantifier over %s has no element constraints", q.Collection)
		}
		return constraint.NewConflict(q.Collection, q.Where[0].Constraint, col), nil

	default:
		return nil, fmt.Errorf("unknown quantifier kind %q", q.Kind)
	}
}

// holds dispatches one constraint generically. Extension operators are
// resolved through the registry.
func (in *Interpreter) holds(c constraint.Constraint, v interface{}) (bool, error) {
	switch c.Op {
	case constraint.OpEqual:
		return evaluateEqual(v, c.Value), nil

	case constraint.OpNotEqual:
		return !evaluateEqual(v, c.Value), nil

	case constraint.OpGreaterThan, constraint.OpLessThan,
		constraint.OpGreaterEqual, constraint.OpLessEqual:
		return evaluateOrdering(c.Op, v, c.Value)

	case constraint.OpIn:
		return evaluateIn(v, c.Value)

	case constraint.OpNotIn:
		found, err := evaluateIn(v, c.Value)
		return !found, err

	case constraint.OpMatches, constraint.OpNotMatches:
		return evaluatePattern(c.Op, v, c.Value)

	default:
		if fn, ok := in.reg.Extension(c.Op); ok {
			return fn(v, c.Value)
		}
		return false, fmt.Errorf("unknown operator %q", c.Op)
	}
}
