package compile

import "meridian-hq/polaris/pkg/constraint"

// conflictFunc builds a conflict residual around a runtime witness. Path and
// constraint are fixed at extraction time so evaluation only plugs in the
// offending value.
type conflictFunc func(witness interface{}) *constraint.Residual

// nodeTemplates holds the precomputed residual shapes for one set node. The
// open residual is built once and shared by every evaluation; the hot path
// never rebuilds paths or constraint lists.
type nodeTemplates struct {
	// open is returned when the node's path (or collection) is absent.
	open *constraint.Residual

	// conflicts has one constructor per constraint, in declaration order.
	// For quantifiers these are the element constraints, with the conflict
	// path prejoined (collection path + element-relative path).
	conflicts []conflictFunc

	// exhausted builds the conflict for an exists quantifier whose loop
	// finished without a satisfying element. Nil for other nodes.
	exhausted conflictFunc
}

// extractTemplates precomputes residual templates for every node of the set.
// Extraction is deterministic and cannot fail on an analyzed set.
func extractTemplates(set *constraint.Set) []nodeTemplates {
	all := make([]nodeTemplates, set.Len())

	for i, n := range set.Nodes() {
		switch n.Kind {
		case constraint.NodeScalar:
			all[i] = scalarTemplates(n.Path, n.Constraints)
		case constraint.NodeQuantifier:
			all[i] = quantifierTemplates(n.Quantifier)
		}
	}

	return all
}

func scalarTemplates(path constraint.Path, constraints []constraint.Constraint) nodeTemplates {
	t := nodeTemplates{
		open:      constraint.NewOpen(path, constraints),
		conflicts: make([]conflictFunc, len(constraints)),
	}

	for i, c := range constraints {
		c := c
		t.conflicts[i] = func(witness interface{}) *constraint.Residual {
			return constraint.NewConflict(path, c, witness)
		}
	}

	return t
}

func quantifierTemplates(q constraint.Quantifier) nodeTemplates {
	// The open residual restates the element constraints declared over the
	// collection.
	restated := make([]constraint.Constraint, len(q.Where))
	for i, ec := range q.Where {
		restated[i] = ec.Constraint
	}

	t := nodeTemplates{
		open:      constraint.NewOpen(q.Collection, restated),
		conflicts: make([]conflictFunc, len(q.Where)),
	}

	for i, ec := range q.Where {
		ec := ec
		conflictPath := q.Collection.Join(ec.Path)
		t.conflicts[i] = func(witness interface{}) *constraint.Residual {
			return constraint.NewConflict(conflictPath, ec.Constraint, witness)
		}
	}

	if q.Kind == constraint.Exists && len(q.Where) > 0 {
		// No element satisfied the quantifier: report the first element
		// constraint as the unsatisfied requirement.
		first := q.Where[0].Constraint
		collection := q.Collection
		t.exhausted = func(witness interface{}) *constraint.Residual {
			return constraint.NewConflict(collection, first, witness)
		}
	}

	return t
}
