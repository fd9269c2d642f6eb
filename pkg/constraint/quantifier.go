package constraint

import "fmt"

// QuantifierKind selects the quantification mode over a collection.
type QuantifierKind string

const (
	// ForAll requires every element of the collection to satisfy all
	// element constraints.
	ForAll QuantifierKind = "forall"

	// Exists requires at least one element of the collection to satisfy all
	// element constraints.
	Exists QuantifierKind = "exists"
)

// ElementConstraint is a constraint applied to a field of each collection
// element. Path is relative to the element.
type ElementConstraint struct {
	Path       Path
	Constraint Constraint
}

// String returns a human-readable form, e.g. `qty lte 5`.
func (e ElementConstraint) String() string {
	return fmt.Sprintf("%s %s", e.Path, e.Constraint)
}

// Quantifier applies element constraints across a collection located at
// Collection. The element constraints are conjoined per element.
type Quantifier struct {
	Kind       QuantifierKind
	Collection Path
	Where      []ElementConstraint
}

// String returns a human-readable form, e.g. `forall(items: qty lte 5)`.
func (q Quantifier) String() string {
	s := string(q.Kind) + "(" + q.Collection.String() + ":"
	for i, ec := range q.Where {
		if i > 0 {
			s += ","
		}
		s += " " + ec.String()
	}
	return s + ")"
}
