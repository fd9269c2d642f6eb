package constraint

import "fmt"

// Constraint is a single operator/value predicate over a document value.
// Constraints are immutable once built.
type Constraint struct {
	// Op is the comparison operator.
	Op Operator

	// Value is the operand: an integer for ordering operators, a scalar list
	// for membership operators, a regular-expression source string for
	// pattern operators, and an arbitrary scalar for eq/neq.
	Value interface{}
}

// String returns a human-readable form, e.g. `eq "admin"` or `lte 5`.
func (c Constraint) String() string {
	switch v := c.Value.(type) {
	case string:
		return fmt.Sprintf("%s %q", c.Op, v)
	default:
		return fmt.Sprintf("%s %v", c.Op, c.Value)
	}
}
