package constraint

// Operator represents a comparison operator in a constraint.
type Operator string

const (
	OpEqual        Operator = "eq"
	OpNotEqual     Operator = "neq"
	OpGreaterThan  Operator = "gt"
	OpLessThan     Operator = "lt"
	OpGreaterEqual Operator = "gte"
	OpLessEqual    Operator = "lte"
	OpIn           Operator = "in"
	OpNotIn        Operator = "not_in"
	OpMatches      Operator = "matches"
	OpNotMatches   Operator = "not_matches"
)

// BuiltinOperators returns the operators defined by the engine itself, in a
// stable order. Everything else is a user-registered extension.
func BuiltinOperators() []Operator {
	return []Operator{
		OpEqual,
		OpNotEqual,
		OpGreaterThan,
		OpLessThan,
		OpGreaterEqual,
		OpLessEqual,
		OpIn,
		OpNotIn,
		OpMatches,
		OpNotMatches,
	}
}

// IsOrdering reports whether the operator is a numeric ordering comparison.
// Ordering operators carry integer-typed constraint values.
func (o Operator) IsOrdering() bool {
	switch o {
	case OpGreaterThan, OpLessThan, OpGreaterEqual, OpLessEqual:
		return true
	default:
		return false
	}
}

// IsMembership reports whether the operator tests membership in a finite set.
func (o Operator) IsMembership() bool {
	return o == OpIn || o == OpNotIn
}

// IsPattern reports whether the operator is a regular-expression match.
func (o Operator) IsPattern() bool {
	return o == OpMatches || o == OpNotMatches
}
