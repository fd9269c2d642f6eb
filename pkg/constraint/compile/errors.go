package compile

import (
	"fmt"
	"strings"

	"meridian-hq/polaris/pkg/constraint"
)

// IneligibleError reports that a set failed eligibility analysis and must be
// routed to the generic interpreter instead of the compiler.
type IneligibleError struct {
	Reasons []string
}

// Error returns the error message.
func (e *IneligibleError) Error() string {
	if len(e.Reasons) == 1 {
		return fmt.Sprintf("constraint set not compilable: %s", e.Reasons[0])
	}
	return fmt.Sprintf("constraint set not compilable (%d reasons): %s",
		len(e.Reasons), strings.Join(e.Reasons, "; "))
}

// UnsupportedOperatorError reports an operator that reached the code
// generator without a supported emission. This is a broken invariant: the
// eligibility analyzer admitted a set the generator cannot compile.
type UnsupportedOperatorError struct {
	Op   constraint.Operator
	Path constraint.Path
}

// Error returns the error message.
func (e *UnsupportedOperatorError) Error() string {
	return fmt.Sprintf("code generator has no emission for operator %q at path %s", e.Op, e.Path)
}

// InvalidConstraintError reports a constraint whose value shape does not fit
// its operator (non-integer ordering operand, non-list membership operand,
// uncompilable pattern).
type InvalidConstraintError struct {
	Path       constraint.Path
	Constraint constraint.Constraint
	Message    string
}

// Error returns the error message.
func (e *InvalidConstraintError) Error() string {
	return fmt.Sprintf("invalid constraint %s at path %s: %s", e.Constraint, e.Path, e.Message)
}
