package constraint

import (
	"fmt"
	"strings"
)

// ResidualKind represents the three-valued outcome of evaluating a Set.
type ResidualKind string

const (
	// KindSatisfied means every node of the set holds for the document.
	KindSatisfied ResidualKind = "satisfied"

	// KindOpen means the document has no value at a path. Evaluation is
	// deferred rather than failed.
	KindOpen ResidualKind = "open"

	// KindConflict means the document has a value that violates a constraint.
	KindConflict ResidualKind = "conflict"
)

// Residual is the result of evaluating a Set against a Document.
// Residuals are immutable; Open residuals are prebuilt at compile time and
// shared across evaluations.
type Residual struct {
	// Kind discriminates the outcome.
	Kind ResidualKind

	// Path is the document path the residual refers to.
	// Unset for satisfied residuals.
	Path Path

	// Constraints restates the declared constraints at Path.
	// Set for open residuals only.
	Constraints []Constraint

	// Constraint is the violated constraint.
	// Set for conflict residuals only.
	Constraint Constraint

	// Witness is the literal document value that violated Constraint.
	// Set for conflict residuals only.
	Witness interface{}
}

// Satisfied is the canonical satisfied residual. Evaluators return this
// exact instance so the hot path never allocates for the common outcome.
var Satisfied = &Residual{Kind: KindSatisfied}

// NewOpen builds an open residual for the given path and constraint list.
func NewOpen(path Path, constraints []Constraint) *Residual {
	return &Residual{
		Kind:        KindOpen,
		Path:        path,
		Constraints: constraints,
	}
}

// NewConflict builds a conflict residual carrying the violated constraint
// and the offending value.
func NewConflict(path Path, c Constraint, witness interface{}) *Residual {
	return &Residual{
		Kind:       KindConflict,
		Path:       path,
		Constraint: c,
		Witness:    witness,
	}
}

// IsSatisfied reports whether the residual is the satisfied outcome.
func (r *Residual) IsSatisfied() bool {
	return r.Kind == KindSatisfied
}

// IsOpen reports whether the residual defers on missing data.
func (r *Residual) IsOpen() bool {
	return r.Kind == KindOpen
}

// IsConflict reports whether the residual is an explicit violation.
func (r *Residual) IsConflict() bool {
	return r.Kind == KindConflict
}

// String returns a human-readable summary of the residual.
func (r *Residual) String() string {
	switch r.Kind {
	case KindSatisfied:
		return "satisfied"

	case KindOpen:
		parts := make([]string, 0, len(r.Constraints))
		for _, c := range r.Constraints {
			parts = append(parts, c.String())
		}
		return fmt.Sprintf("open at %s (requires %s)", r.Path, strings.Join(parts, ", "))

	case KindConflict:
		return fmt.Sprintf("conflict at %s: %s, got %v", r.Path, r.Constraint, r.Witness)

	default:
		return fmt.Sprintf("unknown residual kind %q", r.Kind)
	}
}
