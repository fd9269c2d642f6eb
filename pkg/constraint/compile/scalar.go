package compile

import (
	"fmt"
	"reflect"
	"regexp"

	"meridian-hq/polaris/pkg/constraint"
)

// check is a compiled constraint predicate over a resolved document value.
// It reports whether the value satisfies the constraint.
type check func(v interface{}) bool

// compileScalar emits the evaluation step for one scalar path: navigate the
// document, run each constraint check in declaration order, and
// short-circuit to the node's prebuilt residuals.
func compileScalar(path constraint.Path, constraints []constraint.Constraint, tmpl nodeTemplates) (step, error) {
	checks := make([]check, len(constraints))
	for i, c := range constraints {
		chk, err := compileCheck(path, c)
		if err != nil {
			return nil, err
		}
		checks[i] = chk
	}

	return func(doc constraint.Document) *constraint.Residual {
		v, ok := doc.Resolve(path)
		if !ok {
			return tmpl.open
		}
		for i, chk := range checks {
			if !chk(v) {
				return tmpl.conflicts[i](v)
			}
		}
		return nil
	}, nil
}

// compileCheck specializes one constraint into a closure. Integer operators
// compile to direct int64 comparisons, membership operators to a probe of a
// prebuilt set literal, pattern operators to a precompiled regexp. A value
// of the wrong type at the path fails the check and surfaces as a conflict
// with that value as witness.
func compileCheck(path constraint.Path, c constraint.Constraint) (check, error) {
	switch c.Op {
	case constraint.OpEqual:
		return compileEqual(c)

	case constraint.OpNotEqual:
		eq, err := compileEqual(c)
		if err != nil {
			return nil, err
		}
		return func(v interface{}) bool { return !eq(v) }, nil

	case constraint.OpGreaterThan, constraint.OpLessThan,
		constraint.OpGreaterEqual, constraint.OpLessEqual:
		return compileOrdering(path, c)

	case constraint.OpIn, constraint.OpNotIn:
		return compileMembership(path, c)

	case constraint.OpMatches, constraint.OpNotMatches:
		return compilePattern(path, c)

	default:
		// The analyzer admitted an operator the generator cannot emit.
		return nil, &UnsupportedOperatorError{Op: c.Op, Path: path}
	}
}

func compileEqual(c constraint.Constraint) (check, error) {
	// Integer constants get the direct comparison, not generic equality.
	if want, ok := asInt64(c.Value); ok {
		return func(v interface{}) bool {
			got, ok := asInt64(v)
			return ok && got == want
		}, nil
	}

	switch want := c.Value.(type) {
	case string:
		return func(v interface{}) bool {
			got, ok := v.(string)
			return ok && got == want
		}, nil

	case bool:
		return func(v interface{}) bool {
			got, ok := v.(bool)
			return ok && got == want
		}, nil

	case float32:
		w := float64(want)
		return func(v interface{}) bool { return floatEqual(v, w) }, nil

	case float64:
		return func(v interface{}) bool { return floatEqual(v, want) }, nil

	case nil:
		return func(v interface{}) bool { return v == nil }, nil

	default:
		// Structured constants are rare; fall back to deep equality.
		return func(v interface{}) bool {
			return reflect.DeepEqual(v, c.Value)
		}, nil
	}
}

func floatEqual(v interface{}, want float64) bool {
	switch got := v.(type) {
	case float64:
		return got == want
	case float32:
		return float64(got) == want
	default:
		i, ok := asInt64(v)
		return ok && float64(i) == want
	}
}

func compileOrdering(path constraint.Path, c constraint.Constraint) (check, error) {
	want, ok := asInt64(c.Value)
	if !ok {
		return nil, &InvalidConstraintError{
			Path:       path,
			Constraint: c,
			Message:    fmt.Sprintf("ordering operator requires an integer value, got %T", c.Value),
		}
	}

	switch c.Op {
	case constraint.OpGreaterThan:
		return func(v interface{}) bool {
			got, ok := asInt64(v)
			return ok && got > want
		}, nil
	case constraint.OpLessThan:
		return func(v interface{}) bool {
			got, ok := asInt64(v)
			return ok && got < want
		}, nil
	case constraint.OpGreaterEqual:
		return func(v interface{}) bool {
			got, ok := asInt64(v)
			return ok && got >= want
		}, nil
	default: // constraint.OpLessEqual
		return func(v interface{}) bool {
			got, ok := asInt64(v)
			return ok && got <= want
		}, nil
	}
}

func compileMembership(path constraint.Path, c constraint.Constraint) (check, error) {
	rv := reflect.ValueOf(c.Value)
	if c.Value == nil || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return nil, &InvalidConstraintError{
			Path:       path,
			Constraint: c,
			Message:    fmt.Sprintf("membership operator requires a list value, got %T", c.Value),
		}
	}

	// Prebuilt set literal; evaluation is a single map probe.
	members := make(map[interface{}]struct{}, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		key, ok := normalizeScalar(rv.Index(i).Interface())
		if !ok {
			return nil, &InvalidConstraintError{
				Path:       path,
				Constraint: c,
				Message:    fmt.Sprintf("membership list element %d is not a scalar", i),
			}
		}
		members[key] = struct{}{}
	}

	negate := c.Op == constraint.OpNotIn
	return func(v interface{}) bool {
		key, ok := normalizeScalar(v)
		if !ok {
			return negate
		}
		_, found := members[key]
		return found != negate
	}, nil
}

func compilePattern(path constraint.Path, c constraint.Constraint) (check, error) {
	src, ok := c.Value.(string)
	if !ok {
		return nil, &InvalidConstraintError{
			Path:       path,
			Constraint: c,
			Message:    fmt.Sprintf("pattern operator requires a string value, got %T", c.Value),
		}
	}

	re, err := regexp.Compile(src)
	if err != nil {
		return nil, &InvalidConstraintError{
			Path:       path,
			Constraint: c,
			Message:    fmt.Sprintf("pattern does not compile: %v", err),
		}
	}

	negate := c.Op == constraint.OpNotMatches
	return func(v interface{}) bool {
		s, ok := v.(string)
		if !ok {
			return false
		}
		return re.MatchString(s) != negate
	}, nil
}
