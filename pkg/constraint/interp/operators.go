package interp

import (
	"fmt"
	"math"
	"reflect"
	"regexp"

	"meridian-hq/polaris/pkg/constraint"
)

// evaluateEqual checks two values for equality. Integer shapes are compared
// as integers regardless of how the decoder produced them; everything else
// falls back to deep comparison.
func evaluateEqual(actual, expected interface{}) bool {
	if actual == nil || expected == nil {
		return actual == nil && expected == nil
	}

	if a, ok := toInt64(actual); ok {
		if e, ok := toInt64(expected); ok {
			return a == e
		}
	}

	if a, ok := toFloat64(actual); ok {
		if e, ok := toFloat64(expected); ok {
			return a == e
		}
	}

	return reflect.DeepEqual(actual, expected)
}

// evaluateOrdering checks a numeric ordering comparison. The constraint
// value is an integer by construction; a non-integer document value simply
// fails the comparison.
func evaluateOrdering(op constraint.Operator, actual, expected interface{}) (bool, error) {
	want, ok := toInt64(expected)
	if !ok {
		return false, fmt.Errorf("ordering operator %s requires an integer value, got %T", op, expected)
	}

	got, ok := toInt64(actual)
	if !ok {
		return false, nil
	}

	switch op {
	case constraint.OpGreaterThan:
		return got > want, nil
	case constraint.OpLessThan:
		return got < want, nil
	case constraint.OpGreaterEqual:
		return got >= want, nil
	case constraint.OpLessEqual:
		return got <= want, nil
	default:
		return false, fmt.Errorf("operator %s is not an ordering operator", op)
	}
}

// evaluateIn checks membership of actual in the expected list.
func evaluateIn(actual, expected interface{}) (bool, error) {
	rv := reflect.ValueOf(expected)
	if expected == nil || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return false, fmt.Errorf("membership operator requires a list value, got %T", expected)
	}

	for i := 0; i < rv.Len(); i++ {
		if evaluateEqual(actual, rv.Index(i).Interface()) {
			return true, nil
		}
	}

	return false, nil
}

// evaluatePattern checks actual against the expected regular expression.
// A non-string actual fails both matches and not_matches; negation applies
// only to the match result of an actual string. The pattern is compiled on
// every call; that generic cost is exactly what the compiler removes.
func evaluatePattern(op constraint.Operator, actual, expected interface{}) (bool, error) {
	src, ok := expected.(string)
	if !ok {
		return false, fmt.Errorf("pattern operator requires a string value, got %T", expected)
	}

	re, err := regexp.Compile(src)
	if err != nil {
		return false, fmt.Errorf("pattern does not compile: %w", err)
	}

	s, ok := actual.(string)
	if !ok {
		return false, nil
	}

	matched := re.MatchString(s)
	if op == constraint.OpNotMatches {
		return !matched, nil
	}
	return matched, nil
}

func toInt64(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		return int64(n), true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		if n > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	case float32:
		return integralFloat(float64(n))
	case float64:
		return integralFloat(n)
	default:
		return 0, false
	}
}

func integralFloat(f float64) (int64, bool) {
	// MaxInt64 rounds up to 2^63 as float64, so the upper bound must be
	// exclusive or int64(f) overflows at exactly 2^63.
	if f != math.Trunc(f) || f < math.MinInt64 || f >= 9223372036854775808.0 {
		return 0, false
	}
	return int64(f), true
}

func toFloat64(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	default:
		i, ok := toInt64(v)
		if !ok {
			return 0, false
		}
		return float64(i), true
	}
}
