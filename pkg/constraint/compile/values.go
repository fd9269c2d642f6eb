package compile

import "math"

// asInt64 normalizes the integer shapes decoders produce. JSON decoding
// yields float64 for every number, so integral floats count as integers.
func asInt64(v interface{}) (int64, bool) {
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
		return floatToInt64(float64(n))
	case float64:
		return floatToInt64(n)
	default:
		return 0, false
	}
}

func floatToInt64(f float64) (int64, bool) {
	// MaxInt64 rounds up to 2^63 as float64, so the upper bound must be
	// exclusive or int64(f) overflows at exactly 2^63.
	if f != math.Trunc(f) || f < math.MinInt64 || f >= 9223372036854775808.0 {
		return 0, false
	}
	return int64(f), true
}

// normalizeScalar maps a scalar onto a canonical comparable form so that
// membership probes and equality treat 5, int64(5) and 5.0 as the same key.
// It reports false for values that are not hashable scalars.
func normalizeScalar(v interface{}) (interface{}, bool) {
	if i, ok := asInt64(v); ok {
		return i, true
	}

	switch s := v.(type) {
	case string:
		return s, true
	case bool:
		return s, true
	case float32:
		return float64(s), true
	case float64:
		return s, true
	case nil:
		return nil, true
	default:
		return nil, false
	}
}
