package compile

import (
	"math"
	"testing"
)

func TestAsInt64(t *testing.T) {
	tests := []struct {
		name string
		in   interface{}
		want int64
		ok   bool
	}{
		{name: "int", in: 5, want: 5, ok: true},
		{name: "int64", in: int64(-7), want: -7, ok: true},
		{name: "uint64 in range", in: uint64(9), want: 9, ok: true},
		{name: "uint64 overflow", in: uint64(math.MaxInt64) + 1, ok: false},
		{name: "integral float", in: float64(42), want: 42, ok: true},
		{name: "fractional float", in: float64(4.2), ok: false},
		{name: "min int64 float", in: float64(math.MinInt64), want: math.MinInt64, ok: true},
		{name: "two to the 63rd", in: float64(9223372036854775808), ok: false},
		{name: "beyond two to the 63rd", in: float64(1) * 1e19, ok: false},
		{name: "string", in: "5", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := asInt64(tt.in)
			if ok != tt.ok {
				t.Fatalf("asInt64(%v) ok = %v, want %v", tt.in, ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("asInt64(%v) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}
