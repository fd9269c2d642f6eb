package constraint

import "testing"

// TestParsePath tests dot notation parsing
func TestParsePath(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		want      Path
		wantError bool
	}{
		{
			name:  "single selector",
			input: "role",
			want:  Path{"role"},
		},
		{
			name:  "nested selectors",
			input: "user.role",
			want:  Path{"user", "role"},
		},
		{
			name:  "deeply nested",
			input: "order.customer.address.country",
			want:  Path{"order", "customer", "address", "country"},
		},
		{
			name:      "empty string",
			input:     "",
			wantError: true,
		},
		{
			name:      "blank string",
			input:     "   ",
			wantError: true,
		},
		{
			name:      "empty selector",
			input:     "user..role",
			wantError: true,
		},
		{
			name:      "trailing dot",
			input:     "user.",
			wantError: true,
		},
		{
			name:      "leading dot",
			input:     ".user",
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePath(tt.input)
			if tt.wantError {
				if err == nil {
					t.Fatalf("ParsePath(%q) expected error, got %v", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParsePath(%q) unexpected error: %v", tt.input, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParsePath(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestPathStringRoundTrip(t *testing.T) {
	p := MustParsePath("user.role")
	if p.String() != "user.role" {
		t.Errorf("String() = %q, want %q", p.String(), "user.role")
	}
}

// TestPathKey tests that key equality tracks selector sequence equality
func TestPathKey(t *testing.T) {
	tests := []struct {
		name      string
		a, b      Path
		wantEqual bool
	}{
		{
			name:      "equal sequences",
			a:         Path{"user", "role"},
			b:         MustParsePath("user.role"),
			wantEqual: true,
		},
		{
			name:      "different length",
			a:         Path{"user"},
			b:         Path{"user", "role"},
			wantEqual: false,
		},
		{
			name:      "different selectors",
			a:         Path{"user", "role"},
			b:         Path{"user", "name"},
			wantEqual: false,
		},
		{
			name:      "joined selectors do not collide",
			a:         Path{"user.role"},
			b:         Path{"user", "role"},
			wantEqual: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Key() == tt.b.Key(); got != tt.wantEqual {
				t.Errorf("Key equality = %v, want %v", got, tt.wantEqual)
			}
			if got := tt.a.Equal(tt.b); got != tt.wantEqual {
				t.Errorf("Equal = %v, want %v", got, tt.wantEqual)
			}
		})
	}
}

func TestPathJoin(t *testing.T) {
	col := MustParsePath("order.items")
	rel := MustParsePath("qty")

	joined := col.Join(rel)
	if joined.String() != "order.items.qty" {
		t.Errorf("Join = %q, want %q", joined.String(), "order.items.qty")
	}

	// Join must not alias the receiver's backing array.
	other := col.Join(MustParsePath("price"))
	if joined.String() == other.String() {
		t.Errorf("joined paths alias each other: %q", joined.String())
	}
}

func TestMustParsePathPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("MustParsePath with empty input did not panic")
		}
	}()
	MustParsePath("")
}
