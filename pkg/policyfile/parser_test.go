package policyfile

import (
	"errors"
	"strings"
	"testing"

	"meridian-hq/polaris/pkg/constraint"
	"meridian-hq/polaris/pkg/constraint/compile"
	"meridian-hq/polaris/pkg/constraint/registry"
)

const validPolicy = `
name: order-limits
version: "1"
description: Limits on incoming orders.
constraints:
  - path: user.role
    require:
      - op: eq
        value: admin
  - path: order.total
    require:
      - op: gt
        value: 0
      - op: lte
        value: 1000
  - path: region
    require:
      - op: in
        value: [eu, us]
quantifiers:
  - kind: forall
    collection: order.items
    where:
      - path: qty
        op: gt
        value: 0
  - kind: exists
    collection: order.items
    where:
      - path: sku
        op: matches
        value: "^sku-"
`

func TestParseValidPolicy(t *testing.T) {
	p := NewParser(nil)

	file, err := p.Parse([]byte(validPolicy), "order-limits.yaml")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if file.Name != "order-limits" {
		t.Errorf("Name = %q, want order-limits", file.Name)
	}
	if file.Version != "1" {
		t.Errorf("Version = %q, want 1", file.Version)
	}
	if file.Source != "order-limits.yaml" {
		t.Errorf("Source = %q", file.Source)
	}

	set := file.Set
	if set.Len() != 5 {
		t.Fatalf("set has %d nodes, want 5", set.Len())
	}

	// File order is declaration order.
	nodes := set.Nodes()
	if nodes[0].Path.String() != "user.role" {
		t.Errorf("node 0 path = %q, want user.role", nodes[0].Path.String())
	}
	if nodes[3].Kind != constraint.NodeQuantifier || nodes[3].Quantifier.Kind != constraint.ForAll {
		t.Errorf("node 3 is not the forall quantifier")
	}
	if nodes[4].Quantifier.Kind != constraint.Exists {
		t.Errorf("node 4 is not the exists quantifier")
	}

	totals, ok := set.ConstraintsAt(constraint.MustParsePath("order.total"))
	if !ok || len(totals) != 2 {
		t.Fatalf("order.total constraints = %v, want 2", totals)
	}
	if totals[0].Op != constraint.OpGreaterThan || totals[1].Op != constraint.OpLessEqual {
		t.Errorf("order.total constraint order wrong: %v", totals)
	}
}

// TestParseErrors tests rejection of malformed and invalid policies
func TestParseErrors(t *testing.T) {
	p := NewParser(nil)

	tests := []struct {
		name     string
		input    string
		wantType ErrorType
		wantMsg  string
	}{
		{
			name:     "malformed yaml",
			input:    "name: [unclosed",
			wantType: ErrorTypeSyntax,
		},
		{
			name:     "wrong schema shape",
			input:    "constraints: 42",
			wantType: ErrorTypeStructural,
		},
		{
			name:     "missing name",
			input:    "constraints:\n  - path: a\n    require:\n      - op: eq\n        value: 1\n",
			wantType: ErrorTypeStructural,
			wantMsg:  "name",
		},
		{
			name:     "no constraints or quantifiers",
			input:    "name: empty\n",
			wantType: ErrorTypeStructural,
		},
		{
			name:     "bad path",
			input:    "name: p\nconstraints:\n  - path: \"a..b\"\n    require:\n      - op: eq\n        value: 1\n",
			wantType: ErrorTypeValidation,
			wantMsg:  "a..b",
		},
		{
			name:     "empty require",
			input:    "name: p\nconstraints:\n  - path: a\n",
			wantType: ErrorTypeValidation,
		},
		{
			name:     "unknown operator",
			input:    "name: p\nconstraints:\n  - path: a\n    require:\n      - op: within\n        value: 1\n",
			wantType: ErrorTypeValidation,
			wantMsg:  "within",
		},
		{
			name:     "ordering with string value",
			input:    "name: p\nconstraints:\n  - path: a\n    require:\n      - op: gt\n        value: ten\n",
			wantType: ErrorTypeValidation,
			wantMsg:  "integer",
		},
		{
			name:     "ordering with float value",
			input:    "name: p\nconstraints:\n  - path: a\n    require:\n      - op: gt\n        value: 1.5\n",
			wantType: ErrorTypeValidation,
		},
		{
			name:     "membership with scalar value",
			input:    "name: p\nconstraints:\n  - path: a\n    require:\n      - op: in\n        value: eu\n",
			wantType: ErrorTypeValidation,
		},
		{
			name:     "membership with empty list",
			input:    "name: p\nconstraints:\n  - path: a\n    require:\n      - op: in\n        value: []\n",
			wantType: ErrorTypeValidation,
		},
		{
			name:     "membership with nested list element",
			input:    "name: p\nconstraints:\n  - path: a\n    require:\n      - op: in\n        value: [[1]]\n",
			wantType: ErrorTypeValidation,
		},
		{
			name:     "bad pattern",
			input:    "name: p\nconstraints:\n  - path: a\n    require:\n      - op: matches\n        value: \"[\"\n",
			wantType: ErrorTypeValidation,
		},
		{
			name:     "unknown quantifier kind",
			input:    "name: p\nquantifiers:\n  - kind: most\n    collection: items\n    where:\n      - path: qty\n        op: gt\n        value: 0\n",
			wantType: ErrorTypeValidation,
			wantMsg:  "most",
		},
		{
			name:     "quantifier empty where",
			input:    "name: p\nquantifiers:\n  - kind: forall\n    collection: items\n",
			wantType: ErrorTypeValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.Parse([]byte(tt.input), "test.yaml")
			if err == nil {
				t.Fatal("Parse succeeded, want error")
			}

			var pfErr *Error
			if !errors.As(err, &pfErr) {
				t.Fatalf("error %v is not a policyfile.Error", err)
			}
			if pfErr.Type != tt.wantType {
				t.Errorf("error type = %q, want %q (error: %v)", pfErr.Type, tt.wantType, err)
			}
			if tt.wantMsg != "" && !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q does not mention %q", err, tt.wantMsg)
			}
		})
	}
}

func TestParseErrorCarriesLocation(t *testing.T) {
	p := NewParser(nil)

	input := strings.Join([]string{
		"name: p",
		"constraints:",
		"  - path: a",
		"    require:",
		"      - op: bogus",
		"        value: 1",
	}, "\n")

	_, err := p.Parse([]byte(input), "located.yaml")
	if err == nil {
		t.Fatal("Parse succeeded, want error")
	}

	var pfErr *Error
	if !errors.As(err, &pfErr) {
		t.Fatalf("error %v is not a policyfile.Error", err)
	}
	if pfErr.Location.File != "located.yaml" {
		t.Errorf("location file = %q", pfErr.Location.File)
	}
	if pfErr.Location.Line != 5 {
		t.Errorf("location line = %d, want 5", pfErr.Location.Line)
	}
	if !strings.Contains(err.Error(), "located.yaml:5:") {
		t.Errorf("error %q does not render file:line", err)
	}
}

func TestParseWithExtensionOperator(t *testing.T) {
	reg := registry.New()
	if err := reg.Register("divisible_by", func(a, e interface{}) (bool, error) { return true, nil }); err != nil {
		t.Fatalf("Register: %v", err)
	}

	input := "name: p\nconstraints:\n  - path: batch\n    require:\n      - op: divisible_by\n        value: 12\n"

	// Rejected against a registry that does not know the operator.
	if _, err := NewParser(nil).Parse([]byte(input), "ext.yaml"); err == nil {
		t.Error("unknown extension operator accepted")
	}

	// Accepted against a registry that does.
	file, err := NewParser(reg).Parse([]byte(input), "ext.yaml")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	constraints, ok := file.Set.ConstraintsAt(constraint.MustParsePath("batch"))
	if !ok || constraints[0].Op != "divisible_by" {
		t.Errorf("extension constraint not built: %v", constraints)
	}
}

func TestParsedPolicyEvaluates(t *testing.T) {
	p := NewParser(nil)
	file, err := p.Parse([]byte(validPolicy), "order-limits.yaml")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	doc := constraint.Document{
		"user":   map[string]interface{}{"role": "admin"},
		"region": "eu",
		"order": map[string]interface{}{
			"total": float64(500),
			"items": []interface{}{
				map[string]interface{}{"qty": float64(2), "sku": "sku-a"},
			},
		},
	}

	program, err := compile.Compile(file.Set)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	// YAML integer values must compare against JSON float64 document values.
	if got := program.Evaluate(doc); !got.IsSatisfied() {
		t.Errorf("residual = %s, want satisfied", got)
	}

	doc["order"].(map[string]interface{})["total"] = float64(1500)
	if got := program.Evaluate(doc); !got.IsConflict() {
		t.Errorf("residual = %s, want conflict", got)
	}
}
