package constraint

import "testing"

func TestSetRequirePreservesDeclarationOrder(t *testing.T) {
	set := NewSet().
		Require(MustParsePath("user.role"), Constraint{Op: OpEqual, Value: "admin"}).
		Require(MustParsePath("order.total"), Constraint{Op: OpLessEqual, Value: int64(1000)}).
		Require(MustParsePath("region"), Constraint{Op: OpIn, Value: []interface{}{"eu", "us"}})

	nodes := set.Nodes()
	if len(nodes) != 3 {
		t.Fatalf("Len = %d, want 3", len(nodes))
	}

	wantOrder := []string{"user.role", "order.total", "region"}
	for i, want := range wantOrder {
		if nodes[i].Path.String() != want {
			t.Errorf("node %d path = %q, want %q", i, nodes[i].Path.String(), want)
		}
	}
}

func TestSetRequireAppendsToExistingPath(t *testing.T) {
	path := MustParsePath("order.total")
	set := NewSet().
		Require(path, Constraint{Op: OpGreaterThan, Value: int64(0)}).
		Require(MustParsePath("user.role"), Constraint{Op: OpEqual, Value: "admin"}).
		Require(path, Constraint{Op: OpLessEqual, Value: int64(1000)})

	if set.Len() != 2 {
		t.Fatalf("Len = %d, want 2 (repeated path must not add a node)", set.Len())
	}

	constraints, ok := set.ConstraintsAt(path)
	if !ok {
		t.Fatalf("ConstraintsAt(%s) not found", path)
	}
	if len(constraints) != 2 {
		t.Fatalf("constraints at %s = %d, want 2", path, len(constraints))
	}
	if constraints[0].Op != OpGreaterThan || constraints[1].Op != OpLessEqual {
		t.Errorf("constraint order not preserved: %v", constraints)
	}
}

func TestSetQuantify(t *testing.T) {
	set := NewSet().
		Require(MustParsePath("user.role"), Constraint{Op: OpEqual, Value: "admin"}).
		Quantify(Quantifier{
			Kind:       ForAll,
			Collection: MustParsePath("order.items"),
			Where: []ElementConstraint{
				{Path: MustParsePath("qty"), Constraint: Constraint{Op: OpGreaterThan, Value: int64(0)}},
			},
		})

	if !set.HasQuantifiers() {
		t.Error("HasQuantifiers = false, want true")
	}

	nodes := set.Nodes()
	if nodes[1].Kind != NodeQuantifier {
		t.Errorf("node 1 kind = %v, want NodeQuantifier", nodes[1].Kind)
	}
	if nodes[1].Quantifier.Collection.String() != "order.items" {
		t.Errorf("collection = %q, want order.items", nodes[1].Quantifier.Collection.String())
	}
}

func TestSetConstraintsAtMissingPath(t *testing.T) {
	set := NewSet().Require(MustParsePath("a"), Constraint{Op: OpEqual, Value: int64(1)})

	if _, ok := set.ConstraintsAt(MustParsePath("b")); ok {
		t.Error("ConstraintsAt on absent path reported found")
	}
}
