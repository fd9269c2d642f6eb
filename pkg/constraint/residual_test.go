package constraint

import (
	"strings"
	"testing"
)

func TestResidualKinds(t *testing.T) {
	open := NewOpen(MustParsePath("user.role"), []Constraint{{Op: OpEqual, Value: "admin"}})
	conflict := NewConflict(MustParsePath("order.total"), Constraint{Op: OpLessEqual, Value: int64(100)}, int64(250))

	if !Satisfied.IsSatisfied() || Satisfied.IsOpen() || Satisfied.IsConflict() {
		t.Error("Satisfied kind predicates wrong")
	}
	if !open.IsOpen() || open.IsSatisfied() || open.IsConflict() {
		t.Error("open kind predicates wrong")
	}
	if !conflict.IsConflict() || conflict.IsSatisfied() || conflict.IsOpen() {
		t.Error("conflict kind predicates wrong")
	}
}

func TestResidualString(t *testing.T) {
	open := NewOpen(MustParsePath("user.role"), []Constraint{{Op: OpEqual, Value: "admin"}})
	if s := open.String(); !strings.Contains(s, "user.role") || !strings.Contains(s, "open") {
		t.Errorf("open String = %q", s)
	}

	conflict := NewConflict(MustParsePath("order.total"), Constraint{Op: OpLessEqual, Value: int64(100)}, int64(250))
	if s := conflict.String(); !strings.Contains(s, "order.total") || !strings.Contains(s, "250") {
		t.Errorf("conflict String = %q", s)
	}

	if Satisfied.String() != "satisfied" {
		t.Errorf("satisfied String = %q", Satisfied.String())
	}
}
