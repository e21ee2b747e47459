package schema

import "testing"

func newTestTable(name TableName, fields ...FieldName) *Table {
	t := NewTable(name)
	for _, f := range fields {
		t.Fields.Set(&Field{Name: f})
	}
	return t
}

func TestFDClosureTransitive(t *testing.T) {
	// S1: foo->bar, bar->baz should close to foo->{bar,baz}.
	tbl := newTestTable("t", "foo", "bar", "baz")
	tbl.AddFD([]FieldName{"foo"}, []FieldName{"bar"})
	tbl.AddFD([]FieldName{"bar"}, []FieldName{"baz"})

	fd, ok := tbl.FDs[fieldKey([]FieldName{"foo"})]
	if !ok {
		t.Fatalf("expected an FD keyed by foo")
	}
	if !containsField(fd.Rhs, "bar") || !containsField(fd.Rhs, "baz") {
		t.Errorf("expected foo -> {bar, baz}, got foo -> %v", fd.Rhs)
	}
}

func TestClosureIdempotent(t *testing.T) {
	tbl := newTestTable("t", "foo", "bar", "baz")
	tbl.AddFD([]FieldName{"foo"}, []FieldName{"bar"})
	tbl.AddFD([]FieldName{"bar"}, []FieldName{"baz"})

	if changed := tbl.Closure(); changed {
		t.Errorf("expected a second Closure call to report no change")
	}
}

func TestContainsFD(t *testing.T) {
	tbl := newTestTable("t", "a", "b", "c")
	tbl.AddFD([]FieldName{"a"}, []FieldName{"b", "c"})

	if !tbl.ContainsFD(&FD{Lhs: []FieldName{"a"}, Rhs: []FieldName{"b"}}) {
		t.Errorf("expected contains_fd(a -> b) to be true, RHS is a subset")
	}
	if tbl.ContainsFD(&FD{Lhs: []FieldName{"a"}, Rhs: []FieldName{"d"}}) {
		t.Errorf("expected contains_fd(a -> d) to be false")
	}
}

func TestAddPKFDNoOp(t *testing.T) {
	tbl := newTestTable("t", "a")
	tbl.Fields.Get("a")
	tbl.AddPKFD()
	if len(tbl.FDs) != 0 {
		t.Errorf("expected add_pk_fd to be a no-op with no key fields, got %v", tbl.FDs)
	}

	tbl.Fields.Set(&Field{Name: "a", Key: true})
	tbl.AddPKFD()
	if len(tbl.FDs) != 0 {
		t.Errorf("expected add_pk_fd to be a no-op with no non-key fields, got %v", tbl.FDs)
	}
}

func TestMinimizeFDsKeepsShorterLHS(t *testing.T) {
	tbl := newTestTable("t", "a", "b", "c")
	tbl.FDs[fieldKey([]FieldName{"a", "b"})] = &FD{Lhs: []FieldName{"a", "b"}, Rhs: []FieldName{"c"}}
	tbl.FDs[fieldKey([]FieldName{"c"})] = &FD{Lhs: []FieldName{"c"}, Rhs: []FieldName{"a", "b"}}

	tbl.MinimizeFDs()

	if _, ok := tbl.FDs[fieldKey([]FieldName{"a", "b"})]; ok {
		t.Errorf("expected the longer-LHS FD to be removed")
	}
	if _, ok := tbl.FDs[fieldKey([]FieldName{"c"})]; !ok {
		t.Errorf("expected the shorter-LHS FD to survive")
	}
}
