package schema

import "testing"

func TestTableStringAlphabetizesAndMarksKeys(t *testing.T) {
	tbl := NewTable("foo")
	tbl.Fields.Set(&Field{Name: "bar"})
	tbl.Fields.Set(&Field{Name: "foo", Key: true})
	tbl.Fields.Set(&Field{Name: "baz"})

	got := tbl.String()
	want := "foo(*foo, bar, baz)"
	if got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestKeyFieldsAndIsSuperkey(t *testing.T) {
	tbl := newTestTable("t", "a", "b", "c")
	tbl.Fields.Set(&Field{Name: "a", Key: true})
	tbl.Fields.Set(&Field{Name: "b", Key: true})

	if !setEqual(tbl.KeyFields(), []FieldName{"a", "b"}) {
		t.Errorf("KeyFields() = %v, want [a b]", tbl.KeyFields())
	}
	if !tbl.IsSuperkey([]FieldName{"a", "b", "c"}) {
		t.Errorf("expected {a,b,c} to be a superkey")
	}
	if tbl.IsSuperkey([]FieldName{"a"}) {
		t.Errorf("expected {a} alone to not be a superkey")
	}
}

func TestTableCloneIsIndependent(t *testing.T) {
	tbl := newTestTable("t", "a", "b")
	tbl.AddFD([]FieldName{"a"}, []FieldName{"b"})

	clone := tbl.Clone()
	clone.Fields.Delete("b")
	clone.AddFD([]FieldName{"b"}, []FieldName{"a"})

	if !tbl.Fields.Contains("b") {
		t.Errorf("expected original table's fields to be unaffected by clone mutation")
	}
	if tbl.ContainsFD(&FD{Lhs: []FieldName{"b"}, Rhs: []FieldName{"a"}}) {
		t.Errorf("expected original table's FDs to be unaffected by clone mutation")
	}
}
