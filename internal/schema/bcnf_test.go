package schema

import "testing"

func TestViolatingFDDeterministic(t *testing.T) {
	// foo(*foo,bar,baz) with foo->{bar,baz} is BCNF; adding bar->baz,
	// where bar isn't a superkey, violates it.
	tbl := newTestTable("foo", "foo", "bar", "baz")
	tbl.Fields.Set(&Field{Name: "foo", Key: true})
	tbl.AddFD([]FieldName{"foo"}, []FieldName{"bar", "baz"})

	if !tbl.IsBCNF(false, nil) {
		t.Fatalf("expected table to be BCNF before adding the violating FD")
	}

	tbl.AddFD([]FieldName{"bar"}, []FieldName{"baz"})

	if tbl.IsBCNF(false, nil) {
		t.Errorf("expected bar -> baz to violate BCNF (bar is not a superkey)")
	}
	vfd := tbl.ViolatingFD(false, nil)
	if vfd == nil || fieldKey(vfd.Lhs) != fieldKey([]FieldName{"bar"}) {
		t.Errorf("expected the violating FD to be keyed by bar, got %v", vfd)
	}
}

func TestIsBCNFTrivialFDIgnored(t *testing.T) {
	tbl := newTestTable("foo", "foo", "bar")
	tbl.Fields.Set(&Field{Name: "foo", Key: true})
	tbl.FDs[fieldKey([]FieldName{"foo", "bar"})] = &FD{Lhs: []FieldName{"foo", "bar"}, Rhs: []FieldName{"bar"}}

	if !tbl.IsBCNF(false, nil) {
		t.Errorf("expected a trivial FD (rhs subset of lhs) to never violate BCNF")
	}
}

func TestSetPrimaryKeyDeterministic(t *testing.T) {
	tbl := newTestTable("t", "a", "b", "c")
	tbl.FDs[fieldKey([]FieldName{"a"})] = &FD{Lhs: []FieldName{"a"}, Rhs: []FieldName{"b", "c"}}

	tbl.SetPrimaryKey(false)

	for _, f := range tbl.Fields.Values() {
		want := f.Name == "a"
		if f.Key != want {
			t.Errorf("field %s: key=%v, want %v", f.Name, f.Key, want)
		}
	}
}

func TestSetPrimaryKeyPanicsWithoutCandidate(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("expected SetPrimaryKey to panic when no FD spans all fields")
		}
	}()
	tbl := newTestTable("t", "a", "b", "c")
	tbl.SetPrimaryKey(false)
}
