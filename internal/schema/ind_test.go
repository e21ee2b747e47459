package schema

import "testing"

func bucketContains(s *Schema, left, right TableName, pred func(*IND) bool) bool {
	for _, ind := range s.Inds[IndKey{Left: left, Right: right}] {
		if pred(ind) {
			return true
		}
	}
	return false
}

func TestINDClosureTransitive(t *testing.T) {
	// S2: foo(foo) <= bar(bar), bar(bar) <= qux(qux) should close to
	// foo(foo) <= qux(qux) via Rule B transitivity.
	s := New()
	s.AddTable(newTestTable("foo", "foo"))
	s.AddTable(newTestTable("bar", "bar"))
	s.AddTable(newTestTable("qux", "qux"))

	s.AddInd(&IND{LeftTable: "foo", LeftFields: []FieldName{"foo"}, RightTable: "bar", RightFields: []FieldName{"bar"}})
	s.AddInd(&IND{LeftTable: "bar", LeftFields: []FieldName{"bar"}, RightTable: "qux", RightFields: []FieldName{"qux"}})

	s.INDClosure()

	if !bucketContains(s, "foo", "qux", func(ind *IND) bool {
		return setEqualOrdered(ind.LeftFields, []FieldName{"foo"}) && setEqualOrdered(ind.RightFields, []FieldName{"qux"})
	}) {
		t.Errorf("expected closure to derive foo(foo) <= qux(qux)")
	}
}

func TestINDClosureWrongDirectionStaysUnclosed(t *testing.T) {
	// S3: two INDs both pointing INTO bar (not chained through it) should
	// not produce any foo <= qux entry.
	s := New()
	s.AddTable(newTestTable("foo", "foo"))
	s.AddTable(newTestTable("bar", "bar"))
	s.AddTable(newTestTable("qux", "qux"))

	s.AddInd(&IND{LeftTable: "foo", LeftFields: []FieldName{"foo"}, RightTable: "bar", RightFields: []FieldName{"bar"}})
	s.AddInd(&IND{LeftTable: "qux", LeftFields: []FieldName{"qux"}, RightTable: "bar", RightFields: []FieldName{"bar"}})

	s.INDClosure()

	if bucket, ok := s.Inds[IndKey{Left: "foo", Right: "qux"}]; ok && len(bucket) > 0 {
		t.Errorf("expected no foo -> qux bucket entries, got %v", bucket)
	}
}

func TestReverseIsInvolutive(t *testing.T) {
	ind := &IND{LeftTable: "foo", LeftFields: []FieldName{"b", "a"}, RightTable: "bar", RightFields: []FieldName{"y", "x"}}
	back := Reverse(Reverse(ind))

	if back.LeftTable != ind.LeftTable || back.RightTable != ind.RightTable {
		t.Fatalf("reverse(reverse(ind)) changed tables: %+v", back)
	}
	// Reverse re-sorts the left side, so compare as sets of (field,counterpart) pairs.
	for i, f := range ind.LeftFields {
		pos := -1
		for j, g := range back.LeftFields {
			if g == f {
				pos = j
			}
		}
		if pos == -1 || back.RightFields[pos] != ind.RightFields[i] {
			t.Errorf("field pairing not preserved for %s", f)
		}
	}
}

func TestINDClosureIdempotent(t *testing.T) {
	s := New()
	s.AddTable(newTestTable("foo", "foo"))
	s.AddTable(newTestTable("bar", "bar"))
	s.AddTable(newTestTable("qux", "qux"))
	s.AddInd(&IND{LeftTable: "foo", LeftFields: []FieldName{"foo"}, RightTable: "bar", RightFields: []FieldName{"bar"}})
	s.AddInd(&IND{LeftTable: "bar", LeftFields: []FieldName{"bar"}, RightTable: "qux", RightFields: []FieldName{"qux"}})

	s.INDClosure()
	if changed := s.INDClosure(); changed {
		t.Errorf("expected a second INDClosure call to report no change")
	}
}

func TestAddIndSuppressesSubsetDominated(t *testing.T) {
	s := New()
	full := &IND{LeftTable: "foo", LeftFields: []FieldName{"a", "b"}, RightTable: "bar", RightFields: []FieldName{"x", "y"}}
	s.AddInd(full)

	partial := &IND{LeftTable: "foo", LeftFields: []FieldName{"a"}, RightTable: "bar", RightFields: []FieldName{"x"}}
	if s.AddInd(partial) {
		t.Errorf("expected a subset-dominated IND to be rejected")
	}
	if len(s.Inds[IndKey{Left: "foo", Right: "bar"}]) != 1 {
		t.Errorf("expected the bucket to still hold exactly the dominating IND")
	}
}
