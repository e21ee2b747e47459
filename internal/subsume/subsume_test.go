package subsume

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/schemanorm/schemanorm/internal/schema"
)

var sortFieldNames = cmpopts.SortSlices(func(a, b schema.FieldName) bool { return a < b })

func TestFieldRemovalDropsRedundantField(t *testing.T) {
	// S5: foo carries a field ("dup") whose value is fully determined by
	// an FD on the table it references through an IND; that field should
	// be removed, leaving foo with just its own key.
	s := schema.New()
	foo := schema.NewTable("foo")
	foo.Fields.Set(&schema.Field{Name: "k", Key: true})
	foo.Fields.Set(&schema.Field{Name: "dup"})
	s.AddTable(foo)

	ref := schema.NewTable("ref")
	ref.Fields.Set(&schema.Field{Name: "k2", Key: true})
	ref.Fields.Set(&schema.Field{Name: "val"})
	ref.AddFD([]schema.FieldName{"k2"}, []schema.FieldName{"val"})
	s.AddTable(ref)

	s.AddInd(&schema.IND{
		LeftTable: "foo", LeftFields: []schema.FieldName{"k", "dup"},
		RightTable: "ref", RightFields: []schema.FieldName{"k2", "val"},
	})

	changed := Subsume(s)
	if !changed {
		t.Fatalf("expected Subsume to report a change")
	}

	got := s.Tables["foo"].Fields.Names()
	if len(got) != 1 || got[0] != "k" {
		t.Errorf("foo.Fields = %v, want [k]", got)
	}
}

func TestEquiKeyMergeReplacesBothTables(t *testing.T) {
	// S6: foo(*bar,baz) and qux(*bar,corge) mutually include each other
	// on their shared key bar, so they merge into foo_qux(bar,baz,corge)
	// with an FD bar -> corge surviving from qux's side.
	s := schema.New()
	foo := schema.NewTable("foo")
	foo.Fields.Set(&schema.Field{Name: "bar", Key: true})
	foo.Fields.Set(&schema.Field{Name: "baz"})
	foo.AddPKFD()
	s.AddTable(foo)

	qux := schema.NewTable("qux")
	qux.Fields.Set(&schema.Field{Name: "bar", Key: true})
	qux.Fields.Set(&schema.Field{Name: "corge"})
	qux.AddPKFD()
	s.AddTable(qux)

	s.AddInd(&schema.IND{LeftTable: "foo", LeftFields: []schema.FieldName{"bar"}, RightTable: "qux", RightFields: []schema.FieldName{"bar"}})
	s.AddInd(&schema.IND{LeftTable: "qux", LeftFields: []schema.FieldName{"bar"}, RightTable: "foo", RightFields: []schema.FieldName{"bar"}})

	changed := Subsume(s)
	if !changed {
		t.Fatalf("expected Subsume to report a change")
	}

	if _, ok := s.Tables["foo"]; ok {
		t.Errorf("expected foo to no longer exist after merge")
	}
	if _, ok := s.Tables["qux"]; ok {
		t.Errorf("expected qux to no longer exist after merge")
	}

	merged, ok := s.Tables["foo_qux"]
	if !ok {
		t.Fatalf("expected a merged foo_qux table")
	}
	want := []schema.FieldName{"bar", "baz", "corge"}
	if diff := cmp.Diff(want, merged.Fields.Names(), sortFieldNames); diff != "" {
		t.Errorf("foo_qux fields mismatch (-want +got):\n%s", diff)
	}

	if !merged.ContainsFD(&schema.FD{Lhs: []schema.FieldName{"bar"}, Rhs: []schema.FieldName{"corge"}}) {
		t.Errorf("expected merged table to retain bar -> corge, FDs = %v", merged.FDs)
	}
}

func TestTableSubsumptionRemovesFullyIncludedTable(t *testing.T) {
	s := schema.New()
	small := schema.NewTable("small")
	small.Fields.Set(&schema.Field{Name: "k", Key: true})
	s.AddTable(small)

	big := schema.NewTable("big")
	big.Fields.Set(&schema.Field{Name: "k", Key: true})
	big.Fields.Set(&schema.Field{Name: "v"})
	s.AddTable(big)

	s.AddInd(&schema.IND{LeftTable: "small", LeftFields: []schema.FieldName{"k"}, RightTable: "big", RightFields: []schema.FieldName{"k"}})
	s.AddInd(&schema.IND{LeftTable: "big", LeftFields: []schema.FieldName{"k"}, RightTable: "small", RightFields: []schema.FieldName{"k"}})

	changed := Subsume(s)
	if !changed {
		t.Fatalf("expected Subsume to report a change")
	}
	if _, ok := s.Tables["small"]; ok {
		t.Errorf("expected small to be removed as wholly subsumed by big")
	}
	if _, ok := s.Tables["big"]; !ok {
		t.Errorf("expected big to survive")
	}
}
