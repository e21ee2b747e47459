// Package decompose implements BCNF decomposition: splitting a table
// that violates BCNF into a pair of smaller tables connected by an IND
// pair over their shared key, and the outer driver loop that repeats
// this until every table is in BCNF.
package decompose

import (
	"fmt"
	"sort"

	"github.com/schemanorm/schemanorm/internal/schema"
)

// uniqueName appends a numeric suffix (2, 3, …) to candidate until it no
// longer collides with an existing table name -- the suffix policy the
// spec leaves to implementers, mirrored from subsumer Stage-3 merge
// collision handling.
func uniqueName(existing map[schema.TableName]*schema.Table, candidate schema.TableName) schema.TableName {
	if _, ok := existing[candidate]; !ok {
		return candidate
	}
	for n := 2; ; n++ {
		attempt := schema.TableName(fmt.Sprintf("%s%d", candidate, n))
		if _, ok := existing[attempt]; !ok {
			return attempt
		}
	}
}

// split builds the two halves of t's decomposition on vfd: every field
// not in rhs (base), and lhs ∪ rhs (ext). Field key-ness is reassigned per spec.md §4.5.
func split(t *schema.Table, vfd *schema.FD, baseName, extName schema.TableName) (*schema.Table, *schema.Table) {
	base := schema.NewTable(baseName)
	ext := schema.NewTable(extName)

	inRhs := func(name schema.FieldName) bool {
		for _, f := range vfd.Rhs {
			if f == name {
				return true
			}
		}
		return false
	}
	inLhs := func(name schema.FieldName) bool {
		for _, f := range vfd.Lhs {
			if f == name {
				return true
			}
		}
		return false
	}

	for _, f := range t.Fields.Values() {
		if !inRhs(f.Name) {
			base.Fields.Set(f.Clone())
		}
	}

	for _, f := range t.Fields.Values() {
		if !inLhs(f.Name) && !inRhs(f.Name) {
			continue
		}
		clone := f.Clone()
		if !clone.Key && inLhs(clone.Name) {
			clone.Key = true
		} else if clone.Key && !inLhs(clone.Name) {
			clone.Key = false
		}
		ext.Fields.Set(clone)
	}

	base.AddPKFD()
	base.CopyFDs(t)
	ext.AddPKFD()
	ext.CopyFDs(t)

	return base, ext
}

// decomposeOne splits the table named name (which must have a
// BCNF-violating FD) into "<name>_base"/"<name>_ext" (suffixed on
// collision), wires the paired key INDs between them, propagates the
// original table's INDs via CopyInds, removes the original table, and
// prunes INDs.
func decomposeOne(s *schema.Schema, name schema.TableName, useStats bool, fdThreshold *float64) {
	t := s.Tables[name]
	vfd := t.ViolatingFD(useStats, fdThreshold)
	if vfd == nil {
		panic(fmt.Sprintf("decomposeOne called on BCNF table %s", name))
	}

	baseName := uniqueName(s.Tables, schema.TableName(string(name)+"_base"))
	extName := uniqueName(s.Tables, schema.TableName(string(name)+"_ext"))
	if baseName == extName {
		panic(fmt.Sprintf("decomposition of %s produced identical table names", name))
	}

	base, ext := split(t, vfd, baseName, extName)

	if useStats {
		base.SetPrimaryKey(true)
		ext.SetPrimaryKey(true)
	}

	var indFields []schema.FieldName
	seen := make(map[schema.FieldName]bool)
	for _, f := range base.KeyFields() {
		if !seen[f] {
			indFields = append(indFields, f)
			seen[f] = true
		}
	}
	for _, f := range ext.KeyFields() {
		if !seen[f] {
			indFields = append(indFields, f)
			seen[f] = true
		}
	}
	sort.Slice(indFields, func(i, j int) bool { return indFields[i] < indFields[j] })

	if base.Name == ext.Name {
		panic("decomposition must produce two non-identical tables")
	}
	forward := &schema.IND{
		LeftTable:   base.Name,
		LeftFields:  append([]schema.FieldName(nil), indFields...),
		RightTable:  ext.Name,
		RightFields: append([]schema.FieldName(nil), indFields...),
	}
	if forward.LeftTable == forward.RightTable {
		panic("decomposition must not create a self-IND")
	}

	s.Tables[base.Name] = base
	s.Tables[ext.Name] = ext

	s.AddInd(schema.Reverse(forward))
	s.AddInd(forward)

	s.CopyInds(name, base.Name)
	s.CopyInds(name, ext.Name)

	delete(s.Tables, name)

	s.PruneInds()
}

// Normalize repeatedly decomposes every non-BCNF table (over a
// snapshot of table names taken before each pass) until a full pass
// performs no decomposition. Returns whether anything changed.
func Normalize(s *schema.Schema, useStats bool, fdThreshold *float64) bool {
	anyChanged := false
	changed := true
	for changed {
		changed = false

		for _, name := range s.SortedTableNames() {
			t, ok := s.Tables[name]
			if !ok {
				continue
			}
			if t.IsBCNF(useStats, fdThreshold) {
				continue
			}
			decomposeOne(s, name, useStats, fdThreshold)
			changed = true
			anyChanged = true
		}
	}
	return anyChanged
}
