// Package subsume implements the three subsumption stages that use
// inclusion dependencies to remove redundant fields, eliminate wholly
// subsumed tables, and merge tables that mutually include each other
// on their keys.
package subsume

import (
	"fmt"
	"sort"

	"github.com/schemanorm/schemanorm/internal/schema"
)

func sortedIndKeysOf(s *schema.Schema) []schema.IndKey {
	return s.SortedIndKeys()
}

func sortedFDKeysOf(t *schema.Table) []string {
	keys := make([]string, 0, len(t.FDs))
	for k := range t.FDs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Subsume runs the three stages to completion and reports whether
// anything changed.
func Subsume(s *schema.Schema) bool {
	anyChanged := false
	anyChanged = fieldRemoval(s) || anyChanged
	anyChanged = tableSubsumption(s) || anyChanged
	anyChanged = equiKeyMerge(s) || anyChanged
	return anyChanged
}

// fieldRemoval is Stage 1: repeatedly find one IND whose right side
// covers the right table's key, translate the FD-implied fields of the
// right table back through the IND's positional correspondence, and
// drop those fields from the left table -- one removal per iteration,
// per spec.md §9's resolution of the single-removal-vs-process-all
// open question.
func fieldRemoval(s *schema.Schema) bool {
	anyChanged := false
	for {
		tableName, removeFields := findRemovableFields(s)
		if tableName == "" {
			break
		}
		anyChanged = true

		t := s.Tables[tableName]
		for _, f := range removeFields {
			t.Fields.Delete(f)
		}
		t.PruneFDs()
		if t.Fields.Len() == 0 {
			delete(s.Tables, tableName)
		}

		s.PruneInds()
	}
	return anyChanged
}

func findRemovableFields(s *schema.Schema) (schema.TableName, []schema.FieldName) {
	for _, key := range sortedIndKeysOf(s) {
		for _, ind := range s.Inds[key] {
			if ind.LeftTable == ind.RightTable {
				continue
			}
			rightTable, ok := s.Tables[ind.RightTable]
			if !ok {
				continue
			}
			if !containsAll(ind.RightFields, rightTable.KeyFields()) {
				continue
			}

			fdFields := make(map[schema.FieldName]bool)
			for _, fdKey := range sortedFDKeysOf(rightTable) {
				fd := rightTable.FDs[fdKey]
				if !containsAll(ind.RightFields, fd.Lhs) {
					continue
				}
				for _, rf := range fd.Rhs {
					pos := positionOf(ind.RightFields, rf)
					if pos >= 0 {
						fdFields[ind.LeftFields[pos]] = true
					}
				}
			}

			leftTable, ok := s.Tables[ind.LeftTable]
			if !ok {
				continue
			}
			var removeFields []schema.FieldName
			for _, f := range ind.LeftFields {
				if fdFields[f] && leftTable.Fields.Contains(f) {
					removeFields = append(removeFields, f)
				}
			}
			if len(removeFields) == 0 {
				continue
			}
			return ind.LeftTable, removeFields
		}
	}
	return "", nil
}

// tableSubsumption is Stage 2: remove every left table whose IND's
// left-field list covers all of its own fields and whose reverse IND
// is present.
func tableSubsumption(s *schema.Schema) bool {
	removeSet := make(map[schema.TableName]bool)
	for _, key := range sortedIndKeysOf(s) {
		for _, ind := range s.Inds[key] {
			if ind.LeftTable == ind.RightTable && !removeSet[ind.RightTable] {
				continue
			}
			leftTable, ok := s.Tables[ind.LeftTable]
			if !ok {
				continue
			}
			if !containsAll(ind.LeftFields, leftTable.Fields.Names()) {
				continue
			}
			if s.ContainsInd(schema.Reverse(ind)) {
				removeSet[ind.LeftTable] = true
			}
		}
	}
	if len(removeSet) == 0 {
		return false
	}
	for name := range removeSet {
		delete(s.Tables, name)
	}
	s.PruneInds()
	return true
}

// equiKeyMerge is Stage 3: for every IND whose left and right key
// positions coincide and whose reverse is present, merge the two
// tables into "<left>_<right>", renaming right-side non-key fields on
// collision.
func equiKeyMerge(s *schema.Schema) bool {
	removeSet := make(map[schema.TableName]bool)
	type pendingMerge struct {
		table      *schema.Table
		old1, old2 schema.TableName
	}
	var merges []pendingMerge

	for _, key := range sortedIndKeysOf(s) {
		for _, ind := range s.Inds[key] {
			if removeSet[ind.LeftTable] || removeSet[ind.RightTable] || ind.LeftTable >= ind.RightTable {
				continue
			}

			leftTable, ok := s.Tables[ind.LeftTable]
			if !ok {
				continue
			}
			rightTable, ok := s.Tables[ind.RightTable]
			if !ok {
				continue
			}

			var leftKeyPositions, rightKeyPositions []int
			var leftKeyFields, rightKeyFields []schema.FieldName
			for i, f := range ind.LeftFields {
				if field, ok := leftTable.Fields.Get(f); ok && field.Key {
					leftKeyPositions = append(leftKeyPositions, i)
					leftKeyFields = append(leftKeyFields, f)
				}
			}
			for i, f := range ind.RightFields {
				if field, ok := rightTable.Fields.Get(f); ok && field.Key {
					rightKeyPositions = append(rightKeyPositions, i)
					rightKeyFields = append(rightKeyFields, f)
				}
			}

			keysMatch := intsEqual(leftKeyPositions, rightKeyPositions)
			keysMatch = keysMatch && len(leftTable.KeyFields()) == len(leftKeyPositions)
			keysMatch = keysMatch && len(rightTable.KeyFields()) == len(rightKeyPositions)
			if !keysMatch {
				continue
			}
			if !s.ContainsInd(schema.Reverse(ind)) {
				continue
			}

			newTable := mergeTables(leftTable, rightTable, leftKeyFields, rightKeyFields)
			merges = append(merges, pendingMerge{table: newTable, old1: ind.LeftTable, old2: ind.RightTable})
			removeSet[ind.LeftTable] = true
			removeSet[ind.RightTable] = true
		}
	}

	if len(merges) == 0 {
		return false
	}

	for _, m := range merges {
		s.Tables[m.table.Name] = m.table
		s.CopyInds(m.old1, m.table.Name)
		s.CopyInds(m.old2, m.table.Name)
	}
	for name := range removeSet {
		delete(s.Tables, name)
	}
	s.PruneInds()
	return true
}

// mergeTables builds "<left>_<right>" by copying the left table's
// fields and FDs verbatim, then appending the right table's fields
// under a rename map (key fields aliased positionally onto the left's
// key, everything else suffixed on collision), and copying the right
// table's FDs through that map.
func mergeTables(left, right *schema.Table, leftKeyFields, rightKeyFields []schema.FieldName) *schema.Table {
	name := schema.TableName(fmt.Sprintf("%s_%s", left.Name, right.Name))
	merged := schema.NewTable(name)

	for _, f := range left.Fields.Values() {
		merged.Fields.Set(f.Clone())
	}
	for _, fdKey := range sortedFDKeysOf(left) {
		fd := left.FDs[fdKey]
		merged.AddFD(append([]schema.FieldName(nil), fd.Lhs...), append([]schema.FieldName(nil), fd.Rhs...))
	}

	rename := make(map[schema.FieldName]schema.FieldName)
	for i, rf := range rightKeyFields {
		rename[rf] = leftKeyFields[i]
	}

	for _, f := range right.Fields.Values() {
		if _, renamed := rename[f.Name]; renamed {
			continue
		}
		newName := f.Name
		suffix := 2
		for merged.Fields.Contains(newName) {
			newName = schema.FieldName(fmt.Sprintf("%s%d", f.Name, suffix))
			suffix++
		}
		rename[f.Name] = newName
		clone := f.Clone()
		clone.Name = newName
		merged.Fields.Set(clone)
	}

	for _, fdKey := range sortedFDKeysOf(right) {
		fd := right.FDs[fdKey]
		newLhs := make([]schema.FieldName, len(fd.Lhs))
		for i, f := range fd.Lhs {
			newLhs[i] = rename[f]
		}
		newRhs := make([]schema.FieldName, len(fd.Rhs))
		for i, f := range fd.Rhs {
			newRhs[i] = rename[f]
		}
		merged.AddFD(newLhs, newRhs)
	}

	merged.AddPKFD()
	return merged
}

func containsAll(haystack, needles []schema.FieldName) bool {
	for _, n := range needles {
		found := false
		for _, h := range haystack {
			if h == n {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func positionOf(fields []schema.FieldName, name schema.FieldName) int {
	for i, f := range fields {
		if f == name {
			return i
		}
	}
	return -1
}

func intsEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
