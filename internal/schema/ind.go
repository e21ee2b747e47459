package schema

import (
	"fmt"
	"sort"
)

// IND is an inclusion dependency: every tuple of values at LeftFields
// positions in LeftTable appears at the corresponding RightFields
// positions in RightTable. The field lists are ordered, not sets --
// position i on the left corresponds to position i on the right.
type IND struct {
	LeftTable   TableName
	LeftFields  []FieldName
	RightTable  TableName
	RightFields []FieldName
}

func (ind *IND) String() string {
	if setEqualOrdered(ind.LeftFields, ind.RightFields) {
		return fmt.Sprintf("%s(%s) <= %s(...)", ind.LeftTable, joinFields(ind.LeftFields), ind.RightTable)
	}
	return fmt.Sprintf("%s(%s) <= %s(%s)", ind.LeftTable, joinFields(ind.LeftFields), ind.RightTable, joinFields(ind.RightFields))
}

func setEqualOrdered(a, b []FieldName) bool {
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

func (ind *IND) clone() *IND {
	return &IND{
		LeftTable:   ind.LeftTable,
		LeftFields:  cloneFields(ind.LeftFields),
		RightTable:  ind.RightTable,
		RightFields: cloneFields(ind.RightFields),
	}
}

func (ind *IND) equal(other *IND) bool {
	return ind.LeftTable == other.LeftTable && ind.RightTable == other.RightTable &&
		setEqualOrdered(ind.LeftFields, other.LeftFields) && setEqualOrdered(ind.RightFields, other.RightFields)
}

// IsSubsetOf reports whether ind ⊆ other: same tables, and every
// position in ind has a matching (left,right) pair somewhere in other
// (spec.md §3 "Subset relation on INDs").
func (ind *IND) IsSubsetOf(other *IND) bool {
	if ind.LeftTable != other.LeftTable || ind.RightTable != other.RightTable {
		return false
	}
	for i := range ind.LeftFields {
		found := false
		for j := range other.LeftFields {
			if ind.LeftFields[i] == other.LeftFields[j] && ind.RightFields[i] == other.RightFields[j] {
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

// Reverse swaps the two sides of ind, sorting the new left list (the
// old right list) by field name and applying that permutation to the
// new right list so the result stays in canonical left-sorted form.
func Reverse(ind *IND) *IND {
	newLeft := cloneFields(ind.RightFields)
	perm := sortPermutation(newLeft)
	sortedLeft := applyPermutation(newLeft, perm)
	sortedRight := applyPermutation(cloneFields(ind.LeftFields), perm)
	return &IND{
		LeftTable:   ind.RightTable,
		LeftFields:  sortedLeft,
		RightTable:  ind.LeftTable,
		RightFields: sortedRight,
	}
}

// sortPermutation returns the indices that would stable-sort fields,
// without modifying fields itself -- callers apply the same permutation
// to more than one list, so the input order must survive.
func sortPermutation(fields []FieldName) []int {
	perm := make([]int, len(fields))
	for i := range perm {
		perm[i] = i
	}
	sort.SliceStable(perm, func(i, j int) bool { return fields[perm[i]] < fields[perm[j]] })
	return perm
}

func applyPermutation(fields []FieldName, perm []int) []FieldName {
	out := make([]FieldName, len(fields))
	for i, p := range perm {
		out[i] = fields[p]
	}
	return out
}

// AddInd inserts ind into its (left,right) bucket unless an existing IND
// there already dominates it (ind ⊆ existing). Returns whether it was
// inserted.
func (s *Schema) AddInd(ind *IND) bool {
	key := IndKey{ind.LeftTable, ind.RightTable}
	for _, existing := range s.Inds[key] {
		if ind.IsSubsetOf(existing) {
			return false
		}
	}
	s.Inds[key] = append(s.Inds[key], ind)
	return true
}

// ContainsInd reports whether some stored IND dominates ind under ⊆.
func (s *Schema) ContainsInd(ind *IND) bool {
	key := IndKey{ind.LeftTable, ind.RightTable}
	for _, existing := range s.Inds[key] {
		if ind.IsSubsetOf(existing) {
			return true
		}
	}
	return false
}

// DeleteInd removes the first structurally-equal IND, if any.
func (s *Schema) DeleteInd(ind *IND) {
	key := IndKey{ind.LeftTable, ind.RightTable}
	bucket := s.Inds[key]
	for i, existing := range bucket {
		if existing.equal(ind) {
			s.Inds[key] = append(bucket[:i], bucket[i+1:]...)
			return
		}
	}
}

// fdClosureFields returns the closure of fields under table's FDs: the
// largest field set reachable by repeatedly applying FDs whose LHS is
// already inside the accumulated set.
func fdClosureFields(table *Table, fields []FieldName) []FieldName {
	all := cloneFields(fields)
	changed := true
	for changed {
		changed = false
		for _, key := range sortedFDKeys(table.FDs) {
			fd := table.FDs[key]
			if isSubset(fd.Lhs, all) {
				grown := unionFields(all, fd.Rhs)
				if len(grown) != len(all) {
					all = grown
					changed = true
				}
			}
		}
	}
	return all
}

// INDClosure performs fixed-point closure over the schema's INDs,
// alternating two inference rules each sweep (spec.md §4.2):
//
//	Rule A (FD-augmented composition): combine two INDs sharing a left
//	bucket when their LHS union isn't already implied by the left
//	table's FD closure of the first IND's LHS.
//	Rule B (transitivity): chain an IND's right side into another IND's
//	matching left side.
//
// Each sweep computes both rules' proposals from a snapshot, applies all
// staged deletions (descending, de-duplicated indices per bucket) then
// all staged additions (through AddInd, which itself suppresses
// subset-dominated inserts), and repeats until a sweep produces neither.
func (s *Schema) INDClosure() bool {
	anyChanged := false
	for {
		type deletion struct {
			key IndKey
			idx int
		}
		var additions []*IND
		deleteSet := make(map[IndKey]map[int]bool)
		stageDelete := func(key IndKey, idx int) {
			if deleteSet[key] == nil {
				deleteSet[key] = make(map[int]bool)
			}
			deleteSet[key][idx] = true
		}
		present := func(ind *IND) bool {
			key := IndKey{ind.LeftTable, ind.RightTable}
			for _, existing := range s.Inds[key] {
				if ind.equal(existing) {
					return true
				}
			}
			for _, staged := range additions {
				if ind.equal(staged) {
					return true
				}
			}
			return false
		}

		// Rule A: FD-augmented composition, per bucket.
		for _, key := range s.sortedIndKeys() {
			bucket := s.Inds[key]
			leftTable := s.Tables[key.Left]
			for i, i1 := range bucket {
				allFields := fdClosureFields(leftTable, i1.LeftFields)
				for j, i2 := range bucket {
					if i == j {
						continue
					}
					if i1.LeftTable == i1.RightTable {
						continue
					}

					newLeft := append(cloneFields(i1.LeftFields), diffFields(i2.LeftFields, i1.LeftFields)...)
					if isSubset(newLeft, allFields) {
						continue
					}
					newRight := append(cloneFields(i1.RightFields), diffFields(i2.RightFields, i1.RightFields)...)
					if len(newLeft) != len(newRight) {
						continue
					}

					perm := sortPermutation(newLeft)
					sortedLeft := applyPermutation(newLeft, perm)
					sortedRight := applyPermutation(newRight, perm)

					candidate := &IND{
						LeftTable:   i1.LeftTable,
						LeftFields:  sortedLeft,
						RightTable:  i1.RightTable,
						RightFields: sortedRight,
					}
					if present(candidate) {
						continue
					}
					additions = append(additions, candidate)
					stageDelete(key, i)
					stageDelete(key, j)
				}
			}
		}

		// Rule B: transitivity via shared (table, field-list) groups.
		type groupKey struct {
			table  TableName
			fields string
		}
		groups := make(map[groupKey][]*IND)
		for _, key := range s.sortedIndKeys() {
			for _, ind := range s.Inds[key] {
				gk := groupKey{ind.LeftTable, fieldKey(ind.LeftFields)}
				groups[gk] = append(groups[gk], ind)
			}
		}
		for _, key := range s.sortedIndKeys() {
			for _, i1 := range s.Inds[key] {
				gk := groupKey{i1.RightTable, fieldKey(i1.RightFields)}
				for _, i2 := range groups[gk] {
					if i1.LeftTable == i2.RightTable {
						continue
					}
					candidate := &IND{
						LeftTable:   i1.LeftTable,
						LeftFields:  cloneFields(i1.LeftFields),
						RightTable:  i2.RightTable,
						RightFields: cloneFields(i2.RightFields),
					}
					if present(candidate) {
						continue
					}
					additions = append(additions, candidate)
				}
			}
		}

		if len(additions) == 0 && len(deleteSet) == 0 {
			break
		}
		anyChanged = true

		for key, idxSet := range deleteSet {
			bucket := s.Inds[key]
			idxs := make([]int, 0, len(idxSet))
			for idx := range idxSet {
				idxs = append(idxs, idx)
			}
			for i := 0; i < len(idxs); i++ {
				for j := i + 1; j < len(idxs); j++ {
					if idxs[j] > idxs[i] {
						idxs[i], idxs[j] = idxs[j], idxs[i]
					}
				}
			}
			for _, idx := range idxs {
				bucket = append(bucket[:idx], bucket[idx+1:]...)
			}
			s.Inds[key] = bucket
		}

		for _, ind := range additions {
			s.AddInd(ind)
		}
	}
	return anyChanged
}
