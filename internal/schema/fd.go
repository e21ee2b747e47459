package schema

import (
	"fmt"
	"sort"
	"strings"
)

// FD is a functional dependency LHS -> RHS, both held as sorted,
// de-duplicated field sets.
type FD struct {
	Lhs []FieldName
	Rhs []FieldName
}

// IsTrivial reports whether rhs is a subset of lhs.
func (fd *FD) IsTrivial() bool {
	return isSubset(fd.Rhs, fd.Lhs)
}

// Reverse swaps the two sides.
func (fd *FD) Reverse() *FD {
	return &FD{Lhs: cloneFields(fd.Rhs), Rhs: cloneFields(fd.Lhs)}
}

func (fd *FD) clone() *FD {
	return &FD{Lhs: cloneFields(fd.Lhs), Rhs: cloneFields(fd.Rhs)}
}

func (fd *FD) String() string {
	return fmt.Sprintf("%s -> %s", joinFields(fd.Lhs), joinFields(fd.Rhs))
}

func joinFields(fields []FieldName) string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}

// AddFD inserts lhs -> rhs into the table, merging with any existing FD
// that shares the same sorted LHS, then re-runs Closure (spec.md §4.1).
func (t *Table) AddFD(lhs, rhs []FieldName) {
	sortedLhs := sortFieldNames(lhs)
	key := fieldKey(sortedLhs)
	newRhs := sortFieldNames(rhs)
	if existing, ok := t.FDs[key]; ok {
		newRhs = unionFields(newRhs, existing.Rhs)
	}
	t.FDs[key] = &FD{Lhs: sortedLhs, Rhs: newRhs}
	t.Closure()
}

// ContainsFD reports whether an entry keyed by fd's sorted LHS exists
// whose RHS is a superset of fd.Rhs.
func (t *Table) ContainsFD(fd *FD) bool {
	entry, ok := t.FDs[fieldKey(fd.Lhs)]
	return ok && isSubset(fd.Rhs, entry.Rhs)
}

// AddPKFD adds the FD key_fields -> non_key_fields, provided both sides
// are non-empty.
func (t *Table) AddPKFD() {
	var keys, rest []FieldName
	for _, f := range t.Fields.Values() {
		if f.Key {
			keys = append(keys, f.Name)
		} else {
			rest = append(rest, f.Name)
		}
	}
	if len(keys) == 0 || len(rest) == 0 {
		return
	}
	t.AddFD(keys, rest)
}

// Closure performs Armstrong-axiom transitive/augmentation closure over
// the table's stored FDs (see spec.md §4.1). Each outer sweep computes
// every candidate extension from a fixed snapshot of the current FDs,
// accumulates proposals per LHS key, and only commits (and reports
// "changed") those whose RHS strictly grows beyond what is already
// stored. Returns whether anything changed across all sweeps.
func (t *Table) Closure() bool {
	anyChanged := false
	for {
		keys := sortedFDKeys(t.FDs)
		snapshot := make(map[string]*FD, len(t.FDs))
		for _, k := range keys {
			snapshot[k] = t.FDs[k]
		}

		type pending struct {
			lhs []FieldName
			rhs []FieldName
		}
		proposals := make(map[string]*pending)
		var proposalOrder []string

		for _, k1 := range keys {
			f1 := snapshot[k1]
			for _, k2 := range keys {
				if k1 == k2 {
					continue
				}
				f2 := snapshot[k2]
				if !isSubset(f2.Lhs, f1.Rhs) {
					continue
				}

				var newRhs []FieldName
				if existing, ok := snapshot[k1]; ok {
					newRhs = unionFields(existing.Rhs, f2.Rhs)
					newRhs = diffFields(newRhs, f1.Lhs)
				} else {
					newRhs = diffFields(f2.Rhs, f1.Lhs)
				}

				p, ok := proposals[k1]
				if !ok {
					p = &pending{lhs: cloneFields(f1.Lhs)}
					proposals[k1] = p
					proposalOrder = append(proposalOrder, k1)
				}
				p.rhs = unionFields(p.rhs, newRhs)
			}
		}

		changed := false
		for _, key := range proposalOrder {
			p := proposals[key]
			if existing, ok := t.FDs[key]; ok && isSubset(p.rhs, existing.Rhs) {
				continue
			}
			t.FDs[key] = &FD{Lhs: sortFieldNames(p.lhs), Rhs: p.rhs}
			changed = true
		}

		if !changed {
			break
		}
		anyChanged = true
	}
	return anyChanged
}

// MinimizeFDs removes any FD A->B where the exact reverse B->A is also
// present and |A| > |B|, keeping the shorter LHS.
func (t *Table) MinimizeFDs() {
	var remove []string
	for key, fd := range t.FDs {
		reverseKey := fieldKey(fd.Rhs)
		reverse, ok := t.FDs[reverseKey]
		if !ok {
			continue
		}
		if setEqual(reverse.Rhs, fd.Lhs) && setEqual(reverse.Lhs, fd.Rhs) && len(fd.Lhs) > len(reverse.Lhs) {
			remove = append(remove, key)
		}
	}
	for _, key := range remove {
		delete(t.FDs, key)
	}
}

// PruneFDs restricts each FD's LHS and RHS to the fields the table still
// has, drops an FD once either side is empty, and re-keys the survivors
// (merging RHSs that land on the same key) so the stored key always
// equals sorted(lhs) (spec.md §8 invariant 1).
func (t *Table) PruneFDs() {
	rebuilt := make(map[string]*FD, len(t.FDs))
	for _, key := range sortedFDKeys(t.FDs) {
		fd := t.FDs[key]
		newLhs := filterPresentFields(fd.Lhs, t.Fields)
		newRhs := filterPresentFields(fd.Rhs, t.Fields)
		if len(newLhs) == 0 || len(newRhs) == 0 {
			continue
		}
		newKey := fieldKey(newLhs)
		if existing, ok := rebuilt[newKey]; ok {
			newRhs = unionFields(existing.Rhs, newRhs)
		}
		rebuilt[newKey] = &FD{Lhs: sortFieldNames(newLhs), Rhs: sortFieldNames(newRhs)}
	}
	t.FDs = rebuilt
}

// CopyFDs copies FDs from other into t, restricted to fields t has; an
// FD is skipped entirely (not partially copied) if either side becomes
// empty after restriction.
func (t *Table) CopyFDs(other *Table) {
	for _, key := range sortedFDKeys(other.FDs) {
		fd := other.FDs[key]
		newLhs := filterPresentFields(fd.Lhs, t.Fields)
		newRhs := filterPresentFields(fd.Rhs, t.Fields)
		if len(newLhs) == 0 || len(newRhs) == 0 {
			continue
		}
		t.AddFD(newLhs, newRhs)
	}
}

func filterPresentFields(fields []FieldName, present *OrderedFields) []FieldName {
	var out []FieldName
	for _, f := range fields {
		if present.Contains(f) {
			out = append(out, f)
		}
	}
	return out
}

func sortedFDKeys(fds map[string]*FD) []string {
	keys := make([]string, 0, len(fds))
	for k := range fds {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
