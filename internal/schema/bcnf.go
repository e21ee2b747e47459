package schema

import (
	"fmt"
	"math"
	"sort"
)

// fieldPositions returns (left, gap) for a set of fields within the
// table's ordered field map: left is the smallest positional index, and
// gap is the sum of positional distances minus one between consecutive
// (sorted) indices -- zero when the fields are contiguous or there is
// only one of them, per spec.md §4.4's stated rule.
func (t *Table) fieldPositions(fields []FieldName) (left, gap float64) {
	indexes := make([]int, 0, len(fields))
	for _, f := range fields {
		indexes = append(indexes, t.Fields.Position(f))
	}
	sort.Ints(indexes)

	left = float64(indexes[0])
	if len(indexes) == 1 {
		return left, 0
	}
	sum := 0
	for i := 1; i < len(indexes); i++ {
		sum += indexes[i] - indexes[i-1] - 1
	}
	return left, float64(sum)
}

func (t *Table) valueScore(fields []FieldName) float64 {
	total := 0
	for _, f := range fields {
		field, ok := t.Fields.Get(f)
		if !ok || field.MaxLength == nil {
			panic(fmt.Sprintf("no max length for %s in %s", f, t.Name))
		}
		total += *field.MaxLength
	}
	return 1.0 / math.Max(1.0, float64(total)-7.0)
}

// ViolatingFD returns a non-trivial FD whose LHS is not a superkey, or
// nil if the table is already in BCNF. In deterministic mode the first
// such FD found (by sorted key order, for reproducibility) is returned.
// In statistics mode, FDs are restricted to |lhs|+|rhs| < |fields| and
// scored by the exact formulas of spec.md §4.4; the arg-max is returned,
// or nil if fdThreshold is set and the best score does not exceed it.
func (t *Table) ViolatingFD(useStats bool, fdThreshold *float64) *FD {
	var candidates []*FD
	for _, key := range sortedFDKeys(t.FDs) {
		fd := t.FDs[key]
		if fd.IsTrivial() || t.IsSuperkey(fd.Lhs) {
			continue
		}
		candidates = append(candidates, fd)
	}
	if len(candidates) == 0 {
		return nil
	}

	if !useStats {
		return candidates[0]
	}

	var best *FD
	bestScore := math.Inf(-1)
	fieldCount := t.Fields.Len()
	for _, fd := range candidates {
		if len(fd.Lhs)+len(fd.Rhs) >= fieldCount {
			continue
		}
		lengthScore := 0.5 * (1.0/float64(len(fd.Lhs)) + 1.0/(float64(len(fd.Rhs))*float64(fieldCount-2)))
		valueScore := t.valueScore(fd.Lhs)
		_, leftGap := t.fieldPositions(fd.Lhs)
		_, rightGap := t.fieldPositions(fd.Rhs)
		positionScore := 0.5 * (1.0/(leftGap+1.0) + 1.0/(rightGap+1.0))

		score := lengthScore + valueScore + positionScore
		if score > bestScore {
			bestScore = score
			best = fd
		}
	}
	if best == nil {
		return nil
	}
	if fdThreshold != nil && bestScore <= *fdThreshold {
		return nil
	}
	return best
}

// IsBCNF reports whether the table has no BCNF-violating FD under the
// given selector configuration.
func (t *Table) IsBCNF(useStats bool, fdThreshold *float64) bool {
	return t.ViolatingFD(useStats, fdThreshold) == nil
}

// SetPrimaryKey chooses a primary key from the FDs whose LHS+RHS spans
// every field, marking exactly its LHS fields as keys. With useStats,
// the highest-scoring candidate is chosen by the length/value/left-position scoring formula of
// original_source/src/model.rs Table::set_primary_key (spec.md §4.4's
// closing paragraph leaves the exact per-term expressions to the
// original, which this follows verbatim); without it, the first
// candidate FD found is used. Panics if no candidate FD exists -- the
// spec treats "no primary key found" as an implementation bug, not a
// recoverable condition.
func (t *Table) SetPrimaryKey(useStats bool) {
	var candidates []*FD
	for _, key := range sortedFDKeys(t.FDs) {
		fd := t.FDs[key]
		if len(fd.Lhs)+len(fd.Rhs) == t.Fields.Len() {
			candidates = append(candidates, fd)
		}
	}
	if len(candidates) == 0 {
		panic(fmt.Sprintf("no primary key found for %s", t))
	}

	var pk *FD
	if !useStats {
		pk = candidates[0]
	} else {
		bestScore := math.Inf(-1)
		for _, fd := range candidates {
			lengthScore := 1.0 / float64(len(fd.Lhs))
			valueScore := t.valueScore(fd.Lhs)
			left, gap := t.fieldPositions(fd.Lhs)
			positionScore := 0.5 * (1.0/(left+1.0) + 1.0/(gap+1.0))
			score := lengthScore + valueScore + positionScore
			if score > bestScore {
				bestScore = score
				pk = fd
			}
		}
	}

	for _, f := range t.Fields.Values() {
		f.Key = containsField(pk.Lhs, f.Name)
	}
}
