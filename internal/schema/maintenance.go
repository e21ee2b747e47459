package schema

// CopyInds synthesizes, for every IND mentioning src on either side, a
// copy with that side replaced by dst -- provided the side's field list
// shares at least one field with dst -- leaving field lists unchanged.
// Staged copies are added, then PruneInds reconciles any field that
// turned out not to exist on dst (spec.md §4.3).
func (s *Schema) CopyInds(src, dst TableName) {
	dstTable, ok := s.Tables[dst]
	if !ok {
		return
	}

	var staged []*IND
	for _, key := range s.sortedIndKeys() {
		if key.Left != src && key.Right != src {
			continue
		}
		for _, ind := range s.Inds[key] {
			if key.Left == src && sharesField(ind.LeftFields, dstTable.Fields) {
				candidate := ind.clone()
				candidate.LeftTable = dst
				staged = append(staged, candidate)
			}
			if key.Right == src && sharesField(ind.RightFields, dstTable.Fields) {
				candidate := ind.clone()
				candidate.RightTable = dst
				staged = append(staged, candidate)
			}
		}
	}
	for _, ind := range staged {
		s.AddInd(ind)
	}
	s.PruneInds()
}

func sharesField(fields []FieldName, present *OrderedFields) bool {
	for _, f := range fields {
		if present.Contains(f) {
			return true
		}
	}
	return false
}

// PruneInds drops buckets whose table no longer exists; for the rest,
// retains only the positions where the field still exists on both
// sides (dropped from both lists in lockstep, preserving alignment),
// and drops any IND left with an empty field list (spec.md §4.3).
func (s *Schema) PruneInds() {
	for _, key := range s.sortedIndKeys() {
		leftTable, leftOK := s.Tables[key.Left]
		rightTable, rightOK := s.Tables[key.Right]
		if !leftOK || !rightOK {
			delete(s.Inds, key)
			continue
		}
		var kept []*IND
		for _, ind := range s.Inds[key] {
			var newLeft, newRight []FieldName
			for i := range ind.LeftFields {
				if leftTable.Fields.Contains(ind.LeftFields[i]) && rightTable.Fields.Contains(ind.RightFields[i]) {
					newLeft = append(newLeft, ind.LeftFields[i])
					newRight = append(newRight, ind.RightFields[i])
				}
			}
			if len(newLeft) == 0 {
				continue
			}
			kept = append(kept, &IND{LeftTable: ind.LeftTable, LeftFields: newLeft, RightTable: ind.RightTable, RightFields: newRight})
		}
		if len(kept) == 0 {
			delete(s.Inds, key)
		} else {
			s.Inds[key] = kept
		}
	}
}

// RetainFKInds keeps only INDs where the right table has an FD keyed
// exactly by ind.LeftFields whose RHS is a superset of ind.RightFields
// -- i.e. the IND denotes a genuine foreign-key reference to a
// key-derived RHS on the referenced table (spec.md §4.3).
func (s *Schema) RetainFKInds() {
	for _, key := range s.sortedIndKeys() {
		rightTable, ok := s.Tables[key.Right]
		if !ok {
			continue
		}
		var kept []*IND
		for _, ind := range s.Inds[key] {
			fd, ok := rightTable.FDs[fieldKey(ind.LeftFields)]
			if ok && isSubset(ind.RightFields, fd.Rhs) {
				kept = append(kept, ind)
			}
		}
		if len(kept) == 0 {
			delete(s.Inds, key)
		} else {
			s.Inds[key] = kept
		}
	}
}

// CopyFDs walks every IND in the schema and, where the right table has
// an FD whose LHS is a subset of the left table's primary-key field
// names and whose RHS intersects the left table's fields, adds that FD
// (restricted to fields the left table has) onto the left table
// (spec.md §4.3).
func (s *Schema) CopyFDs() {
	type newFD struct {
		table    TableName
		lhs, rhs []FieldName
	}
	var staged []newFD

	for _, key := range s.sortedIndKeys() {
		for _, ind := range s.Inds[key] {
			leftTable, ok := s.Tables[ind.LeftTable]
			if !ok {
				continue
			}
			rightTable, ok := s.Tables[ind.RightTable]
			if !ok {
				continue
			}
			leftKey := leftTable.KeyFields()
			for _, fdKey := range sortedFDKeys(rightTable.FDs) {
				fd := rightTable.FDs[fdKey]
				if !isSubset(fd.Lhs, leftKey) {
					continue
				}
				rhs := filterPresentFields(fd.Rhs, leftTable.Fields)
				if len(rhs) == 0 {
					continue
				}
				staged = append(staged, newFD{table: ind.LeftTable, lhs: cloneFields(fd.Lhs), rhs: rhs})
			}
		}
	}

	for _, nf := range staged {
		s.Tables[nf.table].AddFD(nf.lhs, nf.rhs)
	}
}
