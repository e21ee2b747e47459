package schema

// Small set helpers over []FieldName. Field-name sets in this package are
// rarely large (a handful of columns), so simple O(n*m) slice operations
// read more clearly than introducing a generic set type and are plenty
// fast for schema metadata.

func containsField(set []FieldName, f FieldName) bool {
	for _, s := range set {
		if s == f {
			return true
		}
	}
	return false
}

// isSubset reports whether every element of a is in b.
func isSubset(a, b []FieldName) bool {
	for _, f := range a {
		if !containsField(b, f) {
			return false
		}
	}
	return true
}

func setEqual(a, b []FieldName) bool {
	return isSubset(a, b) && isSubset(b, a)
}

// unionFields returns the sorted, de-duplicated union of a and b.
func unionFields(a, b []FieldName) []FieldName {
	out := make([]FieldName, 0, len(a)+len(b))
	out = append(out, a...)
	out = append(out, b...)
	return sortFieldNames(out)
}

// diffFields returns the elements of a not present in b, preserving a's order.
func diffFields(a, b []FieldName) []FieldName {
	out := make([]FieldName, 0, len(a))
	for _, f := range a {
		if !containsField(b, f) {
			out = append(out, f)
		}
	}
	return out
}

func cloneFields(a []FieldName) []FieldName {
	out := make([]FieldName, len(a))
	copy(out, a)
	return out
}
