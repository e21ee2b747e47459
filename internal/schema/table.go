package schema

import (
	"fmt"
	"sort"
	"strings"
)

// Table is a relation: its fields (in declaration order) and the
// functional dependencies that hold within it, keyed by sorted LHS.
type Table struct {
	Name     TableName
	Fields   *OrderedFields
	FDs      map[string]*FD
	RowCount *int
}

// NewTable returns an empty table named name.
func NewTable(name TableName) *Table {
	return &Table{
		Name:   name,
		Fields: NewOrderedFields(),
		FDs:    make(map[string]*FD),
	}
}

// String renders the table as "name(*k1, k2, v1, v2)" with key fields
// prefixed by "*", per the emitted surface in spec.md §6. The rendered
// entries are sorted as strings, prefix included, so key fields come
// first (alphabetized among themselves), followed by the alphabetized
// non-key fields.
func (t *Table) String() string {
	names := make([]string, 0, t.Fields.Len())
	for _, f := range t.Fields.Values() {
		if f.Key {
			names = append(names, "*"+string(f.Name))
		} else {
			names = append(names, string(f.Name))
		}
	}
	sort.Strings(names)
	return fmt.Sprintf("%s(%s)", t.Name, strings.Join(names, ", "))
}

// KeyFields returns the set of fields marked as part of the declared
// primary key.
func (t *Table) KeyFields() []FieldName {
	var keys []FieldName
	for _, f := range t.Fields.Values() {
		if f.Key {
			keys = append(keys, f.Name)
		}
	}
	return keys
}

// IsSuperkey reports whether fields is a superkey: it contains every
// declared key field.
func (t *Table) IsSuperkey(fields []FieldName) bool {
	return isSubset(t.KeyFields(), fields)
}

// Clone returns an independent deep copy of t.
func (t *Table) Clone() *Table {
	clone := &Table{
		Name:   t.Name,
		Fields: t.Fields.Clone(),
		FDs:    make(map[string]*FD, len(t.FDs)),
	}
	if t.RowCount != nil {
		rc := *t.RowCount
		clone.RowCount = &rc
	}
	for k, fd := range t.FDs {
		clone.FDs[k] = fd.clone()
	}
	return clone
}
