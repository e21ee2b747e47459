package schema

import (
	"fmt"
	"sort"
	"strings"
)

// IndKey is the bucket key for Schema.Inds: an ordered (left, right)
// table-name pair.
type IndKey struct {
	Left  TableName
	Right TableName
}

// Schema is the top-level owned aggregate: a set of tables and the
// inclusion dependencies between them, bucketed by (left table, right
// table). A missing bucket is equivalent to an empty IND list.
type Schema struct {
	Tables map[TableName]*Table
	Inds   map[IndKey][]*IND
}

// New returns an empty schema.
func New() *Schema {
	return &Schema{
		Tables: make(map[TableName]*Table),
		Inds:   make(map[IndKey][]*IND),
	}
}

// AddTable registers t, keyed by its name.
func (s *Schema) AddTable(t *Table) {
	s.Tables[t.Name] = t
}

// sortedTableNames returns the schema's table names in deterministic
// (lexicographic) order -- used anywhere iteration order must be stable,
// per spec.md §5.
func (s *Schema) sortedTableNames() []TableName {
	return s.SortedTableNames()
}

// SortedTableNames returns the schema's table names in deterministic
// (lexicographic) order, per spec.md §5.
func (s *Schema) SortedTableNames() []TableName {
	names := make([]TableName, 0, len(s.Tables))
	for n := range s.Tables {
		names = append(names, n)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

func (s *Schema) sortedIndKeys() []IndKey {
	return s.SortedIndKeys()
}

// SortedIndKeys returns the schema's (left, right) IND bucket keys in
// deterministic lexicographic order, per spec.md §5.
func (s *Schema) SortedIndKeys() []IndKey {
	keys := make([]IndKey, 0, len(s.Inds))
	for k := range s.Inds {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Left != keys[j].Left {
			return keys[i].Left < keys[j].Left
		}
		return keys[i].Right < keys[j].Right
	})
	return keys
}

// String renders every table (per Table.String) followed by the FDs and
// INDs, matching the "show-dependencies" emitted surface of spec.md §6.
func (s *Schema) String() string {
	var b strings.Builder
	for _, name := range s.sortedTableNames() {
		t := s.Tables[name]
		fmt.Fprintln(&b, t.String())
		for _, key := range sortedFDKeys(t.FDs) {
			fmt.Fprintf(&b, "  %s\n", t.FDs[key])
		}
		fmt.Fprintln(&b)
	}
	for _, key := range s.sortedIndKeys() {
		for _, ind := range s.Inds[key] {
			fmt.Fprintln(&b, ind.String())
		}
	}
	return b.String()
}
