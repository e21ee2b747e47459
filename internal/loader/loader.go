// Package loader turns parsed input records into a *schema.Schema,
// exposing the five public operations spec.md §6 names:
// AddTable, AddFD, AddInd, SetRowCount, SetFieldStats, plus the
// statistics pre-pass ApplyPrimaryKeyStats. Grounded on
// original_source/src/main.rs lines 118-196 (the load sequence between
// parsing and handing the schema to the driver).
package loader

import (
	"errors"
	"fmt"
	"sort"

	"github.com/schemanorm/schemanorm/internal/logger"
	"github.com/schemanorm/schemanorm/internal/parser"
	"github.com/schemanorm/schemanorm/internal/schema"
)

// ErrUnknownTable is returned when a declaration references a table
// that was never declared, and --ignore-missing was not set.
var ErrUnknownTable = errors.New("references unknown table")

// ErrMissingStat is returned when a frequency record references an
// unknown table or field.
var ErrMissingStat = errors.New("stats reference unknown table or field")

// Loader accumulates a Schema from the five public load operations,
// applying the --ignore-missing policy of spec.md §7.1 uniformly.
type Loader struct {
	schema        *schema.Schema
	ignoreMissing bool
}

// New returns a Loader backed by a fresh, empty schema.
func New(ignoreMissing bool) *Loader {
	return &Loader{schema: schema.New(), ignoreMissing: ignoreMissing}
}

// Schema returns the schema built so far.
func (l *Loader) Schema() *schema.Schema {
	return l.schema
}

// AddTable registers a new table with the given fields and seeds its
// key->non-key FD, matching input.rs's create rule calling add_pk_fd
// immediately on construction.
func (l *Loader) AddTable(name schema.TableName, fields []parser.Field) {
	t := schema.NewTable(name)
	for _, f := range fields {
		t.Fields.Set(&schema.Field{Name: schema.FieldName(f.Name), Key: f.Key})
	}
	t.AddPKFD()
	l.schema.AddTable(t)
}

// SetRowCount records a table-level row count. An unknown table is
// fatal (per spec.md §7.2 -- statistics referencing
// unknown subjects are always fatal, ignore-missing or not, since the
// scoring formulas have no defined value without them; only FD/IND
// declarations get the softer skip-with-warning policy).
func (l *Loader) SetRowCount(table schema.TableName, count int) error {
	t, ok := l.schema.Tables[table]
	if !ok {
		return fmt.Errorf("row count for %s: %w", table, ErrMissingStat)
	}
	c := count
	t.RowCount = &c
	return nil
}

// SetFieldStats records a field's cardinality and max length.
func (l *Loader) SetFieldStats(table schema.TableName, field schema.FieldName, cardinality, maxLength int) error {
	t, ok := l.schema.Tables[table]
	if !ok {
		return fmt.Errorf("stats for %s.%s: %w", table, field, ErrMissingStat)
	}
	f, ok := t.Fields.Get(field)
	if !ok {
		return fmt.Errorf("stats for %s.%s: %w", table, field, ErrMissingStat)
	}
	c, m := cardinality, maxLength
	f.Cardinality = &c
	f.MaxLength = &m
	return nil
}

// AddFD adds lhs -> rhs to table. If table is unknown, this is fatal
// unless --ignore-missing, in which case the FD is skipped with a
// warning (spec.md §7.1).
func (l *Loader) AddFD(table schema.TableName, lhs, rhs []schema.FieldName) error {
	t, ok := l.schema.Tables[table]
	if !ok {
		if l.ignoreMissing {
			logger.Get().Warn("skipping FD for unknown table", "table", string(table))
			return nil
		}
		return fmt.Errorf("FD for %s: %w", table, ErrUnknownTable)
	}
	t.AddFD(lhs, rhs)
	return nil
}

// AddInd adds an inclusion dependency between leftTable and rightTable.
// Both field lists are canonicalized by sorting the left list and
// applying the same permutation to the right list before insertion
// (main.rs's permutation::sort step) so that IND subset-dominance is
// meaningful across independently authored declarations. Unknown
// tables are fatal unless --ignore-missing, in which case the IND is
// skipped with a warning.
func (l *Loader) AddInd(leftTable schema.TableName, leftFields []schema.FieldName, rightTable schema.TableName, rightFields []schema.FieldName) error {
	_, leftOK := l.schema.Tables[leftTable]
	_, rightOK := l.schema.Tables[rightTable]
	if !leftOK || !rightOK {
		if l.ignoreMissing {
			logger.Get().Warn("skipping IND for unknown table", "left", string(leftTable), "right", string(rightTable))
			return nil
		}
		return fmt.Errorf("IND between %s and %s: %w", leftTable, rightTable, ErrUnknownTable)
	}

	perm := make([]int, len(leftFields))
	for i := range perm {
		perm[i] = i
	}
	sort.Slice(perm, func(i, j int) bool { return leftFields[perm[i]] < leftFields[perm[j]] })

	sortedLeft := make([]schema.FieldName, len(leftFields))
	sortedRight := make([]schema.FieldName, len(rightFields))
	for i, p := range perm {
		sortedLeft[i] = leftFields[p]
		sortedRight[i] = rightFields[p]
	}

	l.schema.AddInd(&schema.IND{
		LeftTable:   leftTable,
		LeftFields:  sortedLeft,
		RightTable:  rightTable,
		RightFields: sortedRight,
	})
	return nil
}

// ApplyPrimaryKeyStats calls SetPrimaryKey(true) on every table, in
// deterministic name order -- the statistics-mode pre-pass main.rs runs
// after FDs are loaded and before INDs are added, since INDs are keyed
// positionally off the field list that SetPrimaryKey may reorder the
// key-ness of.
func (l *Loader) ApplyPrimaryKeyStats() {
	names := make([]schema.TableName, 0, len(l.schema.Tables))
	for n := range l.schema.Tables {
		names = append(names, n)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	for _, n := range names {
		l.schema.Tables[n].SetPrimaryKey(true)
	}
}
