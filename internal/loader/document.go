package loader

import (
	"fmt"

	"github.com/schemanorm/schemanorm/internal/parser"
	"github.com/schemanorm/schemanorm/internal/schema"
)

// LoadDocument builds a *schema.Schema from a parsed document, following
// the load sequence of original_source/src/main.rs lines 118-180:
// tables, then frequencies, then FDs, then (if useStats) a primary-key
// statistics pre-pass, then INDs. It stops there -- per-table
// minimize+closure, retain-fk filtering, schema-level copy_fds, and IND
// closure are the driver's pre-steps (internal/engine), not the
// loader's concern.
func LoadDocument(doc *parser.Result, ignoreMissing, useStats bool) (*schema.Schema, error) {
	l := New(ignoreMissing)

	for _, t := range doc.Tables {
		l.AddTable(schema.TableName(t.Name), t.Fields)
	}

	for _, f := range doc.Frequencies {
		if f.Column == "" {
			if err := l.SetRowCount(schema.TableName(f.Table), f.Count); err != nil {
				return nil, err
			}
			continue
		}
		if err := l.SetFieldStats(schema.TableName(f.Table), schema.FieldName(f.Column), f.Count, f.MaxLength); err != nil {
			return nil, err
		}
	}

	for _, fd := range doc.FuncDeps {
		if err := l.AddFD(schema.TableName(fd.Table), toFieldNames(fd.Lhs), toFieldNames(fd.Rhs)); err != nil {
			return nil, fmt.Errorf("loading functional dependency: %w", err)
		}
	}

	if useStats {
		l.ApplyPrimaryKeyStats()
	}

	for _, ind := range doc.IncDeps {
		if err := l.AddInd(schema.TableName(ind.LeftTable), toFieldNames(ind.LeftFields), schema.TableName(ind.RightTable), toFieldNames(ind.RightFields)); err != nil {
			return nil, fmt.Errorf("loading inclusion dependency: %w", err)
		}
	}

	return l.Schema(), nil
}

func toFieldNames(names []string) []schema.FieldName {
	out := make([]schema.FieldName, len(names))
	for i, n := range names {
		out[i] = schema.FieldName(n)
	}
	return out
}
