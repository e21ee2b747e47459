// Package schemanorm provides a programmatic API for normalizing a
// denormalized relational schema into Boyce-Codd Normal Form with
// inclusion-dependency-driven subsumption.
package schemanorm

import (
	"github.com/schemanorm/schemanorm/internal/engine"
	"github.com/schemanorm/schemanorm/internal/schema"
)

// Re-export the core model types for external consumption.

// FieldName is an opaque field identifier.
type FieldName = schema.FieldName

// TableName is an opaque table identifier.
type TableName = schema.TableName

// Field describes one column of a table.
type Field = schema.Field

// Table is a relation and its functional dependencies.
type Table = schema.Table

// FD is a functional dependency.
type FD = schema.FD

// IND is an inclusion dependency between two tables.
type IND = schema.IND

// Schema is the top-level owned aggregate of tables and INDs.
type Schema = schema.Schema

// Options configures a normalization run.
type Options = engine.Options
