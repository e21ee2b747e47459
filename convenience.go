package schemanorm

import (
	"fmt"
	"io"
	"os"

	"github.com/schemanorm/schemanorm/internal/engine"
	"github.com/schemanorm/schemanorm/internal/loader"
	"github.com/schemanorm/schemanorm/internal/parser"
	"github.com/schemanorm/schemanorm/internal/schema"
)

// Normalize is a convenience function: it parses r, builds a Schema,
// and runs the fixed-point driver with opts, returning the final
// Schema.
func Normalize(r io.Reader, ignoreMissing bool, opts Options) (*Schema, error) {
	doc, err := parser.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing input: %w", err)
	}

	s, err := loader.LoadDocument(doc, ignoreMissing, opts.UseStats)
	if err != nil {
		return nil, fmt.Errorf("loading schema: %w", err)
	}

	engine.Run(s, opts)
	return s, nil
}

// NormalizeFile is a convenience function to normalize a schema
// description read from a file path.
func NormalizeFile(path string, ignoreMissing bool, opts Options) (*Schema, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	return Normalize(f, ignoreMissing, opts)
}

// NewSchema returns an empty schema, for callers building one
// programmatically rather than from the textual grammar.
func NewSchema() *Schema {
	return schema.New()
}
