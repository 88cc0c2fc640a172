// Package schemacompress provides a minimal public API for embedding
// the schema-to-prompt compressor in other Go programs.
//
// Most callers should use cmd/schemacompress directly; this package
// exports only the essential types and the one entry point a Go
// program needs to compress a schema programmatically.
package schemacompress

import (
	"context"

	"github.com/steveyegge/schemacompress/internal/compress"
	"github.com/steveyegge/schemacompress/internal/schema"
	"github.com/steveyegge/schemacompress/internal/solver"
	"github.com/steveyegge/schemacompress/internal/tokenizer"
)

// Core types for describing a schema and its compression settings.
type (
	Schema     = schema.Schema
	Table      = schema.Table
	Column     = schema.Column
	PrimaryKey = schema.PrimaryKey
	ForeignKey = schema.ForeignKey
	Config     = compress.Config
	Result     = compress.Result
)

// NewSchema builds a Schema from table and constraint definitions,
// absorbing single-column primary/foreign keys into column
// annotations exactly as the CLI's YAML loader does.
func NewSchema(tables []Table, pkeys []PrimaryKey, fkeys []ForeignKey) *Schema {
	return schema.New(tables, pkeys, fkeys)
}

// LoadSchemaYAML reads a schema from the same YAML file format
// `schemacompress compress` accepts.
func LoadSchemaYAML(path string) (*Schema, error) {
	return schema.LoadYAML(path)
}

// DefaultConfig returns the compressor's default settings (depth 3,
// context window 8, 30s solver timeout, warm start and hints on).
func DefaultConfig() Config {
	return compress.DefaultConfig()
}

// TokenCounter maps (model name, text) to a token count. No function
// exported by this package takes one; Compress always uses the
// built-in heuristic tokenizer.
type TokenCounter = schema.TokenCounter

// Compress runs one compression, using a dependency-free heuristic
// tokenizer and this module's own branch-and-bound solver. Neither the
// tokenizer nor the solver can be replaced through this package.
func Compress(ctx context.Context, s *Schema, cfg Config) (*Result, error) {
	counter := tokenizer.Memoize(tokenizer.Heuristic{})
	return compress.Compress(ctx, s, cfg, counter, func() solver.Solver { return solver.New() })
}
