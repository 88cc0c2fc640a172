// Package schema models a relational database schema: tables, typed
// columns, and the primary-key / foreign-key constraints between them.
// It derives the identifier and fact sets that the compressor needs
// without knowing anything about ILPs, tokenizers, or output text.
package schema

import (
	"fmt"
	"strings"
)

// Column is a single typed column within a table.
type Column struct {
	Name        string
	Type        string
	Annotations []string
	Merged      bool
}

// DDL renders the column the way a CREATE TABLE statement would.
func (c Column) DDL() string {
	return fmt.Sprintf("%s %s", c.Name, strings.Join(c.EffectiveAnnotations(), " "))
}

// EffectiveAnnotations returns the column's type followed by its
// declared annotations, as a single ordered list. The type behaves
// exactly like a (mandatory, always-present) annotation for identifier
// enumeration and fact generation (spec.md §3's fact examples, e.g.
// S1/S2, treat a column's type as just another fact it carries), so
// every part of the compressor that walks "a column's annotations"
// uses this instead of the raw Annotations field.
func (c Column) EffectiveAnnotations() []string {
	return append([]string{c.Type}, c.Annotations...)
}

// Table is an ordered list of columns under a name.
type Table struct {
	Name    string
	Columns []Column
}

// DDL renders a CREATE TABLE statement for debugging/display purposes.
// It is not used by the optimal compressor itself (spec.md treats DDL
// parsing as an external concern); it exists for `compress --show-ddl`.
func (t Table) DDL() string {
	cols := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		cols[i] = c.DDL()
	}
	return fmt.Sprintf("create table %s (%s);", t.Name, strings.Join(cols, ", "))
}

// Predicate returns the table-owning identifier, e.g. "table orders".
func (t Table) Predicate() string {
	return "table " + t.Name
}

// PrimaryKey is a (possibly multi-column) primary key constraint.
// Single-column primary keys never survive into this list: New absorbs
// them into the column's annotations immediately.
type PrimaryKey struct {
	Table   string
	Columns []string
}

// ForeignKey is a (possibly multi-column) foreign key constraint.
// Single-column foreign keys never survive into this list either.
type ForeignKey struct {
	FromTable   string
	FromColumns []string
	ToTable     string
	ToColumns   []string
}

// Schema owns an ordered list of tables plus any residual multi-column
// key constraints that could not be absorbed as column annotations.
type Schema struct {
	Tables []Table
	PKeys  []PrimaryKey
	FKeys  []ForeignKey
}

// New builds a Schema from raw table and constraint definitions,
// absorbing single-column primary and foreign keys into the relevant
// column's annotation list (spec.md §3: "After construction,
// single-column PK becomes the annotation `primary key`; single-column
// FK becomes the annotation `foreign key (C) references T(D)`").
// Multi-column keys are kept as separate constraint objects.
func New(tables []Table, pkeys []PrimaryKey, fkeys []ForeignKey) *Schema {
	s := &Schema{Tables: append([]Table(nil), tables...)}

	for _, pk := range pkeys {
		if len(pk.Columns) == 1 {
			s.annotate(pk.Table, pk.Columns[0], "primary key")
			continue
		}
		s.PKeys = append(s.PKeys, pk)
	}

	for _, fk := range fkeys {
		if len(fk.FromColumns) == 1 && len(fk.ToColumns) == 1 {
			ann := fmt.Sprintf("foreign key (%s) references %s(%s)",
				fk.FromColumns[0], fk.ToTable, fk.ToColumns[0])
			s.annotate(fk.FromTable, fk.FromColumns[0], ann)
			continue
		}
		s.FKeys = append(s.FKeys, fk)
	}

	return s
}

// annotate appends an annotation to a named column of a named table.
// A no-op if the table or column cannot be found (defensive against
// constraints that reference a column the caller forgot to declare).
func (s *Schema) annotate(tableName, colName, annotation string) {
	for ti := range s.Tables {
		if s.Tables[ti].Name != tableName {
			continue
		}
		for ci := range s.Tables[ti].Columns {
			if s.Tables[ti].Columns[ci].Name == colName {
				s.Tables[ti].Columns[ci].Annotations =
					append(s.Tables[ti].Columns[ci].Annotations, annotation)
				return
			}
		}
	}
}

// DDL renders every table's CREATE TABLE statement, newline separated.
func (s *Schema) DDL() string {
	parts := make([]string, len(s.Tables))
	for i, t := range s.Tables {
		parts[i] = t.DDL()
	}
	return strings.Join(parts, "\n")
}

// CanSplit reports whether the schema can be compressed table-by-table
// independently. It cannot if any multi-column PK or FK remains, since
// such a constraint spans tables (or spans columns in a way that a
// single-table context cannot express) — see spec.md §4.6.
func (s *Schema) CanSplit() bool {
	return len(s.PKeys) == 0 && len(s.FKeys) == 0
}

// ByTable partitions a multi-table schema into one single-table Schema
// per table, for use in split compression mode. Callers must first
// confirm CanSplit() returns true.
func (s *Schema) ByTable() []*Schema {
	out := make([]*Schema, len(s.Tables))
	for i, t := range s.Tables {
		out[i] = &Schema{Tables: []Table{t}}
	}
	return out
}
