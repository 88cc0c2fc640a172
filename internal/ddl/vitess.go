// Package ddl adapts CREATE TABLE statements into a schema.Schema,
// keeping SQL parsing genuinely external to the compressor core
// (spec.md 1(a): the DDL parser is out of scope for the ILP itself).
// Grounded on github.com/blastrain/vitess-sqlparser, the dialect-
// agnostic parser the retrieval pack's freeeve-machparse repo
// benchmarks itself against.
package ddl

import (
	"fmt"
	"strings"

	vsql "github.com/blastrain/vitess-sqlparser/sqlparser"

	"github.com/steveyegge/schemacompress/internal/schema"
)

// ParseCreateTables parses a `;`-separated sequence of CREATE TABLE
// statements into a single schema.Schema. Any non-CREATE-TABLE
// statement in the input is rejected, since this adapter exists only
// to produce compressor input, not to be a general SQL front end.
func ParseCreateTables(ddl string) (*schema.Schema, error) {
	var tables []schema.Table
	var pkeys []schema.PrimaryKey
	var fkeys []schema.ForeignKey

	for _, stmt := range splitStatements(ddl) {
		if strings.TrimSpace(stmt) == "" {
			continue
		}

		parsed, err := vsql.Parse(stmt)
		if err != nil {
			return nil, fmt.Errorf("ddl: parse %q: %w", firstLine(stmt), err)
		}

		create, ok := parsed.(*vsql.DDL)
		if !ok || create.Action != vsql.CreateStr || create.TableSpec == nil {
			return nil, fmt.Errorf("ddl: %q is not a CREATE TABLE statement", firstLine(stmt))
		}

		table, tPkeys, tFkeys, err := convertTable(create)
		if err != nil {
			return nil, err
		}
		tables = append(tables, table)
		pkeys = append(pkeys, tPkeys...)
		fkeys = append(fkeys, tFkeys...)
	}

	return schema.New(tables, pkeys, fkeys), nil
}

func convertTable(create *vsql.DDL) (schema.Table, []schema.PrimaryKey, []schema.ForeignKey, error) {
	name := create.NewName.Name.String()
	spec := create.TableSpec

	table := schema.Table{Name: name}
	for _, col := range spec.Columns {
		table.Columns = append(table.Columns, schema.Column{
			Name: col.Name.String(),
			Type: col.Type.Type,
		})
	}

	var pkeys []schema.PrimaryKey
	var fkeys []schema.ForeignKey

	for _, idx := range spec.Indexes {
		switch {
		case idx.Info.Primary:
			pkeys = append(pkeys, schema.PrimaryKey{Table: name, Columns: indexColumnNames(idx)})
		case idx.Info.Foreign:
			fkeys = append(fkeys, schema.ForeignKey{
				FromTable:   name,
				FromColumns: indexColumnNames(idx),
				ToTable:     idx.Info.ReferencedTable.Name.String(),
				ToColumns:   idx.Info.ReferencedColumns,
			})
		}
	}

	return table, pkeys, fkeys, nil
}

func indexColumnNames(idx *vsql.IndexDefinition) []string {
	names := make([]string, len(idx.Columns))
	for i, c := range idx.Columns {
		names[i] = c.Column.String()
	}
	return names
}

// splitStatements is a minimal statement splitter: it does not need to
// understand string literals containing semicolons because this
// adapter's only job is feeding CREATE TABLE DDL, which never embeds
// one.
func splitStatements(ddl string) []string {
	return strings.Split(ddl, ";")
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	if len(s) > 60 {
		return s[:60] + "..."
	}
	return s
}
