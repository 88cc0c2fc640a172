// Package introspect builds a schema.Schema by querying a live
// database's information_schema, as a second concrete producer of
// compressor input alongside internal/ddl's static file parsing
// (spec.md §6: "the DDL parser is external; when absent, a test
// harness may build the value directly" — a live connection is the
// other natural way to supply that value).
package introspect

import (
	"context"
	"database/sql"
	"fmt"
	"sort"

	"github.com/steveyegge/schemacompress/internal/schema"
)

// FromDB introspects every base table information_schema reports for
// the connection's current database and builds a schema.Schema from
// it. Works against any information_schema-compatible server — MySQL
// directly, or Dolt (embedded or server mode), since Dolt speaks the
// MySQL wire protocol and the same information_schema views.
func FromDB(ctx context.Context, db *sql.DB) (*schema.Schema, error) {
	tableNames, err := listTables(ctx, db)
	if err != nil {
		return nil, fmt.Errorf("introspect: list tables: %w", err)
	}

	var tables []schema.Table
	var pkeys []schema.PrimaryKey
	var fkeys []schema.ForeignKey

	for _, name := range tableNames {
		cols, err := listColumns(ctx, db, name)
		if err != nil {
			return nil, fmt.Errorf("introspect: columns of %s: %w", name, err)
		}
		tables = append(tables, schema.Table{Name: name, Columns: cols})

		pk, err := primaryKeyColumns(ctx, db, name)
		if err != nil {
			return nil, fmt.Errorf("introspect: primary key of %s: %w", name, err)
		}
		if len(pk) > 0 {
			pkeys = append(pkeys, schema.PrimaryKey{Table: name, Columns: pk})
		}

		fks, err := foreignKeys(ctx, db, name)
		if err != nil {
			return nil, fmt.Errorf("introspect: foreign keys of %s: %w", name, err)
		}
		fkeys = append(fkeys, fks...)
	}

	return schema.New(tables, pkeys, fkeys), nil
}

func listTables(ctx context.Context, db *sql.DB) ([]string, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT table_name FROM information_schema.tables
		WHERE table_schema = database() AND table_type = 'BASE TABLE'
		ORDER BY table_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func listColumns(ctx context.Context, db *sql.DB, table string) ([]schema.Column, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT column_name, data_type FROM information_schema.columns
		WHERE table_schema = database() AND table_name = ?
		ORDER BY ordinal_position`, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cols []schema.Column
	for rows.Next() {
		var name, dataType string
		if err := rows.Scan(&name, &dataType); err != nil {
			return nil, err
		}
		cols = append(cols, schema.Column{Name: name, Type: dataType})
	}
	return cols, rows.Err()
}

func primaryKeyColumns(ctx context.Context, db *sql.DB, table string) ([]string, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT column_name FROM information_schema.key_column_usage
		WHERE table_schema = database() AND table_name = ? AND constraint_name = 'PRIMARY'
		ORDER BY ordinal_position`, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cols []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		cols = append(cols, name)
	}
	return cols, rows.Err()
}

// foreignKeys groups key_column_usage rows by constraint name so a
// multi-column foreign key is reported as one schema.ForeignKey, not
// one per column.
func foreignKeys(ctx context.Context, db *sql.DB, table string) ([]schema.ForeignKey, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT constraint_name, column_name, referenced_table_name, referenced_column_name
		FROM information_schema.key_column_usage
		WHERE table_schema = database() AND table_name = ?
		  AND referenced_table_name IS NOT NULL
		ORDER BY constraint_name, ordinal_position`, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	type group struct {
		toTable  string
		from, to []string
	}
	groups := make(map[string]*group)
	var order []string

	for rows.Next() {
		var constraint, col, toTable, toCol string
		if err := rows.Scan(&constraint, &col, &toTable, &toCol); err != nil {
			return nil, err
		}
		g, ok := groups[constraint]
		if !ok {
			g = &group{toTable: toTable}
			groups[constraint] = g
			order = append(order, constraint)
		}
		g.from = append(g.from, col)
		g.to = append(g.to, toCol)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sort.Strings(order)
	out := make([]schema.ForeignKey, 0, len(order))
	for _, name := range order {
		g := groups[name]
		out = append(out, schema.ForeignKey{
			FromTable:   table,
			FromColumns: g.from,
			ToTable:     g.toTable,
			ToColumns:   g.to,
		})
	}
	return out, nil
}
