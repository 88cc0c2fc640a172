package introspect

import (
	"context"
	"database/sql"
	"fmt"

	// Registers the "mysql" driver.
	_ "github.com/go-sql-driver/mysql"

	"github.com/steveyegge/schemacompress/internal/schema"
)

// FromMySQL opens a MySQL (or Dolt server-mode) connection over the
// given DSN and introspects it via FromDB. One connection is opened
// and closed per call: schemacompress has no long-lived connection
// pool of its own (spec.md §5's "no persistent state" extends to this
// ingestion boundary too).
func FromMySQL(ctx context.Context, dsn string) (*schema.Schema, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("introspect: open mysql dsn: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("introspect: ping mysql: %w", err)
	}

	return FromDB(ctx, db)
}
