//go:build cgo

package introspect

import (
	"context"
	"database/sql"
	"fmt"

	embedded "github.com/dolthub/driver"

	"github.com/steveyegge/schemacompress/internal/schema"
)

// FromDoltEmbedded opens an embedded (CGO, no server) Dolt database at
// dirPath and introspects it via FromDB, grounded on the teacher's
// internal/storage/dolt embedded-connection sequence: parse the DSN,
// build a connector, open the *sql.DB, then ping before querying.
func FromDoltEmbedded(ctx context.Context, dirPath string) (*schema.Schema, error) {
	dsn := fmt.Sprintf("file://%s?commitname=schemacompress&commitemail=schemacompress@localhost&database=.", dirPath)

	cfg, err := embedded.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("introspect: parse dolt dsn: %w", err)
	}

	connector, err := embedded.NewConnector(cfg)
	if err != nil {
		return nil, fmt.Errorf("introspect: create dolt connector: %w", err)
	}

	db := sql.OpenDB(connector)
	defer db.Close()
	defer connector.Close()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("introspect: ping dolt: %w", err)
	}

	return FromDB(ctx, db)
}
