//go:build integration

package introspect_test

import (
	"context"
	"testing"

	tcdolt "github.com/testcontainers/testcontainers-go/modules/dolt"

	"github.com/steveyegge/schemacompress/internal/introspect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestFromMySQLAgainstDoltContainer is an opt-in (build-tagged)
// integration test: it spins up a real Dolt server (which speaks the
// MySQL wire protocol and the same information_schema views FromDB
// queries) via testcontainers-go, connects FromMySQL to it, and asserts
// that introspection succeeds and returns a schema. Run with
// `go test -tags=integration`.
func TestFromMySQLAgainstDoltContainer(t *testing.T) {
	ctx := context.Background()

	container, err := tcdolt.Run(ctx, "dolthub/dolt-sql-server:latest")
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	dsn, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	s, err := introspect.FromMySQL(ctx, dsn)
	require.NoError(t, err)
	assert.NotNil(t, s)
}
