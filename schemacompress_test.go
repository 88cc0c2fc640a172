package schemacompress_test

import (
	"context"
	"testing"
	"time"

	schemacompress "github.com/steveyegge/schemacompress"
	"github.com/stretchr/testify/require"
)

func TestCompressSmallestSchemaThroughPublicAPI(t *testing.T) {
	s := schemacompress.NewSchema(
		[]schemacompress.Table{{Name: "t", Columns: []schemacompress.Column{{Name: "c", Type: "int"}}}},
		nil, nil,
	)

	cfg := schemacompress.DefaultConfig()
	cfg.TimeoutSeconds = 2

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := schemacompress.Compress(ctx, s, cfg)
	require.NoError(t, err)
	require.True(t, result.Solved)
	require.NotEmpty(t, result.Solution)
}
