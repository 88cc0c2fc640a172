package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCompressCommandEndToEndOnSmallestSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
tables:
  - name: t
    columns:
      - name: c
        type: int
`), 0o600))

	var stdout bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetArgs([]string{"compress", path})
	defer rootCmd.SetArgs(nil)

	require.NoError(t, rootCmd.Execute())
}

func TestCompressCommandGreedyFullNames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
tables:
  - name: t1
    columns:
      - name: name
        type: text
  - name: t2
    columns:
      - name: name
        type: text
`), 0o600))

	rootCmd.SetArgs([]string{"compress", path, "--greedy", "--full-names"})
	defer rootCmd.SetArgs(nil)

	require.NoError(t, rootCmd.Execute())
}
