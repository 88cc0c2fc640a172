package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBenchCommandEndToEndOverDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.yaml"), []byte(`
tables:
  - name: t
    columns:
      - name: c
        type: int
`), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.yaml"), []byte(`
tables:
  - name: u
    columns:
      - name: k
        type: text
`), 0o600))

	manifestPath := filepath.Join(dir, "run.jsonl")
	rootCmd.SetArgs([]string{"bench", dir, "--manifest", manifestPath})
	defer rootCmd.SetArgs(nil)

	require.NoError(t, rootCmd.Execute())

	_, err := os.Stat(filepath.Join(dir, "run.manifest.json"))
	require.NoError(t, err)
}
