package export_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/steveyegge/schemacompress/internal/export"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewManifestStartsComplete(t *testing.T) {
	m := export.NewManifest(export.PolicyBestEffort)
	assert.True(t, m.Complete)
	assert.Equal(t, string(export.PolicyBestEffort), m.ErrorPolicy)
}

func TestRecordClearsCompleteOnFailure(t *testing.T) {
	m := export.NewManifest(export.PolicyBestEffort)
	m.Record(export.Entry{Name: "orders", Solved: true})
	assert.True(t, m.Complete)

	m.Record(export.Entry{Name: "line_items", Solved: false, Error: "infeasible"})
	assert.False(t, m.Complete)
	require.Len(t, m.Entries, 2)
}

func TestWriteManifestAtomicReplace(t *testing.T) {
	dir := t.TempDir()
	jsonlPath := filepath.Join(dir, "results.jsonl")

	m := export.NewManifest(export.PolicyFailFast)
	m.Record(export.Entry{Name: "t", Solved: true, NrVariables: 12, MIPGap: 0})

	require.NoError(t, export.WriteManifest(jsonlPath, m))

	manifestPath := filepath.Join(dir, "results.manifest.json")
	data, err := os.ReadFile(manifestPath)
	require.NoError(t, err)

	var loaded export.Manifest
	require.NoError(t, json.Unmarshal(data, &loaded))
	assert.Equal(t, string(export.PolicyFailFast), loaded.ErrorPolicy)
	require.Len(t, loaded.Entries, 1)
	assert.Equal(t, "t", loaded.Entries[0].Name)
}
