package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Entry is one schema's outcome within a batch compression run.
type Entry struct {
	Name          string  `json:"name"`
	Solved        bool    `json:"solved"`
	NrVariables   int     `json:"nr_variables"`
	NrConstraints int     `json:"nr_constraints"`
	MIPGap        float64 `json:"mip_gap"`
	MaxLength     int     `json:"max_length"`
	Error         string  `json:"error,omitempty"`
}

// Manifest summarizes a batch compression run: one Entry per input
// schema, plus the error policy that governed how failures were
// handled and whether every schema in the batch was actually attempted.
type Manifest struct {
	ExportedAt  time.Time `json:"exported_at"`
	ErrorPolicy string    `json:"error_policy"`
	Complete    bool      `json:"complete"`
	Entries     []Entry   `json:"entries"`
}

// NewManifest creates an empty manifest for a run governed by policy.
func NewManifest(policy ErrorPolicy) *Manifest {
	return &Manifest{
		ExportedAt:  time.Now(),
		ErrorPolicy: string(policy),
		Complete:    true, // cleared by Record on the first failure
	}
}

// Record appends one schema's outcome, clearing Complete if it failed.
func (m *Manifest) Record(e Entry) {
	m.Entries = append(m.Entries, e)
	if e.Error != "" || !e.Solved {
		m.Complete = false
	}
}

// WriteManifest writes a manifest alongside the given JSONL results
// file, deriving the manifest's path by replacing the ".jsonl"
// extension with ".manifest.json". The write is atomic: it writes to
// a temp file in the same directory, then renames over the final path.
func WriteManifest(jsonlPath string, manifest *Manifest) error {
	// Derive manifest path from JSONL path
	manifestPath := strings.TrimSuffix(jsonlPath, ".jsonl") + ".manifest.json"

	// Marshal manifest
	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}

	// Create temp file for atomic write
	dir := filepath.Dir(manifestPath)
	base := filepath.Base(manifestPath)
	tempFile, err := os.CreateTemp(dir, base+".tmp.*")
	if err != nil {
		return fmt.Errorf("failed to create temp manifest file: %w", err)
	}
	tempPath := tempFile.Name()
	defer func() {
		_ = tempFile.Close()    // Best effort: may already be closed before rename
		_ = os.Remove(tempPath) // Best effort: cleanup temp file; may already be renamed
	}()

	// Write manifest
	if _, err := tempFile.Write(data); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	// Close before rename (required on Windows; double-close in defer is harmless)
	_ = tempFile.Close()

	// Atomic replace
	if err := os.Rename(tempPath, manifestPath); err != nil {
		return fmt.Errorf("failed to replace manifest file: %w", err)
	}

	// Set appropriate file permissions (0600: rw-------)
	if err := os.Chmod(manifestPath, 0600); err != nil {
		// Non-fatal, just log
		fmt.Fprintf(os.Stderr, "Warning: failed to set manifest permissions: %v\n", err)
	}

	return nil
}
