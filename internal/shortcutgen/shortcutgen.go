// Package shortcutgen proposes a small ordered set of substring
// shortcuts for a schema: candidate (placeholder, substring) pairs
// that the ILP model may choose to introduce in the output preamble
// (spec.md §4.2).
package shortcutgen

import "github.com/steveyegge/schemacompress/internal/schema"

// DefaultPool is the fixed ordered pool of placeholder names the
// generator draws from, capped at nine so the preamble itself never
// grows large enough to threaten the compression it is meant to buy.
var DefaultPool = []string{"PA", "PB", "PC", "PD", "PE", "PF", "PG", "PH", "PI"}

// Candidate is one proposed shortcut: Placeholder stands in for
// Substring wherever Substring occurs inside a written identifier.
type Candidate struct {
	Placeholder string
	Substring   string
}

// PreambleSentence is the literal text the decoder emits once per
// introduced shortcut, ahead of the compressed body.
func (c Candidate) PreambleSentence() string {
	return c.Placeholder + " substitutes " + c.Substring + " "
}

// Generate proposes up to len(pool) shortcut candidates for s, taking
// the top prefixes by frequency (schema.Prefixes already prunes
// single-token and dominated prefixes). The mapping is frozen for the
// life of one compression: callers must generate candidates before
// calling Schema.MergeColumns, since merged column names are synthetic
// and would dilute the prefix statistics (spec.md §4.1).
func Generate(s *schema.Schema, modelName string, counter schema.TokenCounter, pool []string) ([]Candidate, error) {
	if pool == nil {
		pool = DefaultPool
	}

	prefixes, err := s.Prefixes(modelName, counter)
	if err != nil {
		return nil, err
	}

	n := len(prefixes)
	if n > len(pool) {
		n = len(pool)
	}

	candidates := make([]Candidate, n)
	for i := 0; i < n; i++ {
		candidates[i] = Candidate{Placeholder: pool[i], Substring: prefixes[i]}
	}
	return candidates, nil
}
