package schema

import "sort"

// TokenCounter is the minimal tokenizer oracle contract schema needs:
// count_tokens(model_name, text) -> nonnegative integer (spec.md §6).
// internal/tokenizer.Oracle satisfies this.
type TokenCounter interface {
	Count(modelName, text string) (int, error)
}

// prefixCount pairs a candidate prefix with how many identifier
// strings (table names, column names, annotations) start with it.
type prefixCount struct {
	prefix string
	count  int
}

// Prefixes returns prefixes of length >= 2 that occur at least twice
// across table names, column names, and annotations, filtered to
// those that tokenize to more than one token under modelName (a
// single-token prefix offers no compression benefit as a shortcut),
// with a prefix removed whenever a strictly longer prefix ties it in
// frequency (the longer prefix dominates: substituting it saves at
// least as much and never less). The result is sorted by frequency,
// descending, ties broken by prefix text for determinism.
func (s *Schema) Prefixes(modelName string, counter TokenCounter) ([]string, error) {
	var words []string
	for _, t := range s.Tables {
		words = append(words, t.Name)
		for _, c := range t.Columns {
			words = append(words, c.Name)
			words = append(words, c.Annotations...)
		}
	}

	counts := make(map[string]int)
	for _, w := range words {
		seenForWord := make(map[string]bool)
		for l := 2; l <= len(w); l++ {
			p := w[:l]
			if seenForWord[p] {
				continue
			}
			seenForWord[p] = true
			counts[p]++
		}
	}

	var candidates []string
	for p, n := range counts {
		if n >= 2 {
			candidates = append(candidates, p)
		}
	}
	sort.Strings(candidates)

	// Drop any prefix dominated by a strictly longer prefix of equal
	// frequency (e.g. "build" and "buildUp" tied at count 5: keep
	// only "buildUp").
	kept := make([]string, 0, len(candidates))
	for _, p := range candidates {
		dominated := false
		for _, q := range candidates {
			if len(q) > len(p) && counts[q] == counts[p] &&
				len(q) >= len(p) && q[:len(p)] == p {
				dominated = true
				break
			}
		}
		if !dominated {
			kept = append(kept, p)
		}
	}

	var filtered []prefixCount
	for _, p := range kept {
		n, err := counter.Count(modelName, p)
		if err != nil {
			return nil, err
		}
		if n > 1 {
			filtered = append(filtered, prefixCount{p, counts[p]})
		}
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		if filtered[i].count != filtered[j].count {
			return filtered[i].count > filtered[j].count
		}
		return filtered[i].prefix < filtered[j].prefix
	})

	out := make([]string, len(filtered))
	for i, f := range filtered {
		out[i] = f.prefix
	}
	return out, nil
}
