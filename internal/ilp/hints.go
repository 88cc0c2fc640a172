package ilp

import "sort"

// buildHints computes the multiset frequency of each identifier across
// the true fact set, keeps the top ContextK, and hints every context
// variable at depth > 0 for every other identifier to zero. Hints are
// advisory only: the solver may ignore them, but branching toward them
// first tends to find a near-optimal incumbent faster.
func (m *Model) buildHints() []*float64 {
	if !m.Opts.UseHints || m.NumVars == 0 {
		return nil
	}

	freq := make(map[string]int, len(m.Ids))
	for _, f := range m.TrueFacts {
		freq[f.A]++
		freq[f.B]++
	}

	ranked := make([]string, 0, len(freq))
	for id := range freq {
		ranked = append(ranked, id)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if freq[ranked[i]] != freq[ranked[j]] {
			return freq[ranked[i]] > freq[ranked[j]]
		}
		return ranked[i] < ranked[j]
	})

	top := make(map[string]bool, m.Opts.ContextK)
	for i := 0; i < len(ranked) && i < m.Opts.ContextK; i++ {
		top[ranked[i]] = true
	}

	zero := 0.0
	hints := make([]*float64, m.NumVars)
	for idIdx, id := range m.Ids {
		if top[id] {
			continue
		}
		for d := 1; d < m.D; d++ {
			for p := 0; p < m.L; p++ {
				hints[m.vars.C(p, d, idIdx)] = &zero
			}
		}
	}
	return hints
}
