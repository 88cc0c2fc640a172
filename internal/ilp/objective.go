package ilp

import (
	"strings"

	"github.com/steveyegge/schemacompress/internal/schema"
)

// buildObjective assigns the tokenizer-weighted objective coefficient
// to every representation, parenthesis, and shortcut-introduction
// variable. Must run after buildConstraints, once m.vars.next (hence
// m.NumVars) is final.
func (m *Model) buildObjective(modelName string, counter schema.TokenCounter) ([]float64, error) {
	obj := make([]float64, m.NumVars)

	openWeight, err := counter.Count(modelName, "(")
	if err != nil {
		return nil, err
	}
	closeWeight, err := counter.Count(modelName, ")")
	if err != nil {
		return nil, err
	}
	for p := 0; p < m.L; p++ {
		obj[m.vars.X(p, m.openTok)] += float64(openWeight)
		obj[m.vars.X(p, m.closeTok)] += float64(closeWeight)
	}

	for idIdx, id := range m.Ids {
		fullWeight, err := counter.Count(modelName, id)
		if err != nil {
			return nil, err
		}
		for p := 0; p < m.L; p++ {
			if rv, ok := m.vars.R(p, idIdx, 0); ok {
				obj[rv] = float64(fullWeight)
			}
		}

		for si, sc := range m.Shortcuts {
			if !strings.Contains(id, sc.Substring) {
				continue
			}
			shortened := strings.ReplaceAll(id, sc.Substring, sc.Placeholder)
			weight, err := counter.Count(modelName, shortened)
			if err != nil {
				return nil, err
			}
			for p := 0; p < m.L; p++ {
				if rv, ok := m.vars.R(p, idIdx, si+1); ok {
					obj[rv] = float64(weight)
				}
			}
		}
	}

	for si, sc := range m.Shortcuts {
		weight, err := counter.Count(modelName, sc.PreambleSentence())
		if err != nil {
			return nil, err
		}
		obj[m.vars.U(si)] = float64(weight)
	}

	return obj, nil
}
