package ilp

import (
	"github.com/steveyegge/schemacompress/internal/schema"
	"github.com/steveyegge/schemacompress/internal/shortcutgen"
	"github.com/steveyegge/schemacompress/internal/solver"
)

// Build constructs the variable family, constraints, objective,
// pruning cuts, hints, and MIP start for one schema, and returns both
// the Model (needed to decode a solution) and the solver.Problem
// (everything a Solver needs to actually search for one).
func Build(s *schema.Schema, modelName string, counter schema.TokenCounter, shortcuts []shortcutgen.Candidate, opts Options) (*Model, *solver.Problem, error) {
	m := newModel(s, shortcuts, opts)

	constraints := m.buildConstraints()
	m.NumVars = m.vars.next

	objective, err := m.buildObjective(modelName, counter)
	if err != nil {
		return nil, nil, err
	}

	hints := m.buildHints()
	start := m.buildMIPStart()

	p := &solver.Problem{
		NumVars:     m.NumVars,
		Objective:   objective,
		Constraints: constraints,
		Start:       start,
		Hints:       hints,
	}
	return m, p, nil
}
