package ilp_test

import (
	"context"
	"testing"
	"time"

	"github.com/steveyegge/schemacompress/internal/ilp"
	"github.com/steveyegge/schemacompress/internal/schema"
	"github.com/steveyegge/schemacompress/internal/solver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type runeCounter struct{}

func (runeCounter) Count(_ string, text string) (int, error) {
	return len([]rune(text)), nil
}

func smallestSchema() *schema.Schema {
	return schema.New(
		[]schema.Table{{Name: "t", Columns: []schema.Column{{Name: "c", Type: "int"}}}},
		nil, nil,
	)
}

func TestBuildProducesConsistentVariableCount(t *testing.T) {
	s := smallestSchema()
	m, p, err := ilp.Build(s, "test-model", runeCounter{}, nil, ilp.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, m.NumVars, p.NumVars)
	assert.Greater(t, p.NumVars, 0)
	assert.NotEmpty(t, p.Constraints)
	assert.Len(t, p.Objective, p.NumVars)
	assert.Len(t, p.Start, p.NumVars)
}

// TestMIPStartIsFeasible is the Go analogue of testable property 6
// ("seed feasibility"): the naive rendering, translated into a full
// variable assignment, must satisfy every constraint the model builds.
func TestMIPStartIsFeasible(t *testing.T) {
	s := smallestSchema()
	_, p, err := ilp.Build(s, "test-model", runeCounter{}, nil, ilp.DefaultOptions())
	require.NoError(t, err)

	for _, c := range p.Constraints {
		assert.True(t, c.Satisfied(p.Start), "constraint %q violated by MIP start", c.Name)
	}
}

func TestMIPStartFeasibleForPrimaryKeyAbsorption(t *testing.T) {
	s := schema.New(
		[]schema.Table{
			{Name: "u", Columns: []schema.Column{
				{Name: "k", Type: "int"},
				{Name: "v", Type: "text"},
			}},
		},
		[]schema.PrimaryKey{{Table: "u", Columns: []string{"k"}}},
		nil,
	)
	_, p, err := ilp.Build(s, "test-model", runeCounter{}, nil, ilp.DefaultOptions())
	require.NoError(t, err)

	for _, c := range p.Constraints {
		assert.True(t, c.Satisfied(p.Start), "constraint %q violated by MIP start", c.Name)
	}
}

func TestMIPStartFeasibleAcrossTables(t *testing.T) {
	s := schema.New(
		[]schema.Table{
			{Name: "o", Columns: []schema.Column{{Name: "id", Type: "int"}}},
			{Name: "l", Columns: []schema.Column{{Name: "oid", Type: "int"}}},
		},
		nil, nil,
	)
	_, p, err := ilp.Build(s, "test-model", runeCounter{}, nil, ilp.DefaultOptions())
	require.NoError(t, err)

	for _, c := range p.Constraints {
		assert.True(t, c.Satisfied(p.Start), "constraint %q violated by MIP start", c.Name)
	}
}

func TestSolveSmallestSchemaFindsFeasibleIncumbent(t *testing.T) {
	s := smallestSchema()
	_, p, err := ilp.Build(s, "test-model", runeCounter{}, nil, ilp.DefaultOptions())
	require.NoError(t, err)

	b := solver.New()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	sol, err := b.Solve(ctx, p, 2*time.Second)
	require.NoError(t, err)
	assert.Contains(t, []solver.Status{solver.StatusSolved, solver.StatusFeasible}, sol.Status)
	assert.LessOrEqual(t, sol.Objective, objectiveValue(p, p.Start))
}

func objectiveValue(p *solver.Problem, x []float64) float64 {
	total := 0.0
	for i, c := range p.Objective {
		total += c * x[i]
	}
	return total
}

func TestBuildHonorsUseHintsOption(t *testing.T) {
	s := smallestSchema()
	opts := ilp.DefaultOptions()
	opts.UseHints = false
	_, p, err := ilp.Build(s, "test-model", runeCounter{}, nil, opts)
	require.NoError(t, err)
	assert.Nil(t, p.Hints)
}
