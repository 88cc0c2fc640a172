package solver_test

import (
	"context"
	"testing"
	"time"

	"github.com/steveyegge/schemacompress/internal/solver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolveTrivialMinimization(t *testing.T) {
	// minimize x0 + 2*x1 subject to x0 + x1 >= 1
	p := &solver.Problem{
		NumVars:   2,
		Objective: []float64{1, 2},
		Constraints: []solver.Constraint{
			{Name: "atLeastOne", Coeffs: map[int]float64{0: 1, 1: 1}, Relation: solver.GE, RHS: 1},
		},
	}

	b := solver.New()
	sol, err := b.Solve(context.Background(), p, time.Second)
	require.NoError(t, err)
	assert.Equal(t, solver.StatusSolved, sol.Status)
	assert.Equal(t, []float64{1, 0}, sol.Assignment)
	assert.InDelta(t, 1.0, sol.Objective, eps)
}

const eps = 1e-9

func TestSolveInfeasible(t *testing.T) {
	p := &solver.Problem{
		NumVars:   1,
		Objective: []float64{1},
		Constraints: []solver.Constraint{
			{Name: "impossible", Coeffs: map[int]float64{0: 1}, Relation: solver.GE, RHS: 2},
		},
	}

	b := solver.New()
	sol, err := b.Solve(context.Background(), p, time.Second)
	require.NoError(t, err)
	assert.Equal(t, solver.StatusInfeasible, sol.Status)
}

func TestSolveUsesMIPStartAsIncumbent(t *testing.T) {
	p := &solver.Problem{
		NumVars:   3,
		Objective: []float64{1, 1, 1},
		Constraints: []solver.Constraint{
			{Name: "sumTwo", Coeffs: map[int]float64{0: 1, 1: 1, 2: 1}, Relation: solver.EQ, RHS: 2},
		},
		Start: []float64{1, 1, 0},
	}

	b := solver.New()
	sol, err := b.Solve(context.Background(), p, time.Second)
	require.NoError(t, err)
	assert.Equal(t, solver.StatusSolved, sol.Status)
	assert.InDelta(t, 2.0, sol.Objective, eps)
}

func TestValidateRejectsOutOfRangeConstraint(t *testing.T) {
	p := &solver.Problem{
		NumVars:   1,
		Objective: []float64{1},
		Constraints: []solver.Constraint{
			{Name: "bad", Coeffs: map[int]float64{5: 1}, Relation: solver.LE, RHS: 1},
		},
	}
	require.Error(t, p.Validate())
}

func TestSolveRespectsTimeLimit(t *testing.T) {
	// A problem with enough variables that exhaustive search under a
	// near-zero time limit cannot possibly complete; expect either a
	// prompt no-incumbent result or a feasible (not proven optimal) one.
	n := 24
	obj := make([]float64, n)
	coeffs := make(map[int]float64, n)
	for i := 0; i < n; i++ {
		obj[i] = float64(i + 1)
		coeffs[i] = 1
	}
	p := &solver.Problem{
		NumVars:   n,
		Objective: obj,
		Constraints: []solver.Constraint{
			{Name: "atLeastHalf", Coeffs: coeffs, Relation: solver.GE, RHS: float64(n / 2)},
		},
	}

	b := solver.New()
	sol, err := b.Solve(context.Background(), p, time.Nanosecond)
	require.NoError(t, err)
	assert.Contains(t, []solver.Status{solver.StatusNoIncumbent, solver.StatusFeasible, solver.StatusSolved}, sol.Status)
}
