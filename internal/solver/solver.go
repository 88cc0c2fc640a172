package solver

import (
	"context"
	"time"
)

// Solver is the MILP capability the compressor needs: binary
// variables, linear constraints, a linear objective, an optional warm
// start, optional per-variable hints, and a wall-clock time limit,
// with the best incumbent (if any) and its relative gap reported back.
// No assumption is made about which concrete implementation runs
// behind this interface; BranchAndBound is this module's own.
type Solver interface {
	Solve(ctx context.Context, p *Problem, timeLimit time.Duration) (*Solution, error)
}

var _ Solver = (*BranchAndBound)(nil)
