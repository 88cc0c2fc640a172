package solver

import (
	"context"
	"math"
	"time"
)

const eps = 1e-6

// BranchAndBound is a depth-first branch-and-bound solver over binary
// variables. It has no LP relaxation: because every objective
// coefficient the ILP builder produces is a nonnegative tokenizer
// weight, the partial sum over already-fixed variables is itself a
// valid (if weak) lower bound, which is enough to prune without
// needing a simplex implementation. spec.md explicitly allows this:
// "Exact minimization under the solver's time budget is not
// guaranteed; the system must return the best feasible assignment
// found and report the optimality gap."
type BranchAndBound struct {
	// CheckEvery controls how often (in explored nodes) the time
	// budget and context are polled; polling every node would be
	// correct but needlessly slow on deep trees.
	CheckEvery int
}

// New returns a BranchAndBound solver with sensible defaults.
func New() *BranchAndBound {
	return &BranchAndBound{CheckEvery: 2048}
}

type searchState struct {
	p          *Problem
	adjacency  [][]int
	x          []float64
	fixed      []bool
	best       []float64
	bestObj    float64
	nodes      int
	checkEvery int
	deadline   time.Time
	ctx        context.Context
	timedOut   bool
}

// Solve runs branch-and-bound until it proves optimality, exhausts the
// search space (infeasible), or the time limit / context elapses.
func (b *BranchAndBound) Solve(ctx context.Context, p *Problem, timeLimit time.Duration) (*Solution, error) {
	if err := p.Validate(); err != nil {
		return &Solution{Status: StatusError, Err: err}, err
	}

	adjacency := make([][]int, p.NumVars)
	for ci, c := range p.Constraints {
		for vi := range c.Coeffs {
			adjacency[vi] = append(adjacency[vi], ci)
		}
	}

	st := &searchState{
		p:          p,
		adjacency:  adjacency,
		x:          make([]float64, p.NumVars),
		fixed:      make([]bool, p.NumVars),
		bestObj:    0,
		checkEvery: b.CheckEvery,
		deadline:   time.Now().Add(timeLimit),
		ctx:        ctx,
	}
	if st.checkEvery <= 0 {
		st.checkEvery = 1
	}
	st.bestObj = math.Inf(1)

	if p.Start != nil && feasible(p, p.Start) {
		st.best = append([]float64(nil), p.Start...)
		st.bestObj = objectiveValue(p, p.Start)
	}

	st.search(0, 0)

	numConstrs := len(p.Constraints)
	if st.best == nil {
		if st.timedOut {
			return &Solution{Status: StatusNoIncumbent, NumVars: p.NumVars, NumConstrs: numConstrs}, nil
		}
		return &Solution{Status: StatusInfeasible, NumVars: p.NumVars, NumConstrs: numConstrs}, nil
	}

	status := StatusSolved
	gap := 0.0
	if st.timedOut {
		status = StatusFeasible
		if st.bestObj > eps {
			gap = 1.0 // no proven lower bound beyond 0 once time runs out early
		}
	}

	return &Solution{
		Status:     status,
		Assignment: st.best,
		Objective:  st.bestObj,
		Gap:        gap,
		NumVars:    p.NumVars,
		NumConstrs: numConstrs,
	}, nil
}

func (st *searchState) timeUp() bool {
	st.nodes++
	if st.nodes%st.checkEvery != 0 {
		return false
	}
	if st.ctx != nil {
		select {
		case <-st.ctx.Done():
			return true
		default:
		}
	}
	return time.Now().After(st.deadline)
}

// search assigns variable idx onward, given objSoFar = the objective
// contribution already committed by fixed variables [0,idx).
func (st *searchState) search(idx int, objSoFar float64) {
	if st.timedOut {
		return
	}
	if st.timeUp() {
		st.timedOut = true
		return
	}
	if objSoFar >= st.bestObj-eps {
		return
	}
	if idx == len(st.x) {
		if satisfiesAll(st.p, st.x) {
			st.best = append([]float64(nil), st.x...)
			st.bestObj = objSoFar
		}
		return
	}

	first, second := 0.0, 1.0
	if st.p.Hints != nil && st.p.Hints[idx] != nil && *st.p.Hints[idx] >= 0.5 {
		first, second = 1.0, 0.0
	}

	for _, v := range [2]float64{first, second} {
		st.x[idx] = v
		st.fixed[idx] = true
		if st.locallyFeasible(idx) {
			st.search(idx+1, objSoFar+st.p.Objective[idx]*v)
			if st.timedOut {
				st.fixed[idx] = false
				return
			}
		}
		st.fixed[idx] = false
	}
}

// locallyFeasible checks only the constraints touching the
// just-fixed variable idx, using interval bounds over the still-free
// variables; it is a necessary, not sufficient, condition, which is
// all that is needed to prune the search tree.
func (st *searchState) locallyFeasible(idx int) bool {
	for _, ci := range st.adjacency[idx] {
		c := st.p.Constraints[ci]
		minSum, maxSum := 0.0, 0.0
		for vi, coeff := range c.Coeffs {
			if st.fixed[vi] {
				v := coeff * st.x[vi]
				minSum += v
				maxSum += v
				continue
			}
			if coeff > 0 {
				maxSum += coeff
			} else {
				minSum += coeff
			}
		}
		switch c.Relation {
		case LE:
			if minSum > c.RHS+eps {
				return false
			}
		case GE:
			if maxSum < c.RHS-eps {
				return false
			}
		case EQ:
			if minSum > c.RHS+eps || maxSum < c.RHS-eps {
				return false
			}
		}
	}
	return true
}

func satisfiesAll(p *Problem, x []float64) bool {
	for _, c := range p.Constraints {
		if !c.Satisfied(x) {
			return false
		}
	}
	return true
}

func feasible(p *Problem, x []float64) bool {
	return len(x) == p.NumVars && satisfiesAll(p, x)
}

func objectiveValue(p *Problem, x []float64) float64 {
	total := 0.0
	for i, coeff := range p.Objective {
		total += coeff * x[i]
	}
	return total
}
