// Package compress implements the compression orchestrator (spec.md
// §4.6): wiring internal/schema, internal/shortcutgen, internal/render,
// internal/ilp, internal/solver, and internal/decode into the single
// entry point a caller needs to turn a schema into prompt text.
package compress

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/steveyegge/schemacompress/internal/decode"
	"github.com/steveyegge/schemacompress/internal/ilp"
	"github.com/steveyegge/schemacompress/internal/render"
	"github.com/steveyegge/schemacompress/internal/schema"
	"github.com/steveyegge/schemacompress/internal/shortcutgen"
	"github.com/steveyegge/schemacompress/internal/solver"
)

// Compress runs one compression per spec.md §4.6: either the whole
// schema as a single ILP, or (when cfg.Split is set) one independent
// ILP per table with the outputs joined by newlines. One solver.Solver
// environment is created and used per ILP and never reused (spec.md
// §5's "one solver environment... per compression, destroyed
// afterward").
func Compress(ctx context.Context, s *schema.Schema, cfg Config, counter schema.TokenCounter, newSolver func() solver.Solver) (*Result, error) {
	if cfg.Split {
		return compressSplit(ctx, s, cfg, counter, newSolver)
	}
	return compressOne(ctx, s, cfg, counter, newSolver())
}

func compressSplit(ctx context.Context, s *schema.Schema, cfg Config, counter schema.TokenCounter, newSolver func() solver.Solver) (*Result, error) {
	if !s.CanSplit() {
		return nil, &Error{Kind: KindPrecondition, Err: fmt.Errorf("schema retains a multi-column PK or FK: split would break a cross-table constraint")}
	}

	tables := s.ByTable()
	if len(tables) == 0 {
		return nil, &Error{Kind: KindPrecondition, Err: fmt.Errorf("schema has no tables")}
	}

	agg := &Result{
		MaxDepth: cfg.Depth,
		TimeoutS: cfg.TimeoutSeconds,
		ContextK: cfg.ContextK,
		Start:    cfg.UseMIPStart,
		Hints:    cfg.UseHints,
		Merge:    cfg.UseMerge,
		Solved:   true,
	}

	var bodies []string
	for _, t := range tables {
		r, err := compressOne(ctx, t, cfg, counter, newSolver())
		if err != nil {
			var ce *Error
			if errors.As(err, &ce) {
				ce.Table = t.Tables[0].Name
			}
			return nil, err
		}

		bodies = append(bodies, r.Solution)
		agg.NrVariables += r.NrVariables
		agg.NrConstraints += r.NrConstraints
		if r.MaxLength > agg.MaxLength {
			agg.MaxLength = r.MaxLength
		}
		if r.MIPGap > agg.MIPGap {
			agg.MIPGap = r.MIPGap
		}
		agg.Solved = agg.Solved && r.Solved
	}

	agg.Solution = strings.Join(bodies, "\n")
	return agg, nil
}

func compressOne(ctx context.Context, s *schema.Schema, cfg Config, counter schema.TokenCounter, slv solver.Solver) (*Result, error) {
	if len(s.Identifiers()) == 0 {
		return nil, &Error{Kind: KindPrecondition, Err: fmt.Errorf("schema has no identifiers to compress")}
	}

	pool := cfg.ShortcutPool
	shortcuts, err := shortcutgen.Generate(s, cfg.ModelName, counter, pool)
	if err != nil {
		return nil, &Error{Kind: KindTokenizer, Err: err}
	}

	if cfg.UseMerge {
		s.MergeColumns()
	}

	opts := ilp.Options{
		MaxDepth:   cfg.Depth,
		ContextK:   cfg.ContextK,
		UseHints:   cfg.UseHints,
		UsePruning: true,
		UpperBound: cfg.UpperBound,
	}

	m, p, err := ilp.Build(s, cfg.ModelName, counter, shortcuts, opts)
	if err != nil {
		return nil, &Error{Kind: KindTokenizer, Err: err}
	}

	if !cfg.UseMIPStart {
		p.Start = nil
	}

	result := &Result{
		NrVariables:   p.NumVars,
		NrConstraints: len(p.Constraints),
		MaxLength:     m.L,
		MaxDepth:      cfg.Depth,
		TimeoutS:      cfg.TimeoutSeconds,
		ContextK:      cfg.ContextK,
		Start:         cfg.UseMIPStart,
		Hints:         cfg.UseHints,
		Merge:         cfg.UseMerge,
	}

	timeLimit := time.Duration(cfg.TimeoutSeconds) * time.Second
	sol, err := slv.Solve(ctx, p, timeLimit)
	if err != nil {
		return nil, &Error{Kind: KindSolver, Err: err}
	}

	switch sol.Status {
	case solver.StatusError:
		return nil, &Error{Kind: KindSolver, Err: sol.Err}
	case solver.StatusInfeasible, solver.StatusNoIncumbent:
		result.Solved = false
		result.MIPGap = sol.Gap
		return result, nil
	}

	result.Solved = true
	result.MIPGap = sol.Gap

	body, err := decode.Decode(m, sol.Assignment)
	if err != nil {
		return nil, &Error{Kind: KindSolver, Err: err}
	}
	result.Solution = body

	return result, nil
}
