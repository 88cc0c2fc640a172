// Package batch runs compress.Compress concurrently over many named
// schemas and folds the outcomes into an export.Manifest, grounded on
// skeema's errgroup.WithContext fan-out for per-table introspection
// queries (one goroutine per item, a shared derived context, each
// result appended to the manifest under a mutex, so entries appear in
// completion order rather than input order).
package batch

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/steveyegge/schemacompress/internal/compress"
	"github.com/steveyegge/schemacompress/internal/export"
	"github.com/steveyegge/schemacompress/internal/schema"
	"github.com/steveyegge/schemacompress/internal/solver"
)

// Item is one named schema to compress as part of a batch run.
type Item struct {
	Name   string
	Schema *schema.Schema
}

// Run compresses every item concurrently (bounded by
// runtime.GOMAXPROCS(0), matching the teacher's unbounded-but-CPU-sized
// fan-out since the solver itself is CPU-bound), recording each
// outcome into an export.Manifest according to policy. An item whose
// compression returns an error, or finishes without a solved result,
// is recorded as a failed entry rather than aborting the batch, unless
// policy is export.PolicyFailFast, in which case Run returns an error
// naming the first such item.
func Run(ctx context.Context, items []Item, cfg compress.Config, policy export.ErrorPolicy, counter schema.TokenCounter, newSolver func() solver.Solver, metrics *export.Metrics) (*export.Manifest, error) {
	manifest := export.NewManifest(policy)

	sem := make(chan struct{}, runtime.GOMAXPROCS(0))
	g, gctx := errgroup.WithContext(ctx)

	var mu sync.Mutex
	for _, item := range items {
		item := item
		g.Go(func() error {
			sem <- struct{}{}
			defer func() { <-sem }()

			start := time.Now()
			entry := compressOne(gctx, item, cfg, counter, newSolver)
			elapsed := float64(time.Since(start).Milliseconds())

			mu.Lock()
			manifest.Record(entry)
			mu.Unlock()

			metrics.RecordEntry(gctx, entry, elapsed)

			if policy == export.PolicyFailFast && (entry.Error != "" || !entry.Solved) {
				reason := entry.Error
				if reason == "" {
					reason = "not solved"
				}
				return fmt.Errorf("batch: %s: %s", item.Name, reason)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return manifest, err
	}
	if policy == export.PolicyPartial {
		manifest.Complete = false
	}
	return manifest, nil
}

func compressOne(ctx context.Context, item Item, cfg compress.Config, counter schema.TokenCounter, newSolver func() solver.Solver) export.Entry {
	result, err := compress.Compress(ctx, item.Schema, cfg, counter, newSolver)
	if err != nil {
		return export.Entry{Name: item.Name, Error: err.Error()}
	}
	return export.Entry{
		Name:          item.Name,
		Solved:        result.Solved,
		NrVariables:   result.NrVariables,
		NrConstraints: result.NrConstraints,
		MIPGap:        result.MIPGap,
		MaxLength:     result.MaxLength,
	}
}
