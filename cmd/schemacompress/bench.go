package main

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"go.opentelemetry.io/otel"
	stdoutmetric "go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/steveyegge/schemacompress/internal/batch"
	"github.com/steveyegge/schemacompress/internal/export"
	"github.com/steveyegge/schemacompress/internal/schema"
	"github.com/steveyegge/schemacompress/internal/solver"
	"github.com/steveyegge/schemacompress/internal/tokenizer"
)

var (
	benchPolicy         string
	manifestOut         string
	otelFlag            bool
	benchRetryAttempts  int
	benchRetryBackoffMS int
	benchSkipTokenizer  bool
)

// flagConfigStore backs export.ConfigStore with whichever bench flags
// the operator actually set, so a flag left at its zero value falls
// through to export.LoadConfig's own defaults instead of shadowing
// them.
type flagConfigStore struct {
	values map[string]string
}

func (s flagConfigStore) GetConfig(_ context.Context, key string) (string, error) {
	return s.values[key], nil
}

var benchCmd = &cobra.Command{
	Use:   "bench <dir>",
	Short: "Batch-compress every schema file in a directory and report a manifest",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		paths, err := filepath.Glob(filepath.Join(args[0], "*.yaml"))
		if err != nil {
			return fmt.Errorf("bench: %w", err)
		}
		sort.Strings(paths)
		if len(paths) == 0 {
			return fmt.Errorf("bench: no *.yaml schema files found in %s", args[0])
		}

		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("bench: %w", err)
		}

		var items []batch.Item
		for _, p := range paths {
			s, err := schema.LoadYAML(p)
			if err != nil {
				return fmt.Errorf("bench: %w", err)
			}
			items = append(items, batch.Item{Name: filepath.Base(p), Schema: s})
		}

		if otelFlag {
			shutdown, err := setupOTelMetrics()
			if err != nil {
				return fmt.Errorf("bench: %w", err)
			}
			defer func() { _ = shutdown(cmd.Context()) }()
		}

		// Resolve the batch run's export settings through
		// export.LoadConfig, backed by whichever flags were actually
		// passed, so --policy (and the retry/skip/manifest knobs) flow
		// through the same Config/ConfigStore contract the teacher's
		// export package defines, rather than a bare string conversion.
		values := map[string]string{}
		if cmd.Flags().Changed("policy") {
			values[export.ConfigKeyErrorPolicy] = benchPolicy
		}
		if cmd.Flags().Changed("retry-attempts") {
			values[export.ConfigKeyRetryAttempts] = strconv.Itoa(benchRetryAttempts)
		}
		if cmd.Flags().Changed("retry-backoff-ms") {
			values[export.ConfigKeyRetryBackoffMS] = strconv.Itoa(benchRetryBackoffMS)
		}
		if cmd.Flags().Changed("skip-tokenizer-failures") {
			values[export.ConfigKeySkipTokenizerFails] = strconv.FormatBool(benchSkipTokenizer)
		}
		if cmd.Flags().Changed("manifest") {
			values[export.ConfigKeyWriteManifest] = strconv.FormatBool(manifestOut != "")
		}

		exportCfg, err := export.LoadConfig(cmd.Context(), flagConfigStore{values: values}, false)
		if err != nil {
			return fmt.Errorf("bench: %w", err)
		}

		counter := tokenizer.Memoize(tokenizer.Heuristic{})
		metrics := export.NewMetrics()

		manifest, err := batch.Run(cmd.Context(), items, cfg, exportCfg.Policy, counter, func() solver.Solver { return solver.New() }, metrics)
		if err != nil {
			return fmt.Errorf("bench: %w", err)
		}

		for _, e := range manifest.Entries {
			fmt.Printf("%s\tsolved=%v\tvars=%d\tconstraints=%d\tgap=%.4f\n", e.Name, e.Solved, e.NrVariables, e.NrConstraints, e.MIPGap)
		}

		if manifestOut != "" && exportCfg.WriteManifest {
			// WriteManifest derives the manifest path from a ".jsonl"
			// results sibling; bench has no such file, so manifestOut is
			// taken as that sibling path and the actual manifest lands
			// at manifestOut with ".jsonl" replaced by ".manifest.json".
			if err := export.WriteManifest(manifestOut, manifest); err != nil {
				return fmt.Errorf("bench: write manifest: %w", err)
			}
		}
		return nil
	},
}

func init() {
	benchCmd.Flags().StringVar(&benchPolicy, "policy", string(export.DefaultErrorPolicy), "Error policy: fail-fast, best-effort, or partial")
	benchCmd.Flags().StringVar(&manifestOut, "manifest", "", "Write a manifest summarizing the run to this path")
	benchCmd.Flags().BoolVar(&otelFlag, "otel", false, "Publish schemas_total/schemas_failed/compress_ms/mip_gap metrics to stdout")
	benchCmd.Flags().IntVar(&benchRetryAttempts, "retry-attempts", export.DefaultRetryAttempts, "Tokenizer retry attempts recorded in the run's export config (bench's built-in tokenizer makes no retries)")
	benchCmd.Flags().IntVar(&benchRetryBackoffMS, "retry-backoff-ms", export.DefaultRetryBackoffMS, "Tokenizer retry backoff in milliseconds recorded in the run's export config (bench's built-in tokenizer makes no retries)")
	benchCmd.Flags().BoolVar(&benchSkipTokenizer, "skip-tokenizer-failures", export.DefaultSkipEncodingErrors, "Recorded in the run's export config; tokenizer failures are still recorded as failed entries")
}

// setupOTelMetrics installs a real MeterProvider backed by the stdout
// exporter for the duration of one bench run, so --otel has something
// to publish to beyond the no-op default global MeterProvider.
// internal/export.Metrics itself is agnostic to which provider is
// installed; this is purely a CLI convenience.
func setupOTelMetrics() (func(ctx context.Context) error, error) {
	exporter, err := stdoutmetric.New()
	if err != nil {
		return nil, fmt.Errorf("create stdout metric exporter: %w", err)
	}
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter)))
	otel.SetMeterProvider(provider)
	return func(ctx context.Context) error {
		return provider.Shutdown(ctx)
	}, nil
}
