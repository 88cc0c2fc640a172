package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/steveyegge/schemacompress/internal/logging"
)

var (
	jsonOutput  bool
	verboseFlag bool
	profilePath string
	logger      *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "schemacompress",
	Short: "schemacompress - token-minimizing schema-to-prompt compressor",
	Long:  `Compresses a relational database schema into a compact, parenthesis-nested text encoding for LLM prompts.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verboseFlag {
			level = slog.LevelDebug
		}
		logger = logging.New(os.Stderr, jsonOutput, level)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Write log records as JSON")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable verbose/debug logging")
	rootCmd.PersistentFlags().StringVar(&profilePath, "profile", "", "Compression profile file (.yaml or .toml); defaults are used when absent")

	rootCmd.AddCommand(compressCmd)
	rootCmd.AddCommand(benchCmd)
	rootCmd.AddCommand(serveCmd)
}
