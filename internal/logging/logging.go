// Package logging builds the structured logger every command and
// library entrypoint shares, grounded on the teacher's daemonLogger /
// newSilentLogger use of log/slog with a swappable Handler.
package logging

import (
	"io"
	"log/slog"
	"os"
)

// New builds a logger writing to w (os.Stderr when w is nil) at the
// given level. jsonOutput selects slog.NewJSONHandler for machine
// consumption (batch runs, CI); otherwise a human-readable
// slog.NewTextHandler is used, matching the teacher's interactive
// default.
func New(w io.Writer, jsonOutput bool, level slog.Level) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if jsonOutput {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// Discard returns a logger that drops everything, for tests and
// library callers who don't want schemacompress's own logging.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
