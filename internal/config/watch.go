package config

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads the profile at path whenever it changes on disk and
// invokes onChange with the freshly decoded value, grounded on the
// teacher's show_display.go watch loop (fsnotify.NewWatcher, watch
// the containing directory, filter events down to the file of
// interest, re-run the same load-and-render path on each write).
// Watch blocks until ctx is canceled or the watcher fails to start.
func Watch(ctx context.Context, path string, logger *slog.Logger, onChange func(Profile)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return err
	}

	target := filepath.Base(path)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			p, err := Load(path)
			if err != nil {
				logger.Warn("config: reload failed", "path", path, "error", err)
				continue
			}
			onChange(p)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("config: watcher error", "error", err)
		}
	}
}
