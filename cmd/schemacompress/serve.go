package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/steveyegge/schemacompress/internal/compress"
	sccfg "github.com/steveyegge/schemacompress/internal/config"
	"github.com/steveyegge/schemacompress/internal/schema"
	"github.com/steveyegge/schemacompress/internal/solver"
	"github.com/steveyegge/schemacompress/internal/tokenizer"
)

var (
	socketPath string
	pidFile    string
)

// request/response is the wire shape spoken over the serve socket:
// one schema per request, one compression result (or error) back.
type request struct {
	SchemaPath string `json:"schema_path"`
}

type response struct {
	Result *compress.Result `json:"result,omitempty"`
	Error  string           `json:"error,omitempty"`
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run a small daemon exposing compression over a local Unix socket",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		if pidFile != "" {
			if err := os.WriteFile(pidFile, []byte(strconv.Itoa(os.Getpid())), 0o600); err != nil {
				return fmt.Errorf("serve: write pidfile: %w", err)
			}
			defer func() { _ = os.Remove(pidFile) }()
		}

		_ = os.Remove(socketPath)
		listener, err := net.Listen("unix", socketPath)
		if err != nil {
			return fmt.Errorf("serve: listen on %s: %w", socketPath, err)
		}
		defer func() { _ = listener.Close() }()
		defer func() { _ = os.Remove(socketPath) }()

		logger.Info("schemacompress daemon started", "socket", socketPath)

		var mu sync.RWMutex
		cfg := compress.DefaultConfig()
		if profilePath != "" {
			if loaded, err := loadConfig(); err == nil {
				cfg = loaded
			} else {
				logger.Warn("serve: initial profile load failed, using defaults", "error", err)
			}

			go func() {
				err := sccfg.Watch(ctx, profilePath, logger, func(p sccfg.Profile) {
					mu.Lock()
					defer mu.Unlock()
					cfg = p.ToCompressConfig()
					logger.Info("serve: reloaded compression profile", "path", profilePath)
				})
				if err != nil {
					logger.Warn("serve: profile watcher stopped", "error", err)
				}
			}()
		}

		go func() {
			<-ctx.Done()
			logger.Info("schemacompress daemon shutting down")
			_ = listener.Close()
		}()

		counter := tokenizer.Memoize(tokenizer.Heuristic{})

		for {
			conn, err := listener.Accept()
			if err != nil {
				select {
				case <-ctx.Done():
					return nil
				default:
					logger.Error("serve: accept failed", "error", err)
					continue
				}
			}

			go func() {
				defer func() { _ = conn.Close() }()
				mu.RLock()
				active := cfg
				mu.RUnlock()
				handleConn(ctx, conn, active, counter)
			}()
		}
	},
}

func handleConn(ctx context.Context, conn net.Conn, cfg compress.Config, counter schema.TokenCounter) {
	dec := json.NewDecoder(bufio.NewReader(conn))
	enc := json.NewEncoder(conn)

	var req request
	if err := dec.Decode(&req); err != nil {
		_ = enc.Encode(response{Error: err.Error()})
		return
	}

	s, err := schema.LoadYAML(req.SchemaPath)
	if err != nil {
		_ = enc.Encode(response{Error: err.Error()})
		return
	}

	result, err := compress.Compress(ctx, s, cfg, counter, func() solver.Solver { return solver.New() })
	if err != nil {
		_ = enc.Encode(response{Error: err.Error()})
		return
	}
	_ = enc.Encode(response{Result: result})
}

func init() {
	serveCmd.Flags().StringVar(&socketPath, "socket", defaultSocketPath(), "Unix socket path to listen on")
	serveCmd.Flags().StringVar(&pidFile, "pidfile", "", "Write the daemon's PID to this file")
}

func defaultSocketPath() string {
	return fmt.Sprintf("/tmp/schemacompressd-%d.sock", os.Getuid())
}

