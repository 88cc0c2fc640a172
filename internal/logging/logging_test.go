package logging_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/steveyegge/schemacompress/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJSONOutputEmitsValidJSONLines(t *testing.T) {
	var buf bytes.Buffer
	l := logging.New(&buf, true, slog.LevelInfo)
	l.Info("compressed schema", "table", "orders")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "compressed schema", entry["msg"])
	assert.Equal(t, "orders", entry["table"])
}

func TestNewTextOutputIsHumanReadable(t *testing.T) {
	var buf bytes.Buffer
	l := logging.New(&buf, false, slog.LevelInfo)
	l.Info("compressed schema", "table", "orders")

	assert.True(t, strings.Contains(buf.String(), "compressed schema"))
	assert.True(t, strings.Contains(buf.String(), "table=orders"))
}

func TestNewFiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	l := logging.New(&buf, false, slog.LevelWarn)
	l.Info("should not appear")
	assert.Empty(t, buf.String())
}

func TestDiscardDropsEverything(t *testing.T) {
	l := logging.Discard()
	l.Info("noop")
}
