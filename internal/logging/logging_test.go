package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup_NonTerminalDefaultsToJSON(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	logger := Setup(&buf, "info", "")
	logger.Info("notes_processed", "deal_id", "d-1")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "notes_processed", rec["msg"])
	assert.Equal(t, "d-1", rec["deal_id"])
}

func TestSetup_ForcedTextAndLevel(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	logger := Setup(&buf, "warn", "text")
	logger.Info("dropped")
	logger.Warn("kept", "k", "v")

	out := buf.String()
	assert.NotContains(t, out, "dropped")
	assert.Contains(t, out, "msg=kept")
	assert.Contains(t, out, "k=v")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("nonsense"))
}
