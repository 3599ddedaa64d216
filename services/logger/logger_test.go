package logger

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriter(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("unibordima", "warn", &buf)

	log.Info("hidden")
	log.Warn("shown", "listing_id", 3)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "shown", entry["msg"])
	assert.Equal(t, "unibordima", entry["service"])
	assert.Equal(t, float64(3), entry["listing_id"])
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, slog.Default(), FromContext(ctx))

	log := Discard()
	ctx = NewContext(ctx, log)
	assert.Equal(t, log, FromContext(ctx))
}
