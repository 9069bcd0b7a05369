package logger

import (
	"bytes"
	"context"
	"encoding/json/v2"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"ERROR", slog.LevelError},
		{"verbose", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLevel(tt.in), "ParseLevel(%q)", tt.in)
	}
}

func TestNewProductionUsesJSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Writer: &buf, Environment: "production"})

	log.Info("book created", "book_id", "book-7Hq2", "title", "The Night Circus")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "book created", record["msg"])
	assert.Equal(t, "book-7Hq2", record["book_id"])
	assert.Equal(t, "The Night Circus", record["title"])
}

func TestNewDevelopmentUsesPretty(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Writer: &buf, Environment: "development"})

	log.Info("thread imported", "permalink", "/r/suggestmeabook/abc123")

	out := buf.String()
	assert.Contains(t, out, "INF")
	assert.Contains(t, out, "thread imported")
	assert.Contains(t, out, "permalink=/r/suggestmeabook/abc123")
	// Pretty output is a single line, not JSON.
	assert.False(t, strings.HasPrefix(strings.TrimSpace(out), "{"))
}

func TestNewExplicitFormatWins(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Writer: &buf, Environment: "development", Format: FormatJSON})

	log.Info("reindex complete", "documents", 42)

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "reindex complete", record["msg"])
}

func TestPrettyHandlerLevels(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Writer: &buf, Level: slog.LevelWarn})

	log.Debug("provider cache miss")
	log.Info("search served")
	log.Warn("goodreads timed out")
	log.Error("database unavailable")

	out := buf.String()
	assert.NotContains(t, out, "provider cache miss")
	assert.NotContains(t, out, "search served")
	assert.Contains(t, out, "WRN")
	assert.Contains(t, out, "goodreads timed out")
	assert.Contains(t, out, "ERR")
	assert.Contains(t, out, "database unavailable")
}

func TestPrettyHandlerWithAttrs(t *testing.T) {
	var buf bytes.Buffer
	handler := NewPrettyHandler(&buf, nil)
	log := slog.New(handler).With("provider", "openlibrary")

	log.Info("search finished", "results", 12)

	out := buf.String()
	assert.Contains(t, out, "provider=openlibrary")
	assert.Contains(t, out, "results=12")
}

func TestPrettyHandlerWithGroup(t *testing.T) {
	var buf bytes.Buffer
	handler := NewPrettyHandler(&buf, nil)
	log := slog.New(handler).WithGroup("import")

	log.Info("run finished", "created", 3)

	assert.Contains(t, buf.String(), "import.created=3")
}

func TestPrettyHandlerEnabled(t *testing.T) {
	quiet := NewPrettyHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelError})
	assert.False(t, quiet.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, quiet.Enabled(context.Background(), slog.LevelError))

	defaulted := NewPrettyHandler(&bytes.Buffer{}, nil)
	assert.False(t, defaulted.Enabled(context.Background(), slog.LevelDebug))
	assert.True(t, defaulted.Enabled(context.Background(), slog.LevelInfo))
}

func TestPrettyHandlerAddSource(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Writer: &buf, AddSource: true})

	log.Info("cover stored")

	assert.Contains(t, buf.String(), "logger_test.go:")
}
