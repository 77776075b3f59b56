package render

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestLoggerDefaultsToNop(t *testing.T) {
	if Logger().Enabled(t.Context(), slog.LevelError) {
		t.Error("default logger should discard everything")
	}
}

func TestSetLogger(t *testing.T) {
	var logs bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug})))
	defer SetLogger(nil)

	r := createTestRasterizer(t, 4, 4)
	if err := r.Resize(6, 2); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(logs.String(), "resized buffers") {
		t.Errorf("expected resize debug log, got %q", logs.String())
	}

	SetLogger(nil)
	if Logger().Enabled(t.Context(), slog.LevelError) {
		t.Error("SetLogger(nil) should restore the nop logger")
	}
}
