package logging

import (
	"context"
	"log/slog"
	"strings"
	"testing"

	"lyricagent/internal/services"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"bogus", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := parseLevel(tt.in); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestConsoleHandlerOutput(t *testing.T) {
	var sb strings.Builder
	lvl := new(slog.LevelVar)
	logger := slog.New(newConsoleHandler(&sb, lvl, false))

	logger.Info("lyrics fetched", String(FieldComponent, "lyrics"), Int("chars", 1420))

	out := sb.String()
	if !strings.Contains(out, "[lyrics]") {
		t.Errorf("missing component prefix: %q", out)
	}
	if !strings.Contains(out, "lyrics fetched") {
		t.Errorf("missing message: %q", out)
	}
	if !strings.Contains(out, "chars=1420") {
		t.Errorf("missing attr: %q", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Errorf("color codes emitted with color disabled: %q", out)
	}
}

func TestConsoleHandlerQuotesSpacedValues(t *testing.T) {
	var sb strings.Builder
	lvl := new(slog.LevelVar)
	logger := slog.New(newConsoleHandler(&sb, lvl, false))

	logger.Info("resolved", String("artist", "Artist X"))

	if !strings.Contains(sb.String(), `artist="Artist X"`) {
		t.Errorf("spaced value not quoted: %q", sb.String())
	}
}

func TestWithContextCarriesRunFields(t *testing.T) {
	var sb strings.Builder
	lvl := new(slog.LevelVar)
	base := slog.New(newConsoleHandler(&sb, lvl, false))

	ctx := services.WithRunID(context.Background(), "run-1")
	ctx = services.WithStage(ctx, "metrics")
	ctx = services.WithTrack(ctx, "Song A")

	WithContext(ctx, base).Info("computed")

	out := sb.String()
	for _, want := range []string{"run_id=run-1", "stage=metrics", `track="Song A"`} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}

func TestNewNopDiscards(t *testing.T) {
	logger := NewNop()
	logger.Info("should not panic")
	if logger.Enabled(context.Background(), slog.LevelError) {
		t.Error("noop logger reports enabled")
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Error("expected error for unsupported format")
	}
}
