package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
)

func capture(level slog.Level) (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	h := slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: level})
	return NewWithHandler(h), &buf
}

func lastRecord(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	var rec map[string]any
	if err := json.Unmarshal(lines[len(lines)-1], &rec); err != nil {
		t.Fatalf("bad log line %q: %v", lines[len(lines)-1], err)
	}
	return rec
}

func TestModuleAttribute(t *testing.T) {
	logger, buf := capture(slog.LevelInfo)
	logger.Module("vm").Info("started", "steps", 3)

	rec := lastRecord(t, buf)
	if rec["module"] != "vm" {
		t.Errorf(`module = %v, want "vm"`, rec["module"])
	}
	if rec["msg"] != "started" {
		t.Errorf(`msg = %v, want "started"`, rec["msg"])
	}
	if rec["steps"] != float64(3) {
		t.Errorf("steps = %v, want 3", rec["steps"])
	}
}

func TestWithContext(t *testing.T) {
	logger, buf := capture(slog.LevelInfo)
	logger.With("pc", 7).Warn("fault")

	rec := lastRecord(t, buf)
	if rec["pc"] != float64(7) {
		t.Errorf("pc = %v, want 7", rec["pc"])
	}
}

func TestLevelFiltering(t *testing.T) {
	logger, buf := capture(slog.LevelInfo)
	logger.Debug("hidden")
	if buf.Len() != 0 {
		t.Errorf("debug line emitted at info level: %q", buf.String())
	}
	logger.Error("shown")
	if buf.Len() == 0 {
		t.Error("error line suppressed at info level")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"Warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tc := range tests {
		got, err := ParseLevel(tc.in)
		if err != nil || got != tc.want {
			t.Errorf("ParseLevel(%q) = %v, %v, want %v, nil", tc.in, got, err, tc.want)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Error(`ParseLevel("loud") succeeded, want error`)
	}
}

func TestSetDefault(t *testing.T) {
	old := Default()
	defer SetDefault(old)

	logger, buf := capture(slog.LevelInfo)
	SetDefault(logger)
	Info("hello")
	if buf.Len() == 0 {
		t.Error("package-level Info did not reach the default logger")
	}

	SetDefault(nil) // ignored
	if Default() != logger {
		t.Error("SetDefault(nil) replaced the default logger")
	}
}
