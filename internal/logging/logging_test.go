package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARNING": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNew_JSONErrorCarriesStack(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "INFO", "json")

	logger.Debug("hidden")
	logger.Error("store failed", "id", 7)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 record, got %d: %q", len(lines), buf.String())
	}
	var rec map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if rec["msg"] != "store failed" || rec["stacktrace"] == nil {
		t.Errorf("record = %v", rec)
	}
}

func TestNew_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, "DEBUG", "text").Warn("slow query")
	if !strings.Contains(buf.String(), "level=WARN") || !strings.Contains(buf.String(), `msg="slow query"`) {
		t.Errorf("output = %q", buf.String())
	}
}
