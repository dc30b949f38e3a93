package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in   string
		want Level
	}{
		{"debug", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"warning", LevelWarn},
		{"error", LevelError},
		{"nonsense", LevelInfo},
		{"", LevelInfo},
	}
	for _, tc := range cases {
		if got := ParseLevel(tc.in); got != tc.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestTextOutput(t *testing.T) {
	var buf bytes.Buffer
	InitLoggerTo(&buf, LevelInfo, FormatText)
	defer InitLogger(LevelInfo, FormatText)

	Info("module opened", "module", "KJV")
	out := buf.String()
	if !strings.Contains(out, "module opened") || !strings.Contains(out, "KJV") {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	InitLoggerTo(&buf, LevelInfo, FormatJSON)
	defer InitLogger(LevelInfo, FormatText)

	Warn("missing testament", "testament", "nt")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if entry["msg"] != "missing testament" || entry["testament"] != "nt" {
		t.Fatalf("unexpected entry: %v", entry)
	}
	if _, ok := entry["time"].(string); !ok {
		t.Fatal("time attribute missing")
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	InitLoggerTo(&buf, LevelWarn, FormatText)
	defer InitLogger(LevelInfo, FormatText)

	Debug("hidden")
	Info("hidden too")
	Warn("visible")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("low-severity entries leaked: %q", out)
	}
	if !strings.Contains(out, "visible") {
		t.Fatalf("warn entry missing: %q", out)
	}
}

func TestGetLogger(t *testing.T) {
	if GetLogger() == nil {
		t.Fatal("GetLogger returned nil")
	}
}
