package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"debug":   Debug,
		"":        Info,
		"WARNING": Warn,
		" error ": Error,
		"bogus":   Info,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestParseLevel_FoldsOtherZerologLevels(t *testing.T) {
	cases := map[string]Level{
		"trace": Debug,
		"fatal": Error,
		"panic": Error,
		"INFO":  Info,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestOptionsFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("APP_NAME", "crud-collections-api")

	opts := optionsFromEnv()
	if opts.Level != Warn || opts.Format != FormatJSON || opts.App != "crud-collections-api" {
		t.Fatalf("unexpected options: %+v", opts)
	}

	t.Setenv("LOG_LEVEL", "")
	t.Setenv("LOG_FORMAT", "")
	t.Setenv("APP_NAME", "")

	opts = optionsFromEnv()
	if opts.Level != Info || opts.Format != FormatText || opts.App != "" {
		t.Fatalf("unexpected defaults: %+v", opts)
	}

	if NewFromEnv() == nil {
		t.Fatalf("expected a logger")
	}
}

func TestJSONLogger_WritesFieldsAndRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: Info, Format: FormatJSON, App: "crud", Out: &buf})

	l.Debug("hidden", nil)
	l.With(map[string]any{"resource": "user"}).Warn("malformed identifier", map[string]any{"id": "x", "": "dropped"})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected exactly one line, got %d: %q", len(lines), buf.String())
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if entry["level"] != "warn" || entry["message"] != "malformed identifier" {
		t.Fatalf("unexpected entry: %v", entry)
	}
	if entry["app"] != "crud" || entry["resource"] != "user" || entry["id"] != "x" {
		t.Fatalf("missing fields: %v", entry)
	}
	if _, ok := entry[""]; ok {
		t.Fatalf("empty key should be dropped: %v", entry)
	}
}

func TestTextLogger(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: Debug, Format: FormatText, Out: &buf})

	l.Info("starting server", map[string]any{"addr": ":8080"})

	out := buf.String()
	if !strings.Contains(out, "starting server") || !strings.Contains(out, "addr=:8080") {
		t.Fatalf("unexpected text output: %q", out)
	}
}
