package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"trace":   zerolog.TraceLevel,
		"DEBUG":   zerolog.DebugLevel,
		" warn ":  zerolog.WarnLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"":        zerolog.InfoLevel,
		"verbose": zerolog.InfoLevel,
	}
	for in, want := range tests {
		if got := parseLevel(in); got != want {
			t.Fatalf("parseLevel(%q): expected %v, got %v", in, want, got)
		}
	}
}

func TestInit_WritesJSONWithComponent(t *testing.T) {
	Reset()
	t.Cleanup(func() {
		Reset()
		zerolog.SetGlobalLevel(zerolog.TraceLevel)
	})

	var buf bytes.Buffer
	log := Init(Options{Level: "info", Output: &buf, Component: "api"})
	log.Debug().Msg("hidden")
	log.Info().Str("order_id", "SN-00001").Msg("order accepted")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d: %q", len(lines), buf.String())
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if entry["component"] != "api" || entry["order_id"] != "SN-00001" {
		t.Fatalf("unexpected entry: %v", entry)
	}

	// Second Init is ignored.
	var other bytes.Buffer
	Init(Options{Output: &other})
	again := Get()
	again.Info().Msg("again")
	if other.Len() != 0 {
		t.Fatalf("expected singleton to keep first output")
	}
}

func TestGet_PanicsBeforeInit(t *testing.T) {
	Reset()
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	Get()
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "browse.log")
	f, err := OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile returned error: %v", err)
	}
	_, _ = f.WriteString("hello\n")
	_ = f.Close()

	data, err := os.ReadFile(path)
	if err != nil || string(data) != "hello\n" {
		t.Fatalf("unexpected file content %q, err %v", data, err)
	}
}
