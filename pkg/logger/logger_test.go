package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"trace":   zerolog.TraceLevel,
		"DEBUG":   zerolog.DebugLevel,
		" warn ":  zerolog.WarnLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"":        zerolog.InfoLevel,
		"bogus":   zerolog.InfoLevel,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNew_WritesJSONWithService(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Level: "info", Service: "notes-api", Output: &buf})

	log.Debug().Msg("hidden")
	log.Info().Str("k", "v").Msg("hello")

	var ev map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &ev); err != nil {
		t.Fatalf("expected a single JSON line, got %q: %v", buf.String(), err)
	}
	if ev["service"] != "notes-api" || ev["message"] != "hello" || ev["k"] != "v" {
		t.Fatalf("unexpected event %v", ev)
	}
}

func TestInitGetReset(t *testing.T) {
	Reset()
	defer Reset()

	defer func() {
		if recover() == nil {
			t.Fatal("expected Get to panic before Init")
		}
	}()

	var buf bytes.Buffer
	Init(Options{Output: &buf})
	cl := Component("test")
	cl.Info().Msg("ok")
	if !bytes.Contains(buf.Bytes(), []byte(`"component":"test"`)) {
		t.Fatalf("component field missing: %s", buf.String())
	}

	Reset()
	Get()
}
