package jsonlog

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

type entry struct {
	Level      string            `json:"level"`
	Time       string            `json:"time"`
	Message    string            `json:"message"`
	Properties map[string]string `json:"properties"`
	Trace      string            `json:"trace"`
}

func decode(t *testing.T, buf *bytes.Buffer) entry {
	t.Helper()

	var e entry
	err := json.Unmarshal(buf.Bytes(), &e)
	if err != nil {
		t.Fatalf("log line is not JSON: %v: %q", err, buf.String())
	}

	return e
}

func TestInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, InfoLevel)

	logger.Info("starting server", map[string]string{"addr": ":5000"})

	e := decode(t, &buf)
	if e.Level != "info" {
		t.Errorf("level = %q, want info", e.Level)
	}
	if e.Message != "starting server" {
		t.Errorf("message = %q", e.Message)
	}
	if e.Properties["addr"] != ":5000" {
		t.Errorf("properties = %v", e.Properties)
	}
	if e.Time == "" {
		t.Error("time should be set")
	}
	if e.Trace != "" {
		t.Error("info entries should not carry a trace")
	}
}

func TestErrorCarriesTrace(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, InfoLevel)

	logger.Error(errors.New("boom"), nil)

	e := decode(t, &buf)
	if e.Level != "error" || e.Message != "boom" {
		t.Errorf("got level=%q message=%q", e.Level, e.Message)
	}
	if !strings.Contains(e.Trace, "goroutine") {
		t.Errorf("trace should contain a stack, got %q", e.Trace)
	}
	if e.Properties != nil {
		t.Errorf("empty properties should be omitted, got %v", e.Properties)
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, ErrorLevel)

	logger.Info("ignored", nil)
	if buf.Len() != 0 {
		t.Fatalf("info should be filtered at error level, got %q", buf.String())
	}

	logger.Error(errors.New("kept"), nil)
	if buf.Len() == 0 {
		t.Fatal("error should be written at error level")
	}
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, InfoLevel)

	n, err := logger.Write([]byte("http: TLS handshake error\n"))
	if err != nil {
		t.Fatal(err)
	}
	if n != len("http: TLS handshake error\n") {
		t.Errorf("n = %d", n)
	}

	e := decode(t, &buf)
	if e.Message != "http: TLS handshake error" {
		t.Errorf("message = %q", e.Message)
	}
}

func TestNilLevelDisables(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, NilLevel)

	logger.Error(errors.New("dropped"), nil)
	if buf.Len() != 0 {
		t.Fatalf("nil level should drop everything, got %q", buf.String())
	}
}

func TestLevelMapping(t *testing.T) {
	tests := []struct {
		level    Level
		expected zerolog.Level
	}{
		{InfoLevel, zerolog.InfoLevel},
		{ErrorLevel, zerolog.ErrorLevel},
		{FatalLevel, zerolog.FatalLevel},
		{NilLevel, zerolog.Disabled},
		{Level(42), zerolog.Disabled},
	}

	for _, tt := range tests {
		if got := tt.level.zerolog(); got != tt.expected {
			t.Errorf("Level(%d).zerolog() = %v, want %v", tt.level, got, tt.expected)
		}
	}
}
