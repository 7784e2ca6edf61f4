package types

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestNilLoggerDiscards(t *testing.T) {
	var l Logger
	if l.Enabled(slog.LevelError) || l.TraceEnabled() {
		t.Fatal("zero Logger reports enabled")
	}
	l.Log(slog.LevelError, "dropped")
	l.Trace("dropped")
	if ComponentLogger(nil, "lexer") != nil {
		t.Error("ComponentLogger(nil) should stay nil")
	}
}

func TestComponentLoggerTrace(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: LevelTrace}))
	l := Logger{L: ComponentLogger(base, "parser")}
	if !l.TraceEnabled() {
		t.Fatal("trace should be enabled")
	}
	l.Trace("memo hit", slog.Int("pos", 3))

	out := buf.String()
	for _, want := range []string{"component=parser", "memo hit", "pos=3"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
	if LevelTrace != slog.Level(-8) {
		t.Errorf("LevelTrace = %d", LevelTrace)
	}
}
