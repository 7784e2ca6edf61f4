// Package types holds what the lexer, parser and rewrite passes share:
// source spans, located errors and the logging wrapper.
package types

import (
	"context"
	"log/slog"
)

// LevelTrace sits below slog.LevelDebug. The lexer logs each token and the
// parser each memo hit at this level.
const LevelTrace = slog.LevelDebug - 4

// Logger is embedded by the lexer, the parser and the rewriter. A nil L
// discards everything, so callers log without checking first.
type Logger struct {
	L *slog.Logger
}

// Enabled reports whether a record at level would be written.
func (l *Logger) Enabled(level slog.Level) bool {
	return l.L != nil && l.L.Enabled(context.Background(), level)
}

// Log writes msg with attrs at level.
func (l *Logger) Log(level slog.Level, msg string, attrs ...slog.Attr) {
	if l.Enabled(level) {
		l.L.LogAttrs(context.Background(), level, msg, attrs...)
	}
}

// TraceEnabled guards attribute construction on per-token paths.
func (l *Logger) TraceEnabled() bool {
	return l.Enabled(LevelTrace)
}

func (l *Logger) Trace(msg string, attrs ...slog.Attr) {
	l.Log(LevelTrace, msg, attrs...)
}

// ComponentLogger tags logger with component=name. A nil logger stays nil.
func ComponentLogger(logger *slog.Logger, name string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(slog.String("component", name))
}
