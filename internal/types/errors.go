package types

import (
	"fmt"
	"strings"
)

// Location ties an error to a span of the query text it was raised for.
type Location struct {
	Span   Span
	Source string
}

// Offset returns the byte offset of the offending span.
func (l Location) Offset() int {
	return int(l.Span.Start)
}

// Length returns the byte length of the offending span.
func (l Location) Length() int {
	return int(l.Span.Len())
}

// LineCol returns the 1-based line and column of the span start.
func (l Location) LineCol() (line, col int) {
	line, col = 1, 1
	end := min(int(l.Span.Start), len(l.Source))
	for i := 0; i < end; i++ {
		if l.Source[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return line, col
}

// Text returns the source text covered by the span, clamped to the source.
func (l Location) Text() string {
	start := min(int(l.Span.Start), len(l.Source))
	end := min(int(l.Span.End), len(l.Source))
	return l.Source[start:end]
}

// Excerpt renders the source line containing the span with a caret
// marker underneath, for terminal output.
func (l Location) Excerpt() string {
	start := min(int(l.Span.Start), len(l.Source))
	lineStart := strings.LastIndexByte(l.Source[:start], '\n') + 1
	lineEnd := strings.IndexByte(l.Source[start:], '\n')
	if lineEnd < 0 {
		lineEnd = len(l.Source)
	} else {
		lineEnd += start
	}
	width := max(1, min(int(l.Span.Len()), lineEnd-start))

	var b strings.Builder
	b.WriteString(l.Source[lineStart:lineEnd])
	b.WriteByte('\n')
	b.WriteString(strings.Repeat(" ", start-lineStart))
	b.WriteString(strings.Repeat("^", width))
	return b.String()
}

func (l Location) prefix() string {
	line, col := l.LineCol()
	return fmt.Sprintf("%d:%d", line, col)
}

// LexError is a fatal tokenization failure: unterminated string or
// comment, malformed number, or a character no lexeme starts with.
type LexError struct {
	Location
	Message string
	// Text holds the offending (possibly partial) lexeme.
	Text string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("%s: %s: %q", e.prefix(), e.Message, e.Text)
}

// SyntaxError is a grammar mismatch outside speculative parsing. When
// several alternatives fail, the instance carries the failure that got
// farthest into the token stream.
type SyntaxError struct {
	Location
	Message string
	// Token holds the text of the token the parser stopped at.
	Token string
}

func (e *SyntaxError) Error() string {
	if e.Token == "" {
		return fmt.Sprintf("%s: %s at end of query", e.prefix(), e.Message)
	}
	return fmt.Sprintf("%s: %s, found %q", e.prefix(), e.Message, e.Token)
}

// DuplicateVariableError reports a variable declared twice in one scope.
type DuplicateVariableError struct {
	Location
	Name string
	// Previous locates the earlier declaration of Name.
	Previous Span
}

func (e *DuplicateVariableError) Error() string {
	prev := Location{Span: e.Previous, Source: e.Source}
	return fmt.Sprintf("%s: duplicate variable %q (previously declared at %s)",
		e.prefix(), e.Name, prev.prefix())
}

// UndefinedVariableError reports a variable used without any visible
// declaration.
type UndefinedVariableError struct {
	Location
	Name string
}

func (e *UndefinedVariableError) Error() string {
	return fmt.Sprintf("%s: undefined variable %q", e.prefix(), e.Name)
}

// IllegalThisLiteralError reports thisVertex or thisEdge used outside a
// start, goal, or edge restriction.
type IllegalThisLiteralError struct {
	Location
	Literal string
}

func (e *IllegalThisLiteralError) Error() string {
	return fmt.Sprintf("%s: %s may only be used inside path restrictions", e.prefix(), e.Literal)
}
