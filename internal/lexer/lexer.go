package lexer

import (
	"log/slog"
	"strconv"

	"github.com/greqlkit/greql/internal/types"
)

// Lexer tokenizes GReQL query text. It is a pure producer and keeps no
// reference to parser state.
type Lexer struct {
	source []byte
	pos    int
	types.Logger
}

// New returns a Lexer that tokenizes the given source bytes.
func New(source []byte, logger *slog.Logger) *Lexer {
	l := &Lexer{
		source: source,
		Logger: types.Logger{L: logger},
	}
	l.Log(slog.LevelDebug, "lexer initialized", slog.Int("bytes", len(source)))
	return l
}

func (l *Lexer) traceToken(tok Token) {
	if l.TraceEnabled() {
		l.Trace("token",
			slog.String("kind", tok.Kind.String()),
			slog.Int("start", int(tok.Span.Start)),
			slog.Int("end", int(tok.Span.End)))
	}
}

// Tokenize consumes all source text and returns the token stream, which
// always ends with exactly one TokEOF. Lexical errors are fatal: the
// first one stops tokenization and is returned as a *types.LexError.
func (l *Lexer) Tokenize() ([]Token, error) {
	estimatedTokens := max(len(l.source)/4, 16)
	tokens := make([]Token, 0, estimatedTokens)
	for {
		tok, err := l.NextToken()
		if err != nil {
			l.Log(slog.LevelDebug, "tokenization failed",
				slog.Int("tokens", len(tokens)),
				slog.String("error", err.Error()))
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Kind == TokEOF {
			break
		}
	}
	l.Log(slog.LevelDebug, "tokenization complete", slog.Int("tokens", len(tokens)))
	return tokens, nil
}

// NextToken advances the lexer and returns the next token.
// Returns TokEOF when all input is consumed.
func (l *Lexer) NextToken() (Token, error) {
	if err := l.skipTrivia(); err != nil {
		return Token{}, err
	}

	start := l.pos
	b, ok := l.peek()
	if !ok {
		return l.token(TokEOF, start), nil
	}

	switch {
	case b == '"' || b == '\'':
		return l.scanString()
	case isDigit(b):
		return l.scanNumber()
	case isIdentStart(b):
		return l.scanIdentifierOrKeyword(), nil
	}

	if op, ok := matchOperator(l.source[l.pos:]); ok {
		l.pos += len(op.text)
		return l.token(op.kind, start), nil
	}

	l.advance()
	return Token{}, l.error(start, "unrecognized character")
}

func (l *Lexer) peek() (byte, bool) {
	if l.pos >= len(l.source) {
		return 0, false
	}
	return l.source[l.pos], true
}

func (l *Lexer) peekAt(offset int) (byte, bool) {
	idx := l.pos + offset
	if idx >= len(l.source) {
		return 0, false
	}
	return l.source[idx], true
}

func (l *Lexer) peekIs(offset int, pred func(byte) bool) bool {
	b, ok := l.peekAt(offset)
	return ok && pred(b)
}

func (l *Lexer) advance() (byte, bool) {
	if l.pos >= len(l.source) {
		return 0, false
	}
	b := l.source[l.pos]
	l.pos++
	return b, true
}

func (l *Lexer) skipWhile(pred func(byte) bool) {
	for l.peekIs(0, pred) {
		l.pos++
	}
}

// skipTrivia skips whitespace, line comments and block comments.
func (l *Lexer) skipTrivia() error {
	for {
		l.skipWhile(isSpace)
		b, ok := l.peek()
		if !ok || b != '/' {
			return nil
		}
		next, _ := l.peekAt(1)
		switch next {
		case '/':
			l.skipWhile(func(b byte) bool { return b != '\n' })
		case '*':
			start := l.pos
			l.pos += 2
			for {
				c, ok := l.advance()
				if !ok {
					return l.error(start, "unterminated block comment")
				}
				if c == '*' && l.peekIs(0, func(b byte) bool { return b == '/' }) {
					l.pos++
					break
				}
			}
		default:
			return nil
		}
	}
}

func (l *Lexer) error(start int, message string) *types.LexError {
	return &types.LexError{
		Location: types.Location{
			Span:   types.NewSpan(types.ByteOffset(start), types.ByteOffset(l.pos)),
			Source: string(l.source),
		},
		Message: message,
		Text:    string(l.source[start:l.pos]),
	}
}

func (l *Lexer) spanFrom(start int) types.Span {
	return types.Span{
		Start: types.ByteOffset(start),
		End:   types.ByteOffset(l.pos),
	}
}

func (l *Lexer) token(kind TokenKind, start int) Token {
	tok := Token{
		Kind: kind,
		Span: l.spanFrom(start),
	}
	l.traceToken(tok)
	return tok
}

// scanString scans a quoted literal. A backslash protects the following
// character from ending the literal; both characters are kept verbatim.
func (l *Lexer) scanString() (Token, error) {
	start := l.pos
	quote, _ := l.advance()

	for {
		b, ok := l.advance()
		if !ok {
			return Token{}, l.error(start, "unterminated string")
		}
		if b == '\\' {
			if _, ok := l.advance(); !ok {
				return Token{}, l.error(start, "unterminated string")
			}
			continue
		}
		if b == quote {
			break
		}
	}

	tok := l.token(TokString, start)
	tok.Text = string(l.source[start+1 : l.pos-1])
	return tok, nil
}

// scanNumber scans an integer (decimal, 0x hex, leading-zero octal) or a
// double. An integer directly followed by ".." stays an integer so that
// ranges like 1..5 lex as three tokens.
func (l *Lexer) scanNumber() (Token, error) {
	start := l.pos

	if l.source[l.pos] == '0' && l.peekIs(1, func(b byte) bool { return b == 'x' || b == 'X' }) {
		l.pos += 2
		digits := l.pos
		l.skipWhile(isHexDigit)
		if l.pos == digits || l.peekIs(0, isIdentPart) {
			l.skipWhile(isIdentPart)
			return Token{}, l.error(start, "not a valid number")
		}
		v, err := strconv.ParseInt(string(l.source[digits:l.pos]), 16, 64)
		if err != nil {
			return Token{}, l.error(start, "not a valid number")
		}
		tok := l.token(TokInt, start)
		tok.Int = v
		return tok, nil
	}

	l.skipWhile(isDigit)
	isFloat := false
	if l.peekIs(0, isDot) && l.peekIs(1, isDigit) {
		l.pos++
		l.skipWhile(isDigit)
		isFloat = true
	}
	if l.peekIs(0, isExponent) {
		n := 1
		if l.peekIs(1, isSign) {
			n = 2
		}
		if l.peekIs(n, isDigit) {
			l.pos += n
			l.skipWhile(isDigit)
			isFloat = true
		}
	}
	if l.peekIs(0, isIdentPart) {
		l.skipWhile(isIdentPart)
		return Token{}, l.error(start, "not a valid number")
	}

	text := string(l.source[start:l.pos])
	if isFloat {
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return Token{}, l.error(start, "not a valid number")
		}
		tok := l.token(TokDouble, start)
		tok.Float = v
		return tok, nil
	}

	base := 10
	if len(text) > 1 && text[0] == '0' {
		base = 8
		text = text[1:]
	}
	v, err := strconv.ParseInt(text, base, 64)
	if err != nil {
		return Token{}, l.error(start, "not a valid number")
	}
	tok := l.token(TokInt, start)
	tok.Int = v
	return tok, nil
}

func (l *Lexer) scanIdentifierOrKeyword() Token {
	start := l.pos
	l.advance()
	l.skipWhile(isIdentPart)

	text := string(l.source[start:l.pos])

	if kind, ok := LookupKeyword(text); ok {
		if kind == TokKwExists && l.peekIs(0, func(b byte) bool { return b == '!' }) {
			l.pos++
			kind = TokKwExistsOne
		}
		return l.token(kind, start)
	}

	if v, ok := doubleNames[text]; ok {
		tok := l.token(TokDouble, start)
		tok.Float = v
		return tok
	}

	tok := l.token(TokIdent, start)
	tok.Text = text
	return tok
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n' || b == '\f'
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isHexDigit(b byte) bool {
	return isDigit(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

func isAlpha(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentStart(b byte) bool {
	return isAlpha(b) || b == '_' || b == '$'
}

func isIdentPart(b byte) bool {
	return isAlpha(b) || isDigit(b) || b == '_'
}

func isDot(b byte) bool      { return b == '.' }
func isExponent(b byte) bool { return b == 'e' || b == 'E' }
func isSign(b byte) bool     { return b == '+' || b == '-' }
