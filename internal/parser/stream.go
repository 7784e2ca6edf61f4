package parser

import (
	"strconv"

	"github.com/greqlkit/greql/internal/lexer"
	"github.com/greqlkit/greql/internal/types"
)

func (p *Parser) peek() lexer.Token {
	return p.tokens[p.pos]
}

// peekAt returns the token n positions after the cursor, or the EOF token
// when that runs past the end.
func (p *Parser) peekAt(n int) lexer.Token {
	if i := p.pos + n; i < len(p.tokens) {
		return p.tokens[i]
	}
	return p.tokens[len(p.tokens)-1]
}

func (p *Parser) check(kind lexer.TokenKind) bool {
	return p.tokens[p.pos].Kind == kind
}

func (p *Parser) checkAt(n int, kind lexer.TokenKind) bool {
	return p.peekAt(n).Kind == kind
}

func (p *Parser) isEOF() bool {
	return p.check(lexer.TokEOF)
}

// advance consumes the current token. The cursor never moves past EOF.
func (p *Parser) advance() lexer.Token {
	tok := p.tokens[p.pos]
	if tok.Kind != lexer.TokEOF {
		p.pos++
	}
	return tok
}

// accept consumes the current token if it has the given kind.
func (p *Parser) accept(kind lexer.TokenKind) bool {
	if p.check(kind) {
		p.advance()
		return true
	}
	return false
}

// expect consumes a token of the given kind or fails.
func (p *Parser) expect(kind lexer.TokenKind) lexer.Token {
	if !p.check(kind) {
		p.fail("expected " + describe(kind))
	}
	return p.advance()
}

func (p *Parser) expectIdentifier() lexer.Token {
	return p.expect(lexer.TokIdent)
}

func describe(kind lexer.TokenKind) string {
	if kind.IsKeyword() || kind.IsOperator() {
		return strconv.Quote(kind.String())
	}
	return kind.String()
}

// text returns the source text of a token.
func (p *Parser) text(tok lexer.Token) string {
	return p.source[tok.Span.Start:tok.Span.End]
}

// span covers the tokens in [start, end). An empty range yields an empty
// span at the start token.
func (p *Parser) span(start, end int) types.Span {
	first := p.tokens[min(start, len(p.tokens)-1)].Span
	if end <= start {
		return types.NewSpan(first.Start, first.Start)
	}
	return first.Cover(p.tokens[end-1].Span)
}

// syntaxError builds an error located at the current token.
func (p *Parser) syntaxError(message string) *types.SyntaxError {
	tok := p.peek()
	text := ""
	if tok.Kind != lexer.TokEOF {
		text = p.text(tok)
	}
	return &types.SyntaxError{
		Location: types.Location{Span: tok.Span, Source: p.source},
		Message:  message,
		Token:    text,
	}
}
