package greql

import (
	"github.com/greqlkit/greql/internal/lexer"
)

// Token is a lexical token of a query, for inspection and tooling.
type Token struct {
	Kind   string `json:"kind" yaml:"kind"`
	Text   string `json:"text" yaml:"text"`
	Offset int    `json:"offset" yaml:"offset"`
	Length int    `json:"length" yaml:"length"`
}

// Tokenize splits a query into tokens. The final token is the end of
// query marker with empty text.
func Tokenize(text string) ([]Token, error) {
	toks, err := lexer.New([]byte(text), nil).Tokenize()
	if err != nil {
		return nil, err
	}
	out := make([]Token, len(toks))
	for i, t := range toks {
		out[i] = Token{
			Kind:   t.Kind.String(),
			Text:   text[t.Span.Start:t.Span.End],
			Offset: int(t.Span.Start),
			Length: int(t.Span.Len()),
		}
	}
	return out, nil
}
