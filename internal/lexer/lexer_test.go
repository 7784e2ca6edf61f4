package lexer

import (
	"errors"
	"math"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/greqlkit/greql/internal/types"
)

func tokenize(t *testing.T, source string) []Token {
	t.Helper()
	tokens, err := New([]byte(source), nil).Tokenize()
	require.NoError(t, err, "tokenize %q", source)
	return tokens
}

func tokenKinds(t *testing.T, source string) []TokenKind {
	t.Helper()
	tokens := tokenize(t, source)
	kinds := make([]TokenKind, len(tokens))
	for i, tok := range tokens {
		kinds[i] = tok.Kind
	}
	return kinds
}

func tokenTexts(t *testing.T, source string) []string {
	t.Helper()
	var texts []string
	for _, tok := range tokenize(t, source) {
		if tok.Kind != TokEOF {
			texts = append(texts, source[tok.Span.Start:tok.Span.End])
		}
	}
	return texts
}

func lexError(t *testing.T, source string) *types.LexError {
	t.Helper()
	_, err := New([]byte(source), nil).Tokenize()
	require.Error(t, err, "tokenize %q", source)
	var lexErr *types.LexError
	require.True(t, errors.As(err, &lexErr), "expected *LexError, got %T", err)
	return lexErr
}

func TestKeywordTableSorted(t *testing.T) {
	texts := make([]string, len(keywords))
	for i, kw := range keywords {
		texts[i] = kw.text
		require.Equal(t, fixedLexemes[kw.kind], kw.text, "lexeme table mismatch")
	}
	require.True(t, slices.IsSortedFunc(texts, strings.Compare),
		"keyword table must stay sorted for binary search")
}

func TestEmptyInput(t *testing.T) {
	require.Equal(t, []TokenKind{TokEOF}, tokenKinds(t, ""))
	require.Equal(t, []TokenKind{TokEOF}, tokenKinds(t, "  \n\t // only a comment"))
}

func TestExactlyOneEOF(t *testing.T) {
	tokens := tokenize(t, "from x : V report x end")
	require.Equal(t, TokEOF, tokens[len(tokens)-1].Kind)
	for _, tok := range tokens[:len(tokens)-1] {
		require.NotEqual(t, TokEOF, tok.Kind)
	}
	require.Equal(t, types.ByteOffset(23), tokens[len(tokens)-1].Span.Start)
}

func TestPathOperatorsLongestMatch(t *testing.T) {
	kinds := tokenKinds(t, "--> <-- <-> <>-- --<> -- <- -> -< - <> < :-) : :=")
	expected := []TokenKind{
		TokOutEdge, TokInEdge, TokAnyEdge, TokOutAggregation, TokInAggregation,
		TokEdgeStart, TokLArrow, TokRArrow, TokDashLess, TokMinus, TokNotEqual,
		TokLess, TokSmiley, TokColon, TokAssign, TokEOF,
	}
	require.Equal(t, expected, kinds)
}

func TestOperatorsWithoutSpaces(t *testing.T) {
	texts := tokenTexts(t, "a-->b<>c++d=~e")
	require.Equal(t, []string{"a", "-->", "b", "<>", "c", "++", "d", "=~", "e"}, texts)
}

func TestPunctuation(t *testing.T) {
	kinds := tokenKinds(t, "? ! , . .. @ ( ) [ ] { } = <= >= > / + * % ; ^ | & #")
	expected := []TokenKind{
		TokQuestion, TokBang, TokComma, TokDot, TokDotDot, TokAt,
		TokLParen, TokRParen, TokLBracket, TokRBracket, TokLBrace, TokRBrace,
		TokEqual, TokLessEqual, TokGreaterEqual, TokGreater, TokSlash, TokPlus,
		TokStar, TokPercent, TokSemicolon, TokCaret, TokPipe, TokAmpersand, TokHash,
		TokEOF,
	}
	require.Equal(t, expected, kinds)
}

func TestKeywords(t *testing.T) {
	kinds := tokenKinds(t, "from x with report reportSetN reportMapN V E T thisVertex thisEdge exists! exists forall")
	expected := []TokenKind{
		TokKwFrom, TokIdent, TokKwWith, TokKwReport, TokKwReportSetN, TokKwReportMapN,
		TokKwV, TokKwE, TokKwT, TokKwThisVertex, TokKwThisEdge, TokKwExistsOne,
		TokKwExists, TokKwForall, TokEOF,
	}
	require.Equal(t, expected, kinds)
}

func TestKeywordPrefixIsIdentifier(t *testing.T) {
	tokens := tokenize(t, "index import andy Vx reporting")
	require.Equal(t, TokIdent, tokens[0].Kind)
	require.Equal(t, "index", tokens[0].Text)
	require.Equal(t, TokKwImport, tokens[1].Kind)
	require.Equal(t, TokIdent, tokens[2].Kind)
	require.Equal(t, TokIdent, tokens[3].Kind)
	require.Equal(t, TokIdent, tokens[4].Kind)
}

func TestIdentifiers(t *testing.T) {
	tokens := tokenize(t, "$x _tmp name2")
	require.Equal(t, "$x", tokens[0].Text)
	require.Equal(t, "_tmp", tokens[1].Text)
	require.Equal(t, "name2", tokens[2].Text)
}

func TestIntegerLiterals(t *testing.T) {
	tests := []struct {
		source string
		want   int64
	}{
		{"0", 0},
		{"42", 42},
		{"0x1F", 31},
		{"0XfF", 255},
		{"017", 15},
	}
	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			tokens := tokenize(t, tt.source)
			require.Equal(t, TokInt, tokens[0].Kind)
			require.Equal(t, tt.want, tokens[0].Int)
		})
	}
}

func TestDoubleLiterals(t *testing.T) {
	tests := []struct {
		source string
		want   float64
	}{
		{"1.5", 1.5},
		{"0.25", 0.25},
		{"1e3", 1000},
		{"2.5E-1", 0.25},
		{"3e+2", 300},
		{"POSITIVE_INFINITY", math.Inf(1)},
		{"NEGATIVE_INFINITY", math.Inf(-1)},
	}
	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			tokens := tokenize(t, tt.source)
			require.Equal(t, TokDouble, tokens[0].Kind)
			require.Equal(t, tt.want, tokens[0].Float)
		})
	}

	tokens := tokenize(t, "NaN")
	require.Equal(t, TokDouble, tokens[0].Kind)
	require.True(t, math.IsNaN(tokens[0].Float))
}

func TestRangeIsNotFloat(t *testing.T) {
	tokens := tokenize(t, "list (1..5)")
	kinds := make([]TokenKind, len(tokens))
	for i, tok := range tokens {
		kinds[i] = tok.Kind
	}
	require.Equal(t, []TokenKind{
		TokKwList, TokLParen, TokInt, TokDotDot, TokInt, TokRParen, TokEOF,
	}, kinds)
	require.Equal(t, int64(1), tokens[2].Int)
	require.Equal(t, int64(5), tokens[4].Int)
}

func TestStringLiterals(t *testing.T) {
	tokens := tokenize(t, `"hello" 'world' "it's" 'say "hi"'`)
	require.Equal(t, "hello", tokens[0].Text)
	require.Equal(t, "world", tokens[1].Text)
	require.Equal(t, "it's", tokens[2].Text)
	require.Equal(t, `say "hi"`, tokens[3].Text)
	for _, tok := range tokens[:4] {
		require.Equal(t, TokString, tok.Kind)
	}
}

func TestStringEscapesKeptVerbatim(t *testing.T) {
	tokens := tokenize(t, `"a\"b\nc" 'x\\'`)
	require.Equal(t, `a\"b\nc`, tokens[0].Text)
	require.Equal(t, `x\\`, tokens[1].Text)
	require.Equal(t, types.NewSpan(0, 9), tokens[0].Span)
}

func TestComments(t *testing.T) {
	kinds := tokenKinds(t, "1 // trailing\n+ /* block\n comment */ 2")
	require.Equal(t, []TokenKind{TokInt, TokPlus, TokInt, TokEOF}, kinds)
}

func TestSpans(t *testing.T) {
	tokens := tokenize(t, "from x:V{A}")
	require.Equal(t, types.NewSpan(0, 4), tokens[0].Span)
	require.Equal(t, types.NewSpan(5, 6), tokens[1].Span)
	require.Equal(t, types.NewSpan(6, 7), tokens[2].Span)
	require.Equal(t, types.NewSpan(7, 8), tokens[3].Span)
	require.Equal(t, types.NewSpan(8, 9), tokens[4].Span)
}

func TestLexErrors(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		message string
		text    string
		offset  int
	}{
		{"unterminated double", `1 + "abc`, "unterminated string", `"abc`, 4},
		{"unterminated single", `'abc\'`, "unterminated string", `'abc\'`, 0},
		{"bad octal", "09", "not a valid number", "09", 0},
		{"empty hex", "0x", "not a valid number", "0x", 0},
		{"digits then letters", "x + 12ab", "not a valid number", "12ab", 4},
		{"overflow", "99999999999999999999", "not a valid number", "99999999999999999999", 0},
		{"unknown char", "a ~ b", "unrecognized character", "~", 2},
		{"unterminated comment", "1 /* never", "unterminated block comment", "/* never", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := lexError(t, tt.source)
			require.Equal(t, tt.message, err.Message)
			require.Equal(t, tt.text, err.Text)
			require.Equal(t, tt.offset, err.Offset())
			require.Equal(t, tt.source, err.Source)
		})
	}
}
