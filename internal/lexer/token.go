// Package lexer provides tokenization for GReQL query text.
package lexer

import (
	"github.com/greqlkit/greql/internal/types"
)

// Token is a token with kind, source span and decoded payload.
type Token struct {
	Kind TokenKind
	Span types.Span
	// Text is the identifier name or the string literal contents.
	Text string
	// Int is the value of an integer literal.
	Int int64
	// Float is the value of a double literal.
	Float float64
}

// NewToken creates a new token without payload.
func NewToken(kind TokenKind, span types.Span) Token {
	return Token{Kind: kind, Span: span}
}

// TokenKind identifies a token type.
type TokenKind int

const (
	// === Special ===

	// TokEOF is end of input.
	TokEOF TokenKind = iota

	// === Payload tokens ===

	// TokIdent is an identifier.
	TokIdent
	// TokString is a single- or double-quoted string literal.
	TokString
	// TokInt is an integer literal (decimal, hex or octal).
	TokInt
	// TokDouble is a floating point literal, including NaN and the infinities.
	TokDouble

	// === Keywords ===

	TokKwAnd
	TokKwOr
	TokKwXor
	TokKwNot
	TokKwTrue
	TokKwFalse
	TokKwUndefined
	TokKwExists
	TokKwExistsOne
	TokKwForall
	TokKwFrom
	TokKwUsing
	TokKwIn
	TokKwLet
	TokKwWhere
	TokKwWith
	TokKwAs
	TokKwSet
	TokKwList
	TokKwTup
	TokKwRec
	TokKwMap
	TokKwReport
	TokKwReportSet
	TokKwReportSetN
	TokKwReportList
	TokKwReportListN
	TokKwReportMap
	TokKwReportMapN
	TokKwStore
	TokKwEnd
	TokKwOn
	TokKwImport
	TokKwV
	TokKwE
	TokKwT
	TokKwThisVertex
	TokKwThisEdge

	// === Operators and punctuation ===

	TokQuestion       // ?
	TokBang           // !
	TokColon          // :
	TokComma          // ,
	TokDot            // .
	TokDotDot         // ..
	TokAt             // @
	TokLParen         // (
	TokRParen         // )
	TokLBracket       // [
	TokRBracket       // ]
	TokLBrace         // {
	TokRBrace         // }
	TokLArrow         // <-
	TokRArrow         // ->
	TokEdgeStart      // --
	TokOutEdge        // -->
	TokInEdge         // <--
	TokAnyEdge        // <->
	TokAssign         // :=
	TokEqual          // =
	TokMatch          // =~
	TokNotEqual       // <>
	TokLessEqual      // <=
	TokGreaterEqual   // >=
	TokLess           // <
	TokGreater        // >
	TokSlash          // /
	TokPlus           // +
	TokMinus          // -
	TokStar           // *
	TokPercent        // %
	TokSemicolon      // ;
	TokCaret          // ^
	TokPipe           // |
	TokAmpersand      // &
	TokSmiley         // :-)
	TokHash           // #
	TokOutAggregation // <>--
	TokInAggregation  // --<>
	TokDashLess       // -<
	TokPlusPlus       // ++

	tokCount
)

var fixedLexemes = [tokCount]string{
	TokKwAnd:          "and",
	TokKwOr:           "or",
	TokKwXor:          "xor",
	TokKwNot:          "not",
	TokKwTrue:         "true",
	TokKwFalse:        "false",
	TokKwUndefined:    "undefined",
	TokKwExists:       "exists",
	TokKwExistsOne:    "exists!",
	TokKwForall:       "forall",
	TokKwFrom:         "from",
	TokKwUsing:        "using",
	TokKwIn:           "in",
	TokKwLet:          "let",
	TokKwWhere:        "where",
	TokKwWith:         "with",
	TokKwAs:           "as",
	TokKwSet:          "set",
	TokKwList:         "list",
	TokKwTup:          "tup",
	TokKwRec:          "rec",
	TokKwMap:          "map",
	TokKwReport:       "report",
	TokKwReportSet:    "reportSet",
	TokKwReportSetN:   "reportSetN",
	TokKwReportList:   "reportList",
	TokKwReportListN:  "reportListN",
	TokKwReportMap:    "reportMap",
	TokKwReportMapN:   "reportMapN",
	TokKwStore:        "store",
	TokKwEnd:          "end",
	TokKwOn:           "on",
	TokKwImport:       "import",
	TokKwV:            "V",
	TokKwE:            "E",
	TokKwT:            "T",
	TokKwThisVertex:   "thisVertex",
	TokKwThisEdge:     "thisEdge",
	TokQuestion:       "?",
	TokBang:           "!",
	TokColon:          ":",
	TokComma:          ",",
	TokDot:            ".",
	TokDotDot:         "..",
	TokAt:             "@",
	TokLParen:         "(",
	TokRParen:         ")",
	TokLBracket:       "[",
	TokRBracket:       "]",
	TokLBrace:         "{",
	TokRBrace:         "}",
	TokLArrow:         "<-",
	TokRArrow:         "->",
	TokEdgeStart:      "--",
	TokOutEdge:        "-->",
	TokInEdge:         "<--",
	TokAnyEdge:        "<->",
	TokAssign:         ":=",
	TokEqual:          "=",
	TokMatch:          "=~",
	TokNotEqual:       "<>",
	TokLessEqual:      "<=",
	TokGreaterEqual:   ">=",
	TokLess:           "<",
	TokGreater:        ">",
	TokSlash:          "/",
	TokPlus:           "+",
	TokMinus:          "-",
	TokStar:           "*",
	TokPercent:        "%",
	TokSemicolon:      ";",
	TokCaret:          "^",
	TokPipe:           "|",
	TokAmpersand:      "&",
	TokSmiley:         ":-)",
	TokHash:           "#",
	TokOutAggregation: "<>--",
	TokInAggregation:  "--<>",
	TokDashLess:       "-<",
	TokPlusPlus:       "++",
}

// String returns the surface form of fixed lexemes and a descriptive
// name for the payload tokens.
func (k TokenKind) String() string {
	switch k {
	case TokEOF:
		return "end of query"
	case TokIdent:
		return "identifier"
	case TokString:
		return "string literal"
	case TokInt:
		return "integer literal"
	case TokDouble:
		return "double literal"
	}
	if k > TokDouble && k < tokCount {
		return fixedLexemes[k]
	}
	return "unknown"
}

// IsKeyword returns true if this token is an identifier-shaped keyword.
func (k TokenKind) IsKeyword() bool {
	return k >= TokKwAnd && k <= TokKwThisEdge
}

// IsOperator returns true if this token is an operator or punctuation.
func (k TokenKind) IsOperator() bool {
	return k >= TokQuestion && k < tokCount
}

// IsLiteral returns true if this token carries a literal value.
func (k TokenKind) IsLiteral() bool {
	return k == TokString || k == TokInt || k == TokDouble
}
