package lexer

import (
	"cmp"
	"math"
	"slices"
	"sort"
	"strings"
)

// keywords is the sorted keyword table for binary search.
// IMPORTANT: This slice MUST remain sorted by text in byte order
// (uppercase letters sort before lowercase).
var keywords = []struct {
	text string
	kind TokenKind
}{
	{"E", TokKwE},
	{"T", TokKwT},
	{"V", TokKwV},
	{"and", TokKwAnd},
	{"as", TokKwAs},
	{"end", TokKwEnd},
	{"exists", TokKwExists},
	{"false", TokKwFalse},
	{"forall", TokKwForall},
	{"from", TokKwFrom},
	{"import", TokKwImport},
	{"in", TokKwIn},
	{"let", TokKwLet},
	{"list", TokKwList},
	{"map", TokKwMap},
	{"not", TokKwNot},
	{"on", TokKwOn},
	{"or", TokKwOr},
	{"rec", TokKwRec},
	{"report", TokKwReport},
	{"reportList", TokKwReportList},
	{"reportListN", TokKwReportListN},
	{"reportMap", TokKwReportMap},
	{"reportMapN", TokKwReportMapN},
	{"reportSet", TokKwReportSet},
	{"reportSetN", TokKwReportSetN},
	{"set", TokKwSet},
	{"store", TokKwStore},
	{"thisEdge", TokKwThisEdge},
	{"thisVertex", TokKwThisVertex},
	{"true", TokKwTrue},
	{"tup", TokKwTup},
	{"undefined", TokKwUndefined},
	{"using", TokKwUsing},
	{"where", TokKwWhere},
	{"with", TokKwWith},
	{"xor", TokKwXor},
}

// LookupKeyword returns the token kind for an identifier-shaped keyword.
func LookupKeyword(text string) (TokenKind, bool) {
	i := sort.Search(len(keywords), func(i int) bool {
		return keywords[i].text >= text
	})
	if i < len(keywords) && keywords[i].text == text {
		return keywords[i].kind, true
	}
	return 0, false
}

// doubleNames are identifier-shaped double literals.
var doubleNames = map[string]float64{
	"NaN":               math.NaN(),
	"POSITIVE_INFINITY": math.Inf(1),
	"NEGATIVE_INFINITY": math.Inf(-1),
}

// operator is a fixed punctuation lexeme.
type operator struct {
	text string
	kind TokenKind
}

// operators holds every punctuation lexeme ordered longest first, then
// lexicographically, so the first prefix match is the longest one.
var operators = buildOperators()

func buildOperators() []operator {
	var ops []operator
	for k := TokQuestion; k < tokCount; k++ {
		ops = append(ops, operator{text: fixedLexemes[k], kind: k})
	}
	slices.SortFunc(ops, func(a, b operator) int {
		if c := cmp.Compare(len(b.text), len(a.text)); c != 0 {
			return c
		}
		return strings.Compare(a.text, b.text)
	})
	return ops
}

// matchOperator returns the longest operator that prefixes src.
func matchOperator(src []byte) (operator, bool) {
	for _, op := range operators {
		if len(op.text) <= len(src) && string(src[:len(op.text)]) == op.text {
			return op, true
		}
	}
	return operator{}, false
}
