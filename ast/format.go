package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// Format renders the subtree below n in a compact functional notation:
// function applications as name(args), literals and variables by value,
// everything else as Kind(children) with attributes in brackets. Shared
// nodes are rendered at every use.
func Format(s Store, n NodeID) string {
	var b strings.Builder
	formatNode(&b, s, n)
	return b.String()
}

func formatNode(b *strings.Builder, s Store, n NodeID) {
	switch s.NodeKind(n) {
	case NodeInvalid:
		b.WriteString("<nil>")
	case FunctionApplication:
		b.WriteString(StringAttr(s, FirstChild(s, n, IsFunctionIdOf), AttrName))
		if types := Children(s, n, IsTypeExprOf); len(types) > 0 {
			b.WriteByte('{')
			formatList(b, s, types)
			b.WriteByte('}')
		}
		b.WriteByte('(')
		formatList(b, s, Children(s, n, IsArgumentOf))
		b.WriteByte(')')
	case Variable, Identifier, FunctionId, RecordId, Quantifier:
		b.WriteString(StringAttr(s, n, AttrName))
	case RoleId:
		b.WriteByte('#')
		b.WriteString(StringAttr(s, n, AttrName))
	case TypeId:
		if BoolAttr(s, n, AttrExcluded) {
			b.WriteByte('^')
		}
		b.WriteString(StringAttr(s, n, AttrName))
		if BoolAttr(s, n, AttrType) {
			b.WriteByte('!')
		}
	case Direction:
		b.WriteString(StringAttr(s, n, AttrDirValue))
	case IntLiteral, DoubleLiteral, BoolLiteral:
		b.WriteString(literalText(s, n))
	case StringLiteral:
		b.WriteString(strconv.Quote(StringAttr(s, n, AttrStringValue)))
	case UndefinedLiteral:
		b.WriteString("undefined")
	case ThisVertex:
		b.WriteString("thisVertex")
	case ThisEdge:
		b.WriteString("thisEdge")
	default:
		b.WriteString(s.NodeKind(n).String())
		if attrs := attrText(s, n); attrs != "" {
			b.WriteByte('[')
			b.WriteString(attrs)
			b.WriteByte(']')
		}
		if children := Children(s, n); len(children) > 0 {
			b.WriteByte('(')
			formatList(b, s, children)
			b.WriteByte(')')
		}
	}
}

func formatList(b *strings.Builder, s Store, nodes []NodeID) {
	for i, c := range nodes {
		if i > 0 {
			b.WriteString(", ")
		}
		formatNode(b, s, c)
	}
}

func literalText(s Store, n NodeID) string {
	switch s.NodeKind(n) {
	case IntLiteral:
		v, _ := s.Attr(n, AttrIntValue)
		i, _ := v.(int64)
		return strconv.FormatInt(i, 10)
	case DoubleLiteral:
		v, _ := s.Attr(n, AttrDoubleValue)
		f, _ := v.(float64)
		return strconv.FormatFloat(f, 'g', -1, 64)
	case BoolLiteral:
		return strconv.FormatBool(BoolAttr(s, n, AttrBoolValue))
	}
	return ""
}

// attrText renders the attributes worth showing for structural nodes.
func attrText(s Store, n NodeID) string {
	var parts []string
	for _, name := range []string{AttrTimes, AttrOutAggregation} {
		if v, ok := s.Attr(n, name); ok {
			parts = append(parts, fmt.Sprint(v))
		}
	}
	return strings.Join(parts, ",")
}

// Sexpr renders the subtree below n as an indented s-expression that
// names every edge kind and position, for debugging output.
func Sexpr(s Store, n NodeID) string {
	var b strings.Builder
	sexprNode(&b, s, n, 0)
	return b.String()
}

func sexprNode(b *strings.Builder, s Store, n NodeID, depth int) {
	b.WriteByte('(')
	b.WriteString(s.NodeKind(n).String())
	if label := nodeLabel(s, n); label != "" {
		b.WriteByte(' ')
		b.WriteString(label)
	}
	for _, e := range s.Incidences(n, Incoming) {
		b.WriteByte('\n')
		b.WriteString(strings.Repeat("  ", depth+1))
		b.WriteString(s.EdgeKind(e).String())
		for _, p := range s.Positions(e) {
			fmt.Fprintf(b, " @%d+%d", p.Offset, p.Length)
		}
		b.WriteByte(' ')
		sexprNode(b, s, s.Alpha(e), depth+1)
	}
	b.WriteByte(')')
}

// nodeLabel returns the value a leaf node stands for, or "".
func nodeLabel(s Store, n NodeID) string {
	switch s.NodeKind(n) {
	case FunctionApplication, Greql2Expression:
		return ""
	case StringLiteral:
		return strconv.Quote(StringAttr(s, n, AttrStringValue))
	case IntLiteral, DoubleLiteral, BoolLiteral:
		return literalText(s, n)
	case Variable, Identifier, FunctionId, RecordId, Quantifier, RoleId, TypeId, Direction:
		var b strings.Builder
		formatNode(&b, s, n)
		return b.String()
	}
	return attrText(s, n)
}
