package parser

import (
	"github.com/greqlkit/greql/ast"
	"github.com/greqlkit/greql/internal/lexer"
)

// create adds a node to the store. In predicate mode nothing is created
// and NoNode is returned.
func (p *Parser) create(kind ast.NodeKind) ast.NodeID {
	if p.inPredicateMode() {
		return ast.NoNode
	}
	p.stats.Nodes++
	return p.g.CreateNode(kind)
}

// connect adds an edge from child to parent carrying the source span of
// the tokens in [start, end).
func (p *Parser) connect(kind ast.EdgeKind, child, parent ast.NodeID, start, end int) ast.EdgeID {
	if p.inPredicateMode() {
		return ast.NoEdge
	}
	e := p.g.CreateEdge(kind, child, parent)
	p.g.SetPositions(e, p.position(start, end))
	p.stats.Edges++
	return e
}

// connectFrom connects child, whose tokens start at start and end at the
// cursor.
func (p *Parser) connectFrom(kind ast.EdgeKind, child, parent ast.NodeID, start int) ast.EdgeID {
	return p.connect(kind, child, parent, start, p.pos)
}

// canonical returns the shared node of the given kind whose attribute
// name equals value, creating it on first use. An empty attribute name
// matches any node of the kind.
func (p *Parser) canonical(kind ast.NodeKind, name string, value any) ast.NodeID {
	if p.inPredicateMode() {
		return ast.NoNode
	}
	for n := p.g.FirstNode(kind); n != ast.NoNode; n = p.g.NextNode(n, kind) {
		if name == "" {
			return n
		}
		if v, ok := p.g.Attr(n, name); ok && v == value {
			return n
		}
	}
	n := p.create(kind)
	if name != "" {
		p.g.SetAttr(n, name, value)
	}
	return n
}

// named creates a node with a name attribute.
func (p *Parser) named(kind ast.NodeKind, name string) ast.NodeID {
	n := p.create(kind)
	if n != ast.NoNode {
		p.g.SetAttr(n, ast.AttrName, name)
	}
	return n
}

func (p *Parser) setAttr(n ast.NodeID, name string, value any) {
	if n != ast.NoNode {
		p.g.SetAttr(n, name, value)
	}
}

// operand is a parsed sub-construct together with its token range.
type operand struct {
	node       ast.NodeID
	start, end int
}

// functionApplication builds name(args...). The function id edge spans
// the tokens [opStart, opEnd).
func (p *Parser) functionApplication(name string, opStart, opEnd int, args ...operand) ast.NodeID {
	if p.inPredicateMode() {
		return ast.NoNode
	}
	app := p.create(ast.FunctionApplication)
	fid := p.canonical(ast.FunctionId, ast.AttrName, name)
	p.connect(ast.IsFunctionIdOf, fid, app, opStart, opEnd)
	for _, a := range args {
		p.connect(ast.IsArgumentOf, a.node, app, a.start, a.end)
	}
	return app
}

// literal creates the node for a literal token.
func (p *Parser) literal(tok lexer.Token) ast.NodeID {
	switch tok.Kind {
	case lexer.TokInt:
		n := p.create(ast.IntLiteral)
		p.setAttr(n, ast.AttrIntValue, tok.Int)
		return n
	case lexer.TokDouble:
		n := p.create(ast.DoubleLiteral)
		p.setAttr(n, ast.AttrDoubleValue, tok.Float)
		return n
	case lexer.TokString:
		n := p.create(ast.StringLiteral)
		p.setAttr(n, ast.AttrStringValue, tok.Text)
		return n
	case lexer.TokKwTrue:
		return p.canonical(ast.BoolLiteral, ast.AttrBoolValue, true)
	case lexer.TokKwFalse:
		return p.canonical(ast.BoolLiteral, ast.AttrBoolValue, false)
	case lexer.TokKwUndefined:
		return p.canonical(ast.UndefinedLiteral, "", nil)
	case lexer.TokKwThisVertex:
		return p.create(ast.ThisVertex)
	case lexer.TokKwThisEdge:
		return p.create(ast.ThisEdge)
	}
	p.fail("expected literal")
	return ast.NoNode
}
