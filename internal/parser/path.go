package parser

import (
	"github.com/greqlkit/greql/ast"
	"github.com/greqlkit/greql/internal/lexer"
	"github.com/greqlkit/greql/internal/types"
)

// parsePathDescription parses: intermediatePath {'|' intermediatePath}
func (p *Parser) parsePathDescription() ast.NodeID {
	start := p.pos
	if p.alreadySucceeded(rulePathDescription) {
		return ast.NoNode
	}
	path := p.parseIntermediatePath()
	if p.check(lexer.TokPipe) {
		alt := p.create(ast.AlternativePathDescription)
		p.connectFrom(ast.IsAlternativePathOf, path, alt, start)
		for p.accept(lexer.TokPipe) {
			s := p.pos
			p.connectFrom(ast.IsAlternativePathOf, p.parseIntermediatePath(), alt, s)
		}
		path = alt
	}
	p.ruleSucceeds(rulePathDescription, start)
	return path
}

// parseIntermediatePath parses: sequentialPath [valueAccess intermediatePath]
func (p *Parser) parseIntermediatePath() ast.NodeID {
	start := p.pos
	if p.alreadySucceeded(ruleIntermediatePath) {
		return ast.NoNode
	}
	path := p.parseSequentialPath()
	seqEnd := p.pos
	if p.test(func() {
		p.parseValueAccess()
		p.parseIntermediatePath()
	}) {
		vertex := p.parseValueAccess()
		vertexEnd := p.pos
		rest := p.parseIntermediatePath()
		n := p.create(ast.IntermediateVertexPathDescription)
		p.connect(ast.IsSubPathOf, path, n, start, seqEnd)
		p.connect(ast.IsIntermediateVertexOf, vertex, n, seqEnd, vertexEnd)
		p.connectFrom(ast.IsSubPathOf, rest, n, vertexEnd)
		path = n
	}
	p.ruleSucceeds(ruleIntermediatePath, start)
	return path
}

// parseSequentialPath parses: startRestrictedPath {startRestrictedPath}
func (p *Parser) parseSequentialPath() ast.NodeID {
	start := p.pos
	path := p.parseStartRestrictedPath()
	next := func() bool {
		return p.test(func() { p.parseStartRestrictedPath() })
	}
	if !next() {
		return path
	}
	seq := p.create(ast.SequentialPathDescription)
	p.connectFrom(ast.IsSequenceElementOf, path, seq, start)
	for next() {
		s := p.pos
		p.connectFrom(ast.IsSequenceElementOf, p.parseStartRestrictedPath(), seq, s)
	}
	return seq
}

// parseStartRestrictedPath parses: [restriction '&'] goalRestrictedPath
func (p *Parser) parseStartRestrictedPath() ast.NodeID {
	start := p.pos
	if p.alreadySucceeded(ruleStartRestrictedPath) {
		return ast.NoNode
	}
	var restrictions []operand
	if p.check(lexer.TokLBrace) {
		restrictions = p.parseRestriction()
		p.expect(lexer.TokAmpersand)
	}
	path := p.parseGoalRestrictedPath()
	for _, r := range restrictions {
		p.connect(ast.IsStartRestrOf, r.node, path, r.start, r.end)
	}
	p.ruleSucceeds(ruleStartRestrictedPath, start)
	return path
}

// parseGoalRestrictedPath parses: iteratedPath ['&' restriction]
func (p *Parser) parseGoalRestrictedPath() ast.NodeID {
	path := p.parseIteratedPath()
	if p.check(lexer.TokAmpersand) && p.checkAt(1, lexer.TokLBrace) {
		p.advance()
		for _, r := range p.parseRestriction() {
			p.connect(ast.IsGoalRestrOf, r.node, path, r.start, r.end)
		}
	}
	return path
}

// parseRestriction parses: '{' (typeIdList | expression) '}'
func (p *Parser) parseRestriction() []operand {
	p.expect(lexer.TokLBrace)
	var out []operand
	if p.test(func() {
		p.parseTypeIdList()
		p.expect(lexer.TokRBrace)
	}) {
		out = p.parseTypeIdList()
	} else {
		start := p.pos
		n := p.parseExpression()
		out = []operand{{n, start, p.pos}}
	}
	p.expect(lexer.TokRBrace)
	return out
}

// parseIteratedPath parses: primaryPath {'*' | '+' | '^' 'T' | '^' INT}
func (p *Parser) parseIteratedPath() ast.NodeID {
	start := p.pos
	path := p.parsePrimaryPath()
	for {
		end := p.pos
		var n ast.NodeID
		switch {
		case p.check(lexer.TokStar), p.check(lexer.TokPlus):
			times := "star"
			if p.advance().Kind == lexer.TokPlus {
				times = "plus"
			}
			n = p.create(ast.IteratedPathDescription)
			p.setAttr(n, ast.AttrTimes, times)
			p.connect(ast.IsIteratedPathOf, path, n, start, end)
		case p.check(lexer.TokCaret) && p.checkAt(1, lexer.TokKwT):
			p.advance()
			p.advance()
			n = p.create(ast.TransposedPathDescription)
			p.connect(ast.IsTransposedPathOf, path, n, start, end)
		case p.check(lexer.TokCaret) && p.checkAt(1, lexer.TokInt):
			p.advance()
			exponent := p.advance()
			n = p.create(ast.ExponentiatedPathDescription)
			p.connect(ast.IsExponentiatedPathOf, path, n, start, end)
			p.connect(ast.IsExponentOf, p.literal(exponent), n, end+1, end+2)
		default:
			return path
		}
		path = n
	}
}

// parsePrimaryPath parses a simple, aggregation or edge path, or
// '(' pathDescription ')' or the optional '[' pathDescription ']'.
func (p *Parser) parsePrimaryPath() ast.NodeID {
	start := p.pos
	if p.alreadySucceeded(rulePrimaryPath) {
		return ast.NoNode
	}
	var n ast.NodeID
	switch p.peek().Kind {
	case lexer.TokOutEdge, lexer.TokInEdge, lexer.TokAnyEdge:
		n = p.parseSimplePath()
	case lexer.TokOutAggregation, lexer.TokInAggregation:
		n = p.parseAggregationPath()
	case lexer.TokEdgeStart, lexer.TokLArrow:
		n = p.parseEdgePath()
	case lexer.TokLParen:
		p.advance()
		n = p.parsePathDescription()
		p.expect(lexer.TokRParen)
	case lexer.TokLBracket:
		p.advance()
		inner := p.parsePathDescription()
		innerEnd := p.pos
		p.expect(lexer.TokRBracket)
		n = p.create(ast.OptionalPathDescription)
		p.connect(ast.IsOptionalPathOf, inner, n, start+1, innerEnd)
	default:
		p.fail("expected path description")
	}
	p.ruleSucceeds(rulePrimaryPath, start)
	return n
}

var simpleDirections = map[lexer.TokenKind]string{
	lexer.TokOutEdge: ast.DirOut,
	lexer.TokInEdge:  ast.DirIn,
	lexer.TokAnyEdge: ast.DirAny,
}

// parseSimplePath parses: ('-->' | '<--' | '<->') [edgeRestrictions]
func (p *Parser) parseSimplePath() ast.NodeID {
	op := p.pos
	dir := simpleDirections[p.advance().Kind]
	n := p.create(ast.SimplePathDescription)
	p.connect(ast.IsDirectionOf, p.canonical(ast.Direction, ast.AttrDirValue, dir), n, op, op+1)
	p.parseEdgeRestrictions(n)
	return n
}

// parseAggregationPath parses: ('<>--' | '--<>') [edgeRestrictions]
func (p *Parser) parseAggregationPath() ast.NodeID {
	out := p.advance().Kind == lexer.TokOutAggregation
	n := p.create(ast.AggregationPathDescription)
	p.setAttr(n, ast.AttrOutAggregation, out)
	p.parseEdgeRestrictions(n)
	return n
}

// parseEdgePath parses: ('--' | '<-') valueAccess ('->' | '--')
func (p *Parser) parseEdgePath() ast.NodeID {
	open := p.pos
	incoming := p.advance().Kind == lexer.TokLArrow
	edgeStart := p.pos
	edge := p.parseValueAccess()
	edgeEnd := p.pos
	var outgoing bool
	switch {
	case p.accept(lexer.TokRArrow):
		outgoing = true
	case p.accept(lexer.TokEdgeStart):
	default:
		p.fail("expected " + describe(lexer.TokRArrow) + " or " + describe(lexer.TokEdgeStart))
	}

	dir := ast.DirAny
	switch {
	case outgoing && !incoming:
		dir = ast.DirOut
	case incoming && !outgoing:
		dir = ast.DirIn
	}
	n := p.create(ast.EdgePathDescription)
	if n != ast.NoNode {
		e := p.g.CreateEdge(ast.IsDirectionOf, p.canonical(ast.Direction, ast.AttrDirValue, dir), n)
		p.g.SetPositions(e, p.position(open, open+1), p.position(edgeEnd, edgeEnd+1))
		p.stats.Edges++
	}
	p.connect(ast.IsEdgeExprOf, edge, n, edgeStart, edgeEnd)
	return n
}

// parseEdgeRestrictions parses:
//
//	['{' [edgeRestriction {',' edgeRestriction}] ['@' expression] '}']
//
// A trailing predicate belongs to the last restriction, or to a
// restriction of its own when no type or role is given.
func (p *Parser) parseEdgeRestrictions(path ast.NodeID) {
	if !p.accept(lexer.TokLBrace) {
		return
	}
	last := ast.NoNode
	if !p.check(lexer.TokAt) {
		for {
			start := p.pos
			last = p.parseEdgeRestriction()
			p.connectFrom(ast.IsEdgeRestrOf, last, path, start)
			if !p.accept(lexer.TokComma) {
				break
			}
		}
	}
	if p.check(lexer.TokAt) {
		at := p.pos
		p.advance()
		owner := last
		if owner == ast.NoNode {
			owner = p.create(ast.EdgeRestriction)
		}
		start := p.pos
		pred := p.parseExpression()
		p.connectFrom(ast.IsBooleanPredicateOfEdgeRestriction, pred, owner, start)
		if owner != last {
			p.connectFrom(ast.IsEdgeRestrOf, owner, path, at)
		}
	}
	p.expect(lexer.TokRBrace)
}

// parseEdgeRestriction parses: typeId | '#' IDENT
func (p *Parser) parseEdgeRestriction() ast.NodeID {
	r := p.create(ast.EdgeRestriction)
	start := p.pos
	if p.accept(lexer.TokHash) {
		tok := p.expectIdentifier()
		p.connectFrom(ast.IsRoleIdOf, p.named(ast.RoleId, tok.Text), r, start)
		return r
	}
	t := p.parseTypeId()
	p.connectFrom(ast.IsTypeIdOf, t, r, start)
	return r
}

// position converts the token range [start, end) to a graph position.
func (p *Parser) position(start, end int) ast.Position {
	return toPosition(p.span(start, end))
}

func toPosition(sp types.Span) ast.Position {
	return ast.Position{Offset: int(sp.Start), Length: int(sp.Len())}
}
