package parser

import (
	"github.com/greqlkit/greql/ast"
	"github.com/greqlkit/greql/internal/lexer"
)

var comprehensionKinds = map[lexer.TokenKind]ast.NodeKind{
	lexer.TokKwReport:      ast.ListComprehension,
	lexer.TokKwReportList:  ast.ListComprehension,
	lexer.TokKwReportListN: ast.ListComprehension,
	lexer.TokKwReportSet:   ast.SetComprehension,
	lexer.TokKwReportSetN:  ast.SetComprehension,
	lexer.TokKwReportMap:   ast.MapComprehension,
	lexer.TokKwReportMapN:  ast.MapComprehension,
}

// parseComprehension parses:
//
//	'from' declaration ['with' expression] reportClause 'end'
func (p *Parser) parseComprehension() ast.NodeID {
	p.expect(lexer.TokKwFrom)
	p.vars.BlockBegin()

	declStart := p.pos
	decl := p.parseDeclaration()
	if p.accept(lexer.TokKwWith) {
		start := p.pos
		constraint := p.parseExpression()
		p.connectFrom(ast.IsConstraintOf, constraint, decl, start)
	}
	declEnd := p.pos

	kind, ok := comprehensionKinds[p.peek().Kind]
	if !ok {
		p.fail("expected report clause")
	}
	comp := p.create(kind)
	p.connect(ast.IsCompDeclOf, decl, comp, declStart, declEnd)
	p.parseReportClause(comp)
	p.expect(lexer.TokKwEnd)

	p.vars.BlockEnd()
	return comp
}

// parseReportClause parses one of:
//
//	'report' labeledExpression {',' labeledExpression}
//	('reportList' | 'reportSet') expression
//	'reportMap' expression '->' expression
//	('reportListN' | 'reportSetN') expression ':' expression
//	'reportMapN' expression ':' expression '->' expression
func (p *Parser) parseReportClause(comp ast.NodeID) {
	switch p.advance().Kind {
	case lexer.TokKwReport:
		p.parseLabeledReport(comp)
	case lexer.TokKwReportList, lexer.TokKwReportSet:
		p.parseReportResult(comp)
	case lexer.TokKwReportMap:
		p.parseReportMapping(comp)
	case lexer.TokKwReportListN, lexer.TokKwReportSetN:
		p.parseMaxCount(comp)
		p.parseReportResult(comp)
	case lexer.TokKwReportMapN:
		p.parseMaxCount(comp)
		p.parseReportMapping(comp)
	}
}

func (p *Parser) parseReportResult(comp ast.NodeID) {
	start := p.pos
	result := p.parseExpression()
	p.connectFrom(ast.IsCompResultDefOf, result, comp, start)
}

func (p *Parser) parseReportMapping(comp ast.NodeID) {
	keyStart := p.pos
	key := p.parseExpression()
	keyEnd := p.pos
	p.expect(lexer.TokRArrow)
	valueStart := p.pos
	value := p.parseExpression()
	p.connect(ast.IsKeyExprOfComprehension, key, comp, keyStart, keyEnd)
	p.connectFrom(ast.IsValueExprOfComprehension, value, comp, valueStart)
}

// parseMaxCount parses: expression ':'
func (p *Parser) parseMaxCount(comp ast.NodeID) {
	start := p.pos
	count := p.parseExpression()
	p.connectFrom(ast.IsMaxCountOf, count, comp, start)
	p.expect(lexer.TokColon)
}

// parseLabeledReport parses: expression ['as' STRING] {',' expression ['as' STRING]}
//
// The reported expressions become the parts of a tuple. A tuple with a
// single part is dropped and its part reported directly.
func (p *Parser) parseLabeledReport(comp ast.NodeID) {
	start := p.pos
	tuple := p.create(ast.TupleConstruction)
	for {
		partStart := p.pos
		part := p.parseExpression()
		p.connectFrom(ast.IsPartOf, part, tuple, partStart)
		if p.accept(lexer.TokKwAs) {
			labelStart := p.pos
			label := p.expect(lexer.TokString)
			p.connect(ast.IsTableHeaderOf, p.literal(label), comp, labelStart, labelStart+1)
		}
		if !p.accept(lexer.TokComma) {
			break
		}
	}
	if p.inPredicateMode() {
		return
	}

	parts := ast.IncomingEdges(p.g, tuple, ast.IsPartOf)
	if len(parts) != 1 {
		p.connectFrom(ast.IsCompResultDefOf, tuple, comp, start)
		return
	}
	child := p.g.Alpha(parts[0])
	positions := p.g.Positions(parts[0])
	p.g.DeleteNode(tuple)
	p.stats.Nodes--
	p.stats.Edges--
	e := p.g.CreateEdge(ast.IsCompResultDefOf, child, comp)
	p.g.SetPositions(e, positions...)
	p.stats.Edges++
}

// parseDeclaration parses: simpleDeclaration {',' (simpleDeclaration | expression)}
func (p *Parser) parseDeclaration() ast.NodeID {
	start := p.pos
	if p.alreadySucceeded(ruleDeclaration) {
		return ast.NoNode
	}
	decl := p.create(ast.Declaration)
	p.connectFrom(ast.IsSimpleDeclOf, p.parseSimpleDeclaration(), decl, start)
	for p.accept(lexer.TokComma) {
		s := p.pos
		if p.test(func() { p.parseSimpleDeclaration() }) {
			p.connectFrom(ast.IsSimpleDeclOf, p.parseSimpleDeclaration(), decl, s)
		} else {
			p.connectFrom(ast.IsConstraintOf, p.parseExpression(), decl, s)
		}
	}
	p.ruleSucceeds(ruleDeclaration, start)
	return decl
}

// parseSimpleDeclaration parses: IDENT {',' IDENT} ':' expression
//
// The variables are declared after the type expression, which therefore
// cannot refer to them.
func (p *Parser) parseSimpleDeclaration() ast.NodeID {
	sd := p.create(ast.SimpleDeclaration)
	var vars []operand
	var names []string
	for {
		s := p.pos
		tok := p.expectIdentifier()
		vars = append(vars, operand{p.named(ast.Variable, tok.Text), s, s + 1})
		names = append(names, tok.Text)
		if !p.accept(lexer.TokComma) {
			break
		}
	}
	p.expect(lexer.TokColon)
	typeStart := p.pos
	typeExpr := p.parseExpression()

	for i, v := range vars {
		p.connect(ast.IsDeclaredVarOf, v.node, sd, v.start, v.end)
		p.declare(names[i], v.node)
	}
	p.connectFrom(ast.IsTypeExprOfDeclaration, typeExpr, sd, typeStart)
	return sd
}
