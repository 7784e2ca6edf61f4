package parser

import (
	"github.com/greqlkit/greql/ast"
	"github.com/greqlkit/greql/internal/lexer"
)

// parsePrimaryExpression parses a parenthesized expression, literal,
// vertex or edge set, value construction, comprehension, function
// application, variable or path description.
func (p *Parser) parsePrimaryExpression() ast.NodeID {
	start := p.pos
	if p.alreadySucceeded(rulePrimary) {
		return ast.NoNode
	}
	n := p.parsePrimaryAlternatives()
	p.ruleSucceeds(rulePrimary, start)
	return n
}

func (p *Parser) parsePrimaryAlternatives() ast.NodeID {
	tok := p.peek()
	switch tok.Kind {
	case lexer.TokLParen:
		if p.test(func() { p.parseParenthesized() }) {
			return p.parseParenthesized()
		}
		return p.parsePathDescription()
	case lexer.TokInt, lexer.TokDouble, lexer.TokString,
		lexer.TokKwTrue, lexer.TokKwFalse, lexer.TokKwUndefined,
		lexer.TokKwThisVertex, lexer.TokKwThisEdge:
		p.advance()
		return p.literal(tok)
	case lexer.TokKwV, lexer.TokKwE:
		return p.parseGraphElementSet()
	case lexer.TokKwSet, lexer.TokKwList, lexer.TokKwTup, lexer.TokKwRec, lexer.TokKwMap:
		return p.parseValueConstruction()
	case lexer.TokKwFrom:
		return p.parseComprehension()
	case lexer.TokIdent:
		if p.isFunctionApplicationStart() && p.test(func() { p.parseFunctionApplication() }) {
			return p.parseFunctionApplication()
		}
		return p.parseVariableUse()
	case lexer.TokOutEdge, lexer.TokInEdge, lexer.TokAnyEdge,
		lexer.TokOutAggregation, lexer.TokInAggregation,
		lexer.TokEdgeStart, lexer.TokLArrow,
		lexer.TokLBrace, lexer.TokLBracket:
		return p.parsePathDescription()
	}
	p.fail("expected expression")
	return ast.NoNode
}

// parseParenthesized parses: '(' expression ')'
func (p *Parser) parseParenthesized() ast.NodeID {
	p.expect(lexer.TokLParen)
	n := p.parseExpression()
	p.expect(lexer.TokRParen)
	return n
}

// isFunctionApplicationStart reports whether the identifier at the cursor
// names a callable and is followed by '(' or '{'.
func (p *Parser) isFunctionApplicationStart() bool {
	if !p.checkAt(1, lexer.TokLParen) && !p.checkAt(1, lexer.TokLBrace) {
		return false
	}
	return p.funcs.IsFunctionName(p.peek().Text)
}

// parseFunctionApplication parses:
//
//	IDENT ['{' typeIdList '}'] '(' [expression {',' expression}] ')'
func (p *Parser) parseFunctionApplication() ast.NodeID {
	start := p.pos
	tok := p.expectIdentifier()
	app := p.create(ast.FunctionApplication)
	p.connect(ast.IsFunctionIdOf, p.canonical(ast.FunctionId, ast.AttrName, tok.Text), app, start, start+1)
	if p.accept(lexer.TokLBrace) {
		for _, t := range p.parseTypeIdList() {
			p.connect(ast.IsTypeExprOf, t.node, app, t.start, t.end)
		}
		p.expect(lexer.TokRBrace)
	}
	p.expect(lexer.TokLParen)
	p.parseExpressionList(app, ast.IsArgumentOf)
	p.expect(lexer.TokRParen)
	return app
}

// parseExpressionList parses: [expression {',' expression}]
// up to a closing parenthesis, attaching each expression to parent.
func (p *Parser) parseExpressionList(parent ast.NodeID, kind ast.EdgeKind) {
	if p.check(lexer.TokRParen) {
		return
	}
	for {
		start := p.pos
		n := p.parseExpression()
		p.connectFrom(kind, n, parent, start)
		if !p.accept(lexer.TokComma) {
			return
		}
	}
}

// parseVariableUse parses an identifier in expression position. A name
// already declared in an enclosing scope resolves to its declaration;
// anything else gets a fresh occurrence node for the merging pass.
func (p *Parser) parseVariableUse() ast.NodeID {
	tok := p.expectIdentifier()
	if p.inPredicateMode() {
		return ast.NoNode
	}
	if v, ok := p.vars.Lookup(tok.Text); ok {
		return v
	}
	return p.named(ast.Variable, tok.Text)
}

// parseGraphElementSet parses: ('V' | 'E') ['{' typeIdList '}']
func (p *Parser) parseGraphElementSet() ast.NodeID {
	kind := ast.VertexSetExpression
	if p.advance().Kind == lexer.TokKwE {
		kind = ast.EdgeSetExpression
	}
	n := p.create(kind)
	if p.accept(lexer.TokLBrace) {
		for _, t := range p.parseTypeIdList() {
			p.connect(ast.IsTypeRestrOf, t.node, n, t.start, t.end)
		}
		p.expect(lexer.TokRBrace)
	}
	return n
}

// parseTypeIdList parses: typeId {',' typeId}
func (p *Parser) parseTypeIdList() []operand {
	start := p.pos
	if p.alreadySucceeded(ruleTypeIdList) {
		return nil
	}
	var ids []operand
	for {
		s := p.pos
		t := p.parseTypeId()
		ids = append(ids, operand{t, s, p.pos})
		if !p.accept(lexer.TokComma) {
			break
		}
	}
	p.ruleSucceeds(ruleTypeIdList, start)
	return ids
}

// parseTypeId parses: ['^'] qualifiedName ['!']
func (p *Parser) parseTypeId() ast.NodeID {
	excluded := p.accept(lexer.TokCaret)
	name := p.parseQualifiedName()
	exact := p.accept(lexer.TokBang)
	t := p.named(ast.TypeId, name)
	p.setAttr(t, ast.AttrExcluded, excluded)
	p.setAttr(t, ast.AttrType, exact)
	return t
}

// parseValueConstruction parses the set, list, tup, rec and map
// constructors.
func (p *Parser) parseValueConstruction() ast.NodeID {
	kw := p.advance()
	p.expect(lexer.TokLParen)
	var n ast.NodeID
	switch kw.Kind {
	case lexer.TokKwSet:
		n = p.create(ast.SetConstruction)
		p.parseExpressionList(n, ast.IsPartOf)
	case lexer.TokKwTup:
		n = p.create(ast.TupleConstruction)
		p.parseExpressionList(n, ast.IsPartOf)
	case lexer.TokKwList:
		n = p.parseListConstruction()
	case lexer.TokKwRec:
		n = p.parseRecordConstruction()
	case lexer.TokKwMap:
		n = p.parseMapConstruction()
	}
	p.expect(lexer.TokRParen)
	return n
}

// parseListConstruction parses the inside of:
// 'list' '(' [expression '..' expression | expression {',' expression}] ')'
func (p *Parser) parseListConstruction() ast.NodeID {
	if p.check(lexer.TokRParen) {
		return p.create(ast.ListConstruction)
	}
	start := p.pos
	first := p.parseExpression()
	firstEnd := p.pos
	if p.accept(lexer.TokDotDot) {
		lastStart := p.pos
		last := p.parseExpression()
		n := p.create(ast.ListRangeConstruction)
		p.connect(ast.IsFirstValueOf, first, n, start, firstEnd)
		p.connectFrom(ast.IsLastValueOf, last, n, lastStart)
		return n
	}
	n := p.create(ast.ListConstruction)
	p.connect(ast.IsPartOf, first, n, start, firstEnd)
	if p.accept(lexer.TokComma) {
		p.parseExpressionList(n, ast.IsPartOf)
	}
	return n
}

// parseRecordConstruction parses the inside of:
// 'rec' '(' IDENT ':' expression {',' IDENT ':' expression} ')'
func (p *Parser) parseRecordConstruction() ast.NodeID {
	n := p.create(ast.RecordConstruction)
	for {
		start := p.pos
		tok := p.expectIdentifier()
		p.expect(lexer.TokColon)
		exprStart := p.pos
		expr := p.parseExpression()

		elem := p.create(ast.RecordElement)
		p.connect(ast.IsRecordIdOf, p.named(ast.RecordId, tok.Text), elem, start, start+1)
		p.connectFrom(ast.IsRecordExprOf, expr, elem, exprStart)
		p.connectFrom(ast.IsRecordElementOf, elem, n, start)
		if !p.accept(lexer.TokComma) {
			return n
		}
	}
}

// parseMapConstruction parses the inside of:
// 'map' '(' [expression '->' expression {',' expression '->' expression}] ')'
func (p *Parser) parseMapConstruction() ast.NodeID {
	n := p.create(ast.MapConstruction)
	if p.check(lexer.TokRParen) {
		return n
	}
	for {
		keyStart := p.pos
		key := p.parseExpression()
		keyEnd := p.pos
		p.expect(lexer.TokRArrow)
		valueStart := p.pos
		value := p.parseExpression()
		p.connect(ast.IsKeyExprOfConstruction, key, n, keyStart, keyEnd)
		p.connectFrom(ast.IsValueExprOfConstruction, value, n, valueStart)
		if !p.accept(lexer.TokComma) {
			return n
		}
	}
}
