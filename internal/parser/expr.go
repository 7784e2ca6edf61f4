package parser

import (
	"github.com/greqlkit/greql/ast"
	"github.com/greqlkit/greql/internal/lexer"
)

// parseExpression parses: 'let' definitionList 'in' expression | whereExpression
func (p *Parser) parseExpression() ast.NodeID {
	start := p.pos
	if p.alreadySucceeded(ruleExpression) {
		return ast.NoNode
	}
	var n ast.NodeID
	if p.check(lexer.TokKwLet) {
		n = p.parseLetExpression()
	} else {
		n = p.parseWhereExpression()
	}
	p.ruleSucceeds(ruleExpression, start)
	return n
}

// parseLetExpression parses: 'let' definitionList 'in' expression
func (p *Parser) parseLetExpression() ast.NodeID {
	p.expect(lexer.TokKwLet)
	let := p.create(ast.LetExpression)
	p.vars.BlockBegin()
	p.parseDefinitionList(let)
	p.expect(lexer.TokKwIn)
	start := p.pos
	bound := p.parseExpression()
	p.connectFrom(ast.IsBoundExprOfDefinition, bound, let, start)
	p.vars.BlockEnd()
	return let
}

// parseWhereExpression parses: quantifiedExpression ['where' definitionList]
func (p *Parser) parseWhereExpression() ast.NodeID {
	start := p.pos
	bound := p.parseQuantifiedExpression()
	if !p.check(lexer.TokKwWhere) {
		return bound
	}
	end := p.pos
	p.advance()
	where := p.create(ast.WhereExpression)
	p.connect(ast.IsBoundExprOfDefinition, bound, where, start, end)
	p.vars.BlockBegin()
	p.parseDefinitionList(where)
	p.vars.BlockEnd()
	return where
}

// parseDefinitionList parses: definition {',' definition}
//
// A comma only continues the list when another "IDENT :=" follows, so a
// where expression can be used as a function argument.
func (p *Parser) parseDefinitionList(parent ast.NodeID) {
	for {
		start := p.pos
		def := p.parseDefinition()
		p.connectFrom(ast.IsDefinitionOf, def, parent, start)
		if !p.check(lexer.TokComma) || !p.checkAt(1, lexer.TokIdent) || !p.checkAt(2, lexer.TokAssign) {
			return
		}
		p.advance()
	}
}

// parseDefinition parses: IDENT ':=' expression
func (p *Parser) parseDefinition() ast.NodeID {
	start := p.pos
	tok := p.expectIdentifier()
	p.expect(lexer.TokAssign)
	def := p.create(ast.Definition)
	v := p.named(ast.Variable, tok.Text)
	exprStart := p.pos
	expr := p.parseExpression()
	p.connect(ast.IsVarOf, v, def, start, start+1)
	p.connectFrom(ast.IsExprOf, expr, def, exprStart)
	p.declare(tok.Text, v)
	return def
}

var quantifiers = map[lexer.TokenKind]string{
	lexer.TokKwForall:    "forall",
	lexer.TokKwExists:    "exists",
	lexer.TokKwExistsOne: "exists!",
}

// parseQuantifiedExpression parses:
//
//	('forall' | 'exists' | 'exists!') declaration '@' quantifiedExpression
//	| conditionalExpression
func (p *Parser) parseQuantifiedExpression() ast.NodeID {
	name, ok := quantifiers[p.peek().Kind]
	if !ok {
		return p.parseConditionalExpression()
	}
	qStart := p.pos
	p.advance()
	q := p.create(ast.QuantifiedExpression)
	p.connect(ast.IsQuantifierOf, p.canonical(ast.Quantifier, ast.AttrName, name), q, qStart, qStart+1)

	p.vars.BlockBegin()
	start := p.pos
	decl := p.parseDeclaration()
	p.connectFrom(ast.IsQuantifiedDeclOf, decl, q, start)
	p.expect(lexer.TokAt)
	start = p.pos
	bound := p.parseQuantifiedExpression()
	p.connectFrom(ast.IsBoundExprOfQuantifiedExpression, bound, q, start)
	p.vars.BlockEnd()
	return q
}

// parseConditionalExpression parses:
//
//	orExpression ['?' conditionalExpression ':' conditionalExpression]
func (p *Parser) parseConditionalExpression() ast.NodeID {
	start := p.pos
	cond := p.parseBinary(0)
	if !p.check(lexer.TokQuestion) {
		return cond
	}
	condEnd := p.pos
	p.advance()
	trueStart := p.pos
	t := p.parseConditionalExpression()
	trueEnd := p.pos
	p.expect(lexer.TokColon)
	falseStart := p.pos
	f := p.parseConditionalExpression()

	n := p.create(ast.ConditionalExpression)
	p.connect(ast.IsConditionOf, cond, n, start, condEnd)
	p.connect(ast.IsTrueExprOf, t, n, trueStart, trueEnd)
	p.connectFrom(ast.IsFalseExprOf, f, n, falseStart)
	return n
}

// binaryLevels lists the infix operators from loosest to tightest binding,
// with the name of the function each one applies.
var binaryLevels = [...]map[lexer.TokenKind]string{
	{lexer.TokKwOr: "or"},
	{lexer.TokKwXor: "xor"},
	{lexer.TokKwAnd: "and"},
	{lexer.TokEqual: "equals", lexer.TokNotEqual: "nequals", lexer.TokMatch: "reMatch"},
	{lexer.TokLess: "leThan", lexer.TokLessEqual: "leEqual", lexer.TokGreater: "grThan", lexer.TokGreaterEqual: "grEqual"},
	{lexer.TokPlus: "add", lexer.TokMinus: "sub", lexer.TokPlusPlus: "concat"},
	{lexer.TokStar: "mul", lexer.TokSlash: "div", lexer.TokPercent: "mod"},
}

// parseBinary parses one precedence level: operand [op level]. The right
// operand recurses into the same level, so operators associate to the
// right.
func (p *Parser) parseBinary(level int) ast.NodeID {
	if level == len(binaryLevels) {
		return p.parseUnaryExpression()
	}
	start := p.pos
	left := p.parseBinary(level + 1)
	name, ok := binaryLevels[level][p.peek().Kind]
	if !ok {
		return left
	}
	op := p.pos
	p.advance()
	right := p.parseBinary(level)
	return p.functionApplication(name, op, op+1,
		operand{left, start, op},
		operand{right, op + 1, p.pos})
}

// parseUnaryExpression parses: ('not' | '-') unaryExpression | pathExpression
func (p *Parser) parseUnaryExpression() ast.NodeID {
	var name string
	switch p.peek().Kind {
	case lexer.TokKwNot:
		name = "not"
	case lexer.TokMinus:
		name = "neg"
	default:
		return p.parsePathExpression()
	}
	op := p.pos
	p.advance()
	arg := p.parseUnaryExpression()
	return p.functionApplication(name, op, op+1, operand{arg, op + 1, p.pos})
}

// parsePathExpression parses:
//
//	pathDescription valueAccess                                 backward vertex set
//	| valueAccess ':-)' pathDescription [':-)' valueAccess]     path system
//	| valueAccess pathDescription [valueAccess]                 forward vertex set, path existence
//	| valueAccess
//
// A path description may be arbitrarily long before the token that tells
// these apart, so each reading is tried speculatively.
func (p *Parser) parsePathExpression() ast.NodeID {
	start := p.pos
	if p.alreadySucceeded(rulePathExpression) {
		return ast.NoNode
	}
	var n ast.NodeID
	if p.test(func() { p.parsePathDescription() }) {
		n = p.parseBackwardVertexSet()
	} else {
		n = p.parseForwardPathExpression()
	}
	p.ruleSucceeds(rulePathExpression, start)
	return n
}

func (p *Parser) parseBackwardVertexSet() ast.NodeID {
	start := p.pos
	path := p.parsePathDescription()
	pathEnd := p.pos
	if !p.test(func() { p.parseValueAccess() }) {
		return path
	}
	target := p.parseValueAccess()
	n := p.create(ast.BackwardVertexSet)
	p.connect(ast.IsPathOf, path, n, start, pathEnd)
	p.connectFrom(ast.IsTargetExprOf, target, n, pathEnd)
	return n
}

func (p *Parser) parseForwardPathExpression() ast.NodeID {
	start := p.pos
	subject := p.parseValueAccess()
	subjectEnd := p.pos
	if p.check(lexer.TokSmiley) {
		return p.parsePathSystem(operand{subject, start, subjectEnd})
	}
	if !p.test(func() { p.parsePathDescription() }) {
		return subject
	}
	path := p.parsePathDescription()
	pathEnd := p.pos

	if p.test(func() { p.parseValueAccess() }) {
		target := p.parseValueAccess()
		n := p.create(ast.PathExistence)
		p.connect(ast.IsStartExprOf, subject, n, start, subjectEnd)
		p.connect(ast.IsPathOf, path, n, subjectEnd, pathEnd)
		p.connectFrom(ast.IsTargetExprOf, target, n, pathEnd)
		return n
	}
	n := p.create(ast.ForwardVertexSet)
	p.connect(ast.IsStartExprOf, subject, n, start, subjectEnd)
	p.connect(ast.IsPathOf, path, n, subjectEnd, pathEnd)
	return n
}

// parsePathSystem parses the rest of: valueAccess ':-)' pathDescription
// [':-)' valueAccess]
func (p *Parser) parsePathSystem(subject operand) ast.NodeID {
	op := p.pos
	p.expect(lexer.TokSmiley)
	pathStart := p.pos
	path := p.parsePathDescription()
	args := []operand{subject, {path, pathStart, p.pos}}
	if p.accept(lexer.TokSmiley) {
		targetStart := p.pos
		target := p.parseValueAccess()
		args = append(args, operand{target, targetStart, p.pos})
	}
	return p.functionApplication("pathSystem", op, op+1, args...)
}

// parseValueAccess parses: primaryExpression {'.' IDENT | '[' expression ']'}
//
// A '[' that opens an optional path description is left to the enclosing
// path expression.
func (p *Parser) parseValueAccess() ast.NodeID {
	start := p.pos
	if p.alreadySucceeded(ruleValueAccess) {
		return ast.NoNode
	}
	n := p.parsePrimaryExpression()
	for {
		end := p.pos
		if p.check(lexer.TokDot) && p.checkAt(1, lexer.TokIdent) {
			p.advance()
			attr := p.advance()
			id := p.named(ast.Identifier, attr.Text)
			n = p.functionApplication("getValue", end, end+1,
				operand{n, start, end},
				operand{id, end + 1, end + 2})
			continue
		}
		if p.check(lexer.TokLBracket) && !p.test(func() { p.parsePathDescription() }) {
			p.advance()
			index := p.parseExpression()
			indexEnd := p.pos
			p.expect(lexer.TokRBracket)
			n = p.functionApplication("get", end, end+1,
				operand{n, start, end},
				operand{index, end + 1, indexEnd})
			continue
		}
		break
	}
	p.ruleSucceeds(ruleValueAccess, start)
	return n
}
