package parser

import (
	"strings"

	"github.com/greqlkit/greql/ast"
	"github.com/greqlkit/greql/internal/lexer"
)

// parseQuery parses: {import} ['using' IDENT {',' IDENT} ':'] expression
// ['store' 'as' IDENT] EOF
func (p *Parser) parseQuery() ast.NodeID {
	root := p.create(ast.Greql2Expression)
	p.setAttr(root, ast.AttrQueryText, p.source)

	if imports := p.parseImports(); len(imports) > 0 {
		p.setAttr(root, ast.AttrImportedTypes, imports)
	}

	p.vars.BlockBegin()
	if p.accept(lexer.TokKwUsing) {
		for {
			start := p.pos
			tok := p.expectIdentifier()
			v := p.named(ast.Variable, tok.Text)
			p.connectFrom(ast.IsBoundVarOf, v, root, start)
			p.declare(tok.Text, v)
			if !p.accept(lexer.TokComma) {
				break
			}
		}
		p.expect(lexer.TokColon)
	}

	start := p.pos
	expr := p.parseExpression()
	p.connectFrom(ast.IsQueryExprOf, expr, root, start)

	if p.accept(lexer.TokKwStore) {
		p.expect(lexer.TokKwAs)
		start := p.pos
		tok := p.expectIdentifier()
		p.connectFrom(ast.IsIdOf, p.named(ast.Identifier, tok.Text), root, start)
	}
	if !p.isEOF() {
		p.fail("expected end of query")
	}
	p.vars.BlockEnd()
	return root
}

// parseImports parses: {'import' qualifiedName ['.' '*'] ';'}
func (p *Parser) parseImports() []string {
	var imports []string
	for p.accept(lexer.TokKwImport) {
		name := p.parseQualifiedName()
		if p.check(lexer.TokDot) && p.checkAt(1, lexer.TokStar) {
			p.advance()
			p.advance()
			name += ".*"
		}
		p.expect(lexer.TokSemicolon)
		imports = append(imports, name)
	}
	return imports
}

// parseQualifiedName parses: name {'.' name}
//
// A name is an identifier or one of the keywords V, E and T, so type names
// like E or schema.V can be written.
func (p *Parser) parseQualifiedName() string {
	var b strings.Builder
	b.WriteString(p.expectName())
	for p.check(lexer.TokDot) && isName(p.peekAt(1).Kind) {
		p.advance()
		b.WriteByte('.')
		b.WriteString(p.expectName())
	}
	return b.String()
}

func isName(kind lexer.TokenKind) bool {
	switch kind {
	case lexer.TokIdent, lexer.TokKwV, lexer.TokKwE, lexer.TokKwT:
		return true
	}
	return false
}

func (p *Parser) expectName() string {
	if !isName(p.peek().Kind) {
		p.fail("expected " + describe(lexer.TokIdent))
	}
	return p.text(p.advance())
}

// declare enters a variable into the lenient table. Nothing is recorded
// in predicate mode since no node exists.
func (p *Parser) declare(name string, v ast.NodeID) {
	if v != ast.NoNode {
		p.vars.Insert(name, v)
	}
}
