package rewrite

import (
	"errors"

	"github.com/greqlkit/greql/ast"
	"github.com/greqlkit/greql/internal/symtab"
	"github.com/greqlkit/greql/internal/types"
)

// mergeVariables resolves every variable occurrence to its declaration.
// Occurrence nodes are replaced by the declaring node and deleted once
// nothing refers to them.
func (r *rewriter) mergeVariables() error {
	m := &merger{rewriter: r, vars: symtab.NewStrict()}
	m.vars.BlockBegin()
	defer m.vars.BlockEnd()
	for _, e := range ast.IncomingEdges(r.g, r.root, ast.IsBoundVarOf) {
		if err := m.declare(e); err != nil {
			return err
		}
	}
	return m.visitChildren(r.root)
}

type merger struct {
	*rewriter
	vars *symtab.Strict
}

func (m *merger) visit(n ast.NodeID) error {
	switch kind := m.g.NodeKind(n); {
	case kind.IsComprehension():
		return m.scoped(n, ast.IsCompDeclOf)
	case kind == ast.QuantifiedExpression:
		return m.scoped(n, ast.IsQuantifiedDeclOf)
	case kind.IsDefinitionExpression():
		return m.scoped(n, ast.IsDefinitionOf)
	case kind == ast.Definition:
		return m.visitDefinition(n)
	case kind == ast.SimpleDeclaration:
		return m.visitSimpleDeclaration(n)
	}
	return m.visitChildren(n)
}

// scoped opens a block, visits the children attached by the declaring
// edge kind first and the remaining children after.
func (m *merger) scoped(n ast.NodeID, declaring ast.EdgeKind) error {
	m.vars.BlockBegin()
	defer m.vars.BlockEnd()
	incoming := m.g.Incidences(n, ast.Incoming)
	for _, e := range incoming {
		if m.g.EdgeKind(e) == declaring {
			if err := m.resolve(e); err != nil {
				return err
			}
		}
	}
	for _, e := range incoming {
		if m.g.EdgeKind(e) != declaring {
			if err := m.resolve(e); err != nil {
				return err
			}
		}
	}
	return nil
}

// visitDefinition resolves the defining expression before the variable
// becomes visible. Definitions of one let or where list are therefore
// visible only to the definitions after them and to the bound expression,
// which rules out cyclic definitions.
func (m *merger) visitDefinition(n ast.NodeID) error {
	for _, e := range ast.IncomingEdges(m.g, n, ast.IsExprOf) {
		if err := m.resolve(e); err != nil {
			return err
		}
	}
	for _, e := range ast.IncomingEdges(m.g, n, ast.IsVarOf) {
		if err := m.declare(e); err != nil {
			return err
		}
	}
	return nil
}

// visitSimpleDeclaration resolves the type expression before declaring
// the variables.
func (m *merger) visitSimpleDeclaration(n ast.NodeID) error {
	for _, e := range ast.IncomingEdges(m.g, n, ast.IsTypeExprOfDeclaration) {
		if err := m.resolve(e); err != nil {
			return err
		}
	}
	for _, e := range ast.IncomingEdges(m.g, n, ast.IsDeclaredVarOf) {
		if err := m.declare(e); err != nil {
			return err
		}
	}
	return nil
}

func (m *merger) visitChildren(n ast.NodeID) error {
	for _, e := range m.g.Incidences(n, ast.Incoming) {
		if err := m.resolve(e); err != nil {
			return err
		}
	}
	return nil
}

// resolve handles the child end of e: a variable occurrence is merged
// into its declaration, anything else is visited.
func (m *merger) resolve(e ast.EdgeID) error {
	child := m.g.Alpha(e)
	if m.g.NodeKind(child) != ast.Variable || m.g.EdgeKind(e).DeclaresVariable() {
		return m.visit(child)
	}
	name := ast.StringAttr(m.g, child, ast.AttrName)
	decl, ok := m.vars.Lookup(name)
	if !ok {
		return &types.UndefinedVariableError{Location: m.location(e), Name: name}
	}
	if decl == child {
		return nil
	}
	m.g.ReassignAlpha(e, decl)
	if len(m.g.Incidences(child, ast.Both)) == 0 {
		m.g.DeleteNode(child)
	}
	return nil
}

// declare enters the variable at the child end of a declaring edge.
func (m *merger) declare(e ast.EdgeID) error {
	v := m.g.Alpha(e)
	name := ast.StringAttr(m.g, v, ast.AttrName)
	err := m.vars.Insert(name, v)
	var dup *symtab.DuplicateError
	if errors.As(err, &dup) {
		return &types.DuplicateVariableError{
			Location: m.location(e),
			Name:     name,
			Previous: m.span(m.declaringEdge(dup.Previous)),
		}
	}
	return err
}

// declaringEdge returns the edge through which v was declared.
func (m *merger) declaringEdge(v ast.NodeID) ast.EdgeID {
	for _, e := range m.g.Incidences(v, ast.Outgoing) {
		if m.g.EdgeKind(e).DeclaresVariable() {
			return e
		}
	}
	return ast.NoEdge
}
