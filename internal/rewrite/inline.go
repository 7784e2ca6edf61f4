package rewrite

import (
	"github.com/greqlkit/greql/ast"
)

// inlineDefinitions replaces every let and where expression by its bound
// expression, substituting each defined variable with its defining
// expression. Variables must already be merged, so every use of a
// definition refers to the definition's variable node.
func (r *rewriter) inlineDefinitions() error {
	var wrappers []ast.NodeID
	for _, kind := range []ast.NodeKind{ast.LetExpression, ast.WhereExpression} {
		for n := r.g.FirstNode(kind); n != ast.NoNode; n = r.g.NextNode(n, kind) {
			wrappers = append(wrappers, n)
		}
	}
	for _, w := range wrappers {
		for _, def := range ast.Children(r.g, w, ast.IsDefinitionOf) {
			r.inlineDefinition(def)
		}
		bound := ast.FirstChild(r.g, w, ast.IsBoundExprOfDefinition)
		r.replace(w, bound)
	}
	return nil
}

func (r *rewriter) inlineDefinition(def ast.NodeID) {
	v := ast.FirstChild(r.g, def, ast.IsVarOf)
	expr := ast.FirstChild(r.g, def, ast.IsExprOf)
	for _, e := range ast.IncomingEdges(r.g, def, ast.IsVarOf, ast.IsExprOf) {
		r.g.DeleteEdge(e)
	}
	r.replace(v, expr)
	r.g.DeleteNode(def)
}

// replace re-points every edge leaving old to leave n instead and
// deletes old.
func (r *rewriter) replace(old, n ast.NodeID) {
	for _, e := range r.g.Incidences(old, ast.Outgoing) {
		r.g.ReassignAlpha(e, n)
	}
	r.g.DeleteNode(old)
}
