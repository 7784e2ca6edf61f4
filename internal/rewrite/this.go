package rewrite

import (
	"github.com/hashicorp/go-set/v3"

	"github.com/greqlkit/greql/ast"
	"github.com/greqlkit/greql/internal/types"
)

// restrictionEdges are the edges below which thisVertex and thisEdge
// may appear.
var restrictionEdges = set.From([]ast.EdgeKind{
	ast.IsStartRestrOf,
	ast.IsGoalRestrOf,
	ast.IsBooleanPredicateOfEdgeRestriction,
})

var thisLiteralNames = map[ast.NodeKind]string{
	ast.ThisVertex: "thisVertex",
	ast.ThisEdge:   "thisEdge",
}

// internThisLiterals checks that every thisVertex and thisEdge literal is
// used inside a path restriction, then collapses all literals of each
// kind into the first one.
func (r *rewriter) internThisLiterals() error {
	for _, kind := range []ast.NodeKind{ast.ThisVertex, ast.ThisEdge} {
		var literals []ast.NodeID
		for n := r.g.FirstNode(kind); n != ast.NoNode; n = r.g.NextNode(n, kind) {
			if err := r.checkThisLiteral(n); err != nil {
				return err
			}
			literals = append(literals, n)
		}
		if len(literals) > 1 {
			for _, n := range literals[1:] {
				r.replace(n, literals[0])
			}
		}
	}
	return nil
}

// checkThisLiteral walks from a literal towards the root without crossing
// a restriction edge. Reaching the root means the literal is used outside
// any restriction.
func (r *rewriter) checkThisLiteral(lit ast.NodeID) error {
	visited := set.New[ast.NodeID](8)
	visited.Insert(lit)
	queue := []ast.NodeID{lit}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		for _, e := range r.g.Incidences(n, ast.Outgoing) {
			if restrictionEdges.Contains(r.g.EdgeKind(e)) {
				continue
			}
			parent := r.g.Omega(e)
			if parent == r.root {
				return &types.IllegalThisLiteralError{
					Location: r.location(r.occurrence(lit)),
					Literal:  thisLiteralNames[r.g.NodeKind(lit)],
				}
			}
			if visited.Insert(parent) {
				queue = append(queue, parent)
			}
		}
	}
	return nil
}

// occurrence returns the first edge attaching a literal to its parent.
func (r *rewriter) occurrence(lit ast.NodeID) ast.EdgeID {
	if out := r.g.Incidences(lit, ast.Outgoing); len(out) > 0 {
		return out[0]
	}
	return ast.NoEdge
}
