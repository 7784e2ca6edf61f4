package rewrite

import (
	"github.com/hashicorp/go-set/v3"

	"github.com/greqlkit/greql/ast"
)

// prune deletes every node that cannot be reached from the root by
// walking from parents to children. Shared leaves such as operator
// function ids do not keep dead subtrees alive, since reachability only
// follows edges towards children.
func (r *rewriter) prune() error {
	reached := r.reachable()
	for _, n := range r.g.Nodes() {
		if !reached.Contains(n) {
			r.g.DeleteNode(n)
		}
	}
	return nil
}

func (r *rewriter) reachable() *set.Set[ast.NodeID] {
	reached := set.New[ast.NodeID](r.g.NodeCount())
	reached.Insert(r.root)
	queue := []ast.NodeID{r.root}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		for _, e := range r.g.Incidences(n, ast.Incoming) {
			if child := r.g.Alpha(e); reached.Insert(child) {
				queue = append(queue, child)
			}
		}
	}
	return reached
}
