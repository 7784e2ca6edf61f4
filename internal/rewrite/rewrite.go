// Package rewrite runs the passes that turn the raw parse graph into the
// final query graph: variable merging, pruning of unreachable nodes,
// inlining of let and where definitions, and validation and interning of
// thisVertex and thisEdge literals.
package rewrite

import (
	"log/slog"

	"github.com/greqlkit/greql/ast"
	"github.com/greqlkit/greql/internal/types"
)

// Pass names, in execution order.
const (
	PassMerge  = "merge"
	PassPrune  = "prune"
	PassInline = "inline"
	PassThis   = "this"
)

type rewriter struct {
	g      ast.Store
	root   ast.NodeID
	source string
	types.Logger
}

// Run applies all passes to the graph below root. source is the query
// text, used for error locations.
func Run(g ast.Store, root ast.NodeID, source string, logger *slog.Logger) error {
	r := &rewriter{g: g, root: root, source: source, Logger: types.Logger{L: logger}}
	passes := []struct {
		name string
		run  func() error
	}{
		{PassMerge, r.mergeVariables},
		{PassPrune, r.prune},
		{PassInline, r.inlineDefinitions},
		{PassPrune, r.prune},
		{PassThis, r.internThisLiterals},
	}
	for _, pass := range passes {
		if err := pass.run(); err != nil {
			r.Log(slog.LevelDebug, "rewrite failed",
				slog.String("pass", pass.name),
				slog.String("error", err.Error()))
			return err
		}
		r.Log(slog.LevelDebug, "rewrite pass complete",
			slog.String("pass", pass.name),
			slog.Int("nodes", g.NodeCount()),
			slog.Int("edges", g.EdgeCount()))
	}
	return nil
}

// location returns the error location of an edge's first position.
func (r *rewriter) location(e ast.EdgeID) types.Location {
	return types.Location{Span: r.span(e), Source: r.source}
}

func (r *rewriter) span(e ast.EdgeID) types.Span {
	pos, ok := ast.FirstPosition(r.g, e)
	if !ok {
		return types.Span{}
	}
	return types.SpanAt(pos.Offset, pos.Length)
}
