package greql

import (
	"log/slog"

	"github.com/greqlkit/greql/ast"
	"github.com/greqlkit/greql/internal/lexer"
	"github.com/greqlkit/greql/internal/parser"
	"github.com/greqlkit/greql/internal/rewrite"
	"github.com/greqlkit/greql/internal/types"
)

// Query is a parsed and rewritten GReQL query.
type Query struct {
	// Text is the query source.
	Text string
	// Graph holds the query's nodes and edges.
	Graph ast.Store
	// Root is the Greql2Expression node.
	Root ast.NodeID
	// Stats describes the work done by the parse.
	Stats Stats
}

// Stats counts the work done while parsing one query.
type Stats struct {
	Tokens int `json:"tokens" yaml:"tokens"`
	// Predicates is the number of speculative rule applications.
	Predicates int `json:"predicates" yaml:"predicates"`
	// MemoHits is the number of speculative applications answered from
	// the memoization table.
	MemoHits int `json:"memoHits" yaml:"memoHits"`
	// ParsedNodes and ParsedEdges count what the grammar pass created.
	ParsedNodes int `json:"parsedNodes" yaml:"parsedNodes"`
	ParsedEdges int `json:"parsedEdges" yaml:"parsedEdges"`
	// Nodes and Edges count what remains after rewriting.
	Nodes int `json:"nodes" yaml:"nodes"`
	Edges int `json:"edges" yaml:"edges"`
}

// Parse parses a GReQL query.
//
// Errors are one of *LexError, *SyntaxError, *DuplicateVariableError,
// *UndefinedVariableError, *IllegalThisLiteralError, ErrEmptyQuery or
// ErrStoreNotEmpty.
//
// Example:
//
//	q, err := greql.Parse(`from x : V{Person} report x.name end`)
//	if err != nil {
//	    var se *greql.SyntaxError
//	    if errors.As(err, &se) {
//	        fmt.Println(se.Excerpt())
//	    }
//	    return err
//	}
//	fmt.Println(q)
func Parse(text string, opts ...ParseOption) (*Query, error) {
	var cfg parseConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	logger := types.Logger{L: cfg.logger}
	if cfg.store != nil && cfg.store.NodeCount() > 0 {
		return nil, ErrStoreNotEmpty
	}

	tokens, err := lexer.New([]byte(text), types.ComponentLogger(cfg.logger, "lexer")).Tokenize()
	if err != nil {
		return nil, err
	}
	if len(tokens) == 1 {
		return nil, ErrEmptyQuery
	}

	store := cfg.store
	if store == nil {
		store = ast.NewGraph()
	}
	p := parser.New(text, tokens, parser.Config{
		Functions:   cfg.functionLibrary(),
		Store:       store,
		DisableMemo: cfg.noMemo,
		Logger:      types.ComponentLogger(cfg.logger, "parser"),
	})
	root, err := p.ParseQuery()
	if err != nil {
		return nil, err
	}
	if err := rewrite.Run(store, root, text, types.ComponentLogger(cfg.logger, "rewrite")); err != nil {
		return nil, err
	}

	ps := p.Stats()
	q := &Query{
		Text:  text,
		Graph: store,
		Root:  root,
		Stats: Stats{
			Tokens:      ps.Tokens,
			Predicates:  ps.Predicates,
			MemoHits:    ps.MemoHits,
			ParsedNodes: ps.Nodes,
			ParsedEdges: ps.Edges,
			Nodes:       store.NodeCount(),
			Edges:       store.EdgeCount(),
		},
	}
	logger.Log(slog.LevelDebug, "query parsed",
		slog.Int("tokens", q.Stats.Tokens),
		slog.Int("nodes", q.Stats.Nodes),
		slog.Int("edges", q.Stats.Edges))
	return q, nil
}

// Expression returns the query's main expression node.
func (q *Query) Expression() ast.NodeID {
	return ast.FirstChild(q.Graph, q.Root, ast.IsQueryExprOf)
}

// BoundVariables returns the names declared by the using clause.
func (q *Query) BoundVariables() []string {
	var names []string
	for _, v := range ast.Children(q.Graph, q.Root, ast.IsBoundVarOf) {
		names = append(names, ast.StringAttr(q.Graph, v, ast.AttrName))
	}
	return names
}

// ImportedTypes returns the qualified names from import clauses.
func (q *Query) ImportedTypes() []string {
	v, _ := q.Graph.Attr(q.Root, ast.AttrImportedTypes)
	names, _ := v.([]string)
	return names
}

// StoreAs returns the name given by a "store as" clause, or "".
func (q *Query) StoreAs() string {
	id := ast.FirstChild(q.Graph, q.Root, ast.IsIdOf)
	if id == ast.NoNode {
		return ""
	}
	return ast.StringAttr(q.Graph, id, ast.AttrName)
}

// String renders the main expression in compact functional notation.
func (q *Query) String() string {
	return ast.Format(q.Graph, q.Expression())
}

// Sexpr renders the whole query graph with edge kinds and positions.
func (q *Query) Sexpr() string {
	return ast.Sexpr(q.Graph, q.Root)
}

// Export returns a serializable tree of the whole query graph.
func (q *Query) Export() *ast.Tree {
	return ast.Export(q.Graph, q.Root)
}
