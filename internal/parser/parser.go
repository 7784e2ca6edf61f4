// Package parser turns a GReQL token stream into an abstract syntax graph.
//
// The grammar is ambiguous in several places (forward vertex sets versus
// path existence, function applications versus variables, parenthesized
// expressions versus path descriptions), and some of these cannot be
// decided with fixed lookahead because a path description of arbitrary
// length may precede the deciding token. The parser therefore tries
// alternatives speculatively ("predicate mode"): a rule is run without
// building any nodes, the cursor is rolled back, and only the alternative
// that matched is parsed again for real. Outcomes of speculative rule
// applications are memoized per (rule, token position), which keeps the
// repeated attempts linear.
//
// Nodes and edges are only created outside predicate mode, so a failed
// attempt never leaves anything in the graph store.
package parser

import (
	"log/slog"

	"github.com/greqlkit/greql/ast"
	"github.com/greqlkit/greql/internal/funclib"
	"github.com/greqlkit/greql/internal/lexer"
	"github.com/greqlkit/greql/internal/symtab"
	"github.com/greqlkit/greql/internal/types"
)

// Config controls a single parse.
type Config struct {
	// Functions decides which identifiers followed by '(' or '{' are
	// function applications. Defaults to funclib.Default().
	Functions funclib.Library
	// Store receives the nodes and edges. Defaults to a new ast.Graph.
	Store ast.Store
	// DisableMemo turns off rule memoization. The resulting graph is the
	// same; only the amount of speculative work changes.
	DisableMemo bool
	// Logger receives debug and trace output. Nil disables logging.
	Logger *slog.Logger
}

// Stats counts the work done by one parse.
type Stats struct {
	Tokens     int `json:"tokens" yaml:"tokens"`
	Predicates int `json:"predicates" yaml:"predicates"`
	MemoHits   int `json:"memoHits" yaml:"memoHits"`
	Nodes      int `json:"nodes" yaml:"nodes"`
	Edges      int `json:"edges" yaml:"edges"`
}

// Parser holds the state of one parse. A Parser must not be reused.
type Parser struct {
	source string
	tokens []lexer.Token
	pos    int

	// Predicate controller: saved cursor positions and success flags.
	// A non-empty stack means predicate mode.
	preds []checkpoint
	ok    bool

	memo     [ruleCount][]int32
	memoErr  [ruleCount][]*types.SyntaxError
	frames   []ruleFrame
	memoize  bool
	farthest *types.SyntaxError

	vars  *symtab.Table
	funcs funclib.Library
	g     ast.Store

	stats Stats
	types.Logger
}

// bailout unwinds a real (non-speculative) parse after a syntax error.
type bailout struct{}

// New returns a parser over tokens, which must end with exactly one EOF
// token, as produced by lexer.Tokenize for source.
func New(source string, tokens []lexer.Token, cfg Config) *Parser {
	if cfg.Functions == nil {
		cfg.Functions = funclib.Default()
	}
	if cfg.Store == nil {
		cfg.Store = ast.NewGraph()
	}
	p := &Parser{
		source:  source,
		tokens:  tokens,
		ok:      true,
		memoize: !cfg.DisableMemo,
		vars:    symtab.New(),
		funcs:   cfg.Functions,
		g:       cfg.Store,
		Logger:  types.Logger{L: cfg.Logger},
	}
	p.stats.Tokens = len(tokens)
	return p
}

// Store returns the graph store the parser writes to.
func (p *Parser) Store() ast.Store {
	return p.g
}

// Stats returns the counters collected so far.
func (p *Parser) Stats() Stats {
	return p.stats
}

// ParseQuery parses the whole token stream and returns the root
// Greql2Expression node. On failure it returns the syntax error that got
// farthest into the input.
func (p *Parser) ParseQuery() (root ast.NodeID, err error) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(bailout); !ok {
				panic(r)
			}
			root, err = ast.NoNode, p.farthest
			p.Log(slog.LevelDebug, "parse failed",
				slog.Int("offset", p.farthest.Offset()),
				slog.String("message", p.farthest.Message))
		}
	}()

	root = p.parseQuery()
	p.Log(slog.LevelDebug, "parse complete",
		slog.Int("tokens", p.stats.Tokens),
		slog.Int("predicates", p.stats.Predicates),
		slog.Int("memoHits", p.stats.MemoHits),
		slog.Int("nodes", p.stats.Nodes),
		slog.Int("edges", p.stats.Edges))
	return root, nil
}
