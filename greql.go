// Package greql parses GReQL queries into abstract syntax graphs.
//
// A successful Parse returns a Query whose graph holds typed nodes joined
// by typed edges that point from each construct to its parent. Every edge
// carries the source position of the construct it attaches. Variables are
// merged with their declarations, let and where definitions are inlined,
// and nodes not reachable from the root are removed.
package greql

import (
	"errors"
	"log/slog"

	"github.com/greqlkit/greql/ast"
	"github.com/greqlkit/greql/internal/funclib"
)

// ErrEmptyQuery is returned when the query text holds no tokens.
var ErrEmptyQuery = errors.New("empty query")

// ErrStoreNotEmpty is returned when the store given to WithStore already
// holds nodes. The rewrite passes treat everything in the store as part of
// the query being parsed.
var ErrStoreNotEmpty = errors.New("graph store is not empty")

// LevelTrace is a custom log level more verbose than Debug.
// Use for per-item logging (tokens, memo hits, speculative attempts).
// Enable with: &slog.HandlerOptions{Level: slog.Level(-8)}
const LevelTrace = slog.Level(-8)

// ParseOption configures Parse.
type ParseOption func(*parseConfig)

type parseConfig struct {
	logger     *slog.Logger
	library    funclib.Library
	functions  []string
	subQueries []string
	noMemo     bool
	store      ast.Store
}

// WithLogger sets the logger for debug/trace output.
// If not set, no logging occurs (zero overhead).
func WithLogger(logger *slog.Logger) ParseOption {
	return func(c *parseConfig) { c.logger = logger }
}

// WithFunctions registers additional callable names on top of the
// function library.
func WithFunctions(names ...string) ParseOption {
	return func(c *parseConfig) { c.functions = append(c.functions, names...) }
}

// WithFunctionLibrary replaces the built-in function library.
func WithFunctionLibrary(lib FunctionLibrary) ParseOption {
	return func(c *parseConfig) { c.library = lib }
}

// WithSubQueries declares names of externally defined sub-queries, which
// may be applied like functions.
func WithSubQueries(names ...string) ParseOption {
	return func(c *parseConfig) { c.subQueries = append(c.subQueries, names...) }
}

// WithoutMemoization disables the rule memoization table. The resulting
// graph is the same; parsing may take longer.
func WithoutMemoization() ParseOption {
	return func(c *parseConfig) { c.noMemo = true }
}

// WithStore makes Parse build the graph in store instead of a new
// ast.Graph. The store must be empty; Parse returns ErrStoreNotEmpty
// otherwise. It must not be used concurrently during the parse.
func WithStore(store ast.Store) ParseOption {
	return func(c *parseConfig) { c.store = store }
}

func (c *parseConfig) functionLibrary() funclib.Library {
	lib := c.library
	if lib == nil {
		lib = funclib.Default()
	}
	if len(c.functions) == 0 && len(c.subQueries) == 0 {
		return lib
	}
	extra := funclib.New(c.functions...)
	extra.Register(c.subQueries...)
	return funclib.Union(lib, extra)
}
