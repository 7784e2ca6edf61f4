package greql

import (
	"github.com/greqlkit/greql/ast"
	"github.com/greqlkit/greql/internal/funclib"
	"github.com/greqlkit/greql/internal/types"
)

// Type aliases for the public API.

// NodeID is a handle to a node of the query graph.
type NodeID = ast.NodeID

// EdgeID is a handle to an edge of the query graph.
type EdgeID = ast.EdgeID

// Position is a source span attached to an edge.
type Position = ast.Position

// Store is the graph store interface the parser writes to.
type Store = ast.Store

// FunctionLibrary decides which identifiers are callable.
type FunctionLibrary = funclib.Library

// Error types. Use errors.As to inspect them.

// Location locates an error in the query text.
type Location = types.Location

// LexError is a tokenization failure.
type LexError = types.LexError

// SyntaxError is the grammar failure that got farthest into the query.
type SyntaxError = types.SyntaxError

// DuplicateVariableError reports a variable declared twice in one scope.
type DuplicateVariableError = types.DuplicateVariableError

// UndefinedVariableError reports a variable without a declaration.
type UndefinedVariableError = types.UndefinedVariableError

// IllegalThisLiteralError reports thisVertex or thisEdge outside a path
// restriction.
type IllegalThisLiteralError = types.IllegalThisLiteralError

// DefaultFunctions returns the names of the built-in function library.
func DefaultFunctions() []string {
	return funclib.Default().Names()
}
