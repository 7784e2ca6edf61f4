package rewrite

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/greqlkit/greql/ast"
	"github.com/greqlkit/greql/internal/lexer"
	"github.com/greqlkit/greql/internal/parser"
	"github.com/greqlkit/greql/internal/testutil"
	"github.com/greqlkit/greql/internal/types"
)

func rewrite(t *testing.T, src string) (ast.Store, ast.NodeID, error) {
	t.Helper()
	tokens, err := lexer.New([]byte(src), nil).Tokenize()
	require.NoError(t, err)
	p := parser.New(src, tokens, parser.Config{})
	root, err := p.ParseQuery()
	require.NoError(t, err, "query: %s", src)
	return p.Store(), root, Run(p.Store(), root, src, nil)
}

func mustRewrite(t *testing.T, src string) (ast.Store, ast.NodeID) {
	t.Helper()
	g, root, err := rewrite(t, src)
	require.NoError(t, err, "query: %s", src)
	testutil.Reachable(t, g, root, "query: %s", src)
	testutil.PositionsWithin(t, g, src, "query: %s", src)
	return g, root
}

func expr(g ast.Store, root ast.NodeID) ast.NodeID {
	return ast.FirstChild(g, root, ast.IsQueryExprOf)
}

func TestMergeComprehensionVariable(t *testing.T) {
	g, root := mustRewrite(t, "from x:V{Person} report x end")
	comp := expr(g, root)
	require.Equal(t,
		"ListComprehension(Declaration(SimpleDeclaration(x, VertexSetExpression(Person))), x)",
		ast.Format(g, comp))
	require.Equal(t, 1, testutil.CountKind(g, ast.Variable))

	sd := ast.FirstChild(g, ast.FirstChild(g, comp, ast.IsCompDeclOf), ast.IsSimpleDeclOf)
	declared := ast.FirstChild(g, sd, ast.IsDeclaredVarOf)
	require.Equal(t, declared, ast.FirstChild(g, comp, ast.IsCompResultDefOf))
}

func TestMergeWhereUsesBeforeDefinitions(t *testing.T) {
	g, root := mustRewrite(t, "x + x where x := 1 + 2")
	add := expr(g, root)
	require.Equal(t, "add(add(1, 2), add(1, 2))", ast.Format(g, add))

	args := ast.Children(g, add, ast.IsArgumentOf)
	require.Len(t, args, 2)
	require.Equal(t, args[0], args[1], "both uses share the defining expression")
	require.Zero(t, testutil.CountKind(g, ast.Variable))
	require.Zero(t, testutil.CountKind(g, ast.WhereExpression))
	require.Zero(t, testutil.CountKind(g, ast.Definition))
}

func TestInlineLet(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"let x := 1 in x + x", "add(1, 1)"},
		{"let x := 1 in let y := x + 1 in y * y", "mul(add(1, 1), add(1, 1))"},
		{"let x := 1, y := x * 2 in y", "mul(1, 2)"},
		{"x where x := y where y := 3", "3"},
		{"let x := 1 in x where y := 2", "1"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			g, root := mustRewrite(t, tt.src)
			require.Equal(t, tt.want, ast.Format(g, expr(g, root)))
			require.Zero(t, testutil.CountKind(g, ast.LetExpression))
			require.Zero(t, testutil.CountKind(g, ast.WhereExpression))
			require.Zero(t, testutil.CountKind(g, ast.Definition))
		})
	}
}

func TestPruneUnusedDefinition(t *testing.T) {
	g, root := mustRewrite(t, "let x := 1, y := 2 in x")
	require.Equal(t, "1", ast.Format(g, expr(g, root)))
	require.Equal(t, 1, testutil.CountKind(g, ast.IntLiteral))
	require.Equal(t, 2, g.NodeCount())
	require.Equal(t, 1, g.EdgeCount())
}

func TestShadowing(t *testing.T) {
	g, root := mustRewrite(t, "from x : V report from x : E report x end end")
	outer := expr(g, root)
	inner := ast.FirstChild(g, outer, ast.IsCompResultDefOf)
	require.Equal(t, ast.ListComprehension, g.NodeKind(inner))

	sd := ast.FirstChild(g, ast.FirstChild(g, inner, ast.IsCompDeclOf), ast.IsSimpleDeclOf)
	innerX := ast.FirstChild(g, sd, ast.IsDeclaredVarOf)
	require.Equal(t, innerX, ast.FirstChild(g, inner, ast.IsCompResultDefOf))
	require.Equal(t, 2, testutil.CountKind(g, ast.Variable))
}

func TestUndefinedVariable(t *testing.T) {
	tests := []struct {
		src    string
		name   string
		offset int
	}{
		{"from x : V report y end", "y", 18},
		{"(forall x : V @ true) and x", "x", 26},
		{"using x: x + y", "y", 13},
		// A definition only sees the definitions before it.
		{"x where x := y, y := 2", "y", 13},
		{"let a := b, b := 1 in a", "b", 9},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			_, _, err := rewrite(t, tt.src)
			var ue *types.UndefinedVariableError
			require.True(t, errors.As(err, &ue), "got %v", err)
			require.Equal(t, tt.name, ue.Name)
			require.Equal(t, tt.offset, ue.Offset())
			require.Equal(t, 1, ue.Length())
		})
	}
}

func TestDuplicateVariable(t *testing.T) {
	tests := []struct {
		src      string
		offset   int
		previous int
	}{
		{"from x : V, x : E report x end", 12, 5},
		{"let x := 1, x := 2 in x", 12, 4},
		{"using x, x: x", 9, 6},
		{"from x, x : V report x end", 8, 5},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			_, _, err := rewrite(t, tt.src)
			var de *types.DuplicateVariableError
			require.True(t, errors.As(err, &de), "got %v", err)
			require.Equal(t, "x", de.Name)
			require.Equal(t, tt.offset, de.Offset())
			require.Equal(t, types.ByteOffset(tt.previous), de.Previous.Start)
		})
	}
}

func TestThisLiterals(t *testing.T) {
	g, _ := mustRewrite(t, "using x, y: x -->{@ thisEdge.w > 1} -->{@ thisEdge.w < 5} & {thisVertex.a = 1} y")
	require.Equal(t, 1, testutil.CountKind(g, ast.ThisEdge))
	require.Equal(t, 1, testutil.CountKind(g, ast.ThisVertex))

	te := g.FirstNode(ast.ThisEdge)
	require.Len(t, g.Incidences(te, ast.Outgoing), 2, "both predicates use the interned literal")
}

func TestIllegalThisLiteral(t *testing.T) {
	tests := []struct {
		src     string
		literal string
		offset  int
		length  int
	}{
		{"thisVertex", "thisVertex", 0, 10},
		{"using x: count(thisEdge)", "thisEdge", 15, 8},
		{"using x, y: x --> y and thisVertex", "thisVertex", 24, 10},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			_, _, err := rewrite(t, tt.src)
			var te *types.IllegalThisLiteralError
			require.True(t, errors.As(err, &te), "got %v", err)
			require.Equal(t, tt.literal, te.Literal)
			require.Equal(t, tt.offset, te.Offset())
			require.Equal(t, tt.length, te.Length())
		})
	}
}
