package parser

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/greqlkit/greql/ast"
	"github.com/greqlkit/greql/internal/funclib"
	"github.com/greqlkit/greql/internal/lexer"
	"github.com/greqlkit/greql/internal/types"
)

func newParser(t *testing.T, src string, cfg Config) *Parser {
	t.Helper()
	tokens, err := lexer.New([]byte(src), nil).Tokenize()
	require.NoError(t, err)
	return New(src, tokens, cfg)
}

func parse(t *testing.T, src string) (*Parser, ast.NodeID) {
	t.Helper()
	p := newParser(t, src, Config{})
	root, err := p.ParseQuery()
	require.NoError(t, err, "query: %s", src)
	return p, root
}

// shape renders the main expression of src before any rewriting.
func shape(t *testing.T, src string) string {
	t.Helper()
	p, root := parse(t, src)
	return ast.Format(p.Store(), ast.FirstChild(p.Store(), root, ast.IsQueryExprOf))
}

func parseErr(t *testing.T, src string, cfg Config) *types.SyntaxError {
	t.Helper()
	p := newParser(t, src, cfg)
	root, err := p.ParseQuery()
	require.Error(t, err, "query: %s", src)
	require.Equal(t, ast.NoNode, root)
	var se *types.SyntaxError
	require.True(t, errors.As(err, &se), "got %T", err)
	return se
}

func TestParseOperators(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"1 + 2 * 3", "add(1, mul(2, 3))"},
		{"1 - 2 - 3", "sub(1, sub(2, 3))"},
		{"1 * 2 + 3", "add(mul(1, 2), 3)"},
		{"(1 + 2) * 3", "mul(add(1, 2), 3)"},
		{"a or b and c", "or(a, and(b, c))"},
		{"a xor b", "xor(a, b)"},
		{"not a and b", "and(not(a), b)"},
		{"-1", "neg(1)"},
		{"a = b", "equals(a, b)"},
		{"a < b + 1", "leThan(a, add(b, 1))"},
		{"a ++ b", "concat(a, b)"},
		{"a ? 1 : 2", "ConditionalExpression(a, 1, 2)"},
		{`"hi"`, `"hi"`},
		{"2.5", "2.5"},
		{"true", "true"},
		{"undefined", "undefined"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			require.Equal(t, tt.want, shape(t, tt.src))
		})
	}
}

func TestParseValueAccess(t *testing.T) {
	require.Equal(t, "getValue(x, name)", shape(t, "x.name"))
	require.Equal(t, "get(x, 1)", shape(t, "x[1]"))
	require.Equal(t, "getValue(get(x, 1), name)", shape(t, "x[1].name"))
}

func TestParseFunctionOrVariable(t *testing.T) {
	require.Equal(t, "count(VertexSetExpression(Person))", shape(t, "count(V{Person})"))
	require.Equal(t, "degree{Knows}(v)", shape(t, "degree{Knows}(v)"))

	// An unknown name is a variable, which cannot be followed by '('.
	parseErr(t, "myFunc(1)", Config{})

	p := newParser(t, "myFunc(1)", Config{Functions: funclib.New("myFunc")})
	root, err := p.ParseQuery()
	require.NoError(t, err)
	require.Equal(t, "myFunc(1)", ast.Format(p.Store(), ast.FirstChild(p.Store(), root, ast.IsQueryExprOf)))
}

func TestParseValueConstruction(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"set(1, 2)", "SetConstruction(1, 2)"},
		{"list(1, 2)", "ListConstruction(1, 2)"},
		{"list(1..3)", "ListRangeConstruction(1, 3)"},
		{"list()", "ListConstruction"},
		{"tup(1, \"a\")", `TupleConstruction(1, "a")`},
		{"rec(a: 1, b: 2)", "RecordConstruction(RecordElement(a, 1), RecordElement(b, 2))"},
		{`map(1 -> "a")`, `MapConstruction(1, "a")`},
		{"V{^Person!, Knows}", "VertexSetExpression(^Person!, Knows)"},
		{"E", "EdgeSetExpression"},
		{"V{schema.V, T}", "VertexSetExpression(schema.V, T)"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			require.Equal(t, tt.want, shape(t, tt.src))
		})
	}
}

func TestParsePaths(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"x --> y", "PathExistence(x, SimplePathDescription(out), y)"},
		{"x -->", "ForwardVertexSet(x, SimplePathDescription(out))"},
		{"<-- y", "BackwardVertexSet(SimplePathDescription(in), y)"},
		{"x <-> y", "PathExistence(x, SimplePathDescription(any), y)"},
		{"x -->* y", "PathExistence(x, IteratedPathDescription[star](SimplePathDescription(out)), y)"},
		{"x -->+ y", "PathExistence(x, IteratedPathDescription[plus](SimplePathDescription(out)), y)"},
		{"x -->^T y", "PathExistence(x, TransposedPathDescription(SimplePathDescription(out)), y)"},
		{"x -->^2 y", "PathExistence(x, ExponentiatedPathDescription(SimplePathDescription(out), 2), y)"},
		{"x --> <-- y", "PathExistence(x, SequentialPathDescription(SimplePathDescription(out), SimplePathDescription(in)), y)"},
		{"x --> | <-- y", "PathExistence(x, AlternativePathDescription(SimplePathDescription(out), SimplePathDescription(in)), y)"},
		{"a --> b --> c", "PathExistence(a, IntermediateVertexPathDescription(SimplePathDescription(out), b, SimplePathDescription(out)), c)"},
		{"x [-->] y", "PathExistence(x, OptionalPathDescription(SimplePathDescription(out)), y)"},
		{"x (--> <--) y", "PathExistence(x, SequentialPathDescription(SimplePathDescription(out), SimplePathDescription(in)), y)"},
		{"x -->{Knows} y", "PathExistence(x, SimplePathDescription(out, EdgeRestriction(Knows)), y)"},
		{"x -->{E} y", "PathExistence(x, SimplePathDescription(out, EdgeRestriction(E)), y)"},
		{"x <>--{E} y", "PathExistence(x, AggregationPathDescription[true](EdgeRestriction(E)), y)"},
		{"x -->{#src} y", "PathExistence(x, SimplePathDescription(out, EdgeRestriction(#src)), y)"},
		{"x --e-> y", "PathExistence(x, EdgePathDescription(out, e), y)"},
		{"x <-e-- y", "PathExistence(x, EdgePathDescription(in, e), y)"},
		{"x --e-- y", "PathExistence(x, EdgePathDescription(any, e), y)"},
		{"x <>-- y", "PathExistence(x, AggregationPathDescription[true], y)"},
		{"x --<> y", "PathExistence(x, AggregationPathDescription[false], y)"},
		{"x {Person} & --> y", "PathExistence(x, SimplePathDescription(out, Person), y)"},
		{"x --> & {Person} y", "PathExistence(x, SimplePathDescription(out, Person), y)"},
		{"x :-) -->", "pathSystem(x, SimplePathDescription(out))"},
		{"x :-) --> :-) y", "pathSystem(x, SimplePathDescription(out), y)"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			require.Equal(t, tt.want, shape(t, tt.src))
		})
	}
}

func TestParseEdgeRestrictionPredicate(t *testing.T) {
	require.Equal(t,
		"PathExistence(x, SimplePathDescription(out, EdgeRestriction(grThan(getValue(thisEdge, weight), 1))), y)",
		shape(t, "x -->{@ thisEdge.weight > 1} y"))
	require.Equal(t,
		"PathExistence(x, SimplePathDescription(out, EdgeRestriction(Knows, grThan(getValue(thisEdge, weight), 1))), y)",
		shape(t, "x -->{Knows @ thisEdge.weight > 1} y"))
}

func TestParseComprehension(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{
			"from x : V{Person} report x end",
			"ListComprehension(Declaration(SimpleDeclaration(x, VertexSetExpression(Person))), x)",
		},
		{
			`from x : V report x as "a", x as "b" end`,
			`ListComprehension(Declaration(SimpleDeclaration(x, VertexSetExpression)), "a", "b", TupleConstruction(x, x))`,
		},
		{
			"from x : V reportSet x end",
			"SetComprehension(Declaration(SimpleDeclaration(x, VertexSetExpression)), x)",
		},
		{
			"from x : V reportSetN 10 : x end",
			"SetComprehension(Declaration(SimpleDeclaration(x, VertexSetExpression)), 10, x)",
		},
		{
			"from x : V reportMap x -> x.name end",
			"MapComprehension(Declaration(SimpleDeclaration(x, VertexSetExpression)), x, getValue(x, name))",
		},
		{
			"from x, y : V with x --> y report x end",
			"ListComprehension(Declaration(SimpleDeclaration(x, y, VertexSetExpression), PathExistence(x, SimplePathDescription(out), y)), x)",
		},
		{
			"from x : V, e : E, x = e report x end",
			"ListComprehension(Declaration(SimpleDeclaration(x, VertexSetExpression), SimpleDeclaration(e, EdgeSetExpression), equals(x, e)), x)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			require.Equal(t, tt.want, shape(t, tt.src))
		})
	}
}

func TestParseDefinitionsAndQuantifiers(t *testing.T) {
	require.Equal(t, "LetExpression(Definition(x, 1), add(x, x))", shape(t, "let x := 1 in x + x"))
	require.Equal(t, "WhereExpression(add(x, 1), Definition(x, 2))", shape(t, "x + 1 where x := 2"))
	require.Equal(t,
		"WhereExpression(add(x, y), Definition(x, 1), Definition(y, 2))",
		shape(t, "x + y where x := 1, y := 2"))
	require.Equal(t,
		"QuantifiedExpression(forall, Declaration(SimpleDeclaration(x, VertexSetExpression)), grThan(getValue(x, age), 18))",
		shape(t, "forall x : V @ x.age > 18"))
	require.Equal(t,
		"QuantifiedExpression(exists!, Declaration(SimpleDeclaration(x, VertexSetExpression)), true)",
		shape(t, "exists! x : V @ true"))
}

func TestParseQueryClauses(t *testing.T) {
	p, root := parse(t, "import a.b.*; import c.D; using x, y: x + y store as result")
	g := p.Store()

	imported, _ := g.Attr(root, ast.AttrImportedTypes)
	require.Equal(t, []string{"a.b.*", "c.D"}, imported)

	var bound []string
	for _, v := range ast.Children(g, root, ast.IsBoundVarOf) {
		bound = append(bound, ast.StringAttr(g, v, ast.AttrName))
	}
	require.Equal(t, []string{"x", "y"}, bound)

	// The uses resolve to the bound variables during parsing.
	expr := ast.FirstChild(g, root, ast.IsQueryExprOf)
	args := ast.Children(g, expr, ast.IsArgumentOf)
	require.Equal(t, ast.Children(g, root, ast.IsBoundVarOf), args)

	id := ast.FirstChild(g, root, ast.IsIdOf)
	require.Equal(t, "result", ast.StringAttr(g, id, ast.AttrName))
	require.Equal(t, p.source, ast.StringAttr(g, root, ast.AttrQueryText))
}

func TestParsePositions(t *testing.T) {
	p, root := parse(t, "x --> y")
	g := p.Store()

	e := ast.IncomingEdges(g, root, ast.IsQueryExprOf)[0]
	require.Equal(t, []ast.Position{{Offset: 0, Length: 7}}, g.Positions(e))

	pe := g.Alpha(e)
	want := map[ast.EdgeKind]ast.Position{
		ast.IsStartExprOf:  {Offset: 0, Length: 1},
		ast.IsPathOf:       {Offset: 2, Length: 3},
		ast.IsTargetExprOf: {Offset: 6, Length: 1},
	}
	for _, e := range ast.IncomingEdges(g, pe) {
		require.Equal(t, []ast.Position{want[g.EdgeKind(e)]}, g.Positions(e), "edge %s", g.EdgeKind(e))
	}

	// Operator function ids are positioned on the operator token.
	p, root = parse(t, "1 + 2 * 3")
	g = p.Store()
	add := ast.FirstChild(g, root, ast.IsQueryExprOf)
	fid := ast.IncomingEdges(g, add, ast.IsFunctionIdOf)[0]
	require.Equal(t, []ast.Position{{Offset: 2, Length: 1}}, g.Positions(fid))
	args := ast.IncomingEdges(g, add, ast.IsArgumentOf)
	require.Equal(t, []ast.Position{{Offset: 4, Length: 5}}, g.Positions(args[1]))
}

func TestEdgePathDirectionPositions(t *testing.T) {
	p, root := parse(t, "x --e-> y")
	g := p.Store()
	pe := ast.FirstChild(g, root, ast.IsQueryExprOf)
	path := ast.FirstChild(g, pe, ast.IsPathOf)
	dir := ast.IncomingEdges(g, path, ast.IsDirectionOf)[0]
	require.Equal(t, []ast.Position{{Offset: 2, Length: 2}, {Offset: 5, Length: 2}}, g.Positions(dir))
}

func TestSpeculationCreatesNothing(t *testing.T) {
	p, _ := parse(t, "x --> y")
	g := p.Store()
	// root, x, y, PathExistence, SimplePathDescription, Direction
	require.Equal(t, 6, g.NodeCount())
	require.Equal(t, 5, g.EdgeCount())
	require.Positive(t, p.Stats().Predicates)

	for _, src := range []string{
		"x --> y",
		"a --> b --> c",
		"from x : V report x as \"a\", x end",
		"from x : V report x end",
		"x -->{Knows @ thisEdge.weight > 1} y",
		"x --e-> y",
	} {
		p, _ := parse(t, src)
		st := p.Stats()
		require.Equal(t, p.Store().NodeCount(), st.Nodes, "nodes for %s", src)
		require.Equal(t, p.Store().EdgeCount(), st.Edges, "edges for %s", src)
	}
}

func TestCanonicalNodesAreShared(t *testing.T) {
	p, _ := parse(t, "1 + 2 + 3 + true + true")
	g := p.Store()
	count := func(kind ast.NodeKind) int {
		n := 0
		for id := g.FirstNode(kind); id != ast.NoNode; id = g.NextNode(id, kind) {
			n++
		}
		return n
	}
	require.Equal(t, 1, count(ast.FunctionId))
	require.Equal(t, 1, count(ast.BoolLiteral))
	require.Equal(t, 3, count(ast.IntLiteral))
}

func TestMemoization(t *testing.T) {
	queries := []string{
		"x --> y",
		"a --> b --> c --> d",
		"from x : V{Person} with x -->{Knows}* <-- y report x.name end",
		"(x --> y) and (y <-- z)",
	}
	for _, src := range queries {
		t.Run(src, func(t *testing.T) {
			memo, root := parse(t, src)

			plain := newParser(t, src, Config{DisableMemo: true})
			plainRoot, err := plain.ParseQuery()
			require.NoError(t, err)

			require.Equal(t, ast.Sexpr(memo.Store(), root), ast.Sexpr(plain.Store(), plainRoot))
			require.Zero(t, plain.Stats().MemoHits)
			require.GreaterOrEqual(t, plain.Stats().Predicates, memo.Stats().Predicates)
		})
	}

	memo, _ := parse(t, "x --> y")
	require.Positive(t, memo.Stats().MemoHits)
}

func TestMemoizationKeepsErrors(t *testing.T) {
	queries := []string{
		"<-- (",
		"--> (",
		"x --> (",
		"(x <-- (",
		"x -->{",
		"[--> y",
		"from x : V report <-- ( end",
		"x --y",
		"1 +",
	}
	for _, src := range queries {
		t.Run(src, func(t *testing.T) {
			memo := parseErr(t, src, Config{})
			plain := parseErr(t, src, Config{DisableMemo: true})
			require.Equal(t, plain.Error(), memo.Error())
			require.Equal(t, plain.Offset(), memo.Offset())
		})
	}
}

func TestSyntaxErrors(t *testing.T) {
	tests := []struct {
		src     string
		offset  int
		token   string
		message string
	}{
		{"from x: report x end", 8, "report", "expected expression"},
		{"1 +", 3, "", "expected expression"},
		{"from x : V x end", 11, "x", "expected report clause"},
		{"from x : V report x", 19, "", `expected "end"`},
		{"let x := 1 x", 11, "x", `expected "in"`},
		{"x --e y", 6, "y", `expected "->" or "--"`},
		{"1 2", 2, "2", "expected end of query"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			se := parseErr(t, tt.src, Config{})
			require.Equal(t, tt.offset, se.Offset())
			require.Equal(t, tt.token, se.Token)
			require.Equal(t, tt.message, se.Message)
		})
	}
}

func TestSyntaxErrorFarthest(t *testing.T) {
	se := parseErr(t, "from x: report x end", Config{})
	require.Equal(t, `1:9: expected expression, found "report"`, se.Error())

	se = parseErr(t, "1 +", Config{})
	require.Equal(t, "1:4: expected expression at end of query", se.Error())
}
