package testutil

import (
	"testing"

	"github.com/greqlkit/greql/ast"
)

// mockTB captures whether a test failure occurred.
type mockTB struct {
	testing.TB // embedded for unimplemented methods
	failed     bool
}

func (m *mockTB) Helper()                           {}
func (m *mockTB) Fatal(args ...any)                 { m.failed = true }
func (m *mockTB) Fatalf(format string, args ...any) { m.failed = true }

func smallGraph() (*ast.Graph, ast.NodeID, ast.NodeID) {
	g := ast.NewGraph()
	root := g.CreateNode(ast.Greql2Expression)
	v := g.CreateNode(ast.Variable)
	e := g.CreateEdge(ast.IsQueryExprOf, v, root)
	g.SetPositions(e, ast.Position{Offset: 0, Length: 1})
	return g, root, v
}

func TestReachable(t *testing.T) {
	g, root, _ := smallGraph()

	m := &mockTB{}
	Reachable(m, g, root)
	if m.failed {
		t.Error("connected graph should pass")
	}

	g.CreateNode(ast.IntLiteral)
	m = &mockTB{}
	Reachable(m, g, root)
	if !m.failed {
		t.Error("orphan node should fail")
	}
}

func TestPositionsWithin(t *testing.T) {
	g, _, _ := smallGraph()

	m := &mockTB{}
	PositionsWithin(m, g, "x")
	if m.failed {
		t.Error("in-range position should pass")
	}

	m = &mockTB{}
	PositionsWithin(m, g, "")
	if !m.failed {
		t.Error("position past the end should fail")
	}

	g2, root2, _ := smallGraph()
	g2.CreateEdge(ast.IsBoundVarOf, g2.CreateNode(ast.Variable), root2)
	m = &mockTB{}
	PositionsWithin(m, g2, "x")
	if !m.failed {
		t.Error("edge without position should fail")
	}
}

func TestCountKind(t *testing.T) {
	g, _, _ := smallGraph()
	g.CreateNode(ast.Variable)
	if got := CountKind(g, ast.Variable); got != 2 {
		t.Errorf("CountKind(Variable) = %d, want 2", got)
	}
	if got := CountKind(g, ast.IntLiteral); got != 0 {
		t.Errorf("CountKind(IntLiteral) = %d, want 0", got)
	}
}
