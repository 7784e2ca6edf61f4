// Package testutil provides assertion helpers for query graphs.
package testutil

import (
	"fmt"
	"testing"

	"github.com/greqlkit/greql/ast"
)

// Reachable fails the test if some node of s cannot be reached from root
// by walking from parents to children.
func Reachable(t testing.TB, s ast.Store, root ast.NodeID, msgAndArgs ...any) {
	t.Helper()
	reached := map[ast.NodeID]bool{root: true}
	queue := []ast.NodeID{root}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		for _, c := range ast.Children(s, n) {
			if !reached[c] {
				reached[c] = true
				queue = append(queue, c)
			}
		}
	}
	for _, n := range s.Nodes() {
		if !reached[n] {
			t.Fatalf("%s: node %d (%s) is unreachable from the root",
				formatMsg(msgAndArgs), n, s.NodeKind(n))
		}
	}
}

// PositionsWithin fails the test if an edge lacks a position or has one
// outside [0, len(source)].
func PositionsWithin(t testing.TB, s ast.Store, source string, msgAndArgs ...any) {
	t.Helper()
	for _, n := range s.Nodes() {
		for _, e := range s.Incidences(n, ast.Incoming) {
			ps := s.Positions(e)
			if len(ps) == 0 {
				t.Fatalf("%s: edge %d (%s) has no position", formatMsg(msgAndArgs), e, s.EdgeKind(e))
			}
			for _, p := range ps {
				if p.Offset < 0 || p.Length < 0 || p.End() > len(source) {
					t.Fatalf("%s: edge %d (%s) position %d+%d outside source of length %d",
						formatMsg(msgAndArgs), e, s.EdgeKind(e), p.Offset, p.Length, len(source))
				}
			}
		}
	}
}

// CountKind returns the number of nodes of the given kind.
func CountKind(s ast.Store, kind ast.NodeKind) int {
	count := 0
	for n := s.FirstNode(kind); n != ast.NoNode; n = s.NextNode(n, kind) {
		count++
	}
	return count
}

func formatMsg(msgAndArgs []any) string {
	if len(msgAndArgs) == 0 {
		return "assertion failed"
	}
	msg, ok := msgAndArgs[0].(string)
	if !ok {
		return "assertion failed"
	}
	if len(msgAndArgs) == 1 {
		return msg
	}
	return fmt.Sprintf(msg, msgAndArgs[1:]...)
}
