// Package ast provides the graph store that holds a parsed GReQL query.
//
// A query is represented as an abstract syntax graph: typed vertices
// connected by typed aggregation edges that point from a child to its
// structural parent. Every edge created by the parser carries the source
// positions of the construct it attaches. Nodes and edges are addressed by
// integer handles into an arena, so re-pointing an edge is an overwrite of
// its alpha handle.
package ast

import (
	"slices"
)

// NodeID is a handle to a node. The zero value is NoNode.
type NodeID int32

// EdgeID is a handle to an edge. The zero value is NoEdge.
type EdgeID int32

const (
	NoNode NodeID = 0
	NoEdge EdgeID = 0
)

// Position locates a span of the query text.
type Position struct {
	Offset int `json:"offset" yaml:"offset"`
	Length int `json:"length" yaml:"length"`
}

// End returns the exclusive end offset.
func (p Position) End() int {
	return p.Offset + p.Length
}

// EdgeDirection filters incidences relative to a node.
type EdgeDirection uint8

const (
	// Both selects every incident edge.
	Both EdgeDirection = iota
	// Outgoing selects edges whose alpha is the node (towards parents).
	Outgoing
	// Incoming selects edges whose omega is the node (from children).
	Incoming
)

// Store is the capability set the parser and the rewrite passes need from
// a graph store. Implementations must preserve creation order of the
// edges incident to a node.
type Store interface {
	CreateNode(kind NodeKind) NodeID
	CreateEdge(kind EdgeKind, alpha, omega NodeID) EdgeID
	DeleteNode(n NodeID)
	DeleteEdge(e EdgeID)

	ContainsNode(n NodeID) bool
	ContainsEdge(e EdgeID) bool
	NodeKind(n NodeID) NodeKind
	EdgeKind(e EdgeID) EdgeKind

	SetAttr(n NodeID, name string, value any)
	Attr(n NodeID, name string) (any, bool)
	SetPositions(e EdgeID, positions ...Position)
	Positions(e EdgeID) []Position

	Incidences(n NodeID, dir EdgeDirection) []EdgeID
	Alpha(e EdgeID) NodeID
	Omega(e EdgeID) NodeID
	ReassignAlpha(e EdgeID, n NodeID)

	FirstNode(kind NodeKind) NodeID
	NextNode(n NodeID, kind NodeKind) NodeID
	Nodes() []NodeID
	NodeCount() int
	EdgeCount() int
}

type node struct {
	kind       NodeKind
	attrs      map[string]any
	incidences []EdgeID
}

type edge struct {
	kind      EdgeKind
	alpha     NodeID
	omega     NodeID
	positions []Position
}

// Graph is the in-memory arena implementation of Store. Deleted slots
// are left empty and never reused, so handle order equals creation order.
// A Graph is not safe for concurrent use.
type Graph struct {
	nodes     []node
	edges     []edge
	nodeCount int
	edgeCount int
}

var _ Store = (*Graph)(nil)

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{
		nodes: make([]node, 1, 64),
		edges: make([]edge, 1, 64),
	}
}

// CreateNode adds a node of the given kind.
func (g *Graph) CreateNode(kind NodeKind) NodeID {
	g.nodes = append(g.nodes, node{kind: kind})
	g.nodeCount++
	return NodeID(len(g.nodes) - 1)
}

// CreateEdge adds an edge from child alpha to parent omega. Both nodes
// must exist.
func (g *Graph) CreateEdge(kind EdgeKind, alpha, omega NodeID) EdgeID {
	g.mustNode(alpha)
	g.mustNode(omega)
	g.edges = append(g.edges, edge{kind: kind, alpha: alpha, omega: omega})
	id := EdgeID(len(g.edges) - 1)
	g.edgeCount++
	g.nodes[alpha].incidences = append(g.nodes[alpha].incidences, id)
	if omega != alpha {
		g.nodes[omega].incidences = append(g.nodes[omega].incidences, id)
	}
	return id
}

// DeleteNode removes a node together with all its incident edges.
// Deleting a missing node is a no-op.
func (g *Graph) DeleteNode(n NodeID) {
	if !g.ContainsNode(n) {
		return
	}
	for _, e := range slices.Clone(g.nodes[n].incidences) {
		g.DeleteEdge(e)
	}
	g.nodes[n] = node{}
	g.nodeCount--
}

// DeleteEdge removes an edge. Deleting a missing edge is a no-op.
func (g *Graph) DeleteEdge(e EdgeID) {
	if !g.ContainsEdge(e) {
		return
	}
	ed := g.edges[e]
	g.unlink(ed.alpha, e)
	g.unlink(ed.omega, e)
	g.edges[e] = edge{}
	g.edgeCount--
}

func (g *Graph) unlink(n NodeID, e EdgeID) {
	inc := g.nodes[n].incidences
	if i := slices.Index(inc, e); i >= 0 {
		g.nodes[n].incidences = slices.Delete(inc, i, i+1)
	}
}

// ContainsNode reports whether n refers to a live node.
func (g *Graph) ContainsNode(n NodeID) bool {
	return n > 0 && int(n) < len(g.nodes) && g.nodes[n].kind != NodeInvalid
}

// ContainsEdge reports whether e refers to a live edge.
func (g *Graph) ContainsEdge(e EdgeID) bool {
	return e > 0 && int(e) < len(g.edges) && g.edges[e].kind != EdgeInvalid
}

func (g *Graph) mustNode(n NodeID) {
	if !g.ContainsNode(n) {
		panic("ast: invalid node handle")
	}
}

func (g *Graph) mustEdge(e EdgeID) {
	if !g.ContainsEdge(e) {
		panic("ast: invalid edge handle")
	}
}

// NodeKind returns the kind of n, or NodeInvalid for a missing node.
func (g *Graph) NodeKind(n NodeID) NodeKind {
	if !g.ContainsNode(n) {
		return NodeInvalid
	}
	return g.nodes[n].kind
}

// EdgeKind returns the kind of e, or EdgeInvalid for a missing edge.
func (g *Graph) EdgeKind(e EdgeID) EdgeKind {
	if !g.ContainsEdge(e) {
		return EdgeInvalid
	}
	return g.edges[e].kind
}

// SetAttr sets a named attribute on n.
func (g *Graph) SetAttr(n NodeID, name string, value any) {
	g.mustNode(n)
	if g.nodes[n].attrs == nil {
		g.nodes[n].attrs = make(map[string]any, 2)
	}
	g.nodes[n].attrs[name] = value
}

// Attr returns a named attribute of n.
func (g *Graph) Attr(n NodeID, name string) (any, bool) {
	if !g.ContainsNode(n) {
		return nil, false
	}
	v, ok := g.nodes[n].attrs[name]
	return v, ok
}

// AttrNames returns the attribute names set on n, sorted.
func (g *Graph) AttrNames(n NodeID) []string {
	if !g.ContainsNode(n) {
		return nil
	}
	names := make([]string, 0, len(g.nodes[n].attrs))
	for name := range g.nodes[n].attrs {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// SetPositions replaces the source positions of e.
func (g *Graph) SetPositions(e EdgeID, positions ...Position) {
	g.mustEdge(e)
	g.edges[e].positions = slices.Clone(positions)
}

// Positions returns the source positions of e.
func (g *Graph) Positions(e EdgeID) []Position {
	if !g.ContainsEdge(e) {
		return nil
	}
	return g.edges[e].positions
}

// Incidences returns the edges incident to n in creation order,
// filtered by direction.
func (g *Graph) Incidences(n NodeID, dir EdgeDirection) []EdgeID {
	if !g.ContainsNode(n) {
		return nil
	}
	inc := g.nodes[n].incidences
	out := make([]EdgeID, 0, len(inc))
	for _, e := range inc {
		ed := g.edges[e]
		switch dir {
		case Outgoing:
			if ed.alpha != n {
				continue
			}
		case Incoming:
			if ed.omega != n {
				continue
			}
		}
		out = append(out, e)
	}
	slices.Sort(out)
	return out
}

// Degree returns the number of edges incident to n.
func (g *Graph) Degree(n NodeID) int {
	if !g.ContainsNode(n) {
		return 0
	}
	return len(g.nodes[n].incidences)
}

// Alpha returns the child end of e.
func (g *Graph) Alpha(e EdgeID) NodeID {
	if !g.ContainsEdge(e) {
		return NoNode
	}
	return g.edges[e].alpha
}

// Omega returns the parent end of e.
func (g *Graph) Omega(e EdgeID) NodeID {
	if !g.ContainsEdge(e) {
		return NoNode
	}
	return g.edges[e].omega
}

// ReassignAlpha re-points the child end of e to n.
func (g *Graph) ReassignAlpha(e EdgeID, n NodeID) {
	g.mustEdge(e)
	g.mustNode(n)
	old := g.edges[e].alpha
	if old == n {
		return
	}
	if old != g.edges[e].omega {
		g.unlink(old, e)
	}
	g.edges[e].alpha = n
	if n != g.edges[e].omega {
		g.nodes[n].incidences = append(g.nodes[n].incidences, e)
	}
}

// FirstNode returns the first live node of the given kind in creation
// order, or NoNode.
func (g *Graph) FirstNode(kind NodeKind) NodeID {
	return g.NextNode(NoNode, kind)
}

// NextNode returns the next live node of the given kind after n, or
// NoNode.
func (g *Graph) NextNode(n NodeID, kind NodeKind) NodeID {
	for i := int(n) + 1; i < len(g.nodes); i++ {
		if g.nodes[i].kind == kind {
			return NodeID(i)
		}
	}
	return NoNode
}

// Nodes returns all live nodes in creation order.
func (g *Graph) Nodes() []NodeID {
	out := make([]NodeID, 0, g.nodeCount)
	for i := 1; i < len(g.nodes); i++ {
		if g.nodes[i].kind != NodeInvalid {
			out = append(out, NodeID(i))
		}
	}
	return out
}

// Edges returns all live edges in creation order.
func (g *Graph) Edges() []EdgeID {
	out := make([]EdgeID, 0, g.edgeCount)
	for i := 1; i < len(g.edges); i++ {
		if g.edges[i].kind != EdgeInvalid {
			out = append(out, EdgeID(i))
		}
	}
	return out
}

// NodeCount returns the number of live nodes.
func (g *Graph) NodeCount() int {
	return g.nodeCount
}

// EdgeCount returns the number of live edges.
func (g *Graph) EdgeCount() int {
	return g.edgeCount
}
