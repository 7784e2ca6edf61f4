package ast

import "slices"

// Tree is a serializable view of a subtree, used for JSON and YAML output.
// Shared nodes appear once per use.
type Tree struct {
	ID       NodeID         `json:"id" yaml:"id"`
	Kind     string         `json:"kind" yaml:"kind"`
	Attrs    map[string]any `json:"attrs,omitempty" yaml:"attrs,omitempty"`
	Children []TreeEdge     `json:"children,omitempty" yaml:"children,omitempty"`
}

// TreeEdge is one incoming edge of a Tree node.
type TreeEdge struct {
	Kind      string     `json:"edge" yaml:"edge"`
	Positions []Position `json:"positions,omitempty" yaml:"positions,omitempty"`
	Node      *Tree      `json:"node" yaml:"node"`
}

// Export builds the Tree rooted at n.
func Export(s Store, n NodeID) *Tree {
	t := &Tree{ID: n, Kind: s.NodeKind(n).String()}
	if g, ok := s.(*Graph); ok {
		names := g.AttrNames(n)
		if len(names) > 0 {
			t.Attrs = make(map[string]any, len(names))
			for _, name := range names {
				v, _ := g.Attr(n, name)
				t.Attrs[name] = v
			}
		}
	}
	for _, e := range s.Incidences(n, Incoming) {
		t.Children = append(t.Children, TreeEdge{
			Kind:      s.EdgeKind(e).String(),
			Positions: slices.Clone(s.Positions(e)),
			Node:      Export(s, s.Alpha(e)),
		})
	}
	return t
}
