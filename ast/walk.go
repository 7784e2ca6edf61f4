package ast

// Children returns the alphas of the incoming edges of n in creation
// order, optionally restricted to the given edge kinds.
func Children(s Store, n NodeID, kinds ...EdgeKind) []NodeID {
	var out []NodeID
	for _, e := range IncomingEdges(s, n, kinds...) {
		out = append(out, s.Alpha(e))
	}
	return out
}

// IncomingEdges returns the incoming edges of n in creation order,
// optionally restricted to the given edge kinds.
func IncomingEdges(s Store, n NodeID, kinds ...EdgeKind) []EdgeID {
	inc := s.Incidences(n, Incoming)
	if len(kinds) == 0 {
		return inc
	}
	out := inc[:0]
	for _, e := range inc {
		k := s.EdgeKind(e)
		for _, want := range kinds {
			if k == want {
				out = append(out, e)
				break
			}
		}
	}
	return out
}

// FirstChild returns the alpha of the first incoming edge of the given
// kind, or NoNode.
func FirstChild(s Store, n NodeID, kind EdgeKind) NodeID {
	for _, e := range s.Incidences(n, Incoming) {
		if s.EdgeKind(e) == kind {
			return s.Alpha(e)
		}
	}
	return NoNode
}

// StringAttr returns a string attribute, or "" when absent.
func StringAttr(s Store, n NodeID, name string) string {
	v, _ := s.Attr(n, name)
	str, _ := v.(string)
	return str
}

// BoolAttr returns a boolean attribute, or false when absent.
func BoolAttr(s Store, n NodeID, name string) bool {
	v, _ := s.Attr(n, name)
	b, _ := v.(bool)
	return b
}

// FirstPosition returns the first source position of e, and whether it
// had one.
func FirstPosition(s Store, e EdgeID) (Position, bool) {
	ps := s.Positions(e)
	if len(ps) == 0 {
		return Position{}, false
	}
	return ps[0], true
}
