package tour

// Edge is an undirected edge between two point indices, normalized so A <= B.
type Edge struct{ A, B int }

// NewEdge returns the normalized edge between a and b.
func NewEdge(a, b int) Edge {
	if a > b {
		a, b = b, a
	}
	return Edge{A: a, B: b}
}

// EdgeSet is a set of undirected edges.
type EdgeSet map[Edge]struct{}

// Edges returns the undirected edges between consecutive positions of t.
func Edges(t Tour) EdgeSet {
	set := make(EdgeSet, len(t))
	for i := 1; i < len(t); i++ {
		set[NewEdge(t[i-1], t[i])] = struct{}{}
	}
	return set
}

// Has reports whether e is in the set.
func (s EdgeSet) Has(e Edge) bool {
	_, ok := s[e]
	return ok
}

// Intersect returns the edges present in both s and other.
func (s EdgeSet) Intersect(other EdgeSet) EdgeSet {
	small, large := s, other
	if len(large) < len(small) {
		small, large = large, small
	}
	out := make(EdgeSet, len(small))
	for e := range small {
		if large.Has(e) {
			out[e] = struct{}{}
		}
	}
	return out
}
