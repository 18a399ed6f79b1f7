package evo

import (
	"math/rand/v2"
	"slices"

	"github.com/matzehuels/beeline/pkg/errors"
	"github.com/matzehuels/beeline/pkg/tour"
)

// Crossover combines two parent tours into one child tour.
//
// nodes lists every point index, depot included. Implementations must return
// a tour that satisfies [tour.Validate] whenever both parents do.
type Crossover interface {
	Cross(rng *rand.Rand, a, b tour.Tour, nodes []int, depot int) (tour.Tour, error)
}

// NewCrossover returns the operator for m.
func NewCrossover(m Method, randomOrientation bool) (Crossover, error) {
	switch m {
	case MethodCommonEdge:
		return CommonEdge{RandomOrientation: randomOrientation}, nil
	case MethodOrder:
		return Order{}, nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown crossover method %q", m)
	}
}

// CommonEdge is common-edge recombination.
//
// The child starts at the depot. Parent A is walked pair by pair, and every
// run of consecutive pairs that are undirected edges of both parents forms a
// chain. Chains are appended whole, in A's order, so every shared edge
// survives. The remaining indices are then drawn uniformly at random without
// replacement, and the depot closes the tour.
//
// A chain that ends at the depot is held back until after the random fill,
// so that its closing edge to the depot is kept as well.
type CommonEdge struct {
	// RandomOrientation appends each inherited chain that does not touch the
	// depot reversed with probability 1/2 instead of in parent A's order.
	RandomOrientation bool
}

// Cross implements [Crossover].
func (c CommonEdge) Cross(rng *rand.Rand, a, b tour.Tour, nodes []int, depot int) (tour.Tour, error) {
	edges := tour.Edges(a)
	common := edges.Intersect(tour.Edges(b))
	if len(common) == len(edges) {
		return a.Clone(), nil
	}

	var head, tail []int
	chains := sharedChains(a, common)
	if len(chains) > 0 && chains[0][0] == depot {
		head, chains = chains[0][1:], chains[1:]
	}
	if n := len(chains); n > 0 && chains[n-1][len(chains[n-1])-1] == depot {
		last := chains[n-1]
		tail, chains = last[:len(last)-1], chains[:n-1]
	}

	child := make(tour.Tour, 0, len(nodes)+1)
	child = append(child, depot)
	visited := map[int]bool{depot: true}
	for _, v := range tail {
		visited[v] = true
	}
	visit := func(v int) {
		if !visited[v] {
			visited[v] = true
			child = append(child, v)
		}
	}

	for _, v := range head {
		visit(v)
	}
	for _, chain := range chains {
		if c.RandomOrientation && rng.IntN(2) == 1 {
			slices.Reverse(chain)
		}
		for _, v := range chain {
			visit(v)
		}
	}

	remaining := make([]int, 0, len(nodes))
	for _, n := range nodes {
		if !visited[n] {
			remaining = append(remaining, n)
		}
	}
	for len(remaining) > 0 {
		i := rng.IntN(len(remaining))
		visit(remaining[i])
		last := len(remaining) - 1
		remaining[i] = remaining[last]
		remaining = remaining[:last]
	}

	child = append(child, tail...)
	return append(child, depot), nil
}

// sharedChains splits a into maximal runs of consecutive pairs that are in
// common. Each run is returned as its vertex sequence in a's order.
func sharedChains(a tour.Tour, common tour.EdgeSet) [][]int {
	var chains [][]int
	var run []int
	for i := 1; i < len(a); i++ {
		if common.Has(tour.NewEdge(a[i-1], a[i])) {
			if run == nil {
				run = []int{a[i-1]}
			}
			run = append(run, a[i])
			continue
		}
		if run != nil {
			chains = append(chains, run)
			run = nil
		}
	}
	if run != nil {
		chains = append(chains, run)
	}
	return chains
}

// Order is order crossover (OX) on the depot-free permutations of the parents.
type Order struct{}

// Cross implements [Crossover]. The cut points satisfy 0 <= start < end <= k,
// where k is the number of non-depot points, and are drawn uniformly.
func (o Order) Cross(rng *rand.Rand, a, b tour.Tour, nodes []int, depot int) (tour.Tour, error) {
	k := len(a.Interior())
	if k < 2 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "order crossover needs at least 2 non-depot points, got %d", k)
	}
	start := rng.IntN(k + 1)
	end := rng.IntN(k)
	if end >= start {
		end++
	}
	if start > end {
		start, end = end, start
	}
	return o.CrossAt(a, b, depot, start, end)
}

// CrossAt performs order crossover with fixed cut points. Positions are
// indices into the depot-free permutations.
//
// The child copies a[start:end] in place. The other positions are filled in
// order end, end+1, ... wrapping to 0, with the elements of b read from end
// onwards (wrapping) that the child does not contain yet.
func (Order) CrossAt(a, b tour.Tour, depot, start, end int) (tour.Tour, error) {
	pa, pb := a.Interior(), b.Interior()
	k := len(pa)
	if len(pb) != k {
		return nil, errors.New(errors.ErrCodeInvalidInput, "parents differ in length: %d and %d", len(pa), len(pb))
	}
	if start < 0 || end > k || start >= end {
		return nil, errors.New(errors.ErrCodeInvalidInput, "invalid cut points [%d, %d) for %d positions", start, end, k)
	}

	perm := make([]int, k)
	present := make(map[int]bool, k)
	for i := start; i < end; i++ {
		perm[i] = pa[i]
		present[pa[i]] = true
	}

	pos := end % k
	for i := range k {
		v := pb[(end+i)%k]
		if present[v] {
			continue
		}
		present[v] = true
		perm[pos] = v
		pos = (pos + 1) % k
	}

	child := make(tour.Tour, 0, k+2)
	child = append(child, depot)
	child = append(child, perm...)
	return append(child, depot), nil
}

// Ensure operators implement Crossover.
var (
	_ Crossover = CommonEdge{}
	_ Crossover = Order{}
)
