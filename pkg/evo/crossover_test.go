package evo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/beeline/pkg/errors"
	"github.com/matzehuels/beeline/pkg/tour"
)

func TestCrossoverProducesValidTours(t *testing.T) {
	const points = 12
	operators := map[string]Crossover{
		"common-edge":        CommonEdge{},
		"common-edge random": CommonEdge{RandomOrientation: true},
		"order":              Order{},
	}
	for name, op := range operators {
		t.Run(name, func(t *testing.T) {
			rng := NewRand(7)
			nodes := tour.Nodes(points)
			for range 200 {
				a := tour.Random(rng, points, tour.Depot)
				b := tour.Random(rng, points, tour.Depot)
				child, err := op.Cross(rng, a, b, nodes, tour.Depot)
				require.NoError(t, err)
				require.NoError(t, tour.Validate(child, points, tour.Depot), "child %v of %v x %v", child, a, b)
			}
		})
	}
}

func TestCommonEdgeKeepsSharedEdges(t *testing.T) {
	const points = 10
	nodes := tour.Nodes(points)

	for _, op := range []CommonEdge{{}, {RandomOrientation: true}} {
		rng := NewRand(11)
		for range 500 {
			a := tour.Random(rng, points, tour.Depot)
			b := a.Clone()
			// Perturb b so the parents share only some edges.
			for range 1 + rng.IntN(3) {
				i, j := 1+rng.IntN(points-1), 1+rng.IntN(points-1)
				b[i], b[j] = b[j], b[i]
			}

			child, err := op.Cross(rng, a, b, nodes, tour.Depot)
			require.NoError(t, err)
			require.NoError(t, tour.Validate(child, points, tour.Depot))

			got := tour.Edges(child)
			for e := range tour.Edges(a).Intersect(tour.Edges(b)) {
				assert.True(t, got.Has(e), "shared edge %v missing from %v (a=%v b=%v random=%v)", e, child, a, b, op.RandomOrientation)
			}
		}
	}
}

func TestCommonEdgeKeepsClosingDepotEdge(t *testing.T) {
	// Shared edges are {1,2} and {4,0}; 4 must stay next to the closing depot.
	a := tour.Tour{0, 1, 2, 3, 4, 0}
	b := tour.Tour{0, 3, 1, 2, 4, 0}

	for seed := range uint64(50) {
		for _, op := range []CommonEdge{{}, {RandomOrientation: true}} {
			child, err := op.Cross(NewRand(seed), a, b, tour.Nodes(5), tour.Depot)
			require.NoError(t, err)
			got := tour.Edges(child)
			assert.True(t, got.Has(tour.NewEdge(4, tour.Depot)), "seed %d: child %v lost {4,0}", seed, child)
			assert.True(t, got.Has(tour.NewEdge(1, 2)), "seed %d: child %v lost {1,2}", seed, child)
		}
	}
}

func TestCommonEdgeKeepsBothDepotEdges(t *testing.T) {
	// Shared: {0,1}, {1,2} at the start, {3,4} in the middle and {5,0} at the end.
	a := tour.Tour{0, 1, 2, 3, 4, 5, 0}
	b := tour.Tour{0, 1, 2, 4, 3, 5, 0}

	for seed := range uint64(20) {
		child, err := CommonEdge{RandomOrientation: true}.Cross(NewRand(seed), a, b, tour.Nodes(6), tour.Depot)
		require.NoError(t, err)
		assert.Equal(t, []int{0, 1, 2}, []int(child[:3]), "seed %d: child %v", seed, child)
		assert.Equal(t, []int{5, 0}, []int(child[len(child)-2:]), "seed %d: child %v", seed, child)
	}
}

func TestCommonEdgeIdenticalParents(t *testing.T) {
	rng := NewRand(3)
	a := tour.Tour{0, 4, 2, 5, 1, 3, 0}
	for _, op := range []CommonEdge{{}, {RandomOrientation: true}} {
		child, err := op.Cross(rng, a, a.Clone(), tour.Nodes(6), tour.Depot)
		require.NoError(t, err)
		assert.Equal(t, tour.Edges(a), tour.Edges(child))
	}
}

func TestCommonEdgeIgnoresOrientationOfB(t *testing.T) {
	a := tour.Tour{0, 1, 2, 3, 4, 0}
	child, err := CommonEdge{}.Cross(NewRand(1), a, a.Reverse(), tour.Nodes(5), tour.Depot)
	require.NoError(t, err)
	assert.Equal(t, a, child)
}

func TestOrderCrossAtKnownCase(t *testing.T) {
	a := tour.Tour{0, 1, 2, 3, 4, 5, 6, 7, 8, 0}
	b := tour.Tour{0, 8, 7, 6, 5, 4, 3, 2, 1, 0}

	child, err := Order{}.CrossAt(a, b, tour.Depot, 2, 5)
	require.NoError(t, err)
	assert.Equal(t, tour.Tour{0, 7, 6, 3, 4, 5, 2, 1, 8, 0}, child)
}

func TestOrderCrossAtKeepsSlice(t *testing.T) {
	const points = 9
	rng := NewRand(5)
	a := tour.Random(rng, points, tour.Depot)
	b := tour.Random(rng, points, tour.Depot)
	k := points - 1

	for start := 0; start < k; start++ {
		for end := start + 1; end <= k; end++ {
			child, err := Order{}.CrossAt(a, b, tour.Depot, start, end)
			require.NoError(t, err)
			require.NoError(t, tour.Validate(child, points, tour.Depot))
			assert.Equal(t, a.Interior()[start:end], child.Interior()[start:end], "cut [%d,%d)", start, end)
		}
	}
}

func TestOrderCrossAtRejectsBadCuts(t *testing.T) {
	a := tour.Tour{0, 1, 2, 3, 0}
	for _, cut := range [][2]int{{-1, 2}, {2, 2}, {3, 1}, {0, 4}} {
		_, err := Order{}.CrossAt(a, a, tour.Depot, cut[0], cut[1])
		assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput), "cut %v: %v", cut, err)
	}
	_, err := Order{}.CrossAt(a, tour.Tour{0, 1, 2, 0}, tour.Depot, 0, 1)
	assert.Error(t, err)
}

func TestOrderNeedsTwoTargets(t *testing.T) {
	a := tour.Tour{0, 1, 0}
	_, err := Order{}.Cross(NewRand(1), a, a, tour.Nodes(2), tour.Depot)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidConfig))
}

func TestNewCrossover(t *testing.T) {
	op, err := NewCrossover(MethodCommonEdge, true)
	require.NoError(t, err)
	assert.Equal(t, CommonEdge{RandomOrientation: true}, op)

	op, err = NewCrossover(MethodOrder, false)
	require.NoError(t, err)
	assert.Equal(t, Order{}, op)

	_, err = NewCrossover("cycle", false)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidConfig))
}
