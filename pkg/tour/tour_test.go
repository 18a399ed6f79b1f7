package tour_test

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/matzehuels/beeline/pkg/tour"
)

func square() []tour.Point {
	return []tour.Point{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 0}}
}

func TestRandomIsValid(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 7))
	for _, n := range []int{1, 2, 3, 10, 51} {
		for range 20 {
			tr := tour.Random(rng, n, tour.Depot)
			require.NoError(t, tour.Validate(tr, n, tour.Depot), "n=%d tour=%v", n, tr)
			require.Len(t, tr, n+1)
		}
	}
}

func TestLength(t *testing.T) {
	pts := square()
	require.InDelta(t, 4.0, tour.Length(tour.Tour{0, 1, 2, 3, 0}, pts), 1e-9)
	require.InDelta(t, 2+2*1.4142135623730951, tour.Length(tour.Tour{0, 2, 1, 3, 0}, pts), 1e-9)
	require.Zero(t, tour.Length(tour.Tour{0, 0}, pts))
}

func TestLengthReversalSymmetry(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	pts := make([]tour.Point, 12)
	for i := range pts {
		pts[i] = tour.Point{X: rng.Float64() * 1000, Y: rng.Float64() * 1000}
	}
	for range 50 {
		tr := tour.Random(rng, len(pts), tour.Depot)
		l := tour.Length(tr, pts)
		require.GreaterOrEqual(t, l, 0.0)
		require.InDelta(t, l, tour.Length(tr.Reverse(), pts), 1e-9)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		tour tour.Tour
		want error
	}{
		{"valid", tour.Tour{0, 2, 1, 3, 0}, nil},
		{"short", tour.Tour{0, 1, 2, 0}, tour.ErrTooShort},
		{"open", tour.Tour{0, 1, 2, 3, 1}, tour.ErrNotAnchored},
		{"duplicate", tour.Tour{0, 1, 1, 3, 0}, tour.ErrNotPermutation},
		{"depot inside", tour.Tour{0, 1, 0, 3, 0}, tour.ErrNotPermutation},
		{"out of range", tour.Tour{0, 1, 2, 9, 0}, tour.ErrNotPermutation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tour.Validate(tt.tour, 4, tour.Depot)
			if tt.want == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestStringParse(t *testing.T) {
	tr := tour.Tour{0, 3, 1, 2, 0}
	require.Equal(t, "0-3-1-2-0", tr.String())

	got, err := tour.Parse(tr.String())
	require.NoError(t, err)
	require.Equal(t, tr, got)

	_, err = tour.Parse("0-x-0")
	require.Error(t, err)
}

func TestEdges(t *testing.T) {
	a := tour.Edges(tour.Tour{0, 1, 2, 3, 0})
	b := tour.Edges(tour.Tour{0, 3, 2, 1, 0})
	require.Len(t, a, 4)
	require.True(t, a.Has(tour.NewEdge(3, 0)))

	common := a.Intersect(b)
	require.Len(t, common, 4, "reversed tour shares every undirected edge")

	c := tour.Edges(tour.Tour{0, 2, 1, 3, 0})
	shared := a.Intersect(c)
	require.True(t, shared.Has(tour.NewEdge(1, 2)))
	require.True(t, shared.Has(tour.NewEdge(0, 3)))
	require.Len(t, shared, 2)
}
