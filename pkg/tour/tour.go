package tour

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"slices"
	"strconv"
	"strings"
)

// Depot is the reserved index of the depot in every point set.
const Depot = 0

var (
	// ErrTooShort is returned by [Validate] when a tour does not have
	// exactly pointCount+1 entries.
	ErrTooShort = errors.New("tour length mismatch")

	// ErrNotAnchored is returned by [Validate] when the first or last entry
	// is not the depot.
	ErrNotAnchored = errors.New("tour must start and end at the depot")

	// ErrNotPermutation is returned by [Validate] when a target index is
	// missing, repeated, or out of range.
	ErrNotPermutation = errors.New("tour is not a permutation of the targets")
)

// Point is an immutable 2-D coordinate.
type Point struct {
	X float64 `json:"x" toml:"x"`
	Y float64 `json:"y" toml:"y"`
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// Tour is an ordered sequence of point indices anchored at the depot.
type Tour []int

// Random returns a uniformly random tour over pointCount points.
// The depot is placed first and last; the remaining indices are shuffled.
func Random(rng *rand.Rand, pointCount, depot int) Tour {
	targets := Targets(pointCount, depot)
	rng.Shuffle(len(targets), func(i, j int) { targets[i], targets[j] = targets[j], targets[i] })

	t := make(Tour, 0, pointCount+1)
	t = append(t, depot)
	t = append(t, targets...)
	return append(t, depot)
}

// Targets returns every index in [0, pointCount) except depot, in order.
func Targets(pointCount, depot int) []int {
	out := make([]int, 0, max(pointCount-1, 0))
	for i := range pointCount {
		if i != depot {
			out = append(out, i)
		}
	}
	return out
}

// Nodes returns every index in [0, pointCount), depot included.
func Nodes(pointCount int) []int {
	out := make([]int, pointCount)
	for i := range out {
		out[i] = i
	}
	return out
}

// Length returns the total length of t. The closing edge back to the depot
// is already part of t, so no wrap-around term is added.
// Length panics if t references an index outside points.
func Length(t Tour, points []Point) float64 {
	var total float64
	for i := 1; i < len(t); i++ {
		total += Distance(points[t[i-1]], points[t[i]])
	}
	return total
}

// Validate reports whether t is a valid closed tour over pointCount points
// anchored at depot.
func Validate(t Tour, pointCount, depot int) error {
	if len(t) != pointCount+1 {
		return fmt.Errorf("%w: got %d entries, want %d", ErrTooShort, len(t), pointCount+1)
	}
	if t[0] != depot || t[len(t)-1] != depot {
		return ErrNotAnchored
	}
	seen := make([]bool, pointCount)
	for _, v := range t[1 : len(t)-1] {
		if v < 0 || v >= pointCount || v == depot || seen[v] {
			return fmt.Errorf("%w: index %d", ErrNotPermutation, v)
		}
		seen[v] = true
	}
	return nil
}

// Clone returns a copy of t that shares no memory with it.
func (t Tour) Clone() Tour { return slices.Clone(t) }

// Reverse returns t traversed in the opposite direction. A valid tour stays
// valid because both ends are the depot.
func (t Tour) Reverse() Tour {
	out := t.Clone()
	slices.Reverse(out)
	return out
}

// Interior returns the non-depot section t[1:len(t)-1]. The returned slice
// aliases t.
func (t Tour) Interior() []int {
	if len(t) < 2 {
		return nil
	}
	return t[1 : len(t)-1]
}

// String formats t as dash-separated indices, e.g. "0-3-1-2-0".
func (t Tour) String() string {
	parts := make([]string, len(t))
	for i, v := range t {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, "-")
}

// Parse is the inverse of [Tour.String]. An empty string yields an empty tour.
func Parse(s string) (Tour, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Tour{}, nil
	}
	fields := strings.Split(s, "-")
	t := make(Tour, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return nil, fmt.Errorf("parse tour %q: %w", s, err)
		}
		t[i] = v
	}
	return t, nil
}
