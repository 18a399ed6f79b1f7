package lineage

import (
	"math"
	"testing"
)

func TestLayoutDefaults(t *testing.T) {
	groups := map[int][]ID{0: {10}, 1: {7, 8}, 2: {1, 2, 3}}
	pos := Layout(groups, nil)

	want := map[ID]Position{
		10: {X: 0, Y: 0},
		7:  {X: -1.25, Y: 2},
		8:  {X: 1.25, Y: 2},
		1:  {X: -2.5, Y: 4},
		2:  {X: 0, Y: 4},
		3:  {X: 2.5, Y: 4},
	}
	if len(pos) != len(want) {
		t.Fatalf("len(pos) = %d, want %d", len(pos), len(want))
	}
	for id, w := range want {
		got := pos[id]
		if math.Abs(got.X-w.X) > 1e-9 || math.Abs(got.Y-w.Y) > 1e-9 {
			t.Errorf("pos[%d] = %+v, want %+v", id, got, w)
		}
	}
}

func TestLayoutCentersEveryLevel(t *testing.T) {
	groups := map[int][]ID{0: {1}, 1: {2, 3, 4, 5}, 3: {6, 7}}
	pos := Layout(groups, &LayoutOptions{Spacing: 1, LevelHeight: 1, Invert: true})

	for depth, ids := range groups {
		var sum float64
		for _, id := range ids {
			sum += pos[id].X
			if want := -float64(depth); pos[id].Y != want {
				t.Errorf("pos[%d].Y = %v, want %v", id, pos[id].Y, want)
			}
		}
		if math.Abs(sum) > 1e-9 {
			t.Errorf("depth %d not centered: sum x = %v", depth, sum)
		}
	}
	if d := pos[3].X - pos[2].X; math.Abs(d-1) > 1e-9 {
		t.Errorf("spacing = %v, want 1", d)
	}
}

func TestLayoutEmpty(t *testing.T) {
	if pos := Layout(nil, nil); len(pos) != 0 {
		t.Errorf("Layout(nil) = %v, want empty", pos)
	}
}
