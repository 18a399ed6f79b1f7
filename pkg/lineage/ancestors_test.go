package lineage

import (
	"reflect"
	"testing"

	"github.com/matzehuels/beeline/pkg/tour"
)

// family registers founders and children from a parent table where index i
// holds the parents of id i+1. Zero parents mark founders.
func family(t *testing.T, parents [][2]ID) *Ledger {
	t.Helper()
	l := NewLedger()
	for i, p := range parents {
		id := l.Register(Entry{Generation: i, Tour: tour.Tour{0, 1, 0}, ParentA: p[0], ParentB: p[1]})
		if id != ID(i+1) {
			t.Fatalf("registered id %d, want %d", id, i+1)
		}
	}
	return l
}

func TestAncestorsOfFounder(t *testing.T) {
	l := family(t, [][2]ID{{}, {}})
	a := AncestorsOf(l, 1)

	want := map[ID]Ancestor{1: {Depth: 0}}
	if got := a.Entries(); !reflect.DeepEqual(got, want) {
		t.Errorf("AncestorsOf(founder) = %v, want %v", got, want)
	}
}

func TestAncestorsOfChain(t *testing.T) {
	// A=1, B=2 founders; C=3 child of A and B.
	l := family(t, [][2]ID{{}, {}, {1, 2}})
	a := AncestorsOf(l, 3)

	want := map[ID]Ancestor{
		3: {Depth: 0, ParentA: 1, ParentB: 2},
		1: {Depth: 1},
		2: {Depth: 1},
	}
	if got := a.Entries(); !reflect.DeepEqual(got, want) {
		t.Errorf("AncestorsOf(3) = %v, want %v", got, want)
	}
	if got := a.IDs(); !reflect.DeepEqual(got, []ID{3, 1, 2}) {
		t.Errorf("IDs() = %v, want [3 1 2]", got)
	}
}

func TestAncestorsOfSharedAncestorMinimalDepth(t *testing.T) {
	// 1, 2 founders
	// 3 = (1, 2); 4 = (1, 2)
	// 5 = (3, 1)   -> 1 reachable at depth 1 directly and depth 2 via 3
	// 6 = (5, 4)   -> 1 at depth 2 via 5, at depth 3 via 5->3 and 4
	l := family(t, [][2]ID{{}, {}, {1, 2}, {1, 2}, {3, 1}, {5, 4}})

	a := AncestorsOf(l, 6)
	wantDepth := map[ID]int{6: 0, 5: 1, 4: 1, 3: 2, 1: 2, 2: 2}
	if a.Len() != len(wantDepth) {
		t.Fatalf("Len() = %d, want %d", a.Len(), len(wantDepth))
	}
	for id, d := range wantDepth {
		e, ok := a.Get(id)
		if !ok {
			t.Errorf("ancestor %d missing", id)
			continue
		}
		if e.Depth != d {
			t.Errorf("depth(%d) = %d, want %d", id, e.Depth, d)
		}
	}

	a = AncestorsOf(l, 5)
	if e, _ := a.Get(1); e.Depth != 1 {
		t.Errorf("depth(1) from 5 = %d, want 1", e.Depth)
	}
	if a.Depth() != 2 {
		t.Errorf("Depth() = %d, want 2", a.Depth())
	}
}

func TestAncestorsOfMissing(t *testing.T) {
	l := family(t, [][2]ID{{}})
	a := AncestorsOf(l, 42)
	if !a.Empty() || a.Len() != 0 {
		t.Errorf("AncestorsOf(missing) = %v, want empty", a.Entries())
	}
	if a.Depth() != -1 {
		t.Errorf("Depth() = %d, want -1", a.Depth())
	}
}

func TestAncestorsOfDanglingParent(t *testing.T) {
	// Parent 9 was never registered; the walk records the stored id but
	// discards it when dequeued.
	l := family(t, [][2]ID{{}, {1, 9}})
	a := AncestorsOf(l, 2)
	if a.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", a.Len())
	}
	if e, _ := a.Get(2); e.ParentB != 9 {
		t.Errorf("ParentB = %d, want 9", e.ParentB)
	}
	if _, ok := a.Get(9); ok {
		t.Error("dangling parent should not be recorded")
	}
}

func TestAncestorsOfMaxDepth(t *testing.T) {
	l := family(t, [][2]ID{{}, {}, {1, 2}, {3, 2}, {4, 3}})

	tests := []struct {
		maxDepth int
		want     int
	}{
		{maxDepth: 0, want: 1},
		{maxDepth: 1, want: 3},
		{maxDepth: 2, want: 5},
		{maxDepth: -1, want: 5},
	}
	for _, tt := range tests {
		a := AncestorsOf(l, 5, WithMaxDepth(tt.maxDepth))
		if a.Len() != tt.want {
			t.Errorf("maxDepth %d: Len() = %d, want %d", tt.maxDepth, a.Len(), tt.want)
		}
		if tt.maxDepth >= 0 && a.Depth() > tt.maxDepth {
			t.Errorf("maxDepth %d: deepest entry at %d", tt.maxDepth, a.Depth())
		}
	}
}

func TestGroupByDepth(t *testing.T) {
	l := family(t, [][2]ID{{}, {}, {1, 2}, {1, 2}, {3, 4}})
	groups := GroupByDepth(AncestorsOf(l, 5))

	want := map[int][]ID{0: {5}, 1: {3, 4}, 2: {1, 2}}
	if !reflect.DeepEqual(groups, want) {
		t.Errorf("GroupByDepth = %v, want %v", groups, want)
	}
	if got := Depths(groups); !reflect.DeepEqual(got, []int{0, 1, 2}) {
		t.Errorf("Depths = %v", got)
	}
	if got := GroupByDepth(Ancestry{}); len(got) != 0 {
		t.Errorf("GroupByDepth(empty) = %v", got)
	}
}
