package lineage

import (
	"maps"
	"slices"
)

// Ancestor is one entry of an [Ancestry]: the hop count from the queried
// individual and the parent ids as stored in the ledger.
type Ancestor struct {
	Depth   int `json:"depth"`
	ParentA ID  `json:"parent_1,omitempty"`
	ParentB ID  `json:"parent_2,omitempty"`
}

// Ancestry is the result of [AncestorsOf]. The queried individual itself is
// included at depth 0.
//
// The zero value is an empty ancestry.
type Ancestry struct {
	Root    ID
	entries map[ID]Ancestor
	order   []ID
}

// Len returns the number of individuals in the ancestry, root included.
func (a Ancestry) Len() int { return len(a.order) }

// Empty reports whether the queried individual was not found.
func (a Ancestry) Empty() bool { return len(a.order) == 0 }

// Get returns the entry for id.
func (a Ancestry) Get(id ID) (Ancestor, bool) {
	e, ok := a.entries[id]
	return e, ok
}

// IDs returns the ids in the order they were dequeued by the breadth-first
// walk. Ids are therefore grouped by non-decreasing depth.
func (a Ancestry) IDs() []ID { return slices.Clone(a.order) }

// Entries returns a copy of the id to entry mapping.
func (a Ancestry) Entries() map[ID]Ancestor { return maps.Clone(a.entries) }

// Depth returns the largest depth in the ancestry, or -1 if it is empty.
func (a Ancestry) Depth() int {
	if len(a.order) == 0 {
		return -1
	}
	return a.entries[a.order[len(a.order)-1]].Depth
}

type queryConfig struct {
	maxDepth int
}

// QueryOption configures [AncestorsOf].
type QueryOption func(*queryConfig)

// WithMaxDepth stops the walk at depth d: ancestors further than d hops from
// the queried individual are not visited. A negative d means uncapped, which
// is the default.
func WithMaxDepth(d int) QueryOption {
	return func(c *queryConfig) { c.maxDepth = d }
}

type queued struct {
	id    ID
	depth int
}

// AncestorsOf returns the queried individual and all of its ancestors.
//
// The walk is breadth-first over a FIFO queue of (id, depth) pairs starting at
// (id, 0). A popped id that was already visited, or that src does not know, is
// discarded. Otherwise it is recorded with its depth and stored parents, and
// each valid parent that has not been visited is enqueued at depth+1. The
// visited check runs both when enqueueing and when dequeueing because a shared
// ancestor can be reached along several paths; the recorded depth is the one
// of the first dequeue, which is the minimum hop count.
//
// If id is absent from src, the returned ancestry is empty.
func AncestorsOf(src Source, id ID, opts ...QueryOption) Ancestry {
	cfg := queryConfig{maxDepth: -1}
	for _, opt := range opts {
		opt(&cfg)
	}

	a := Ancestry{Root: id, entries: make(map[ID]Ancestor)}
	visited := make(map[ID]bool)
	queue := []queued{{id: id, depth: 0}}

	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]

		if visited[curr.id] {
			continue
		}
		ind, ok := src.Get(curr.id)
		if !ok {
			continue
		}
		visited[curr.id] = true

		a.entries[curr.id] = Ancestor{Depth: curr.depth, ParentA: ind.ParentA, ParentB: ind.ParentB}
		a.order = append(a.order, curr.id)

		if cfg.maxDepth >= 0 && curr.depth >= cfg.maxDepth {
			continue
		}
		for _, p := range [2]ID{ind.ParentA, ind.ParentB} {
			if p.Valid() && !visited[p] {
				queue = append(queue, queued{id: p, depth: curr.depth + 1})
			}
		}
	}
	return a
}

// GroupByDepth partitions an ancestry by depth. Within a depth, ids keep the
// breadth-first discovery order.
func GroupByDepth(a Ancestry) map[int][]ID {
	groups := make(map[int][]ID)
	for _, id := range a.order {
		d := a.entries[id].Depth
		groups[d] = append(groups[d], id)
	}
	return groups
}

// Depths returns the keys of groups in ascending order.
func Depths(groups map[int][]ID) []int {
	return slices.Sorted(maps.Keys(groups))
}
