// Package lineage records every individual produced by an evolutionary run
// and reconstructs ancestries from those records.
//
// # Overview
//
// A [Ledger] is the append-only owner of all individuals created during a
// run. [Ledger.Register] assigns monotonically increasing ids starting at 1
// and stores an immutable [Individual] that references up to two parents.
// Founding individuals reference no parents ([NoID]).
//
// # Ancestry Queries
//
// [AncestorsOf] walks parent references breadth-first from a queried
// individual. Each ancestor is reported once, at the depth where it is first
// dequeued; because the queue is FIFO this is the shortest hop count from
// the queried individual. The walk can be capped with [WithMaxDepth].
//
//	a := lineage.AncestorsOf(ledger, id)
//	groups := lineage.GroupByDepth(a)
//	pos := lineage.Layout(groups, nil)
//
// [GroupByDepth] partitions an [Ancestry] by depth and [Layout] turns the
// groups into 2-D coordinates: one level per depth and evenly spaced,
// centered ids within a level. [ToDOT] emits the same structure as a
// Graphviz digraph that [RenderSVG] and [RenderPNG] can draw.
//
// # Sources
//
// Queries read through the [Source] interface. A live [Ledger] satisfies it,
// as does a ledger rebuilt from persisted rows with [Restore].
//
// # Concurrency
//
// A Ledger is not safe for concurrent registration and querying. Queries on a
// finalized ledger may run concurrently.
package lineage
