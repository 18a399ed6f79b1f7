// Package tour models closed tours over a fixed point set anchored at a depot.
//
// # Overview
//
// A problem instance is an ordered slice of [Point] values. Index [Depot] (0)
// is reserved for the depot; every other index is a target. A [Tour] is a
// Hamiltonian cycle written as a sequence of point indices that starts and
// ends at the depot and visits every target exactly once, so for n points
// len(t) == n+1.
//
// # Basic Usage
//
//	rng := rand.New(rand.NewPCG(42, 42^0xdeadbeef))
//	t := tour.Random(rng, len(points), tour.Depot)
//	fmt.Println(tour.Length(t, points))
//
// [Random] is the tour factory used to seed a population, [Length] is the
// fitness function (lower is better) and [Validate] checks the permutation
// invariant that every produced tour must satisfy.
//
// # Edges
//
// [Edges] returns the undirected edge set of a tour. Edges are normalized so
// that A <= B, which makes (3,0) and (0,3) the same [Edge]. Crossover
// operators use this to find structure shared by two parents.
package tour
