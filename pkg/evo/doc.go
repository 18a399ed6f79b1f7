// Package evo implements the evolutionary tour optimizer.
//
// # Overview
//
// An [Optimizer] evolves a fixed-size population of tours for a fixed number
// of generations. Every individual it creates is registered in a
// [lineage.Ledger] so ancestries can be reconstructed after the run.
//
// Each generation:
//  1. The population is sorted ascending by tour length.
//  2. The shortest parentCount = max(2, round(rate*N)) individuals survive
//     unchanged as elites. The rate comes from the elitism schedule, indexed by
//     generation and clamped to its last entry.
//  3. N-parentCount children are bred from pairs of distinct elites with the
//     configured [Crossover], passed through [Mutate], and registered.
//
// There is no early stopping: a run always completes its configured
// generation count or fails.
//
// # Crossover
//
// Two operators are available, selected by [Method]:
//
//   - [CommonEdge]: keeps every undirected edge both parents agree on, in
//     parent A's visiting order, and places the rest at random.
//   - [Order]: classic order crossover (OX) on the depot-free permutations.
//
// # Randomness
//
// All randomness comes from one *rand.Rand per run, built from
// [Config].Seed with [NewRand]. A zero seed is replaced by a clock-derived
// seed, which is reported in [Result].Seed so the run can be replayed.
package evo
