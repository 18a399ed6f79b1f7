// Package pkg provides the core libraries of Beeline, an evolutionary tour
// optimizer that remembers the family tree of every tour it breeds.
//
// # Overview
//
// A bee leaves its hive, visits every flower once and flies home. Beeline
// evolves short flight paths for that closed tour and records each candidate
// in a lineage ledger, so the ancestry of any tour can be traced back to the
// random founders it descends from. The pkg directory is organized into
// three areas:
//
//  1. Domain: [tour], [evo], [lineage]
//  2. Infrastructure: [cache], [archive], [io], [observability], [errors]
//  3. Orchestration and surfaces: [pipeline], [api], [httputil]
//
// # Architecture
//
// The typical data flow through Beeline:
//
//	TOML run file
//	     ↓
//	[pipeline] spec (run parameters + points)
//	     ↓
//	[evo] optimizer (founders → breed → mutate, G generations)
//	     ↓
//	[lineage] ledger (every individual, with parent links)
//	     ↓
//	[lineage] ancestry query → layered family tree → DOT/SVG/PNG
//
// # Quick Start
//
//	import (
//	    "context"
//	    "github.com/matzehuels/beeline/pkg/evo"
//	    "github.com/matzehuels/beeline/pkg/lineage"
//	)
//
//	// 1. Optimize
//	cfg := evo.DefaultConfig()
//	cfg.Seed = 42
//	opt, _ := evo.New(cfg, points, nil)
//	res, _ := opt.Run(context.Background())
//
//	// 2. Query the ancestry of the best tour
//	a := lineage.AncestorsOf(opt.Ledger(), res.Best.ID, lineage.WithMaxDepth(5))
//
//	// 3. Render the family tree
//	dot := lineage.ToDOT(opt.Ledger(), a, lineage.DOTOptions{})
//
// # Main Packages
//
// [tour] - Points, closed tours anchored at the depot, Euclidean length,
// validation and undirected edge sets.
//
// [evo] - The evolutionary optimizer: run configuration, elitism schedule,
// common-edge and order crossover, swap mutation and the generational loop.
//
// [lineage] - The append-only ledger of individuals, the breadth-first
// ancestor query, depth-layered tree layout and Graphviz rendering.
//
// [io] - Ledger export and import as CSV or JSON.
//
// [cache] - Cache backends (file, Redis, null) and key derivation for runs
// and rendered artifacts.
//
// [archive] - MongoDB archive of individuals keyed by simulation.
//
// [pipeline] - Cached optimize → query → render stages shared by the CLI
// and the HTTP API.
//
// [api] - Read-only HTTP API over a loaded ledger.
//
// [observability] - Hook interfaces for run, cache and query events, with a
// Prometheus implementation in observability/prom.
//
// # Testing
//
//	go test ./...                 # All tests
//	go test ./pkg/evo/...         # Specific package
//	go test -run Example ./pkg/... # Examples only
//
// Redis and MongoDB integration tests run when BEELINE_TEST_REDIS_URL and
// BEELINE_TEST_MONGO_URI are set.
//
// [tour]: https://pkg.go.dev/github.com/matzehuels/beeline/pkg/tour
// [evo]: https://pkg.go.dev/github.com/matzehuels/beeline/pkg/evo
// [lineage]: https://pkg.go.dev/github.com/matzehuels/beeline/pkg/lineage
// [io]: https://pkg.go.dev/github.com/matzehuels/beeline/pkg/io
// [cache]: https://pkg.go.dev/github.com/matzehuels/beeline/pkg/cache
// [archive]: https://pkg.go.dev/github.com/matzehuels/beeline/pkg/archive
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/beeline/pkg/pipeline
// [api]: https://pkg.go.dev/github.com/matzehuels/beeline/pkg/api
// [httputil]: https://pkg.go.dev/github.com/matzehuels/beeline/pkg/httputil
// [observability]: https://pkg.go.dev/github.com/matzehuels/beeline/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/beeline/pkg/errors
package pkg
