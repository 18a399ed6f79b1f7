// Package pipeline runs the optimize → persist → query stages shared by the
// CLI and the HTTP API.
//
// # Architecture
//
// The pipeline has three stages:
//
//  1. Optimize: evolve tours for a [Spec] and collect every individual in a
//     lineage ledger.
//  2. Query: reconstruct the ancestry of one individual.
//  3. Render: turn an ancestry into DOT, SVG or PNG.
//
// A [Runner] executes the stages with caching. Seeded runs are deterministic,
// so their ledger is cached under a key derived from the whole spec; a second
// run of the same spec is served from the cache without optimizing. Rendered
// artifacts are cached by the hash of their DOT source.
//
// # Usage
//
//	spec, err := pipeline.LoadSpec("examples/hive.toml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Run(ctx, pipeline.Options{Spec: spec})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	anc, err := runner.Ancestors(ctx, result.Ledger, result.Run.Best.ID, -1)
package pipeline

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/beeline/pkg/evo"
	"github.com/matzehuels/beeline/pkg/lineage"
	"github.com/matzehuels/beeline/pkg/tour"
)

// Format constants for ancestry renders.
const (
	FormatDOT = "dot"
	FormatSVG = "svg"
	FormatPNG = "png"
)

// ValidFormats is the set of supported render formats.
var ValidFormats = map[string]bool{
	FormatDOT: true,
	FormatSVG: true,
	FormatPNG: true,
}

// ValidateFormat checks that a render format is supported.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		names := make([]string, 0, len(ValidFormats))
		for f := range ValidFormats {
			names = append(names, f)
		}
		slices.Sort(names)
		return fmt.Errorf("invalid format: %q (must be one of: %s)", format, strings.Join(names, ", "))
	}
	return nil
}

// Spec is a complete problem instance: run parameters plus the point set.
// It is the schema of a TOML run file.
type Spec struct {
	evo.Config

	// Points lists [x, y] coordinates. The first point is the depot.
	Points [][2]float64 `toml:"points" json:"points"`
}

// DefaultSpec returns the default run parameters with no points.
func DefaultSpec() Spec {
	return Spec{Config: evo.DefaultConfig()}
}

// TourPoints converts Points to tour points.
func (s Spec) TourPoints() []tour.Point {
	out := make([]tour.Point, len(s.Points))
	for i, p := range s.Points {
		out[i] = tour.Point{X: p[0], Y: p[1]}
	}
	return out
}

// Validate checks the run parameters against the point set.
func (s Spec) Validate() error {
	return s.Config.Validate(len(s.Points))
}

// Options configures [Runner.Run].
type Options struct {
	Spec

	// Refresh skips the cache lookup. The fresh result is still stored.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger      `json:"-"`
	Clock  func() time.Time `json:"-"`
}

// Result contains the outputs of a run.
type Result struct {
	// Ledger holds every individual of the run.
	Ledger *lineage.Ledger

	// Run carries the seed, per-generation statistics and the final
	// population.
	Run *evo.Result

	// CacheHit reports whether the result was served from the cache.
	CacheHit bool

	// Duration is the wall time of the stage.
	Duration time.Duration
}
