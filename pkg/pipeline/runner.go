package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/beeline/pkg/cache"
	"github.com/matzehuels/beeline/pkg/errors"
	"github.com/matzehuels/beeline/pkg/evo"
	"github.com/matzehuels/beeline/pkg/lineage"
	"github.com/matzehuels/beeline/pkg/observability"
)

// Runner executes pipeline stages with caching.
//
// The Runner is stateless except for the cache and logger; it does not keep
// results. Multiple goroutines can use the same Runner for different runs.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// runRecord is the cached form of a run.
type runRecord struct {
	Run         *evo.Result          `json:"run"`
	Individuals []lineage.Individual `json:"individuals"`
}

// Run optimizes opts.Spec and returns the full ledger. Runs with a non-zero
// seed are looked up in and stored to the cache; clock-seeded runs always
// optimize.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	logger := r.logger(opts)
	start := time.Now()

	cacheable := opts.Seed != 0
	key := r.Keyer.RunKey(runKeyOpts(opts.Spec))
	if cacheable && !opts.Refresh {
		if res, ok := r.cachedRun(ctx, key, opts); ok {
			res.Duration = time.Since(start)
			logger.Info("loaded run from cache",
				"simulation", res.Run.SimulationID,
				"individuals", res.Ledger.Len(),
				"best", res.Run.Best.Length)
			return res, nil
		}
	}

	var ledgerOpts []lineage.LedgerOption
	evoOpts := []evo.Option{evo.WithLogger(logger)}
	if opts.Clock != nil {
		ledgerOpts = append(ledgerOpts, lineage.WithClock(opts.Clock))
		evoOpts = append(evoOpts, evo.WithClock(opts.Clock))
	}
	ledger := lineage.NewLedger(ledgerOpts...)
	opt, err := evo.New(opts.Config, opts.TourPoints(), ledger, evoOpts...)
	if err != nil {
		return nil, err
	}
	run, err := opt.Run(ctx)
	if err != nil {
		return nil, fmt.Errorf("optimize: %w", err)
	}

	if cacheable {
		r.storeRun(ctx, key, &runRecord{Run: run, Individuals: ledger.All()}, logger)
	}
	return &Result{Ledger: ledger, Run: run, Duration: time.Since(start)}, nil
}

func (r *Runner) cachedRun(ctx context.Context, key string, opts Options) (*Result, bool) {
	hooks := observability.Cache()
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil || !hit {
		if err != nil {
			r.logger(opts).Warn("cache lookup failed", "error", err)
		}
		hooks.OnCacheMiss(ctx, "run")
		return nil, false
	}

	var rec runRecord
	if err := json.Unmarshal(data, &rec); err != nil || rec.Run == nil {
		hooks.OnCacheMiss(ctx, "run")
		return nil, false
	}
	var ledgerOpts []lineage.LedgerOption
	if opts.Clock != nil {
		ledgerOpts = append(ledgerOpts, lineage.WithClock(opts.Clock))
	}
	ledger, err := lineage.Restore(rec.Individuals, ledgerOpts...)
	if err != nil {
		hooks.OnCacheMiss(ctx, "run")
		return nil, false
	}
	hooks.OnCacheHit(ctx, "run")
	return &Result{Ledger: ledger, Run: rec.Run, CacheHit: true}, true
}

func (r *Runner) storeRun(ctx context.Context, key string, rec *runRecord, logger *log.Logger) {
	data, err := json.Marshal(rec)
	if err != nil {
		logger.Warn("encode run for cache", "error", err)
		return
	}
	if err := r.Cache.Set(ctx, key, data, cache.RunTTL); err != nil {
		logger.Warn("store run in cache", "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, "run", len(data))
}

// Ancestors returns the ancestry of id in src, capped at maxDepth when it is
// not negative. An id absent from src is [errors.ErrCodeNotFound].
func (r *Runner) Ancestors(ctx context.Context, src lineage.Source, id lineage.ID, maxDepth int) (lineage.Ancestry, error) {
	start := time.Now()
	a := lineage.AncestorsOf(src, id, lineage.WithMaxDepth(maxDepth))
	if a.Empty() {
		observability.Query().OnLookupMiss(ctx, "individual")
		return a, errors.New(errors.ErrCodeNotFound, "individual %d not found", id)
	}
	observability.Query().OnAncestorQuery(ctx, int64(id), a.Len(), time.Since(start))
	r.Logger.Debug("resolved ancestry",
		"id", id,
		"ancestors", a.Len()-1,
		"depth", a.Depth())
	return a, nil
}

// Render returns the ancestry in format (dot, svg or png) and whether it came
// from the cache.
func (r *Runner) Render(ctx context.Context, src lineage.Source, a lineage.Ancestry, format string, opts lineage.DOTOptions) ([]byte, bool, error) {
	if err := ValidateFormat(format); err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeInvalidInput, err, "render")
	}
	dot := lineage.ToDOT(src, a, opts)
	if format == FormatDOT {
		return []byte(dot), false, nil
	}

	key := r.Keyer.ArtifactKey(cache.Hash([]byte(dot)), format)
	hooks := observability.Cache()
	if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
		hooks.OnCacheHit(ctx, "artifact")
		return data, true, nil
	}
	hooks.OnCacheMiss(ctx, "artifact")

	var (
		data []byte
		err  error
	)
	switch format {
	case FormatSVG:
		data, err = lineage.RenderSVG(ctx, dot)
	case FormatPNG:
		data, err = lineage.RenderPNG(ctx, dot)
	}
	if err != nil {
		return nil, false, fmt.Errorf("render %s: %w", format, err)
	}
	if err := r.Cache.Set(ctx, key, data, cache.ArtifactTTL); err == nil {
		hooks.OnCacheSet(ctx, "artifact", len(data))
	}
	return data, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) logger(opts Options) *log.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	return r.Logger
}

func runKeyOpts(s Spec) cache.RunKeyOpts {
	return cache.RunKeyOpts{
		SimulationID:      s.SimulationID,
		Seed:              s.Seed,
		Population:        s.Population,
		Generations:       s.Generations,
		MutationRate:      s.MutationRate,
		ElitismRates:      s.ElitismRates,
		Crossover:         string(s.Crossover),
		RandomOrientation: s.RandomOrientation,
		Points:            s.Points,
	}
}
