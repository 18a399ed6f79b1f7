// Package prom implements the observability hooks with Prometheus metrics.
package prom

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/matzehuels/beeline/pkg/observability"
)

// Hooks records optimizer, cache and query events as Prometheus metrics.
// A single value implements every hook interface.
type Hooks struct {
	runs          *prometheus.CounterVec
	generations   prometheus.Counter
	individuals   prometheus.Counter
	meanLength    *prometheus.GaugeVec
	bestLength    *prometheus.GaugeVec
	runDuration   prometheus.Histogram
	cacheEvents   *prometheus.CounterVec
	cacheBytes    prometheus.Counter
	queryDuration prometheus.Histogram
	ancestrySize  prometheus.Histogram
	lookupMisses  *prometheus.CounterVec
}

// New creates the metrics and registers them with reg.
// It panics if a metric with the same name is already registered.
func New(reg prometheus.Registerer) *Hooks {
	h := &Hooks{
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "beeline_runs_total",
			Help: "Optimizer runs by outcome.",
		}, []string{"outcome"}),
		generations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "beeline_generations_total",
			Help: "Generations bred across all runs.",
		}),
		individuals: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "beeline_individuals_bred_total",
			Help: "Children registered in the ledger.",
		}),
		meanLength: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "beeline_population_mean_length",
			Help: "Mean tour length of the latest generation.",
		}, []string{"simulation_id"}),
		bestLength: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "beeline_population_best_length",
			Help: "Best tour length of the latest generation.",
		}, []string{"simulation_id"}),
		runDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "beeline_run_duration_seconds",
			Help:    "Wall time of optimizer runs.",
			Buckets: prometheus.ExponentialBuckets(0.01, 4, 8),
		}),
		cacheEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "beeline_cache_events_total",
			Help: "Cache hits, misses and writes.",
		}, []string{"key_type", "event"}),
		cacheBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "beeline_cache_written_bytes_total",
			Help: "Bytes written to the cache.",
		}),
		queryDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "beeline_ancestor_query_duration_seconds",
			Help:    "Latency of ancestry queries.",
			Buckets: prometheus.DefBuckets,
		}),
		ancestrySize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "beeline_ancestry_size",
			Help:    "Individuals returned per ancestry query.",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12),
		}),
		lookupMisses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "beeline_lookup_misses_total",
			Help: "Lookups of ids absent from the ledger.",
		}, []string{"kind"}),
	}
	reg.MustRegister(
		h.runs, h.generations, h.individuals, h.meanLength, h.bestLength, h.runDuration,
		h.cacheEvents, h.cacheBytes, h.queryDuration, h.ancestrySize, h.lookupMisses,
	)
	return h
}

// Install registers h as the global optimizer, cache and query hooks.
func (h *Hooks) Install() {
	observability.SetOptimizerHooks(h)
	observability.SetCacheHooks(h)
	observability.SetQueryHooks(h)
}

func (h *Hooks) OnRunStart(context.Context, string, int, int) {}

func (h *Hooks) OnGeneration(_ context.Context, simID string, _ int, mean, best float64, children int) {
	h.generations.Inc()
	h.individuals.Add(float64(children))
	h.meanLength.WithLabelValues(simID).Set(mean)
	h.bestLength.WithLabelValues(simID).Set(best)
}

func (h *Hooks) OnRunComplete(_ context.Context, simID string, best float64, _ int, d time.Duration, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	} else {
		h.bestLength.WithLabelValues(simID).Set(best)
	}
	h.runs.WithLabelValues(outcome).Inc()
	h.runDuration.Observe(d.Seconds())
}

func (h *Hooks) OnCacheHit(_ context.Context, keyType string) {
	h.cacheEvents.WithLabelValues(keyType, "hit").Inc()
}

func (h *Hooks) OnCacheMiss(_ context.Context, keyType string) {
	h.cacheEvents.WithLabelValues(keyType, "miss").Inc()
}

func (h *Hooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.cacheEvents.WithLabelValues(keyType, "set").Inc()
	h.cacheBytes.Add(float64(size))
}

func (h *Hooks) OnAncestorQuery(_ context.Context, _ int64, size int, d time.Duration) {
	h.queryDuration.Observe(d.Seconds())
	h.ancestrySize.Observe(float64(size))
}

func (h *Hooks) OnLookupMiss(_ context.Context, kind string) {
	h.lookupMisses.WithLabelValues(kind).Inc()
}

var (
	_ observability.OptimizerHooks = (*Hooks)(nil)
	_ observability.CacheHooks     = (*Hooks)(nil)
	_ observability.QueryHooks     = (*Hooks)(nil)
)
