package evo

import (
	"cmp"
	"context"
	"math"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/beeline/pkg/errors"
	"github.com/matzehuels/beeline/pkg/lineage"
	"github.com/matzehuels/beeline/pkg/observability"
	"github.com/matzehuels/beeline/pkg/tour"
)

// GenerationStats summarizes one generation of a run. Lengths describe the
// population entering the generation, before breeding.
type GenerationStats struct {
	Generation  int     `json:"generation"`
	MeanLength  float64 `json:"mean_length"`
	BestLength  float64 `json:"best_length"`
	ElitismRate float64 `json:"elitism_rate"`
	ParentCount int     `json:"parent_count"`
	Children    int     `json:"children"`
}

// Result is the outcome of [Optimizer.Run].
type Result struct {
	SimulationID string               `json:"simulation_id"`
	Seed         uint64               `json:"seed"`
	Best         lineage.Individual   `json:"best"`
	Population   []lineage.Individual `json:"population"`
	Stats        []GenerationStats    `json:"stats"`
}

// MeanLengths returns the mean tour length per generation; entry g-1 belongs
// to generation g.
func (r *Result) MeanLengths() []float64 {
	out := make([]float64, len(r.Stats))
	for i, s := range r.Stats {
		out[i] = s.MeanLength
	}
	return out
}

// Option configures an [Optimizer].
type Option func(*Optimizer)

// WithLogger sets the logger. The default is log.Default().
func WithLogger(l *log.Logger) Option {
	return func(o *Optimizer) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithClock sets the clock used for seed selection and run timing.
func WithClock(now func() time.Time) Option {
	return func(o *Optimizer) {
		if now != nil {
			o.now = now
		}
	}
}

// Optimizer runs the generational loop for one configuration and point set.
// It is not safe for concurrent use.
type Optimizer struct {
	cfg    Config
	points []tour.Point
	ledger *lineage.Ledger
	cross  Crossover
	seed   uint64
	rng    *rand.Rand
	logger *log.Logger
	now    func() time.Time
}

// member is an individual of the live population.
type member struct {
	id     lineage.ID
	tour   tour.Tour
	length float64
}

// New validates cfg against points and prepares an optimizer that registers
// every individual it creates in ledger. A nil ledger is replaced by a fresh
// one, available through [Optimizer.Ledger].
func New(cfg Config, points []tour.Point, ledger *lineage.Ledger, opts ...Option) (*Optimizer, error) {
	if err := cfg.Validate(len(points)); err != nil {
		return nil, err
	}
	for i, p := range points {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "point %d has a non-finite coordinate", i)
		}
	}

	o := &Optimizer{
		logger: log.Default(),
		now:    time.Now,
		ledger: ledger,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.ledger == nil {
		o.ledger = lineage.NewLedger()
	}

	cfg.ElitismRates = slices.Clone(cfg.ElitismRates)
	if cfg.SimulationID == "" {
		cfg.SimulationID = uuid.NewString()
	}
	cross, err := NewCrossover(cfg.Crossover, cfg.RandomOrientation)
	if err != nil {
		return nil, err
	}

	o.cfg = cfg
	o.points = slices.Clone(points)
	o.cross = cross
	o.seed = resolveSeed(cfg.Seed, o.now)
	o.rng = NewRand(o.seed)
	return o, nil
}

// Config returns the effective configuration, with the simulation id filled in.
func (o *Optimizer) Config() Config { return o.cfg }

// Seed returns the seed of the run's random source.
func (o *Optimizer) Seed() uint64 { return o.seed }

// Ledger returns the ledger that receives every created individual.
func (o *Optimizer) Ledger() *lineage.Ledger { return o.ledger }

// Run creates the founding population and evolves it for the configured
// number of generations. It checks ctx between generations and returns
// ctx.Err() when cancelled; individuals registered so far stay in the ledger.
func (o *Optimizer) Run(ctx context.Context) (res *Result, err error) {
	start := o.now()
	simID := o.cfg.SimulationID
	hooks := observability.Optimizer()
	registered := 0

	hooks.OnRunStart(ctx, simID, o.cfg.Population, o.cfg.Generations)
	defer func() {
		var best float64
		if res != nil {
			best = res.Best.Length
		}
		hooks.OnRunComplete(ctx, simID, best, registered, o.now().Sub(start), err)
	}()

	o.logger.Info("starting run",
		"simulation", simID,
		"seed", o.seed,
		"population", o.cfg.Population,
		"generations", o.cfg.Generations,
		"crossover", o.cfg.Crossover)

	pop := o.founders()
	registered += len(pop)

	stats := make([]GenerationStats, 0, o.cfg.Generations)
	for g := 1; g <= o.cfg.Generations; g++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		var st GenerationStats
		pop, st, err = o.breed(g, pop)
		if err != nil {
			return nil, err
		}
		registered += st.Children
		stats = append(stats, st)

		hooks.OnGeneration(ctx, simID, g, st.MeanLength, st.BestLength, st.Children)
		o.logger.Debug("generation",
			"generation", g,
			"mean", st.MeanLength,
			"best", st.BestLength,
			"parents", st.ParentCount)
	}

	res = &Result{
		SimulationID: simID,
		Seed:         o.seed,
		Population:   make([]lineage.Individual, 0, len(pop)),
		Stats:        stats,
	}
	bestIdx := 0
	for i, m := range pop {
		if m.length < pop[bestIdx].length {
			bestIdx = i
		}
		ind, _ := o.ledger.Get(m.id)
		res.Population = append(res.Population, ind)
	}
	res.Best = res.Population[bestIdx]

	o.logger.Info("run complete",
		"simulation", simID,
		"best", res.Best.Length,
		"individuals", registered,
		"elapsed", o.now().Sub(start).Round(time.Millisecond))
	return res, nil
}

// founders registers N random tours as generation 0.
func (o *Optimizer) founders() []member {
	pop := make([]member, o.cfg.Population)
	meta := o.meta(o.cfg.ElitismRate(0))
	for i := range pop {
		t := tour.Random(o.rng, len(o.points), tour.Depot)
		length := tour.Length(t, o.points)
		id := o.ledger.Register(lineage.Entry{
			SimulationID: o.cfg.SimulationID,
			Generation:   0,
			Tour:         t,
			Length:       length,
			Run:          meta,
		})
		pop[i] = member{id: id, tour: t, length: length}
	}
	return pop
}

// breed produces generation g from pop: the elites survive unchanged and the
// rest of the population is refilled with children of elite pairs.
func (o *Optimizer) breed(g int, pop []member) ([]member, GenerationStats, error) {
	n := len(pop)
	rate := o.cfg.ElitismRate(g)
	parents := ParentCount(rate, n)

	var sum float64
	for _, m := range pop {
		sum += m.length
	}
	sorted := slices.Clone(pop)
	slices.SortStableFunc(sorted, func(a, b member) int { return cmp.Compare(a.length, b.length) })

	st := GenerationStats{
		Generation:  g,
		MeanLength:  sum / float64(n),
		BestLength:  sorted[0].length,
		ElitismRate: rate,
		ParentCount: parents,
		Children:    n - parents,
	}

	elites := sorted[:parents]
	next := make([]member, 0, n)
	next = append(next, elites...)

	nodes := tour.Nodes(len(o.points))
	meta := o.meta(rate)
	for range n - parents {
		i := o.rng.IntN(parents)
		j := o.rng.IntN(parents - 1)
		if j >= i {
			j++
		}
		a, b := elites[i], elites[j]

		child, err := o.cross.Cross(o.rng, a.tour, b.tour, nodes, tour.Depot)
		if err != nil {
			return nil, st, err
		}
		child = Mutate(o.rng, child, o.cfg.MutationRate)
		if err := tour.Validate(child, len(o.points), tour.Depot); err != nil {
			return nil, st, errors.Wrap(errors.ErrCodeInternal, err,
				"%s crossover produced an invalid tour in generation %d", o.cfg.Crossover, g)
		}

		length := tour.Length(child, o.points)
		id := o.ledger.Register(lineage.Entry{
			SimulationID: o.cfg.SimulationID,
			Generation:   g,
			Tour:         child,
			Length:       length,
			ParentA:      a.id,
			ParentB:      b.id,
			Run:          meta,
		})
		next = append(next, member{id: id, tour: child, length: length})
	}
	return next, st, nil
}

func (o *Optimizer) meta(rate float64) lineage.RunMeta {
	return lineage.RunMeta{
		Generations:  o.cfg.Generations,
		MutationRate: o.cfg.MutationRate,
		ElitismRate:  rate,
		Crossover:    string(o.cfg.Crossover),
	}
}
