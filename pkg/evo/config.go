package evo

import (
	"math"
	"slices"

	"github.com/matzehuels/beeline/pkg/errors"
)

// Method selects the crossover operator.
type Method string

// Supported crossover methods.
const (
	MethodCommonEdge Method = "common-edge"
	MethodOrder      Method = "order"
)

// ValidMethods is the set of supported crossover methods.
var ValidMethods = map[Method]bool{
	MethodCommonEdge: true,
	MethodOrder:      true,
}

// Default run parameters, matching examples/hive.toml.
const (
	DefaultPopulation   = 100
	DefaultGenerations  = 500
	DefaultMutationRate = 0.1
	DefaultMethod       = MethodCommonEdge
)

// DefaultElitismRates is the default elitism schedule.
var DefaultElitismRates = []float64{0.5, 0.4, 0.3, 0.2}

// Config holds the run-level parameters of an optimizer.
type Config struct {
	// SimulationID tags every registered individual. A random UUID is used
	// when empty.
	SimulationID string `toml:"simulation_id" json:"simulation_id,omitempty"`

	// Seed seeds the run's random source. Zero picks a seed from the clock.
	Seed uint64 `toml:"seed" json:"seed,omitempty"`

	// Population is the number of live individuals per generation (N).
	Population int `toml:"population" json:"population"`

	// Generations is the number of generations to run (G).
	Generations int `toml:"generations" json:"generations"`

	// MutationRate is the probability that a child gets one swap mutation.
	MutationRate float64 `toml:"mutation_rate" json:"mutation_rate"`

	// ElitismRates is the elitism schedule. Generation g uses entry g-1,
	// clamped to the last entry; generation 0 is tagged with the first.
	ElitismRates []float64 `toml:"elitism_rates" json:"elitism_rates"`

	// Crossover selects the crossover operator.
	Crossover Method `toml:"crossover" json:"crossover"`

	// RandomOrientation flips the endpoint order of each inherited edge with
	// probability 1/2 during common-edge recombination.
	RandomOrientation bool `toml:"random_orientation" json:"random_orientation,omitempty"`
}

// DefaultConfig returns the default run parameters.
func DefaultConfig() Config {
	return Config{
		Population:   DefaultPopulation,
		Generations:  DefaultGenerations,
		MutationRate: DefaultMutationRate,
		ElitismRates: slices.Clone(DefaultElitismRates),
		Crossover:    DefaultMethod,
	}
}

// Validate checks the configuration against a point set of pointCount
// points (depot included). All failures are [errors.ErrCodeInvalidConfig].
func (c Config) Validate(pointCount int) error {
	if err := errors.ValidateMin("population", c.Population, 2); err != nil {
		return err
	}
	if err := errors.ValidateMin("generations", c.Generations, 0); err != nil {
		return err
	}
	if err := errors.ValidateFraction("mutation_rate", c.MutationRate); err != nil {
		return err
	}
	if len(c.ElitismRates) == 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "elitism_rates must not be empty")
	}
	for _, r := range c.ElitismRates {
		if err := errors.ValidateRate("elitism_rates", r); err != nil {
			return err
		}
	}
	if !ValidMethods[c.Crossover] {
		return errors.New(errors.ErrCodeInvalidConfig, "unknown crossover method %q (want %q or %q)",
			c.Crossover, MethodCommonEdge, MethodOrder)
	}
	if pointCount < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "point set must contain the depot")
	}
	if c.Generations > 0 && pointCount-1 < 2 {
		return errors.New(errors.ErrCodeInvalidConfig,
			"crossover needs at least 2 non-depot points, got %d", pointCount-1)
	}
	return nil
}

// ElitismRate returns the elitism rate for generation g. Generations are
// numbered from 1; g <= 1 uses the first entry and g beyond the schedule uses
// the last. The schedule must not be empty.
func (c Config) ElitismRate(g int) float64 {
	i := min(max(g-1, 0), len(c.ElitismRates)-1)
	return c.ElitismRates[i]
}

// ParentCount returns the number of elites kept from a population of n at the
// given rate: max(2, round(rate*n)), never more than n.
func ParentCount(rate float64, n int) int {
	return min(n, max(2, int(math.Round(rate*float64(n)))))
}
