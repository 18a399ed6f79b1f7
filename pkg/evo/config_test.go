package evo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/beeline/pkg/errors"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		points int
		ok     bool
	}{
		{"defaults", func(*Config) {}, 10, true},
		{"population below two", func(c *Config) { c.Population = 1 }, 10, false},
		{"negative generations", func(c *Config) { c.Generations = -1 }, 10, false},
		{"zero generations tiny instance", func(c *Config) { c.Generations = 0 }, 2, true},
		{"mutation above one", func(c *Config) { c.MutationRate = 1.5 }, 10, false},
		{"mutation zero", func(c *Config) { c.MutationRate = 0 }, 10, true},
		{"empty schedule", func(c *Config) { c.ElitismRates = nil }, 10, false},
		{"zero elitism", func(c *Config) { c.ElitismRates = []float64{0.5, 0} }, 10, false},
		{"elitism one", func(c *Config) { c.ElitismRates = []float64{1} }, 10, true},
		{"unknown crossover", func(c *Config) { c.Crossover = "pmx" }, 10, false},
		{"order crossover", func(c *Config) { c.Crossover = MethodOrder }, 10, true},
		{"no points", func(*Config) {}, 0, false},
		{"one target", func(*Config) {}, 2, false},
		{"two targets", func(*Config) {}, 3, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate(tt.points)
			if tt.ok {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrCodeInvalidConfig), "got %v", err)
		})
	}
}

func TestElitismRateClamps(t *testing.T) {
	cfg := Config{ElitismRates: []float64{0.5, 0.4, 0.3, 0.2}}
	want := map[int]float64{0: 0.5, 1: 0.5, 2: 0.4, 3: 0.3, 4: 0.2, 5: 0.2, 500: 0.2}
	for g, rate := range want {
		assert.Equal(t, rate, cfg.ElitismRate(g), "generation %d", g)
	}
}

func TestParentCount(t *testing.T) {
	tests := []struct {
		rate float64
		n    int
		want int
	}{
		{0.5, 100, 50},
		{0.2, 100, 20},
		{0.5, 6, 3},
		{0.01, 100, 2},
		{0.1, 2, 2},
		{1, 7, 7},
		{0.25, 10, 3}, // 2.5 rounds half away from zero
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParentCount(tt.rate, tt.n), "rate=%v n=%d", tt.rate, tt.n)
	}
}

func TestDefaultConfigIsIndependent(t *testing.T) {
	a := DefaultConfig()
	a.ElitismRates[0] = 0.9
	assert.Equal(t, 0.5, DefaultConfig().ElitismRates[0])
}
