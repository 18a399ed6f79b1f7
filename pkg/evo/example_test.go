package evo_test

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/beeline/pkg/evo"
	"github.com/matzehuels/beeline/pkg/lineage"
	"github.com/matzehuels/beeline/pkg/tour"
)

func ExampleOptimizer_Run() {
	points := []tour.Point{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 0}, {X: 2, Y: 2}}
	cfg := evo.Config{
		Seed:         1,
		Population:   6,
		Generations:  3,
		ElitismRates: []float64{0.5},
		Crossover:    evo.MethodCommonEdge,
	}

	ledger := lineage.NewLedger()
	opt, err := evo.New(cfg, points, ledger, evo.WithLogger(log.New(io.Discard)))
	if err != nil {
		fmt.Println(err)
		return
	}
	res, err := opt.Run(context.Background())
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println("population:", len(res.Population))
	fmt.Println("individuals:", ledger.Len())
	fmt.Println("parents per generation:", res.Stats[0].ParentCount)
	// Output:
	// population: 6
	// individuals: 15
	// parents per generation: 3
}

func ExampleParentCount() {
	fmt.Println(evo.ParentCount(0.5, 100), evo.ParentCount(0.01, 100), evo.ParentCount(1, 7))
	// Output: 50 2 7
}
