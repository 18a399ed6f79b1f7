package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/beeline/pkg/archive"
	"github.com/matzehuels/beeline/pkg/errors"
	"github.com/matzehuels/beeline/pkg/evo"
	beeio "github.com/matzehuels/beeline/pkg/io"
	"github.com/matzehuels/beeline/pkg/pipeline"
)

// runOpts holds options for the run command.
type runOpts struct {
	output   string
	asJSON   bool
	refresh  bool
	mongoURI string
	cache    cacheFlags

	// Overrides of the run file, applied only when the flag is set.
	population        int
	generations       int
	mutationRate      float64
	elitism           []float64
	crossover         string
	seed              uint64
	simulationID      string
	randomOrientation bool
}

// runCommand creates the run command for evolving tours.
func (c *CLI) runCommand() *cobra.Command {
	opts := runOpts{}

	cmd := &cobra.Command{
		Use:   "run [config.toml]",
		Short: "Evolve a tour and record its lineage",
		Long: `Run the evolutionary optimizer and write every individual it creates to a ledger.

The run file is TOML. Omitted keys take their defaults:

  population    = 100
  generations   = 500
  mutation_rate = 0.1
  elitism_rates = [0.5, 0.4, 0.3, 0.2]
  crossover     = "common-edge"   # or "order"
  seed          = 42              # 0 picks a seed from the clock
  points        = [[500, 500], [43, 378], ...]   # first point is the hive

Seeded runs are cached, so repeating a run returns the same ledger instantly.
The ledger format follows the output extension (.csv or .json).`,
		Example: `  # Run the bundled instance
  beeline run examples/hive.toml

  # Shorter run with a different schedule
  beeline run examples/hive.toml --generations 100 --elitism 0.5,0.2

  # Archive every individual to MongoDB
  beeline run examples/hive.toml --mongo mongodb://localhost:27017`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			spec := pipeline.DefaultSpec()
			if len(args) == 1 {
				var err error
				if spec, err = pipeline.LoadSpec(args[0]); err != nil {
					return err
				}
			}
			opts.apply(cmd, &spec.Config)
			if len(spec.Points) == 0 {
				return errors.New(errors.ErrCodeInvalidConfig, "no points to visit: pass a run file with a points list")
			}
			return c.runRun(cmd.Context(), spec, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", defaultLedger, "ledger output file (.csv or .json)")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print the run result as JSON instead of tables")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore a cached result and optimize again")
	cmd.Flags().StringVar(&opts.mongoURI, "mongo", "", "also archive the ledger to the MongoDB at this URI")
	opts.cache.register(cmd)

	cmd.Flags().IntVar(&opts.population, "population", 0, "population size")
	cmd.Flags().IntVar(&opts.generations, "generations", 0, "number of generations")
	cmd.Flags().Float64Var(&opts.mutationRate, "mutation-rate", 0, "probability of a swap mutation per child")
	cmd.Flags().Float64SliceVar(&opts.elitism, "elitism", nil, "elitism schedule, one rate per generation (last one repeats)")
	cmd.Flags().StringVar(&opts.crossover, "crossover", "", "crossover method: common-edge or order")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "random seed (0 picks one from the clock)")
	cmd.Flags().StringVar(&opts.simulationID, "simulation-id", "", "simulation id recorded on every individual")
	cmd.Flags().BoolVar(&opts.randomOrientation, "random-orientation", false, "flip inherited edges at random during common-edge crossover")

	return cmd
}

// apply copies the flags the user set onto cfg.
func (o *runOpts) apply(cmd *cobra.Command, cfg *evo.Config) {
	set := cmd.Flags().Changed
	if set("population") {
		cfg.Population = o.population
	}
	if set("generations") {
		cfg.Generations = o.generations
	}
	if set("mutation-rate") {
		cfg.MutationRate = o.mutationRate
	}
	if set("elitism") {
		cfg.ElitismRates = o.elitism
	}
	if set("crossover") {
		cfg.Crossover = evo.Method(o.crossover)
	}
	if set("seed") {
		cfg.Seed = o.seed
	}
	if set("simulation-id") {
		cfg.SimulationID = o.simulationID
	}
	if set("random-orientation") {
		cfg.RandomOrientation = o.randomOrientation
	}
}

func (c *CLI) runRun(ctx context.Context, spec pipeline.Spec, opts runOpts) error {
	logger := loggerFromContext(ctx)

	runner, err := c.newRunner(ctx, opts.cache)
	if err != nil {
		return err
	}
	defer runner.Close()

	res, err := runner.Run(ctx, pipeline.Options{Spec: spec, Refresh: opts.refresh, Logger: logger})
	if err != nil {
		return err
	}

	prog := newProgress(logger)
	if err := beeio.Export(res.Ledger, opts.output); err != nil {
		return fmt.Errorf("write ledger: %w", err)
	}
	prog.done("Wrote " + strconv.Itoa(res.Ledger.Len()) + " individuals to " + opts.output)

	if opts.mongoURI != "" {
		if err := archiveLedger(ctx, opts.mongoURI, res); err != nil {
			return err
		}
	}

	if opts.asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res.Run)
	}

	printNewline()
	fmt.Println(StyleTitle.Render("Run " + res.Run.SimulationID))
	printKeyValue("seed", strconv.FormatUint(res.Run.Seed, 10))
	printKeyValue("best tour", res.Run.Best.Tour.String())
	printStats(res.Ledger.Len(), res.Run.Best.Length, res.CacheHit)
	if len(res.Run.Stats) > 0 {
		fmt.Println(generationTable(res.Run.Stats))
	}
	printSuccess("Ledger written")
	printFile(opts.output)
	printNewline()
	printNextStep("Trace the best tour", fmt.Sprintf("%s ancestors %s %d --svg ancestry.svg", appName, opts.output, res.Run.Best.ID))
	return nil
}

func archiveLedger(ctx context.Context, uri string, res *pipeline.Result) error {
	prog := newProgress(loggerFromContext(ctx))
	m, err := archive.Connect(ctx, uri, "", "")
	if err != nil {
		return err
	}
	defer m.Close(context.WithoutCancel(ctx))

	n, err := m.Save(ctx, res.Ledger.All())
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Archived %d individuals of simulation %s", n, res.Run.SimulationID))
	return nil
}
