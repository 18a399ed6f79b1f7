package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/beeline/pkg/archive"
	"github.com/matzehuels/beeline/pkg/buildinfo"
	"github.com/matzehuels/beeline/pkg/cache"
	"github.com/matzehuels/beeline/pkg/errors"
	beeio "github.com/matzehuels/beeline/pkg/io"
	"github.com/matzehuels/beeline/pkg/lineage"
	"github.com/matzehuels/beeline/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "beeline"

	// defaultLedger is the ledger file written by "run".
	defaultLedger = "bees_log.csv"

	// redisPrefix namespaces keys in a shared Redis cache.
	redisPrefix = appName + ":"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Beeline evolves short tours and traces their ancestry",
		Long:         `Beeline solves a bee's flower-visiting tour with an evolutionary algorithm, records every tour it breeds in a lineage ledger, and answers ancestry queries over that ledger.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.runCommand())
	root.AddCommand(c.ancestorsCommand())
	root.AddCommand(c.showCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// cacheFlags selects the cache backend of a command.
type cacheFlags struct {
	noCache  bool
	redisURL string
}

func (f *cacheFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&f.redisURL, "redis", "", "use the Redis cache at this URL (redis://host:port/db)")
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, f cacheFlags) (*pipeline.Runner, error) {
	ch, keyer, err := newCache(ctx, f)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(ch, keyer, loggerFromContext(ctx)), nil
}

func newCache(ctx context.Context, f cacheFlags) (cache.Cache, cache.Keyer, error) {
	switch {
	case f.noCache:
		return cache.NewNullCache(), nil, nil
	case f.redisURL != "":
		rc, err := cache.NewRedisCache(ctx, f.redisURL)
		if err != nil {
			return nil, nil, err
		}
		return rc, cache.NewScopedKeyer(nil, redisPrefix), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil, nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, nil, err
	}
	return fc, nil, nil
}

// =============================================================================
// Ledger Sources
// =============================================================================

// ledgerSource names where a command reads its ledger from: a CSV/JSON file,
// or a simulation archived in MongoDB.
type ledgerSource struct {
	mongoURI   string
	simulation string
}

func (s *ledgerSource) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&s.mongoURI, "mongo", "", "read the ledger from the MongoDB archive at this URI")
	cmd.Flags().StringVar(&s.simulation, "simulation", "", "simulation id to load from the archive (with --mongo)")
}

// fromArchive reports whether the ledger comes from MongoDB, in which case
// no ledger path argument is expected.
func (s *ledgerSource) fromArchive() bool { return s.mongoURI != "" }

func (s *ledgerSource) load(ctx context.Context, path string) (*lineage.Ledger, error) {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	if !s.fromArchive() {
		l, err := beeio.Import(path)
		if err != nil {
			return nil, err
		}
		prog.done("Loaded " + strconv.Itoa(l.Len()) + " individuals from " + path)
		return l, nil
	}

	if s.simulation == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "--simulation is required with --mongo")
	}
	m, err := archive.Connect(ctx, s.mongoURI, "", "")
	if err != nil {
		return nil, err
	}
	defer m.Close(context.WithoutCancel(ctx))
	l, err := m.Load(ctx, s.simulation)
	if err != nil {
		return nil, err
	}
	prog.done("Loaded " + strconv.Itoa(l.Len()) + " individuals of simulation " + s.simulation)
	return l, nil
}

// splitLedgerArgs returns the ledger path and id argument of a command that
// takes "[ledger] <id>".
func (s *ledgerSource) splitLedgerArgs(args []string) (path, id string, err error) {
	switch {
	case s.fromArchive() && len(args) == 1:
		return "", args[0], nil
	case !s.fromArchive() && len(args) == 2:
		return args[0], args[1], nil
	case s.fromArchive():
		return "", "", errors.New(errors.ErrCodeInvalidInput, "expected <id> when reading from --mongo")
	default:
		return "", "", errors.New(errors.ErrCodeInvalidInput, "expected <ledger> <id>")
	}
}

// parseID parses a positive individual id.
func parseID(s string) (lineage.ID, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil || !lineage.ID(v).Valid() {
		return lineage.NoID, errors.New(errors.ErrCodeInvalidInput, "invalid individual id %q", s)
	}
	return lineage.ID(v), nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/beeline/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
