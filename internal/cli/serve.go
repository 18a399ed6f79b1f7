package cli

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/matzehuels/beeline/pkg/api"
	"github.com/matzehuels/beeline/pkg/observability/prom"
)

// serveCommand creates the serve command for the HTTP query API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr   string
		source ledgerSource
		flags  cacheFlags
	)

	cmd := &cobra.Command{
		Use:   "serve [ledger]",
		Short: "Serve ancestry queries over HTTP",
		Long: `Load a ledger and answer ancestry queries over HTTP.

Routes:
  GET /individuals/{id}
  GET /individuals/{id}/ancestors?max_depth=N
  GET /individuals/{id}/layout?max_depth=N
  GET /individuals/{id}/tree?format=dot|svg|png
  GET /generations/{g}
  GET /metrics`,
		Example: `  beeline serve bees_log.csv --addr :8080
  curl localhost:8080/individuals/25100/ancestors?max_depth=3`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			var path string
			if !source.fromArchive() {
				if err := cobra.ExactArgs(1)(cmd, args); err != nil {
					return err
				}
				path = args[0]
			}
			ledger, err := source.load(ctx, path)
			if err != nil {
				return err
			}

			runner, err := c.newRunner(ctx, flags)
			if err != nil {
				return err
			}
			defer runner.Close()

			reg := prometheus.NewRegistry()
			reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
			prom.New(reg).Install()

			srv := api.New(ledger,
				api.WithLogger(logger),
				api.WithRunner(runner),
				api.WithMetrics(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})),
			)
			printInfo("Serving %d individuals on %s", ledger.Len(), addr)
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	source.register(cmd)
	flags.register(cmd)

	return cmd
}
