package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/beeline/pkg/lineage"
	"github.com/matzehuels/beeline/pkg/pipeline"
)

// ancestorsOpts holds options for the ancestors command.
type ancestorsOpts struct {
	maxDepth int
	dotOut   string
	svgOut   string
	pngOut   string
	detailed bool
	source   ledgerSource
	cache    cacheFlags
}

// ancestorsCommand creates the ancestors command for tracing lineage.
func (c *CLI) ancestorsCommand() *cobra.Command {
	opts := ancestorsOpts{}

	cmd := &cobra.Command{
		Use:   "ancestors [ledger] <id>",
		Short: "Trace the ancestry of an individual",
		Long: `Walk the parent links of one individual breadth-first and list every ancestor
with its minimum hop distance. The ancestry can also be written as a family
tree in DOT, SVG or PNG, with the queried tour at the top and the founders at
the bottom.`,
		Example: `  # List the ancestry
  beeline ancestors bees_log.csv 25100

  # Render the last five generations of the family tree
  beeline ancestors bees_log.csv 25100 --max-depth 5 --svg tree.svg

  # Query an archived simulation
  beeline ancestors --mongo mongodb://localhost:27017 --simulation hive-1 25100`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, rawID, err := opts.source.splitLedgerArgs(args)
			if err != nil {
				return err
			}
			id, err := parseID(rawID)
			if err != nil {
				return err
			}
			return c.runAncestors(cmd.Context(), path, id, opts)
		},
	}

	cmd.Flags().IntVar(&opts.maxDepth, "max-depth", -1, "stop after this many generations back (-1 for all)")
	cmd.Flags().StringVar(&opts.dotOut, "dot", "", "write the family tree as DOT to this file")
	cmd.Flags().StringVar(&opts.svgOut, "svg", "", "write the family tree as SVG to this file")
	cmd.Flags().StringVar(&opts.pngOut, "png", "", "write the family tree as PNG to this file")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "label tree nodes with generation and tour length")
	opts.source.register(cmd)
	opts.cache.register(cmd)

	return cmd
}

func (c *CLI) runAncestors(ctx context.Context, path string, id lineage.ID, opts ancestorsOpts) error {
	ledger, err := opts.source.load(ctx, path)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, opts.cache)
	if err != nil {
		return err
	}
	defer runner.Close()

	a, err := runner.Ancestors(ctx, ledger, id, opts.maxDepth)
	if err != nil {
		return err
	}

	printNewline()
	fmt.Println(StyleTitle.Render(fmt.Sprintf("Ancestry of %d", id)))
	printDetail("%d ancestors over %d generations", a.Len()-1, a.Depth())
	fmt.Println(ancestryTable(ledger, a))

	dotOpts := lineage.DOTOptions{Detailed: opts.detailed, Layout: &lineage.DefaultLayoutOptions}
	outputs := []struct{ format, path string }{
		{pipeline.FormatDOT, opts.dotOut},
		{pipeline.FormatSVG, opts.svgOut},
		{pipeline.FormatPNG, opts.pngOut},
	}
	for _, out := range outputs {
		if out.path == "" {
			continue
		}
		if err := writeRender(ctx, runner, ledger, a, out.format, out.path, dotOpts); err != nil {
			return err
		}
	}
	return nil
}

func writeRender(ctx context.Context, runner *pipeline.Runner, src lineage.Source, a lineage.Ancestry, format, path string, opts lineage.DOTOptions) error {
	var spin *Spinner
	if format != pipeline.FormatDOT {
		spin = newSpinnerWithContext(ctx, "Rendering "+format+"...")
		spin.Start()
	}

	data, cached, err := runner.Render(ctx, src, a, format, opts)
	if spin != nil {
		spin.Stop()
	}
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	status := iconFresh
	if cached {
		status = iconCached
	}
	printSuccess("Wrote %s %s", format, StyleDim.Render("("+status+")"))
	printFile(path)
	return nil
}
