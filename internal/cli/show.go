package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/beeline/pkg/errors"
)

// showCommand creates the show command for printing one individual.
func (c *CLI) showCommand() *cobra.Command {
	var (
		asJSON bool
		source ledgerSource
	)

	cmd := &cobra.Command{
		Use:   "show [ledger] <id>",
		Short: "Print one individual of a ledger",
		Example: `  beeline show bees_log.csv 25100
  beeline show bees_log.csv 1 --json`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, rawID, err := source.splitLedgerArgs(args)
			if err != nil {
				return err
			}
			id, err := parseID(rawID)
			if err != nil {
				return err
			}
			ledger, err := source.load(cmd.Context(), path)
			if err != nil {
				return err
			}
			ind, ok := ledger.Get(id)
			if !ok {
				return errors.New(errors.ErrCodeNotFound, "individual %d not found", id)
			}

			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(ind)
			}

			printNewline()
			fmt.Println(StyleTitle.Render(fmt.Sprintf("Individual %d", ind.ID)))
			printKeyValue("simulation", ind.SimulationID)
			printKeyValue("generation", strconv.Itoa(ind.Generation))
			printKeyValue("length", formatLength(ind.Length))
			printKeyValue("parents", formatParent(ind.ParentA)+", "+formatParent(ind.ParentB))
			printKeyValue("crossover", ind.Crossover)
			printKeyValue("elitism", formatRate(ind.ElitismRate))
			printKeyValue("mutation", formatRate(ind.MutationRate))
			printKeyValue("created", ind.CreatedAt.Format("2006-01-02 15:04:05.000"))
			printKeyValue("tour", ind.Tour.String())
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the individual as JSON")
	source.register(cmd)

	return cmd
}
