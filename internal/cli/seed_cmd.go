package cli

import (
	"fmt"

	"github.com/alexanderramin/dealdesk/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newSeedCmd(app *App, opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load a demo account, deal, and signals",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireService(app.Seed != nil, "seed"); err != nil {
				return err
			}
			res, err := app.Seed.Seed(cmd.Context(), opts.actorValue())
			if err != nil {
				return err
			}
			return render(cmd, opts, res, func() string {
				return fmt.Sprintf("%s\n  deal    %s\n  account %s\n  signals %d\n",
					formatter.Header("Seeded demo data"), res.DealID, res.AccountID, res.Signals)
			})
		},
	}
}
