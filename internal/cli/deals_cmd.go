package cli

import (
	"github.com/alexanderramin/dealdesk/internal/cli/formatter"
	"github.com/alexanderramin/dealdesk/internal/contract"
	"github.com/spf13/cobra"
)

func newDealsCmd(app *App, opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "deals",
		Short: "List deals in the workspace",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireService(app.Deals != nil, "deals"); err != nil {
				return err
			}
			deals, err := app.Deals.List(cmd.Context(), opts.actorValue())
			if err != nil {
				return err
			}
			return render(cmd, opts, contract.NewDealViews(deals), func() string { return formatter.FormatDeals(deals) })
		},
	}
}

func newPipelineCmd(app *App, opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "pipeline",
		Short: "Summarize open deals by stage",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireService(app.Deals != nil, "deals"); err != nil {
				return err
			}
			p, err := app.Deals.Pipeline(cmd.Context(), opts.actorValue())
			if err != nil {
				return err
			}
			return render(cmd, opts, p, func() string { return formatter.FormatPipeline(p) })
		},
	}
}
