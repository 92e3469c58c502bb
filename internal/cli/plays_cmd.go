package cli

import (
	"github.com/alexanderramin/dealdesk/internal/cli/formatter"
	"github.com/alexanderramin/dealdesk/internal/contract"
	"github.com/spf13/cobra"
)

func newPlaysCmd(app *App, opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plays",
		Short: "Recommend and execute strategy plays for a deal",
	}
	cmd.AddCommand(
		newPlaysListCmd(app, opts),
		newPlaysExecuteCmd(app, opts),
	)
	return cmd
}

func newPlaysListCmd(app *App, opts *globalOptions) *cobra.Command {
	var dealID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recommended plays for a deal",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireService(app.Strategy != nil, "strategy"); err != nil {
				return err
			}

			stop := func() {}
			if app.LLMEnabled && app.interactive() && !opts.json {
				stop = formatter.StartSpinner(cmd.ErrOrStderr(), "Drafting plays...")
			}
			resp, err := app.Strategy.ListPlays(cmd.Context(), opts.actorValue(), dealID)
			stop()
			if err != nil {
				return err
			}
			return render(cmd, opts, resp, func() string { return formatter.FormatPlays(resp) })
		},
	}
	cmd.Flags().StringVar(&dealID, "deal", "", "Deal ID")
	_ = cmd.MarkFlagRequired("deal")
	return cmd
}

// errPlayFailed is returned after a failed execution result has been printed.
type errPlayFailed struct{ res contract.ExecutePlayResult }

func (e errPlayFailed) Error() string { return e.res.Error }

func newPlaysExecuteCmd(app *App, opts *globalOptions) *cobra.Command {
	var dealID, playID string

	cmd := &cobra.Command{
		Use:   "execute",
		Short: "Schedule a play's steps as tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireService(app.Strategy != nil, "strategy"); err != nil {
				return err
			}
			res := app.Strategy.ExecutePlay(cmd.Context(), opts.actorValue(), playID, dealID)
			if err := render(cmd, opts, res, func() string { return formatter.FormatExecuteResult(res) }); err != nil {
				return err
			}
			if !res.Success {
				return errPlayFailed{res: res}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dealID, "deal", "", "Deal ID")
	cmd.Flags().StringVar(&playID, "play", "", "Play ID from 'plays list'")
	_ = cmd.MarkFlagRequired("deal")
	_ = cmd.MarkFlagRequired("play")
	return cmd
}
