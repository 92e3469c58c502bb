package cli

import (
	"github.com/alexanderramin/dealdesk/internal/cli/formatter"
	"github.com/alexanderramin/dealdesk/internal/contract"
	"github.com/alexanderramin/dealdesk/internal/domain"
	"github.com/spf13/cobra"
)

func newSignalsCmd(app *App, opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "signals",
		Short: "Inspect buying signals",
	}
	cmd.AddCommand(newSignalsAlertsCmd(app, opts))
	return cmd
}

func newSignalsAlertsCmd(app *App, opts *globalOptions) *cobra.Command {
	var (
		minPriority string
		limit       int
	)

	cmd := &cobra.Command{
		Use:   "alerts",
		Short: "Rank recent signals by priority and score",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireService(app.Signals != nil, "signals"); err != nil {
				return err
			}
			alerts, err := app.Signals.Alerts(cmd.Context(), opts.actorValue(), domain.Priority(minPriority), limit)
			if err != nil {
				return err
			}
			return render(cmd, opts, alerts, func() string {
				return formatter.FormatAlerts(alerts, app.now())
			})
		},
	}
	cmd.Flags().StringVar(&minPriority, "min-priority", string(domain.PriorityLow), "Lowest priority to include (high, medium, low)")
	cmd.Flags().IntVarP(&limit, "limit", "n", contract.DefaultNotificationLimit, "Maximum alerts to show (1-100)")
	return cmd
}
