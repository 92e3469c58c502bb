package cli

import (
	"fmt"

	"github.com/alexanderramin/dealdesk/internal/cli/formatter"
	"github.com/alexanderramin/dealdesk/internal/contract"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newNotificationsCmd(app *App, opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "notifications",
		Aliases: []string{"notif"},
		Short:   "Review notifications derived from buying signals",
	}
	cmd.AddCommand(
		newNotificationsListCmd(app, opts),
		newNotificationsAckCmd(app, opts),
		newNotificationsInboxCmd(app, opts),
	)
	return cmd
}

func newNotificationsListCmd(app *App, opts *globalOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Derive and list the most recent notifications",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireService(app.Notifications != nil, "notifications"); err != nil {
				return err
			}
			views, err := app.Notifications.List(cmd.Context(), opts.actorValue(), limit)
			if err != nil {
				return err
			}
			return render(cmd, opts, views, func() string {
				return formatter.FormatNotifications(views, app.now())
			})
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", contract.DefaultNotificationLimit, "Maximum notifications to show (1-100)")
	return cmd
}

func newNotificationsAckCmd(app *App, opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ack <notification-id>",
		Short: "Acknowledge a notification",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireService(app.Notifications != nil, "notifications"); err != nil {
				return err
			}
			n, err := app.Notifications.Acknowledge(cmd.Context(), opts.actorValue(), args[0])
			if err != nil {
				return err
			}
			return render(cmd, opts, contract.NewAcknowledgementView(n), func() string {
				return fmt.Sprintf("%s %s\n", formatter.NotificationStatusPill(n.Status), n.Summary)
			})
		},
	}
	return cmd
}

func newNotificationsInboxCmd(app *App, opts *globalOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "inbox",
		Short: "Browse and acknowledge notifications interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireService(app.Notifications != nil, "notifications"); err != nil {
				return err
			}
			if !app.interactive() {
				return fmt.Errorf("inbox needs a terminal; use 'notifications list' instead")
			}
			m := newInboxModel(cmd.Context(), app.Notifications, opts.actorValue(), limit, app.now)
			p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			_, err := p.Run()
			return err
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", contract.DefaultNotificationLimit, "Maximum notifications to load (1-100)")
	return cmd
}
