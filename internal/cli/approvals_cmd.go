package cli

import (
	"fmt"

	"github.com/alexanderramin/dealdesk/internal/cli/formatter"
	"github.com/alexanderramin/dealdesk/internal/contract"
	"github.com/alexanderramin/dealdesk/internal/domain"
	"github.com/spf13/cobra"
)

func newApprovalsCmd(app *App, opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "approvals",
		Short: "Review outbound messages waiting for approval",
	}
	cmd.AddCommand(
		newApprovalsListCmd(app, opts),
		newApprovalsReviewCmd(app, opts),
	)
	return cmd
}

func newApprovalsListCmd(app *App, opts *globalOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List pending approvals",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireService(app.Approvals != nil, "approvals"); err != nil {
				return err
			}
			approvals, err := app.Approvals.ListPending(cmd.Context(), opts.actorValue(), limit)
			if err != nil {
				return err
			}
			views := make([]contract.ApprovalView, 0, len(approvals))
			for _, a := range approvals {
				views = append(views, contract.NewApprovalView(a))
			}
			return render(cmd, opts, views, func() string { return formatter.FormatApprovals(views) })
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", contract.DefaultNotificationLimit, "Maximum approvals to show (1-100)")
	return cmd
}

func newApprovalsReviewCmd(app *App, opts *globalOptions) *cobra.Command {
	var (
		approve bool
		reject  bool
		reason  string
	)

	cmd := &cobra.Command{
		Use:   "review <approval-id>",
		Short: "Approve or reject a pending outbound message",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireService(app.Approvals != nil, "approvals"); err != nil {
				return err
			}

			decision := domain.ApprovalApproved
			if reject {
				decision = domain.ApprovalRejected
				if reason == "" && app.interactive() {
					if err := rejectionReasonForm(&reason).RunWithContext(cmd.Context()); err != nil {
						return err
					}
				}
			}

			a, err := app.Approvals.Review(cmd.Context(), contract.ReviewApprovalRequest{
				ApprovalID: args[0],
				Decision:   decision,
				Reason:     reason,
				Actor:      opts.actorValue(),
			})
			if err != nil {
				return err
			}
			view := contract.NewApprovalView(a)
			return render(cmd, opts, view, func() string {
				return fmt.Sprintf("%s %s\n", formatter.ApprovalStatusPill(a.Status), a.Subject)
			})
		},
	}
	cmd.Flags().BoolVar(&approve, "approve", false, "Approve the message")
	cmd.Flags().BoolVar(&reject, "reject", false, "Reject the message")
	cmd.Flags().StringVar(&reason, "reason", "", "Why the message was rejected")
	cmd.MarkFlagsMutuallyExclusive("approve", "reject")
	cmd.MarkFlagsOneRequired("approve", "reject")
	return cmd
}
