package cli

import (
	"fmt"

	"github.com/alexanderramin/dealdesk/internal/cli/formatter"
	"github.com/alexanderramin/dealdesk/internal/contract"
	"github.com/alexanderramin/dealdesk/internal/domain"
	"github.com/spf13/cobra"
)

func newTasksCmd(app *App, opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "List and update deal tasks",
	}
	cmd.AddCommand(
		newTasksListCmd(app, opts),
		newTasksStatusCmd(app, opts),
	)
	return cmd
}

func newTasksListCmd(app *App, opts *globalOptions) *cobra.Command {
	var dealID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a deal's tasks by due date",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireService(app.Tasks != nil, "tasks"); err != nil {
				return err
			}
			tasks, err := app.Tasks.ListByDeal(cmd.Context(), opts.actorValue(), dealID)
			if err != nil {
				return err
			}
			views := contract.NewTaskViews(tasks)
			return render(cmd, opts, views, func() string { return formatter.FormatTasks(views, app.now()) })
		},
	}
	cmd.Flags().StringVar(&dealID, "deal", "", "Deal ID")
	_ = cmd.MarkFlagRequired("deal")
	return cmd
}

func newTasksStatusCmd(app *App, opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status <task-id> <todo|in-progress|done>",
		Short: "Move a task to a new status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireService(app.Tasks != nil, "tasks"); err != nil {
				return err
			}
			status, err := domain.TaskStatusCodec.Parse(args[1])
			if err != nil {
				return err
			}
			t, err := app.Tasks.UpdateStatus(cmd.Context(), opts.actorValue(), args[0], status)
			if err != nil {
				return err
			}
			view := contract.NewTaskView(t)
			return render(cmd, opts, view, func() string {
				return fmt.Sprintf("%s %s\n", formatter.TaskStatusPill(t.Status), t.Title)
			})
		},
	}
	return cmd
}
