package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/alexanderramin/dealdesk/internal/domain"
	"github.com/alexanderramin/dealdesk/internal/service"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// App holds the services and process hooks used by CLI commands. Nil
// services disable the commands that need them.
type App struct {
	Actor domain.Actor

	MeetingNotes  service.MeetingNotesService
	Strategy      service.StrategyService
	Notifications service.NotificationService
	Signals       service.SignalService
	Approvals     service.ApprovalService
	Tasks         service.TaskService
	Deals         service.DealService
	Seed          service.SeedService

	// Serve runs the HTTP API until ctx is cancelled.
	Serve func(ctx context.Context, addr string) error
	// ServeMCP runs the MCP server on stdio until ctx is cancelled.
	ServeMCP func(ctx context.Context, actor domain.Actor) error

	DefaultHTTPAddr string
	LLMEnabled      bool
	IsInteractive   func() bool
	Now             func() time.Time
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now().UTC()
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// globalOptions are flags shared by every subcommand.
type globalOptions struct {
	workspace string
	actor     string
	json      bool
}

func globalFlagSet(opts *globalOptions, defaults domain.Actor) *pflag.FlagSet {
	fs := pflag.NewFlagSet("global", pflag.ContinueOnError)
	fs.StringVarP(&opts.workspace, "workspace", "w", defaults.WorkspaceID, "Workspace ID that scopes every read and write")
	fs.StringVar(&opts.actor, "actor", defaults.UserID, "Actor ID recorded on writes")
	fs.BoolVar(&opts.json, "json", false, "Print machine-readable JSON")
	return fs
}

func (o *globalOptions) actorValue() domain.Actor {
	return domain.Actor{WorkspaceID: o.workspace, UserID: o.actor}
}

// NewRootCmd creates the top-level "dealdesk" command.
func NewRootCmd(app *App) *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:           "dealdesk",
		Short:         "Meeting notes, strategy plays, and buying signals for your pipeline",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().AddFlagSet(globalFlagSet(opts, app.Actor))

	root.AddCommand(
		newNotesCmd(app, opts),
		newPlaysCmd(app, opts),
		newNotificationsCmd(app, opts),
		newSignalsCmd(app, opts),
		newApprovalsCmd(app, opts),
		newTasksCmd(app, opts),
		newDealsCmd(app, opts),
		newPipelineCmd(app, opts),
		newSeedCmd(app, opts),
		newServeCmd(app),
		newMCPCmd(app, opts),
	)
	return root
}

func requireService(ok bool, name string) error {
	if !ok {
		return fmt.Errorf("%w: %s is not configured", domain.ErrServiceUnavailable, name)
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// render prints v as JSON when --json is set, otherwise the text from pretty.
func render(cmd *cobra.Command, opts *globalOptions, v any, pretty func() string) error {
	if opts.json {
		return writeJSON(cmd.OutOrStdout(), v)
	}
	_, err := fmt.Fprint(cmd.OutOrStdout(), pretty())
	return err
}
