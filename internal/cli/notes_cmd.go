package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/alexanderramin/dealdesk/internal/cli/formatter"
	"github.com/alexanderramin/dealdesk/internal/contract"
	"github.com/alexanderramin/dealdesk/internal/domain"
	"github.com/spf13/cobra"
)

func newNotesCmd(app *App, opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notes",
		Short: "Turn meeting notes into tasks, a brief, and a follow-up draft",
	}
	cmd.AddCommand(
		newNotesProcessCmd(app, opts),
		newNotesApproveCmd(app, opts),
	)
	return cmd
}

func newNotesProcessCmd(app *App, opts *globalOptions) *cobra.Command {
	var dealID, text, file, happenedAt, source string

	cmd := &cobra.Command{
		Use:   "process",
		Short: "Process notes from a meeting on a deal",
		Long: "Process notes from a meeting on a deal. Notes come from --notes, --file " +
			"(\"-\" for stdin), or an editor form when running in a terminal.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireService(app.MeetingNotes != nil, "meeting notes"); err != nil {
				return err
			}
			notes, err := readNotes(cmd, app, text, file)
			if err != nil {
				return err
			}

			req := contract.NewProcessNotesRequest(opts.actorValue(), dealID, notes)
			if source != "" {
				req.Source = source
			}
			if happenedAt != "" {
				at, err := time.Parse(time.RFC3339, happenedAt)
				if err != nil {
					return fmt.Errorf("%w: --happened-at must be RFC 3339", domain.ErrValidation)
				}
				req.HappenedAt = &at
			}

			resp, err := app.MeetingNotes.Process(cmd.Context(), req)
			if err != nil {
				return err
			}
			return render(cmd, opts, resp, func() string {
				return formatter.FormatProcessNotes(resp, app.now())
			})
		},
	}

	cmd.Flags().StringVar(&dealID, "deal", "", "Deal ID")
	cmd.Flags().StringVar(&text, "notes", "", "Meeting notes text")
	cmd.Flags().StringVar(&file, "file", "", "Read notes from a file, or - for stdin")
	cmd.Flags().StringVar(&happenedAt, "happened-at", "", "When the meeting happened (RFC 3339, default now)")
	cmd.Flags().StringVar(&source, "source", "cli", "Where the notes came from")
	cmd.MarkFlagsMutuallyExclusive("notes", "file")
	_ = cmd.MarkFlagRequired("deal")

	return cmd
}

func readNotes(cmd *cobra.Command, app *App, text, file string) (string, error) {
	switch {
	case text != "":
		return text, nil
	case file == "-":
		b, err := io.ReadAll(cmd.InOrStdin())
		return string(b), err
	case file != "":
		b, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("reading notes file: %w", err)
		}
		return string(b), nil
	case app.interactive():
		var notes string
		if err := notesForm(&notes).RunWithContext(cmd.Context()); err != nil {
			return "", err
		}
		return notes, nil
	default:
		return "", fmt.Errorf("%w: pass --notes or --file", domain.ErrValidation)
	}
}

func newNotesApproveCmd(app *App, opts *globalOptions) *cobra.Command {
	var dealID string

	cmd := &cobra.Command{
		Use:   "request-approval",
		Short: "Queue the deal's follow-up draft for approval",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireService(app.MeetingNotes != nil, "meeting notes"); err != nil {
				return err
			}
			a, err := app.MeetingNotes.RequestFollowUpApproval(cmd.Context(), opts.actorValue(), dealID)
			if err != nil {
				return err
			}
			view := contract.NewApprovalView(a)
			return render(cmd, opts, view, func() string {
				return fmt.Sprintf("Queued %q for approval (%s)\n", strings.TrimSpace(a.Subject), a.ID)
			})
		},
	}
	cmd.Flags().StringVar(&dealID, "deal", "", "Deal ID")
	_ = cmd.MarkFlagRequired("deal")
	return cmd
}
