package cli

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func newServeCmd(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Serve == nil {
				return fmt.Errorf("HTTP server is not configured")
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			fmt.Fprintf(cmd.ErrOrStderr(), "listening on %s\n", addr)
			return app.Serve(ctx, addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", app.DefaultHTTPAddr, "Listen address")
	return cmd
}

func newMCPCmd(app *App, opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve deal tools to an MCP client over stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.ServeMCP == nil {
				return fmt.Errorf("MCP server is not configured")
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return app.ServeMCP(ctx, opts.actorValue())
		},
	}
}
