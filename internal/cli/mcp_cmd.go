package cli

import (
	"os"
	"os/signal"
	"syscall"

	mcpserver "github.com/alexanderramin/trainplan/internal/mcp"
	"github.com/spf13/cobra"
)

func newMCPCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the schedule to MCP clients over stdio",
		Long: `Run a Model Context Protocol server on stdin/stdout exposing the
decode_notation, list_weeks, get_week and get_day tools and the
trainplan://today resource. Logs go to stderr.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if app.Logger != nil {
				app.Logger.InfoContext(ctx, "mcp server starting", "version", Version)
			}
			return mcpserver.NewServer(app.Schedule, app.decoder(), Version).Serve(ctx)
		},
	}
}
