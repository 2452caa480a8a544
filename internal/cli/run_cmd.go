package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/trainplan/internal/cli/formatter"
	"github.com/spf13/cobra"
)

// runLookupWindow bounds how many recent runs a short ID is matched against.
const runLookupWindow = 200

func newRunCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Inspect compile history",
	}
	cmd.AddCommand(newRunListCmd(app), newRunShowCmd(app))
	return cmd
}

func newRunListCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List recent compile runs",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit < 1 {
				return fmt.Errorf("--limit must be positive, got %d", limit)
			}
			runs, err := app.Schedule.ListRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatRuns(runs, app.now()))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "number of runs to show")
	return cmd
}

func newRunShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show [ID]",
		Short: "Show a compile run and its failed records (default: the latest run)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			prefix := ""
			if len(args) == 1 {
				prefix = args[0]
			}
			id, err := resolveRunID(ctx, app, prefix)
			if err != nil {
				return err
			}
			rv, err := app.Schedule.GetRun(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatRun(rv, app.now()))
			return nil
		},
	}
}

// resolveRunID expands an ID prefix, as printed by "run list", to a full
// run ID. An empty prefix picks the latest run.
func resolveRunID(ctx context.Context, app *App, prefix string) (string, error) {
	runs, err := app.Schedule.ListRuns(ctx, runLookupWindow)
	if err != nil {
		return "", err
	}
	if prefix == "" {
		if len(runs) == 0 {
			return "", fmt.Errorf("no compile runs recorded")
		}
		return runs[0].ID, nil
	}

	var matches []string
	for _, r := range runs {
		if r.ID == prefix {
			return r.ID, nil
		}
		if strings.HasPrefix(r.ID, prefix) {
			matches = append(matches, r.ID)
		}
	}
	switch len(matches) {
	case 0:
		// Older than the window, or unknown; let the lookup decide.
		return prefix, nil
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("run ID %q is ambiguous (%d matches)", prefix, len(matches))
	}
}
