package cli

import (
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/alexanderramin/trainplan/internal/cli/formatter"
	"github.com/alexanderramin/trainplan/internal/importer"
	"github.com/alexanderramin/trainplan/internal/logging"
	"github.com/alexanderramin/trainplan/internal/service"
	"github.com/spf13/cobra"
)

type compileOptions struct {
	start  string
	name   string
	goal   string
	year   int
	weeks  int
	dryRun bool
	yes    bool
}

// apply overrides configured settings with the flags that were set.
func (o compileOptions) apply(cmd *cobra.Command, s importer.Settings) importer.Settings {
	f := cmd.Flags()
	if f.Changed("start") {
		s.StartDate = o.start
	}
	if f.Changed("name") {
		s.PlanName = o.name
	}
	if f.Changed("goal") {
		s.Goal = o.goal
	}
	if f.Changed("year") {
		s.Year = o.year
	}
	if f.Changed("weeks") {
		s.TotalWeeks = o.weeks
	}
	return s
}

func newCompileCmd(app *App) *cobra.Command {
	var o compileOptions

	cmd := &cobra.Command{
		Use:   "compile FILE",
		Short: "Compile a plan document into the schedule",
		Long: `Compile reads a markdown training plan and stores its plan, phases, weeks
and daily workouts. Recompiling a document replaces the stored weeks it
contains; use --dry-run to see what would change first.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(cmd, app, args[0], o)
		},
	}

	f := cmd.Flags()
	f.StringVar(&o.start, "start", "", "first day of week 1 (YYYY-MM-DD)")
	f.StringVar(&o.name, "name", "", "plan name")
	f.StringVar(&o.goal, "goal", "", "plan goal (default: the document title)")
	f.IntVar(&o.year, "year", 0, "year of dates written as \"March 4\" (default: the start date's year)")
	f.IntVar(&o.weeks, "weeks", 0, "total plan weeks (default: the highest week in the document)")
	f.BoolVar(&o.dryRun, "dry-run", false, "show what would be written without writing")
	f.BoolVarP(&o.yes, "yes", "y", false, "replace stored weeks without asking")

	return cmd
}

func runCompile(cmd *cobra.Command, app *App, path string, o compileOptions) error {
	out := cmd.OutOrStdout()
	settings := o.apply(cmd, app.Settings)
	if settings.Decoder == nil {
		settings.Decoder = app.decoder()
	}

	if app.Prompt != nil && (settings.PlanName == "" || settings.StartDate == "") {
		if err := app.Prompt.PlanSettings(&settings.PlanName, &settings.StartDate); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	preview, err := app.Compile.Preview(ctx, path, settings)
	if err != nil {
		return err
	}
	if o.dryRun {
		fmt.Fprintln(out, formatter.FormatPreview(preview))
		return nil
	}

	if n := len(preview.ExistingWeeks); n > 0 && !o.yes {
		if app.Prompt == nil {
			return fmt.Errorf("%d stored week(s) of %q would be replaced (%s); rerun with --yes",
				n, settings.PlanName, weekList(preview.ExistingWeeks))
		}
		ok, err := app.Prompt.Confirm(
			fmt.Sprintf("Replace %d stored week(s) of %s?", n, settings.PlanName),
			"Weeks "+weekList(preview.ExistingWeeks)+" will be rewritten from the document.",
		)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(out, formatter.Dim("Compile cancelled, nothing was written."))
			return nil
		}
	}

	if errOut := cmd.ErrOrStderr(); app.Prompt != nil && logging.IsTerminal(errOut) {
		stopSpinner := formatter.StartSpinner(errOut, "Compiling "+path)
		report, err := app.Compile.Compile(ctx, path, settings)
		stopSpinner()
		return printReport(cmd, report, err)
	}
	report, err := app.Compile.Compile(ctx, path, settings)
	return printReport(cmd, report, err)
}

func printReport(cmd *cobra.Command, report *service.CompileReport, err error) error {
	if report != nil && report.Run != nil {
		fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatCompileReport(report))
	}
	return err
}

func weekList(ns []int) string {
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ", ")
}
