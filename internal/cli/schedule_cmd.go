package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/trainplan/internal/calendar"
	"github.com/alexanderramin/trainplan/internal/cli/formatter"
	"github.com/alexanderramin/trainplan/internal/domain"
	"github.com/spf13/cobra"
)

func newPlanCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show or update the active plan",
	}
	show := newPlanShowCmd(app)
	cmd.Args, cmd.RunE = show.Args, show.RunE

	cmd.AddCommand(show, newPlanSetWeekCmd(app))
	return cmd
}

func newPlanShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the active plan and its phases",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pv, err := app.Schedule.ActivePlan(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatPlan(pv, app.now()))
			return nil
		},
	}
}

func newPlanSetWeekCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set-week N",
		Short: "Set the plan's current week",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := parseWeekNumber(args[0])
			if err != nil {
				return err
			}
			if err := app.Schedule.SetCurrentWeek(cmd.Context(), n); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Current week set to %d\n", n)
			return nil
		},
	}
}

func newWeekCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "week",
		Short: "List and show plan weeks",
	}
	cmd.AddCommand(newWeekListCmd(app), newWeekShowCmd(app))
	return cmd
}

func newWeekListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List the stored weeks of the active plan",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			pv, err := app.Schedule.ActivePlan(ctx)
			if err != nil {
				return err
			}
			weeks, err := app.Schedule.ListWeeks(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatWeeks(pv.Plan, pv.Phases, weeks))
			return nil
		},
	}
}

func newWeekShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show [N]",
		Short: "Show one week with all of its workouts (default: the current week)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var n int
			if len(args) == 1 {
				var err error
				if n, err = parseWeekNumber(args[0]); err != nil {
					return err
				}
			} else {
				pv, err := app.Schedule.ActivePlan(ctx)
				if err != nil {
					return err
				}
				if n = currentWeek(pv.Plan, app.now()); n == 0 {
					return fmt.Errorf("no current week: %s is outside the plan, pass a week number", app.now().Format(domain.DateLayout))
				}
			}
			wv, err := app.Schedule.GetWeek(ctx, n)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatWeek(wv))
			return nil
		},
	}
}

func newDayCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "day",
		Short: "Show the workouts of a date",
	}
	show := newDayShowCmd(app)
	cmd.Args, cmd.RunE = show.Args, show.RunE

	cmd.AddCommand(show)
	return cmd
}

func newDayShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show [DATE]",
		Short: "Show the workouts of a date (default: today)",
		Long: `DATE is YYYY-MM-DD, "today", "tomorrow", "yesterday", a weekday name
for the coming seven days, or a month and day such as "March 4".`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			now := app.now()
			date := now
			if len(args) == 1 {
				var err error
				if date, err = parseDay(args[0], now); err != nil {
					return err
				}
			}
			tv, err := app.Schedule.Today(cmd.Context(), date)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatToday(tv, now))
			return nil
		},
	}
}

// currentWeek is the plan's explicit current week, else the calendar week
// of now when that lies inside the plan.
func currentWeek(p *domain.Plan, now time.Time) int {
	if p.CurrentWeek > 0 {
		return p.CurrentWeek
	}
	if n := p.WeekOf(now); n > 0 && (p.TotalWeeks == 0 || n <= p.TotalWeeks) {
		return n
	}
	return 0
}

func parseWeekNumber(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimPrefix(strings.ToLower(s), "w"))
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid week number %q", s)
	}
	return n, nil
}

// parseDay resolves a day argument relative to now.
func parseDay(s string, now time.Time) (time.Time, error) {
	today := domain.DateOnly(now)
	text := strings.TrimSpace(s)
	switch strings.ToLower(text) {
	case "", "today":
		return today, nil
	case "tomorrow":
		return today.AddDate(0, 0, 1), nil
	case "yesterday":
		return today.AddDate(0, 0, -1), nil
	}
	if t, err := time.Parse(domain.DateLayout, text); err == nil {
		return t, nil
	}
	if wd, ok := calendar.ParseWeekday(text); ok {
		ahead := (int(wd) - int(today.Weekday()) + 7) % 7
		return today.AddDate(0, 0, ahead), nil
	}
	if t, ok := calendar.ParseExplicitDate(", "+text, today.Year()); ok {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q (use YYYY-MM-DD)", s)
}
