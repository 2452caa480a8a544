package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alexanderramin/trainplan/internal/config"
	"github.com/alexanderramin/trainplan/internal/notation"
	"github.com/alexanderramin/trainplan/internal/repository"
	"github.com/alexanderramin/trainplan/internal/service"
	"github.com/alexanderramin/trainplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testNow is Tuesday of week 1 of the sample plan.
var testNow = time.Date(2025, time.March, 4, 9, 0, 0, 0, time.UTC)

// testApp wires a full App backed by an in-memory DB for CLI integration tests.
func testApp(t *testing.T) *App {
	t.Helper()
	store := testutil.NewTestStore(t)
	conn := store.Conn()

	return &App{
		Compile:  service.NewCompileService(conn, store.UnitOfWork(), nil),
		Schedule: service.NewScheduleService(conn, notation.Default),
		Decoder:  notation.Default,
		Settings: testutil.SampleSettings(),
		Now:      func() time.Time { return testNow },
	}
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

// compileSample compiles the sample document and returns its path.
func compileSample(t *testing.T, app *App) string {
	t.Helper()
	path := testutil.WriteDocument(t, testutil.SampleDocument)
	_, err := executeCmd(t, app, "compile", path)
	require.NoError(t, err)
	return path
}

type fakePrompter struct {
	confirm   bool
	name      string
	confirms  int
	questions []string
}

func (p *fakePrompter) Confirm(title, description string) (bool, error) {
	p.confirms++
	p.questions = append(p.questions, title)
	return p.confirm, nil
}

func (p *fakePrompter) PlanSettings(name, startDate *string) error {
	if *name == "" {
		*name = p.name
	}
	if *startDate == "" {
		*startDate = "2025-03-03"
	}
	return nil
}

// --- compile ---

func TestCompileCmd(t *testing.T) {
	app := testApp(t)
	path := testutil.WriteDocument(t, testutil.SampleDocument)

	out, err := executeCmd(t, app, "compile", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Completed")
	assert.Contains(t, out, "Spring 50K")
	assert.Contains(t, out, "inserted")

	weeks, err := app.Schedule.ListWeeks(context.Background())
	require.NoError(t, err)
	assert.Len(t, weeks, 2)
}

func TestCompileCmd_RecompileNeedsConfirmation(t *testing.T) {
	app := testApp(t)
	path := compileSample(t, app)

	_, err := executeCmd(t, app, "compile", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--yes")
	assert.Contains(t, err.Error(), "1, 2")

	out, err := executeCmd(t, app, "compile", path, "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "replaced")

	runs, err := app.Schedule.ListRuns(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, runs, 2)
}

func TestCompileCmd_PromptDeclined(t *testing.T) {
	app := testApp(t)
	path := compileSample(t, app)
	prompt := &fakePrompter{confirm: false}
	app.Prompt = prompt

	out, err := executeCmd(t, app, "compile", path)
	require.NoError(t, err)
	assert.Contains(t, out, "nothing was written")
	assert.Equal(t, 1, prompt.confirms)
	assert.Contains(t, prompt.questions[0], "Replace 2 stored week(s)")

	runs, err := app.Schedule.ListRuns(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestCompileCmd_PromptAccepted(t *testing.T) {
	app := testApp(t)
	path := compileSample(t, app)
	app.Prompt = &fakePrompter{confirm: true}

	out, err := executeCmd(t, app, "compile", path)
	require.NoError(t, err)
	assert.Contains(t, out, "replaced")
}

func TestCompileCmd_DryRunWritesNothing(t *testing.T) {
	app := testApp(t)
	path := testutil.WriteDocument(t, testutil.SampleDocument)

	out, err := executeCmd(t, app, "compile", path, "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "DRY RUN")
	assert.Contains(t, out, "new")

	_, err = app.Schedule.ActivePlan(context.Background())
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCompileCmd_FlagsOverrideSettings(t *testing.T) {
	app := testApp(t)
	app.Settings.PlanName = ""
	path := testutil.WriteDocument(t, testutil.SampleDocument)

	_, err := executeCmd(t, app, "compile", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "plan.name is required")

	_, err = executeCmd(t, app, "compile", path, "--name", "Flagged Plan", "--weeks", "8")
	require.NoError(t, err)

	pv, err := app.Schedule.ActivePlan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Flagged Plan", pv.Plan.Name)
	assert.Equal(t, 8, pv.Plan.TotalWeeks)
}

func TestCompileCmd_PromptsForMissingSettings(t *testing.T) {
	app := testApp(t)
	app.Settings.PlanName = ""
	app.Settings.StartDate = ""
	app.Prompt = &fakePrompter{name: "Prompted Plan"}
	path := testutil.WriteDocument(t, testutil.SampleDocument)

	_, err := executeCmd(t, app, "compile", path)
	require.NoError(t, err)

	pv, err := app.Schedule.ActivePlan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Prompted Plan", pv.Plan.Name)
	assert.Equal(t, testutil.SampleStart, pv.Plan.StartDate)
}

func TestCompileCmd_MissingFile(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app, "compile", "/does/not/exist.md")
	assert.Error(t, err)
}

// --- schedule views ---

func TestWeekCmds(t *testing.T) {
	app := testApp(t)
	compileSample(t, app)

	out, err := executeCmd(t, app, "week", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Easy aerobic volume")
	assert.Contains(t, out, "Build")
	assert.Contains(t, out, "18 mi")
	assert.Contains(t, out, "Foundation")

	out, err = executeCmd(t, app, "week", "show", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "WEEK 1")
	assert.Contains(t, out, "Easy Run")
	assert.Contains(t, out, "Clamshells")
	assert.Contains(t, out, "Deadlift")
	assert.NotContains(t, out, "hip circles")
}

func TestWeekShow_DefaultsToCurrentWeek(t *testing.T) {
	app := testApp(t)
	compileSample(t, app)

	_, err := executeCmd(t, app, "plan", "set-week", "2")
	require.NoError(t, err)

	out, err := executeCmd(t, app, "week", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "WEEK 2")
}

func TestWeekShow_Errors(t *testing.T) {
	app := testApp(t)
	compileSample(t, app)

	_, err := executeCmd(t, app, "week", "show", "zero")
	assert.ErrorContains(t, err, "invalid week number")

	_, err = executeCmd(t, app, "week", "show", "7")
	assert.Error(t, err)
}

func TestDayCmd(t *testing.T) {
	app := testApp(t)
	compileSample(t, app)

	out, err := executeCmd(t, app, "day", "show", "2025-03-08")
	require.NoError(t, err)
	assert.Contains(t, out, "Long Run")
	assert.Contains(t, out, "In 4d")

	out, err = executeCmd(t, app, "day")
	require.NoError(t, err)
	assert.Contains(t, out, "Easy Run")
	assert.Contains(t, out, "week 1")

	out, err = executeCmd(t, app, "day", "tomorrow")
	require.NoError(t, err)
	assert.Contains(t, out, "ROWING")

	out, err = executeCmd(t, app, "day", "show", "2025-09-01")
	require.NoError(t, err)
	assert.Contains(t, out, "outside Spring 50K")
}

func TestPlanCmds(t *testing.T) {
	app := testApp(t)
	compileSample(t, app)

	out, err := executeCmd(t, app, "plan", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Spring 50K")
	assert.Contains(t, out, "Durability")

	out, err = executeCmd(t, app, "plan", "set-week", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "Current week set to 3")

	pv, err := app.Schedule.ActivePlan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, pv.Plan.CurrentWeek)

	_, err = executeCmd(t, app, "plan", "set-week", "99")
	assert.Error(t, err)
}

func TestScheduleCmds_NoPlan(t *testing.T) {
	app := testApp(t)

	for _, args := range [][]string{{"plan"}, {"week", "list"}, {"week", "show", "1"}, {"day"}} {
		_, err := executeCmd(t, app, args...)
		assert.ErrorIs(t, err, repository.ErrNotFound, "%v", args)
	}
}

// --- runs ---

func TestRunCmds(t *testing.T) {
	app := testApp(t)
	compileSample(t, app)

	out, err := executeCmd(t, app, "run", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Completed")

	runs, err := app.Schedule.ListRuns(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, runs, 1)

	out, err = executeCmd(t, app, "run", "show")
	require.NoError(t, err)
	assert.Contains(t, out, runs[0].ID)

	out, err = executeCmd(t, app, "run", "show", runs[0].ID[:8])
	require.NoError(t, err)
	assert.Contains(t, out, runs[0].ID)

	_, err = executeCmd(t, app, "run", "list", "--limit", "0")
	assert.Error(t, err)

	_, err = executeCmd(t, app, "run", "show", "nope")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestRunShow_NoRuns(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app, "run", "show")
	assert.ErrorContains(t, err, "no compile runs")
}

// --- decode ---

func TestDecodeCmd(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "decode", "Clamshells: 3x15-20 each side", "Plank 3x45sec")
	require.NoError(t, err)
	assert.Contains(t, out, "Clamshells")
	assert.Contains(t, out, "Plank")
	assert.Contains(t, out, "duration")
}

func TestDecodeCmd_JSON(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "decode", "--json", "Clamshells: 3x15-20 each side")
	require.NoError(t, err)

	var got []decodedJSON
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 1)
	require.Len(t, got[0].Exercises, 1)
	assert.Equal(t, "Clamshells", got[0].Exercises[0].Name)
	assert.Equal(t, 3, got[0].Exercises[0].Sets)
}

func TestDecodeCmd_Block(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "decode", "--json", "--block",
		"- Warm-up: 10 min easy bike", "- Main: Deadlift 4x6 (65%)", "- Plank 3x45sec")
	require.NoError(t, err)

	var got []decodedJSON
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 1)
	require.Len(t, got[0].Exercises, 2)
	assert.Equal(t, "Deadlift", got[0].Exercises[0].Name)
}

// --- root ---

func TestRootCmd_BootstrapsFromFlags(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	var (
		gotCfg   *config.Config
		gotStore bool
		closed   bool
	)
	app := &App{}
	app.Bootstrap = func(ctx context.Context, cfg *config.Config, withStore bool) (func() error, error) {
		gotCfg, gotStore = cfg, withStore
		app.Decoder = notation.Default
		return func() error { closed = true; return nil }, nil
	}

	_, err := executeCmd(t, app, "--db", "/tmp/flag.db", "--log-level", "debug", "decode", "Plank 3x45sec")
	require.NoError(t, err)
	require.NotNil(t, gotCfg)
	assert.False(t, gotStore, "decode never opens the store")
	assert.Equal(t, "/tmp/flag.db", gotCfg.DB.Path)
	assert.Equal(t, "debug", gotCfg.Log.Level)
	assert.Equal(t, "sqlite", gotCfg.DB.Driver)

	require.NoError(t, app.Close())
	assert.True(t, closed)
}

func TestRootCmd_MissingConfigFile(t *testing.T) {
	app := &App{Bootstrap: func(context.Context, *config.Config, bool) (func() error, error) {
		t.Fatal("bootstrap must not run")
		return nil, nil
	}}
	_, err := executeCmd(t, app, "--config", "/does/not/exist.yaml", "decode", "x")
	assert.ErrorContains(t, err, "config file")
}

func TestParseDay(t *testing.T) {
	now := testNow // Tuesday 2025-03-04
	day := func(m time.Month, d int) time.Time { return time.Date(2025, m, d, 0, 0, 0, 0, time.UTC) }

	tests := []struct {
		in   string
		want time.Time
	}{
		{"", day(time.March, 4)},
		{"today", day(time.March, 4)},
		{"Tomorrow", day(time.March, 5)},
		{"yesterday", day(time.March, 3)},
		{"2025-04-01", day(time.April, 1)},
		{"tuesday", day(time.March, 4)},
		{"Saturday", day(time.March, 8)},
		{"monday", day(time.March, 10)},
		{"March 15", day(time.March, 15)},
		{"Mar 9th", day(time.March, 9)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseDay(tt.in, now)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := parseDay("someday", now)
	assert.Error(t, err)
}

func TestParseWeekNumber(t *testing.T) {
	n, err := parseWeekNumber("4")
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	n, err = parseWeekNumber("W12")
	require.NoError(t, err)
	assert.Equal(t, 12, n)

	for _, bad := range []string{"0", "-1", "x"} {
		_, err := parseWeekNumber(bad)
		assert.Error(t, err, bad)
	}
}
