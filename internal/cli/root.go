// Package cli implements the trainplan command line.
package cli

import (
	"context"
	"log/slog"
	"time"

	"github.com/alexanderramin/trainplan/internal/config"
	"github.com/alexanderramin/trainplan/internal/importer"
	"github.com/alexanderramin/trainplan/internal/notation"
	"github.com/alexanderramin/trainplan/internal/service"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Version is stamped at build time with -ldflags.
var Version = "dev"

// annotationNoStore marks commands that never open the database.
const annotationNoStore = "trainplan/no-store"

// App holds the services and settings the commands run against.
type App struct {
	Compile  service.CompileService
	Schedule service.ScheduleService
	Decoder  *notation.Decoder
	// Settings are the configured plan settings; compile flags override them.
	Settings importer.Settings
	Logger   *slog.Logger
	// Prompt is nil when the session is not interactive.
	Prompt Prompter
	Now    func() time.Time

	// Bootstrap fills in the fields above from the resolved configuration
	// once flags are parsed. It is nil when they are preset, as in tests.
	// withStore is false for commands that never touch the database. The
	// returned func releases whatever Bootstrap opened.
	Bootstrap func(ctx context.Context, cfg *config.Config, withStore bool) (func() error, error)

	closer func() error
}

// Close releases resources opened by Bootstrap.
func (a *App) Close() error {
	if a.closer == nil {
		return nil
	}
	c := a.closer
	a.closer = nil
	return c()
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) decoder() *notation.Decoder {
	if a.Decoder != nil {
		return a.Decoder
	}
	return notation.Default
}

// NewRootCmd creates the top-level "trainplan" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	v := config.New()
	var cfgPath string

	root := &cobra.Command{
		Use:           "trainplan",
		Short:         "Compile markdown training plans into a queryable workout schedule",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if app.Bootstrap == nil {
				return nil
			}
			cfg, err := config.Load(v, cfgPath)
			if err != nil {
				return err
			}
			closer, err := app.Bootstrap(cmd.Context(), cfg, cmd.Annotations[annotationNoStore] == "")
			if err != nil {
				return err
			}
			app.closer = closer
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&cfgPath, "config", "", "config file (default ./trainplan.yaml, then ~/.trainplan/config.yaml)")
	pf.String("db", "", "SQLite database path")
	pf.String("driver", "", "database driver: sqlite or postgres")
	pf.String("dsn", "", "PostgreSQL connection string")
	pf.String("tables", "", "YAML file overriding the notation keyword tables")
	pf.String("log-level", "", "log level: debug, info, warn or error")
	pf.String("log-format", "", "log format: text, json or auto")
	bindFlags(v, pf, map[string]string{
		"db.path":             "db",
		"db.driver":           "driver",
		"db.dsn":              "dsn",
		"grammar.tables_file": "tables",
		"log.level":           "log-level",
		"log.format":          "log-format",
	})

	root.AddCommand(
		newCompileCmd(app),
		newPlanCmd(app),
		newWeekCmd(app),
		newDayCmd(app),
		newDecodeCmd(app),
		newRunCmd(app),
		newMCPCmd(app),
	)

	return root
}

// bindFlags binds config keys to the named flags so a flag that is set
// outranks the config file and the environment.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet, keys map[string]string) {
	for key, name := range keys {
		if f := fs.Lookup(name); f != nil {
			_ = v.BindPFlag(key, f)
		}
	}
}
