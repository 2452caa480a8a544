// Package config loads trainplan settings from a YAML file, TRAINPLAN_*
// environment variables and command-line flags, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/alexanderramin/trainplan/internal/db"
	"github.com/alexanderramin/trainplan/internal/importer"
	"github.com/alexanderramin/trainplan/internal/notation"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. TRAINPLAN_DB_PATH.
const EnvPrefix = "TRAINPLAN"

type Config struct {
	DB      DBConfig      `mapstructure:"db"`
	Plan    PlanConfig    `mapstructure:"plan"`
	Grammar GrammarConfig `mapstructure:"grammar"`
	Log     LogConfig     `mapstructure:"log"`
}

type DBConfig struct {
	// Driver is sqlite or postgres.
	Driver string `mapstructure:"driver"`
	Path   string `mapstructure:"path"`
	DSN    string `mapstructure:"dsn"`
}

type PlanConfig struct {
	Name       string                  `mapstructure:"name"`
	Goal       string                  `mapstructure:"goal"`
	StartDate  string                  `mapstructure:"start_date" validate:"omitempty,datetime=2006-01-02"`
	Year       int                     `mapstructure:"year" validate:"gte=0"`
	TotalWeeks int                     `mapstructure:"total_weeks" validate:"gte=0"`
	Phases     []importer.PhaseSetting `mapstructure:"phases" validate:"dive"`
}

type GrammarConfig struct {
	// TablesFile overrides the embedded keyword and landmark tables.
	TablesFile string `mapstructure:"tables_file"`
}

type LogConfig struct {
	Level string `mapstructure:"level" validate:"omitempty,oneof=debug info warn warning error"`
	// Format is text, json or auto (text on a terminal).
	Format string `mapstructure:"format" validate:"omitempty,oneof=text json auto"`
}

// New returns a viper instance with defaults and environment overrides
// registered. Flags are bound onto it by the caller before Load.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault("db.driver", "sqlite")
	v.SetDefault("db.path", defaultDBPath())
	v.SetDefault("db.dsn", "")
	v.SetDefault("plan.name", "")
	v.SetDefault("plan.goal", "")
	v.SetDefault("plan.start_date", "")
	v.SetDefault("plan.year", 0)
	v.SetDefault("plan.total_weeks", 0)
	v.SetDefault("grammar.tables_file", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "auto")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the config file into v and decodes the result. An explicit
// path must exist; otherwise ./trainplan.yaml and then
// ~/.trainplan/config.yaml are tried and a missing file is not an error.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path == "" {
		path = discover()
	} else if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file: %w", err)
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if len(c.Plan.Phases) == 0 {
		c.Plan.Phases = importer.DefaultPhases()
	}
	if _, err := db.ParseDialect(c.DB.Driver); err != nil {
		return nil, err
	}
	c.Log.Level = strings.ToLower(c.Log.Level)
	c.Log.Format = strings.ToLower(c.Log.Format)
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

var validate = newValidator()

// newValidator reports fields by their config key rather than Go name.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("mapstructure"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks the field constraints declared in the struct tags.
// Every failing key is reported.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	errs := make([]error, 0, len(verrs))
	for _, fe := range verrs {
		key := strings.TrimPrefix(fe.Namespace(), "Config.")
		errs = append(errs, fmt.Errorf("%s: value %v fails %q", key, fe.Value(), fe.Tag()))
	}
	return fmt.Errorf("invalid config: %w", errors.Join(errs...))
}

// Dialect returns the configured store dialect.
func (c *Config) Dialect() db.Dialect {
	d, _ := db.ParseDialect(c.DB.Driver)
	return d
}

// Decoder builds the notation decoder over the configured tables.
func (c *Config) Decoder() (*notation.Decoder, error) {
	if c.Grammar.TablesFile == "" {
		return notation.Default, nil
	}
	t, err := notation.LoadTables(c.Grammar.TablesFile)
	if err != nil {
		return nil, err
	}
	return notation.New(t), nil
}

// Settings converts the plan section into importer settings.
func (c *Config) Settings(dec *notation.Decoder) importer.Settings {
	return importer.Settings{
		PlanName:   c.Plan.Name,
		Goal:       c.Plan.Goal,
		StartDate:  c.Plan.StartDate,
		Year:       c.Plan.Year,
		TotalWeeks: c.Plan.TotalWeeks,
		Phases:     c.Plan.Phases,
		Decoder:    dec,
	}
}

func discover() string {
	candidates := []string{"trainplan.yaml"}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".trainplan", "config.yaml"))
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "trainplan.db"
	}
	return filepath.Join(home, ".trainplan", "trainplan.db")
}
