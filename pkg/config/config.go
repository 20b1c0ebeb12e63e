/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: config.go
Description: Configuration for lstar-probe. Values come from defaults, an optional
config file, LSTAR_* environment variables and bound command-line flags, in
increasing order of precedence, all resolved through viper.
*/

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kleascm/lstar-probe/pkg/enumerate"
	"github.com/kleascm/lstar-probe/pkg/learner"
	"github.com/kleascm/lstar-probe/pkg/teacher"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment overrides, e.g. LSTAR_MAX_LENGTH
const EnvPrefix = "LSTAR"

// Keys used in config files, env vars and flag bindings
const (
	KeyMaxLength     = "max_length"
	KeyOverflowSlack = "overflow_slack"
	KeyVerbose       = "verbose"
	KeyEnumerate     = "enumerate"
	KeyTeacher       = "teacher"
	KeyWorkers       = "workers"
	KeyTraceFile     = "trace_file"
	KeyOutputDir     = "output_dir"
	KeyMetricsFile   = "metrics_file"
	KeyLogLevel      = "log.level"
	KeyLogFormat     = "log.format"
	KeyLogDir        = "log.dir"
)

// ErrInvalidConfig wraps every validation failure
var ErrInvalidConfig = errors.New("config: invalid configuration")

// LogConfig selects logger behaviour
type LogConfig struct {
	Level  string `mapstructure:"level" json:"level"`
	Format string `mapstructure:"format" json:"format"`
	Dir    string `mapstructure:"dir" json:"dir"` // empty: console only
}

// Config holds every recognized option
type Config struct {
	MaxLength     int    `mapstructure:"max_length" json:"max_length"`
	OverflowSlack int    `mapstructure:"overflow_slack" json:"overflow_slack"`
	Verbose       bool   `mapstructure:"verbose" json:"verbose"`
	Enumerate     bool   `mapstructure:"enumerate" json:"enumerate"`
	Teacher       string `mapstructure:"teacher" json:"teacher"`
	Workers       int    `mapstructure:"workers" json:"workers"`
	TraceFile     string `mapstructure:"trace_file" json:"trace_file"`     // empty: no trace
	OutputDir     string `mapstructure:"output_dir" json:"output_dir"`     // empty: no JSON results
	MetricsFile   string `mapstructure:"metrics_file" json:"metrics_file"` // empty: no Prometheus dump

	Log LogConfig `mapstructure:"log" json:"log"`
}

// Default returns the research defaults: strings up to length 10 with the full
// 11 positions of slack needed to expose every false positive and negative.
func Default() Config {
	return Config{
		MaxLength:     10,
		OverflowSlack: 11,
		Enumerate:     true,
		Teacher:       "10010001001",
		Workers:       1,
		Log: LogConfig{
			Level:  "info",
			Format: "custom",
		},
	}
}

// SetDefaults registers Default() on v so unset keys resolve to it
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault(KeyMaxLength, d.MaxLength)
	v.SetDefault(KeyOverflowSlack, d.OverflowSlack)
	v.SetDefault(KeyVerbose, d.Verbose)
	v.SetDefault(KeyEnumerate, d.Enumerate)
	v.SetDefault(KeyTeacher, d.Teacher)
	v.SetDefault(KeyWorkers, d.Workers)
	v.SetDefault(KeyTraceFile, d.TraceFile)
	v.SetDefault(KeyOutputDir, d.OutputDir)
	v.SetDefault(KeyMetricsFile, d.MetricsFile)
	v.SetDefault(KeyLogLevel, d.Log.Level)
	v.SetDefault(KeyLogFormat, d.Log.Format)
	v.SetDefault(KeyLogDir, d.Log.Dir)
}

// Load resolves the configuration. configFile may be empty.
func Load(v *viper.Viper, configFile string) (Config, error) {
	SetDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks bounds. An undersized slack is allowed; see SlackSufficient.
func (c Config) Validate() error {
	if c.MaxLength < 0 {
		return fmt.Errorf("max_length must not be negative: %w", ErrInvalidConfig)
	}
	if c.OverflowSlack < 0 {
		return fmt.Errorf("overflow_slack must not be negative: %w", ErrInvalidConfig)
	}
	if c.TableMax() < 1 {
		return fmt.Errorf("max_length + overflow_slack must be at least 1: %w", ErrInvalidConfig)
	}
	if c.Enumerate && c.MaxLength+1 > enumerate.MaxBits {
		return fmt.Errorf("cannot enumerate vectors longer than %d positions: %w", enumerate.MaxBits, ErrInvalidConfig)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative: %w", ErrInvalidConfig)
	}
	if !c.Enumerate {
		v, err := teacher.Parse(c.Teacher)
		if err != nil {
			return fmt.Errorf("teacher %q: %v: %w", c.Teacher, err, ErrInvalidConfig)
		}
		if v.Len() != c.MaxLength+1 {
			return fmt.Errorf("teacher has %d positions, want max_length+1 = %d: %w", v.Len(), c.MaxLength+1, ErrInvalidConfig)
		}
	}
	switch c.Log.Format {
	case "text", "json", "custom":
	default:
		return fmt.Errorf("unsupported log format %q: %w", c.Log.Format, ErrInvalidConfig)
	}
	return nil
}

// TableMax returns MaxLength + OverflowSlack
func (c Config) TableMax() int {
	return c.MaxLength + c.OverflowSlack
}

// SlackSufficient reports whether OverflowSlack >= MaxLength+1
func (c Config) SlackSufficient() bool {
	return c.LearnerOptions().SlackSufficient()
}

// LearnerOptions converts the configuration into learner options
func (c Config) LearnerOptions() learner.Options {
	return learner.Options{
		MaxLength:     c.MaxLength,
		OverflowSlack: c.OverflowSlack,
		RecordTables:  c.Verbose,
	}
}

// TeacherVector parses the configured single-run teacher
func (c Config) TeacherVector() (teacher.Vector, error) {
	return teacher.Parse(c.Teacher)
}
