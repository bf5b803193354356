package commands

import (
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/erraggy/apidiff/apierrors"
	"github.com/erraggy/apidiff/report"
)

// EnvPrefix prefixes every environment variable read by the CLI.
// Nested keys join with underscores: diff.param_identity is read from
// APIDIFF_DIFF_PARAM_IDENTITY.
const EnvPrefix = "APIDIFF"

// Config is the CLI configuration. Values come from, in increasing order of
// precedence: built-in defaults, the --config file, APIDIFF_* environment
// variables, then command-line flags.
type Config struct {
	Diff DiffConfig `mapstructure:"diff"`
	Log  LogConfig  `mapstructure:"log"`
}

// DiffConfig holds the comparison and report defaults.
type DiffConfig struct {
	Methods          []string `mapstructure:"methods"`
	CompareSchemas   bool     `mapstructure:"compare_schemas"`
	CompareTags      bool     `mapstructure:"compare_tags"`
	CompareServers   bool     `mapstructure:"compare_servers"`
	CompareResponses bool     `mapstructure:"compare_responses"`
	ParamIdentity    string   `mapstructure:"param_identity"`
	Workers          int      `mapstructure:"workers"`
	Format           string   `mapstructure:"format"`
	Emoji            bool     `mapstructure:"emoji"`
}

// LogConfig controls diagnostic logging. Logs go to stderr unless File is
// set, in which case they are written as JSON to a rotated file.
type LogConfig struct {
	Level      string `mapstructure:"level"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("diff.methods", []string{"get", "post", "put", "delete", "patch"})
	v.SetDefault("diff.compare_schemas", true)
	v.SetDefault("diff.compare_tags", true)
	v.SetDefault("diff.compare_servers", true)
	v.SetDefault("diff.compare_responses", false)
	v.SetDefault("diff.param_identity", "name")
	v.SetDefault("diff.workers", 0)
	v.SetDefault("diff.format", report.FormatText)
	v.SetDefault("diff.emoji", false)

	v.SetDefault("log.level", "warn")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age_days", 28)
}

// LoadConfig builds the configuration from defaults, the optional YAML
// file at path and the environment.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, &apierrors.ConfigError{Option: "config", Value: path, Message: "reading config file", Cause: err}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, &apierrors.ConfigError{Option: "config", Message: "decoding configuration", Cause: err}
	}
	if cfg.Diff.Workers < 0 {
		return nil, &apierrors.ConfigError{Option: "diff.workers", Value: cfg.Diff.Workers, Message: "must not be negative"}
	}
	return &cfg, nil
}

// ParseLogLevel maps a level name to a slog level.
func ParseLogLevel(level string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return 0, &apierrors.ConfigError{Option: "log-level", Value: level, Message: "must be debug, info, warn, or error"}
	}
	return l, nil
}

// NewLogger builds the CLI logger. The returned closer releases the log
// file and must be called when the command finishes.
func NewLogger(cfg LogConfig, stderr io.Writer) (*slog.Logger, io.Closer, error) {
	level, err := ParseLogLevel(cfg.Level)
	if err != nil {
		return nil, nil, err
	}
	opts := &slog.HandlerOptions{Level: level}

	if cfg.File == "" {
		return slog.New(slog.NewTextHandler(stderr, opts)), nopCloser{}, nil
	}
	if err := RejectSymlinkOutput(cfg.File); err != nil {
		return nil, nil, err
	}
	rotator := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
	}
	return slog.New(slog.NewJSONHandler(rotator, opts)), rotator, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
