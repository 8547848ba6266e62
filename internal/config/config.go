// Package config loads primer's settings from defaults, primer.yaml,
// PRIMER_* environment variables and command-line flags.
package config

import (
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/YuminosukeSato/primer/charts"
	"github.com/YuminosukeSato/primer/core/parallel"
	"github.com/YuminosukeSato/primer/pkg/errors"
	"github.com/YuminosukeSato/primer/pkg/log"
)

// File names searched in the working directory when no --config is given.
const (
	ConfigFileName    = "primer.yaml"
	ConfigFileNameAlt = "primer.yml"

	// EnvPrefix is stripped from environment variables: PRIMER_LOG_LEVEL -> log_level.
	EnvPrefix = "PRIMER_"
)

// Defaults.
const (
	DefaultLogLevel   = "info"
	DefaultLogFormat  = log.FormatConsole
	DefaultOutputDir  = "out"
	DefaultPlotFormat = charts.FormatPNG
	DefaultHeadRows   = 5
	DefaultBins       = 10
)

// Config holds every setting the CLI and the walkthrough read.
type Config struct {
	LogLevel   string `koanf:"log_level"`
	LogFormat  string `koanf:"log_format"`
	OutputDir  string `koanf:"output_dir"`
	PlotFormat string `koanf:"plot_format"`
	DataFile   string `koanf:"data_file"`
	Scaled     bool   `koanf:"scaled"`
	HeadRows   int    `koanf:"head_rows"`
	Bins       int    `koanf:"bins"`

	// ParallelThreshold is the element count above which row and column
	// loops are split across goroutines. 0 always splits.
	ParallelThreshold int `koanf:"parallel_threshold"`

	// ConfigFile is the file that was read, empty when none was found.
	ConfigFile string `koanf:"-"`
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		LogLevel:   DefaultLogLevel,
		LogFormat:  DefaultLogFormat,
		OutputDir:  DefaultOutputDir,
		PlotFormat: DefaultPlotFormat,
		Scaled:     true,
		HeadRows:   DefaultHeadRows,
		Bins:       DefaultBins,

		ParallelThreshold: parallel.DefaultThreshold,
	}
}

func defaultsMap() map[string]interface{} {
	d := Default()
	return map[string]interface{}{
		"log_level":   d.LogLevel,
		"log_format":  d.LogFormat,
		"output_dir":  d.OutputDir,
		"plot_format": d.PlotFormat,
		"data_file":   d.DataFile,
		"scaled":      d.Scaled,
		"head_rows":   d.HeadRows,
		"bins":        d.Bins,

		"parallel_threshold": d.ParallelThreshold,
	}
}

// findConfigFile picks the explicit path, then primer.yaml, then primer.yml.
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range []string{ConfigFileName, ConfigFileNameAlt} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// Load builds a Config.
// Precedence (highest to lowest): flags > env vars > config file > defaults.
// Only flags the user actually set take part; flag names are mapped from
// kebab-case to the snake_case keys.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(confmap.Provider(defaultsMap(), "."), nil); err != nil {
		return nil, errors.Wrap(err, "failed to load defaults")
	}

	// 2. Config file
	used := findConfigFile(cfgFile)
	if used != "" {
		if err := k.Load(file.Provider(used), yaml.Parser()); err != nil {
			return nil, errors.Wrapf(err, "error reading config file %s", used)
		}
	}

	// 3. Environment variables
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, errors.Wrap(err, "failed to load env vars")
	}

	// 4. Flags
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed || f.Name == "config" {
				return "", nil
			}
			key := strings.ReplaceAll(f.Name, "-", "_")
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, errors.Wrap(err, "failed to load flags")
		}
	}

	// 5. Unmarshal
	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, errors.Wrap(err, "unable to decode config")
	}
	cfg.ConfigFile = used

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the walkthrough cannot run with.
func (c *Config) Validate() error {
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	switch c.LogFormat {
	case log.FormatConsole, log.FormatJSON:
	default:
		return errors.NewValidationError("log_format", "must be console or json", c.LogFormat)
	}
	if err := charts.ValidateFormat(c.PlotFormat); err != nil {
		return err
	}
	if c.HeadRows <= 0 {
		return errors.NewValidationError("head_rows", "must be positive", c.HeadRows)
	}
	if c.Bins <= 0 {
		return errors.NewValidationError("bins", "must be positive", c.Bins)
	}
	if c.ParallelThreshold < 0 {
		return errors.NewValidationError("parallel_threshold", "must not be negative", c.ParallelThreshold)
	}
	if c.OutputDir == "" {
		return errors.NewValidationError("output_dir", "must not be empty", c.OutputDir)
	}
	return nil
}
