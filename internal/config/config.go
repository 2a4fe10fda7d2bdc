// Package config loads pipeline settings from defaults, an optional YAML file
// and SCOUTELT_* environment variables, in that order of precedence.
package config

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// EnvPrefix is the prefix of every environment override.
const EnvPrefix = "SCOUTELT"

// Config is the complete pipeline configuration.
type Config struct {
	Paths      PathsConfig      `yaml:"paths" envconfig:"PATHS"`
	Log        LogConfig        `yaml:"log" envconfig:"LOG"`
	Validation ValidationConfig `yaml:"validation" envconfig:"VALIDATION"`
	Analysis   AnalysisConfig   `yaml:"analysis" envconfig:"ANALYSIS"`
}

// PathsConfig holds every input and output location of a run.
type PathsConfig struct {
	RawDir      string `yaml:"raw_dir" envconfig:"RAW_DIR"`
	LandingDir  string `yaml:"landing_dir" envconfig:"LANDING_DIR"`
	DBPath      string `yaml:"db_path" envconfig:"DB_PATH"`
	LogDir      string `yaml:"log_dir" envconfig:"LOG_DIR"`
	ReportDir   string `yaml:"report_dir" envconfig:"REPORT_DIR"`
	AnalysisDir string `yaml:"analysis_dir" envconfig:"ANALYSIS_DIR"`
}

type LogConfig struct {
	Level  string `yaml:"level" envconfig:"LEVEL"`
	Format string `yaml:"format" envconfig:"FORMAT"`
}

// ValidationConfig holds league rules and the gating policy.
type ValidationConfig struct {
	MaxYellowCards int  `yaml:"max_yellow_cards" envconfig:"MAX_YELLOW_CARDS"`
	MaxRedCards    int  `yaml:"max_red_cards" envconfig:"MAX_RED_CARDS"`
	Strict         bool `yaml:"strict" envconfig:"STRICT"`
}

type AnalysisConfig struct {
	TopN int `yaml:"top_n" envconfig:"TOP_N"`
}

// Default returns the built-in configuration rooted at data/.
func Default() Config {
	return Config{
		Paths: PathsConfig{
			RawDir:      "data/raw",
			LandingDir:  "data/landing",
			DBPath:      "data/scouting.db",
			LogDir:      "logs",
			ReportDir:   "outputs/reports",
			AnalysisDir: "outputs/analysis",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		Validation: ValidationConfig{
			MaxYellowCards: 2,
			MaxRedCards:    1,
		},
		Analysis: AnalysisConfig{
			TopN: 3,
		},
	}
}

// Load applies the YAML file at path (skipped when path is empty or missing)
// and then environment overrides on top of Default.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
			}
		case !os.IsNotExist(err):
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("load config from env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// Validate checks the configuration for values the pipeline cannot run with.
func (c Config) Validate() error {
	if c.Paths.LandingDir == "" {
		return fmt.Errorf("paths.landing_dir must be set")
	}
	if c.Paths.DBPath == "" {
		return fmt.Errorf("paths.db_path must be set")
	}
	if c.Validation.MaxYellowCards < 0 || c.Validation.MaxRedCards < 0 {
		return fmt.Errorf("card limits must be non-negative")
	}
	if c.Analysis.TopN < 1 {
		return fmt.Errorf("analysis.top_n must be at least 1, got %d", c.Analysis.TopN)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("log.format must be json or console, got %q", c.Log.Format)
	}
	return nil
}
