package config

import (
	"fmt"
	"os"
	"runtime"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/tsawler/polarity"
)

// Config is the root configuration.
type Config struct {
	Lexicon  LexiconConfig  `yaml:"lexicon"`
	Scorer   ScorerConfig   `yaml:"scorer"`
	Database DatabaseConfig `yaml:"database"`
	Annotate AnnotateConfig `yaml:"annotate"`
	Log      LogConfig      `yaml:"log"`
}

// LexiconConfig locates the keyword lexicon.
type LexiconConfig struct {
	Path string `yaml:"path"`
}

// ScorerConfig configures the keyword scorer.
type ScorerConfig struct {
	Variant  string `yaml:"variant"`  // "canonical" or "legacy"
	Splitter string `yaml:"splitter"` // "punkt" or "none"
}

// DatabaseConfig configures SQLite export.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// AnnotateConfig configures batch annotation.
type AnnotateConfig struct {
	Workers        int      `yaml:"workers"`
	EmptyAsNull    bool     `yaml:"empty_as_null"`   // store NULL instead of 0 for texts with nothing to score
	VaderLanguages []string `yaml:"vader_languages"` // languages scored by VADER instead of the lexicon
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Lexicon: LexiconConfig{Path: "./keywords.json"},
		Scorer: ScorerConfig{
			Variant:  "canonical",
			Splitter: "punkt",
		},
		Database: DatabaseConfig{Path: "./tweets.db"},
		Annotate: AnnotateConfig{
			Workers:        runtime.NumCPU(),
			VaderLanguages: []string{"en"},
		},
		Log: LogConfig{Level: "info", Format: "text"},
	}
}

// Load reads configuration from a YAML file and applies env var overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that cannot be defaulted.
func (c *Config) Validate() error {
	if _, err := c.Variant(); err != nil {
		return fmt.Errorf("scorer.variant: %w", err)
	}
	switch c.Scorer.Splitter {
	case "", "punkt", "none":
	default:
		return fmt.Errorf("scorer.splitter: unknown splitter %q", c.Scorer.Splitter)
	}
	if c.Annotate.Workers < 1 {
		return fmt.Errorf("annotate.workers must be at least 1, got %d", c.Annotate.Workers)
	}
	return nil
}

// Variant returns the configured scorer variant.
func (c *Config) Variant() (polarity.Variant, error) {
	return polarity.ParseVariant(c.Scorer.Variant)
}

// applyEnvOverrides overrides config values with environment variables.
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("POLARITY_LEXICON"); v != "" {
		cfg.Lexicon.Path = v
	}
	if v := os.Getenv("POLARITY_DB_PATH"); v != "" {
		cfg.Database.Path = v
	}
	if v := os.Getenv("POLARITY_VARIANT"); v != "" {
		cfg.Scorer.Variant = v
	}
	if v := os.Getenv("POLARITY_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("POLARITY_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("POLARITY_WORKERS: %w", err)
		}
		cfg.Annotate.Workers = n
	}
	return nil
}
