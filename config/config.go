package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for termex.
type Config struct {
	Analysis AnalysisConfig `yaml:"analysis"`
	Corpus   CorpusConfig   `yaml:"corpus"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// AnalysisConfig selects the extraction policy.
type AnalysisConfig struct {
	Analyzer       string `yaml:"analyzer"` // "unigram" or "ngram"
	Order          int    `yaml:"order"`
	POSNERFilter   bool   `yaml:"posner_filter"`
	StopwordFilter bool   `yaml:"stopword_filter"`
}

// CorpusConfig describes which files make up the corpus and how they are tokenized.
type CorpusConfig struct {
	Includes []string `yaml:"includes"`
	Excludes []string `yaml:"excludes"`
	Format   string   `yaml:"format"` // "text" or "tagged"
	Workers  int      `yaml:"workers"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Analysis: AnalysisConfig{
			Analyzer:       "unigram",
			Order:          1,
			POSNERFilter:   false,
			StopwordFilter: false,
		},
		Corpus: CorpusConfig{
			Includes: []string{"**/*.txt", "**/*.md", "**/*.tag"},
			Excludes: []string{"**/.git/**", "**/.termex/**", "**/node_modules/**", "**/vendor/**"},
			Format:   "text",
			Workers:  4,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load loads configuration from a YAML file, then applies environment
// overrides. A .env file next to the config file is read into the
// environment first; variables already set take precedence.
func Load(path string) (*Config, error) {
	_ = godotenv.Load(filepath.Join(filepath.Dir(path), ".env"))
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, applyEnv(cfg) // Return defaults if no config file
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, applyEnv(cfg)
}

// LoadFromDir loads configuration from a directory (looks for termex.yaml).
// A .env file in the directory is read into the environment first.
func LoadFromDir(dir string) (*Config, error) {
	_ = godotenv.Load(filepath.Join(dir, ".env"))

	path := filepath.Join(dir, "termex.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	path = filepath.Join(dir, ".termex", "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	cfg := DefaultConfig()
	return cfg, applyEnv(cfg)
}

// applyEnv overrides selected settings from TERMEX_* variables.
func applyEnv(cfg *Config) error {
	if v := os.Getenv("TERMEX_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("TERMEX_ANALYZER"); v != "" {
		cfg.Analysis.Analyzer = v
	}
	if v := os.Getenv("TERMEX_ORDER"); v != "" {
		order, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid TERMEX_ORDER %q: %w", v, err)
		}
		cfg.Analysis.Order = order
	}
	return nil
}

// Validate reports configuration errors that would make analysis fail.
func (c *Config) Validate() error {
	switch c.Analysis.Analyzer {
	case "unigram":
	case "ngram":
		if c.Analysis.Order < 1 {
			return fmt.Errorf("analysis.order must be at least 1, got %d", c.Analysis.Order)
		}
	default:
		return fmt.Errorf("unknown analysis.analyzer %q", c.Analysis.Analyzer)
	}
	switch c.Corpus.Format {
	case "text", "tagged":
	default:
		return fmt.Errorf("unknown corpus.format %q", c.Corpus.Format)
	}
	if c.Analysis.POSNERFilter && c.Corpus.Format != "tagged" {
		return fmt.Errorf("analysis.posner_filter requires corpus.format=tagged")
	}
	return nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// IndexDBPath returns the path to the analysis database.
func IndexDBPath(dir string) string {
	return filepath.Join(dir, ".termex", "index.db")
}

// EnsureDataDir ensures the .termex directory exists.
func EnsureDataDir(dir string) error {
	return os.MkdirAll(filepath.Join(dir, ".termex"), 0755)
}
