package gcbench

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("invalid config")

const (
	DefaultResultsDir    = "benchmark_results"
	DefaultBaselineFile  = "standard_gc.txt"
	DefaultCandidateFile = "greentea_gc.txt"
)

type Config struct {
	ResultsDir    string `yaml:"results_dir"`
	BaselineFile  string `yaml:"baseline_file"`
	CandidateFile string `yaml:"candidate_file"`
	// Chart is the image path for the bar chart. Empty disables it.
	Chart string `yaml:"chart"`
}

func DefaultConfig() *Config {
	return &Config{
		ResultsDir:    DefaultResultsDir,
		BaselineFile:  DefaultBaselineFile,
		CandidateFile: DefaultCandidateFile,
	}
}

// LoadConfig reads a YAML config on top of DefaultConfig. Keys left out of
// the file keep their default.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.ResultsDir == "" {
		return fmt.Errorf("%w: results_dir cannot be empty", ErrInvalidConfig)
	}
	if c.BaselineFile == "" {
		return fmt.Errorf("%w: baseline_file cannot be empty", ErrInvalidConfig)
	}
	if c.CandidateFile == "" {
		return fmt.Errorf("%w: candidate_file cannot be empty", ErrInvalidConfig)
	}
	return nil
}

func (c *Config) BaselinePath() string {
	return filepath.Join(c.ResultsDir, c.BaselineFile)
}

func (c *Config) CandidatePath() string {
	return filepath.Join(c.ResultsDir, c.CandidateFile)
}
