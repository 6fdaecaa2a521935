// Package config loads the YAML settings file the CLI reads before
// starting a solve or batch run.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the tunables exposed to the CLI. Load starts from Default
// and overrides only the fields the file sets, so an empty config file is
// not an error; a path that cannot be read is.
type Config struct {
	SortByLength    bool `yaml:"sort_by_length"`
	StepBudget      int  `yaml:"step_budget"`
	CheckpointEvery int  `yaml:"checkpoint_every"`
	Workers         int  `yaml:"workers"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		SortByLength:    true,
		StepBudget:      0,
		CheckpointEvery: 10000,
		Workers:         1,
	}
}

// Load reads and parses a YAML config file at path. A path of "" returns
// Default without touching the filesystem.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}
