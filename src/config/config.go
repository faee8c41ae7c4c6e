package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DoorOpenDuration  = 3 * time.Second
	TravelDuration    = 2 * time.Second
	StatusInterval    = 10 * time.Second
	MaxEventAge       = 300 * time.Second
	CleaningThreshold = 100_000
)

// Config holds the values that may be overridden from a YAML file.
// Durations are written as Go duration strings, e.g. "5m" or "1.5s".
type Config struct {
	MaxEventAge       time.Duration   `yaml:"maxEventAge"`
	CleaningThreshold int             `yaml:"cleaningThreshold"`
	StatusInterval    time.Duration   `yaml:"statusInterval"`
	StatusWindows     []time.Duration `yaml:"statusWindows"`
}

func Default() Config {
	return Config{
		MaxEventAge:       MaxEventAge,
		CleaningThreshold: CleaningThreshold,
		StatusInterval:    StatusInterval,
		StatusWindows:     []time.Duration{10 * time.Second, time.Minute, MaxEventAge},
	}
}

// Load reads path on top of the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	if err := yaml.NewDecoder(file).Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("decode config %s: %w", path, err)
	}
	if cfg.MaxEventAge <= 0 {
		return cfg, fmt.Errorf("config %s: maxEventAge must be positive, got %v", path, cfg.MaxEventAge)
	}
	if cfg.CleaningThreshold < 0 {
		return cfg, fmt.Errorf("config %s: cleaningThreshold must not be negative, got %d", path, cfg.CleaningThreshold)
	}
	if cfg.StatusInterval <= 0 {
		return cfg, fmt.Errorf("config %s: statusInterval must be positive, got %v", path, cfg.StatusInterval)
	}
	return cfg, nil
}
