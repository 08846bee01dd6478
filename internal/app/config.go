package app

import (
	"errors"
	"fmt"
	"time"
)

// Config holds all the necessary configuration for an App instance to run.
// Search settings left at zero fall back to the problem's search block and
// then to built-in defaults.
type Config struct {
	ProblemPath string // hcl or yaml files

	LogFormat       string
	LogLevel        string
	HealthcheckPort int

	Workers      int
	MaxSolutions int
	MaxProcessed int
	Timeout      time.Duration

	ProgressInterval time.Duration
	ProgressURL      string

	TopN     int
	Markdown bool
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.ProblemPath == "" {
		return nil, errors.New("ProblemPath is a required configuration field and cannot be empty")
	}
	if cfg.Workers < 0 || cfg.MaxSolutions < 0 || cfg.MaxProcessed < 0 || cfg.TopN < 0 {
		return nil, errors.New("workers, max-solutions, max-processed and top cannot be negative")
	}
	if cfg.Timeout < 0 || cfg.ProgressInterval < 0 {
		return nil, fmt.Errorf("timeout and progress-interval cannot be negative")
	}
	return &cfg, nil
}
