// Package config loads runtime settings from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds settings shared by the CLI and the server. Flags default
// to these values and override them.
type Config struct {
	Host string `env:"MSV_HOST" envDefault:"localhost"`
	Port int    `env:"MSV_PORT" envDefault:"8080"`

	// Workers bounds concurrent batch scoring; 0 means GOMAXPROCS.
	Workers int `env:"MSV_WORKERS" envDefault:"0"`

	// MaxCells caps M*L for a single scoring request.
	MaxCells int `env:"MSV_MAX_CELLS" envDefault:"4000000"`
	// MaxModelLength caps M on its own; a profile costs Kp*(M+1) cells
	// whatever the sequence length.
	MaxModelLength int `env:"MSV_MAX_MODEL_LENGTH" envDefault:"100000"`
	// MatrixMaxCells caps the size of a matrix returned for inspection.
	MatrixMaxCells int `env:"MSV_MATRIX_MAX_CELLS" envDefault:"10000"`

	ShutdownTimeout time.Duration `env:"MSV_SHUTDOWN_TIMEOUT" envDefault:"30s"`
}

// Load parses Config from the environment and validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port must be in [1, 65535], got %d", c.Port)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must be non-negative, got %d", c.Workers)
	}
	if c.MaxCells < 1 {
		return fmt.Errorf("max cells must be positive, got %d", c.MaxCells)
	}
	if c.MaxModelLength < 1 {
		return fmt.Errorf("max model length must be positive, got %d", c.MaxModelLength)
	}
	if c.MatrixMaxCells < 1 {
		return fmt.Errorf("matrix max cells must be positive, got %d", c.MatrixMaxCells)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown timeout must be positive, got %s", c.ShutdownTimeout)
	}
	return nil
}

// Addr returns host:port.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// CheckModel reports an error when m exceeds MaxModelLength.
func (c *Config) CheckModel(m int) error {
	if m > c.MaxModelLength {
		return fmt.Errorf("model length %d exceeds limit of %d", m, c.MaxModelLength)
	}
	return nil
}

// CheckCells reports an error when an M by L problem exceeds MaxCells.
func (c *Config) CheckCells(m, l int) error {
	if int64(m)*int64(l) > int64(c.MaxCells) {
		return fmt.Errorf("problem size %d x %d exceeds limit of %d cells", m, l, c.MaxCells)
	}
	return nil
}
