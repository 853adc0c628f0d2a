// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"gopkg.in/yaml.v2"
)

// DefaultPath is read when no -config flag is given.
const DefaultPath = "config.yaml"

type Config struct {
	Server struct {
		Host        string `yaml:"host"`
		Port        int    `yaml:"port"`
		GracePeriod int    `yaml:"gracePeriod"` // seconds
	} `yaml:"server"`

	Session struct {
		MaxWorkers        int     `yaml:"maxWorkers"`
		RequestsPerSecond float64 `yaml:"requestsPerSecond"`
		Burst             int     `yaml:"burst"`
	} `yaml:"session"`

	Dictionary struct {
		Path         string `yaml:"path"`
		ShowProgress bool   `yaml:"showProgress"`
	} `yaml:"dictionary"`
}

// Load reads the YAML file at path. A missing file is not an error: the
// defaults are used instead.
func Load(path string) (*Config, error) {
	var cfg Config
	cfg.Dictionary.ShowProgress = true

	f, err := os.Open(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// defaults only
	case err != nil:
		return nil, fmt.Errorf("error opening config file: %w", err)
	default:
		defer f.Close()
		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(&cfg); err != nil && err != io.EOF {
			return nil, fmt.Errorf("error decoding config: %w", err)
		}
	}

	// Set default values
	setDefaults(&cfg)

	return &cfg, nil
}

// setDefaults sets default values for configuration
func setDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 4444
	}
	if cfg.Server.GracePeriod == 0 {
		cfg.Server.GracePeriod = 3
	}
	if cfg.Session.MaxWorkers == 0 {
		cfg.Session.MaxWorkers = 16
	}
	if cfg.Session.RequestsPerSecond > 0 && cfg.Session.Burst == 0 {
		cfg.Session.Burst = int(cfg.Session.RequestsPerSecond) + 1
	}
	if cfg.Dictionary.Path == "" {
		cfg.Dictionary.Path = "dictionary.csv"
	}
}

// Address is the listen address built from host and port.
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Server.Port)
	}
	if c.Server.GracePeriod < 0 {
		return fmt.Errorf("gracePeriod must not be negative")
	}
	if c.Session.MaxWorkers < 0 {
		return fmt.Errorf("maxWorkers must not be negative")
	}
	if c.Session.RequestsPerSecond < 0 {
		return fmt.Errorf("requestsPerSecond must not be negative")
	}
	if c.Dictionary.Path == "" {
		return fmt.Errorf("dictionary path is required")
	}
	return nil
}
