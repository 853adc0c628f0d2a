package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	// Create a temporary config file
	content := `server:
  host: "127.0.0.1"
  port: 5555
  gracePeriod: 5
session:
  maxWorkers: 8
  requestsPerSecond: 100
  burst: 20
dictionary:
  path: "words.csv"
  showProgress: false`

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create test config file: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Address() != "127.0.0.1:5555" {
		t.Errorf("Expected Address = 127.0.0.1:5555, got %s", cfg.Address())
	}
	if cfg.Server.GracePeriod != 5 {
		t.Errorf("Expected GracePeriod = 5, got %d", cfg.Server.GracePeriod)
	}
	if cfg.Session.MaxWorkers != 8 {
		t.Errorf("Expected MaxWorkers = 8, got %d", cfg.Session.MaxWorkers)
	}
	if cfg.Session.RequestsPerSecond != 100 || cfg.Session.Burst != 20 {
		t.Errorf("Expected rate 100/20, got %v/%d", cfg.Session.RequestsPerSecond, cfg.Session.Burst)
	}
	if cfg.Dictionary.Path != "words.csv" {
		t.Errorf("Expected Path = words.csv, got %s", cfg.Dictionary.Path)
	}
	if cfg.Dictionary.ShowProgress {
		t.Error("Expected ShowProgress = false")
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != 4444 {
		t.Errorf("Expected Port = 4444, got %d", cfg.Server.Port)
	}
	if cfg.Session.MaxWorkers != 16 {
		t.Errorf("Expected MaxWorkers = 16, got %d", cfg.Session.MaxWorkers)
	}
	if !cfg.Dictionary.ShowProgress {
		t.Error("Expected ShowProgress = true")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server: [unclosed"), 0644); err != nil {
		t.Fatalf("Failed to create test config file: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load() error = nil, want decode error")
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		cfg := &Config{}
		setDefaults(cfg)
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid config", func(*Config) {}, false},
		{"port out of range", func(c *Config) { c.Server.Port = 70000 }, true},
		{"negative grace period", func(c *Config) { c.Server.GracePeriod = -1 }, true},
		{"negative workers", func(c *Config) { c.Session.MaxWorkers = -1 }, true},
		{"negative rate", func(c *Config) { c.Session.RequestsPerSecond = -1 }, true},
		{"missing dictionary path", func(c *Config) { c.Dictionary.Path = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
