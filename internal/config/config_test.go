package config

import (
	"strings"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "DATA_DIR", "MAX_YEARS", "MIN_RATE", "MAX_RATE", "METRICS_PATH", "LOG_FORMAT"} {
		t.Setenv(key, "")
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Port != 8000 {
		t.Errorf("expected port 8000, got %d", cfg.Port)
	}
	if cfg.DataDir != "data" {
		t.Errorf("expected data dir %q, got %q", "data", cfg.DataDir)
	}
	if cfg.MaxYears != 100 {
		t.Errorf("expected max years 100, got %d", cfg.MaxYears)
	}
	if cfg.Addr() != ":8000" {
		t.Errorf("unexpected addr %q", cfg.Addr())
	}
	if cfg.BalanceCap() != 1e15 {
		t.Errorf("unexpected balance cap %g", cfg.BalanceCap())
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DATA_DIR", "/srv/listings")
	t.Setenv("MAX_YEARS", "50")
	t.Setenv("MIN_RATE", "-10")
	t.Setenv("RELOAD_SCHEDULE", "")
	t.Setenv("LOG_FORMAT", "text")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Port != 9090 || cfg.DataDir != "/srv/listings" || cfg.MaxYears != 50 || cfg.MinRate != -10 {
		t.Errorf("env not applied: %+v", cfg)
	}
	if cfg.ReloadSchedule != "" {
		t.Errorf("explicitly empty schedule should disable reloads, got %q", cfg.ReloadSchedule)
	}
}

func TestLoadConfigIgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("PORT", "eighty")
	t.Setenv("MAX_RATE", "lots")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Port != 8000 || cfg.MaxRate != 200 {
		t.Errorf("expected defaults for malformed values, got port=%d maxRate=%g", cfg.Port, cfg.MaxRate)
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Port:          8000,
			DataDir:       "data",
			MaxYears:      100,
			MinRate:       -100,
			MaxRate:       200,
			MaxBalanceCap: 1e15,
			MetricsPath:   "/metrics",
			LogFormat:     "json",
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "port out of range", mutate: func(c *Config) { c.Port = 70000 }, wantErr: "invalid port"},
		{name: "empty data dir", mutate: func(c *Config) { c.DataDir = " " }, wantErr: "data directory"},
		{name: "no years", mutate: func(c *Config) { c.MaxYears = 0 }, wantErr: "max years"},
		{name: "inverted rates", mutate: func(c *Config) { c.MinRate = 5; c.MaxRate = 1 }, wantErr: "rate range"},
		{name: "metrics path", mutate: func(c *Config) { c.MetricsPath = "metrics" }, wantErr: "metrics path"},
		{name: "log format", mutate: func(c *Config) { c.LogFormat = "xml" }, wantErr: "log format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}

	cfg := valid()
	cfg.Port = 0
	cfg.MaxYears = 0
	err := cfg.Validate()
	if err == nil || strings.Count(err.Error(), "\n- ") != 2 {
		t.Errorf("expected both problems reported, got %v", err)
	}
}
