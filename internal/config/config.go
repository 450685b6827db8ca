package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the dashboard configuration
type Config struct {
	Port            int
	DataDir         string
	MaxDeposit      float64
	MaxContribution float64
	MaxYears        int
	MinRate         float64
	MaxRate         float64
	MaxBalanceCap   float64
	ReloadSchedule  string
	MetricsPath     string
	OTELEndpoint    string
	OTELServiceName string
	LogLevel        string
	LogFormat       string
}

// LoadConfig loads the configuration from environment variables
func LoadConfig() (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	cfg := &Config{
		Port:            getEnvInt("PORT", 8000),
		DataDir:         getEnvString("DATA_DIR", "data"),
		MaxDeposit:      getEnvFloat("MAX_DEPOSIT", 1e9),
		MaxContribution: getEnvFloat("MAX_CONTRIBUTION", 1e8),
		MaxYears:        getEnvInt("MAX_YEARS", 100),
		MinRate:         getEnvFloat("MIN_RATE", -100),
		MaxRate:         getEnvFloat("MAX_RATE", 200),
		MaxBalanceCap:   getEnvFloat("MAX_BALANCE_CAP", 1e15),
		ReloadSchedule:  os.Getenv("RELOAD_SCHEDULE"),
		MetricsPath:     getEnvString("METRICS_PATH", "/metrics"),
		OTELEndpoint:    getEnvString("OTEL_ENDPOINT", ""),
		OTELServiceName: getEnvString("OTEL_SERVICE_NAME", "finboard"),
		LogLevel:        getEnvString("LOG_LEVEL", "INFO"),
		LogFormat:       getEnvString("LOG_FORMAT", "json"),
	}
	if _, set := os.LookupEnv("RELOAD_SCHEDULE"); !set {
		cfg.ReloadSchedule = "@every 5m"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate reports every invalid setting at once
func (c *Config) Validate() error {
	var problems []string

	if c.Port < 1 || c.Port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", c.Port))
	}
	if strings.TrimSpace(c.DataDir) == "" {
		problems = append(problems, "data directory cannot be empty")
	}
	if c.MaxDeposit < 0 {
		problems = append(problems, fmt.Sprintf("invalid max deposit %g: must not be negative", c.MaxDeposit))
	}
	if c.MaxContribution < 0 {
		problems = append(problems, fmt.Sprintf("invalid max contribution %g: must not be negative", c.MaxContribution))
	}
	if c.MaxYears < 1 {
		problems = append(problems, fmt.Sprintf("invalid max years %d: must be at least 1", c.MaxYears))
	}
	if c.MinRate > c.MaxRate {
		problems = append(problems, fmt.Sprintf("invalid rate range [%g; %g]", c.MinRate, c.MaxRate))
	}
	if c.MaxBalanceCap <= 0 {
		problems = append(problems, fmt.Sprintf("invalid balance cap %g: must be positive", c.MaxBalanceCap))
	}
	if !strings.HasPrefix(c.MetricsPath, "/") {
		problems = append(problems, fmt.Sprintf("invalid metrics path %q: must start with /", c.MetricsPath))
	}
	switch strings.ToLower(c.LogFormat) {
	case "json", "text":
	default:
		problems = append(problems, fmt.Sprintf("invalid log format %q: must be json or text", c.LogFormat))
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}

// Addr returns the listen address for the HTTP server
func (c *Config) Addr() string {
	return ":" + strconv.Itoa(c.Port)
}

// BalanceCap returns the largest end balance a projection may report
func (c *Config) BalanceCap() float64 {
	return c.MaxBalanceCap
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
