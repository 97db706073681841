// Package config provides centralized configuration management for the
// application. It loads configuration from environment variables with
// sensible defaults and validates all settings on startup to fail fast on
// misconfiguration.
package config

import (
	"fmt"
	"strings"
	"time"
)

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Server  ServerConfig
	Dataset DatasetConfig
	Insight InsightConfig
	Report  ReportConfig
	Logging LoggingConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" default:"8080"`

	// ReadTimeout is the maximum duration for reading request body (default: 15s)
	ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`

	// WriteTimeout is the maximum duration for writing response (default: 30s)
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"30s"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown (default: 30s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// RequestTimeout is the middleware timeout for requests (default: 60s)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"60s"`
}

// Addr returns the host:port address to listen on.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// DatasetConfig holds raw dataset settings.
type DatasetConfig struct {
	// Path is the raw employee dataset read on each pipeline run
	// (default: data/raw_hr_data.csv)
	Path string `env:"DATASET_PATH" default:"data/raw_hr_data.csv"`
}

// InsightConfig holds narrative-insight generation settings.
// Insight generation degrades to a placeholder when no API key is set; its
// absence never blocks the pipeline's own outputs.
type InsightConfig struct {
	// APIKey authenticates against the Anthropic API (optional)
	APIKey string `env:"ANTHROPIC_API_KEY"`

	// BaseURL is the API endpoint, overridable for testing
	BaseURL string `env:"INSIGHT_BASE_URL" default:"https://api.anthropic.com"`

	// Model is the model used for analysis
	Model string `env:"INSIGHT_MODEL" default:"claude-3-5-sonnet-20240620"`

	// MaxTokens caps the generated summary length (default: 1200)
	MaxTokens int `env:"INSIGHT_MAX_TOKENS" default:"1200"`

	// Timeout is the maximum duration for one insight request (default: 60s)
	Timeout time.Duration `env:"INSIGHT_TIMEOUT" default:"60s"`
}

// Enabled reports whether insight generation is configured.
func (c *InsightConfig) Enabled() bool {
	return c.APIKey != ""
}

// ReportConfig holds report rendering settings.
type ReportConfig struct {
	// OutputDir is where generated reports are written (default: reports)
	OutputDir string `env:"REPORT_OUTPUT_DIR" default:"reports"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log output format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// Validate checks that the configuration is valid.
// Returns an error describing all validation failures.
func (c *Config) Validate() error {
	var errs []string

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("SERVER_PORT (%d) must be 1-65535", c.Server.Port))
	}
	if c.Server.ReadTimeout < 0 {
		errs = append(errs, "SERVER_READ_TIMEOUT must be non-negative")
	}
	if c.Server.ShutdownTimeout <= 0 {
		errs = append(errs, "SERVER_SHUTDOWN_TIMEOUT must be positive")
	}

	if c.Dataset.Path == "" {
		errs = append(errs, "DATASET_PATH must not be empty")
	}

	if c.Insight.MaxTokens <= 0 {
		errs = append(errs, "INSIGHT_MAX_TOKENS must be positive")
	}
	if c.Insight.Timeout <= 0 {
		errs = append(errs, "INSIGHT_TIMEOUT must be positive")
	}
	if c.Insight.BaseURL == "" {
		errs = append(errs, "INSIGHT_BASE_URL must not be empty")
	}

	if c.Report.OutputDir == "" {
		errs = append(errs, "REPORT_OUTPUT_DIR must not be empty")
	}

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Sprintf("LOG_LEVEL (%q) must be debug, info, warn, or error", c.Logging.Level))
	}
	switch strings.ToLower(c.Logging.Format) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Sprintf("LOG_FORMAT (%q) must be text or json", c.Logging.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}
