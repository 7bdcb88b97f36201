package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	// DefaultServiceName is reported when neither the file nor SERVICE_NAME set one
	DefaultServiceName = "csharp-service"

	VariantBasic    = "basic"
	VariantExtended = "extended"
)

// Config represents the main configuration structure
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Service ServiceConfig `toml:"service"`
	Metrics MetricsConfig `toml:"metrics"`
	Logger  LoggerConfig  `toml:"logger"`
}

// ServerConfig contains server-specific configuration
type ServerConfig struct {
	Port              int           `toml:"port"`
	ReadTimeout       time.Duration `toml:"read_timeout"`
	WriteTimeout      time.Duration `toml:"write_timeout"`
	IdleTimeout       time.Duration `toml:"idle_timeout"`
	ReadHeaderTimeout time.Duration `toml:"read_header_timeout"`
}

// ServiceConfig describes what the service reports about itself and which route set it serves
type ServiceConfig struct {
	Name    string `toml:"name"`
	Variant string `toml:"variant"` // "basic" or "extended"
}

// MetricsConfig contains metrics/monitoring configuration
type MetricsConfig struct {
	Enabled   bool   `toml:"enabled"`
	Namespace string `toml:"namespace"`
	Path      string `toml:"path"`
}

// LoggerConfig contains logging configuration
type LoggerConfig struct {
	Level  string `toml:"level"`  // "debug", "info", "warn", "error"
	Format string `toml:"format"` // "json" or "text"
	Output string `toml:"output"` // "stdout", "stderr", or file path
}

// Load decodes a TOML file over the defaults. It does not validate: callers apply
// environment overrides first and then call Validate.
func Load(configPath string) (*Config, error) {
	config := getDefaultConfig()

	if _, err := os.Stat(configPath); err != nil {
		return nil, fmt.Errorf("config file not found: %s", configPath)
	}

	if _, err := toml.DecodeFile(configPath, config); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", configPath, err)
	}

	return config, nil
}

// LoadOrDefault loads configuration from file, or returns defaults if file doesn't exist
func LoadOrDefault(configPath string) *Config {
	config, err := Load(configPath)
	if err != nil {
		config = getDefaultConfig()
	}
	return config
}

// ApplyEnv overrides file values with SERVICE_NAME and SERVICE_PORT when they are set.
// It runs once at startup; the result is never mutated afterwards.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if getenv == nil {
		getenv = os.Getenv
	}

	if name := getenv("SERVICE_NAME"); name != "" {
		c.Service.Name = name
	}

	if raw := getenv("SERVICE_PORT"); raw != "" {
		port, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("SERVICE_PORT %q is not a number: %w", raw, err)
		}
		c.Server.Port = port
	}

	return nil
}

func getDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:              8080,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       90 * time.Second,
			ReadHeaderTimeout: 10 * time.Second,
		},
		Service: ServiceConfig{
			Name:    DefaultServiceName,
			Variant: VariantExtended,
		},
		Metrics: MetricsConfig{
			Enabled:   false,
			Namespace: "authz_demo",
			Path:      "/metrics",
		},
		Logger: LoggerConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("read_timeout and write_timeout must be positive")
	}

	if c.Server.IdleTimeout <= 0 || c.Server.ReadHeaderTimeout <= 0 {
		return fmt.Errorf("idle_timeout and read_header_timeout must be positive")
	}

	if c.Service.Name == "" {
		return fmt.Errorf("service name cannot be empty")
	}

	if c.Service.Variant != VariantBasic && c.Service.Variant != VariantExtended {
		return fmt.Errorf("invalid service variant: %s (must be basic or extended)", c.Service.Variant)
	}

	if c.Metrics.Enabled {
		if c.Metrics.Path == "" || c.Metrics.Path[0] != '/' {
			return fmt.Errorf("metrics path must start with '/': %q", c.Metrics.Path)
		}
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logger.Level] {
		return fmt.Errorf("invalid logger level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	validFormats := map[string]bool{"json": true, "text": true}
	if !validFormats[c.Logger.Format] {
		return fmt.Errorf("invalid logger format: %s (must be json or text)", c.Logger.Format)
	}

	return nil
}

// GetListenAddr returns the formatted listen address
func (c *Config) GetListenAddr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}
