package config

import (
	"os"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	tmpFile, err := os.CreateTemp(t.TempDir(), "test-config-*.toml")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := tmpFile.WriteString(content); err != nil {
		t.Fatal(err)
	}
	tmpFile.Close()

	return tmpFile.Name()
}

func TestConfigLoad(t *testing.T) {
	configContent := `
[server]
port = 9090
read_timeout = "15s"
write_timeout = "20s"
idle_timeout = "60s"
read_header_timeout = "5s"

[service]
name = "orders-service"
variant = "basic"

[metrics]
enabled = true
namespace = "test_demo"
path = "/internal/metrics"

[logger]
level = "debug"
format = "text"
output = "stderr"
`

	cfg, err := Load(writeConfig(t, configContent))
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Expected port=9090, got %d", cfg.Server.Port)
	}

	if cfg.Server.ReadTimeout != 15*time.Second {
		t.Errorf("Expected read_timeout=15s, got %v", cfg.Server.ReadTimeout)
	}

	if cfg.Server.WriteTimeout != 20*time.Second {
		t.Errorf("Expected write_timeout=20s, got %v", cfg.Server.WriteTimeout)
	}

	if cfg.Server.IdleTimeout != 60*time.Second {
		t.Errorf("Expected idle_timeout=60s, got %v", cfg.Server.IdleTimeout)
	}

	if cfg.Server.ReadHeaderTimeout != 5*time.Second {
		t.Errorf("Expected read_header_timeout=5s, got %v", cfg.Server.ReadHeaderTimeout)
	}

	if cfg.Service.Name != "orders-service" {
		t.Errorf("Expected service name=orders-service, got %s", cfg.Service.Name)
	}

	if cfg.Service.Variant != VariantBasic {
		t.Errorf("Expected variant=basic, got %s", cfg.Service.Variant)
	}

	if !cfg.Metrics.Enabled {
		t.Error("Expected metrics to be enabled")
	}

	if cfg.Metrics.Namespace != "test_demo" {
		t.Errorf("Expected namespace=test_demo, got %s", cfg.Metrics.Namespace)
	}

	if cfg.Metrics.Path != "/internal/metrics" {
		t.Errorf("Expected metrics path=/internal/metrics, got %s", cfg.Metrics.Path)
	}

	if cfg.Logger.Level != "debug" {
		t.Errorf("Expected log level=debug, got %s", cfg.Logger.Level)
	}

	if cfg.Logger.Format != "text" {
		t.Errorf("Expected log format=text, got %s", cfg.Logger.Format)
	}

	if cfg.Logger.Output != "stderr" {
		t.Errorf("Expected log output=stderr, got %s", cfg.Logger.Output)
	}
}

func TestConfigLoadPartialKeepsDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "[service]\nname = \"partial\"\n"))
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Service.Name != "partial" {
		t.Errorf("Expected service name=partial, got %s", cfg.Service.Name)
	}

	if cfg.Service.Variant != VariantExtended {
		t.Errorf("Expected default variant=extended, got %s", cfg.Service.Variant)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Expected default port=8080, got %d", cfg.Server.Port)
	}
}

func TestConfigLoadErrors(t *testing.T) {
	if _, err := Load("nonexistent.toml"); err == nil {
		t.Error("Expected error for missing config file")
	}

	if _, err := Load(writeConfig(t, "[server\nport = ")); err == nil {
		t.Error("Expected error for malformed TOML")
	}
}

func TestConfigLoadDefersValidation(t *testing.T) {
	cfg, err := Load(writeConfig(t, "[server]\nport = 0\n\n[service]\nname = \"\"\nvariant = \"full\"\n"))
	if err != nil {
		t.Fatalf("Load should only decode, got: %v", err)
	}

	if err := cfg.Validate(); err == nil {
		t.Error("Expected validation error for port 0, empty name and unknown variant")
	}

	// Environment overrides can repair what the file left invalid
	env := map[string]string{"SERVICE_NAME": "go-service", "SERVICE_PORT": "8081"}
	if err := cfg.ApplyEnv(func(k string) string { return env[k] }); err != nil {
		t.Fatalf("ApplyEnv failed: %v", err)
	}
	cfg.Service.Variant = VariantBasic
	if err := cfg.Validate(); err != nil {
		t.Errorf("Expected valid configuration after overrides, got: %v", err)
	}
}

func TestConfigLoadOrDefault(t *testing.T) {
	cfg := LoadOrDefault("nonexistent.toml")

	if cfg.Server.Port != 8080 {
		t.Errorf("Expected default port=8080, got %d", cfg.Server.Port)
	}

	if cfg.Service.Name != DefaultServiceName {
		t.Errorf("Expected default service name=%s, got %s", DefaultServiceName, cfg.Service.Name)
	}

	if cfg.Service.Variant != VariantExtended {
		t.Errorf("Expected default variant=extended, got %s", cfg.Service.Variant)
	}

	if cfg.Metrics.Enabled {
		t.Error("Expected metrics disabled by default")
	}

	if cfg.Metrics.Path != "/metrics" {
		t.Errorf("Expected default metrics path=/metrics, got %s", cfg.Metrics.Path)
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"SERVICE_NAME": "python-service",
		"SERVICE_PORT": "9191",
	}

	cfg := LoadOrDefault("")
	if err := cfg.ApplyEnv(func(k string) string { return env[k] }); err != nil {
		t.Fatalf("ApplyEnv failed: %v", err)
	}

	if cfg.Service.Name != "python-service" {
		t.Errorf("Expected service name=python-service, got %s", cfg.Service.Name)
	}

	if cfg.Server.Port != 9191 {
		t.Errorf("Expected port=9191, got %d", cfg.Server.Port)
	}

	// Empty values leave the configuration untouched
	cfg = LoadOrDefault("")
	if err := cfg.ApplyEnv(func(string) string { return "" }); err != nil {
		t.Fatalf("ApplyEnv failed: %v", err)
	}
	if cfg.Service.Name != DefaultServiceName {
		t.Errorf("Expected service name=%s, got %s", DefaultServiceName, cfg.Service.Name)
	}

	cfg = LoadOrDefault("")
	if err := cfg.ApplyEnv(func(k string) string {
		if k == "SERVICE_PORT" {
			return "eighty"
		}
		return ""
	}); err == nil {
		t.Error("Expected error for non-numeric SERVICE_PORT")
	}
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"invalid port", func(c *Config) { c.Server.Port = -1 }},
		{"port too large", func(c *Config) { c.Server.Port = 70000 }},
		{"zero read timeout", func(c *Config) { c.Server.ReadTimeout = 0 }},
		{"zero idle timeout", func(c *Config) { c.Server.IdleTimeout = 0 }},
		{"empty service name", func(c *Config) { c.Service.Name = "" }},
		{"unknown variant", func(c *Config) { c.Service.Variant = "superset" }},
		{"invalid log level", func(c *Config) { c.Logger.Level = "trace" }},
		{"invalid log format", func(c *Config) { c.Logger.Format = "xml" }},
		{"relative metrics path", func(c *Config) {
			c.Metrics.Enabled = true
			c.Metrics.Path = "metrics"
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := LoadOrDefault("")
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Errorf("Expected validation error for %s", tt.name)
			}
		})
	}

	cfg := LoadOrDefault("")
	if err := cfg.Validate(); err != nil {
		t.Errorf("Valid configuration with defaults should not produce error: %v", err)
	}

	// The metrics path is not checked while metrics are off
	cfg.Metrics.Path = "metrics"
	if err := cfg.Validate(); err != nil {
		t.Errorf("Disabled metrics should not validate path: %v", err)
	}
}

func TestGetListenAddr(t *testing.T) {
	cfg := &Config{
		Server: ServerConfig{
			Port: 8080,
		},
	}

	expected := ":8080"
	if addr := cfg.GetListenAddr(); addr != expected {
		t.Errorf("Expected listen address=%s, got %s", expected, addr)
	}

	cfg.Server.Port = 9090
	expected = ":9090"
	if addr := cfg.GetListenAddr(); addr != expected {
		t.Errorf("Expected listen address=%s, got %s", expected, addr)
	}
}
