package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/zircuit-labs/authz-demo/cmd/clock"
	"github.com/zircuit-labs/authz-demo/cmd/config"
	"github.com/zircuit-labs/authz-demo/cmd/handlers"
	"github.com/zircuit-labs/authz-demo/cmd/identity"
	"github.com/zircuit-labs/authz-demo/cmd/logger"
	"github.com/zircuit-labs/authz-demo/cmd/metrics"
	"github.com/zircuit-labs/authz-demo/cmd/routes"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const configEnv = "AUTHZ_DEMO_CONFIG"

func main() {
	// Initialize a basic logger for early startup logging
	log := logger.NewFromConfigStruct("info", "json", "stdout")

	configPath, ok := parseArgs(os.Args[1:])
	if !ok {
		printUsage()
		return
	}

	cfg, err := loadConfig(configPath, log)
	if err != nil {
		log.LogError("config loading", err, "path", configPath)
		os.Exit(1)
	}

	// Reinitialize logger with configuration settings
	loggerConfig := &logger.Config{
		Level:  logger.LogLevel(cfg.Logger.Level),
		Format: cfg.Logger.Format,
		Output: cfg.Logger.Output,
	}
	logger.Init(loggerConfig)
	log = logger.Default()

	variant, err := routes.ParseVariant(cfg.Service.Variant)
	if err != nil {
		log.LogError("route variant", err)
		os.Exit(1)
	}

	metricsClient, err := metrics.NewClient(&cfg.Metrics)
	if err != nil {
		log.LogError("metrics client creation", err)
		os.Exit(1)
	}
	defer metricsClient.Close()

	service := identity.Service(cfg.Service.Name)
	opts := routes.Options{
		Variant:   variant,
		Responder: handlers.NewResponder(service, clock.NewSystem()),
		Logger:    log,
		Metrics:   metricsClient,
	}
	if cfg.Metrics.Enabled {
		opts.MetricsPath = cfg.Metrics.Path
		opts.MetricsHandler = promhttp.Handler()
	}

	table := routes.Table(variant)
	_ = metricsClient.Gauge("routes_mounted", float64(len(table)), nil, 1)

	log.LogStartup(cfg.Server.Port, configPath, service.String(), string(variant), len(table))
	for _, rt := range table {
		log.Debug("route mounted", "name", rt.Name, "method", rt.Method, "pattern", rt.Pattern)
	}

	router, err := routes.NewRouter(opts)
	if err != nil {
		log.LogError("router setup", err, "metrics_path", opts.MetricsPath)
		os.Exit(1)
	}

	server := &http.Server{
		Addr:              cfg.GetListenAddr(),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
	}

	log.Info("starting HTTP server", "port", cfg.Server.Port)

	if err := server.ListenAndServe(); err != nil {
		log.LogError("HTTP server startup", err, "port", cfg.Server.Port)
		os.Exit(1)
	}
}

// parseArgs resolves the config path from flags, a positional argument, or the environment.
// It reports false when usage was requested.
func parseArgs(args []string) (string, bool) {
	configPath := "config.toml"

	if envConfigPath := os.Getenv(configEnv); envConfigPath != "" {
		configPath = envConfigPath
	}

	if len(args) > 0 {
		switch args[0] {
		case "--config", "-c":
			if len(args) > 1 {
				configPath = args[1]
			}
		case "--help", "-h":
			return "", false
		default:
			configPath = args[0]
		}
	}

	return configPath, true
}

// loadConfig reads the TOML file when it exists, falls back to defaults otherwise,
// then applies SERVICE_NAME and SERVICE_PORT.
func loadConfig(configPath string, log *logger.Logger) (*config.Config, error) {
	var cfg *config.Config

	if _, err := os.Stat(configPath); err == nil {
		cfg, err = config.Load(configPath)
		if err != nil {
			return nil, err
		}
	} else {
		log.Info("config file not found, using default configuration", "path", configPath)
		cfg = config.LoadOrDefault("")
	}

	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	log.LogConfig(configPath, os.Getenv(configEnv) != "", cfg.Service.Name)
	return cfg, nil
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  authz-demo [options]")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --config, -c <toml_file>  Load TOML config file (default: config.toml)")
	fmt.Println("  --help, -h                Show this help")
	fmt.Println()
	fmt.Println("Environment Variables:")
	fmt.Println("  AUTHZ_DEMO_CONFIG  Path to config.toml file (default: config.toml)")
	fmt.Println("  SERVICE_NAME       Name reported in responses (default: csharp-service)")
	fmt.Println("  SERVICE_PORT       Listen port, overrides [server] port")
	fmt.Println()
	fmt.Println("Default behavior: Load config.toml from current directory, or run with defaults if absent")
}
