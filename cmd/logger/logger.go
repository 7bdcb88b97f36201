package logger

import (
	"io"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with additional functionality
type Logger struct {
	*slog.Logger
}

// LogLevel represents the log level
type LogLevel string

const (
	LevelDebug LogLevel = "debug"
	LevelInfo  LogLevel = "info"
	LevelWarn  LogLevel = "warn"
	LevelError LogLevel = "error"
)

// Config holds logger configuration
type Config struct {
	Level  LogLevel `toml:"level"`
	Format string   `toml:"format"` // "json" or "text"
	Output string   `toml:"output"` // "stdout", "stderr", or file path
}

// NewFromConfigStruct creates a logger from a config struct with string level
func NewFromConfigStruct(level, format, output string) *Logger {
	config := &Config{
		Level:  LogLevel(level),
		Format: format,
		Output: output,
	}
	return New(config)
}

// DefaultConfig returns default logger configuration
func DefaultConfig() *Config {
	return &Config{
		Level:  LevelInfo,
		Format: "json",
		Output: "stdout",
	}
}

// New creates a new logger instance
func New(config *Config) *Logger {
	if config == nil {
		config = DefaultConfig()
	}

	return NewWithWriter(config, openOutput(config.Output))
}

// openOutput resolves stdout, stderr, or a file path; a file that cannot be opened falls back to stdout
func openOutput(output string) io.Writer {
	switch output {
	case "stdout", "":
		return os.Stdout
	case "stderr":
		return os.Stderr
	default:
		if file, err := os.OpenFile(output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0640); err == nil {
			return file
		}
		return os.Stdout
	}
}

// parseLevel maps a configured level onto slog, defaulting to info
func parseLevel(level LogLevel) slog.Level {
	switch level {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewWithWriter creates a logger that writes to output instead of the configured destination
func NewWithWriter(config *Config, output io.Writer) *Logger {
	if config == nil {
		config = DefaultConfig()
	}

	// Create handler options
	opts := &slog.HandlerOptions{
		Level: parseLevel(config.Level),
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// Customize timestamp format
			if a.Key == slog.TimeKey {
				return slog.Attr{
					Key:   "timestamp",
					Value: slog.StringValue(a.Value.Time().Format(time.RFC3339)),
				}
			}
			return a
		},
	}

	// Create appropriate handler based on format
	var handler slog.Handler
	if config.Format == "text" {
		handler = slog.NewTextHandler(output, opts)
	} else {
		handler = slog.NewJSONHandler(output, opts)
	}

	return &Logger{
		Logger: slog.New(handler),
	}
}

// Global logger instance
var defaultLogger *Logger

// Init initializes the global logger
func Init(config *Config) {
	defaultLogger = New(config)
}

// Default returns the default logger, creating one if it doesn't exist
func Default() *Logger {
	if defaultLogger == nil {
		defaultLogger = New(DefaultConfig())
	}
	return defaultLogger
}

// Info logs an info message on the default logger
func Info(msg string, args ...any) {
	Default().Info(msg, args...)
}

// LogRequest logs an HTTP request with structured data
func (l *Logger) LogRequest(method, path, route, user, requestID string, duration time.Duration, statusCode int) {
	l.Info("request completed",
		slog.String("method", method),
		slog.String("path", path),
		slog.String("route", route),
		slog.String("user", user),
		slog.String("request_id", requestID),
		slog.String("duration", duration.String()),
		slog.Int("status_code", statusCode),
	)
}

// LogStartup logs application startup
func (l *Logger) LogStartup(port int, configFile, serviceName, variant string, routeCount int) {
	l.Info("service starting",
		slog.Int("port", port),
		slog.String("config_file", configFile),
		slog.String("service", serviceName),
		slog.String("variant", variant),
		slog.Int("route_count", routeCount),
		slog.String("version", "dev"),
	)
}

// LogError logs errors with context
func (l *Logger) LogError(operation string, err error, context ...any) {
	args := []any{
		slog.String("operation", operation),
		slog.String("error", err.Error()),
	}
	args = append(args, context...)
	l.Error("operation failed", args...)
}

// LogConfig logs configuration loading
func (l *Logger) LogConfig(configPath string, loadedViaEnv bool, serviceName string) {
	l.Info("configuration loaded",
		slog.String("config_path", configPath),
		slog.Bool("loaded_via_env", loadedViaEnv),
		slog.String("service", serviceName),
	)
}
