package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

// Config holds logging configuration
type Config struct {
	Level  string `env:"LOG_LEVEL" default:"info"`
	Format string `env:"LOG_FORMAT" default:"json"`
	Output string `env:"LOG_OUTPUT" default:"stdout"`
}

// DefaultConfig returns the default logging configuration
func DefaultConfig() *Config {
	return &Config{
		Level:  "info",
		Format: "json",
		Output: "stdout",
	}
}

// Logger wraps slog.Logger with additional context methods
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new structured logger from configuration
func NewLogger(cfg *Config) *Logger {
	var writer io.Writer = os.Stdout

	// Configure output destination
	switch strings.ToLower(cfg.Output) {
	case "stderr":
		writer = os.Stderr
	case "stdout", "":
		writer = os.Stdout
	case "discard", "none":
		writer = io.Discard
	default:
		// Default to stdout for unrecognized output targets
		writer = os.Stdout
	}

	// Configure log level
	var level slog.Level
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "info", "":
		level = slog.LevelInfo
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	// Configure handler based on format
	var handler slog.Handler
	handlerOpts := &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// Customize timestamp format
			if a.Key == slog.TimeKey {
				return slog.String("timestamp", a.Value.Time().Format(time.RFC3339))
			}
			return a
		},
	}

	switch strings.ToLower(cfg.Format) {
	case "text", "console":
		handler = slog.NewTextHandler(writer, handlerOpts)
	case "json", "":
		handler = slog.NewJSONHandler(writer, handlerOpts)
	default:
		handler = slog.NewJSONHandler(writer, handlerOpts)
	}

	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithComponent adds component context to logger
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{
		Logger: l.Logger.With("component", component),
	}
}

// WithContext adds request context to logger (if available)
func (l *Logger) WithContext(ctx context.Context) *Logger {
	// Extract common context values if available
	if requestID := middleware.GetReqID(ctx); requestID != "" {
		return &Logger{
			Logger: l.Logger.With("request_id", requestID),
		}
	}
	return l
}

// API logs outbound admin API traffic with standard fields
func (l *Logger) API(msg string, method, path string, args ...any) {
	finalArgs := []any{"subsystem", "api", "method", method, "path", path}
	finalArgs = append(finalArgs, args...)
	l.Logger.Debug(msg, finalArgs...)
}

// APIError logs failed admin API calls with standard fields
func (l *Logger) APIError(msg string, err error, method, path string, args ...any) {
	finalArgs := []any{"subsystem", "api", "method", method, "path", path, "error", err.Error()}
	finalArgs = append(finalArgs, args...)
	l.Logger.Warn(msg, finalArgs...)
}

// Performance logs performance metrics
func (l *Logger) Performance(operation string, duration time.Duration, attrs ...slog.Attr) {
	args := []any{"operation", operation, "duration_ms", duration.Milliseconds()}
	for _, attr := range attrs {
		args = append(args, attr.Key, attr.Value)
	}
	l.Logger.Info("performance", args...)
}

// Database logs database-specific events
func (l *Logger) Database(msg string, args ...any) {
	finalArgs := []any{"subsystem", "database"}
	finalArgs = append(finalArgs, args...)
	l.Logger.Debug(msg, finalArgs...)
}

// Security logs security-related events
func (l *Logger) Security(msg string, args ...any) {
	finalArgs := []any{"subsystem", "security"}
	finalArgs = append(finalArgs, args...)
	l.Logger.Info(msg, finalArgs...)
}

var defaultLogger *Logger

// SetDefault sets the default logger instance
func SetDefault(logger *Logger) {
	defaultLogger = logger
}

// Default returns the default logger instance
func Default() *Logger {
	if defaultLogger == nil {
		defaultLogger = NewLogger(DefaultConfig())
	}
	return defaultLogger
}

// Convenience functions using default logger
func Info(msg string, args ...any) {
	Default().Info(msg, args...)
}

func Debug(msg string, args ...any) {
	Default().Debug(msg, args...)
}

func Warn(msg string, args ...any) {
	Default().Warn(msg, args...)
}

func Error(msg string, args ...any) {
	Default().Error(msg, args...)
}

func API(msg string, method, path string, args ...any) {
	Default().API(msg, method, path, args...)
}

func Performance(operation string, duration time.Duration, attrs ...slog.Attr) {
	Default().Performance(operation, duration, attrs...)
}
