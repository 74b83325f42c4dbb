package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Logger wraps zerolog.Logger
type Logger struct {
	zerolog.Logger
}

// New creates a new logger instance writing to stderr.
// stdout is left to the command's user-facing output.
func New(serviceName string, environment string) *Logger {
	return NewWithWriter(os.Stderr, serviceName, environment)
}

// NewWithWriter creates a logger writing to w
func NewWithWriter(w io.Writer, serviceName string, environment string) *Logger {
	output := w

	if environment == "development" {
		output = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.RFC3339,
		}
	}

	logger := zerolog.New(output).
		With().
		Timestamp().
		Str("service", serviceName).
		Logger()

	return &Logger{Logger: logger}
}

// Nop returns a logger that discards everything
func Nop() *Logger {
	return &Logger{Logger: zerolog.Nop()}
}

// WithLevel returns a logger filtered at the named level.
// Unknown names leave the level unchanged.
func (l *Logger) WithLevel(level string) *Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		return l
	}
	return &Logger{Logger: l.Logger.Level(lvl)}
}

// WithRunID returns a logger with the provisioning run ID attached
func (l *Logger) WithRunID(runID string) *Logger {
	return &Logger{
		Logger: l.Logger.With().Str("run_id", runID).Logger(),
	}
}

// WithDatabase returns a logger with the database name attached
func (l *Logger) WithDatabase(database string) *Logger {
	return &Logger{
		Logger: l.Logger.With().Str("database", database).Logger(),
	}
}

// WithComponent returns a logger with the component name attached
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{
		Logger: l.Logger.With().Str("component", component).Logger(),
	}
}

// WithError returns a logger with the error attached
func (l *Logger) WithError(err error) *Logger {
	return &Logger{
		Logger: l.Logger.With().Err(err).Logger(),
	}
}
