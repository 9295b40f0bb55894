// Package logging configures the diagnostic logger used across vimoxide.
//
// User-facing output goes through the notify package; this logger carries the
// debug trail (why a default was chosen, which history lines were skipped, which
// rule resolved a query) and writes to stderr.
package logging

import (
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/sirupsen/logrus"
)

const (
	// LevelEnvVar sets the log level when the --log-level flag is not given.
	LevelEnvVar = "VIMOXIDE_LOG_LEVEL"
	// FlagName is the persistent flag selecting the log level.
	FlagName = "log-level"
	// DefaultLevel keeps normal runs quiet.
	DefaultLevel = "warn"
)

// New returns a logger writing text records to writer at the given level.
// An empty level means DefaultLevel. A nil writer means os.Stderr.
func New(writer io.Writer, level string) (*logrus.Logger, error) {
	if writer == nil {
		writer = os.Stderr
	}

	if strings.TrimSpace(level) == "" {
		level = DefaultLevel
	}

	parsed, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		return nil, fmt.Errorf("parse log level %q: %w", level, err)
	}

	logger := logrus.New()
	logger.SetOutput(writer)
	logger.SetLevel(parsed)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp:       true,
		DisableLevelTruncation: true,
	})

	return logger, nil
}

// Discard returns a logger that drops every record.
func Discard() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	logger.SetLevel(logrus.PanicLevel)

	return logger
}

// OrDiscard returns logger, or a discarding logger when logger is nil.
// A nil pointer held in the interface counts as nil.
func OrDiscard(logger logrus.FieldLogger) logrus.FieldLogger {
	if logger == nil {
		return Discard()
	}

	if value := reflect.ValueOf(logger); value.Kind() == reflect.Pointer && value.IsNil() {
		return Discard()
	}

	return logger
}
