// Package logger configures the process-wide zerolog logger.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/guttosm/bbs-service/internal/domain/model"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ServiceName tags every JSON entry.
const ServiceName = "bbs-service"

// ParseLevel maps a level name to a zerolog level. Empty and unknown names give info.
func ParseLevel(level string) zerolog.Level {
	l, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || l == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return l
}

// Init sets the global level and writes to stderr, as JSON lines or, when pretty, through a
// console writer.
func Init(level string, pretty bool) {
	initTo(os.Stderr, level, pretty)
}

func initTo(w io.Writer, level string, pretty bool) {
	zerolog.SetGlobalLevel(ParseLevel(level))
	zerolog.TimeFieldFormat = time.RFC3339Nano

	if pretty {
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}).
			With().Timestamp().Logger()
		return
	}
	log.Logger = zerolog.New(w).With().Timestamp().Str("service", ServiceName).Logger()
}

// Logger returns the global logger instance.
func Logger() zerolog.Logger {
	return log.Logger
}

// WithContext returns the global logger with fields attached.
func WithContext(fields map[string]interface{}) zerolog.Logger {
	return log.Logger.With().Fields(fields).Logger()
}

// ForSchedule returns the global logger tagged with a calculation's design code and group count.
func ForSchedule(code model.DesignCode, groups int) zerolog.Logger {
	return log.Logger.With().Str("code", string(code)).Int("bar_groups", groups).Logger()
}
