// Package logging configures the process-wide zerolog logger.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Settings is the subset of config the logger needs.
type Settings interface {
	GetLogLevel() string
	GetLogFormat() string
}

// Setup points the global zerolog logger at stderr using the configured level and format.
func Setup(settings Settings) {
	SetupWriter(os.Stderr, settings)
}

// SetupWriter is Setup with an explicit destination.
func SetupWriter(w io.Writer, settings Settings) {
	zerolog.SetGlobalLevel(ParseLevel(settings.GetLogLevel()))
	zerolog.TimeFieldFormat = time.RFC3339

	out := w
	if strings.EqualFold(settings.GetLogFormat(), "text") || strings.EqualFold(settings.GetLogFormat(), "console") {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}
	log.Logger = zerolog.New(out).With().Timestamp().Logger()
}

// ParseLevel maps a level name to a zerolog level, defaulting to info.
func ParseLevel(level string) zerolog.Level {
	parsed, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || parsed == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return parsed
}
