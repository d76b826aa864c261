package logging

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// New constructs a zerolog logger from the configured level and format.
// Defaults to JSON at info level on stdout when fields are empty.
func New(levelStr, format string) zerolog.Logger {
	level := zerolog.InfoLevel
	if parsed, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(levelStr))); err == nil {
		level = parsed
	}

	output := zerolog.MultiLevelWriter(os.Stdout)
	logger := zerolog.New(output)
	if strings.ToLower(strings.TrimSpace(format)) == "console" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}

	zerolog.TimeFieldFormat = time.RFC3339Nano
	return logger.Level(level).With().Timestamp().Str("app", "lendit").Logger()
}
