package logging

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// New constructs a zerolog logger writing to stdout.
// Defaults to JSON at info level when fields are empty.
func New(level, format string) zerolog.Logger {
	parsed := zerolog.InfoLevel
	if l, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level))); err == nil && level != "" {
		parsed = l
	}

	var output = os.Stdout
	zerolog.TimeFieldFormat = time.RFC3339Nano

	if strings.ToLower(strings.TrimSpace(format)) == "console" {
		writer := zerolog.ConsoleWriter{Out: output, TimeFormat: time.RFC3339}
		return zerolog.New(writer).Level(parsed).With().Timestamp().Logger()
	}

	return zerolog.New(output).Level(parsed).With().Timestamp().Logger()
}
