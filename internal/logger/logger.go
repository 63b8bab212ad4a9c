package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init configures the global zerolog logger. Call it before anything logs.
// LOG_FORMAT=pretty switches to console output for development; the default is
// JSON. LOG_LEVEL accepts the usual zerolog level names and defaults to info.
func Init() {
	var writer io.Writer = os.Stdout
	if os.Getenv("LOG_FORMAT") == "pretty" {
		writer = zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		}
	}

	level, err := zerolog.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	log.Logger = zerolog.New(writer).With().Timestamp().Logger()
}
