package logger

import (
	"io"
	"os"
	"time"

	"digital-storefront/internal/config"

	"github.com/rs/zerolog"
)

// New builds the process logger from the LOG_LEVEL / LOG_FORMAT settings.
func New(cfg *config.Log, environment string) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	var out io.Writer = os.Stdout
	if cfg.Format == "console" {
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}

	return zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Str("env", environment).
		Logger()
}
