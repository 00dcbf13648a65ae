// Package logging configures the process-wide zerolog logger, the same
// level/format switch minis/50-mini-service-all-features/cmd/service/main.go
// uses.
package logging

import (
	"os"

	"github.com/rs/zerolog"

	"github.com/user/near-sql-indexer/internal/config"
)

// Setup parses cfg.Level, sets it as zerolog's global level, and returns a
// logger writing either JSON (the default) or a human-readable console
// format.
func Setup(cfg config.LoggingConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.Format == "console" {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stdout).With().Timestamp().Logger()
}
