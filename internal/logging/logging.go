// Package logging configures the structured logger shared by the
// demonstration harness (cmd/ramulator, internal/sim),
// routing all output through logiface.
package logging

import (
	"io"
	"os"

	"github.com/joeycumines/izerolog"
	"github.com/joeycumines/logiface"
	"github.com/rs/zerolog"
)

// Logger is the concrete logiface logger type used throughout the harness.
type Logger = logiface.Logger[*izerolog.Event]

// Config configures the harness logger.
type Config struct {
	// Writer receives encoded log lines. Defaults to os.Stderr.
	Writer io.Writer

	// Level is the minimum level that will be logged. DefaultConfig sets
	// logiface.LevelInformational, and New uses that level in place of
	// logiface.LevelDisabled.
	Level logiface.Level
}

// DefaultConfig returns the harness's default logging configuration:
// informational level, writing to stderr.
func DefaultConfig() Config {
	return Config{Writer: os.Stderr, Level: logiface.LevelInformational}
}

// New constructs a Logger from cfg, using os.Stderr when Writer is nil and
// logiface.LevelInformational when Level is logiface.LevelDisabled.
func New(cfg Config) *Logger {
	w := cfg.Writer
	if w == nil {
		w = os.Stderr
	}
	level := cfg.Level
	if level == logiface.LevelDisabled {
		level = logiface.LevelInformational
	}

	zl := zerolog.New(w).With().Timestamp().Logger()
	return izerolog.L.New(
		izerolog.L.WithZerolog(zl),
		izerolog.L.WithLevel(level),
	)
}
