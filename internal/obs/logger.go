// Package obs carries spass's ambient observability: structured logging
// and optional Prometheus metrics for the discoverer's batch loop.
// Nothing here participates in scoring or acceptance — every call site
// that depends on obs could have its obs.Logger/obs.Metrics replaced
// with a no-op and produce byte-identical mining results (spass
// Testable Property 11).
package obs

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Level mirrors the handful of levels the CLI's --log-level flag
// accepts.
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// LoggerConfig configures a Logger's output and verbosity.
type LoggerConfig struct {
	Level  Level
	Output io.Writer
}

// Logger wraps a zerolog.Logger with the phase/batch vocabulary spass
// uses: one line per CLI phase transition at info, one line per
// discoverer batch at debug.
type Logger struct {
	z zerolog.Logger
}

// NewLogger builds a Logger from cfg, defaulting output to stdout and
// level to info.
func NewLogger(cfg LoggerConfig) *Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}

	z := zerolog.New(out).With().Timestamp().Logger()
	switch cfg.Level {
	case LevelDebug:
		z = z.Level(zerolog.DebugLevel)
	case LevelWarn:
		z = z.Level(zerolog.WarnLevel)
	case LevelError:
		z = z.Level(zerolog.ErrorLevel)
	default:
		z = z.Level(zerolog.InfoLevel)
	}

	return &Logger{z: z}
}

// NewNopLogger returns a Logger that discards everything, for tests and
// for the Testable Property 11 non-interference check.
func NewNopLogger() *Logger {
	return &Logger{z: zerolog.New(io.Discard)}
}

// Phase logs a CLI phase transition at info level.
func (l *Logger) Phase(name string) {
	l.z.Info().Str("phase", name).Msg("phase transition")
}

// Batch logs a discoverer batch summary at debug level.
func (l *Logger) Batch(layer, popped, accepted, pruned int, elapsed time.Duration) {
	l.z.Debug().
		Int("layer", layer).
		Int("popped", popped).
		Int("accepted", accepted).
		Int("pruned", pruned).
		Dur("elapsed", elapsed).
		Msg("batch complete")
}

// Error logs an error with context, never fatal: spass never exits a
// process from inside the core.
func (l *Logger) Error(msg string, err error) {
	l.z.Error().Err(err).Msg(msg)
}
