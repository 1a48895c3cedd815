// Package logging builds the zerolog loggers used by the CLI and the desktop app.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Config holds logger configuration options.
type Config struct {
	// Level is the minimum level to output (trace, debug, info, warn, error, disabled).
	Level string
	// Format is json, console or auto (console when writing to a terminal).
	Format string
	// Output is stderr, stdout, discard or a file path.
	Output string
	// NoColor disables colors in console mode.
	NoColor bool
	// Extra receives a copy of every line, e.g. the log pane of the UI.
	Extra io.Writer
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Level:   "info",
		Format:  "auto",
		Output:  "stderr",
		NoColor: os.Getenv("NO_COLOR") != "",
	}
}

// New creates a logger from cfg. When Output names a file that cannot be
// opened the logger writes to stderr and its first entry reports the failure.
func New(cfg Config) zerolog.Logger {
	level := ParseLevel(cfg.Level)
	writer, openErr := writerFor(cfg)
	if cfg.Extra != nil {
		writer = zerolog.MultiLevelWriter(writer, zerolog.ConsoleWriter{
			Out:        cfg.Extra,
			NoColor:    true,
			TimeFormat: time.TimeOnly,
		})
	}
	logger := zerolog.New(writer).With().Timestamp().Logger()
	if openErr != nil {
		// reported before the level applies so it is never filtered
		logger.Warn().Err(openErr).Str("output", cfg.Output).Msg("log output unavailable, writing to stderr")
	}
	return logger.Level(level)
}

// Nop returns a disabled logger.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}

func writerFor(cfg Config) (io.Writer, error) {
	var (
		out     io.Writer
		openErr error
	)
	switch strings.ToLower(cfg.Output) {
	case "", "stderr":
		out = os.Stderr
	case "stdout":
		out = os.Stdout
	case "discard", "none":
		return io.Discard, nil
	default:
		file, err := os.OpenFile(cfg.Output, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			out = os.Stderr
			openErr = fmt.Errorf("open log file: %w", err)
		} else {
			out = file
		}
	}

	format := strings.ToLower(cfg.Format)
	if format == "" || format == "auto" {
		format = "json"
		if f, ok := out.(*os.File); ok {
			if info, err := f.Stat(); err == nil && info.Mode()&os.ModeCharDevice != 0 {
				format = "console"
			}
		}
	}
	if format == "console" || format == "pretty" {
		return zerolog.ConsoleWriter{Out: out, NoColor: cfg.NoColor, TimeFormat: time.Kitchen}, openErr
	}
	return out, openErr
}

// ParseLevel parses a level name, defaulting to info.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "", "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled", "none", "off":
		return zerolog.Disabled
	default:
		if l, err := zerolog.ParseLevel(level); err == nil {
			return l
		}
		return zerolog.InfoLevel
	}
}
