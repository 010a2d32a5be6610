// Package logger configures the structured logger every import run writes
// through. Output goes to stderr so piped CLI output only carries results.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New creates the process logger. Verbose lowers the level to debug, which
// includes the per-transaction dry-run lines and per-notification matches.
func New(verbose bool) zerolog.Logger {
	return NewWithWriter(os.Stderr, verbose)
}

// NewWithWriter creates a logger with a custom writer (used by tests).
func NewWithWriter(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	output := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.RFC3339,
	}
	return zerolog.New(output).Level(level).With().Timestamp().Logger()
}
