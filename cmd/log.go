package cmd

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// newLogger returns a human readable logger on w. Only warnings and errors
// are logged unless verbose is set.
func newLogger(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	output := zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly, NoColor: !isTerminal(w)}
	return zerolog.New(output).Level(level).With().Timestamp().Logger()
}
