package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// output is where loggers created by this package write. Tests may replace it.
var output io.Writer = os.Stderr

// verbose forces debug mode on, as the --verbose flag does.
var verbose bool

// SetVerbose turns debug mode on for loggers created afterwards.
func SetVerbose(on bool) {
	verbose = on
}

// DebugEnabled returns true if debug mode is enabled via TP_DEBUG environment variable or SetVerbose
func DebugEnabled() bool {
	return verbose || os.Getenv("TP_DEBUG") != ""
}

// New returns a zerolog.Logger tagged with the given component name.
// The level is debug when TP_DEBUG is set and warn otherwise.
func New(component string) zerolog.Logger {
	level := zerolog.WarnLevel
	if DebugEnabled() {
		level = zerolog.DebugLevel
	}
	return zerolog.New(output).
		Level(level).
		With().
		Str("component", component).
		Timestamp().
		Logger()
}

// Nop returns a logger that discards everything.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}

// Debugf logs a formatted debug message only if debug mode is enabled
func Debugf(format string, args ...interface{}) {
	if DebugEnabled() {
		l := New("tp")
		l.Debug().Msgf(format, args...)
	}
}

// Debugln logs a debug message only if debug mode is enabled
func Debugln(args ...interface{}) {
	if DebugEnabled() {
		l := New("tp")
		l.Debug().Msg(sprintln(args...))
	}
}
