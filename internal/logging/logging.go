// Package logging wraps charmbracelet/log for the glint CLI. All log
// output goes to stderr; stdout stays clean for rendered terminal output,
// which matters doubly here since the renderer owns stdout during live
// displays.
//
// Setup must run before New: charmbracelet/log child loggers copy state
// at creation time, so loggers created earlier keep the old settings.
package logging

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// Level aliases, re-exported so callers need not import charmbracelet/log.
const (
	LevelDebug = log.DebugLevel
	LevelInfo  = log.InfoLevel
	LevelWarn  = log.WarnLevel
	LevelError = log.ErrorLevel
)

// Setup configures global logging defaults. verbose lowers the level to
// Debug, quiet raises it to Error; quiet wins when both are set so
// scripted runs stay silent. jsonFormat switches to NDJSON output.
func Setup(verbose, quiet, jsonFormat bool) {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	if quiet {
		level = log.ErrorLevel
	}

	log.SetLevel(level)
	log.SetOutput(os.Stderr)

	if jsonFormat {
		log.SetFormatter(log.JSONFormatter)
	} else {
		log.SetFormatter(log.TextFormatter)
	}
}

// New creates a logger with the given component prefix, inheriting the
// global level and output at creation time.
//
//	logger := logging.New("theme")
//	logger.Info("loaded", "path", "theme.toml")
func New(component string) *log.Logger {
	return log.WithPrefix(component)
}

// SetOutput overrides the default logger's writer. Useful in tests to
// capture output with a bytes.Buffer; restore stderr in t.Cleanup.
func SetOutput(w io.Writer) {
	log.SetOutput(w)
}
