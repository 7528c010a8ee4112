// Package logging provides the CLI's structured logger, a thin wrapper over
// charmbracelet/log with domain helpers for conversion events.
package logging

import (
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// Verbosity selects how much the CLI logs.
type Verbosity int

const (
	Normal  Verbosity = iota // warnings and errors
	Quiet                    // errors only
	Verbose                  // everything, including per-file debug events
)

// level maps a verbosity to the logger threshold.
func (v Verbosity) level() log.Level {
	switch v {
	case Quiet:
		return log.ErrorLevel
	case Verbose:
		return log.DebugLevel
	default:
		return log.WarnLevel
	}
}

// Logger wraps charm/log for structured logging.
type Logger struct {
	*log.Logger
}

// New creates a logger writing to w at the given verbosity.
func New(w io.Writer, v Verbosity) *Logger {
	l := log.NewWithOptions(w, log.Options{
		Level:  v.level(),
		Prefix: "md2html",
	})
	l.SetStyles(styles())
	return &Logger{Logger: l}
}

// styles highlights the keys the CLI logs most.
func styles() *log.Styles {
	s := log.DefaultStyles()
	s.Keys["err"] = lipgloss.NewStyle().Foreground(lipgloss.Color("204")).Bold(true)
	s.Values["err"] = lipgloss.NewStyle().Foreground(lipgloss.Color("204"))
	s.Keys["input"] = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	s.Keys["output"] = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	s.Values["duration"] = lipgloss.NewStyle().Faint(true)
	return s
}

// ConfigLoaded logs the configuration file in use.
func (l *Logger) ConfigLoaded(path string) {
	l.Debug("config loaded", "path", path)
}

// FileRendered logs a successful conversion.
func (l *Logger) FileRendered(input, output string, headings int, duration time.Duration) {
	l.Debug("file rendered",
		"input", input,
		"output", output,
		"headings", headings,
		"duration", duration.Round(time.Microsecond))
}

// FileFailed logs a failed conversion.
func (l *Logger) FileFailed(input string, err error) {
	l.Error("conversion failed",
		"input", input,
		"err", err)
}

// FileSkipped logs an input the batch walker ignored.
func (l *Logger) FileSkipped(path, reason string) {
	l.Debug("file skipped",
		"input", path,
		"reason", reason)
}

// BatchCompleted logs the outcome of a directory conversion. Failures are
// reported as a warning so they show at default verbosity.
func (l *Logger) BatchCompleted(succeeded, failed int, duration time.Duration) {
	keyvals := []any{
		"succeeded", succeeded,
		"failed", failed,
		"duration", duration.Round(time.Millisecond),
	}
	if failed > 0 {
		l.Warn("batch completed with errors", keyvals...)
		return
	}
	l.Info("batch completed", keyvals...)
}

// Printf adapts the logger to printf-style callbacks at debug level.
func (l *Logger) Printf(format string, args ...any) {
	l.Debugf(format, args...)
}
