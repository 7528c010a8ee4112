package main

import (
	"io"
	"os"
	"time"

	"go.uber.org/automaxprocs/maxprocs"

	"github.com/alnah/go-md2html/internal/logging"
)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Now    func() time.Time
	Stdout io.Writer
	Stderr io.Writer

	// AdjustMaxProcs aligns GOMAXPROCS with the container CPU quota before
	// workers are sized. It returns a function restoring the previous value.
	// Nil leaves GOMAXPROCS untouched.
	AdjustMaxProcs func(logger *logging.Logger) func()
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:            time.Now,
		Stdout:         os.Stdout,
		Stderr:         os.Stderr,
		AdjustMaxProcs: adjustMaxProcs,
	}
}

// adjustMaxProcs runs automaxprocs with its messages routed to the debug log.
func adjustMaxProcs(logger *logging.Logger) func() {
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	undo, _ := maxprocs.Set(maxprocs.Logger(logger.Printf))
	return undo
}
