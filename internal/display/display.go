// Package display prints the engine's user-visible diagnostics: the single
// warning line per skipped unit required by spec §7, and optional verbose
// progress output. The teacher pack carries no structured-logging
// dependency (checked: no slog/zap/zerolog import anywhere under
// _examples/standardbeagle-lci) — it prints straight to stderr behind a
// verbose flag (internal/display), and this package follows the same shape.
package display

import (
	"fmt"
	"io"
	"os"
)

// Printer writes warnings unconditionally and progress lines only when
// Verbose is set, matching the teacher's verbose-gated stderr printing.
type Printer struct {
	Verbose bool
	Out     io.Writer
	Err     io.Writer
}

func New(verbose bool) *Printer {
	return &Printer{Verbose: verbose, Out: os.Stdout, Err: os.Stderr}
}

// Warn prints one warning line — used for the per-skipped-unit warning
// spec §7 requires and for any other non-fatal recoverable condition.
func (p *Printer) Warn(format string, args ...any) {
	fmt.Fprintf(p.errWriter(), "warning: "+format+"\n", args...)
}

// Verbosef prints a progress line only when Verbose is enabled.
func (p *Printer) Verbosef(format string, args ...any) {
	if !p.Verbose {
		return
	}
	fmt.Fprintf(p.errWriter(), format+"\n", args...)
}

// Printf writes to the normal output stream (report output, summaries).
func (p *Printer) Printf(format string, args ...any) {
	fmt.Fprintf(p.outWriter(), format, args...)
}

func (p *Printer) outWriter() io.Writer {
	if p.Out != nil {
		return p.Out
	}
	return os.Stdout
}

func (p *Printer) errWriter() io.Writer {
	if p.Err != nil {
		return p.Err
	}
	return os.Stderr
}
