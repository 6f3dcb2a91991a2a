// Package logger prints leveled, colorized messages for the CLI.
//
// Verbosity is decided once at startup and handed to New; the Logger is then
// passed explicitly to every component that reports progress.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

// Logger writes user-facing messages. Fine messages are dropped unless the
// logger is verbose.
type Logger struct {
	out     io.Writer
	errOut  io.Writer
	verbose bool

	info *color.Color
	fine *color.Color
	warn *color.Color
	err  *color.Color
}

// New returns a Logger writing regular output to out and errors to errOut.
// Nil writers default to os.Stdout and os.Stderr.
func New(out, errOut io.Writer, verbose bool) *Logger {
	if out == nil {
		out = os.Stdout
	}
	if errOut == nil {
		errOut = os.Stderr
	}
	return &Logger{
		out:     out,
		errOut:  errOut,
		verbose: verbose,
		info:    color.New(color.FgGreen),
		fine:    color.New(color.FgCyan),
		warn:    color.New(color.FgHiMagenta),
		err:     color.New(color.FgRed),
	}
}

// Discard returns a Logger that prints nothing. Useful in tests.
func Discard() *Logger {
	return New(io.Discard, io.Discard, false)
}

// Verbose reports whether Fine messages are printed.
func (l *Logger) Verbose() bool { return l.verbose }

// SetVerbose switches Fine messages on or off. The dispatcher calls it once,
// after parsing the command line and before running a command.
func (l *Logger) SetVerbose(v bool) { l.verbose = v }

// Out returns the regular output writer.
func (l *Logger) Out() io.Writer { return l.out }

// ErrOut returns the error output writer.
func (l *Logger) ErrOut() io.Writer { return l.errOut }

// Log prints an informational line.
func (l *Logger) Log(format string, args ...any) {
	l.print(l.out, l.info, format, args...)
}

// Fine prints a detail line, only when verbose.
func (l *Logger) Fine(format string, args ...any) {
	if !l.verbose {
		return
	}
	l.print(l.out, l.fine, format, args...)
}

// Warn prints a warning line.
func (l *Logger) Warn(format string, args ...any) {
	l.print(l.errOut, l.warn, format, args...)
}

// Error prints an error message on the error stream. Messages that already
// carry terminal styling are printed untouched.
func (l *Logger) Error(format string, args ...any) {
	l.print(l.errOut, l.err, format, args...)
}

func (l *Logger) print(w io.Writer, c *color.Color, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	msg = strings.TrimRight(msg, "\n")
	if HasStyle(msg) {
		fmt.Fprintln(w, msg)
		return
	}
	c.Fprintln(w, msg)
}

// HasStyle reports whether s already contains ANSI escape sequences.
func HasStyle(s string) bool {
	return strings.Contains(s, "\x1b[")
}
