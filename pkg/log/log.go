// Package log provides colored console logging and a connection wrapper
// that records session traffic to a transcript file.
package log

import (
	"io"
	"os"

	"github.com/fatih/color"
)

var red = color.New(color.FgRed).FprintfFunc()
var blue = color.New(color.FgBlue).FprintfFunc()
var yellow = color.New(color.FgYellow).FprintfFunc()

// Logger writes prefixed, colored messages to stderr. Verbose messages are
// suppressed unless the logger was created with verbose enabled.
type Logger struct {
	out     io.Writer
	verbose bool
}

// New creates a Logger writing to stderr.
func New(verbose bool) *Logger {
	return &Logger{
		out:     os.Stderr,
		verbose: verbose,
	}
}

// ErrorMsg prints an error message in red.
func (l *Logger) ErrorMsg(format string, a ...interface{}) {
	red(l.out, "[!] Error: "+format, a...)
}

// InfoMsg prints an informational message in blue.
func (l *Logger) InfoMsg(format string, a ...interface{}) {
	blue(l.out, "[+] "+format, a...)
}

// VerboseMsg prints a diagnostic message in yellow, only in verbose mode.
func (l *Logger) VerboseMsg(format string, a ...interface{}) {
	if !l.verbose {
		return
	}
	yellow(l.out, "[*] "+format, a...)
}
