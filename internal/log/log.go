// Package log is a thin colored-output shim over fatih/color. Informational
// output goes to stdout, warnings and errors to stderr. Color is controlled
// by the caller through color.NoColor.
package log

import (
	"os"

	"github.com/fatih/color"
)

var (
	InfoColor    = color.New(color.FgCyan)
	SuccessColor = color.New(color.FgGreen)
	WarnColor    = color.New(color.FgYellow)
	ErrorColor   = color.New(color.FgRed)
	DetailColor  = color.New(color.FgWhite)
	DimColor     = color.New(color.Faint)
)

// Info prints an informational message (cyan).
func Info(format string, a ...interface{}) {
	InfoColor.Fprintf(os.Stdout, format+"\n", a...)
}

// Success prints a success message (green).
func Success(format string, a ...interface{}) {
	SuccessColor.Fprintf(os.Stdout, format+"\n", a...)
}

// Warn prints a warning (yellow) to stderr.
func Warn(format string, a ...interface{}) {
	WarnColor.Fprintf(os.Stderr, "Warning: "+format+"\n", a...)
}

// Error prints an error (red) to stderr.
func Error(format string, a ...interface{}) {
	ErrorColor.Fprintf(os.Stderr, "Error: "+format+"\n", a...)
}

// Fatal prints an error to stderr and exits with status 1.
func Fatal(format string, a ...interface{}) {
	Error(format, a...)
	os.Exit(1)
}

// Detail prints secondary detail lines.
func Detail(format string, a ...interface{}) {
	DetailColor.Fprintf(os.Stdout, format+"\n", a...)
}

// Printf prints to stdout in the given color, no newline appended.
func Printf(c *color.Color, format string, a ...interface{}) {
	c.Fprintf(os.Stdout, format, a...)
}
