// Package logger provides verbose logging for the tramites CLI.
// When verbose mode is enabled via the --verbose flag, debug and progress
// messages are printed to stderr so a long scrape can be followed page by
// page. Errors are always printed.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
)

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
)

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the output writer for logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

func printf(always bool, level, format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if always || verbose {
		fmt.Fprintf(output, "["+level+"] "+format+"\n", args...)
	}
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	printf(false, "DEBUG", format, args...)
}

// Info prints an informational message if verbose mode is enabled.
func Info(format string, args ...any) {
	printf(false, "INFO", format, args...)
}

// Warn prints a warning message if verbose mode is enabled.
func Warn(format string, args ...any) {
	printf(false, "WARN", format, args...)
}

// Error prints an error message regardless of verbose mode.
func Error(format string, args ...any) {
	printf(true, "ERROR", format, args...)
}

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		fmt.Fprintf(output, "\n=== %s ===\n", name)
	}
}

// Scope prefixes every message with a component name, e.g. "[gobec] ".
type Scope string

// Debug prints a scoped debug message.
func (s Scope) Debug(format string, args ...any) {
	Debug("["+string(s)+"] "+format, args...)
}

// Info prints a scoped informational message.
func (s Scope) Info(format string, args ...any) {
	Info("["+string(s)+"] "+format, args...)
}

// Warn prints a scoped warning.
func (s Scope) Warn(format string, args ...any) {
	Warn("["+string(s)+"] "+format, args...)
}

// Error prints a scoped error.
func (s Scope) Error(format string, args ...any) {
	Error("["+string(s)+"] "+format, args...)
}
