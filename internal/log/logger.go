// Package log writes timestamped diagnostic lines. The TUI owns stdout, so
// everything goes to stderr; the lines surface once the alternate screen is
// torn down.
package log

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

var (
	mu      sync.Mutex
	out     io.Writer = os.Stderr
	isDebug bool
)

func SetDebug(debug bool) {
	mu.Lock()
	defer mu.Unlock()
	isDebug = debug
}

// SetOutput redirects the diagnostic stream, mainly for tests.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	out = w
}

// Debug logs a message with a trailing value, gated by the debug flag.
func Debug(msg string, value interface{}) {
	Debugf(msg+": %v", value)
}

// Debugf logs a formatted message, gated by the debug flag.
func Debugf(format string, args ...interface{}) {
	mu.Lock()
	defer mu.Unlock()
	if isDebug {
		write("DEBUG", format, args...)
	}
}

// Warnf logs a formatted warning.
func Warnf(format string, args ...interface{}) {
	mu.Lock()
	defer mu.Unlock()
	write("WARN", format, args...)
}

// Error logs a message with a trailing error value.
func Error(msg string, value interface{}) {
	mu.Lock()
	defer mu.Unlock()
	write("ERROR", msg+": %v", value)
}

func write(level, format string, args ...interface{}) {
	timestamp := time.Now().Format("2006-01-02 15:04:05")
	fmt.Fprintf(out, "[%s] %s: %s\n", timestamp, level, fmt.Sprintf(format, args...))
}
