// Package logger provides logging functionality for the asset cleaner.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Logger interface provides logging capabilities.
type Logger interface {
	// Logf logs a formatted message.
	Logf(format string, args ...interface{})
}

// noopLogger is a logger that does nothing.
type noopLogger struct{}

// NewNoopLogger creates a new noop logger.
func NewNoopLogger() Logger {
	return &noopLogger{}
}

// Logf does nothing for noop logger.
func (n *noopLogger) Logf(_ string, _ ...interface{}) {}

// writerLogger is a thread-safe logger writing one line per message.
type writerLogger struct {
	mu     sync.Mutex
	out    io.Writer
	prefix string
}

// NewDefaultLogger creates a logger that writes to stdout.
func NewDefaultLogger() Logger {
	return &writerLogger{out: os.Stdout}
}

// NewVerboseLogger creates a logger that writes prefixed messages to stderr,
// keeping stdout clean for command output.
func NewVerboseLogger() Logger {
	return &writerLogger{out: os.Stderr, prefix: "[ac] "}
}

// NewWriterLogger creates a logger that writes to the given writer.
func NewWriterLogger(out io.Writer) Logger {
	return &writerLogger{out: out}
}

// Logf writes a formatted message with thread safety.
func (w *writerLogger) Logf(format string, args ...interface{}) {
	w.mu.Lock()
	defer w.mu.Unlock()
	fmt.Fprintf(w.out, w.prefix+format+"\n", args...)
}
