// Package logging defines the logger used across authstate packages.
package logging

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Logger is a leveled printf-style logger
type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Error(format string, args ...any)
}

type defLogger struct {
	mux     sync.Mutex
	writer  io.Writer
	prefix  string
	verbose bool
}

func (d *defLogger) Error(format string, args ...any) {
	d.print("ERR", format, args...)
}

func (d *defLogger) Info(format string, args ...any) {
	d.print("INF", format, args...)
}

func (d *defLogger) Debug(format string, args ...any) {
	if !d.verbose {
		return
	}
	d.print("DBG", format, args...)
}

func (d *defLogger) print(level, format string, args ...any) {
	d.mux.Lock()
	defer d.mux.Unlock()
	_, _ = fmt.Fprintf(d.writer, "["+level+"] "+d.prefix+" "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}

// New creates a logger writing to w; debug lines are emitted only when verbose is set.
func New(w io.Writer, prefix string, verbose bool) Logger {
	if w == nil {
		w = os.Stderr
	}
	return &defLogger{writer: w, prefix: prefix, verbose: verbose}
}

// Default returns the stderr logger with AUTHSTATE prefix
func Default() Logger {
	return New(os.Stderr, "AUTHSTATE", false)
}

type nop struct{}

func (nop) Debug(string, ...any) {}
func (nop) Info(string, ...any)  {}
func (nop) Error(string, ...any) {}

// Nop discards everything
var Nop Logger = nop{}
