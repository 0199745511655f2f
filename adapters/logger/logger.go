// Package logger implements the diagnostics adapter using log/slog.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/bobmake/bob/core/ports"
)

// Logger implements ports.Logger. Warnings, errors and debug output go to
// a slog text handler on stderr; the command echo channel is a plain
// stream on stdout so recipes' command lines stay copy-pasteable.
type Logger struct {
	mu     sync.RWMutex
	logger *slog.Logger
	level  *slog.LevelVar
	cmdOut io.Writer
}

var _ ports.Logger = (*Logger)(nil)

// New creates a Logger writing diagnostics to stderr and command echoes
// to stdout.
func New() *Logger {
	level := new(slog.LevelVar)
	level.Set(slog.LevelInfo)
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		logger: slog.New(handler),
		level:  level,
		cmdOut: os.Stdout,
	}
}

// SetOutput redirects the diagnostics stream. Used by tests.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: l.level,
	})
	l.logger = slog.New(handler)
}

// SetCommandOutput redirects the command echo stream. Used by tests.
func (l *Logger) SetCommandOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cmdOut = w
}

// SetDebug raises or restores the diagnostics verbosity.
func (l *Logger) SetDebug(on bool) {
	if on {
		l.level.Set(slog.LevelDebug)
	} else {
		l.level.Set(slog.LevelInfo)
	}
}

// Debug logs a debug message.
func (l *Logger) Debug(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Debug(msg)
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Info(msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Warn(msg)
}

// Error logs an error.
func (l *Logger) Error(err error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Error("build error", "error", err)
}

// Command echoes a recipe's command line.
func (l *Logger) Command(cmd string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, _ = fmt.Fprintln(l.cmdOut, cmd)
}
