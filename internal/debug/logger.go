// Package debug is the process-wide diagnostic log. It is silent until an
// output is set, so the terminal UI is never overwritten by log lines.
package debug

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

var (
	writer io.Writer = io.Discard
	logger           = slog.New(slog.NewTextHandler(io.Discard, nil))
)

// ParseLevel maps LOG_LEVEL style names to slog levels; unknown names mean info
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// SetOutput sets the debug output destination
func SetOutput(w io.Writer) {
	SetOutputLevel(w, slog.LevelDebug)
}

// SetOutputLevel sets the output and the minimum level of structured records
func SetOutputLevel(w io.Writer, level slog.Level) {
	writer = w
	logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Log writes a debug message
func Log(format string, args ...interface{}) {
	if !Enabled() {
		return
	}
	logger.Debug(fmt.Sprintf(format, args...))
}

// L returns the structured logger for key/value records
func L() *slog.Logger {
	return logger
}

// Enabled returns true if debug logging is enabled
func Enabled() bool {
	return writer != io.Discard
}
