// Package logger is the levelled logging facade used across the calculator.
//
// Levels, from quietest to loudest:
//
//	Error < Info < Debug < Trace
//
// Example:
//
//	logger.SetVerbosity(2) // Debug
//	logger.Infof("serving on %s", addr)
//	logger.Debugf("evaluate spot=%.2f vol=%.4f", spot, vol)
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync/atomic"
)

// Level is a logging verbosity. Higher values log more.
type Level int

const (
	Error Level = iota // Error logs failures only.
	Info               // Info logs lifecycle events.
	Debug              // Debug logs per-request details.
	Trace              // Trace logs per-point details of sweeps.
)

var (
	current atomic.Int32
	std     = log.New(os.Stderr, "", log.LstdFlags|log.Lshortfile)
)

func init() {
	current.Store(int32(Info))
}

// SetVerbosity sets the global verbosity. Values above Trace are clamped.
func SetVerbosity(v int) {
	if v > int(Trace) {
		v = int(Trace)
	}
	current.Store(int32(v))
}

// Verbosity returns the active level.
func Verbosity() Level {
	return Level(current.Load())
}

// ParseLevel maps "error", "info", "debug" or "trace" to a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "error":
		return Error, nil
	case "info", "":
		return Info, nil
	case "debug":
		return Debug, nil
	case "trace":
		return Trace, nil
	}
	return Info, fmt.Errorf("unknown log level %q", s)
}

// SetOutput redirects log output, mainly for tests.
func SetOutput(w io.Writer) {
	std.SetOutput(w)
}

// Enabled reports whether messages at l are written.
func Enabled(l Level) bool {
	return Verbosity() >= l
}

func logf(l Level, prefix, format string, args ...any) {
	if Enabled(l) {
		// depth 3: Output <- logf <- Errorf/Infof/... <- caller
		_ = std.Output(3, prefix+fmt.Sprintf(format, args...))
	}
}

// Errorf logs a failure that needs attention.
func Errorf(format string, args ...any) {
	logf(Error, "[ERROR] ", format, args...)
}

// Infof logs a lifecycle event.
func Infof(format string, args ...any) {
	logf(Info, "[INFO]  ", format, args...)
}

// Debugf logs diagnostic detail.
func Debugf(format string, args ...any) {
	logf(Debug, "[DEBUG] ", format, args...)
}

// Tracef logs very fine-grained detail. High volume.
func Tracef(format string, args ...any) {
	logf(Trace, "[TRACE] ", format, args...)
}
