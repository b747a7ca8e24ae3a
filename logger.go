package sprig

import (
	"io"
	"sync/atomic"

	"github.com/charmbracelet/log"
)

// newNopLogger creates a logger that silently discards all output.
func newNopLogger() *log.Logger {
	l := log.New(io.Discard)
	l.SetLevel(log.FatalLevel)
	return l
}

// loggerPtr stores the active logger. Accessed atomically so that SetLogger
// can be called from a different goroutine than the frame loop.
var loggerPtr atomic.Pointer[log.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for sprig and its adapter packages.
// By default sprig produces no log output. Pass nil to restore that.
//
// Levels used:
//   - DebugLevel: skipped hit-test matrices, frame timings in debug mode
//   - InfoLevel: content loaded, viewport resized
//   - WarnLevel: degenerate geometry skipped, missing parent layouts
func SetLogger(l *log.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger used by sprig.
func Logger() *log.Logger {
	return loggerPtr.Load()
}
