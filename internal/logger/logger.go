// Package logger configures the process-wide zerolog logger used by every
// other package. Console output by default; an optional file sink mirrors the
// stream for long-running daemon use.
package logger

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	mu  sync.Mutex
	log = newConsole(os.Stderr)
)

func newConsole(w io.Writer) zerolog.Logger {
	cw := zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	return zerolog.New(cw).Level(zerolog.InfoLevel).With().Timestamp().Logger()
}

// Get returns the current process logger.
func Get() zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()
	return log
}

// SetVerbose switches debug-level logging on or off.
func SetVerbose(verbose bool) {
	mu.Lock()
	defer mu.Unlock()
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	log = log.Level(level)
}

// SetOutputFile mirrors log output into the given file, appending. The
// console stream stays active.
func SetOutputFile(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return err
	}

	mu.Lock()
	defer mu.Unlock()
	cw := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	multi := zerolog.MultiLevelWriter(cw, f)
	log = zerolog.New(multi).Level(log.GetLevel()).With().Timestamp().Logger()
	return nil
}
