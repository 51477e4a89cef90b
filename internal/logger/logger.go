// Package logger provides the process-wide zerolog logger.
//
// Call Init once at startup, then Get anywhere else.
package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

type Options struct {
	// Level is one of trace, debug, info, warn, error. Defaults to info.
	Level string
	// Pretty switches to coloured console output; JSON otherwise.
	Pretty bool
	// Output defaults to os.Stdout.
	Output io.Writer
}

var (
	current atomic.Pointer[zerolog.Logger]
	once    sync.Once
	nop     = zerolog.Nop()
)

// Init builds the logger on first call; later calls return the same logger.
func Init(opts Options) *zerolog.Logger {
	once.Do(func() {
		zerolog.TimeFieldFormat = time.RFC3339Nano

		out := opts.Output
		if out == nil {
			out = os.Stdout
		}
		if opts.Pretty {
			out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
		}

		l := zerolog.New(out).
			Level(parseLevel(opts.Level)).
			With().
			Timestamp().
			Logger()
		current.Store(&l)
	})
	return Get()
}

// Get returns the logger, or a disabled logger if Init was never called
// (as in package tests).
func Get() *zerolog.Logger {
	if l := current.Load(); l != nil {
		return l
	}
	return &nop
}

// Reset forgets the current logger. Tests only.
func Reset() {
	once = sync.Once{}
	current.Store(nil)
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
