// Package logger holds the process logger. main builds it with Init; the
// rest of the process reads it back with Get.
package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Options configures the process logger.
type Options struct {
	// Level is one of trace, debug, info, warn or error. Anything else is info.
	Level string
	// Pretty selects the colour console writer instead of JSON lines.
	Pretty bool
	// Output receives log lines. Nil means stdout.
	Output io.Writer
	// Service is stamped on every line when non-empty.
	Service string
}

var (
	mu      sync.Mutex
	current *zerolog.Logger
)

// Init builds the process logger. Later calls return the logger from the
// first call and ignore their options.
func Init(opts Options) zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()
	if current == nil {
		l := build(opts)
		current = &l
	}
	return *current
}

// Get returns the process logger and panics before Init.
func Get() zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()
	if current == nil {
		panic("logger: Get() called before Init()")
	}
	return *current
}

// Reset drops the process logger so tests can call Init again.
func Reset() {
	mu.Lock()
	current = nil
	mu.Unlock()
}

func build(opts Options) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	var w io.Writer = os.Stdout
	if opts.Output != nil {
		w = opts.Output
	}
	if opts.Pretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	lvl := ParseLevel(opts.Level)
	zerolog.SetGlobalLevel(lvl)

	fields := zerolog.New(w).Level(lvl).With().Timestamp().Caller()
	if opts.Service != "" {
		fields = fields.Str("service", opts.Service)
	}
	return fields.Logger()
}

// ParseLevel reads a level name with zerolog's parser. It accepts "warning"
// for warn and falls back to info for empty, unknown or non-logging levels.
func ParseLevel(s string) zerolog.Level {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "warning" {
		name = "warn"
	}
	lvl, err := zerolog.ParseLevel(name)
	if err != nil {
		return zerolog.InfoLevel
	}
	switch lvl {
	case zerolog.TraceLevel, zerolog.DebugLevel, zerolog.InfoLevel, zerolog.WarnLevel, zerolog.ErrorLevel:
		return lvl
	default:
		return zerolog.InfoLevel
	}
}
