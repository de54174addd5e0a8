package logger

import (
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	defaultLogger zerolog.Logger
	once          sync.Once
)

// Init initializes the default logger writing structured console output to
// stderr. It ensures that the logger is initialized only once.
func Init() {
	once.Do(func() {
		level := parseLevel(os.Getenv("PAUTA_LOG_LEVEL"))
		defaultLogger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
			Level(level).
			With().Timestamp().Logger()
	})
}

// Get returns the initialized default logger, initializing it if needed.
func Get() zerolog.Logger {
	Init()
	return defaultLogger
}

// Info logs an informational message with optional key/value pairs.
func Info(msg string, args ...any) {
	l := Get()
	event(l.Info(), args).Msg(msg)
}

// Warn logs a warning message with optional key/value pairs.
func Warn(msg string, args ...any) {
	l := Get()
	event(l.Warn(), args).Msg(msg)
}

// Error logs an error message. A nil err is allowed and simply omitted.
func Error(msg string, err error, args ...any) {
	l := Get()
	e := l.Error()
	if err != nil {
		e = e.Err(err)
	}
	event(e, args).Msg(msg)
}

// Debug logs a debug message with optional key/value pairs.
func Debug(msg string, args ...any) {
	l := Get()
	event(l.Debug(), args).Msg(msg)
}

// event attaches alternating key/value args as fields. A trailing key
// without a value is ignored.
func event(e *zerolog.Event, args []any) *zerolog.Event {
	for i := 0; i+1 < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok {
			continue
		}
		e = e.Interface(key, args[i+1])
	}
	return e
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(s) {
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
