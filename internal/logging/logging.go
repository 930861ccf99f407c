// Package logging configures the process-wide zerolog logger.
//
// The terminal belongs to the UI while the program runs, so the runtime
// profile writes to a log file. Tests log to the test output at debug.
package logging

import (
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	EnvLogLevel   = "SLIDES_LOG_LEVEL"
	EnvLogNoColor = "SLIDES_LOG_NOCOLOR"
)

type Profile int

const (
	ProfileRuntime Profile = iota
	ProfileTest
)

// Options control where and how much is logged.
type Options struct {
	Profile Profile
	Level   string
	Out     io.Writer
}

// Configure builds the logger for the given options, installs it as the
// zerolog global and returns it.
func Configure(opts Options) zerolog.Logger {
	level, ok := ParseLevel(opts.Level)
	if !ok {
		level = defaultLevel(opts.Profile)
	}
	if lvl, ok := ParseLevel(os.Getenv(EnvLogLevel)); ok {
		level = lvl
	}

	out := opts.Out
	if out == nil {
		out = os.Stderr
	}

	noColor := true
	if v, ok := parseBool(os.Getenv(EnvLogNoColor)); ok {
		noColor = v
	}

	writer := zerolog.ConsoleWriter{
		Out:        out,
		NoColor:    noColor,
		TimeFormat: time.RFC3339,
	}

	logger := zerolog.New(writer).Level(level).With().Timestamp().Str("app", "slides").Logger()
	log.Logger = logger
	return logger
}

// OpenFile opens (appending) the runtime log file.
func OpenFile(path string) (*os.File, error) {
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}

// Component returns a child logger tagged with a component name.
func Component(logger zerolog.Logger, name string) zerolog.Logger {
	return logger.With().Str("component", name).Logger()
}

func defaultLevel(profile Profile) zerolog.Level {
	if profile == ProfileTest {
		return zerolog.DebugLevel
	}
	return zerolog.InfoLevel
}

// ParseLevel maps a level name to a zerolog level.
func ParseLevel(raw string) (zerolog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return zerolog.InfoLevel, false
	case "trace":
		return zerolog.TraceLevel, true
	case "debug":
		return zerolog.DebugLevel, true
	case "info":
		return zerolog.InfoLevel, true
	case "warn", "warning":
		return zerolog.WarnLevel, true
	case "error":
		return zerolog.ErrorLevel, true
	case "disabled", "off", "none":
		return zerolog.Disabled, true
	default:
		return zerolog.InfoLevel, false
	}
}

func parseBool(raw string) (bool, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false, false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return v, true
}
