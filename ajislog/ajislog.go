// Package ajislog builds the slog.Handler a long-running parse or
// serialize session logs through, following MacroPower-x/log's
// Format/Handler split (see DESIGN.md). A parse that runs for the
// lifetime of a process benefits from rotation, so an optional
// lumberjack-backed file sink is offered alongside stderr/stdout.
package ajislog

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Format selects the slog.Handler's output shape.
type Format string

const (
	// FormatJSON emits one JSON object per log record.
	FormatJSON Format = "json"
	// FormatLogfmt emits logfmt-style key=value records.
	FormatLogfmt Format = "logfmt"
)

var (
	// ErrUnknownLevel indicates an unrecognized log level string.
	ErrUnknownLevel = errors.New("ajislog: unknown log level")
	// ErrUnknownFormat indicates an unrecognized log format string.
	ErrUnknownFormat = errors.New("ajislog: unknown log format")
)

// RotationConfig configures the lumberjack-backed rotating file sink.
// A zero value disables rotation; callers that want one must set
// Filename.
type RotationConfig struct {
	Filename   string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

func (r RotationConfig) enabled() bool { return r.Filename != "" }

func (r RotationConfig) sink() io.Writer {
	return &lumberjack.Logger{
		Filename:   r.Filename,
		MaxSize:    nonZero(r.MaxSizeMB, 100),
		MaxBackups: r.MaxBackups,
		MaxAge:     r.MaxAgeDays,
		Compress:   r.Compress,
	}
}

func nonZero(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

// New builds a *slog.Logger writing to w in the given format at level,
// additionally writing to a rotating file if rotation.enabled().
func New(w io.Writer, level slog.Level, format Format, rotation RotationConfig) *slog.Logger {
	dest := w
	if rotation.enabled() {
		dest = io.MultiWriter(w, rotation.sink())
	}
	return slog.New(handlerFor(dest, level, format))
}

func handlerFor(w io.Writer, level slog.Level, format Format) slog.Handler {
	opts := &slog.HandlerOptions{AddSource: true, Level: level}
	switch format {
	case FormatLogfmt:
		return slog.NewTextHandler(w, opts)
	default:
		return slog.NewJSONHandler(w, opts)
	}
}

// ParseLevel parses a case-insensitive level name.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownLevel, s)
}

// ParseFormat parses a case-insensitive format name.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case FormatJSON:
		return FormatJSON, nil
	case FormatLogfmt:
		return FormatLogfmt, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}
