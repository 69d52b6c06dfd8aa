package ajislog_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajis-lang/ajis-go/ajislog"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input       string
		expected    slog.Level
		expectError bool
	}{
		"error level":     {input: "error", expected: slog.LevelError},
		"warn level":      {input: "warn", expected: slog.LevelWarn},
		"warning level":   {input: "warning", expected: slog.LevelWarn},
		"info level":      {input: "info", expected: slog.LevelInfo},
		"debug level":     {input: "debug", expected: slog.LevelDebug},
		"case insensitive": {input: "INFO", expected: slog.LevelInfo},
		"unknown level":   {input: "unknown", expectError: true},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			lvl, err := ajislog.ParseLevel(tc.input)
			if tc.expectError {
				require.Error(t, err)
				require.ErrorIs(t, err, ajislog.ErrUnknownLevel)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, lvl)
		})
	}
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input       string
		expected    ajislog.Format
		expectError bool
	}{
		"json format":   {input: "json", expected: ajislog.FormatJSON},
		"logfmt format": {input: "logfmt", expected: ajislog.FormatLogfmt},
		"case insensitive": {input: "JSON", expected: ajislog.FormatJSON},
		"unknown format": {input: "xml", expectError: true},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			f, err := ajislog.ParseFormat(tc.input)
			if tc.expectError {
				require.Error(t, err)
				require.ErrorIs(t, err, ajislog.ErrUnknownFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, f)
		})
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		format    ajislog.Format
		checkFunc func(*testing.T, []byte)
	}{
		"json handler": {
			format: ajislog.FormatJSON,
			checkFunc: func(t *testing.T, out []byte) {
				t.Helper()
				var entry map[string]any
				require.NoError(t, json.Unmarshal(out, &entry))
				assert.Equal(t, "segment boundary", entry["msg"])
			},
		},
		"logfmt handler": {
			format: ajislog.FormatLogfmt,
			checkFunc: func(t *testing.T, out []byte) {
				t.Helper()
				assert.Contains(t, string(out), "msg=\"segment boundary\"")
			},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := ajislog.New(&buf, slog.LevelDebug, tc.format, ajislog.RotationConfig{})
			logger.Debug("segment boundary")
			tc.checkFunc(t, buf.Bytes())
		})
	}
}

func TestNewLevelFiltering(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := ajislog.New(&buf, slog.LevelWarn, ajislog.FormatJSON, ajislog.RotationConfig{})
	logger.Debug("per-segment noise")
	assert.Empty(t, buf.String())

	logger.Warn("recoverable diagnostic")
	assert.Contains(t, buf.String(), "recoverable diagnostic")
}
