package app

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// serviceName tags every record written by the app logger.
const serviceName = "lootgraph"

// parseLevel maps a configured level name onto slog's levels. slog's own
// text form is accepted too, so "warn", "WARN" and "info+2" all parse.
func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: must be 'debug', 'info', 'warn', or 'error'", s)
	}
	return level, nil
}

// newHandler picks the slog handler for format. Source positions are only
// recorded at debug level, where they help trace a build step.
func newHandler(format string, level slog.Level, w io.Writer) slog.Handler {
	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level <= slog.LevelDebug,
	}
	if format == "json" {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

// newLogger builds an isolated logger; the process-wide default is left
// alone. Unknown levels fall back to info, since NewConfig rejects them
// before an App is created.
func newLogger(levelStr, formatStr string, outW io.Writer) *slog.Logger {
	level, err := parseLevel(levelStr)
	if err != nil {
		level = slog.LevelInfo
	}
	return slog.New(newHandler(formatStr, level, outW)).With("service", serviceName)
}
