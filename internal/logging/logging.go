package logging

import (
	"io"
	"log/slog"
	"os"

	"github.com/danielpatrickdp/convo-terrain/internal/config"
)

// #region components

// Component names the subsystem a log line came from.
type Component string

const (
	ComponentCLI         Component = "cli"
	ComponentLandscape   Component = "landscape"
	ComponentSignals     Component = "signals"
	ComponentScorer      Component = "scorer"
	ComponentCluster     Component = "cluster"
	ComponentAssignments Component = "assignments"
)

// #endregion components

// #region setup

// Setup installs the slog default described by cfg and returns it. Output
// goes to os.Stderr when w is nil. Debug level also records the call site.
func Setup(cfg config.LoggingConfig, w io.Writer) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}
	level := ParseLevel(cfg.Level)
	opts := &slog.HandlerOptions{Level: level, AddSource: level <= slog.LevelDebug}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// For returns the default logger tagged with c.
func For(c Component) *slog.Logger {
	return slog.Default().With(slog.String("component", string(c)))
}

// ParseLevel maps debug/info/warn/error onto slog levels, defaulting to info.
func ParseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// #endregion setup
