package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/danielpatrickdp/convo-terrain/internal/config"
)

func TestFor_HasComponent(t *testing.T) {
	var buf bytes.Buffer
	Setup(config.LoggingConfig{Level: "info", Format: "text"}, &buf)

	For(ComponentLandscape).Info("hello")

	output := buf.String()
	if !strings.Contains(output, "component=landscape") {
		t.Errorf("expected component=landscape in output, got: %s", output)
	}
	if !strings.Contains(output, "hello") {
		t.Errorf("expected 'hello' in output, got: %s", output)
	}
}

func TestSetup_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	Setup(config.LoggingConfig{Level: "info", Format: "json"}, &buf)

	For(ComponentCluster).Info("json check")

	output := buf.String()
	if !strings.Contains(output, `"level":"INFO"`) {
		t.Errorf("expected JSON level in output, got: %s", output)
	}
	if !strings.Contains(output, `"component":"cluster"`) {
		t.Errorf("expected JSON component in output, got: %s", output)
	}
}

func TestSetup_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	Setup(config.LoggingConfig{Level: "warn", Format: "text"}, &buf)

	For(ComponentSignals).Info("dropped")
	if buf.Len() != 0 {
		t.Errorf("expected info to be filtered at warn level, got: %s", buf.String())
	}
}

func TestSetup_DebugAddsSource(t *testing.T) {
	var buf bytes.Buffer
	Setup(config.LoggingConfig{Level: "debug", Format: "text"}, &buf)
	For(ComponentScorer).Debug("traced")
	if !strings.Contains(buf.String(), "source=") {
		t.Errorf("expected source attribute at debug level, got: %s", buf.String())
	}

	buf.Reset()
	Setup(config.LoggingConfig{Level: "info", Format: "text"}, &buf)
	For(ComponentScorer).Info("plain")
	if strings.Contains(buf.String(), "source=") {
		t.Errorf("expected no source attribute at info level, got: %s", buf.String())
	}
}

func TestSetup_ReturnsDefault(t *testing.T) {
	var buf bytes.Buffer
	logger := Setup(config.DefaultConfig().Logging, &buf)
	if logger != slog.Default() {
		t.Error("expected Setup to install the returned logger as default")
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"loud":    slog.LevelInfo,
		"":        slog.LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
