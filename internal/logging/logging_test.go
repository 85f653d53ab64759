package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestSetupJSON(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.DebugLevel)

	var buf bytes.Buffer
	logger, err := setup(&buf, "warn", "json")
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	logger.Info().Msg("hidden")
	logger.Warn().Str("ticker", "AAPL").Msg("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info message logged at warn level: %q", out)
	}
	if !strings.Contains(out, `"ticker":"AAPL"`) || !strings.Contains(out, `"message":"shown"`) {
		t.Errorf("expected json warning, got %q", out)
	}
}

func TestSetupConsole(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.DebugLevel)

	var buf bytes.Buffer
	logger, err := setup(&buf, "INFO", "console")
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	logger.Info().Msg("hello")
	if out := buf.String(); !strings.Contains(out, "hello") || strings.HasPrefix(out, "{") {
		t.Errorf("expected console output, got %q", out)
	}
}

func TestSetupErrors(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.DebugLevel)

	if _, err := setup(&bytes.Buffer{}, "loud", "json"); err == nil {
		t.Error("expected level error")
	}
	if _, err := setup(&bytes.Buffer{}, "info", "xml"); err == nil {
		t.Error("expected format error")
	}
}
