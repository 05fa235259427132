package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func restoreGlobal(t *testing.T) {
	t.Helper()
	prev, prevLevel := log.Logger, zerolog.GlobalLevel()
	t.Cleanup(func() {
		log.Logger = prev
		zerolog.SetGlobalLevel(prevLevel)
	})
}

func TestComponentTagsLines(t *testing.T) {
	restoreGlobal(t)
	var buf bytes.Buffer
	Setup(&buf, "debug")

	logger := Component("chart")
	logger.Info().Msg("redrawn")

	out := buf.String()
	if !strings.Contains(out, "redrawn") || !strings.Contains(out, "component=chart") {
		t.Fatalf("unexpected log line: %q", out)
	}
}

func TestSetupUnknownLevelFallsBackToInfo(t *testing.T) {
	restoreGlobal(t)
	var buf bytes.Buffer
	Setup(&buf, "loud")

	if zerolog.GlobalLevel() != zerolog.InfoLevel {
		t.Fatalf("expected info level, got %s", zerolog.GlobalLevel())
	}
	log.Debug().Msg("hidden")
	if buf.Len() != 0 {
		t.Fatalf("debug line should be filtered, got %q", buf.String())
	}
}
