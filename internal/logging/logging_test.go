package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestNew_QuietByDefault(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, false)

	log.Debug().Msg("debug message")
	log.Info().Msg("info message")
	if buf.Len() != 0 {
		t.Errorf("expected no output below warn level, got %q", buf.String())
	}

	log.Warn().Msg("warn message")
	if !strings.Contains(buf.String(), "warn message") {
		t.Errorf("expected warn message, got %q", buf.String())
	}
}

func TestNew_Debug(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, true)

	log.Debug().Str("task", "call bank").Msg("task placed")
	out := buf.String()
	if !strings.Contains(out, "task placed") {
		t.Errorf("expected debug message, got %q", out)
	}
	if !strings.Contains(out, "task=") {
		t.Errorf("expected task field, got %q", out)
	}
}
