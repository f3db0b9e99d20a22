package consolesink

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"roverctl/internal/rovertypes"
)

func TestWriteIncludesLevelModuleAndMessage(t *testing.T) {
	var buf bytes.Buffer
	s := &Sink{w: &buf}

	s.Write(rovertypes.LogRecord{
		Timestamp: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC),
		Level:     rovertypes.LevelWarn,
		Module:    "TestModule",
		Message:   "something happened",
	})

	out := buf.String()
	if !strings.Contains(out, "WARN") {
		t.Errorf("expected level rendered in output, got %q", out)
	}
	if !strings.Contains(out, "TestModule") {
		t.Errorf("expected module name rendered in output, got %q", out)
	}
	if !strings.Contains(out, "something happened") {
		t.Errorf("expected message rendered in output, got %q", out)
	}
}

func TestWriteFallsBackForUnknownLevel(t *testing.T) {
	var buf bytes.Buffer
	s := &Sink{w: &buf}

	s.Write(rovertypes.LogRecord{Level: rovertypes.LogLevel(99), Module: "M", Message: "x"})

	if buf.Len() == 0 {
		t.Error("expected output even for an unrecognized level")
	}
}
