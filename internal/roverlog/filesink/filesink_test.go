package filesink

import (
	"testing"
	"time"

	"roverctl/internal/roverlog/schema"
	"roverctl/internal/rovertypes"
)

func TestOpenWriteCloseRoundTrips(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(dir, schema.BFBS)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	rec := rovertypes.LogRecord{
		Timestamp: time.Now(),
		Level:     rovertypes.LevelInfo,
		Module:    "TestModule",
		Message:   "hello",
	}
	if err := s.Write(rec); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := s.Write(rec); err != nil {
		t.Fatalf("second Write failed: %v", err)
	}

	if s.MessageCount() != 2 {
		t.Errorf("expected MessageCount 2, got %d", s.MessageCount())
	}

	if err := s.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
}

func TestWriteReusesChannelPerModule(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(dir, schema.BFBS)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer s.Close()

	id1, err := s.channelFor("ModuleA")
	if err != nil {
		t.Fatalf("channelFor failed: %v", err)
	}
	id2, err := s.channelFor("ModuleA")
	if err != nil {
		t.Fatalf("channelFor failed: %v", err)
	}
	if id1 != id2 {
		t.Errorf("expected the same channel id reused for the same module, got %d and %d", id1, id2)
	}

	id3, err := s.channelFor("ModuleB")
	if err != nil {
		t.Fatalf("channelFor failed: %v", err)
	}
	if id3 == id1 {
		t.Error("expected a distinct channel id for a different module")
	}
}
