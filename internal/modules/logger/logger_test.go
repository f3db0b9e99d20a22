package logger

import (
	"context"
	"testing"
	"time"

	"roverctl/internal/roverlog/schema"
	"roverctl/internal/rovertypes"
)

func TestRunFiltersRecordsBelowMinLevelBeforeWritingFile(t *testing.T) {
	logCh := make(chan rovertypes.LogRecord, 4)
	m := New(logCh, rovertypes.LevelWarn)

	fs, err := OpenFileSink(t.TempDir())
	if err != nil {
		t.Fatalf("OpenFileSink failed: %v", err)
	}
	m.AttachFile(fs)

	done := make(chan struct{})
	go func() {
		m.Run(context.Background())
		close(done)
	}()

	logCh <- rovertypes.LogRecord{Timestamp: time.Now(), Level: rovertypes.LevelInfo, Module: "A", Message: "filtered out"}
	logCh <- rovertypes.LogRecord{Timestamp: time.Now(), Level: rovertypes.LevelWarn, Module: "A", Message: "kept"}
	close(logCh)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("expected Run to return once LogCh is closed")
	}

	if fs.MessageCount() != 1 {
		t.Errorf("expected exactly 1 record at or above MinLevel to be written, got %d", fs.MessageCount())
	}
}

func TestOpenFileSinkUsesTheEmbeddedSchema(t *testing.T) {
	fs, err := OpenFileSink(t.TempDir())
	if err != nil {
		t.Fatalf("OpenFileSink failed: %v", err)
	}
	defer fs.Close()

	if len(schema.BFBS) == 0 {
		t.Fatal("expected the embedded schema to be non-empty")
	}
}
