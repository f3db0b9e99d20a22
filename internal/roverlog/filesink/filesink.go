// Package filesink is the Logger module's durable sink: a chunked, indexed
// MCAP container with one channel per rover module, each carrying
// flatbuffer-encoded foxglove.Log messages.
//
// Grounded on infra/logger.rs's use of the Rust mcap crate; this is the
// direct Go counterpart, github.com/foxglove/mcap/go/mcap.
package filesink

import (
	"fmt"
	"os"
	"time"

	"github.com/foxglove/mcap/go/mcap"

	"roverctl/internal/roverlog/schema"
	"roverctl/internal/rovertypes"
)

// Sink writes LogRecords to an MCAP file, lazily creating one channel per
// module the first time that module logs.
type Sink struct {
	file     *os.File
	writer   *mcap.Writer
	schemaID uint16
	channels map[string]uint16
	seq      map[string]uint32
	count    uint64
}

// Open creates a new MCAP file under dir named log_YYMMDD_HHMMSS.mcap and
// registers the foxglove.Log binary schema. schemaBytes is the embedded
// (or loaded-from-disk) .bfbs schema descriptor; Open registers it as given
// and does not check it (logger.OpenFileSink rejects an empty schema before
// calling Open). A non-nil error leaves the caller without a file sink.
func Open(dir string, schemaBytes []byte) (*Sink, error) {
	filename := fmt.Sprintf("log_%s.mcap", time.Now().Format("060102_150405"))
	path := filename
	if dir != "" && dir != "." {
		path = dir + string(os.PathSeparator) + filename
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("filesink: create %s: %w", path, err)
	}

	w, err := mcap.NewWriter(f, &mcap.WriterOptions{Chunked: true, ChunkSize: 1 << 20})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("filesink: new mcap writer: %w", err)
	}
	if err := w.WriteHeader(&mcap.Header{Profile: "", Library: "roverctl"}); err != nil {
		f.Close()
		return nil, fmt.Errorf("filesink: write header: %w", err)
	}

	schemaID := uint16(1)
	if err := w.WriteSchema(&mcap.Schema{
		ID:       schemaID,
		Name:     schema.BFBSSchemaName,
		Encoding: schema.EncodingFlatbuffer,
		Data:     schemaBytes,
	}); err != nil {
		f.Close()
		return nil, fmt.Errorf("filesink: write schema: %w", err)
	}

	return &Sink{
		file:     f,
		writer:   w,
		schemaID: schemaID,
		channels: make(map[string]uint16),
		seq:      make(map[string]uint32),
	}, nil
}

// Write encodes and appends one LogRecord under its module's topic.
func (s *Sink) Write(rec rovertypes.LogRecord) error {
	channelID, err := s.channelFor(rec.Module)
	if err != nil {
		return err
	}

	data := schema.EncodeLog(rec.Timestamp, schema.FromRoverLevel(rec.Level), rec.Module, rec.Message)
	nanos := uint64(rec.Timestamp.UnixNano())

	s.seq[rec.Module]++
	if err := s.writer.WriteMessage(&mcap.Message{
		ChannelID:   channelID,
		Sequence:    s.seq[rec.Module],
		LogTime:     nanos,
		PublishTime: nanos,
		Data:        data,
	}); err != nil {
		return fmt.Errorf("filesink: write message: %w", err)
	}
	s.count++
	return nil
}

func (s *Sink) channelFor(module string) (uint16, error) {
	if id, ok := s.channels[module]; ok {
		return id, nil
	}
	topic := "roverOS/" + module
	id := uint16(len(s.channels) + 1)
	if err := s.writer.WriteChannel(&mcap.Channel{
		ID:              id,
		SchemaID:        s.schemaID,
		Topic:           topic,
		MessageEncoding: schema.EncodingFlatbuffer,
		Metadata:        map[string]string{},
	}); err != nil {
		return 0, fmt.Errorf("filesink: write channel for %s: %w", module, err)
	}
	s.channels[module] = id
	return id, nil
}

// Close finalizes the MCAP file: writes the summary/index footer so the
// file is seekable and indexed, then closes the underlying file handle.
// If finalization fails, the error is returned but the file remains
// replayable (non-indexed), per the spec's degraded-but-not-fatal design.
func (s *Sink) Close() error {
	defer s.file.Close()
	return s.writer.Close()
}

// MessageCount returns how many records have been written so far.
func (s *Sink) MessageCount() uint64 { return s.count }
