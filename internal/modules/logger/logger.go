// Package logger implements Logger, the single consumer of every module's
// LogRecord stream. It fans each record out to the console, the live
// websocket stream, and the durable MCAP file, in that order: the stream
// sink must see a record before the (slower) file write, so a connected
// operator never lags disk I/O.
package logger

import (
	"context"
	"fmt"

	"roverctl/internal/roverlog/consolesink"
	"roverctl/internal/roverlog/filesink"
	"roverctl/internal/roverlog/schema"
	"roverctl/internal/roverlog/streamsink"
	"roverctl/internal/rovererr"
	"roverctl/internal/rovertypes"
)

// Module drains LogCh in arrival order and dispatches to every configured
// sink. A nil stream or file sink is simply skipped, allowing this module
// to run in a degraded mode if either failed to initialize.
type Module struct {
	LogCh chan rovertypes.LogRecord

	console *consolesink.Sink
	stream  *streamsink.Sink
	file    *filesink.Sink

	MinLevel rovertypes.LogLevel
}

// New wires the console sink unconditionally; stream and file sinks are
// attached separately since they can fail to initialize independently.
func New(logCh chan rovertypes.LogRecord, minLevel rovertypes.LogLevel) *Module {
	return &Module{
		LogCh:    logCh,
		console:  consolesink.New(),
		MinLevel: minLevel,
	}
}

// AttachStream enables the live websocket sink.
func (m *Module) AttachStream(s *streamsink.Sink) { m.stream = s }

// AttachFile enables the durable MCAP sink.
func (m *Module) AttachFile(s *filesink.Sink) { m.file = s }

// OpenFileSink is a convenience wrapper grounding file-sink construction
// in the embedded schema descriptor. Callers distinguish a missing schema
// from an ordinary file-system failure with errors.Is against
// rovererr.ErrSchemaMissing / rovererr.ErrLogFileUnavailable.
func OpenFileSink(dir string) (*filesink.Sink, error) {
	if len(schema.BFBS) == 0 {
		return nil, rovererr.ErrSchemaMissing
	}
	sink, err := filesink.Open(dir, schema.BFBS)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", rovererr.ErrLogFileUnavailable, err)
	}
	return sink, nil
}

// Run drains LogCh until it is closed, then finalizes the file sink. The
// shutdown sequence closes LogCh only after every other module has
// confirmed it stopped sending, so this loop naturally drains the last
// in-flight records before returning.
func (m *Module) Run(ctx context.Context) {
	for rec := range m.LogCh {
		if rec.Level < m.MinLevel {
			continue
		}

		m.console.Write(rec)

		if m.stream != nil {
			m.stream.Publish(rec)
		}

		if m.file != nil {
			if err := m.file.Write(rec); err != nil {
				fmt.Printf("logger: file sink write failed: %v\n", err)
			}
		}
	}

	if m.file != nil {
		if err := m.file.Close(); err != nil {
			fmt.Printf("logger: file sink close failed: %v\n", err)
		}
	}
}
