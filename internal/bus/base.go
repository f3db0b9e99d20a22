// Package bus provides the common module-runtime contract every rover
// module embeds: a bounded log-emission channel, a module name, and a
// send-with-backpressure helper that degrades to a logged error instead of
// blocking forever when a receiver has gone away.
//
// The broadcast shutdown signal itself is plain context.Context
// cancellation (see internal/config and the repo-root main.go): closing a
// context's Done channel is observed by every module's select statement
// simultaneously and exactly once, which is the idiomatic Go rendering of
// a broadcast receiver and needs no bespoke type here.
package bus

import (
	"context"
	"time"

	"roverctl/internal/rovertypes"
)

// Base is embedded by every module's state struct. It owns the module's
// name (used as the log record's Module field and the log-file/stream
// topic suffix) and its handle to the shared log channel.
type Base struct {
	Name   string
	LogCh  chan<- rovertypes.LogRecord
}

// NewBase constructs a Base bound to the given module name and log sink.
func NewBase(name string, logCh chan<- rovertypes.LogRecord) Base {
	return Base{Name: name, LogCh: logCh}
}

// Log emits a LogRecord on the shared log channel. The send honors
// backpressure but never blocks past context cancellation, matching the
// module runtime's send policy: if the logger has gone away the record is
// simply dropped, since there is no lower sink to fall back to.
func (b Base) Log(ctx context.Context, level rovertypes.LogLevel, msg string) {
	rec := rovertypes.LogRecord{
		Timestamp: time.Now(),
		Level:     level,
		Module:    b.Name,
		Message:   msg,
	}
	select {
	case b.LogCh <- rec:
	case <-ctx.Done():
	}
}

// Stopped emits the mandatory terminal "Stopped" record every module must
// produce exactly once before its task ends. It is deliberately sent on a
// background context: shutdown is already in progress by the time this is
// called, so waiting on ctx.Done() here would make the record
// unobservable.
func (b Base) Stopped() {
	rec := rovertypes.LogRecord{
		Timestamp: time.Now(),
		Level:     rovertypes.LevelInfo,
		Module:    b.Name,
		Message:   "Stopped",
	}
	select {
	case b.LogCh <- rec:
	case <-time.After(50 * time.Millisecond):
	}
}

// Send attempts a backpressure-honoring send on ch, returning false (and
// leaving it to the caller to log the failure at Error level) if ctx is
// canceled before the send completes.
func Send[T any](ctx context.Context, ch chan<- T, v T) bool {
	select {
	case ch <- v:
		return true
	case <-ctx.Done():
		return false
	}
}
