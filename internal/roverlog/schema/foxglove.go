// Package schema hand-builds the foxglove.Log flatbuffer schema's wire
// encoding. No .fbs compiler is available in this environment, so the
// Time and Log tables are constructed field-by-field against the
// flatbuffers Go runtime builder API instead of generated accessor code,
// mirroring the table layout the original prototype's own generated
// time_generated.rs / log_generated.rs exposed (infra/foxglove/mod.rs).
package schema

import (
	"time"

	flatbuffers "github.com/google/flatbuffers/go"
)

// LogLevel mirrors the foxglove.Log schema's level enum.
type LogLevel byte

const (
	LogLevelUnknown LogLevel = 0
	LogLevelDebug   LogLevel = 1
	LogLevelInfo    LogLevel = 2
	LogLevelWarning LogLevel = 3
	LogLevelError   LogLevel = 4
	LogLevelFatal   LogLevel = 5
)

// Table field offsets, in declaration order, matching the foxglove.Log
// schema: timestamp(Time), level(LogLevel), message(string), name(string),
// file(string), line(uint32).
const (
	logFieldTimestamp = 0
	logFieldLevel     = 1
	logFieldMessage   = 2
	logFieldName      = 3
	logFieldFile      = 4
	logFieldLine      = 5
	logFieldCount     = 6
)

// the Time table: sec(uint32), nsec(uint32).
const (
	timeFieldSec  = 0
	timeFieldNsec = 1
	timeFieldCount = 2
)

// BFBSSchemaName is the schema name MCAP channels are registered under.
const BFBSSchemaName = "foxglove.Log"

// EncodingFlatbuffer is the MCAP channel message encoding for this schema.
const EncodingFlatbuffer = "flatbuffer"

// EncodeLog builds a foxglove.Log flatbuffer message for one LogRecord.
//
// Field and struct creation must happen in flatbuffers' bottom-up build
// order: strings and the nested Time struct are written before the
// enclosing Log table's StartObject/EndObject pair, matching how
// generated flatbuffers code sequences these calls.
func EncodeLog(ts time.Time, level LogLevel, module, message string) []byte {
	b := flatbuffers.NewBuilder(256)

	nameOff := b.CreateString(module)
	messageOff := b.CreateString(message)

	dur := ts.Sub(time.Unix(0, 0))
	sec := uint32(dur / time.Second)
	nsec := uint32(dur % time.Second)

	// Time is a fixed-layout struct: two uint32 fields, written inline.
	b.Prep(4, timeFieldCount*4)
	b.PrependUint32(nsec)
	b.PrependUint32(sec)
	timeOff := b.Offset()

	b.StartObject(logFieldCount)
	b.PrependStructSlot(logFieldTimestamp, timeOff, 0)
	b.PrependByteSlot(logFieldLevel, byte(level), 0)
	b.PrependUOffsetTSlot(logFieldMessage, messageOff, 0)
	b.PrependUOffsetTSlot(logFieldName, nameOff, 0)
	b.PrependUint32Slot(logFieldLine, 0, 0)
	logOff := b.EndObject()

	b.Finish(logOff)
	return b.FinishedBytes()
}
