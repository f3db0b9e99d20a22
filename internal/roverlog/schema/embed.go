package schema

import _ "embed"

// BFBS is the compiled binary schema descriptor for the foxglove.Log
// flatbuffer table, embedded at build time per the external-interfaces
// design (no separate schema-loading step at runtime). An empty descriptor
// here is a fatal-init condition: logger.OpenFileSink returns
// rovererr.ErrSchemaMissing for it and main exits before spawning modules.
//go:embed log.bfbs
var BFBS []byte
