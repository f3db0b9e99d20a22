// Package shared provides configuration management shared by the debug
// helpers and the calibration store's MongoDB connection pool.
//
// The bulk of roverctl's runtime configuration lives in internal/config;
// this file keeps only the process-wide debug flag and the connection
// pool sizing the teacher server's mongodb.go already relied on.
package shared

import "os"

// DEBUG_MODE controls debug logging and development features throughout
// roverctl. Set via the DEBUG environment variable and should not be
// modified at runtime once InitConfig has run.
var DEBUG_MODE = false

const (
	MONGODB_MIN_POOL_SIZE = 2
	MONGODB_MAX_POOL_SIZE = 10
)

// InitConfig loads the debug flag from the environment. Call once during
// startup, before any module is spawned.
func InitConfig() {
	DEBUG_MODE = os.Getenv("DEBUG") == "true"
}
