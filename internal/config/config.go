// Package config loads rover runtime configuration from the environment.
//
// This mirrors the teacher server's shared.InitConfig pattern: a single
// struct populated once at startup from environment variables (loaded via
// godotenv), with literal defaults matching the design's stated constants.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Channel capacities, per the module runtime contract.
const (
	DataQueueCapacity     = 32
	LogQueueCapacity      = 256
	ShutdownQueueCapacity = 16
)

// Safety thresholds. These are design constants, not tunables: they are
// package constants and are not part of Config.
const (
	CriticalBatteryThreshold = 0.10
	LowBatteryWarnThreshold  = 0.30
	ObstacleTooCloseMeters   = 0.50
	DistanceWarnMeters       = 0.30
)

// ShutdownDrainWindow is how long main waits for queued messages to drain
// after the shutdown broadcast before it forces process exit.
const ShutdownDrainWindow = 200 * time.Millisecond

// Config is the full set of environment-overridable runtime settings.
type Config struct {
	Debug        bool
	LogDir       string
	LogStreamPort int
	MongoURI     string
	MongoDB      string
}

// Load reads a .env file if present (missing is not an error, matching the
// teacher's startup behavior) and populates Config from the environment,
// falling back to the spec's literal defaults.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		Debug:         os.Getenv("DEBUG") == "true",
		LogDir:        envOr("ROVER_LOG_DIR", "."),
		LogStreamPort: envIntOr("ROVER_LOG_STREAM_PORT", 8765),
		MongoURI:      envOr("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDB:       envOr("MONGODB_DATABASE", "roverctl"),
	}
	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
