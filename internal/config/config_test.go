package config

import (
	"os"
	"testing"
)

func TestLoadFallsBackToDefaults(t *testing.T) {
	os.Unsetenv("ROVER_LOG_DIR")
	os.Unsetenv("ROVER_LOG_STREAM_PORT")
	os.Unsetenv("MONGODB_URI")
	os.Unsetenv("MONGODB_DATABASE")

	cfg := Load()

	if cfg.LogDir != "." {
		t.Errorf("expected default log dir %q, got %q", ".", cfg.LogDir)
	}
	if cfg.LogStreamPort != 8765 {
		t.Errorf("expected default stream port 8765, got %d", cfg.LogStreamPort)
	}
	if cfg.MongoURI != "mongodb://localhost:27017" {
		t.Errorf("expected default mongo URI, got %q", cfg.MongoURI)
	}
}

func TestLoadHonorsEnvironmentOverrides(t *testing.T) {
	os.Setenv("ROVER_LOG_DIR", "/tmp/rover-logs")
	defer os.Unsetenv("ROVER_LOG_DIR")
	os.Setenv("ROVER_LOG_STREAM_PORT", "9999")
	defer os.Unsetenv("ROVER_LOG_STREAM_PORT")

	cfg := Load()

	if cfg.LogDir != "/tmp/rover-logs" {
		t.Errorf("expected overridden log dir, got %q", cfg.LogDir)
	}
	if cfg.LogStreamPort != 9999 {
		t.Errorf("expected overridden stream port 9999, got %d", cfg.LogStreamPort)
	}
}

func TestEnvIntOrFallsBackOnInvalidValue(t *testing.T) {
	os.Setenv("ROVER_LOG_STREAM_PORT", "not-a-number")
	defer os.Unsetenv("ROVER_LOG_STREAM_PORT")

	if got := envIntOr("ROVER_LOG_STREAM_PORT", 1234); got != 1234 {
		t.Errorf("expected fallback 1234 on parse failure, got %d", got)
	}
}
