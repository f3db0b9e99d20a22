package rovererr

import "testing"

func TestSentinelsAreDistinctAndNonEmpty(t *testing.T) {
	all := []error{
		ErrEmergencyLatched,
		ErrCriticalBattery,
		ErrObstacleTooClose,
		ErrLogFileUnavailable,
		ErrLogStreamUnavailable,
		ErrSchemaMissing,
		ErrLogPortInUse,
		ErrCalibrationUnavailable,
		ErrReceiverClosed,
	}

	seen := make(map[string]bool, len(all))
	for _, err := range all {
		if err == nil {
			t.Fatal("expected every sentinel to be non-nil")
		}
		if err.Error() == "" {
			t.Error("expected a non-empty message")
		}
		if seen[err.Error()] {
			t.Errorf("duplicate sentinel message: %q", err.Error())
		}
		seen[err.Error()] = true
	}
}
