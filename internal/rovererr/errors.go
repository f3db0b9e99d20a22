// Package rovererr defines sentinel errors shared across rover modules, in
// the same flat-taxonomy style as the teacher server's shared package:
// errors are grouped by functional area and compared with errors.Is, never
// by string matching.
package rovererr

import "errors"

// Safety rejection errors.
//
// These name the rejection reasons of SafetyController's validation
// pipeline, which logs them rather than returning them. A rejected
// behavior is never retried by the sender; the upstream module is expected
// to reissue the behavior once conditions change.
var (
	// ErrEmergencyLatched indicates the emergency-stop latch is engaged;
	// every BehaviorCommand is rejected until a Resume is observed.
	ErrEmergencyLatched = errors.New("emergency stop active")

	// ErrCriticalBattery indicates the last observed SensorFrame reported
	// battery below the hard floor.
	ErrCriticalBattery = errors.New("critical battery")

	// ErrObstacleTooClose indicates a MoveTowards behavior was rejected
	// because the forward distance sensor read below the safe threshold.
	ErrObstacleTooClose = errors.New("obstacle too close")
)

// Degraded sink errors.
//
// ErrLogFileUnavailable, ErrLogStreamUnavailable and ErrLogPortInUse
// degrade a single Logger sink for the remainder of the run; they never
// fail the process. ErrSchemaMissing is the exception: main treats it as a
// fatal init error and exits before any module is spawned.
// ErrSchemaMissing and ErrLogPortInUse name more specific causes of the
// file/stream sink open failures, so callers can tell them apart without
// string-matching the wrapped error.
var (
	ErrLogFileUnavailable   = errors.New("log file sink unavailable")
	ErrLogStreamUnavailable = errors.New("log stream sink unavailable")
	ErrSchemaMissing        = errors.New("binary log schema missing")
	ErrLogPortInUse         = errors.New("cannot bind log stream port")
)

// Calibration errors.
var (
	ErrCalibrationUnavailable = errors.New("calibration store unavailable")
)

// Channel/transport errors.
var (
	// ErrReceiverClosed indicates a send failed because the receiver
	// dropped its channel. Logged at Error, never fatal to the sender.
	ErrReceiverClosed = errors.New("receiver channel closed")
)
