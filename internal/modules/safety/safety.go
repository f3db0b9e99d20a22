// Package safety implements SafetyController, the sole component with
// authority to forward a BehaviorCommand to HardwareInterface. This is the
// richer of the two superseded safety-controller variants in the source:
// it validates and forwards BehaviorCommands rather than synthesizing
// MotorCommands itself (kinematics translation belongs to
// internal/kinematics, invoked from hardware.Module).
package safety

import (
	"context"
	"fmt"
	"time"

	"roverctl/internal/bus"
	"roverctl/internal/config"
	"roverctl/internal/rovererr"
	"roverctl/internal/rovertypes"
)

// Module holds the emergency latch and the most recently observed
// SensorFrame, and validates every BehaviorCommand against both before
// forwarding.
type Module struct {
	bus.Base

	BehaviorIn <-chan rovertypes.BehaviorCommand
	SensorIn   <-chan rovertypes.SensorFrame
	ModeIn     <-chan rovertypes.RobotMode

	ToHardware chan<- rovertypes.BehaviorCommand

	emergencyLatched bool
	lastSensor       *rovertypes.SensorFrame
}

func New(
	logCh chan<- rovertypes.LogRecord,
	behaviorIn <-chan rovertypes.BehaviorCommand,
	sensorIn <-chan rovertypes.SensorFrame,
	modeIn <-chan rovertypes.RobotMode,
	toHardware chan<- rovertypes.BehaviorCommand,
) *Module {
	return &Module{
		Base:       bus.NewBase("SafetyController", logCh),
		BehaviorIn: behaviorIn,
		SensorIn:   sensorIn,
		ModeIn:     modeIn,
		ToHardware: toHardware,
	}
}

func (m *Module) Run(ctx context.Context) {
	m.Log(ctx, rovertypes.LevelInfo, "Starting safety controller")

	for {
		select {
		case <-ctx.Done():
			m.Log(ctx, rovertypes.LevelInfo, "Shutdown signal received")
			m.Stopped()
			return
		case cmd := <-m.BehaviorIn:
			m.validateAndForward(ctx, cmd)
		case frame := <-m.SensorIn:
			m.checkSafety(ctx, frame)
		case mode := <-m.ModeIn:
			m.handleMode(ctx, mode)
		}
	}
}

func (m *Module) handleMode(ctx context.Context, mode rovertypes.RobotMode) {
	if mode.Kind == rovertypes.ModeEmergencyStop {
		m.emergencyLatched = true
		m.Log(ctx, rovertypes.LevelError, "EMERGENCY STOP ACTIVATED")
		m.forward(ctx, rovertypes.BehaviorCommand{
			Timestamp: time.Now(),
			Behavior:  rovertypes.BehaviorEmergencyStop{},
			Priority:  10,
		})
		return
	}
	// Any transition away from EmergencyStop clears the latch; this is
	// the only way Resume re-enables actuation.
	m.emergencyLatched = false
}

// validateAndForward applies the rejection pipeline in order; the first
// failing rule rejects the command.
func (m *Module) validateAndForward(ctx context.Context, cmd rovertypes.BehaviorCommand) {
	if m.emergencyLatched {
		m.Log(ctx, rovertypes.LevelWarn, rovererr.ErrEmergencyLatched.Error())
		return
	}

	if m.lastSensor != nil && m.lastSensor.Battery < config.CriticalBatteryThreshold {
		m.Log(ctx, rovertypes.LevelError, rovererr.ErrCriticalBattery.Error())
		return
	}

	if _, ok := cmd.Behavior.(rovertypes.MoveTowards); ok {
		if m.lastSensor != nil && len(m.lastSensor.DistanceSensors) > 0 && m.lastSensor.DistanceSensors[0] < config.ObstacleTooCloseMeters {
			m.Log(ctx, rovertypes.LevelWarn, rovererr.ErrObstacleTooClose.Error())
			return
		}
	}

	m.forward(ctx, cmd)
}

func (m *Module) forward(ctx context.Context, cmd rovertypes.BehaviorCommand) {
	if !bus.Send(ctx, m.ToHardware, cmd) {
		m.Log(ctx, rovertypes.LevelError, rovererr.ErrReceiverClosed.Error())
	}
}

func (m *Module) checkSafety(ctx context.Context, frame rovertypes.SensorFrame) {
	f := frame
	m.lastSensor = &f

	if frame.Battery < config.CriticalBatteryThreshold {
		m.Log(ctx, rovertypes.LevelError, fmt.Sprintf("Critical battery level: %.1f%%", frame.Battery*100))
	}

	for i, distance := range frame.DistanceSensors {
		if distance < config.DistanceWarnMeters {
			m.Log(ctx, rovertypes.LevelWarn, fmt.Sprintf("Close obstacle on sensor %d: %.2fm", i, distance))
		}
	}
}
