// Package statemanager owns the robot's top-level mode finite state
// machine, announcing transitions to its three subscribers only when the
// new mode variant differs from the current one.
package statemanager

import (
	"context"
	"fmt"

	"roverctl/internal/bus"
	"roverctl/internal/rovertypes"
)

// Module tracks the current RobotMode and RobotPose.
type Module struct {
	bus.Base

	SensorIn  <-chan rovertypes.SensorFrame
	CommandIn <-chan rovertypes.UserCommand

	ToGeneralBus       chan<- rovertypes.RobotMode
	ToSafetyController chan<- rovertypes.RobotMode
	ToTaskManager       chan<- rovertypes.RobotMode

	mode rovertypes.RobotMode
	pose rovertypes.RobotPose
}

func New(
	logCh chan<- rovertypes.LogRecord,
	sensorIn <-chan rovertypes.SensorFrame,
	commandIn <-chan rovertypes.UserCommand,
	toGeneralBus, toSafetyController, toTaskManager chan<- rovertypes.RobotMode,
) *Module {
	return &Module{
		Base:                bus.NewBase("StateManager", logCh),
		SensorIn:            sensorIn,
		CommandIn:           commandIn,
		ToGeneralBus:        toGeneralBus,
		ToSafetyController:  toSafetyController,
		ToTaskManager:       toTaskManager,
		mode:                rovertypes.RobotMode{Kind: rovertypes.ModeIdle},
	}
}

func (m *Module) Run(ctx context.Context) {
	m.Log(ctx, rovertypes.LevelInfo, "Starting state manager")

	for {
		select {
		case <-ctx.Done():
			m.Log(ctx, rovertypes.LevelInfo, "Shutdown signal received")
			m.Stopped()
			return
		case frame := <-m.SensorIn:
			m.updatePose(frame)
		case cmd := <-m.CommandIn:
			m.handleCommand(ctx, cmd)
		}
	}
}

// updatePose adopts orientation verbatim from the IMU; position
// integration from velocity is a non-goal.
func (m *Module) updatePose(frame rovertypes.SensorFrame) {
	m.pose.Orientation = frame.IMU.Orientation
}

func (m *Module) handleCommand(ctx context.Context, cmd rovertypes.UserCommand) {
	newMode := nextMode(cmd)

	if newMode.Kind == m.mode.Kind {
		return
	}

	m.Log(ctx, rovertypes.LevelInfo, fmt.Sprintf("State transition: %s -> %s", m.mode.Kind, newMode.Kind))
	m.mode = newMode

	bus.Send(ctx, m.ToGeneralBus, newMode)
	bus.Send(ctx, m.ToSafetyController, newMode)
	bus.Send(ctx, m.ToTaskManager, newMode)
}

func nextMode(cmd rovertypes.UserCommand) rovertypes.RobotMode {
	switch c := cmd.(type) {
	case rovertypes.ManualControl:
		return rovertypes.RobotMode{Kind: rovertypes.ModeManualControl}
	case rovertypes.MissionCommand:
		return rovertypes.RobotMode{Kind: rovertypes.ModeExecutingMission}
	case rovertypes.SystemCommand:
		switch c.Cmd.Kind {
		case rovertypes.SystemPause:
			return rovertypes.RobotMode{Kind: rovertypes.ModePaused}
		case rovertypes.SystemResume:
			return rovertypes.RobotMode{Kind: rovertypes.ModeExecutingMission}
		case rovertypes.SystemEmergencyStop:
			return rovertypes.RobotMode{Kind: rovertypes.ModeEmergencyStop}
		case rovertypes.SystemCalibrate:
			return rovertypes.RobotMode{Kind: rovertypes.ModeIdle}
		}
	}
	return rovertypes.RobotMode{Kind: rovertypes.ModeIdle}
}
