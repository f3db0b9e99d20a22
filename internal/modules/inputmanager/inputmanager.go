// Package inputmanager fans out the three ingress streams — sensor frames,
// user commands, and hardware status — to their respective consumers. It
// holds no state of its own beyond its channel handles.
package inputmanager

import (
	"context"
	"fmt"

	"roverctl/internal/bus"
	"roverctl/internal/rovertypes"
)

// Module is a pure fan-out stage: one inbound channel per ingress kind,
// one or more outbound channels per kind.
type Module struct {
	bus.Base

	SensorIn   <-chan rovertypes.SensorFrame
	UserCmdIn  <-chan rovertypes.UserCommand
	HWStatusIn <-chan rovertypes.HardwareStatus

	ToEnvironment  chan<- rovertypes.SensorFrame
	ToStateManager chan<- rovertypes.SensorFrame

	ToStateManagerCmd chan<- rovertypes.UserCommand
	ToTaskManager     chan<- rovertypes.UserCommand
}

func New(
	logCh chan<- rovertypes.LogRecord,
	sensorIn <-chan rovertypes.SensorFrame,
	userCmdIn <-chan rovertypes.UserCommand,
	hwStatusIn <-chan rovertypes.HardwareStatus,
	toEnvironment, toStateManagerSensor chan<- rovertypes.SensorFrame,
	toStateManagerCmd, toTaskManager chan<- rovertypes.UserCommand,
) *Module {
	return &Module{
		Base:              bus.NewBase("InputManager", logCh),
		SensorIn:          sensorIn,
		UserCmdIn:         userCmdIn,
		HWStatusIn:        hwStatusIn,
		ToEnvironment:     toEnvironment,
		ToStateManager:    toStateManagerSensor,
		ToStateManagerCmd: toStateManagerCmd,
		ToTaskManager:     toTaskManager,
	}
}

func (m *Module) Run(ctx context.Context) {
	m.Log(ctx, rovertypes.LevelInfo, "Starting input manager")

	for {
		select {
		case <-ctx.Done():
			m.Log(ctx, rovertypes.LevelInfo, "Shutdown signal received")
			m.Stopped()
			return
		case frame := <-m.SensorIn:
			m.handleSensorFrame(ctx, frame)
		case cmd := <-m.UserCmdIn:
			m.handleUserCommand(ctx, cmd)
		case status := <-m.HWStatusIn:
			m.handleHardwareStatus(ctx, status)
		}
	}
}

func (m *Module) handleSensorFrame(ctx context.Context, frame rovertypes.SensorFrame) {
	bus.Send(ctx, m.ToEnvironment, frame)
	bus.Send(ctx, m.ToStateManager, frame)
}

func (m *Module) handleUserCommand(ctx context.Context, cmd rovertypes.UserCommand) {
	m.Log(ctx, rovertypes.LevelInfo, fmt.Sprintf("Routing user command: %#v", cmd))
	bus.Send(ctx, m.ToStateManagerCmd, cmd)
	bus.Send(ctx, m.ToTaskManager, cmd)
}

func (m *Module) handleHardwareStatus(ctx context.Context, status rovertypes.HardwareStatus) {
	switch status.Health.Kind {
	case rovertypes.HealthWarning:
		m.Log(ctx, rovertypes.LevelWarn, fmt.Sprintf("Hardware warning: %s", status.Health.Reason))
	case rovertypes.HealthCritical:
		m.Log(ctx, rovertypes.LevelError, fmt.Sprintf("Hardware critical: %s", status.Health.Reason))
	}
}
