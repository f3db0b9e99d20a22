// Package directuserinput replays a scripted sequence of manual-drive
// commands on a fixed cadence, standing in for a human operator's joystick
// or keypad input.
package directuserinput

import (
	"context"
	"fmt"
	"time"

	"roverctl/internal/bus"
	"roverctl/internal/rovertypes"
)

const tick = 3 * time.Second

// Module emits one scripted ManualControl command every 3s until the
// script is exhausted, then goes idle until shutdown.
type Module struct {
	bus.Base
	ToStateManager chan<- rovertypes.UserCommand
}

func New(logCh chan<- rovertypes.LogRecord, toStateManager chan<- rovertypes.UserCommand) *Module {
	return &Module{
		Base:           bus.NewBase("DirectUserInput", logCh),
		ToStateManager: toStateManager,
	}
}

func scriptedCommands() []rovertypes.UserCommand {
	return []rovertypes.UserCommand{
		rovertypes.ManualControl{Cmd: rovertypes.MoveForward{Speed: 0.5}},
		rovertypes.ManualControl{Cmd: rovertypes.TurnLeft{Rate: 0.3}},
		rovertypes.ManualControl{Cmd: rovertypes.MoveForward{Speed: 0.7}},
		rovertypes.ManualControl{Cmd: rovertypes.StopManual{}},
	}
}

func (m *Module) Run(ctx context.Context) {
	m.Log(ctx, rovertypes.LevelInfo, "Starting direct user input handler")

	commands := scriptedCommands()
	idx := 0

	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.Log(ctx, rovertypes.LevelInfo, "Shutdown signal received")
			m.Stopped()
			return
		case <-ticker.C:
			if idx >= len(commands) {
				continue
			}
			cmd := commands[idx]
			m.Log(ctx, rovertypes.LevelInfo, fmt.Sprintf("User input: %#v", cmd))

			if !bus.Send(ctx, m.ToStateManager, cmd) {
				m.Log(ctx, rovertypes.LevelError, "Failed to send user command")
			}
			idx++
		}
	}
}
