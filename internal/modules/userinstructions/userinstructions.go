// Package userinstructions replays a scripted mission command once, and
// relays textual feedback from Communication back into its own log stream,
// closing the feedback loop described for the operator-facing egress path.
package userinstructions

import (
	"context"
	"fmt"
	"time"

	"github.com/golang/geo/s2"

	"roverctl/internal/bus"
	"roverctl/internal/rovertypes"
)

const missionDelay = 5 * time.Second

// Module sends a single scripted Patrol mission after missionDelay, then
// spends the rest of its life relaying feedback strings from Communication
// into its own log stream.
type Module struct {
	bus.Base
	ToTaskManager chan<- rovertypes.UserCommand
	Feedback      <-chan string
}

func New(logCh chan<- rovertypes.LogRecord, toTaskManager chan<- rovertypes.UserCommand, feedback <-chan string) *Module {
	return &Module{
		Base:          bus.NewBase("UserInstructions", logCh),
		ToTaskManager: toTaskManager,
		Feedback:      feedback,
	}
}

func patrolMission() rovertypes.UserCommand {
	return rovertypes.MissionCommand{
		Cmd: rovertypes.Patrol{
			Waypoints: []rovertypes.Waypoint{
				{Position: s2.LatLngFromDegrees(37.7749, -122.4194), Tolerance: 2.0},
				{Position: s2.LatLngFromDegrees(37.7750, -122.4195), Tolerance: 2.0},
				{Position: s2.LatLngFromDegrees(37.7751, -122.4196), Tolerance: 2.0},
			},
			LoopCount: 2,
		},
	}
}

func (m *Module) Run(ctx context.Context) {
	m.Log(ctx, rovertypes.LevelInfo, "Starting user instructions module")

	missionSent := false
	timer := time.NewTimer(missionDelay)
	defer timer.Stop()

	// A nil channel blocks forever in a select, so once the mission fires
	// this arm is disabled; missionSent additionally guards the send.
	timerCh := timer.C

	for {
		select {
		case <-ctx.Done():
			m.Log(ctx, rovertypes.LevelInfo, "Shutdown signal received")
			m.Stopped()
			return
		case feedback, ok := <-m.Feedback:
			if !ok {
				m.Feedback = nil
				continue
			}
			m.Log(ctx, rovertypes.LevelInfo, fmt.Sprintf("Received feedback: %s", feedback))
		case <-timerCh:
			if missionSent {
				continue
			}
			mission := patrolMission()
			m.Log(ctx, rovertypes.LevelInfo, "Sending patrol mission")

			if !bus.Send(ctx, m.ToTaskManager, mission) {
				m.Log(ctx, rovertypes.LevelError, "Failed to send mission command")
			}
			missionSent = true
			timerCh = nil
		}
	}
}
