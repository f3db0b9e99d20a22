// Package userfeedback implements UserFeedback: it renders each
// StatusUpdate as a log line and derives a UserFeedback message for
// Communication to relay onward.
package userfeedback

import (
	"context"
	"fmt"

	"roverctl/internal/bus"
	"roverctl/internal/rovertypes"
)

// Module has no state; every StatusUpdate is handled independently.
type Module struct {
	bus.Base

	StatusIn <-chan rovertypes.StatusUpdate

	ToCommunication chan<- rovertypes.UserFeedback
}

func New(logCh chan<- rovertypes.LogRecord, statusIn <-chan rovertypes.StatusUpdate, toCommunication chan<- rovertypes.UserFeedback) *Module {
	return &Module{
		Base:            bus.NewBase("UserFeedback", logCh),
		StatusIn:        statusIn,
		ToCommunication: toCommunication,
	}
}

func (m *Module) Run(ctx context.Context) {
	m.Log(ctx, rovertypes.LevelInfo, "Starting user feedback module")

	for {
		select {
		case <-ctx.Done():
			m.Log(ctx, rovertypes.LevelInfo, "Shutdown signal received")
			m.Stopped()
			return
		case status := <-m.StatusIn:
			m.displayStatus(ctx, status)
			m.forwardToComm(ctx, status)
		}
	}
}

func (m *Module) displayStatus(ctx context.Context, status rovertypes.StatusUpdate) {
	mission := status.CurrentMission
	if mission == "" {
		mission = "None"
	}

	m.Log(ctx, rovertypes.LevelInfo, fmt.Sprintf(
		"Status: %s | Mission: %s | Battery: %.0f%%",
		status.Mode.Kind, mission, status.Battery*100,
	))
}

func (m *Module) forwardToComm(ctx context.Context, status rovertypes.StatusUpdate) {
	feedback := rovertypes.UserFeedback{
		Message: fmt.Sprintf("State: %s, Battery: %.0f%%", status.Mode.Kind, status.Battery*100),
		Kind:    rovertypes.FeedbackStatus,
	}
	bus.Send(ctx, m.ToCommunication, feedback)
}
