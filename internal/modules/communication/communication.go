// Package communication implements CommunicationModule: the outward-facing
// edge of the system. In a deployed system this would ship telemetry to a
// remote operator; here it only logs, and relays feedback text back to
// UserInstructions, closing the loop back to the input side of the system.
package communication

import (
	"context"
	"fmt"

	"roverctl/internal/bus"
	"roverctl/internal/rovertypes"
)

// Module has no state; every message is handled independently.
type Module struct {
	bus.Base

	StatusIn   <-chan rovertypes.StatusUpdate
	FeedbackIn <-chan rovertypes.UserFeedback

	ToUserInstructions chan<- string
}

func New(
	logCh chan<- rovertypes.LogRecord,
	statusIn <-chan rovertypes.StatusUpdate,
	feedbackIn <-chan rovertypes.UserFeedback,
	toUserInstructions chan<- string,
) *Module {
	return &Module{
		Base:               bus.NewBase("CommunicationModule", logCh),
		StatusIn:           statusIn,
		FeedbackIn:         feedbackIn,
		ToUserInstructions: toUserInstructions,
	}
}

func (m *Module) Run(ctx context.Context) {
	m.Log(ctx, rovertypes.LevelInfo, "Starting communication module")

	for {
		select {
		case <-ctx.Done():
			m.Log(ctx, rovertypes.LevelInfo, "Shutdown signal received")
			m.Stopped()
			return
		case status := <-m.StatusIn:
			m.handleStatus(ctx, status)
		case feedback := <-m.FeedbackIn:
			m.handleFeedback(ctx, feedback)
		}
	}
}

func (m *Module) handleStatus(ctx context.Context, status rovertypes.StatusUpdate) {
	m.Log(ctx, rovertypes.LevelDebug, fmt.Sprintf("Broadcasting status update: %s", status.Mode.Kind))
}

func (m *Module) handleFeedback(ctx context.Context, feedback rovertypes.UserFeedback) {
	bus.Send(ctx, m.ToUserInstructions, feedback.Message)
	m.Log(ctx, rovertypes.LevelDebug, fmt.Sprintf("Relayed feedback: %s", feedback.Message))
}
