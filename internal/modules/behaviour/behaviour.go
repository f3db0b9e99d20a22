// Package behaviour translates paths and stance updates into prioritized
// BehaviorCommands for SafetyController. It never plans and never
// evaluates safety; it only knows how to turn an intent into a request.
package behaviour

import (
	"context"
	"fmt"
	"time"

	"roverctl/internal/bus"
	"roverctl/internal/rovertypes"
)

const (
	pathMoveSpeed       = 0.5
	pathMovePriority    = 5
	stanceAdjustPriority = 7
)

// Module consumes paths (from both the goal-planning and
// obstacle-avoidance branches — see the goalplanning and obstacleavoidance
// package docs on the source's double path emission) and stance updates.
type Module struct {
	bus.Base

	GoalPathIn     <-chan rovertypes.Path
	ObstaclePathIn <-chan rovertypes.Path
	StanceIn       <-chan rovertypes.StanceConfig

	ToSafetyController chan<- rovertypes.BehaviorCommand
}

func New(
	logCh chan<- rovertypes.LogRecord,
	goalPathIn, obstaclePathIn <-chan rovertypes.Path,
	stanceIn <-chan rovertypes.StanceConfig,
	toSafetyController chan<- rovertypes.BehaviorCommand,
) *Module {
	return &Module{
		Base:                bus.NewBase("Behaviour", logCh),
		GoalPathIn:          goalPathIn,
		ObstaclePathIn:      obstaclePathIn,
		StanceIn:            stanceIn,
		ToSafetyController:  toSafetyController,
	}
}

func (m *Module) Run(ctx context.Context) {
	m.Log(ctx, rovertypes.LevelInfo, "Starting behaviour module")

	for {
		select {
		case <-ctx.Done():
			m.Log(ctx, rovertypes.LevelInfo, "Shutdown signal received")
			m.Stopped()
			return
		case path := <-m.GoalPathIn:
			m.executePath(ctx, path, "goal planning")
		case path := <-m.ObstaclePathIn:
			m.executePath(ctx, path, "obstacle avoidance")
		case stance := <-m.StanceIn:
			m.adjustForStance(ctx, stance)
		}
	}
}

func (m *Module) executePath(ctx context.Context, path rovertypes.Path, source string) {
	m.Log(ctx, rovertypes.LevelInfo, fmt.Sprintf("Executing path from %s with %d waypoints", source, len(path.Waypoints)))

	if len(path.Waypoints) == 0 {
		return
	}

	cmd := rovertypes.BehaviorCommand{
		Timestamp: time.Now(),
		Behavior:  rovertypes.MoveTowards{Target: path.Waypoints[0].Position, Speed: pathMoveSpeed},
		Priority:  pathMovePriority,
	}

	if !bus.Send(ctx, m.ToSafetyController, cmd) {
		m.Log(ctx, rovertypes.LevelError, "Failed to send behavior command to safety controller")
	}
}

func (m *Module) adjustForStance(ctx context.Context, stance rovertypes.StanceConfig) {
	m.Log(ctx, rovertypes.LevelDebug, fmt.Sprintf("Adjusting behavior for stance: kind=%v", stance.Kind))

	cmd := rovertypes.BehaviorCommand{
		Timestamp: time.Now(),
		Behavior:  rovertypes.AdjustStance{Stance: stance},
		Priority:  stanceAdjustPriority,
	}
	bus.Send(ctx, m.ToSafetyController, cmd)
}
