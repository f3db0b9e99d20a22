// Package goalplanning turns each incoming Goal into a path-validation
// request to ObstacleAvoidance, firing a fire-and-forget stance query
// alongside it. Per the known source redundancy (see obstacleavoidance),
// it re-emits whatever path ObstacleAvoidance answers with to Behaviour —
// which is already receiving the same path directly from ObstacleAvoidance,
// yielding two BehaviorCommands per planned path. This is preserved
// intentionally rather than fixed.
package goalplanning

import (
	"context"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"github.com/google/uuid"

	"roverctl/internal/bus"
	"roverctl/internal/config"
	"roverctl/internal/modules/obstacleavoidance"
	"roverctl/internal/modules/stance"
	"roverctl/internal/rovertypes"
)

// origin is the fixed start pose every path-validation request plans from;
// real odometry-derived starting poses are a non-goal.
var origin = rovertypes.RobotPose{
	Position:        r3.Vector{},
	Orientation:     mgl64.Quat{W: 1},
	LinearVelocity:  r3.Vector{},
	AngularVelocity: r3.Vector{},
}

// Module consumes Goals and mediates the ObstacleAvoidance/Stance
// request-response protocols on the caller side. It owns both response
// channels it hands out as each request's ResponsesTo field.
type Module struct {
	bus.Base

	GoalIn <-chan rovertypes.Goal

	StanceRequests  chan<- stance.Request
	stanceResponses chan stance.Response

	ToObstacleAvoidance chan<- obstacleavoidance.PathRequest
	pathResponses       chan rovertypes.Path

	ToBehaviour chan<- rovertypes.Path
}

func New(
	logCh chan<- rovertypes.LogRecord,
	goalIn <-chan rovertypes.Goal,
	stanceRequests chan<- stance.Request,
	toObstacleAvoidance chan<- obstacleavoidance.PathRequest,
	toBehaviour chan<- rovertypes.Path,
) *Module {
	return &Module{
		Base:                bus.NewBase("GoalPlanning", logCh),
		GoalIn:              goalIn,
		StanceRequests:      stanceRequests,
		stanceResponses:     make(chan stance.Response, config.DataQueueCapacity),
		ToObstacleAvoidance: toObstacleAvoidance,
		pathResponses:       make(chan rovertypes.Path, config.DataQueueCapacity),
		ToBehaviour:         toBehaviour,
	}
}

func (m *Module) Run(ctx context.Context) {
	m.Log(ctx, rovertypes.LevelInfo, "Starting goal planning")

	for {
		select {
		case <-ctx.Done():
			m.Log(ctx, rovertypes.LevelInfo, "Shutdown signal received")
			m.Stopped()
			return
		case goal := <-m.GoalIn:
			m.planToGoal(ctx, goal)
		case path := <-m.pathResponses:
			m.Log(ctx, rovertypes.LevelInfo, fmt.Sprintf("Received safe path with %d waypoints", len(path.Waypoints)))
			bus.Send(ctx, m.ToBehaviour, path)
		case resp := <-m.stanceResponses:
			m.Log(ctx, rovertypes.LevelDebug, fmt.Sprintf("Received stance config: stability=%.2f", resp.Stance.Stability))
		}
	}
}

func (m *Module) planToGoal(ctx context.Context, goal rovertypes.Goal) {
	m.Log(ctx, rovertypes.LevelInfo, fmt.Sprintf("Planning path to goal: type=%v", goal.Type))

	select {
	case m.StanceRequests <- stance.Request{ID: uuid.New(), Kind: stance.Query, ResponsesTo: m.stanceResponses}:
	case <-ctx.Done():
		return
	}

	req := obstacleavoidance.PathRequest{
		ID:          uuid.New(),
		Start:       origin,
		Goal:        goal.TargetPose,
		ResponsesTo: m.pathResponses,
	}
	bus.Send(ctx, m.ToObstacleAvoidance, req)
}
