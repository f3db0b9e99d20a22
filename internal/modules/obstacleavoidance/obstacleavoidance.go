// Package obstacleavoidance validates and repairs planned paths against
// the rover's current environment model. The planner itself is a
// placeholder: it always emits a 5-waypoint linear interpolation between
// start and goal, per the non-goal on real path-planning algorithms.
package obstacleavoidance

import (
	"context"
	"fmt"

	"github.com/golang/geo/r3"
	"github.com/google/uuid"

	"roverctl/internal/bus"
	"roverctl/internal/config"
	"roverctl/internal/modules/stance"
	"roverctl/internal/rovertypes"
)

const (
	pathWaypointCount  = 5
	assumedTravelSpeed = 0.5 // m/s, matches the waypoints' LinearVelocity.X

	// placeholderTotalDistance and placeholderEstimatedTime are the fixed
	// stamp the linear-interpolation planner reports regardless of the
	// actual start/goal poses; the replacement for the real planner must
	// match this literal scenario.
	placeholderTotalDistance = 5.0
	placeholderEstimatedTime = 10.0
)

// PathRequest asks ObstacleAvoidance to plan (and validate) a path from
// Start to Goal. The response is delivered on ResponsesTo as a bare Path;
// ID is not echoed back in it, so a caller tells responses apart only by
// owning its ResponsesTo channel. ObstacleAvoidance additionally emits the
// same Path directly to
// Behaviour (see Module.ToBehaviour) — the upstream caller should not
// assume its ResponsesTo channel is the only recipient.
type PathRequest struct {
	ID          uuid.UUID
	Start, Goal rovertypes.RobotPose
	ResponsesTo chan<- rovertypes.Path
}

// Module holds the latest EnvironmentState and answers PathRequests.
type Module struct {
	bus.Base

	EnvIn    <-chan rovertypes.EnvironmentState
	Requests <-chan PathRequest

	StanceRequests  chan<- stance.Request
	stanceResponses chan stance.Response

	ToBehaviour chan<- rovertypes.Path

	current *rovertypes.EnvironmentState
}

func New(
	logCh chan<- rovertypes.LogRecord,
	envIn <-chan rovertypes.EnvironmentState,
	requests <-chan PathRequest,
	stanceRequests chan<- stance.Request,
	toBehaviour chan<- rovertypes.Path,
) *Module {
	return &Module{
		Base:            bus.NewBase("ObstacleAvoidance", logCh),
		EnvIn:           envIn,
		Requests:        requests,
		StanceRequests:  stanceRequests,
		stanceResponses: make(chan stance.Response, config.DataQueueCapacity),
		ToBehaviour:     toBehaviour,
	}
}

func (m *Module) Run(ctx context.Context) {
	m.Log(ctx, rovertypes.LevelInfo, "Starting obstacle avoidance")

	for {
		select {
		case <-ctx.Done():
			m.Log(ctx, rovertypes.LevelInfo, "Shutdown signal received")
			m.Stopped()
			return
		case env := <-m.EnvIn:
			e := env
			m.current = &e
		case req := <-m.Requests:
			m.validatePath(ctx, req)
		case resp := <-m.stanceResponses:
			m.Log(ctx, rovertypes.LevelDebug, fmt.Sprintf("Received stance config: stability=%.2f", resp.Stance.Stability))
		}
	}
}

// validatePath builds the placeholder path and, per the source's known
// double-emit, sends it both back to the requester and directly to
// Behaviour.
func (m *Module) validatePath(ctx context.Context, req PathRequest) {
	m.Log(ctx, rovertypes.LevelInfo, "Validating and adjusting path for obstacles")

	select {
	case m.StanceRequests <- stance.Request{ID: uuid.New(), Kind: stance.Query, ResponsesTo: m.stanceResponses}:
	case <-ctx.Done():
		return
	}

	path := interpolate(req.Start, req.Goal)

	select {
	case req.ResponsesTo <- path:
	case <-ctx.Done():
		return
	}
	bus.Send(ctx, m.ToBehaviour, path)
}

func interpolate(start, goal rovertypes.RobotPose) rovertypes.Path {
	waypoints := make([]rovertypes.RobotPose, 0, pathWaypointCount)
	delta := goal.Position.Sub(start.Position)

	for i := 0; i < pathWaypointCount; i++ {
		t := float64(i) / float64(pathWaypointCount-1)
		waypoints = append(waypoints, rovertypes.RobotPose{
			Position:        start.Position.Add(delta.Mul(t)),
			Orientation:     start.Orientation,
			LinearVelocity:  r3.Vector{X: assumedTravelSpeed},
			AngularVelocity: r3.Vector{},
		})
	}

	return rovertypes.Path{
		Waypoints:     waypoints,
		TotalDistance: placeholderTotalDistance,
		EstimatedTime: placeholderEstimatedTime,
	}
}
