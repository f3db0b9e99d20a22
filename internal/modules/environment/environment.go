// Package environment turns raw SensorFrames into an EnvironmentState: an
// obstacle list derived from the distance sensors and a coarse terrain
// classification derived from the IMU.
package environment

import (
	"context"
	"fmt"
	"math"

	"github.com/golang/geo/r3"

	"roverctl/internal/bus"
	"roverctl/internal/rovertypes"
)

const (
	obstacleRangeMeters  = 1.5
	roughAccelDeviation  = 2.0
	steepOrientationTilt = 0.2
	stateConfidence      = 0.8
)

var obstacleSize = r3.Vector{X: 0.3, Y: 0.3, Z: 0.5}

// Module consumes SensorFrames and emits one EnvironmentState per frame.
type Module struct {
	bus.Base
	SensorIn     <-chan rovertypes.SensorFrame
	ToObstacleAvoidance chan<- rovertypes.EnvironmentState
}

func New(logCh chan<- rovertypes.LogRecord, sensorIn <-chan rovertypes.SensorFrame, toObstacleAvoidance chan<- rovertypes.EnvironmentState) *Module {
	return &Module{
		Base:                bus.NewBase("EnvUnderstanding", logCh),
		SensorIn:            sensorIn,
		ToObstacleAvoidance: toObstacleAvoidance,
	}
}

func (m *Module) Run(ctx context.Context) {
	m.Log(ctx, rovertypes.LevelInfo, "Starting environment understanding")

	for {
		select {
		case <-ctx.Done():
			m.Log(ctx, rovertypes.LevelInfo, "Shutdown signal received")
			m.Stopped()
			return
		case frame := <-m.SensorIn:
			state := process(frame)
			if len(state.Obstacles) > 0 {
				m.Log(ctx, rovertypes.LevelInfo, fmt.Sprintf("Detected %d obstacles", len(state.Obstacles)))
			}
			bus.Send(ctx, m.ToObstacleAvoidance, state)
		}
	}
}

// process maps a SensorFrame to an EnvironmentState. Distance readings
// below obstacleRangeMeters become an Obstacle at polar coordinates
// (distance, index*pi/2) around the rover.
func process(frame rovertypes.SensorFrame) rovertypes.EnvironmentState {
	var obstacles []rovertypes.Obstacle

	for i, distance := range frame.DistanceSensors {
		if distance >= obstacleRangeMeters {
			continue
		}
		angle := float64(i) * math.Pi / 2
		obstacles = append(obstacles, rovertypes.Obstacle{
			Position: r3.Vector{X: distance * math.Cos(angle), Y: distance * math.Sin(angle), Z: 0},
			Size:     obstacleSize,
			Type:     rovertypes.ObstacleStatic,
		})
	}

	accelMagnitude := frame.IMU.Accel.Norm()

	var terrain rovertypes.TerrainClass
	switch {
	case math.Abs(accelMagnitude-9.81) > roughAccelDeviation:
		terrain = rovertypes.TerrainRough
	case math.Abs(frame.IMU.Orientation.V[0]) > steepOrientationTilt:
		terrain = rovertypes.TerrainSteep
	default:
		terrain = rovertypes.TerrainFlat
	}

	return rovertypes.EnvironmentState{
		Obstacles:  obstacles,
		Terrain:    terrain,
		Confidence: stateConfidence,
	}
}
