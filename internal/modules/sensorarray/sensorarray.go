// Package sensorarray simulates the rover's distance, IMU, GPS and battery
// sensors on a fixed tick, publishing the same SensorFrame on three
// outputs: ToInputManager (wired in main to HardwareInterface, which
// relays it to InputManager), ToSafety (SafetyController directly,
// bypassing HardwareInterface), and ToOutputManager.
package sensorarray

import (
	"context"
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"github.com/golang/geo/s2"

	"roverctl/internal/bus"
	"roverctl/internal/rovertypes"
)

const tick = 500 * time.Millisecond

// Module generates synthetic sensor readings every 500ms.
type Module struct {
	bus.Base
	ToInputManager chan<- rovertypes.SensorFrame
	ToSafety       chan<- rovertypes.SensorFrame
	ToOutputManager chan<- rovertypes.SensorFrame
}

func New(logCh chan<- rovertypes.LogRecord, toInputManager, toSafety, toOutputManager chan<- rovertypes.SensorFrame) *Module {
	return &Module{
		Base:            bus.NewBase("SensorArray", logCh),
		ToInputManager:  toInputManager,
		ToSafety:        toSafety,
		ToOutputManager: toOutputManager,
	}
}

// Run ticks at a fixed 500ms cadence, generating and fanning out one
// SensorFrame per tick, until ctx is canceled.
func (m *Module) Run(ctx context.Context) {
	m.Log(ctx, rovertypes.LevelInfo, "Starting sensor array")

	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	var counter uint64

	for {
		select {
		case <-ctx.Done():
			m.Log(ctx, rovertypes.LevelInfo, "Shutdown signal received")
			m.Stopped()
			return
		case <-ticker.C:
			frame := generateFrame(counter)

			if !bus.Send(ctx, m.ToInputManager, frame) {
				m.Log(ctx, rovertypes.LevelError, "Failed to send sensor data to input manager")
			}

			if !bus.Send(ctx, m.ToSafety, frame) {
				m.Log(ctx, rovertypes.LevelError, "Failed to send sensor data to safety controller")
			}

			if !bus.Send(ctx, m.ToOutputManager, frame) {
				m.Log(ctx, rovertypes.LevelError, "Failed to send sensor data to output manager")
			}

			counter++
			if counter%10 == 0 {
				m.Log(ctx, rovertypes.LevelDebug, "Published sensor reading")
			}
		}
	}
}

// generateFrame mirrors the original simulator's sinusoidal readings so
// downstream thresholds (obstacle distance, battery) trip at the same
// points in the run.
func generateFrame(counter uint64) rovertypes.SensorFrame {
	t := float64(counter) * 0.5

	battery := 0.85 - math.Min(float64(counter)*0.0001, 0.3)

	return rovertypes.SensorFrame{
		Timestamp: time.Now(),
		DistanceSensors: []float64{
			2.5 + math.Sin(t*0.1)*0.5,
			3.0 + math.Sin(t*0.15)*0.3,
			3.0 + math.Cos(t*0.15)*0.3,
			5.0,
		},
		IMU: rovertypes.IMU{
			Accel: r3.Vector{
				X: math.Sin(t * 0.05) * 0.1,
				Y: math.Cos(t * 0.05) * 0.1,
				Z: 9.81,
			},
			Gyro: r3.Vector{
				X: math.Sin(t * 0.02) * 0.01,
				Y: math.Cos(t * 0.02) * 0.01,
				Z: 0,
			},
			Orientation: mgl64.Quat{W: 1, V: mgl64.Vec3{0, 0, 0}},
		},
		GPS: rovertypes.GPSFix{
			Position: s2.LatLngFromDegrees(
				37.7749+math.Sin(t*0.0001)*0.0001,
				-122.4194+math.Cos(t*0.0001)*0.0001,
			),
			Altitude: 10.0 + math.Sin(t*0.01),
			Accuracy: 2.5,
		},
		Battery: battery,
	}
}
