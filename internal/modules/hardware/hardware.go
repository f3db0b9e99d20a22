// Package hardware implements HardwareInterface, the sole boundary to real
// (or simulated) motor and sensor hardware: it relays sensor frames to
// InputManager, translates validated BehaviorCommands into MotorCommands
// via differential-drive kinematics, and synthesizes a declining-battery
// HardwareStatus every 2s.
package hardware

import (
	"context"
	"fmt"
	"time"

	"roverctl/internal/bus"
	"roverctl/internal/kinematics"
	"roverctl/internal/rovertypes"
)

const (
	statusTick            = 2 * time.Second
	startVoltage          = 12.6
	voltageDropPerTick    = 0.01
	voltageFloor          = 12.1
	voltageWarnThreshold  = 11.5
)

// Module is the actuator-facing boundary: BehaviorCommand in, MotorCommand
// out, plus a periodic synthetic HardwareStatus.
type Module struct {
	bus.Base

	SensorIn   <-chan rovertypes.SensorFrame
	BehaviorIn <-chan rovertypes.BehaviorCommand

	ToInputManagerSensor chan<- rovertypes.SensorFrame
	ToInputManagerStatus chan<- rovertypes.HardwareStatus
	ToOutputManagerMotor chan<- rovertypes.MotorCommand
}

func New(
	logCh chan<- rovertypes.LogRecord,
	sensorIn <-chan rovertypes.SensorFrame,
	behaviorIn <-chan rovertypes.BehaviorCommand,
	toInputManagerSensor chan<- rovertypes.SensorFrame,
	toInputManagerStatus chan<- rovertypes.HardwareStatus,
	toOutputManagerMotor chan<- rovertypes.MotorCommand,
) *Module {
	return &Module{
		Base:                 bus.NewBase("HardwareInterface", logCh),
		SensorIn:             sensorIn,
		BehaviorIn:           behaviorIn,
		ToInputManagerSensor: toInputManagerSensor,
		ToInputManagerStatus: toInputManagerStatus,
		ToOutputManagerMotor: toOutputManagerMotor,
	}
}

func (m *Module) Run(ctx context.Context) {
	m.Log(ctx, rovertypes.LevelInfo, "Starting hardware interface")

	ticker := time.NewTicker(statusTick)
	defer ticker.Stop()

	var counter uint64

	for {
		select {
		case <-ctx.Done():
			m.Log(ctx, rovertypes.LevelInfo, "Shutdown signal received")
			m.Stopped()
			return
		case frame := <-m.SensorIn:
			if !bus.Send(ctx, m.ToInputManagerSensor, frame) {
				m.Log(ctx, rovertypes.LevelError, "Failed to forward sensor data to input manager")
			}
		case cmd := <-m.BehaviorIn:
			m.handleBehavior(ctx, cmd)
		case <-ticker.C:
			status := generateStatus(counter)
			if !bus.Send(ctx, m.ToInputManagerStatus, status) {
				m.Log(ctx, rovertypes.LevelError, "Failed to send hardware status")
			}
			counter++
		}
	}
}

func (m *Module) handleBehavior(ctx context.Context, cmd rovertypes.BehaviorCommand) {
	motor := kinematics.MotorCommandFor(cmd.Behavior)

	switch cmd.Behavior.(type) {
	case rovertypes.MoveTowards:
		m.Log(ctx, rovertypes.LevelDebug, fmt.Sprintf("Executing MoveTowards: L=%.2f, R=%.2f", motor.Left, motor.Right))
	case rovertypes.AvoidObstacle:
		m.Log(ctx, rovertypes.LevelDebug, fmt.Sprintf("Executing AvoidObstacle: L=%.2f, R=%.2f", motor.Left, motor.Right))
	case rovertypes.BehaviorEmergencyStop:
		m.Log(ctx, rovertypes.LevelWarn, "Emergency stop executed")
	case rovertypes.AdjustStance:
		m.Log(ctx, rovertypes.LevelDebug, "Stance adjustment received")
		return
	}

	bus.Send(ctx, m.ToOutputManagerMotor, motor)
}

func generateStatus(counter uint64) rovertypes.HardwareStatus {
	voltage := startVoltage - minF(float64(counter)*voltageDropPerTick, startVoltage-voltageFloor)

	health := rovertypes.Health{Kind: rovertypes.HealthHealthy}
	if voltage < voltageWarnThreshold {
		health = rovertypes.Health{Kind: rovertypes.HealthWarning, Reason: "Low battery voltage"}
	}

	return rovertypes.HardwareStatus{
		Timestamp:      time.Now(),
		BatteryVoltage: voltage,
		MotorTemps:     []float64{45.0, 46.5, 44.8, 47.2},
		Health:         health,
	}
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
