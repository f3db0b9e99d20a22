package hardware

import (
	"context"
	"testing"
	"time"

	"roverctl/internal/rovertypes"
)

func TestGenerateStatusVoltageDecays(t *testing.T) {
	s0 := generateStatus(0)
	s10 := generateStatus(10)

	if s10.BatteryVoltage >= s0.BatteryVoltage {
		t.Errorf("expected voltage to decay over ticks, tick0=%.3f tick10=%.3f", s0.BatteryVoltage, s10.BatteryVoltage)
	}
	if s0.Health.Kind != rovertypes.HealthHealthy {
		t.Errorf("expected healthy status at tick 0, got %v", s0.Health.Kind)
	}
}

func TestGenerateStatusClampsAtFloorAboveWarnThreshold(t *testing.T) {
	// Enough ticks to push voltage to the floor, which sits above the warn
	// threshold.
	s := generateStatus(1000)

	if s.Health.Kind != rovertypes.HealthHealthy {
		t.Errorf("expected healthy status at the floor, which is above the warn threshold, got %v", s.Health.Kind)
	}
	if s.BatteryVoltage != voltageFloor {
		t.Errorf("expected voltage clamped at floor %.2f, got %.2f", voltageFloor, s.BatteryVoltage)
	}
}

func TestHandleBehaviorForwardsMotorCommand(t *testing.T) {
	logCh := make(chan rovertypes.LogRecord, 32)
	sensorIn := make(chan rovertypes.SensorFrame, 1)
	behaviorIn := make(chan rovertypes.BehaviorCommand, 1)
	toInputManagerSensor := make(chan rovertypes.SensorFrame, 1)
	toInputManagerStatus := make(chan rovertypes.HardwareStatus, 1)
	toOutputManagerMotor := make(chan rovertypes.MotorCommand, 1)

	m := New(logCh, sensorIn, behaviorIn, toInputManagerSensor, toInputManagerStatus, toOutputManagerMotor)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go m.Run(ctx)

	behaviorIn <- rovertypes.BehaviorCommand{Behavior: rovertypes.BehaviorEmergencyStop{}}

	select {
	case motor := <-toOutputManagerMotor:
		if motor.Left != 0 || motor.Right != 0 {
			t.Errorf("expected zero motor command for emergency stop, got %+v", motor)
		}
	case <-time.After(time.Second):
		t.Fatal("expected a motor command forwarded to OutputManager")
	}
}

func TestHandleBehaviorSendsNoMotorCommandForAdjustStance(t *testing.T) {
	logCh := make(chan rovertypes.LogRecord, 32)
	sensorIn := make(chan rovertypes.SensorFrame, 1)
	behaviorIn := make(chan rovertypes.BehaviorCommand, 1)
	toInputManagerSensor := make(chan rovertypes.SensorFrame, 1)
	toInputManagerStatus := make(chan rovertypes.HardwareStatus, 1)
	toOutputManagerMotor := make(chan rovertypes.MotorCommand, 1)

	m := New(logCh, sensorIn, behaviorIn, toInputManagerSensor, toInputManagerStatus, toOutputManagerMotor)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go m.Run(ctx)

	behaviorIn <- rovertypes.BehaviorCommand{Behavior: rovertypes.AdjustStance{}}

	select {
	case motor := <-toOutputManagerMotor:
		t.Errorf("expected no motor command for AdjustStance, got %+v", motor)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestHandleBehaviorSendsZeroMotorCommandForIdle(t *testing.T) {
	logCh := make(chan rovertypes.LogRecord, 32)
	sensorIn := make(chan rovertypes.SensorFrame, 1)
	behaviorIn := make(chan rovertypes.BehaviorCommand, 1)
	toInputManagerSensor := make(chan rovertypes.SensorFrame, 1)
	toInputManagerStatus := make(chan rovertypes.HardwareStatus, 1)
	toOutputManagerMotor := make(chan rovertypes.MotorCommand, 1)

	m := New(logCh, sensorIn, behaviorIn, toInputManagerSensor, toInputManagerStatus, toOutputManagerMotor)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go m.Run(ctx)

	behaviorIn <- rovertypes.BehaviorCommand{Behavior: rovertypes.BehaviorIdle{}}

	select {
	case motor := <-toOutputManagerMotor:
		if motor.Left != 0 || motor.Right != 0 {
			t.Errorf("expected zero motor command for BehaviorIdle, got %+v", motor)
		}
	case <-time.After(time.Second):
		t.Fatal("expected a zero motor command forwarded to OutputManager for BehaviorIdle")
	}
}

func TestSensorFrameRelayedToInputManager(t *testing.T) {
	logCh := make(chan rovertypes.LogRecord, 32)
	sensorIn := make(chan rovertypes.SensorFrame, 1)
	behaviorIn := make(chan rovertypes.BehaviorCommand, 1)
	toInputManagerSensor := make(chan rovertypes.SensorFrame, 1)
	toInputManagerStatus := make(chan rovertypes.HardwareStatus, 1)
	toOutputManagerMotor := make(chan rovertypes.MotorCommand, 1)

	m := New(logCh, sensorIn, behaviorIn, toInputManagerSensor, toInputManagerStatus, toOutputManagerMotor)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go m.Run(ctx)

	frame := rovertypes.SensorFrame{Battery: 0.5}
	sensorIn <- frame

	select {
	case got := <-toInputManagerSensor:
		if got.Battery != frame.Battery {
			t.Errorf("expected relayed frame to match, got %+v", got)
		}
	case <-time.After(time.Second):
		t.Fatal("expected the sensor frame relayed to InputManager")
	}
}
