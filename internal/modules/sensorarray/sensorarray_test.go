package sensorarray

import (
	"testing"
)

func TestGenerateFrameDistanceSensorsStayInRange(t *testing.T) {
	for _, counter := range []uint64{0, 1, 50, 1000} {
		frame := generateFrame(counter)

		if len(frame.DistanceSensors) != 4 {
			t.Fatalf("expected 4 distance sensors, got %d", len(frame.DistanceSensors))
		}
		for i, d := range frame.DistanceSensors {
			if d < 0 {
				t.Errorf("tick %d: sensor %d reported negative distance %.3f", counter, i, d)
			}
		}
	}
}

func TestGenerateFrameBatteryDecaysAndFloors(t *testing.T) {
	early := generateFrame(0)
	late := generateFrame(100000)

	if late.Battery >= early.Battery {
		t.Errorf("expected battery to decay over ticks, early=%.3f late=%.3f", early.Battery, late.Battery)
	}
	if late.Battery < 0.85-0.3-1e-9 {
		t.Errorf("expected battery floor respected, got %.3f", late.Battery)
	}
}
