package rovertypes

import "testing"

func TestDefaultCalibrationHasOneOffsetPerDistanceSensor(t *testing.T) {
	cal := DefaultCalibration()

	if len(cal.SensorOffsets) != 4 {
		t.Fatalf("expected one sensor offset per distance sensor (front, left, right, back), got %d", len(cal.SensorOffsets))
	}

	if cal.WheelDiameter <= 0 {
		t.Error("expected a positive wheel diameter default")
	}
	if cal.WheelBase <= 0 {
		t.Error("expected a positive wheel base default")
	}
	if cal.MaxLinearSpeed <= 0 {
		t.Error("expected a positive max linear speed default")
	}
	if cal.MaxAngularVel <= 0 {
		t.Error("expected a positive max angular velocity default")
	}
}

func TestDefaultCalibrationIsFreshEachCall(t *testing.T) {
	a := DefaultCalibration()
	b := DefaultCalibration()

	a.SensorOffsets[0].X = 999

	if b.SensorOffsets[0].X == 999 {
		t.Error("expected DefaultCalibration to return an independent slice per call")
	}
}
