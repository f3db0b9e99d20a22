// Package kinematics implements the differential-drive translation from a
// high-level Behavior to a low-level MotorCommand, grounded on
// output/hardware_interface.rs's calculate_motor_command.
package kinematics

import (
	"math"

	"github.com/golang/geo/r3"
	"roverctl/internal/rovertypes"
)

// MotorCommandFor translates a Behavior into the MotorCommand the actuator
// should apply. AdjustStance and BehaviorIdle produce no motor movement;
// AdjustStance is acknowledged elsewhere but never drives the wheels.
func MotorCommandFor(b rovertypes.Behavior) rovertypes.MotorCommand {
	switch v := b.(type) {
	case rovertypes.MoveTowards:
		return moveTowards(v.Target, v.Speed)
	case rovertypes.AvoidObstacle:
		return rovertypes.MotorCommand{
			Left:  0.5 * v.Direction.Y,
			Right: -0.5 * v.Direction.Y,
		}
	case rovertypes.BehaviorEmergencyStop:
		return rovertypes.MotorCommand{Left: 0, Right: 0}
	case rovertypes.BehaviorIdle, rovertypes.AdjustStance:
		return rovertypes.MotorCommand{Left: 0, Right: 0}
	default:
		return rovertypes.MotorCommand{Left: 0, Right: 0}
	}
}

func moveTowards(target r3.Vector, speed float64) rovertypes.MotorCommand {
	theta := math.Atan2(target.Y, target.X)
	turn := math.Sin(theta)
	return rovertypes.MotorCommand{
		Left:  speed * (1 - 0.5*turn),
		Right: speed * (1 + 0.5*turn),
	}
}
