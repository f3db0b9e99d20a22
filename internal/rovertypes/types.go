// Package rovertypes holds the immutable value types exchanged between
// rover modules. Every type here is safe to copy and safe to share across
// goroutine boundaries: nothing in this package carries a mutex or a pointer
// to mutable state.
package rovertypes

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"github.com/golang/geo/s2"
)

// LogLevel orders log severities. Debug < Info < Warn < Error.
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// LogRecord is a single structured log emission from a module.
type LogRecord struct {
	Timestamp time.Time
	Level     LogLevel
	Module    string
	Message   string
}

// IMU is the inertial measurement triple carried by a SensorFrame.
type IMU struct {
	Accel       r3.Vector // m/s^2
	Gyro        r3.Vector // rad/s
	Orientation mgl64.Quat
}

// GPSFix is a single satellite-navigation reading.
type GPSFix struct {
	Position s2.LatLng
	Altitude float64
	Accuracy float64
}

// SensorFrame is one tick of simulated sensor data. DistanceSensors is
// ordered front, left, right, back by convention.
type SensorFrame struct {
	Timestamp       time.Time
	DistanceSensors []float64
	IMU             IMU
	GPS             GPSFix
	Battery         float64 // fraction in [0, 1]
}

// HealthKind classifies hardware health.
type HealthKind int

const (
	HealthHealthy HealthKind = iota
	HealthWarning
	HealthCritical
)

// Health carries a HealthKind plus an optional reason for non-healthy kinds.
type Health struct {
	Kind   HealthKind
	Reason string
}

// HardwareStatus is a periodic snapshot published by HardwareInterface.
type HardwareStatus struct {
	Timestamp        time.Time
	BatteryVoltage   float64
	MotorTemps       []float64
	Health           Health
}

// ManualControlCmd is the tagged union of manual-drive commands.
type ManualControlCmd interface{ manualControlCmd() }

type MoveForward struct{ Speed float64 }
type MoveBackward struct{ Speed float64 }
type TurnLeft struct{ Rate float64 }
type TurnRight struct{ Rate float64 }
type StopManual struct{}

func (MoveForward) manualControlCmd()  {}
func (MoveBackward) manualControlCmd() {}
func (TurnLeft) manualControlCmd()     {}
func (TurnRight) manualControlCmd()    {}
func (StopManual) manualControlCmd()   {}

// MissionCmd is the tagged union of mission commands.
type MissionCmd interface{ missionCmd() }

type GoToWaypoint struct{ Waypoint Waypoint }
type FollowPath struct{ Waypoints []Waypoint }
type Patrol struct {
	Waypoints []Waypoint
	LoopCount int
}
type ReturnHome struct{}

func (GoToWaypoint) missionCmd() {}
func (FollowPath) missionCmd()   {}
func (Patrol) missionCmd()       {}
func (ReturnHome) missionCmd()   {}

// SystemCmdKind enumerates the system-command variants.
type SystemCmdKind int

const (
	SystemPause SystemCmdKind = iota
	SystemResume
	SystemEmergencyStop
	SystemCalibrate
)

type SystemCmd struct{ Kind SystemCmdKind }

func (SystemCmd) systemCmd() {}

// UserCommand is the tagged union {ManualControl | MissionCommand | SystemCommand}.
type UserCommand interface{ userCommand() }

type ManualControl struct{ Cmd ManualControlCmd }
type MissionCommand struct{ Cmd MissionCmd }
type SystemCommand struct{ Cmd SystemCmd }

func (ManualControl) userCommand()  {}
func (MissionCommand) userCommand() {}
func (SystemCommand) userCommand()  {}

// Waypoint is a navigation target expressed in lat/lon with an arrival
// tolerance in metres.
type Waypoint struct {
	Position  s2.LatLng
	Tolerance float64
}

// RobotPose is the full kinematic state of the rover.
type RobotPose struct {
	Position        r3.Vector
	Orientation     mgl64.Quat
	LinearVelocity  r3.Vector
	AngularVelocity r3.Vector
}

// ModeKind enumerates the top-level FSM states.
type ModeKind int

const (
	ModeIdle ModeKind = iota
	ModeManualControl
	ModeExecutingMission
	ModePaused
	ModeEmergencyStop
	ModeError
)

func (m ModeKind) String() string {
	switch m {
	case ModeIdle:
		return "Idle"
	case ModeManualControl:
		return "ManualControl"
	case ModeExecutingMission:
		return "ExecutingMission"
	case ModePaused:
		return "Paused"
	case ModeEmergencyStop:
		return "EmergencyStop"
	case ModeError:
		return "Error"
	default:
		return "Unknown"
	}
}

// RobotMode is the FSM state; Reason is populated only for ModeError.
type RobotMode struct {
	Kind   ModeKind
	Reason string
}

// ObstacleType classifies a perceived obstacle.
type ObstacleType int

const (
	ObstacleStatic ObstacleType = iota
	ObstacleDynamic
	ObstacleUnknown
)

type Obstacle struct {
	Position r3.Vector
	Size     r3.Vector
	Type     ObstacleType
}

// TerrainClass classifies the terrain underfoot.
type TerrainClass int

const (
	TerrainFlat TerrainClass = iota
	TerrainRough
	TerrainSteep
	TerrainUnknown
)

// EnvironmentState is the perception module's world model.
type EnvironmentState struct {
	Obstacles  []Obstacle
	Terrain    TerrainClass
	Confidence float64
}

// GoalType enumerates the kinds of navigation goal.
type GoalType int

const (
	GoalReachPosition GoalType = iota
	GoalOrientTowards
	GoalFollowTrajectory
)

// Goal is a target pose plus the intent behind reaching it.
type Goal struct {
	TargetPose RobotPose
	Type       GoalType
}

// Path is a non-empty ordered sequence of pose waypoints.
type Path struct {
	Waypoints     []RobotPose
	TotalDistance float64
	EstimatedTime float64 // seconds
}

// StanceKind enumerates posture configurations.
type StanceKind int

const (
	StanceNormal StanceKind = iota
	StanceLowProfile
	StanceHighClearance
	StanceTiltCompensation
)

// StanceConfig is the rover's posture; Angle is populated only for
// StanceTiltCompensation.
type StanceConfig struct {
	Kind      StanceKind
	Angle     float64
	Stability float64
}

// Behavior is the tagged union of high-level actuation intents.
type Behavior interface{ behavior() }

type BehaviorIdle struct{}
type MoveTowards struct {
	Target r3.Vector
	Speed  float64
}
type AvoidObstacle struct{ Direction r3.Vector }
type AdjustStance struct{ Stance StanceConfig }
type BehaviorEmergencyStop struct{}

func (BehaviorIdle) behavior()           {}
func (MoveTowards) behavior()            {}
func (AvoidObstacle) behavior()          {}
func (AdjustStance) behavior()           {}
func (BehaviorEmergencyStop) behavior()  {}

// BehaviorCommand is a time-stamped, prioritized Behavior addressed to the
// actuator. Higher priority wins ties.
type BehaviorCommand struct {
	Timestamp time.Time
	Behavior  Behavior
	Priority  int
}

// MotorCommand carries left/right wheel speeds in [-1, 1].
type MotorCommand struct {
	Left, Right float64
}

// CalibrationData holds the rover's physical constants.
type CalibrationData struct {
	WheelDiameter    float64
	WheelBase        float64
	MaxLinearSpeed   float64
	MaxAngularVel    float64
	SensorOffsets    []r3.Vector
}

// StatusUpdate is OutputManager's periodic synthesis of robot state, fed to
// both UserFeedback and Communication.
type StatusUpdate struct {
	Timestamp       time.Time
	Mode            RobotMode
	Pose            RobotPose
	CurrentMission  string // empty if no mission is active
	Battery         float64
}

// FeedbackKind classifies a UserFeedback message.
type FeedbackKind int

const (
	FeedbackStatus FeedbackKind = iota
	FeedbackWarning
)

// UserFeedback is a user-facing message derived from a StatusUpdate.
type UserFeedback struct {
	Message string
	Kind    FeedbackKind
}

// DefaultCalibration mirrors the defaults the original prototype seeded its
// calibration store with before any Update was observed: a 15cm wheel
// diameter, 30cm wheel base, and one sensor offset per distance sensor in
// SensorFrame.DistanceSensors order (front, left, right, back).
func DefaultCalibration() CalibrationData {
	return CalibrationData{
		WheelDiameter:  0.15,
		WheelBase:      0.30,
		MaxLinearSpeed: 2.0,
		MaxAngularVel:  1.5,
		SensorOffsets: []r3.Vector{
			{X: 0.20, Y: 0.0, Z: 0.10},
			{X: 0.0, Y: 0.15, Z: 0.10},
			{X: 0.0, Y: -0.15, Z: 0.10},
			{X: -0.20, Y: 0.0, Z: 0.10},
		},
	}
}
