package taskmission

import (
	"context"
	"testing"
	"time"

	"github.com/golang/geo/s2"

	"roverctl/internal/config"
	"roverctl/internal/rovertypes"
)

// TestTaskToGoalPreservesUnitConfusion locks in the intentional bug: lat/lon
// degrees are packed unconverted into the metric xyz position. This must
// not be "fixed" by a future change.
func TestTaskToGoalPreservesUnitConfusion(t *testing.T) {
	wp := rovertypes.Waypoint{Position: s2.LatLngFromDegrees(37.7749, -122.4194), Tolerance: 1.0}
	task := Task{ID: 1, Waypoint: wp}

	goal := taskToGoal(task)

	wantLat, wantLon := wp.Position.Lat.Degrees(), wp.Position.Lng.Degrees()
	if goal.TargetPose.Position.X != wantLat {
		t.Errorf("expected Position.X to be the raw latitude degrees %v, got %v", wantLat, goal.TargetPose.Position.X)
	}
	if goal.TargetPose.Position.Y != wantLon {
		t.Errorf("expected Position.Y to be the raw longitude degrees %v, got %v", wantLon, goal.TargetPose.Position.Y)
	}
}

func TestCreateMissionGoToWaypoint(t *testing.T) {
	logCh := make(chan rovertypes.LogRecord, config.LogQueueCapacity)
	commandIn := make(chan rovertypes.UserCommand, 1)
	modeIn := make(chan rovertypes.RobotMode, 1)
	toGoalPlanning := make(chan rovertypes.Goal, 1)

	m := New(logCh, commandIn, modeIn, toGoalPlanning)

	wp := rovertypes.Waypoint{Position: s2.LatLngFromDegrees(1, 2)}
	mission := m.createMission(rovertypes.GoToWaypoint{Waypoint: wp})

	if len(mission.Tasks) != 1 {
		t.Fatalf("expected exactly one task for GoToWaypoint, got %d", len(mission.Tasks))
	}
	if mission.Tasks[0].Waypoint != wp {
		t.Errorf("expected task waypoint to match the command, got %+v", mission.Tasks[0].Waypoint)
	}
}

func TestCreateMissionPatrolProducesOneTaskPerWaypoint(t *testing.T) {
	logCh := make(chan rovertypes.LogRecord, config.LogQueueCapacity)
	m := New(logCh, make(chan rovertypes.UserCommand, 1), make(chan rovertypes.RobotMode, 1), make(chan rovertypes.Goal, 1))

	waypoints := []rovertypes.Waypoint{
		{Position: s2.LatLngFromDegrees(1, 0)},
		{Position: s2.LatLngFromDegrees(2, 0)},
		{Position: s2.LatLngFromDegrees(3, 0)},
	}
	mission := m.createMission(rovertypes.Patrol{Waypoints: waypoints, LoopCount: 2})

	if len(mission.Tasks) != len(waypoints) {
		t.Errorf("expected %d tasks, got %d", len(waypoints), len(mission.Tasks))
	}
}

func TestHandleCommandEmitsOneGoalPerTask(t *testing.T) {
	logCh := make(chan rovertypes.LogRecord, config.LogQueueCapacity)
	commandIn := make(chan rovertypes.UserCommand, 1)
	modeIn := make(chan rovertypes.RobotMode, 1)
	toGoalPlanning := make(chan rovertypes.Goal, 4)

	m := New(logCh, commandIn, modeIn, toGoalPlanning)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go m.Run(ctx)

	commandIn <- rovertypes.MissionCommand{Cmd: rovertypes.Patrol{
		Waypoints: []rovertypes.Waypoint{
			{Position: s2.LatLngFromDegrees(1, 0)},
			{Position: s2.LatLngFromDegrees(2, 0)},
		},
		LoopCount: 1,
	}}

	received := 0
	for i := 0; i < 2; i++ {
		select {
		case <-toGoalPlanning:
			received++
		case <-time.After(time.Second):
			t.Fatalf("timed out waiting for goal %d", i+1)
		}
	}
	if received != 2 {
		t.Errorf("expected 2 goals emitted, got %d", received)
	}
}

func TestHandleCommandIgnoresNonMissionCommands(t *testing.T) {
	logCh := make(chan rovertypes.LogRecord, config.LogQueueCapacity)
	commandIn := make(chan rovertypes.UserCommand, 1)
	modeIn := make(chan rovertypes.RobotMode, 1)
	toGoalPlanning := make(chan rovertypes.Goal, 1)

	m := New(logCh, commandIn, modeIn, toGoalPlanning)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go m.Run(ctx)

	commandIn <- rovertypes.ManualControl{Cmd: rovertypes.MoveForward{Speed: 1.0}}

	select {
	case got := <-toGoalPlanning:
		t.Errorf("expected no goal emitted for a non-mission command, got %+v", got)
	case <-time.After(100 * time.Millisecond):
	}
}
