// Package taskmission decomposes incoming mission commands into a task
// list and immediately emits one Goal per Navigate task.
//
// Deliberate bug preserved from the original source: each Goal's
// TargetPose.Position packs (lat, lon, 0) straight into a metric xyz
// field with no unit conversion. rovertypes.RobotPose.Position uses
// r3.Vector specifically so this compiles without a unit-safety check —
// see DESIGN.md's TaskMissionManager section for the rationale. Do not "fix" this; the
// design explicitly calls for preserving it.
package taskmission

import (
	"fmt"

	"context"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"github.com/golang/geo/s2"

	"roverctl/internal/bus"
	"roverctl/internal/rovertypes"
)

// TaskStatus tracks a Task's lifecycle; only Pending is ever observed in
// this implementation since tasks are not retried or completed.
type TaskStatus int

const (
	TaskPending TaskStatus = iota
)

// Task is a single Navigate step decomposed from a MissionCmd.
type Task struct {
	ID          uint64
	Description string
	Waypoint    rovertypes.Waypoint
	Status      TaskStatus
}

// Mission is an ordered set of Tasks derived from one UserCommand.
type Mission struct {
	ID       uint64
	Name     string
	Priority int
	Tasks    []Task
}

var homeWaypoint = rovertypes.Waypoint{Position: s2.LatLngFromDegrees(37.7749, -122.4194), Tolerance: 1.0}

// Module decomposes mission commands into Goals, tracking a process-local
// monotonic mission counter.
type Module struct {
	bus.Base

	CommandIn <-chan rovertypes.UserCommand
	ModeIn    <-chan rovertypes.RobotMode

	ToGoalPlanning chan<- rovertypes.Goal

	missionCounter uint64
	current        *Mission
}

func New(logCh chan<- rovertypes.LogRecord, commandIn <-chan rovertypes.UserCommand, modeIn <-chan rovertypes.RobotMode, toGoalPlanning chan<- rovertypes.Goal) *Module {
	return &Module{
		Base:           bus.NewBase("TaskMissionManager", logCh),
		CommandIn:      commandIn,
		ModeIn:         modeIn,
		ToGoalPlanning: toGoalPlanning,
	}
}

func (m *Module) Run(ctx context.Context) {
	m.Log(ctx, rovertypes.LevelInfo, "Starting task/mission manager")

	for {
		select {
		case <-ctx.Done():
			m.Log(ctx, rovertypes.LevelInfo, "Shutdown signal received")
			m.Stopped()
			return
		case cmd := <-m.CommandIn:
			m.handleCommand(ctx, cmd)
		case <-m.ModeIn:
			// Mode transitions are observed but do not currently alter
			// mission decomposition or execution.
		}
	}
}

func (m *Module) handleCommand(ctx context.Context, cmd rovertypes.UserCommand) {
	mc, ok := cmd.(rovertypes.MissionCommand)
	if !ok {
		return
	}

	mission := m.createMission(mc.Cmd)
	m.Log(ctx, rovertypes.LevelInfo, fmt.Sprintf("New mission: %s with %d tasks", mission.Name, len(mission.Tasks)))
	m.current = &mission

	for _, task := range mission.Tasks {
		bus.Send(ctx, m.ToGoalPlanning, taskToGoal(task))
	}
}

func (m *Module) createMission(cmd rovertypes.MissionCmd) Mission {
	m.missionCounter++

	var name string
	var tasks []Task

	switch c := cmd.(type) {
	case rovertypes.GoToWaypoint:
		name = fmt.Sprintf("GoTo(%.4f, %.4f)", c.Waypoint.Position.Lat.Degrees(), c.Waypoint.Position.Lng.Degrees())
		tasks = []Task{{ID: 1, Description: "Navigate to waypoint", Waypoint: c.Waypoint, Status: TaskPending}}
	case rovertypes.Patrol:
		for i, wp := range c.Waypoints {
			tasks = append(tasks, Task{ID: uint64(i + 1), Description: fmt.Sprintf("Waypoint %d", i+1), Waypoint: wp, Status: TaskPending})
		}
		name = fmt.Sprintf("Patrol %d waypoints x%d loops", len(c.Waypoints), c.LoopCount)
	case rovertypes.FollowPath:
		for i, wp := range c.Waypoints {
			tasks = append(tasks, Task{ID: uint64(i + 1), Description: fmt.Sprintf("Path point %d", i+1), Waypoint: wp, Status: TaskPending})
		}
		name = fmt.Sprintf("Follow path with %d points", len(c.Waypoints))
	case rovertypes.ReturnHome:
		name = "Return Home"
		tasks = []Task{{ID: 1, Description: "Navigate home", Waypoint: homeWaypoint, Status: TaskPending}}
	}

	return Mission{ID: m.missionCounter, Name: name, Priority: 5, Tasks: tasks}
}

// taskToGoal packs the waypoint's lat/lon degrees straight into the pose's
// xyz position, unconverted. See the package doc comment.
func taskToGoal(task Task) rovertypes.Goal {
	return rovertypes.Goal{
		TargetPose: rovertypes.RobotPose{
			Position:        r3.Vector{X: task.Waypoint.Position.Lat.Degrees(), Y: task.Waypoint.Position.Lng.Degrees(), Z: 0},
			Orientation:     mgl64.Quat{W: 1},
			LinearVelocity:  r3.Vector{},
			AngularVelocity: r3.Vector{},
		},
		Type: rovertypes.GoalReachPosition,
	}
}
