package behaviour

import (
	"context"
	"testing"
	"time"

	"github.com/golang/geo/r3"
	"roverctl/internal/rovertypes"
)

func newTestModule() (*Module, chan rovertypes.Path, chan rovertypes.Path, chan rovertypes.StanceConfig, chan rovertypes.BehaviorCommand) {
	logCh := make(chan rovertypes.LogRecord, 32)
	goalPathIn := make(chan rovertypes.Path, 1)
	obstaclePathIn := make(chan rovertypes.Path, 1)
	stanceIn := make(chan rovertypes.StanceConfig, 1)
	toSafety := make(chan rovertypes.BehaviorCommand, 2)

	m := New(logCh, goalPathIn, obstaclePathIn, stanceIn, toSafety)
	return m, goalPathIn, obstaclePathIn, stanceIn, toSafety
}

func TestExecutePathEmitsMoveTowardsFirstWaypoint(t *testing.T) {
	m, goalPathIn, _, _, toSafety := newTestModule()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go m.Run(ctx)

	target := r3.Vector{X: 1, Y: 2, Z: 3}
	goalPathIn <- rovertypes.Path{Waypoints: []rovertypes.RobotPose{{Position: target}, {}}}

	select {
	case cmd := <-toSafety:
		mv, ok := cmd.Behavior.(rovertypes.MoveTowards)
		if !ok {
			t.Fatalf("expected MoveTowards, got %T", cmd.Behavior)
		}
		if mv.Target != target {
			t.Errorf("expected target %+v, got %+v", target, mv.Target)
		}
		if cmd.Priority != pathMovePriority {
			t.Errorf("expected priority %d, got %d", pathMovePriority, cmd.Priority)
		}
	case <-time.After(time.Second):
		t.Fatal("expected a behavior command")
	}
}

func TestExecutePathIgnoresEmptyPath(t *testing.T) {
	m, _, obstaclePathIn, _, toSafety := newTestModule()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go m.Run(ctx)

	obstaclePathIn <- rovertypes.Path{}

	select {
	case got := <-toSafety:
		t.Errorf("expected no command for an empty path, got %+v", got)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestAdjustForStanceUsesHigherPriority(t *testing.T) {
	m, _, _, stanceIn, toSafety := newTestModule()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go m.Run(ctx)

	stanceIn <- rovertypes.StanceConfig{Kind: rovertypes.StanceTiltCompensation, Angle: 0.3}

	select {
	case cmd := <-toSafety:
		adj, ok := cmd.Behavior.(rovertypes.AdjustStance)
		if !ok {
			t.Fatalf("expected AdjustStance, got %T", cmd.Behavior)
		}
		if adj.Stance.Kind != rovertypes.StanceTiltCompensation {
			t.Errorf("expected stance kind preserved, got %v", adj.Stance.Kind)
		}
		if cmd.Priority != stanceAdjustPriority {
			t.Errorf("expected priority %d, got %d", stanceAdjustPriority, cmd.Priority)
		}
		if cmd.Priority <= pathMovePriority {
			t.Errorf("expected stance adjustment priority to outrank path movement")
		}
	case <-time.After(time.Second):
		t.Fatal("expected a behavior command")
	}
}
