// Package stance maintains the rover's single posture configuration and
// answers correlated request/response queries from ObstacleAvoidance and
// GoalPlanning over one shared request channel, each caller supplying its
// own response channel, per the bidirectional
// request/response protocol this module was redesigned around (see
// Request type): a single Request carrying a correlation id replaces the
// original's two parallel one-way query/response channel pairs.
package stance

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"roverctl/internal/bus"
	"roverctl/internal/rovertypes"
)

// RequestKind distinguishes a read-only Query from a state-mutating Adjust.
type RequestKind int

const (
	Query RequestKind = iota
	Adjust
)

// Request is the single message type both ObstacleAvoidance and
// GoalPlanning send on the shared request channel. ID pairs each request
// with its Response. NewStance is only populated for Adjust.
type Request struct {
	ID          uuid.UUID
	Kind        RequestKind
	NewStance   rovertypes.StanceConfig
	ResponsesTo chan<- Response
}

// Response answers a Query by correlation id. Adjust requests receive no
// Response, matching the original one-way semantics.
type Response struct {
	ID     uuid.UUID
	Stance rovertypes.StanceConfig
}

// Module owns the current StanceConfig and answers Requests from the
// shared channel, publishing every Adjust to Behaviour.
type Module struct {
	bus.Base
	Requests    <-chan Request
	ToBehaviour chan<- rovertypes.StanceConfig

	current rovertypes.StanceConfig
}

func New(logCh chan<- rovertypes.LogRecord, requests <-chan Request, toBehaviour chan<- rovertypes.StanceConfig) *Module {
	return &Module{
		Base:        bus.NewBase("Stance", logCh),
		Requests:    requests,
		ToBehaviour: toBehaviour,
		current:     rovertypes.StanceConfig{Kind: rovertypes.StanceNormal, Stability: 1.0},
	}
}

func (m *Module) Run(ctx context.Context) {
	m.Log(ctx, rovertypes.LevelInfo, "Starting stance controller")

	for {
		select {
		case <-ctx.Done():
			m.Log(ctx, rovertypes.LevelInfo, "Shutdown signal received")
			m.Stopped()
			return
		case req := <-m.Requests:
			m.handle(ctx, req)
		}
	}
}

func (m *Module) handle(ctx context.Context, req Request) {
	switch req.Kind {
	case Query:
		select {
		case req.ResponsesTo <- Response{ID: req.ID, Stance: m.current}:
		case <-ctx.Done():
		}
	case Adjust:
		m.Log(ctx, rovertypes.LevelInfo, fmt.Sprintf("Adjusting stance: kind=%v", req.NewStance.Kind))
		m.current = req.NewStance
		bus.Send(ctx, m.ToBehaviour, req.NewStance)
	}
}
