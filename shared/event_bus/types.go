// Package event_bus is a small typed publish/subscribe fanout, adapted
// from the original server's robot-event bus into the live log stream
// sink's per-module topic fanout (roverOS/<module> -> connected websocket
// clients). If a topic has zero subscribers, publishing to it is a no-op.
package event_bus

import "roverctl/shared/event_bus/data_structures"

// EventBus_t is the default EventBus implementation: one Set of
// subscriber ids per topic, and one handler function per subscriber id.
type EventBus_t struct {
	subscriptions *data_structures.SafeMap[string, *data_structures.Set[Subscriber]]
	handlers      *data_structures.SafeMap[Subscriber, SubscriberHandler]
}

// Subscriber identifies a registered handler. Only ID participates in
// equality so Subscriber is usable as a map/set key; the handler function
// itself is stored out-of-band in EventBus_t.handlers.
type Subscriber struct {
	ID string
}

// SubscriberHandler is invoked, in its own goroutine, once per published
// Event matching the topic it was registered under.
type SubscriberHandler func(event Event)

// Event is anything with a topic and a payload.
type Event interface {
	GetType() string
	GetData() interface{}
}

// DefaultEvent is the EventBus's own Event implementation, used by
// PublishData.
type DefaultEvent struct {
	Type string
	Data interface{}
}
