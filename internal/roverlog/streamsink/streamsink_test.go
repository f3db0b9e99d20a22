package streamsink

import (
	"errors"
	"net"
	"net/http"
	"sync"
	"testing"
	"time"

	"roverctl/internal/rovererr"
	"roverctl/internal/rovertypes"
	"roverctl/shared/event_bus"
)

func newTestSink() *Sink {
	return &Sink{
		bus:     event_bus.NewEventBus(),
		clients: make(map[*wsClient]struct{}),
	}
}

func TestPublishDeliversToModuleTopic(t *testing.T) {
	s := newTestSink()

	var mu sync.Mutex
	var received []byte
	done := make(chan struct{})

	s.bus.Subscribe("roverOS/TestModule", nil, func(ev event_bus.Event) {
		if data, ok := ev.GetData().([]byte); ok {
			mu.Lock()
			received = data
			mu.Unlock()
			close(done)
		}
	})

	s.Publish(rovertypes.LogRecord{
		Timestamp: time.Now(),
		Level:     rovertypes.LevelInfo,
		Module:    "TestModule",
		Message:   "hello",
	})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("expected subscriber on the module topic to receive the published record")
	}

	mu.Lock()
	defer mu.Unlock()
	if len(received) == 0 {
		t.Error("expected non-empty encoded payload")
	}
}

func TestPublishDeliversToWildcardTopic(t *testing.T) {
	s := newTestSink()

	done := make(chan struct{})
	s.bus.Subscribe("roverOS/*", nil, func(ev event_bus.Event) {
		close(done)
	})

	s.Publish(rovertypes.LogRecord{
		Timestamp: time.Now(),
		Level:     rovertypes.LevelWarn,
		Module:    "OtherModule",
		Message:   "hello",
	})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("expected subscriber on the wildcard topic to receive every published record")
	}
}

func TestPublishDoesNotDeliverToUnrelatedModuleTopic(t *testing.T) {
	s := newTestSink()

	delivered := false
	s.bus.Subscribe("roverOS/OtherModule", nil, func(ev event_bus.Event) {
		delivered = true
	})

	s.Publish(rovertypes.LogRecord{
		Timestamp: time.Now(),
		Level:     rovertypes.LevelInfo,
		Module:    "TestModule",
		Message:   "hello",
	})

	time.Sleep(50 * time.Millisecond)
	if delivered {
		t.Error("expected a subscriber on an unrelated module topic not to receive this record")
	}
}

// TestListenWrapsBusyPortInErrLogPortInUse confirms a bind against an
// already-listening port is reported through ErrLogPortInUse rather than
// the generic ErrLogStreamUnavailable, so callers can distinguish the two
// with errors.Is instead of string matching.
func TestListenWrapsBusyPortInErrLogPortInUse(t *testing.T) {
	occupied, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to reserve a port for the test: %v", err)
	}
	defer occupied.Close()

	port := occupied.Addr().(*net.TCPAddr).Port

	_, err = Listen(port)
	if err == nil {
		t.Fatal("expected Listen to fail against an already-bound port")
	}
	if !errors.Is(err, rovererr.ErrLogPortInUse) {
		t.Errorf("expected error to wrap ErrLogPortInUse, got %v", err)
	}
	if errors.Is(err, rovererr.ErrLogStreamUnavailable) {
		t.Error("expected a busy-port failure not to also match the generic stream-unavailable sentinel")
	}
}

func TestCloseClosesClientSendChannels(t *testing.T) {
	s := newTestSink()
	c := &wsClient{send: make(chan []byte, 1)}
	s.clients[c] = struct{}{}
	s.server = &http.Server{}

	if err := s.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}

	select {
	case _, ok := <-c.send:
		if ok {
			t.Error("expected the client's send channel to be closed, not have a value")
		}
	default:
		t.Error("expected the client's send channel to be closed")
	}
}
