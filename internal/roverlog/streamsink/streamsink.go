// Package streamsink is the Logger module's live network sink: a loopback
// websocket server exposing the same per-module channels as the durable
// file sink, under the same foxglove.Log schema.
//
// Grounded on the teacher server's wsHandler stub in http_server/robot.go
// (chi route + gorilla/websocket upgrade) and the module's existing
// event_bus package, here repurposed as the per-topic fanout: connected
// clients subscribe to "roverOS/<module>" topics the same way the
// teacher's event bus subscribes handlers to event types.
package streamsink

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"roverctl/internal/roverlog/schema"
	"roverctl/internal/rovererr"
	"roverctl/internal/rovertypes"
	"roverctl/shared/event_bus"
)

// ServerName is the fixed identifier this stream advertises itself under.
const ServerName = "roverctl-log-stream"

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Sink fans out encoded log messages to connected websocket clients,
// grouped by per-module topic.
type Sink struct {
	bus    event_bus.EventBus
	server *http.Server

	mu       sync.Mutex
	clients  map[*wsClient]struct{}
}

type wsClient struct {
	conn *websocket.Conn
	send chan []byte
	sub  *event_bus.Subscriber
}

// Listen starts the loopback websocket server on 127.0.0.1:port. A bind
// failure degrades this sink only; the caller decides whether that is
// fatal for the run. Callers distinguish a busy port from any other bind
// failure with errors.Is against rovererr.ErrLogPortInUse /
// rovererr.ErrLogStreamUnavailable.
func Listen(port int) (*Sink, error) {
	s := &Sink{
		bus:     event_bus.NewEventBus(),
		clients: make(map[*wsClient]struct{}),
	}

	r := chi.NewRouter()
	r.Get("/", s.handleWS)

	ln, err := newListener(port)
	if err != nil {
		if errors.Is(err, syscall.EADDRINUSE) {
			return nil, fmt.Errorf("streamsink: %w: port %d", rovererr.ErrLogPortInUse, port)
		}
		return nil, fmt.Errorf("streamsink: %w: %v", rovererr.ErrLogStreamUnavailable, err)
	}

	s.server = &http.Server{Handler: r}
	go func() {
		_ = s.server.Serve(ln)
	}()

	return s, nil
}

func (s *Sink) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	topic := "roverOS/*"
	if module := r.URL.Query().Get("module"); module != "" {
		topic = "roverOS/" + module
	}

	client := &wsClient{conn: conn, send: make(chan []byte, 64)}
	client.sub = s.bus.Subscribe(topic, nil, func(ev event_bus.Event) {
		if data, ok := ev.GetData().([]byte); ok {
			select {
			case client.send <- data:
			default:
			}
		}
	})

	s.mu.Lock()
	s.clients[client] = struct{}{}
	s.mu.Unlock()

	go s.writeLoop(client)
}

func (s *Sink) writeLoop(c *wsClient) {
	defer func() {
		s.mu.Lock()
		delete(s.clients, c)
		s.mu.Unlock()
		s.bus.Unsubscribe("roverOS/*", c.sub)
		c.conn.Close()
	}()

	for data := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
		if err := c.conn.WriteMessage(websocket.BinaryMessage, data); err != nil {
			return
		}
	}
}

// Publish fans a LogRecord out to every connected client on the record's
// module topic. Delivery here must happen before the file sink writes the
// same record so live consumers are never blocked by disk latency.
func (s *Sink) Publish(rec rovertypes.LogRecord) {
	data := schema.EncodeLog(rec.Timestamp, schema.FromRoverLevel(rec.Level), rec.Module, rec.Message)
	s.bus.PublishData("roverOS/"+rec.Module, data)
	s.bus.PublishData("roverOS/*", data)
}

func newListener(port int) (net.Listener, error) {
	return net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", port))
}

// Close stops accepting new connections and closes all live ones.
func (s *Sink) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	err := s.server.Shutdown(ctx)

	s.mu.Lock()
	for c := range s.clients {
		close(c.send)
	}
	s.mu.Unlock()

	return err
}
