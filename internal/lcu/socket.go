package lcu

import (
	"crypto/tls"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/websocket"
)

// Event topics the engine subscribes to.
const (
	TopicChampSelectSession = "OnJsonApiEvent_lol-champ-select_v1_session"
	TopicReadyCheck         = "OnJsonApiEvent_lol-matchmaking_v1_ready-check"
)

// WAMP opcodes used by the client's event socket.
const (
	opSubscribe = 5
	opEvent     = 8
)

// Event is one push notification from the client.
type Event struct {
	URI       string
	EventType string // Create, Update or Delete
	Data      json.RawMessage
}

// EventHandler consumes one event. Handlers run sequentially on the socket's
// read loop, so one handler finishes before the next event is dispatched.
type EventHandler func(Event)

// Socket is a subscription connection to the client's event push API.
type Socket struct {
	conn     *websocket.Conn
	handlers map[string]EventHandler
}

// DialSocket connects to the client's websocket endpoint.
func DialSocket(creds Credentials) (*Socket, error) {
	dialer := websocket.Dialer{
		TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
	}

	header := http.Header{}
	header.Set("Authorization", basicAuth("riot", creds.Password))

	url := fmt.Sprintf("wss://127.0.0.1:%d/", creds.Port)
	conn, _, err := dialer.Dial(url, header)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to client socket: %w", err)
	}

	return &Socket{
		conn:     conn,
		handlers: make(map[string]EventHandler),
	}, nil
}

// Subscribe registers a handler and sends the subscription frame for a topic.
// Must be called before Listen.
func (s *Socket) Subscribe(topic string, handler EventHandler) error {
	s.handlers[topic] = handler
	if err := s.conn.WriteJSON([]any{opSubscribe, topic}); err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", topic, err)
	}
	return nil
}

// Listen reads and dispatches events until the connection closes. It returns
// the read error that ended the loop.
func (s *Socket) Listen() error {
	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			return err
		}

		// The client answers subscriptions with empty frames.
		if len(data) == 0 {
			continue
		}

		var frame []json.RawMessage
		if err := json.Unmarshal(data, &frame); err != nil || len(frame) < 3 {
			continue
		}

		var opcode int
		if err := json.Unmarshal(frame[0], &opcode); err != nil || opcode != opEvent {
			continue
		}

		var topic string
		if err := json.Unmarshal(frame[1], &topic); err != nil {
			continue
		}

		handler, ok := s.handlers[topic]
		if !ok {
			continue
		}

		var payload struct {
			Data      json.RawMessage `json:"data"`
			EventType string          `json:"eventType"`
			URI       string          `json:"uri"`
		}
		if err := json.Unmarshal(frame[2], &payload); err != nil {
			log.Printf("Malformed event payload on %s: %v", topic, err)
			continue
		}

		dispatch(handler, Event{
			URI:       payload.URI,
			EventType: payload.EventType,
			Data:      payload.Data,
		})
	}
}

// dispatch invokes a handler, containing panics so a single bad event never
// kills the read loop.
func dispatch(handler EventHandler, ev Event) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Panic handling %s: %v", ev.URI, r)
		}
	}()
	handler(ev)
}

// Close shuts the connection down, ending Listen.
func (s *Socket) Close() error {
	return s.conn.Close()
}

func basicAuth(user, password string) string {
	req := http.Request{Header: http.Header{}}
	req.SetBasicAuth(user, password)
	return req.Header.Get("Authorization")
}
