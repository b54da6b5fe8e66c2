package ws

import (
	"encoding/json"
	"sync"

	"github.com/sirupsen/logrus"
)

// MessageType defines the type of WebSocket message
type MessageType string

// Messages pushed to monitoring teachers
const (
	MsgViolation       MessageType = "violation"
	MsgAttemptStarted  MessageType = "attempt_started"
	MsgAttemptFinished MessageType = "attempt_finished"
)

// Message is the WebSocket envelope format
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Hub fans proctor events out to the teachers monitoring each test. Student
// attempt connections feed events in through the REST/WS handler; monitor
// connections only receive.
type Hub struct {
	// Test -> monitor connections
	monitors map[string]map[*Connection]bool

	mu sync.RWMutex

	register   chan *Connection
	unregister chan *Connection
	broadcast  chan *outbound
}

// Connection represents one monitoring teacher's WebSocket connection
type Connection struct {
	TestID string
	UserID string
	Send   chan []byte
	Hub    *Hub
}

type outbound struct {
	testID  string
	message *Message
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	h := &Hub{
		monitors:   make(map[string]map[*Connection]bool),
		register:   make(chan *Connection),
		unregister: make(chan *Connection),
		broadcast:  make(chan *outbound, 256),
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			if h.monitors[conn.TestID] == nil {
				h.monitors[conn.TestID] = make(map[*Connection]bool)
			}
			h.monitors[conn.TestID][conn] = true
			h.mu.Unlock()
			logrus.WithFields(logrus.Fields{"testId": conn.TestID, "userId": conn.UserID}).Info("monitor connected")

		case conn := <-h.unregister:
			h.mu.Lock()
			if conns, ok := h.monitors[conn.TestID]; ok && conns[conn] {
				delete(conns, conn)
				close(conn.Send)
				if len(conns) == 0 {
					delete(h.monitors, conn.TestID)
				}
			}
			h.mu.Unlock()
			logrus.WithFields(logrus.Fields{"testId": conn.TestID, "userId": conn.UserID}).Info("monitor disconnected")

		case out := <-h.broadcast:
			data, err := json.Marshal(out.message)
			if err != nil {
				continue
			}
			h.mu.RLock()
			for conn := range h.monitors[out.testID] {
				select {
				case conn.Send <- data:
				default:
					// Slow consumer; drop the message rather than block the hub
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Register adds a monitor connection
func (h *Hub) Register(conn *Connection) {
	h.register <- conn
}

// Unregister removes a monitor connection
func (h *Hub) Unregister(conn *Connection) {
	h.unregister <- conn
}

// AlertMonitors implements service.Alerter.
func (h *Hub) AlertMonitors(testID string, msgType string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		logrus.WithError(err).Error("marshal alert payload")
		return
	}
	h.broadcast <- &outbound{
		testID:  testID,
		message: &Message{Type: MessageType(msgType), Payload: data},
	}
}
