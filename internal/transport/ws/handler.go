package ws

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"examportal/internal/model"
	"examportal/internal/service"
)

// Vars rather than consts so tests can shorten the deadlines.
var (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

const maxMessageSize = 512

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for dev
	},
}

// Handler handles WebSocket connections
type Handler struct {
	hub        *Hub
	authSvc    *service.AuthService
	attemptSvc *service.AttemptService
}

// NewHandler creates a new WebSocket handler
func NewHandler(hub *Hub, authSvc *service.AuthService, attemptSvc *service.AttemptService) *Handler {
	return &Handler{
		hub:        hub,
		authSvc:    authSvc,
		attemptSvc: attemptSvc,
	}
}

// MonitorWS handles GET /v1/ws/tests/{testId}/monitor. Teachers receive
// live proctor alerts for the test.
func (h *Handler) MonitorWS(w http.ResponseWriter, r *http.Request) {
	testID := mux.Vars(r)["testId"]

	claims, err := h.claimsFromQuery(r)
	if err != nil {
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}
	if claims.Role != model.RoleTeacher {
		http.Error(w, "teacher role required", http.StatusForbidden)
		return
	}

	wsConn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logrus.WithError(err).Error("websocket upgrade")
		return
	}

	conn := &Connection{
		TestID: testID,
		UserID: claims.UserID,
		Send:   make(chan []byte, 256),
		Hub:    h.hub,
	}
	h.hub.Register(conn)

	go h.writePump(wsConn, conn)
	go h.monitorReadPump(wsConn, conn)
}

// violationMessage is what the exam page sends when the browser observes a
// forbidden action during an attempt.
type violationMessage struct {
	Kind   model.ViolationKind `json:"kind"`
	Detail string              `json:"detail,omitempty"`
}

// AttemptWS handles GET /v1/ws/attempts/{attemptId}/events. The connection
// is the attempt's event capture channel: it lives for the attempt and every
// message appends one violation to the attempt log.
func (h *Handler) AttemptWS(w http.ResponseWriter, r *http.Request) {
	attemptID := mux.Vars(r)["attemptId"]

	claims, err := h.claimsFromQuery(r)
	if err != nil {
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}
	if claims.Role != model.RoleStudent {
		http.Error(w, "student role required", http.StatusForbidden)
		return
	}

	wsConn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logrus.WithError(err).Error("websocket upgrade")
		return
	}

	go h.attemptReadPump(wsConn, attemptID)
}

func (h *Handler) claimsFromQuery(r *http.Request) (*model.UserClaims, error) {
	token := r.URL.Query().Get("token")
	if token == "" {
		return nil, service.ErrInvalidToken
	}
	return h.authSvc.ValidateToken(token)
}

func (h *Handler) attemptReadPump(wsConn *websocket.Conn, attemptID string) {
	done := make(chan struct{})
	defer func() {
		close(done)
		wsConn.Close()
	}()

	// The pong handler below only re-arms the read deadline when the browser
	// answers a ping, so the capture channel needs its own ping ticker for
	// the attempt's lifetime.
	go h.attemptPingPump(wsConn, done)

	wsConn.SetReadLimit(maxMessageSize)
	wsConn.SetReadDeadline(time.Now().Add(pongWait))
	wsConn.SetPongHandler(func(string) error {
		wsConn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := wsConn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logrus.WithError(err).Debug("attempt websocket closed")
			}
			return
		}

		var msg violationMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			continue // Malformed event, nothing to record
		}

		if err := h.attemptSvc.RecordViolation(attemptID, msg.Kind, msg.Detail); err != nil {
			if errors.Is(err, service.ErrAttemptNotFound) || errors.Is(err, service.ErrAttemptFinalized) {
				return // Attempt over, release the capture channel
			}
			logrus.WithError(err).WithField("attemptId", attemptID).Error("record violation")
		}
	}
}

func (h *Handler) attemptPingPump(wsConn *websocket.Conn, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			wsConn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := wsConn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}

func (h *Handler) monitorReadPump(wsConn *websocket.Conn, conn *Connection) {
	defer func() {
		h.hub.Unregister(conn)
		wsConn.Close()
	}()

	wsConn.SetReadLimit(maxMessageSize)
	wsConn.SetReadDeadline(time.Now().Add(pongWait))
	wsConn.SetPongHandler(func(string) error {
		wsConn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := wsConn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logrus.WithError(err).Debug("monitor websocket closed")
			}
			return
		}
		// Monitors only receive; incoming messages are ignored
	}
}

func (h *Handler) writePump(wsConn *websocket.Conn, conn *Connection) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		wsConn.Close()
	}()

	for {
		select {
		case message, ok := <-conn.Send:
			wsConn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				wsConn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := wsConn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			wsConn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := wsConn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
