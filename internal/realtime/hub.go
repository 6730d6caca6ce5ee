package realtime

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	sendBuffer = 16
	writeWait  = 10 * time.Second
	pingPeriod = 30 * time.Second
)

// Event is the JSON frame pushed to workspace subscribers.
type Event struct {
	Type        string                 `json:"type"`
	WorkspaceID string                 `json:"workspace_id"`
	Payload     map[string]interface{} `json:"payload,omitempty"`
	SentAt      time.Time              `json:"sent_at"`
}

type subscriber struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub fans workspace events out to websocket subscribers. Publishing never
// blocks: a subscriber whose buffer is full is dropped.
type Hub struct {
	upgrader websocket.Upgrader
	logger   zerolog.Logger

	mu          sync.RWMutex
	subscribers map[uuid.UUID]map[*subscriber]struct{}
}

func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		logger:      logger.With().Str("component", "realtime").Logger(),
		subscribers: make(map[uuid.UUID]map[*subscriber]struct{}),
	}
}

// Publish implements workspace.Notifier.
func (h *Hub) Publish(workspaceID uuid.UUID, event string, payload map[string]interface{}) {
	message, err := json.Marshal(Event{
		Type:        event,
		WorkspaceID: workspaceID.String(),
		Payload:     payload,
		SentAt:      time.Now().UTC(),
	})
	if err != nil {
		h.logger.Error().Err(err).Str("event", event).Msg("failed to marshal event")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for sub := range h.subscribers[workspaceID] {
		select {
		case sub.send <- message:
		default:
			h.removeLocked(workspaceID, sub)
		}
	}
}

// Subscribers reports how many connections listen on a workspace.
func (h *Hub) Subscribers(workspaceID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers[workspaceID])
}

// Serve upgrades the request and streams events for workspaceID until the
// client goes away.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, workspaceID uuid.UUID) error {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	sub := &subscriber{conn: conn, send: make(chan []byte, sendBuffer)}
	h.mu.Lock()
	if h.subscribers[workspaceID] == nil {
		h.subscribers[workspaceID] = make(map[*subscriber]struct{})
	}
	h.subscribers[workspaceID][sub] = struct{}{}
	h.mu.Unlock()

	h.logger.Debug().Str("workspace_id", workspaceID.String()).Msg("subscriber connected")

	go h.writePump(sub)
	h.readPump(workspaceID, sub)
	return nil
}

// Close disconnects every subscriber of a workspace.
func (h *Hub) Close(workspaceID uuid.UUID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for sub := range h.subscribers[workspaceID] {
		h.removeLocked(workspaceID, sub)
	}
}

func (h *Hub) removeLocked(workspaceID uuid.UUID, sub *subscriber) {
	subs, ok := h.subscribers[workspaceID]
	if !ok {
		return
	}
	if _, ok := subs[sub]; !ok {
		return
	}
	delete(subs, sub)
	close(sub.send)
	if len(subs) == 0 {
		delete(h.subscribers, workspaceID)
	}
}

// readPump only drains control frames; clients never send data.
func (h *Hub) readPump(workspaceID uuid.UUID, sub *subscriber) {
	defer func() {
		h.mu.Lock()
		h.removeLocked(workspaceID, sub)
		h.mu.Unlock()
		sub.conn.Close()
		h.logger.Debug().Str("workspace_id", workspaceID.String()).Msg("subscriber disconnected")
	}()

	sub.conn.SetReadLimit(512)
	for {
		if _, _, err := sub.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writePump(sub *subscriber) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		sub.conn.Close()
	}()

	for {
		select {
		case message, ok := <-sub.send:
			sub.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				sub.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := sub.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			sub.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := sub.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
