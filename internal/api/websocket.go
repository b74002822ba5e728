package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/Followingae/rfm-case-submit/internal/upload"
)

// WebSocket message types for the job event stream
const (
	// Client -> Server messages
	MsgTypePing = "ping"

	// Server -> Client messages
	MsgTypeConnected = "connected"
	MsgTypeJobUpdate = "job:update"
	MsgTypePong      = "pong"
	MsgTypeError     = "error"
)

// WSMessage is the envelope for every message on the socket.
type WSMessage struct {
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	Timestamp int64           `json:"timestamp"`
}

// WebSocketHandler pushes upload job updates to connected clients. It
// implements upload.Notifier.
type WebSocketHandler struct {
	upgrader  websocket.Upgrader
	clients   map[*websocket.Conn]bool
	clientsMu sync.Mutex
}

// NewWebSocketHandler creates a new job event handler.
func NewWebSocketHandler() *WebSocketHandler {
	return &WebSocketHandler{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// Allow connections from dev server
				return true
			},
			ReadBufferSize:  16 * 1024,
			WriteBufferSize: 16 * 1024,
		},
		clients: make(map[*websocket.Conn]bool),
	}
}

// HandleWebSocket upgrades the connection and keeps it registered for
// job updates until it closes.
func (wsh *WebSocketHandler) HandleWebSocket(c echo.Context) error {
	ws, err := wsh.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	defer ws.Close()

	fmt.Println("[WebSocket] Client connected for job updates")

	wsh.clientsMu.Lock()
	wsh.clients[ws] = true
	wsh.clientsMu.Unlock()

	defer func() {
		wsh.clientsMu.Lock()
		delete(wsh.clients, ws)
		wsh.clientsMu.Unlock()
		fmt.Println("[WebSocket] Client disconnected")
	}()

	wsh.send(ws, WSMessage{Type: MsgTypeConnected, Timestamp: time.Now().UnixMilli()})

	for {
		var msg WSMessage
		if err := ws.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				fmt.Printf("[WebSocket] Connection error: %v\n", err)
			}
			break
		}

		switch msg.Type {
		case MsgTypePing:
			wsh.send(ws, WSMessage{Type: MsgTypePong, Timestamp: time.Now().UnixMilli()})
		default:
			wsh.send(ws, WSMessage{Type: MsgTypeError, Timestamp: time.Now().UnixMilli(),
				Payload: mustJSON(map[string]string{"message": "Unknown message type: " + msg.Type})})
		}
	}

	return nil
}

// NotifyJob broadcasts a job update to every connected client.
func (wsh *WebSocketHandler) NotifyJob(job *upload.Job) {
	msg := WSMessage{
		Type:      MsgTypeJobUpdate,
		Payload:   mustJSON(job),
		Timestamp: time.Now().UnixMilli(),
	}

	wsh.clientsMu.Lock()
	defer wsh.clientsMu.Unlock()
	for ws := range wsh.clients {
		if err := ws.WriteJSON(msg); err != nil {
			fmt.Printf("[WebSocket] Failed to send job update: %v\n", err)
		}
	}
}

func (wsh *WebSocketHandler) send(ws *websocket.Conn, msg WSMessage) {
	wsh.clientsMu.Lock()
	defer wsh.clientsMu.Unlock()
	if err := ws.WriteJSON(msg); err != nil {
		fmt.Printf("[WebSocket] Failed to send message: %v\n", err)
	}
}

func mustJSON(v interface{}) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		return []byte("{}")
	}
	return data
}
