package config

import (
	"net/http"

	"github.com/gorilla/websocket"
)

type WebSocket struct {
	Upgrader     websocket.Upgrader
	MessageLimit int64
}

// NewWebSocket accepts cross-origin upgrades only in development; otherwise
// gorilla's same-origin check applies.
func NewWebSocket(development bool) *WebSocket {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
	}
	if development {
		upgrader.CheckOrigin = func(r *http.Request) bool {
			return true
		}
	}

	return &WebSocket{
		Upgrader:     upgrader,
		MessageLimit: 4096,
	}
}
