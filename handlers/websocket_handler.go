package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/spikeline/tournament-system/brackets"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// The scoreboard is served from a separate origin; tighten this when
		// the frontend domain is pinned down.
		return true
	},
}

type WebSocketHandler struct {
	hub    *brackets.Hub
	logger *slog.Logger
}

func NewWebSocketHandler(hub *brackets.Hub, logger *slog.Logger) *WebSocketHandler {
	return &WebSocketHandler{hub: hub, logger: logger}
}

// ServeWs upgrades the connection and joins the client to the division's
// live-update room at /ws/divisions/{divisionID}.
func (h *WebSocketHandler) ServeWs(w http.ResponseWriter, r *http.Request) {
	divisionID, err := urlParamInt(r, "divisionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error.
		h.logger.Error("websocket upgrade failed", slog.Int("division_id", divisionID), slog.Any("error", err))
		return
	}

	client := &brackets.Client{
		Hub:  h.hub,
		Conn: conn,
		Send: make(chan []byte, 256),
		Room: fmt.Sprintf("division:%d", divisionID),
	}
	client.Hub.Register <- client

	go client.WritePump()
	go client.ReadPump()
}
