package handler

import (
	"log/slog"
	"net/http"
	"wavelink-server/internal/hub"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// All origins allowed; this service sits behind the product gateway.
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WebsocketHandler upgrades connection requests and hands them to the hub.
type WebsocketHandler struct {
	hub *hub.Hub
	log *slog.Logger
}

// NewWebsocketHandler creates a new WebsocketHandler.
func NewWebsocketHandler(h *hub.Hub, log *slog.Logger) *WebsocketHandler {
	return &WebsocketHandler{hub: h, log: log}
}

// HandleConnection serves GET /ws. The handshake carries the user identity
// as a query parameter (e.g. /ws?userId=5f2b…); beyond being present and
// shaped like an id it is not validated here.
func (h *WebsocketHandler) HandleConnection(w http.ResponseWriter, r *http.Request) {
	rawID := r.URL.Query().Get("userId")
	if rawID == "" {
		http.Error(w, "userId is required", http.StatusBadRequest)
		return
	}
	userID, err := uuid.Parse(rawID)
	if err != nil {
		http.Error(w, "userId is malformed", http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("upgrade failed", "error", err)
		return
	}

	h.hub.ServeWs(conn, userID)
}
