package server

import (
	"net/http"

	"audiolist/core/events"
	"audiolist/logger"

	"github.com/gorilla/websocket"
)

// EventsHandler upgrades requests to websocket subscriptions on the event hub.
type EventsHandler struct {
	hub      *events.Hub
	upgrader websocket.Upgrader
}

// NewEventsHandler creates an EventsHandler for hub.
func NewEventsHandler(hub *events.Hub) *EventsHandler {
	return &EventsHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// ServeHTTP implements http.Handler.
func (h *EventsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the error response.
		logger.Warn("websocket upgrade failed", logger.ErrorField(err))
		return
	}
	h.hub.Serve(conn)
}
