package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/forcadev/forca-online/internal/api/sse"
	"github.com/forcadev/forca-online/internal/model"
	"github.com/forcadev/forca-online/internal/services/room"
)

// EventsHandler streams room change notifications over SSE
type EventsHandler struct {
	roomController room.ControllerInterface
	hubManager     *sse.HubManager
}

// NewEventsHandler creates a new events handler
func NewEventsHandler(roomController room.ControllerInterface, hubManager *sse.HubManager) *EventsHandler {
	return &EventsHandler{
		roomController: roomController,
		hubManager:     hubManager,
	}
}

// Stream handles GET /api/v1/rooms/{room_id}/events
// The player_id query parameter identifies the subscriber
func (h *EventsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	roomID := model.RoomID(mux.Vars(r)["room_id"])
	playerID := model.PlayerID(r.URL.Query().Get("player_id"))

	if playerID == "" {
		WriteError(w, NewInvalidRequestError("player_id is required"))
		return
	}

	found, err := h.roomController.GetRoom(r.Context(), roomID)
	if err != nil {
		WriteError(w, err)
		return
	}
	if !found.IsMember(playerID) {
		WriteError(w, model.ErrNotInRoom)
		return
	}

	hub, err := h.hubManager.GetOrCreateHub(roomID)
	if err != nil {
		WriteError(w, err)
		return
	}

	sse.ServeSSE(w, r, hub, playerID)
}
