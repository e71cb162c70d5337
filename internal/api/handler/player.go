package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/forcadev/forca-online/internal/api/request"
	"github.com/forcadev/forca-online/internal/api/response"
	"github.com/forcadev/forca-online/internal/model"
	"github.com/forcadev/forca-online/internal/services/room"
)

// PlayerHandler handles player-related endpoints
type PlayerHandler struct {
	roomController room.ControllerInterface
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(roomController room.ControllerInterface) *PlayerHandler {
	return &PlayerHandler{
		roomController: roomController,
	}
}

// Create handles POST /api/v1/players
func (h *PlayerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreatePlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.DisplayName == "" {
		WriteError(w, NewInvalidRequestError("display_name is required"))
		return
	}

	player, err := h.roomController.CreatePlayer(r.Context(), req.DisplayName)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.PlayerFromModel(player))
}

// Get handles GET /api/v1/players/{player_id}
func (h *PlayerHandler) Get(w http.ResponseWriter, r *http.Request) {
	playerID := model.PlayerID(mux.Vars(r)["player_id"])

	player, err := h.roomController.GetPlayer(r.Context(), playerID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerFromModel(player))
}
