package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/forcadev/forca-online/internal/api/request"
	"github.com/forcadev/forca-online/internal/api/response"
	"github.com/forcadev/forca-online/internal/model"
	"github.com/forcadev/forca-online/internal/services/room"
	"github.com/forcadev/forca-online/internal/services/words"
)

// MinWordLength is the shortest word a challenger may author
const MinWordLength = 3

// RoomHandler handles room lifecycle endpoints
type RoomHandler struct {
	roomController room.ControllerInterface
	wordsService   words.ServiceInterface
}

// NewRoomHandler creates a new room handler
func NewRoomHandler(roomController room.ControllerInterface, wordsService words.ServiceInterface) *RoomHandler {
	return &RoomHandler{
		roomController: roomController,
		wordsService:   wordsService,
	}
}

// Create handles POST /api/v1/rooms
func (h *RoomHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.PlayerID == "" {
		WriteError(w, NewInvalidRequestError("player_id is required"))
		return
	}

	player, err := h.roomController.GetPlayer(r.Context(), model.PlayerID(req.PlayerID))
	if err != nil {
		WriteError(w, err)
		return
	}

	created, err := h.roomController.CreateRoom(r.Context(), player.ID, player.DisplayName, model.GameMode(req.Mode), req.Category)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.RoomFromModel(created))
}

// Get handles GET /api/v1/rooms/{code}
func (h *RoomHandler) Get(w http.ResponseWriter, r *http.Request) {
	code := model.RoomCode(mux.Vars(r)["code"])

	found, err := h.roomController.GetRoomByCode(r.Context(), code)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RoomFromModel(found))
}

// Join handles POST /api/v1/rooms/{code}/join
func (h *RoomHandler) Join(w http.ResponseWriter, r *http.Request) {
	code := model.RoomCode(mux.Vars(r)["code"])

	var req request.JoinRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.PlayerID == "" {
		WriteError(w, NewInvalidRequestError("player_id is required"))
		return
	}

	player, err := h.roomController.GetPlayer(r.Context(), model.PlayerID(req.PlayerID))
	if err != nil {
		WriteError(w, err)
		return
	}

	joined, err := h.roomController.JoinRoom(r.Context(), code, player.ID, player.DisplayName)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RoomFromModel(joined))
}

// SetWord handles POST /api/v1/rooms/{room_id}/word
func (h *RoomHandler) SetWord(w http.ResponseWriter, r *http.Request) {
	roomID := model.RoomID(mux.Vars(r)["room_id"])

	var req request.SetWordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.PlayerID == "" {
		WriteError(w, NewInvalidRequestError("player_id is required"))
		return
	}
	if len([]rune(strings.TrimSpace(req.Word))) < MinWordLength {
		WriteError(w, model.ErrWordTooShort)
		return
	}

	updated, err := h.roomController.SetWord(r.Context(), roomID, model.PlayerID(req.PlayerID), req.Word, req.Category)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RoomFromModel(updated))
}

// GetState handles GET /api/v1/rooms/{room_id}/state
// The player_id query parameter selects whose view to build
func (h *RoomHandler) GetState(w http.ResponseWriter, r *http.Request) {
	roomID := model.RoomID(mux.Vars(r)["room_id"])
	playerID := model.PlayerID(r.URL.Query().Get("player_id"))

	if playerID == "" {
		WriteError(w, NewInvalidRequestError("player_id is required"))
		return
	}

	found, mine, opponent, err := h.roomController.GetState(r.Context(), roomID, playerID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RoomStateFromModel(found, mine, opponent, playerID))
}

// Categories handles GET /api/v1/categories
func (h *RoomHandler) Categories(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.CategoriesResponse{
		Categories: h.wordsService.Categories(),
	})
}
