package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/forcadev/forca-online/internal/api/request"
	"github.com/forcadev/forca-online/internal/api/response"
	"github.com/forcadev/forca-online/internal/model"
	"github.com/forcadev/forca-online/internal/services/guess"
)

// GuessHandler handles letter guess submissions
type GuessHandler struct {
	guessController guess.ControllerInterface
}

// NewGuessHandler creates a new guess handler
func NewGuessHandler(guessController guess.ControllerInterface) *GuessHandler {
	return &GuessHandler{
		guessController: guessController,
	}
}

// Submit handles POST /api/v1/rooms/{room_id}/guess
func (h *GuessHandler) Submit(w http.ResponseWriter, r *http.Request) {
	roomID := model.RoomID(mux.Vars(r)["room_id"])

	var req request.GuessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.PlayerID == "" {
		WriteError(w, NewInvalidRequestError("player_id is required"))
		return
	}
	if req.Letter == "" {
		WriteError(w, NewInvalidRequestError("letter is required"))
		return
	}

	result, err := h.guessController.SubmitGuess(r.Context(), roomID, model.PlayerID(req.PlayerID), req.Letter)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GuessResultFromModel(result))
}
