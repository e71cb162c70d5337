package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/forcadev/forca-online/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeInvalidLetter      = "INVALID_LETTER"
	CodeInvalidMode        = "INVALID_MODE"
	CodeWordTooShort       = "WORD_TOO_SHORT"
	CodeUnknownCategory    = "UNKNOWN_CATEGORY"
	CodePlayerNotFound     = "PLAYER_NOT_FOUND"
	CodeRoomNotFound       = "ROOM_NOT_FOUND"
	CodeProgressNotFound   = "PROGRESS_NOT_FOUND"
	CodeRoomAlreadyPlaying = "ROOM_ALREADY_PLAYING"
	CodeRoomFull           = "ROOM_FULL"
	CodeNotInRoom          = "NOT_IN_ROOM"
	CodeWrongMode          = "WRONG_MODE"
	CodeBackendUnavailable = "BACKEND_UNAVAILABLE"
	CodeInternalError      = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "Player not found"}}
	case errors.Is(err, model.ErrRoomNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeRoomNotFound, "Room not found"}}
	case errors.Is(err, model.ErrProgressNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeProgressNotFound, "Progress not found"}}
	case errors.Is(err, model.ErrRoomAlreadyPlaying):
		return &httpError{http.StatusConflict, APIError{CodeRoomAlreadyPlaying, "Room is already playing"}}
	case errors.Is(err, model.ErrRoomFull):
		return &httpError{http.StatusConflict, APIError{CodeRoomFull, "Room is full"}}
	case errors.Is(err, model.ErrNotInRoom):
		return &httpError{http.StatusForbidden, APIError{CodeNotInRoom, "Not a member of this room"}}
	case errors.Is(err, model.ErrWrongMode):
		return &httpError{http.StatusConflict, APIError{CodeWrongMode, "Operation not allowed in this game mode"}}
	case errors.Is(err, model.ErrInvalidMode):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidMode, "Unknown game mode"}}
	case errors.Is(err, model.ErrInvalidLetter):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidLetter, "Letter must be A-Z"}}
	case errors.Is(err, model.ErrWordTooShort):
		return &httpError{http.StatusBadRequest, APIError{CodeWordTooShort, "Word must be at least 3 letters"}}
	case errors.Is(err, model.ErrUnknownCategory):
		return &httpError{http.StatusBadRequest, APIError{CodeUnknownCategory, "Unknown word category"}}
	case errors.Is(err, model.ErrBackendUnavailable):
		return &httpError{http.StatusServiceUnavailable, APIError{CodeBackendUnavailable, "Storage backend unavailable"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
