package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/forcadev/forca-online/internal/api/handler"
	apimiddleware "github.com/forcadev/forca-online/internal/api/middleware"
	"github.com/forcadev/forca-online/internal/api/sse"
	"github.com/forcadev/forca-online/internal/middleware"
	"github.com/forcadev/forca-online/internal/services/guess"
	"github.com/forcadev/forca-online/internal/services/room"
	"github.com/forcadev/forca-online/internal/services/words"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger          *slog.Logger
	RoomController  room.ControllerInterface
	GuessController guess.ControllerInterface
	WordsService    words.ServiceInterface
	HubManager      *sse.HubManager
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	playerHandler := handler.NewPlayerHandler(cfg.RoomController)
	roomHandler := handler.NewRoomHandler(cfg.RoomController, cfg.WordsService)
	guessHandler := handler.NewGuessHandler(cfg.GuessController)
	eventsHandler := handler.NewEventsHandler(cfg.RoomController, cfg.HubManager)

	// Create middleware
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := apimiddleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Player routes
	api.HandleFunc("/players", playerHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/players/{player_id}", playerHandler.Get).Methods(http.MethodGet)

	// Room lifecycle routes (rooms are joined by code, then addressed by id)
	api.HandleFunc("/rooms", roomHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/rooms/{code}", roomHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/rooms/{code}/join", roomHandler.Join).Methods(http.MethodPost)
	api.HandleFunc("/rooms/{room_id}/word", roomHandler.SetWord).Methods(http.MethodPost)
	api.HandleFunc("/rooms/{room_id}/state", roomHandler.GetState).Methods(http.MethodGet)

	// Gameplay routes
	api.HandleFunc("/rooms/{room_id}/guess", guessHandler.Submit).Methods(http.MethodPost)
	api.HandleFunc("/rooms/{room_id}/events", eventsHandler.Stream).Methods(http.MethodGet)

	// Word catalog
	api.HandleFunc("/categories", roomHandler.Categories).Methods(http.MethodGet)

	// Health check endpoint
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
