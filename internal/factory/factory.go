package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/forcadev/forca-online/internal/api/sse"
	"github.com/forcadev/forca-online/internal/dependencies/clock"
	"github.com/forcadev/forca-online/internal/dependencies/random"
	"github.com/forcadev/forca-online/internal/services/guess"
	"github.com/forcadev/forca-online/internal/services/room"
	"github.com/forcadev/forca-online/internal/services/words"
	"github.com/forcadev/forca-online/internal/storage"
	"github.com/forcadev/forca-online/internal/storage/memory"
	redisstorage "github.com/forcadev/forca-online/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	WordsService    *words.Service
	RoomController  *room.Controller
	GuessController *guess.Controller
	HubManager      *sse.HubManager
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	// Create external dependencies
	clk := clock.New()
	rnd := random.New()

	return newWithDependencies(store, clk, rnd, logger)
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, logger *slog.Logger) (*App, error) {
	wordsService, err := words.New(rnd)
	if err != nil {
		return nil, err
	}

	roomController := room.NewController(store, wordsService, clk, rnd, logger)
	guessController := guess.NewController(store, clk, logger)
	hubManager := sse.NewHubManager(store, logger)

	return &App{
		Storage:         store,
		Clock:           clk,
		Random:          rnd,
		WordsService:    wordsService,
		RoomController:  roomController,
		GuessController: guessController,
		HubManager:      hubManager,
	}, nil
}
