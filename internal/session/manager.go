package session

import (
	"context"
	"log/slog"
	"sync"

	"github.com/forcadev/forca-online/internal/model"
)

// Local key names
const (
	// PlayerIDKey holds the device-scoped player id, kept across sessions
	PlayerIDKey = "player_id"
	// ActiveRoomKey holds the in-progress room id, kept only for the
	// current session
	ActiveRoomKey = "active_room_id"
)

// RoomFetcher is the slice of the backend the resume protocol needs.
// Server-side storage and the CLI's HTTP client both satisfy it.
type RoomFetcher interface {
	GetRoom(ctx context.Context, id model.RoomID) (*model.Room, error)
}

// Manager implements the session resume protocol: it persists the player
// identity and the active room id locally, and on startup re-enters an
// in-progress room so a reloaded client resumes where it left off.
type Manager struct {
	kv     Store
	rooms  RoomFetcher
	logger *slog.Logger

	mu          sync.RWMutex
	playerID    model.PlayerID
	room        *model.Room
	initialized bool
}

// NewManager creates a Manager over the given local store and backend
func NewManager(kv Store, rooms RoomFetcher, logger *slog.Logger) *Manager {
	return &Manager{
		kv:     kv,
		rooms:  rooms,
		logger: logger.With(slog.String("component", "session")),
	}
}

// Init loads persisted identity and, when both a player id and a room id
// are present, attempts to resume: a room that still exists and has not
// finished becomes the active room; anything else discards the stale id.
// Init always leaves the manager initialized, even when resume fails, so
// navigation logic can wait on Initialized instead of racing the fetch.
func (m *Manager) Init(ctx context.Context) error {
	defer func() {
		m.mu.Lock()
		m.initialized = true
		m.mu.Unlock()
	}()

	playerID, ok := m.kv.Get(PlayerIDKey)
	if !ok {
		return nil
	}
	m.mu.Lock()
	m.playerID = model.PlayerID(playerID)
	m.mu.Unlock()

	roomID, ok := m.kv.Get(ActiveRoomKey)
	if !ok {
		return nil
	}

	room, err := m.rooms.GetRoom(ctx, model.RoomID(roomID))
	if err != nil || room.Status == model.RoomStatusFinished {
		m.logger.Info("stale room discarded", slog.String("room_id", roomID))
		if removeErr := m.kv.Remove(ActiveRoomKey); removeErr != nil {
			m.logger.Warn("failed to clear stale room id", slog.String("error", removeErr.Error()))
		}
		return nil
	}

	m.mu.Lock()
	m.room = room
	m.mu.Unlock()

	m.logger.Info("session resumed",
		slog.String("room_id", string(room.ID)),
		slog.String("status", string(room.Status)),
	)
	return nil
}

// Initialized reports whether Init has completed
func (m *Manager) Initialized() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.initialized
}

// PlayerID returns the device player id, empty if none exists yet
func (m *Manager) PlayerID() model.PlayerID {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.playerID
}

// SetPlayerID persists a newly created player identity
func (m *Manager) SetPlayerID(id model.PlayerID) error {
	if err := m.kv.Set(PlayerIDKey, string(id)); err != nil {
		return err
	}
	m.mu.Lock()
	m.playerID = id
	m.mu.Unlock()
	return nil
}

// Room returns the resumed or entered room, nil when outside a room
func (m *Manager) Room() *model.Room {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.room
}

// EnterRoom records the active room id so a reload can resume into it
func (m *Manager) EnterRoom(room *model.Room) error {
	if err := m.kv.Set(ActiveRoomKey, string(room.ID)); err != nil {
		return err
	}
	m.mu.Lock()
	m.room = room
	m.mu.Unlock()
	return nil
}

// LeaveRoom clears the active room id
func (m *Manager) LeaveRoom() error {
	m.mu.Lock()
	m.room = nil
	m.mu.Unlock()
	return m.kv.Remove(ActiveRoomKey)
}
