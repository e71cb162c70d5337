package sse

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/forcadev/forca-online/internal/model"
	"github.com/forcadev/forca-online/internal/storage"
)

// HubManager manages hubs for all rooms and bridges storage change
// notifications into SSE broadcasts
type HubManager struct {
	storage storage.Storage
	hubs    map[model.RoomID]*Hub
	cancels map[model.RoomID]func()
	mu      sync.RWMutex
	logger  *slog.Logger
}

// NewHubManager creates a new HubManager
func NewHubManager(store storage.Storage, logger *slog.Logger) *HubManager {
	return &HubManager{
		storage: store,
		hubs:    make(map[model.RoomID]*Hub),
		cancels: make(map[model.RoomID]func()),
		logger:  logger.With(slog.String("component", "sse")),
	}
}

// GetOrCreateHub returns the hub for a room, creating one if it doesn't exist.
// A new hub gets a storage subscription that forwards room and progress
// changes to connected clients.
func (m *HubManager) GetOrCreateHub(roomID model.RoomID) (*Hub, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if hub, ok := m.hubs[roomID]; ok {
		return hub, nil
	}

	changes, cancel, err := m.storage.Subscribe(context.Background(), roomID)
	if err != nil {
		return nil, err
	}

	hub := NewHub(roomID, m.logger)
	m.hubs[roomID] = hub
	m.cancels[roomID] = cancel
	go hub.Run()
	go m.forward(hub, changes)
	return hub, nil
}

// GetHub returns the hub for a room, or nil if it doesn't exist
func (m *HubManager) GetHub(roomID model.RoomID) *Hub {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.hubs[roomID]
}

// RemoveHub removes and closes a hub, cancelling its storage subscription
func (m *HubManager) RemoveHub(roomID model.RoomID) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if hub, ok := m.hubs[roomID]; ok {
		m.cancels[roomID]()
		hub.Close()
		delete(m.hubs, roomID)
		delete(m.cancels, roomID)
		m.logger.Info("sse hub removed", slog.String("room_id", string(roomID)))
	}
}

// CleanupEmptyHubs removes hubs with no clients
func (m *HubManager) CleanupEmptyHubs() {
	m.mu.Lock()
	defer m.mu.Unlock()

	removedCount := 0
	for roomID, hub := range m.hubs {
		if hub.ClientCount() == 0 {
			m.cancels[roomID]()
			hub.Close()
			delete(m.hubs, roomID)
			delete(m.cancels, roomID)
			removedCount++
		}
	}
	if removedCount > 0 {
		m.logger.Info("sse empty hubs cleaned up", slog.Int("removed", removedCount))
	}
}

// forward pushes storage changes to the hub as SSE events. Each change
// carries the full changed record so clients can replace local state
// wholesale
func (m *HubManager) forward(hub *Hub, changes <-chan model.Change) {
	for change := range changes {
		var payload any
		switch change.Kind {
		case model.ChangeRoom:
			payload = change.Room
		case model.ChangeProgress:
			payload = change.Progress
		default:
			continue
		}

		data, err := json.Marshal(payload)
		if err != nil {
			m.logger.Error("sse failed to encode change",
				slog.String("kind", string(change.Kind)),
				slog.Any("error", err))
			continue
		}

		hub.BroadcastEvent(string(change.Kind), string(data))
	}
}
