package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/forcadev/forca-online/internal/model"
	"github.com/forcadev/forca-online/internal/storage"
)

// subscriberBufferSize bounds each subscriber's pending notifications.
// A subscriber that falls this far behind starts dropping messages, which
// is safe because every field update is monotonic and the next full row
// supersedes anything dropped.
const subscriberBufferSize = 64

// Storage is an in-memory implementation of the storage interface with
// in-process change fan-out, used for tests and single-node runs.
type Storage struct {
	mu sync.RWMutex

	players   map[model.PlayerID]*model.Player
	rooms     map[model.RoomID]*model.Room
	codeIndex map[model.RoomCode]model.RoomID
	progress  map[progressKey]*model.Progress

	subscribers map[model.RoomID]map[chan model.Change]struct{}
}

type progressKey struct {
	roomID   model.RoomID
	playerID model.PlayerID
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		players:     make(map[model.PlayerID]*model.Player),
		rooms:       make(map[model.RoomID]*model.Room),
		codeIndex:   make(map[model.RoomCode]model.RoomID),
		progress:    make(map[progressKey]*model.Progress),
		subscribers: make(map[model.RoomID]map[chan model.Change]struct{}),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.players[player.ID] = player
	return nil
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	player, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return player, nil
}

// Room operations

func (s *Storage) SaveRoom(ctx context.Context, room *model.Room) error {
	s.mu.Lock()
	s.rooms[room.ID] = room
	s.codeIndex[normalizeCode(room.Code)] = room.ID
	s.mu.Unlock()

	s.publish(room.ID, model.RoomChange(room))
	return nil
}

func (s *Storage) GetRoom(ctx context.Context, id model.RoomID) (*model.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	room, ok := s.rooms[id]
	if !ok {
		return nil, model.ErrRoomNotFound
	}
	return room, nil
}

func (s *Storage) GetRoomByCode(ctx context.Context, code model.RoomCode) (*model.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.codeIndex[normalizeCode(code)]
	if !ok {
		return nil, model.ErrRoomNotFound
	}
	room, ok := s.rooms[id]
	if !ok {
		return nil, model.ErrRoomNotFound
	}
	return room, nil
}

func (s *Storage) RoomCodeExists(ctx context.Context, code model.RoomCode) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.codeIndex[normalizeCode(code)]
	return ok, nil
}

// Progress operations

func (s *Storage) SaveProgress(ctx context.Context, progress *model.Progress) error {
	s.mu.Lock()
	s.progress[progressKey{progress.RoomID, progress.PlayerID}] = progress
	s.mu.Unlock()

	s.publish(progress.RoomID, model.ProgressChange(progress))
	return nil
}

func (s *Storage) GetProgress(ctx context.Context, roomID model.RoomID, playerID model.PlayerID) (*model.Progress, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.progress[progressKey{roomID, playerID}]
	if !ok {
		return nil, model.ErrProgressNotFound
	}
	return p, nil
}

func (s *Storage) GetProgressForRoom(ctx context.Context, roomID model.RoomID) ([]*model.Progress, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var records []*model.Progress
	for key, p := range s.progress {
		if key.roomID == roomID {
			records = append(records, p)
		}
	}
	return records, nil
}

// Subscription operations

func (s *Storage) Subscribe(ctx context.Context, roomID model.RoomID) (<-chan model.Change, func(), error) {
	ch := make(chan model.Change, subscriberBufferSize)

	s.mu.Lock()
	subs, ok := s.subscribers[roomID]
	if !ok {
		subs = make(map[chan model.Change]struct{})
		s.subscribers[roomID] = subs
	}
	subs[ch] = struct{}{}
	s.mu.Unlock()

	done := make(chan struct{})
	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			if subs, ok := s.subscribers[roomID]; ok {
				delete(subs, ch)
				if len(subs) == 0 {
					delete(s.subscribers, roomID)
				}
			}
			s.mu.Unlock()
			close(ch)
			close(done)
		})
	}

	go func() {
		select {
		case <-ctx.Done():
			cancel()
		case <-done:
		}
	}()

	return ch, cancel, nil
}

// publish fans a change out to every subscriber of the room, dropping
// for subscribers whose buffers are full
func (s *Storage) publish(roomID model.RoomID, change model.Change) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for ch := range s.subscribers[roomID] {
		select {
		case ch <- change:
		default:
		}
	}
}

func normalizeCode(code model.RoomCode) model.RoomCode {
	return model.RoomCode(strings.ToUpper(string(code)))
}
