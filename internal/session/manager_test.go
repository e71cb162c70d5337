package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/forcadev/forca-online/internal/model"
	"github.com/forcadev/forca-online/internal/testutil"
)

// stubFetcher serves rooms from a map, like the backend would
type stubFetcher struct {
	rooms map[model.RoomID]*model.Room
}

func (f *stubFetcher) GetRoom(_ context.Context, id model.RoomID) (*model.Room, error) {
	room, ok := f.rooms[id]
	if !ok {
		return nil, model.ErrRoomNotFound
	}
	return room, nil
}

type ManagerSuite struct {
	suite.Suite
	kv      *MemStore
	fetcher *stubFetcher
	manager *Manager
	ctx     context.Context
}

func TestManagerSuite(t *testing.T) {
	suite.Run(t, new(ManagerSuite))
}

func (s *ManagerSuite) SetupTest() {
	s.kv = NewMemStore()
	s.fetcher = &stubFetcher{rooms: make(map[model.RoomID]*model.Room)}
	s.manager = NewManager(s.kv, s.fetcher, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *ManagerSuite) TestInitWithoutIdentity() {
	err := s.manager.Init(s.ctx)
	s.Require().NoError(err)

	s.True(s.manager.Initialized())
	s.Empty(s.manager.PlayerID())
	s.Nil(s.manager.Room())
}

func (s *ManagerSuite) TestInitLoadsPlayerID() {
	s.Require().NoError(s.kv.Set(PlayerIDKey, "player-1"))

	s.Require().NoError(s.manager.Init(s.ctx))

	s.Equal(model.PlayerID("player-1"), s.manager.PlayerID())
	s.Nil(s.manager.Room())
}

func (s *ManagerSuite) TestInitResumesActiveRoom() {
	s.fetcher.rooms["room-1"] = &model.Room{
		ID:     "room-1",
		Code:   "ABC234",
		HostID: "player-1",
		Status: model.RoomStatusPlaying,
	}
	s.Require().NoError(s.kv.Set(PlayerIDKey, "player-1"))
	s.Require().NoError(s.kv.Set(ActiveRoomKey, "room-1"))

	s.Require().NoError(s.manager.Init(s.ctx))

	s.Require().NotNil(s.manager.Room())
	s.Equal(model.RoomID("room-1"), s.manager.Room().ID)
}

func (s *ManagerSuite) TestInitResumesWaitingRoom() {
	s.fetcher.rooms["room-1"] = &model.Room{
		ID:     "room-1",
		HostID: "player-1",
		Status: model.RoomStatusWaiting,
	}
	s.Require().NoError(s.kv.Set(PlayerIDKey, "player-1"))
	s.Require().NoError(s.kv.Set(ActiveRoomKey, "room-1"))

	s.Require().NoError(s.manager.Init(s.ctx))

	s.NotNil(s.manager.Room())
}

func (s *ManagerSuite) TestInitDiscardsFinishedRoom() {
	s.fetcher.rooms["room-1"] = &model.Room{
		ID:     "room-1",
		HostID: "player-1",
		Status: model.RoomStatusFinished,
	}
	s.Require().NoError(s.kv.Set(PlayerIDKey, "player-1"))
	s.Require().NoError(s.kv.Set(ActiveRoomKey, "room-1"))

	s.Require().NoError(s.manager.Init(s.ctx))

	s.Nil(s.manager.Room())
	_, ok := s.kv.Get(ActiveRoomKey)
	s.False(ok, "stale room id should be cleared")
}

func (s *ManagerSuite) TestInitDiscardsMissingRoom() {
	s.Require().NoError(s.kv.Set(PlayerIDKey, "player-1"))
	s.Require().NoError(s.kv.Set(ActiveRoomKey, "room-gone"))

	s.Require().NoError(s.manager.Init(s.ctx))

	s.True(s.manager.Initialized())
	s.Nil(s.manager.Room())
	_, ok := s.kv.Get(ActiveRoomKey)
	s.False(ok)
}

func (s *ManagerSuite) TestInitIgnoresRoomWithoutIdentity() {
	// A room id with no player id cannot be resumed
	s.fetcher.rooms["room-1"] = &model.Room{ID: "room-1", Status: model.RoomStatusPlaying}
	s.Require().NoError(s.kv.Set(ActiveRoomKey, "room-1"))

	s.Require().NoError(s.manager.Init(s.ctx))

	s.Nil(s.manager.Room())
}

func (s *ManagerSuite) TestSetPlayerIDPersists() {
	s.Require().NoError(s.manager.SetPlayerID("player-1"))

	s.Equal(model.PlayerID("player-1"), s.manager.PlayerID())
	value, ok := s.kv.Get(PlayerIDKey)
	s.True(ok)
	s.Equal("player-1", value)
}

func (s *ManagerSuite) TestEnterAndLeaveRoom() {
	room := &model.Room{ID: "room-1", Status: model.RoomStatusWaiting}

	s.Require().NoError(s.manager.EnterRoom(room))
	s.Equal(room, s.manager.Room())
	value, ok := s.kv.Get(ActiveRoomKey)
	s.True(ok)
	s.Equal("room-1", value)

	s.Require().NoError(s.manager.LeaveRoom())
	s.Nil(s.manager.Room())
	_, ok = s.kv.Get(ActiveRoomKey)
	s.False(ok)
}

func TestFileStore(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	if _, ok := store.Get("missing"); ok {
		t.Error("expected missing key to report false")
	}

	if err := store.Set("player_id", "player-1"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	value, ok := store.Get("player_id")
	if !ok || value != "player-1" {
		t.Errorf("Get = %q, %v; want %q, true", value, ok, "player-1")
	}

	// Values survive a new store over the same directory
	reopened, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	if value, ok := reopened.Get("player_id"); !ok || value != "player-1" {
		t.Errorf("reopened Get = %q, %v", value, ok)
	}

	if err := store.Remove("player_id"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, ok := store.Get("player_id"); ok {
		t.Error("expected removed key to report false")
	}
	if err := store.Remove("player_id"); err != nil {
		t.Errorf("removing absent key should not error: %v", err)
	}
}
