package sync

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/forcadev/forca-online/internal/model"
	"github.com/forcadev/forca-online/internal/storage/memory"
	"github.com/forcadev/forca-online/internal/testutil"
)

const (
	myID       = model.PlayerID("player-me")
	opponentID = model.PlayerID("player-them")
	roomID     = model.RoomID("room-1")
)

type ChannelSuite struct {
	suite.Suite
	storage *memory.Storage
	channel *Channel
	ctx     context.Context
}

func TestChannelSuite(t *testing.T) {
	suite.Run(t, new(ChannelSuite))
}

func (s *ChannelSuite) SetupTest() {
	s.storage = memory.New()
	s.channel = NewChannel(s.storage, myID, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *ChannelSuite) TearDownTest() {
	s.channel.Close()
}

func (s *ChannelSuite) seedRoom() {
	room := &model.Room{
		ID:      roomID,
		Code:    "ABC234",
		HostID:  myID,
		GuestID: opponentID,
		Mode:    model.ModeCompetitive,
		Status:  model.RoomStatusPlaying,
		Word:    "GATO",
	}
	s.Require().NoError(s.storage.SaveRoom(s.ctx, room))

	mine := &model.Progress{ID: "prog-mine", RoomID: roomID, PlayerID: myID}
	theirs := &model.Progress{ID: "prog-theirs", RoomID: roomID, PlayerID: opponentID}
	s.Require().NoError(s.storage.SaveProgress(s.ctx, mine))
	s.Require().NoError(s.storage.SaveProgress(s.ctx, theirs))
}

// waitUpdate blocks until the channel signals an applied change
func (s *ChannelSuite) waitUpdate() {
	select {
	case <-s.channel.Updates():
	case <-time.After(time.Second):
		s.FailNow("timed out waiting for update signal")
	}
}

func (s *ChannelSuite) TestOpenTakesBaseline() {
	s.seedRoom()

	err := s.channel.Open(s.ctx, roomID)
	s.Require().NoError(err)

	view := s.channel.Snapshot()
	s.Require().NotNil(view.Room)
	s.Equal(roomID, view.Room.ID)
	s.Require().NotNil(view.Mine)
	s.Equal(myID, view.Mine.PlayerID)
	s.Require().NotNil(view.Opponent)
	s.Equal(opponentID, view.Opponent.PlayerID)
}

func (s *ChannelSuite) TestOpenRoomNotFound() {
	err := s.channel.Open(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrRoomNotFound)
}

func (s *ChannelSuite) TestOpenBeforeOpponentJoins() {
	room := &model.Room{ID: roomID, Code: "ABC234", HostID: myID, Status: model.RoomStatusWaiting}
	s.Require().NoError(s.storage.SaveRoom(s.ctx, room))
	mine := &model.Progress{ID: "prog-mine", RoomID: roomID, PlayerID: myID}
	s.Require().NoError(s.storage.SaveProgress(s.ctx, mine))

	err := s.channel.Open(s.ctx, roomID)
	s.Require().NoError(err)

	view := s.channel.Snapshot()
	s.NotNil(view.Mine)
	s.Nil(view.Opponent)
}

func (s *ChannelSuite) TestRoomChangeReplacesRoom() {
	s.seedRoom()
	s.Require().NoError(s.channel.Open(s.ctx, roomID))

	room, err := s.storage.GetRoom(s.ctx, roomID)
	s.Require().NoError(err)
	room.Status = model.RoomStatusFinished
	room.WinnerID = opponentID
	s.Require().NoError(s.storage.SaveRoom(s.ctx, room))

	s.waitUpdate()

	view := s.channel.Snapshot()
	s.Equal(model.RoomStatusFinished, view.Room.Status)
	s.Equal(opponentID, view.Room.WinnerID)
}

func (s *ChannelSuite) TestProgressChangesRouteByPlayer() {
	s.seedRoom()
	s.Require().NoError(s.channel.Open(s.ctx, roomID))

	mine := &model.Progress{
		ID:             "prog-mine",
		RoomID:         roomID,
		PlayerID:       myID,
		GuessedLetters: []string{"G"},
		TurnCount:      1,
	}
	s.Require().NoError(s.storage.SaveProgress(s.ctx, mine))
	s.waitUpdate()

	theirs := &model.Progress{
		ID:             "prog-theirs",
		RoomID:         roomID,
		PlayerID:       opponentID,
		GuessedLetters: []string{"X"},
		Errors:         1,
	}
	s.Require().NoError(s.storage.SaveProgress(s.ctx, theirs))
	s.waitUpdate()

	view := s.channel.Snapshot()
	s.Equal([]string{"G"}, view.Mine.GuessedLetters)
	s.Equal(0, view.Mine.Errors)
	s.Equal([]string{"X"}, view.Opponent.GuessedLetters)
	s.Equal(1, view.Opponent.Errors)
}

func (s *ChannelSuite) TestChangeReplacesWholeRow() {
	s.seedRoom()
	s.Require().NoError(s.channel.Open(s.ctx, roomID))

	// Each notification carries the full row; the newest arrival stands
	// on its own rather than being merged with the previous state.
	for i, letters := range [][]string{{"G"}, {"G", "A"}, {"G", "A", "T"}} {
		s.Require().NoError(s.storage.SaveProgress(s.ctx, &model.Progress{
			ID:             "prog-mine",
			RoomID:         roomID,
			PlayerID:       myID,
			GuessedLetters: letters,
			TurnCount:      i + 1,
		}))
		s.waitUpdate()
	}

	view := s.channel.Snapshot()
	s.Equal([]string{"G", "A", "T"}, view.Mine.GuessedLetters)
	s.Equal(3, view.Mine.TurnCount)
}

func (s *ChannelSuite) TestCloseClearsView() {
	s.seedRoom()
	s.Require().NoError(s.channel.Open(s.ctx, roomID))

	s.channel.Close()

	view := s.channel.Snapshot()
	s.Nil(view.Room)
	s.Nil(view.Mine)
	s.Nil(view.Opponent)
}

func (s *ChannelSuite) TestCloseWithoutOpenIsSafe() {
	s.channel.Close()
	s.channel.Close()
}

func (s *ChannelSuite) TestReopenSwitchesRooms() {
	s.seedRoom()

	other := &model.Room{ID: "room-2", Code: "XYZ789", HostID: myID, Status: model.RoomStatusWaiting}
	s.Require().NoError(s.storage.SaveRoom(s.ctx, other))
	s.Require().NoError(s.storage.SaveProgress(s.ctx, &model.Progress{
		ID: "prog-2", RoomID: "room-2", PlayerID: myID,
	}))

	s.Require().NoError(s.channel.Open(s.ctx, roomID))
	s.Require().NoError(s.channel.Open(s.ctx, "room-2"))

	view := s.channel.Snapshot()
	s.Equal(model.RoomID("room-2"), view.Room.ID)

	// Writes to the first room no longer reach the view
	s.Require().NoError(s.storage.SaveRoom(s.ctx, &model.Room{
		ID: roomID, Code: "ABC234", HostID: myID, Status: model.RoomStatusFinished,
	}))

	select {
	case <-s.channel.Updates():
		s.Equal(model.RoomID("room-2"), s.channel.Snapshot().Room.ID)
	case <-time.After(50 * time.Millisecond):
	}
}
