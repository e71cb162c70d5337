package room

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/forcadev/forca-online/internal/dependencies/clock"
	"github.com/forcadev/forca-online/internal/dependencies/random"
	"github.com/forcadev/forca-online/internal/model"
	"github.com/forcadev/forca-online/internal/services/words"
	"github.com/forcadev/forca-online/internal/storage"
)

const (
	// CodeLength is the length of generated room codes
	CodeLength = 6
	// CodeAlphabet is the characters used in room codes (avoid confusing chars)
	CodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)

// Controller is the room directory: it creates and finds rooms by code and
// owns the room-level fields (mode, words, membership, status).
type Controller struct {
	storage storage.Storage
	words   words.ServiceInterface
	clock   clock.Clock
	random  random.Random
	logger  *slog.Logger
}

// NewController creates a new room Controller
func NewController(
	storage storage.Storage,
	words words.ServiceInterface,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage: storage,
		words:   words,
		clock:   clock,
		random:  random,
		logger:  logger.With(slog.String("component", "room")),
	}
}

// CreatePlayer persists a new player identity row. Called once per device,
// on the first multiplayer action.
func (c *Controller) CreatePlayer(ctx context.Context, displayName string) (*model.Player, error) {
	player := &model.Player{
		ID:          model.PlayerID(uuid.NewString()),
		DisplayName: displayName,
		CreatedAt:   c.clock.Now(),
	}

	if err := c.storage.SavePlayer(ctx, player); err != nil {
		c.logger.Error("failed to save player", slog.String("error", err.Error()))
		return nil, model.ErrPlayerCreationFailed
	}

	return player, nil
}

// GetPlayer retrieves a player by id
func (c *Controller) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	return c.storage.GetPlayer(ctx, id)
}

// CreateRoom creates a new room hosted by the given player, in waiting
// status, together with the host's progress record. For competitive and
// cooperative rooms the shared word is picked here and immutable afterwards;
// challenger rooms start with no words at all.
func (c *Controller) CreateRoom(ctx context.Context, hostID model.PlayerID, hostName string, mode model.GameMode, category string) (*model.Room, error) {
	if !mode.Valid() {
		return nil, model.ErrInvalidMode
	}

	now := c.clock.Now()

	var word string
	if mode != model.ModeChallenger {
		if category == "" {
			cats := c.words.Categories()
			category = cats[c.random.Intn(len(cats))]
		}
		w, err := c.words.RandomWord(category)
		if err != nil {
			return nil, err
		}
		word = w
	}

	// Generate a code not used by any active room
	var code model.RoomCode
	for {
		code = model.RoomCode(c.random.Code(CodeLength, CodeAlphabet))
		exists, err := c.storage.RoomCodeExists(ctx, code)
		if err != nil {
			return nil, err
		}
		if !exists {
			break
		}
	}

	room := &model.Room{
		ID:        model.RoomID(uuid.NewString()),
		Code:      code,
		HostID:    hostID,
		HostName:  hostName,
		Mode:      mode,
		Status:    model.RoomStatusWaiting,
		Category:  category,
		Word:      word,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := c.storage.SaveRoom(ctx, room); err != nil {
		return nil, err
	}

	if err := c.createProgress(ctx, room.ID, hostID); err != nil {
		return nil, err
	}

	c.logger.Info("room created",
		slog.String("room_id", string(room.ID)),
		slog.String("code", string(code)),
		slog.String("mode", string(mode)),
	)

	return room, nil
}

// JoinRoom adds a guest to a waiting room, looked up by code
// (case-insensitive), and creates the guest's progress record. Competitive
// and cooperative rooms start playing immediately; challenger rooms stay
// waiting until both words are set.
func (c *Controller) JoinRoom(ctx context.Context, code model.RoomCode, playerID model.PlayerID, displayName string) (*model.Room, error) {
	room, err := c.storage.GetRoomByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	if room.Status != model.RoomStatusWaiting {
		return nil, model.ErrRoomAlreadyPlaying
	}
	if room.HasGuest() || room.IsHost(playerID) {
		return nil, model.ErrRoomFull
	}

	room.GuestID = playerID
	room.GuestName = displayName
	if room.Mode != model.ModeChallenger {
		room.Status = model.RoomStatusPlaying
	}
	room.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveRoom(ctx, room); err != nil {
		return nil, err
	}

	if err := c.createProgress(ctx, room.ID, playerID); err != nil {
		return nil, err
	}

	c.logger.Info("player joined room",
		slog.String("room_id", string(room.ID)),
		slog.String("player_id", string(playerID)),
	)

	return room, nil
}

// SetWord records a challenger-mode word. The submitting player authors the
// word the *other* participant will guess: the host fills HostWord (guessed
// by the guest), the guest fills GuestWord. The room starts playing on the
// second of the two calls, whichever side that is.
func (c *Controller) SetWord(ctx context.Context, roomID model.RoomID, playerID model.PlayerID, word, category string) (*model.Room, error) {
	room, err := c.storage.GetRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}

	if room.Mode != model.ModeChallenger {
		return nil, model.ErrWrongMode
	}
	if !room.IsMember(playerID) {
		return nil, model.ErrNotInRoom
	}
	// Words are only accepted while the room is waiting; a late call must not
	// replace a live puzzle or pull a finished room back to playing
	if room.Status != model.RoomStatusWaiting {
		return nil, model.ErrRoomAlreadyPlaying
	}

	word = strings.ToUpper(strings.TrimSpace(word))

	if room.IsHost(playerID) {
		room.HostWord = word
		room.HostCategory = category
	} else {
		room.GuestWord = word
		room.GuestCategory = category
	}

	if room.HostWord != "" && room.GuestWord != "" {
		room.Status = model.RoomStatusPlaying
	}
	room.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveRoom(ctx, room); err != nil {
		return nil, err
	}

	return room, nil
}

// GetRoom retrieves a room by id
func (c *Controller) GetRoom(ctx context.Context, id model.RoomID) (*model.Room, error) {
	return c.storage.GetRoom(ctx, id)
}

// GetRoomByCode retrieves a room by its shareable code (case-insensitive)
func (c *Controller) GetRoomByCode(ctx context.Context, code model.RoomCode) (*model.Room, error) {
	return c.storage.GetRoomByCode(ctx, code)
}

// GetState retrieves a room along with the requesting player's progress
// and their opponent's. Either progress may be nil when the record does not
// exist yet, e.g. before a guest joins.
func (c *Controller) GetState(ctx context.Context, roomID model.RoomID, playerID model.PlayerID) (*model.Room, *model.Progress, *model.Progress, error) {
	room, err := c.storage.GetRoom(ctx, roomID)
	if err != nil {
		return nil, nil, nil, err
	}
	if !room.IsMember(playerID) {
		return nil, nil, nil, model.ErrNotInRoom
	}

	mine, err := c.storage.GetProgress(ctx, roomID, playerID)
	if err != nil && !errors.Is(err, model.ErrProgressNotFound) {
		return nil, nil, nil, err
	}

	var opponent *model.Progress
	if opponentID := room.OpponentID(playerID); opponentID != "" {
		opponent, err = c.storage.GetProgress(ctx, roomID, opponentID)
		if err != nil && !errors.Is(err, model.ErrProgressNotFound) {
			return nil, nil, nil, err
		}
	}

	return room, mine, opponent, nil
}

func (c *Controller) createProgress(ctx context.Context, roomID model.RoomID, playerID model.PlayerID) error {
	return c.storage.SaveProgress(ctx, &model.Progress{
		ID:             model.ProgressID(uuid.NewString()),
		RoomID:         roomID,
		PlayerID:       playerID,
		GuessedLetters: []string{},
		UpdatedAt:      c.clock.Now(),
	})
}

// Interface for dependency injection
type ControllerInterface interface {
	CreatePlayer(ctx context.Context, displayName string) (*model.Player, error)
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)
	CreateRoom(ctx context.Context, hostID model.PlayerID, hostName string, mode model.GameMode, category string) (*model.Room, error)
	JoinRoom(ctx context.Context, code model.RoomCode, playerID model.PlayerID, displayName string) (*model.Room, error)
	SetWord(ctx context.Context, roomID model.RoomID, playerID model.PlayerID, word, category string) (*model.Room, error)
	GetRoom(ctx context.Context, id model.RoomID) (*model.Room, error)
	GetRoomByCode(ctx context.Context, code model.RoomCode) (*model.Room, error)
	GetState(ctx context.Context, roomID model.RoomID, playerID model.PlayerID) (*model.Room, *model.Progress, *model.Progress, error)
}

var _ ControllerInterface = (*Controller)(nil)
