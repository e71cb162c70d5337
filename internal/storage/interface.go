package storage

import (
	"context"

	"github.com/forcadev/forca-online/internal/model"
)

// Storage defines the persistence and notification contract the game core
// depends on: row insert/update/select on the three record kinds, point
// lookup by primary key plus room lookup by code, and a room-scoped change
// feed that pushes the full new row on every insert or update.
type Storage interface {
	// Player operations
	SavePlayer(ctx context.Context, player *model.Player) error
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)

	// Room operations. Code lookup is case-insensitive.
	SaveRoom(ctx context.Context, room *model.Room) error
	GetRoom(ctx context.Context, id model.RoomID) (*model.Room, error)
	GetRoomByCode(ctx context.Context, code model.RoomCode) (*model.Room, error)
	RoomCodeExists(ctx context.Context, code model.RoomCode) (bool, error)

	// Progress operations
	SaveProgress(ctx context.Context, progress *model.Progress) error
	GetProgress(ctx context.Context, roomID model.RoomID, playerID model.PlayerID) (*model.Progress, error)
	GetProgressForRoom(ctx context.Context, roomID model.RoomID) ([]*model.Progress, error)

	// Subscribe opens a change feed for one room. Every SaveRoom and
	// SaveProgress touching that room is delivered as a full-row Change.
	// Delivery is at-least-once and unordered; the returned cancel function
	// tears the subscription down and closes the channel.
	Subscribe(ctx context.Context, roomID model.RoomID) (<-chan model.Change, func(), error)
}
