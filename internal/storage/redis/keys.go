package redis

import (
	"fmt"
	"strings"

	"github.com/forcadev/forca-online/internal/model"
)

// Key prefix for all game-related data
const keyPrefix = "forca"

// playerKey returns the Redis key for a Player
func playerKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:player:%s", keyPrefix, id)
}

// roomKey returns the Redis key for a Room
func roomKey(id model.RoomID) string {
	return fmt.Sprintf("%s:room:%s", keyPrefix, id)
}

// codeIndexKey returns the Redis key for the code -> room_id index.
// Codes are indexed uppercase so lookup is case-insensitive.
func codeIndexKey(code model.RoomCode) string {
	return fmt.Sprintf("%s:idx:code:%s", keyPrefix, strings.ToUpper(string(code)))
}

// progressKey returns the Redis key for a Progress record
func progressKey(roomID model.RoomID, playerID model.PlayerID) string {
	return fmt.Sprintf("%s:progress:%s:%s", keyPrefix, roomID, playerID)
}

// progressForRoomIndexKey returns the Redis key for the SET of progress
// records belonging to a room
func progressForRoomIndexKey(roomID model.RoomID) string {
	return fmt.Sprintf("%s:idx:progress_for_room:%s", keyPrefix, roomID)
}

// roomChannel returns the pub/sub channel carrying change notifications
// for a room
func roomChannel(roomID model.RoomID) string {
	return fmt.Sprintf("%s:events:%s", keyPrefix, roomID)
}
