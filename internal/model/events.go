package model

// ChangeKind identifies which record kind a change notification carries
type ChangeKind string

const (
	ChangeRoom     ChangeKind = "room_changed"
	ChangeProgress ChangeKind = "progress_changed"
)

// Change is a push notification for a room-scoped row insert or update.
// It always carries the full new row, never a partial diff: subscribers
// replace their local copy wholesale, last arrival wins.
type Change struct {
	Kind     ChangeKind `json:"kind"`
	Room     *Room      `json:"room,omitempty"`
	Progress *Progress  `json:"progress,omitempty"`
}

// RoomChange builds a change notification for a room row
func RoomChange(room *Room) Change {
	return Change{Kind: ChangeRoom, Room: room}
}

// ProgressChange builds a change notification for a progress row
func ProgressChange(progress *Progress) Change {
	return Change{Kind: ChangeProgress, Progress: progress}
}
