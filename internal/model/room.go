package model

import "time"

// RoomID uniquely identifies a room
type RoomID string

// RoomCode is the short human-shareable identifier for joining rooms
type RoomCode string

// GameMode is the closed set of multiplayer rule sets
type GameMode string

const (
	// ModeCompetitive races both players against the same word
	ModeCompetitive GameMode = "competitive"
	// ModeCooperative shares one word and one letter/error pool, alternating turns
	ModeCooperative GameMode = "cooperative"
	// ModeChallenger has each player author the word the other must guess
	ModeChallenger GameMode = "challenger"
)

// Valid reports whether the mode is one of the known variants
func (m GameMode) Valid() bool {
	switch m {
	case ModeCompetitive, ModeCooperative, ModeChallenger:
		return true
	}
	return false
}

// RoomStatus represents the lifecycle state of a room
type RoomStatus string

const (
	RoomStatusWaiting  RoomStatus = "waiting"  // Host waiting for guest (or challenger words)
	RoomStatusPlaying  RoomStatus = "playing"  // Round in progress
	RoomStatusFinished RoomStatus = "finished" // Round over
)

// rank orders statuses along the waiting -> playing -> finished lifecycle
func (s RoomStatus) rank() int {
	switch s {
	case RoomStatusWaiting:
		return 0
	case RoomStatusPlaying:
		return 1
	case RoomStatusFinished:
		return 2
	}
	return -1
}

// Before reports whether s precedes other in the room lifecycle.
// Status transitions are monotonic: a room never regresses.
func (s RoomStatus) Before(other RoomStatus) bool {
	return s.rank() < other.rank()
}

// Room is the shared session object two players join via a short code
type Room struct {
	ID        RoomID     `json:"id"`
	Code      RoomCode   `json:"code"`
	HostID    PlayerID   `json:"host_id"`
	GuestID   PlayerID   `json:"guest_id,omitempty"`
	HostName  string     `json:"host_name"`
	GuestName string     `json:"guest_name,omitempty"`
	Mode      GameMode   `json:"mode"`
	Status    RoomStatus `json:"status"`

	// Competitive/cooperative: one shared word picked at creation
	Category string `json:"category,omitempty"`
	Word     string `json:"word,omitempty"`

	// Challenger: HostWord is authored by the host and guessed by the guest,
	// GuestWord the other way around
	HostWord      string `json:"host_word,omitempty"`
	GuestWord     string `json:"guest_word,omitempty"`
	HostCategory  string `json:"host_category,omitempty"`
	GuestCategory string `json:"guest_category,omitempty"`

	WinnerID  PlayerID  `json:"winner_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsHost reports whether the given player is the room's host
func (r *Room) IsHost(id PlayerID) bool {
	return r.HostID == id
}

// IsMember reports whether the given player belongs to the room
func (r *Room) IsMember(id PlayerID) bool {
	return r.HostID == id || (r.GuestID != "" && r.GuestID == id)
}

// OpponentID returns the other participant's id, or empty if there is none
func (r *Room) OpponentID(id PlayerID) PlayerID {
	if r.HostID == id {
		return r.GuestID
	}
	return r.HostID
}

// HasGuest reports whether a guest has joined
func (r *Room) HasGuest() bool {
	return r.GuestID != ""
}
