package model

import "time"

// ProgressID uniquely identifies a progress record
type ProgressID string

// Progress is one player's per-room guessing state. There is exactly one
// record per (room, player), created when the player enters the room.
//
// All fields are monotonic: GuessedLetters only grows, Errors only grows,
// and Finished/Won only ever flip false -> true. That makes whole-row
// replacement from out-of-order notifications safe.
type Progress struct {
	ID             ProgressID `json:"id"`
	RoomID         RoomID     `json:"room_id"`
	PlayerID       PlayerID   `json:"player_id"`
	GuessedLetters []string   `json:"guessed_letters"`
	Errors         int        `json:"errors"`
	Finished       bool       `json:"finished"`
	Won            bool       `json:"won"`

	// TurnCount is the number of guesses this player has submitted
	// themselves. Unlike GuessedLetters it is never mirrored to the
	// partner in cooperative rooms, so it is what turn alternation
	// compares.
	TurnCount int `json:"turn_count"`

	UpdatedAt time.Time `json:"updated_at"`
}

// HasGuessed reports whether the (uppercase) letter was already tried
func (p *Progress) HasGuessed(letter string) bool {
	for _, l := range p.GuessedLetters {
		if l == letter {
			return true
		}
	}
	return false
}

// GuessCount returns the number of letters tried so far
func (p *Progress) GuessCount() int {
	return len(p.GuessedLetters)
}
