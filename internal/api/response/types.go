package response

import (
	"time"

	"github.com/forcadev/forca-online/internal/model"
	"github.com/forcadev/forca-online/internal/rules"
	"github.com/forcadev/forca-online/internal/services/guess"
)

// Player represents a player in API responses
type Player struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"display_name"`
	CreatedAt   time.Time `json:"created_at"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p *model.Player) Player {
	return Player{
		ID:          string(p.ID),
		DisplayName: p.DisplayName,
		CreatedAt:   p.CreatedAt,
	}
}

// Room represents a room in API responses. Clients receive the full record,
// word columns included, matching what the change feed pushes to them.
type Room struct {
	ID            string    `json:"id"`
	Code          string    `json:"code"`
	HostID        string    `json:"host_id"`
	GuestID       string    `json:"guest_id,omitempty"`
	HostName      string    `json:"host_name"`
	GuestName     string    `json:"guest_name,omitempty"`
	Mode          string    `json:"mode"`
	Status        string    `json:"status"`
	Category      string    `json:"category,omitempty"`
	Word          string    `json:"word,omitempty"`
	HostWord      string    `json:"host_word,omitempty"`
	GuestWord     string    `json:"guest_word,omitempty"`
	HostCategory  string    `json:"host_category,omitempty"`
	GuestCategory string    `json:"guest_category,omitempty"`
	WinnerID      string    `json:"winner_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// RoomFromModel converts a model.Room to a response Room
func RoomFromModel(r *model.Room) Room {
	return Room{
		ID:            string(r.ID),
		Code:          string(r.Code),
		HostID:        string(r.HostID),
		GuestID:       string(r.GuestID),
		HostName:      r.HostName,
		GuestName:     r.GuestName,
		Mode:          string(r.Mode),
		Status:        string(r.Status),
		Category:      r.Category,
		Word:          r.Word,
		HostWord:      r.HostWord,
		GuestWord:     r.GuestWord,
		HostCategory:  r.HostCategory,
		GuestCategory: r.GuestCategory,
		WinnerID:      string(r.WinnerID),
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

// Progress represents one player's guessing state in API responses
type Progress struct {
	ID             string    `json:"id"`
	RoomID         string    `json:"room_id"`
	PlayerID       string    `json:"player_id"`
	GuessedLetters []string  `json:"guessed_letters"`
	Errors         int       `json:"errors"`
	Finished       bool      `json:"finished"`
	Won            bool      `json:"won"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ProgressFromModel converts a model.Progress to a response Progress
func ProgressFromModel(p *model.Progress) Progress {
	letters := p.GuessedLetters
	if letters == nil {
		letters = []string{}
	}
	return Progress{
		ID:             string(p.ID),
		RoomID:         string(p.RoomID),
		PlayerID:       string(p.PlayerID),
		GuessedLetters: letters,
		Errors:         p.Errors,
		Finished:       p.Finished,
		Won:            p.Won,
		UpdatedAt:      p.UpdatedAt,
	}
}

// GuessResult is the response for a guess submission
type GuessResult struct {
	Applied  bool `json:"applied"`
	Correct  bool `json:"correct"`
	Finished bool `json:"finished"`
	Won      bool `json:"won"`
}

// GuessResultFromModel converts a guess.Result
func GuessResultFromModel(r *guess.Result) GuessResult {
	return GuessResult{
		Applied:  r.Applied,
		Correct:  r.Correct,
		Finished: r.Finished,
		Won:      r.Won,
	}
}

// RoomState is the per-player view of a room: the room record, both
// progress records, and the derived fields the requesting player renders
type RoomState struct {
	Room       Room      `json:"room"`
	Mine       *Progress `json:"mine,omitempty"`
	Opponent   *Progress `json:"opponent,omitempty"`
	MaskedWord string    `json:"masked_word"`
	IsMyTurn   bool      `json:"is_my_turn"`
	MaxErrors  int       `json:"max_errors"`
}

// RoomStateFromModel builds the state view for the given player
func RoomStateFromModel(room *model.Room, mine, opponent *model.Progress, playerID model.PlayerID) RoomState {
	state := RoomState{
		Room:      RoomFromModel(room),
		IsMyTurn:  rules.IsMyTurn(room, mine, opponent),
		MaxErrors: rules.MaxErrors,
	}
	if mine != nil {
		p := ProgressFromModel(mine)
		state.Mine = &p
		state.MaskedWord = rules.MaskWord(rules.WordToGuess(room, room.IsHost(playerID)), mine.GuessedLetters)
	} else {
		state.MaskedWord = rules.MaskWord(rules.WordToGuess(room, room.IsHost(playerID)), nil)
	}
	if opponent != nil {
		p := ProgressFromModel(opponent)
		state.Opponent = &p
	}
	return state
}

// CategoriesResponse lists the available word categories
type CategoriesResponse struct {
	Categories []string `json:"categories"`
}
