package guess

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/forcadev/forca-online/internal/dependencies/clock"
	"github.com/forcadev/forca-online/internal/model"
	"github.com/forcadev/forca-online/internal/rules"
	"github.com/forcadev/forca-online/internal/storage"
)

// Controller is the turn and win arbitrator: it applies a letter guess to
// the submitting player's progress record and decides terminal outcomes.
type Controller struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// NewController creates a new guess Controller
func NewController(storage storage.Storage, clock clock.Clock, logger *slog.Logger) *Controller {
	return &Controller{
		storage: storage,
		clock:   clock,
		logger:  logger.With(slog.String("component", "guess")),
	}
}

// Result describes what one guess did, for the submitting client's benefit.
// The authoritative state travels through the change feed.
type Result struct {
	Applied  bool
	Correct  bool
	Finished bool
	Won      bool
}

// SubmitGuess applies one letter guess from the given player.
//
// Guesses that are not currently legal (room not playing, repeated letter,
// out-of-turn cooperative guess) are silent no-ops: the round state is
// untouched and no error is surfaced. Storage write failures are logged and
// swallowed as well; the next action or incoming notification recovers.
func (c *Controller) SubmitGuess(ctx context.Context, roomID model.RoomID, playerID model.PlayerID, letter string) (*Result, error) {
	room, err := c.storage.GetRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if !room.IsMember(playerID) {
		return nil, model.ErrNotInRoom
	}

	letter = strings.ToUpper(letter)
	if !validLetter(letter) {
		return nil, model.ErrInvalidLetter
	}

	mine, err := c.storage.GetProgress(ctx, roomID, playerID)
	if err != nil {
		return nil, err
	}

	// The opponent record may not exist yet in a waiting room; that case
	// is rejected below anyway because the room is not playing
	var opponent *model.Progress
	if opponentID := room.OpponentID(playerID); opponentID != "" {
		opponent, err = c.storage.GetProgress(ctx, roomID, opponentID)
		if err != nil && !errors.Is(err, model.ErrProgressNotFound) {
			return nil, err
		}
	}

	// Silent rejections
	if room.Status != model.RoomStatusPlaying {
		return &Result{}, nil
	}
	if mine.HasGuessed(letter) {
		return &Result{}, nil
	}
	if room.Mode == model.ModeCooperative && !rules.IsMyTurn(room, mine, opponent) {
		return &Result{}, nil
	}

	word := rules.WordToGuess(room, room.IsHost(playerID))

	guessed := append(append([]string{}, mine.GuessedLetters...), letter)
	correct := strings.Contains(word, letter)
	errorCount := mine.Errors
	if !correct {
		errorCount++
	}

	isLost := errorCount >= rules.MaxErrors
	isWon := allLettersGuessed(word, guessed) && !isLost
	finished := isWon || isLost

	now := c.clock.Now()
	mine.GuessedLetters = guessed
	mine.Errors = errorCount
	mine.Finished = finished
	mine.Won = isWon
	mine.TurnCount++
	mine.UpdatedAt = now

	if err := c.storage.SaveProgress(ctx, mine); err != nil {
		c.logWriteFailure(room, playerID, err)
		return &Result{}, nil
	}

	// Cooperative rooms share one logical letter/error pool, stored
	// redundantly in both records so each client can render from its own
	// subscription alone. TurnCount is deliberately not mirrored; it is
	// each player's own submission tally and drives turn alternation
	if room.Mode == model.ModeCooperative && opponent != nil {
		opponent.GuessedLetters = guessed
		opponent.Errors = errorCount
		opponent.Finished = finished
		opponent.Won = isWon
		opponent.UpdatedAt = now
		if err := c.storage.SaveProgress(ctx, opponent); err != nil {
			c.logWriteFailure(room, opponent.PlayerID, err)
		}
	}

	if finished {
		c.finishRoom(ctx, room, playerID, isWon)
	}

	return &Result{
		Applied:  true,
		Correct:  correct,
		Finished: finished,
		Won:      isWon,
	}, nil
}

// finishRoom marks the room finished and assigns the winner. The winner
// slot is written at most once: a player completing second keeps their own
// finished progress but never displaces an already-recorded winner.
func (c *Controller) finishRoom(ctx context.Context, room *model.Room, playerID model.PlayerID, won bool) {
	room.Status = model.RoomStatusFinished
	if won && room.Mode != model.ModeCooperative && room.WinnerID == "" {
		room.WinnerID = playerID
	}
	room.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveRoom(ctx, room); err != nil {
		c.logWriteFailure(room, playerID, err)
		return
	}

	c.logger.Info("round finished",
		slog.String("room_id", string(room.ID)),
		slog.String("mode", string(room.Mode)),
		slog.Bool("won", won),
		slog.String("winner_id", string(room.WinnerID)),
	)
}

func (c *Controller) logWriteFailure(room *model.Room, playerID model.PlayerID, err error) {
	c.logger.Error("guess write failed",
		slog.String("room_id", string(room.ID)),
		slog.String("player_id", string(playerID)),
		slog.String("error", err.Error()),
	)
}

// allLettersGuessed reports whether every distinct letter of word appears
// in the guessed set. Non-letter runes such as hyphens are never guessable
// and never hidden, so they don't count.
func allLettersGuessed(word string, guessed []string) bool {
	if word == "" {
		return false
	}
	set := make(map[string]struct{}, len(guessed))
	for _, l := range guessed {
		set[l] = struct{}{}
	}
	for _, r := range word {
		if r < 'A' || r > 'Z' {
			continue
		}
		if _, ok := set[string(r)]; !ok {
			return false
		}
	}
	return true
}

func validLetter(letter string) bool {
	if len(letter) != 1 {
		return false
	}
	return letter[0] >= 'A' && letter[0] <= 'Z'
}

// Interface for dependency injection
type ControllerInterface interface {
	SubmitGuess(ctx context.Context, roomID model.RoomID, playerID model.PlayerID, letter string) (*Result, error)
}

var _ ControllerInterface = (*Controller)(nil)
