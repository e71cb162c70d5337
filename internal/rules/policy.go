// Package rules holds the pure per-mode decision logic: which word a player
// is guessing and whether it is currently their turn. It is stateless and
// exhaustive over the GameMode variants so that adding a mode is a
// compile-visible change rather than a scattered conditional.
package rules

import "github.com/forcadev/forca-online/internal/model"

// MaxErrors is the number of wrong guesses that loses a round
const MaxErrors = 6

// WordToGuess returns the word the given side of the room is guessing.
// Competitive and cooperative rooms share a single word; in challenger
// rooms each player guesses the word the opponent authored.
func WordToGuess(room *model.Room, isHost bool) string {
	switch room.Mode {
	case model.ModeCompetitive, model.ModeCooperative:
		return room.Word
	case model.ModeChallenger:
		if isHost {
			// The guest authored the host's puzzle
			return room.GuestWord
		}
		return room.HostWord
	}
	return ""
}

// IsMyTurn reports whether the owner of mine may guess right now.
// Competitive and challenger rooms have no turn restriction; both players
// act independently in parallel. Cooperative rooms strictly alternate:
// you may guess while your own submission count has not pulled ahead of
// your partner's, so the two counts never diverge by more than one.
// TurnCount rather than the guessed-letter list is compared because the
// letter list is mirrored across both records in cooperative rooms.
func IsMyTurn(room *model.Room, mine, opponent *model.Progress) bool {
	switch room.Mode {
	case model.ModeCompetitive, model.ModeChallenger:
		return true
	case model.ModeCooperative:
		myCount := 0
		if mine != nil {
			myCount = mine.TurnCount
		}
		opponentCount := 0
		if opponent != nil {
			opponentCount = opponent.TurnCount
		}
		return myCount <= opponentCount
	}
	return false
}
