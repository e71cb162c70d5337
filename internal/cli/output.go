package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/forcadev/forca-online/internal/model"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case *model.Player:
		o.printPlayer(v)
	case *model.Room:
		o.printRoom(v)
	case *RoomState:
		o.printRoomState(v)
	case *GuessResult:
		o.printGuessResult(v)
	case *CategoriesResult:
		o.printCategories(v)
	case *HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

func (o *Output) printPlayer(p *model.Player) {
	fmt.Printf("Player: %s (%s)\n", p.DisplayName, p.ID)
}

func (o *Output) printRoom(r *model.Room) {
	fmt.Printf("Room: %s\n", r.Code)
	fmt.Printf("Mode: %s\n", r.Mode)
	fmt.Printf("Status: %s\n", r.Status)
	if r.Category != "" {
		fmt.Printf("Category: %s\n", r.Category)
	}
	fmt.Printf("Host: %s\n", r.HostName)
	if r.GuestName != "" {
		fmt.Printf("Guest: %s\n", r.GuestName)
	}
	if r.WinnerID != "" {
		fmt.Printf("Winner: %s\n", winnerName(r))
	}
}

// gallows has one drawing per error count, zero through six
var gallows = [7]string{
	`
  +---+
  |   |
      |
      |
      |
      |
=========`,
	`
  +---+
  |   |
  O   |
      |
      |
      |
=========`,
	`
  +---+
  |   |
  O   |
  |   |
      |
      |
=========`,
	`
  +---+
  |   |
  O   |
 /|   |
      |
      |
=========`,
	`
  +---+
  |   |
  O   |
 /|\  |
      |
      |
=========`,
	`
  +---+
  |   |
  O   |
 /|\  |
 /    |
      |
=========`,
	`
  +---+
  |   |
  O   |
 /|\  |
 / \  |
      |
=========`,
}

func (o *Output) printRoomState(s *RoomState) {
	o.printRoom(&s.Room)

	if s.Mine == nil {
		return
	}

	errorCount := s.Mine.Errors
	if errorCount >= len(gallows) {
		errorCount = len(gallows) - 1
	}
	fmt.Println(gallows[errorCount])

	fmt.Printf("\nWord: %s\n", spaced(s.MaskedWord))
	if len(s.Mine.GuessedLetters) > 0 {
		fmt.Printf("Guessed: %s\n", strings.Join(s.Mine.GuessedLetters, " "))
	}
	fmt.Printf("Errors: %d/%d\n", s.Mine.Errors, s.MaxErrors)

	if s.Opponent != nil && s.Room.Mode != model.ModeCooperative {
		fmt.Printf("Opponent: %d letters tried, %d errors\n",
			len(s.Opponent.GuessedLetters), s.Opponent.Errors)
	}

	switch {
	case s.Mine.Won:
		fmt.Println("\nYou won!")
	case s.Mine.Finished:
		fmt.Println("\nYou lost.")
	case s.Room.Mode == model.ModeCooperative && !s.IsMyTurn:
		fmt.Println("\nWaiting for your partner's turn.")
	}
}

func (o *Output) printGuessResult(r *GuessResult) {
	switch {
	case !r.Applied:
		fmt.Println("Guess not applied (already tried, not your turn, or round over)")
	case r.Won:
		fmt.Println("Correct - you won!")
	case r.Finished:
		fmt.Println("Wrong - out of guesses, you lost.")
	case r.Correct:
		fmt.Println("Correct!")
	default:
		fmt.Println("Wrong!")
	}
}

func (o *Output) printCategories(c *CategoriesResult) {
	fmt.Printf("Categories (%d):\n", len(c.Categories))
	for _, cat := range c.Categories {
		fmt.Printf("  - %s\n", cat)
	}
}

func (o *Output) printHealthResult(h *HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}

// spaced separates each rune for readability, so "_A_O" prints as "_ A _ O"
func spaced(word string) string {
	runes := []rune(word)
	parts := make([]string, len(runes))
	for i, r := range runes {
		parts[i] = string(r)
	}
	return strings.Join(parts, " ")
}

func winnerName(r *model.Room) string {
	switch r.WinnerID {
	case r.HostID:
		return r.HostName
	case r.GuestID:
		return r.GuestName
	}
	return string(r.WinnerID)
}
