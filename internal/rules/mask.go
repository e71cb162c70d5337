package rules

import "strings"

// MaskWord renders the word with unguessed letters hidden. Guessed letters
// show through; everything else becomes an underscore. Non-letter runes
// such as spaces and hyphens are always visible.
func MaskWord(word string, guessed []string) string {
	guessedSet := make(map[string]struct{}, len(guessed))
	for _, l := range guessed {
		guessedSet[strings.ToUpper(l)] = struct{}{}
	}

	var b strings.Builder
	for _, r := range strings.ToUpper(word) {
		if r < 'A' || r > 'Z' {
			b.WriteRune(r)
			continue
		}
		if _, ok := guessedSet[string(r)]; ok {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}
