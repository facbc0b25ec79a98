package words

import (
	_ "embed"
	"math/rand"
	"strings"

	"hangman/internal/game"
)

//go:embed easy.txt
var easyWords string

//go:embed medium.txt
var mediumWords string

//go:embed hard.txt
var hardWords string

var fallback map[game.Difficulty][]string

func init() {
	fallback = map[game.Difficulty][]string{
		game.Easy:   splitList(easyWords),
		game.Medium: splitList(mediumWords),
		game.Hard:   splitList(hardWords),
	}
}

func splitList(raw string) []string {
	out := []string{}
	for _, w := range strings.Split(raw, "\n") {
		w = strings.TrimSpace(w)
		if w != "" {
			out = append(out, strings.ToUpper(w))
		}
	}
	return out
}

// Fallback picks a random word from the bundled list for the difficulty.
func Fallback(d game.Difficulty) string {
	list, ok := fallback[d]
	if !ok {
		list = fallback[game.Medium]
	}
	return list[rand.Intn(len(list))]
}
