package game

import "fmt"

type Difficulty int

const (
	Easy Difficulty = iota
	Medium
	Hard
)

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	default:
		return "unknown"
	}
}

// LengthRange is the inclusive word length range for the difficulty.
func (d Difficulty) LengthRange() (min, max int) {
	switch d {
	case Easy:
		return 4, 6
	case Hard:
		return 8, 12
	default:
		return 6, 8
	}
}

// ParseDifficulty maps a form value to a Difficulty. Unknown or empty input
// is an error so handlers can fall back to their own default.
func ParseDifficulty(s string) (Difficulty, error) {
	switch s {
	case "easy":
		return Easy, nil
	case "medium":
		return Medium, nil
	case "hard":
		return Hard, nil
	}
	return Medium, fmt.Errorf("unknown difficulty %q", s)
}
