// Package words picks the target word for a round: an AI generator when one
// is configured and reachable, a bundled word list otherwise.
package words

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"hangman/internal/game"
)

// Generator produces a candidate word for a difficulty. Implementations may
// fail; Source handles recovery.
type Generator interface {
	Word(ctx context.Context, d game.Difficulty) (string, error)
}

// ErrBadWord is wrapped by Validate for any candidate that cannot be used.
var ErrBadWord = errors.New("unusable word")

// Source is the round word supplier. A nil generator means offline only.
type Source struct {
	gen     Generator
	timeout time.Duration
}

func NewSource(gen Generator, timeout time.Duration) *Source {
	if timeout <= 0 {
		timeout = 8 * time.Second
	}
	return &Source{gen: gen, timeout: timeout}
}

// Pick returns an uppercase word within the difficulty's length range. It
// never fails: a generator error or an invalid candidate falls through to
// the bundled list. The player never sees provider trouble.
func (s *Source) Pick(ctx context.Context, d game.Difficulty) string {
	if s.gen != nil {
		ctx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()

		raw, err := s.gen.Word(ctx, d)
		if err == nil {
			word, verr := Validate(raw, d)
			if verr == nil {
				return word
			}
			err = verr
		}
		slog.Warn("word generator unavailable, using fallback list", "difficulty", d.String(), "error", err)
	}
	return Fallback(d)
}

// blocklist stands in for the fairness rules the generator is prompted with;
// anything here is rejected no matter where it came from.
var blocklist = map[string]bool{
	"SEXY":  true,
	"DAMN":  true,
	"HELL":  true,
	"BITCH": true,
}

// Validate turns a raw generator response into a usable word or a typed
// failure. It strips fencing and whitespace, requires a single purely
// alphabetic token, uppercases it and enforces the difficulty's length
// range. Partially valid output never gets through.
func Validate(raw string, d game.Difficulty) (string, error) {
	w := stripCodeFences(raw)
	w = strings.TrimSpace(w)

	if w == "" {
		return "", fmt.Errorf("%w: empty response", ErrBadWord)
	}
	if strings.ContainsAny(w, " \t\n") {
		return "", fmt.Errorf("%w: %q is not a single word", ErrBadWord, w)
	}
	for _, c := range w {
		if !('a' <= c && c <= 'z' || 'A' <= c && c <= 'Z') {
			return "", fmt.Errorf("%w: %q contains non-letters", ErrBadWord, w)
		}
	}

	w = strings.ToUpper(w)
	min, max := d.LengthRange()
	if len(w) < min || len(w) > max {
		return "", fmt.Errorf("%w: %q has %d letters, want %d-%d for %s", ErrBadWord, w, len(w), min, max, d)
	}
	if blocklist[w] {
		return "", fmt.Errorf("%w: %q is blocklisted", ErrBadWord, w)
	}
	return w, nil
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
