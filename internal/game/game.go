package game

import (
	"errors"
	"sort"
	"strings"
	"time"
	"unicode"
)

// MaxWrongGuesses is how many misses a round allows before it is lost.
const MaxWrongGuesses = 6

var (
	ErrInvalidGuess   = errors.New("guess must be a single letter")
	ErrAlreadyGuessed = errors.New("letter already guessed")
	ErrGameOver       = errors.New("game is over")
)

type Status int

const (
	InProgress Status = iota
	Won
	Lost
)

func (s Status) String() string {
	switch s {
	case InProgress:
		return "in_progress"
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "unknown"
	}
}

// Session is the state of one hangman round. The caller creates it on
// "new game" and drops it on restart. Not safe for concurrent use, callers
// serialize access per session.
type Session struct {
	ID         string
	Difficulty Difficulty
	CreatedAt  time.Time

	word    string
	guessed map[rune]bool
	wrong   int
	status  Status
}

// NewSession starts a round for word, which must already be validated and
// uppercase (the words package guarantees both).
func NewSession(id string, d Difficulty, word string) *Session {
	return &Session{
		ID:         id,
		Difficulty: d,
		CreatedAt:  time.Now(),
		word:       strings.ToUpper(word),
		guessed:    make(map[rune]bool),
		status:     InProgress,
	}
}

// Guess registers a single letter. Invalid input, repeats and guesses after
// the round ended leave the session untouched and report a typed error the
// UI turns into a message.
func (s *Session) Guess(letter rune) error {
	if s.status != InProgress {
		return ErrGameOver
	}

	letter = unicode.ToUpper(letter)
	if letter < 'A' || letter > 'Z' {
		return ErrInvalidGuess
	}

	if s.guessed[letter] {
		return ErrAlreadyGuessed
	}

	s.guessed[letter] = true
	if !strings.ContainsRune(s.word, letter) {
		s.wrong++
	}

	// Recompute status after every accepted guess
	if s.revealed() {
		s.status = Won
	} else if s.wrong >= MaxWrongGuesses {
		s.status = Lost
	}

	return nil
}

func (s *Session) revealed() bool {
	for _, c := range s.word {
		if !s.guessed[c] {
			return false
		}
	}
	return true
}

func (s *Session) Word() string { return s.word }

// Contains reports whether the target word has the letter, case insensitive.
func (s *Session) Contains(letter rune) bool {
	return strings.ContainsRune(s.word, unicode.ToUpper(letter))
}
func (s *Session) Status() Status { return s.status }
func (s *Session) Over() bool     { return s.status != InProgress }

// Remaining is how many more misses the round survives.
func (s *Session) Remaining() int { return MaxWrongGuesses - s.wrong }

func (s *Session) WrongCount() int { return s.wrong }

// GuessCount is how many distinct letters have been guessed so far.
func (s *Session) GuessCount() int { return len(s.guessed) }

// MaskedWord is the display form of the word: guessed letters revealed,
// the rest shown as underscores, space separated.
func (s *Session) MaskedWord() string {
	var b strings.Builder
	for i, c := range s.word {
		if i > 0 {
			b.WriteByte(' ')
		}
		if s.guessed[c] {
			b.WriteRune(c)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}

// CorrectLetters returns the guessed letters present in the word, sorted
// and comma separated for display.
func (s *Session) CorrectLetters() string {
	return s.letters(true)
}

// WrongLetters returns the guessed letters absent from the word, sorted.
func (s *Session) WrongLetters() string {
	return s.letters(false)
}

func (s *Session) letters(inWord bool) string {
	out := []string{}
	for l := range s.guessed {
		if strings.ContainsRune(s.word, l) == inWord {
			out = append(out, string(l))
		}
	}
	sort.Strings(out)
	return strings.Join(out, ", ")
}
