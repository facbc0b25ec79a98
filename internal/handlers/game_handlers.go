package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"hangman/internal/auth"
	"hangman/internal/game"
	"hangman/internal/services"
)

// liveGame pairs a session with the lock that serializes guesses from the
// form and websocket paths. recorded keeps a finished round from hitting
// the database twice.
type liveGame struct {
	mu       sync.Mutex
	sess     *game.Session
	recorded bool
}

func (h *Handler) lookup(gameID string) (*liveGame, bool) {
	v, ok := h.Games.Load(gameID)
	if !ok {
		return nil, false
	}
	return v.(*liveGame), true
}

// CreateGame starts a round: difficulty from the form (medium when absent
// or unknown), word from the provider, fresh session keyed by uuid.
func (h *Handler) CreateGame(c *gin.Context) {
	difficulty, err := game.ParseDifficulty(c.PostForm("difficulty"))
	if err != nil {
		difficulty = game.Medium
	}

	word := h.Words.Pick(c.Request.Context(), difficulty)
	gameID := uuid.New().String()
	h.Games.Store(gameID, &liveGame{sess: game.NewSession(gameID, difficulty, word)})

	slog.Info("Started new game", "game_id", gameID, "difficulty", difficulty.String(), "letters", len(word))

	c.Header("HX-Redirect", "/game/"+gameID)
	c.Redirect(http.StatusSeeOther, "/game/"+gameID)
}

func (h *Handler) GetGame(c *gin.Context) {
	lg, ok := h.lookup(c.Param("gameID"))
	if !ok {
		c.HTML(http.StatusNotFound, "redirector.html", gin.H{"Title": "Game not found", "Message": "That game is gone. Start a new one!", "URL": "/"})
		return
	}

	lg.mu.Lock()
	// Greet only an untouched round; a mid-game refresh keeps quiet.
	message := ""
	if lg.sess.GuessCount() == 0 {
		message = fmt.Sprintf("New %s game started! Word has %d letters.", lg.sess.Difficulty, len(lg.sess.Word()))
	}
	data := boardState(lg.sess, message)
	lg.mu.Unlock()

	c.HTML(http.StatusOK, "gameplay.html", data)
}

// PostGuess handles a letter submitted from the htmx form and re-renders
// the board fragment. Rule violations come back as messages, never as
// error statuses.
func (h *Handler) PostGuess(c *gin.Context) {
	lg, ok := h.lookup(c.Param("gameID"))
	if !ok {
		c.HTML(http.StatusNotFound, "redirector.html", gin.H{"Title": "Game not found", "Message": "That game is gone. Start a new one!", "URL": "/"})
		return
	}

	lg.mu.Lock()
	message := h.applyGuess(c, lg, c.PostForm("letter"))
	data := boardState(lg.sess, message)
	lg.mu.Unlock()

	c.HTML(http.StatusOK, "board.html", data)
}

// Restart discards the session and starts a fresh round at the same
// difficulty. The old game id stops resolving immediately.
func (h *Handler) Restart(c *gin.Context) {
	lg, ok := h.lookup(c.Param("gameID"))
	if !ok {
		c.Header("HX-Redirect", "/")
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	lg.mu.Lock()
	difficulty := lg.sess.Difficulty
	lg.mu.Unlock()
	h.Games.Delete(c.Param("gameID"))

	word := h.Words.Pick(c.Request.Context(), difficulty)
	gameID := uuid.New().String()
	h.Games.Store(gameID, &liveGame{sess: game.NewSession(gameID, difficulty, word)})

	c.Header("HX-Redirect", "/game/"+gameID)
	c.Redirect(http.StatusSeeOther, "/game/"+gameID)
}

// SweepSessions drops sessions older than maxAge and reports how many went.
// Abandoned rounds, finished or not, would otherwise pile up in the map
// forever. A round older than maxAge is long since walked away from.
func (h *Handler) SweepSessions(maxAge time.Duration) int {
	cutoff := time.Now().Add(-maxAge)
	swept := 0

	h.Games.Range(func(key, value any) bool {
		lg := value.(*liveGame)
		lg.mu.Lock()
		stale := lg.sess.CreatedAt.Before(cutoff)
		lg.mu.Unlock()
		if stale {
			h.Games.Delete(key)
			swept++
		}
		return true
	})

	if swept > 0 {
		slog.Info("Swept stale game sessions", "count", swept)
	}
	return swept
}

// applyGuess runs one guess against a locked liveGame and returns the
// message to show. Records the result once when the round ends.
func (h *Handler) applyGuess(c *gin.Context, lg *liveGame, input string) string {
	letters := []rune(input)
	if len(letters) != 1 {
		return "Please enter a single letter."
	}

	err := lg.sess.Guess(letters[0])
	switch {
	case errors.Is(err, game.ErrGameOver):
		return "Game is over! Start a new game."
	case errors.Is(err, game.ErrInvalidGuess):
		return "Please enter a single letter."
	case errors.Is(err, game.ErrAlreadyGuessed):
		return fmt.Sprintf("You already guessed '%c'. Try a different letter.", letters[0])
	}

	switch lg.sess.Status() {
	case game.Won:
		h.recordResult(c, lg)
		return fmt.Sprintf("Congratulations! You guessed the word '%s'!", lg.sess.Word())
	case game.Lost:
		h.recordResult(c, lg)
		return fmt.Sprintf("Game Over! The word was '%s'. Try again!", lg.sess.Word())
	}

	letter := letters[0]
	if lg.sess.Contains(letter) {
		return fmt.Sprintf("Good guess! '%c' is in the word.", letter)
	}
	return fmt.Sprintf("Sorry, '%c' is not in the word. %d guesses remaining.", letter, lg.sess.Remaining())
}

func (h *Handler) recordResult(c *gin.Context, lg *liveGame) {
	if lg.recorded {
		return
	}
	lg.recorded = true

	claims, err := auth.FromContext(c)
	if err != nil {
		slog.Error("Error getting claims for result", slog.Any("error", err))
		return
	}

	result := services.Result{
		PlayerID:     claims.ID,
		PlayerName:   claims.Username,
		Word:         lg.sess.Word(),
		Difficulty:   lg.sess.Difficulty.String(),
		Won:          lg.sess.Status() == game.Won,
		WrongGuesses: lg.sess.WrongCount(),
		Duration:     time.Since(lg.sess.CreatedAt),
	}
	if err := services.RecordResult(h.DB, result); err != nil {
		slog.Error("Error recording result", slog.Any("error", err))
	}
}

// boardState builds the template data every game view shares.
func boardState(s *game.Session, message string) gin.H {
	data := gin.H{
		"GameID":     s.ID,
		"Difficulty": cases.Title(language.English).String(s.Difficulty.String()),
		"MaskedWord": s.MaskedWord(),
		"Figure":     s.Figure(),
		"Remaining":  s.Remaining(),
		"Correct":    s.CorrectLetters(),
		"Wrong":      s.WrongLetters(),
		"GameOver":   s.Over(),
		"Won":        s.Status() == game.Won,
		"Message":    message,
	}
	if s.Over() {
		data["Word"] = s.Word()
	}
	return data
}
