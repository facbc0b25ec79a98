package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	"hangman/internal/auth"
	"hangman/internal/services"
	"hangman/internal/words"
)

type Handler struct {
	DB    *sql.DB
	Words *words.Source
	Games sync.Map // map[string]*liveGame
}

func (h *Handler) PingHandler(c *gin.Context) {
	c.JSON(200, gin.H{"message": "pong"})
}

func (h *Handler) GetIndex(c *gin.Context) {
	claims, err := auth.FromContext(c)
	if err != nil {
		c.HTML(http.StatusOK, "index.html", gin.H{})
		return
	}

	data := gin.H{"Username": claims.Username}

	if stats, err := services.GetPlayerStats(h.DB, claims.ID); err == nil {
		data["Stats"] = stats
	}

	if entries, err := services.GetLeaderboard(h.DB, 5); err == nil {
		data["Leaderboard"] = entries
	}

	c.HTML(http.StatusOK, "index.html", data)
}

func (h *Handler) GetHallOfFame(c *gin.Context) {
	entries, err := services.GetLeaderboard(h.DB, 25)
	if err != nil {
		slog.Error("Error loading hall of fame", slog.Any("error", err))
		c.HTML(http.StatusInternalServerError, "halloffame.html", gin.H{"Error": "Leaderboard unavailable. Please try again later."})
		return
	}

	c.HTML(http.StatusOK, "halloffame.html", gin.H{"Entries": entries})
}
