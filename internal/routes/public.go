package routes

import (
	"hangman/internal/handlers"

	"github.com/gin-gonic/gin"
)

func PublicRoutes(r *gin.Engine, handler *handlers.Handler) {
	// Public routes
	r.GET("/ping", handler.PingHandler)

	// Public leaderboard
	r.GET("/halloffame", handler.GetHallOfFame)
}
