package routes

import (
	"hangman/internal/auth"
	"hangman/internal/handlers"

	"github.com/gin-gonic/gin"
)

// GuestRoutes covers everything that needs a guest identity. The middleware
// mints one on first visit, so these never reject a visitor.
func GuestRoutes(r *gin.Engine, handler *handlers.Handler, secret string) {
	guest := r.Group("/").Use(auth.GuestMiddleware(secret))

	// Root
	guest.GET("/", handler.GetIndex)

	// Game handlers
	guest.POST("/game", handler.CreateGame)
	guest.GET("/game/:gameID", handler.GetGame)
	guest.POST("/game/:gameID/guess", handler.PostGuess)
	guest.POST("/game/:gameID/restart", handler.Restart)
	guest.GET("/ws/game/:gameID", handler.WsHandler)
}
