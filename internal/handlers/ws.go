package handlers

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// wsClient is one live connection watching a game. The mutex serializes
// writes: gorilla/websocket allows only one concurrent writer per
// connection, and broadcasts race the handler's own writes without it.
type wsClient struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (cl *wsClient) writeJSON(v any) error {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	return cl.conn.WriteJSON(v)
}

var (
	// Per-game registry of connected clients.
	wsClients   = make(map[string][]*wsClient)
	wsClientsMu sync.Mutex

	upgrader = websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool { return true },
	}
)

// wsMessage is the frame both directions use. Clients send
// {action: "guess", payload: "<letter>"}; the server pushes
// {action: "state", state: {...}} to every client of the game.
type wsMessage struct {
	Action  string `json:"action"`
	Payload string `json:"payload,omitempty"`
	Message string `json:"message,omitempty"`
	State   gin.H  `json:"state,omitempty"`
}

// WsHandler upgrades the connection and relays guesses for one game,
// pushing the refreshed board to everyone watching it after each one.
func (h *Handler) WsHandler(c *gin.Context) {
	gameID := c.Param("gameID")
	lg, ok := h.lookup(gameID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "game not found"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.Error("Error upgrading websocket", slog.Any("error", err))
		return
	}

	client := &wsClient{conn: conn}

	// Opening frame so a reconnecting client sees the current board. Sent
	// before the client is registered, so no broadcast can interleave.
	lg.mu.Lock()
	state := boardState(lg.sess, "")
	lg.mu.Unlock()
	if err := client.writeJSON(wsMessage{Action: "state", State: state}); err != nil {
		conn.Close()
		return
	}

	wsClientsMu.Lock()
	wsClients[gameID] = append(wsClients[gameID], client)
	wsClientsMu.Unlock()

	defer func() {
		wsClientsMu.Lock()
		forGame := wsClients[gameID]
		for i, cl := range forGame {
			if cl == client {
				wsClients[gameID] = append(forGame[:i], forGame[i+1:]...)
				break
			}
		}
		if len(wsClients[gameID]) == 0 {
			delete(wsClients, gameID)
		}
		wsClientsMu.Unlock()
		conn.Close()
	}()

	for {
		var msg wsMessage
		if err := conn.ReadJSON(&msg); err != nil {
			break // client disconnected
		}
		if msg.Action != "guess" {
			continue
		}

		lg.mu.Lock()
		message := h.applyGuess(c, lg, msg.Payload)
		state := boardState(lg.sess, message)
		lg.mu.Unlock()

		broadcastState(gameID, message, state)
	}
}

func broadcastState(gameID, message string, state gin.H) {
	wsClientsMu.Lock()
	defer wsClientsMu.Unlock()

	for _, cl := range wsClients[gameID] {
		if err := cl.writeJSON(wsMessage{Action: "state", Message: message, State: state}); err != nil {
			slog.Warn("Error writing websocket state", slog.Any("error", err))
		}
	}
}
