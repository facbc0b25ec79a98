package handlers

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func dialGame(t *testing.T, srv *httptest.Server, gameID string) *websocket.Conn {
	t.Helper()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/game/" + gameID
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", wsURL, err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readFrame(t *testing.T, conn *websocket.Conn) wsMessage {
	t.Helper()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg wsMessage
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read frame: %v", err)
	}
	return msg
}

func TestWsGuessUpdatesBoard(t *testing.T) {
	r, _ := newTestRouter(t, fixedGenerator{word: "rainbow"})
	srv := httptest.NewServer(r)
	defer srv.Close()

	gameID := startGame(t, r, "medium")
	conn := dialGame(t, srv, gameID)

	opening := readFrame(t, conn)
	if opening.Action != "state" {
		t.Fatalf("opening action = %q, want state", opening.Action)
	}
	if got := opening.State["MaskedWord"]; got != "_ _ _ _ _ _ _" {
		t.Fatalf("opening masked word = %v", got)
	}

	if err := conn.WriteJSON(wsMessage{Action: "guess", Payload: "r"}); err != nil {
		t.Fatal(err)
	}

	update := readFrame(t, conn)
	if got := update.State["MaskedWord"]; got != "R _ _ _ _ _ _" {
		t.Errorf("masked word after guess = %v, want R _ _ _ _ _ _", got)
	}
	if !strings.Contains(update.Message, "Good guess") {
		t.Errorf("update message = %q", update.Message)
	}
}

func TestWsBroadcastReachesOtherClients(t *testing.T) {
	r, _ := newTestRouter(t, fixedGenerator{word: "rainbow"})
	srv := httptest.NewServer(r)
	defer srv.Close()

	gameID := startGame(t, r, "medium")
	watcher := dialGame(t, srv, gameID)
	player := dialGame(t, srv, gameID)

	readFrame(t, watcher) // opening frames
	readFrame(t, player)

	if err := player.WriteJSON(wsMessage{Action: "guess", Payload: "w"}); err != nil {
		t.Fatal(err)
	}

	// The guess from one connection reaches every client of the game.
	update := readFrame(t, watcher)
	if got := update.State["MaskedWord"]; got != "_ _ _ _ _ _ W" {
		t.Errorf("watcher masked word = %v, want _ _ _ _ _ _ W", got)
	}
}

func TestWsConcurrentClientsAndGuesses(t *testing.T) {
	// One connection hammers guesses while fresh clients keep joining, so
	// broadcast writes overlap opening writes on young connections.
	r, _ := newTestRouter(t, fixedGenerator{word: "rainbow"})
	srv := httptest.NewServer(r)
	defer srv.Close()

	gameID := startGame(t, r, "medium")
	player := dialGame(t, srv, gameID)
	readFrame(t, player)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for _, l := range "rainbow" {
			player.WriteJSON(wsMessage{Action: "guess", Payload: string(l)})
		}
	}()

	for i := 0; i < 5; i++ {
		conn := dialGame(t, srv, gameID)
		frame := readFrame(t, conn)
		if frame.Action != "state" {
			t.Fatalf("client %d opening action = %q", i, frame.Action)
		}
		conn.Close()
	}

	<-done
}

func TestWsUnknownGameRejected(t *testing.T) {
	r, _ := newTestRouter(t, fixedGenerator{word: "rainbow"})
	srv := httptest.NewServer(r)
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/game/nope"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err == nil {
		conn.Close()
		t.Fatal("dial to unknown game succeeded")
	}
	if resp == nil || resp.StatusCode != 404 {
		t.Errorf("unknown game handshake response = %+v, want 404", resp)
	}
}
