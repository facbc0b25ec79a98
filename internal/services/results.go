package services

import (
	"database/sql"
	"log/slog"
	"time"
)

type Result struct {
	PlayerID     string
	PlayerName   string
	Word         string
	Difficulty   string
	Won          bool
	WrongGuesses int
	Duration     time.Duration
}

type LeaderboardEntry struct {
	Username  string
	Wins      int
	BestScore int
}

type PlayerStats struct {
	Username string
	Played   int
	Wins     int
	// BestScore is the fewest wrong guesses in a won round, -1 until a win.
	BestScore int
}

// RecordResult persists a finished round and, on a win, bumps the player's
// leaderboard row. Best score is the fewest wrong guesses across wins.
func RecordResult(db *sql.DB, r Result) error {
	_, err := db.Exec("INSERT INTO players (id, username) VALUES ($1, $2) ON CONFLICT (id) DO UPDATE SET username = $2", r.PlayerID, r.PlayerName)
	if err != nil {
		slog.Error("Error upserting player", slog.Any("error", err))
		return err
	}

	_, err = db.Exec("INSERT INTO results (player_id, word, difficulty, won, wrong_guesses, duration_ms) VALUES ($1, $2, $3, $4, $5, $6)",
		r.PlayerID, r.Word, r.Difficulty, r.Won, r.WrongGuesses, r.Duration.Milliseconds())
	if err != nil {
		slog.Error("Error inserting result", slog.Any("error", err))
		return err
	}

	if !r.Won {
		return nil
	}

	_, err = db.Exec(`INSERT INTO leaderboard (player_id, wins, best_score) VALUES ($1, 1, $2)
		ON CONFLICT (player_id) DO UPDATE SET
			wins = leaderboard.wins + 1,
			best_score = LEAST(leaderboard.best_score, $2)`, r.PlayerID, r.WrongGuesses)
	if err != nil {
		slog.Error("Error updating leaderboard", slog.Any("error", err))
	}
	return err
}

// GetLeaderboard returns the top players by wins, best score breaking ties.
func GetLeaderboard(db *sql.DB, limit int) ([]LeaderboardEntry, error) {
	rows, err := db.Query("SELECT users.username, leaderboard.wins, leaderboard.best_score FROM leaderboard JOIN players AS users ON users.id = leaderboard.player_id ORDER BY wins DESC, best_score ASC LIMIT $1", limit)
	if err != nil {
		slog.Error("Error fetching leaderboard", "error", err.Error())
		return nil, err
	}
	defer rows.Close()

	var entries []LeaderboardEntry
	for rows.Next() {
		var e LeaderboardEntry
		if err := rows.Scan(&e.Username, &e.Wins, &e.BestScore); err != nil {
			slog.Error("Error scanning leaderboard row")
			return entries, err
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// GetPlayerStats returns one guest's record for the profile fragment.
func GetPlayerStats(db *sql.DB, playerID string) (PlayerStats, error) {
	stats := PlayerStats{BestScore: -1}

	row := db.QueryRow("SELECT username FROM players WHERE id = $1", playerID)
	if err := row.Scan(&stats.Username); err != nil {
		if err != sql.ErrNoRows {
			slog.Error("Error scanning player", "error", err.Error())
		}
		return stats, err
	}

	row = db.QueryRow("SELECT COUNT(*), COUNT(*) FILTER (WHERE won) FROM results WHERE player_id = $1", playerID)
	if err := row.Scan(&stats.Played, &stats.Wins); err != nil {
		slog.Error("Error scanning result counts", "error", err.Error())
		return stats, err
	}

	var best sql.NullInt64
	row = db.QueryRow("SELECT best_score FROM leaderboard WHERE player_id = $1", playerID)
	if err := row.Scan(&best); err != nil && err != sql.ErrNoRows {
		slog.Error("Error scanning best score", "error", err.Error())
		return stats, err
	}
	if best.Valid {
		stats.BestScore = int(best.Int64)
	}

	return stats, nil
}
