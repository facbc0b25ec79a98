package main

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"

	"hangman/internal/config"
	"hangman/internal/handlers"
	"hangman/internal/routes"
	"hangman/internal/words"
)

var db *sql.DB

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	initDB(cfg.DatabaseURL)

	r := gin.Default()

	// Load templates
	r.LoadHTMLGlob("templates/**/*")

	// Serve static files
	r.Static("/assets", "./assets")

	var generator words.Generator
	if cfg.GeminiKey != "" {
		generator = words.NewGemini(cfg.GeminiKey, cfg.GeminiModel)
	} else {
		log.Println("GEMINI_API_KEY not set, words come from the bundled lists only")
	}

	handler := &handlers.Handler{
		DB:    db,
		Words: words.NewSource(generator, cfg.WordTimeout),
	}

	// Clean out abandoned rounds so the session map stays bounded
	go func() {
		ticker := time.NewTicker(time.Minute * 10)

		for range ticker.C {
			handler.SweepSessions(time.Hour)
		}
	}()

	// Add public routes
	routes.PublicRoutes(r, handler)

	// Add guest routes
	routes.GuestRoutes(r, handler, cfg.Secret)

	port := ":" + cfg.Port
	fmt.Printf("Server running at http://localhost%s\n", port)
	r.Run(port)
}

func initDB(connStr string) {
	var err error
	db, err = sql.Open("postgres", connStr)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		log.Fatalf("Database ping failed: %v", err)
	}

	applyMigrations()
}

func applyMigrations() {
	migrationsDir := "migrations"
	if err := goose.Up(db, migrationsDir); err != nil {
		log.Fatalf("Failed to apply migrations: %v", err)
	}
	log.Println("Database migrations applied successfully.")
}
