package main

import (
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/leetdaily/bot/internal/auth"
	"github.com/leetdaily/bot/internal/bot"
	"github.com/leetdaily/bot/internal/catalog"
	"github.com/leetdaily/bot/internal/config"
	"github.com/leetdaily/bot/internal/database"
	"github.com/leetdaily/bot/internal/hints"
	"github.com/leetdaily/bot/internal/tracker"
)

func main() {
	cfg := config.Load()
	if cfg.DiscordToken == "" {
		log.Fatal("DISCORD_TOKEN is required")
	}

	// Initialize database
	db, err := database.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Wire the tracker
	store := tracker.NewStore(db)
	source := catalog.NewClient(cfg.LeetcodeSession)
	service := tracker.NewService(store, source)
	hinter := hints.NewHinter(hints.NewClient())

	// Discord surface
	discordBot, err := bot.New(cfg.DiscordToken, cfg.CommandPrefix, cfg.DailyDifficulties, service, hinter)
	if err != nil {
		log.Fatalf("Failed to create Discord bot: %v", err)
	}
	if err := discordBot.Start(); err != nil {
		log.Fatalf("Failed to start Discord bot: %v", err)
	}
	defer discordBot.Stop()

	// HTTP surface
	trackerHandler := tracker.NewHandler(service)
	authHandler := auth.NewHandler(cfg.AdminUsername, cfg.AdminPasswordHash, []byte(cfg.JWTSecret))

	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()

	// Public routes
	api.HandleFunc("/daily", trackerHandler.GetDailySet).Methods("GET")
	api.HandleFunc("/leaderboard", trackerHandler.Leaderboard).Methods("GET")
	api.HandleFunc("/leaderboard/chart", trackerHandler.LeaderboardChart).Methods("GET")
	api.HandleFunc("/users/{id}/progress", trackerHandler.Progress).Methods("GET")
	api.HandleFunc("/users/{id}/progress/chart", trackerHandler.ProgressChart).Methods("GET")

	// Admin routes
	if authHandler.Enabled() {
		api.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

		protected := api.PathPrefix("").Subrouter()
		protected.Use(authHandler.Middleware)
		protected.HandleFunc("/daily", trackerHandler.RollDaily).Methods("POST")
	} else {
		log.Println("Admin credentials not configured; manual roll endpoint disabled")
	}

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})
	handler := c.Handler(r)

	go func() {
		log.Printf("HTTP API listening on :%s", cfg.HTTPPort)
		if err := http.ListenAndServe(":"+cfg.HTTPPort, handler); err != nil {
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	log.Println("Bot is running. Press Ctrl+C to exit.")
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Println("Shutting down")
}
