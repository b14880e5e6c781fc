package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/assoclub/club-api/internal/auth"
	"github.com/assoclub/club-api/internal/config"
	"github.com/assoclub/club-api/internal/database"
	"github.com/assoclub/club-api/internal/handlers"
	"github.com/assoclub/club-api/internal/logging"
	"github.com/assoclub/club-api/internal/notifier"
	"github.com/assoclub/club-api/internal/photos"
	"github.com/bwmarrin/discordgo"
	"github.com/go-chi/chi/v5"
)

func main() {
	logging.Setup()

	// Load Configuration
	cfg := config.LoadConfig()

	// Connect to Database
	db := database.Connect(cfg)

	// Optional Discord announcements
	var eventNotifier notifier.Notifier
	if cfg.DiscordBotToken != "" {
		session, err := discordgo.New("Bot " + cfg.DiscordBotToken)
		if err != nil {
			slog.Warn("Discord notifier not initialized", "error", err)
		} else {
			eventNotifier = notifier.NewDiscordNotifier(session, cfg.DiscordEventsChannelID)
		}
	}

	photoStore := photos.NewStore(cfg.UploadDir, cfg.MaxUploadBytes, cfg.AllowedPhotoExts)

	// Initialize Handlers
	authHandler := auth.NewAuthHandler(cfg, db)
	memberHandler := handlers.NewMemberHandler(db, authHandler)
	eventHandler := handlers.NewEventHandler(db, eventNotifier, authHandler, cfg)
	reportHandler := handlers.NewReportHandler(db, authHandler)
	clubHandler := handlers.NewClubHandler(db, authHandler)
	apiKeyHandler := handlers.NewAPIKeyHandler(db, authHandler)
	photoHandler := handlers.NewPhotoHandler(db, photoStore)

	// Initialize Router
	r := chi.NewRouter()

	// Register Routes
	handlers.RegisterRoutes(r, authHandler, memberHandler, eventHandler, reportHandler, clubHandler, apiKeyHandler, photoHandler)

	// Start Server
	slog.Info("Starting server", "port", cfg.Port)
	if err := http.ListenAndServe(fmt.Sprintf(":%s", cfg.Port), r); err != nil {
		slog.Error("Failed to start server", "error", err)
		os.Exit(1)
	}
}
