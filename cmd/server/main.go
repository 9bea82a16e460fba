package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"
	"time"

	httpapi "hackmate-backend/internal/api/http"
	"hackmate-backend/internal/config"
	"hackmate-backend/internal/logger"
	"hackmate-backend/internal/repository/postgres"
	"hackmate-backend/internal/security"
	"hackmate-backend/internal/service"

	_ "github.com/lib/pq"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Hackmate Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenVerifier := security.NewTokenVerifier(cfg.JWT.Secret)

	// Initialize Services
	requestTTL := time.Duration(cfg.Matching.RequestTTLDays) * 24 * time.Hour
	matchmakingSvc := service.NewMatchmakingService(store.ProfileRepository, store.EventRepository)
	matchSvc := service.NewMatchService(
		store.MatchRequestRepository,
		store.ProfileRepository,
		store.EventRepository,
		store.TeamRepository,
		store.NotificationRepository,
		requestTTL,
	)
	teamSvc := service.NewTeamService(store.TeamRepository, store.EventRepository, store.NotificationRepository)
	profileSvc := service.NewProfileService(store.ProfileRepository)
	eventSvc := service.NewEventService(store.EventRepository)
	noteSvc := service.NewNotificationService(store.NotificationRepository)

	// Initialize HTTP handlers
	handlers := httpapi.Handlers{
		Matchmaking:  httpapi.NewMatchmakingHandler(matchmakingSvc, cfg.Matching.DefaultMinScore, cfg.Matching.DefaultLimit),
		Match:        httpapi.NewMatchHandler(matchSvc),
		Team:         httpapi.NewTeamHandler(teamSvc),
		Profile:      httpapi.NewProfileHandler(profileSvc),
		Event:        httpapi.NewEventHandler(eventSvc),
		Notification: httpapi.NewNotificationHandler(noteSvc),
	}

	router := httpapi.NewRouter(handlers, tokenVerifier, db)

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	srv := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("Failed to serve HTTP", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
