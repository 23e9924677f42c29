package main

import (
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vocadrill/internal/config"
	"vocadrill/internal/database"
	"vocadrill/internal/handlers"
	"vocadrill/internal/repository"
	"vocadrill/internal/security"
	"vocadrill/internal/service"
)

func main() {
	// Load configuration
	cfg := config.Load()

	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET must be set")
	}

	// Initialize database with config (supports sqlite, postgres, mysql)
	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	log.Printf("Database connection established (type: %s)", cfg.DatabaseType)

	// Run migrations
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Migrations completed successfully")

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	wordRepo := repository.NewWordRepository(db)
	conjugationRepo := repository.NewConjugationRepository(db)
	gameRepo := repository.NewGameRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	// Initialize services
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.SessionDuration)
	wordService := service.NewWordService(wordRepo)
	conjugationService := service.NewConjugationService(conjugationRepo)
	gameService := service.NewGameService(wordRepo, conjugationRepo, gameRepo, cfg.QueueLimit)
	settingsService := service.NewSettingsService(settingsRepo, conjugationRepo)
	statsService := service.NewStatsService(gameRepo, wordRepo, conjugationRepo)

	// 10 auth attempts per IP per minute
	loginLimiter := security.NewRateLimiter(10, time.Minute)

	// Initialize handlers
	middleware := handlers.NewMiddleware(authService, loginLimiter)
	router := handlers.NewRouter(&handlers.Handlers{
		Middleware:   middleware,
		Auth:         handlers.NewAuthHandler(authService),
		Words:        handlers.NewWordHandler(wordService),
		Conjugations: handlers.NewConjugationHandler(conjugationService),
		Settings:     handlers.NewSettingsHandler(settingsService),
		Stats:        handlers.NewStatsHandler(statsService),
		Game:         handlers.NewGameHandler(gameService),
	})

	// Wrap with logging middleware
	handler := handlers.Logging(router)

	// Start server
	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on http://localhost%s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")
}
