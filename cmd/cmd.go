package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Fezze07/JustUS/internal/config"
	"github.com/Fezze07/JustUS/internal/handlers"
	"github.com/Fezze07/JustUS/internal/middleware"
	"github.com/Fezze07/JustUS/internal/repository"
	"github.com/Fezze07/JustUS/internal/services"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func Run() {
	// Load .env overlay if present; real env always wins
	if err := godotenv.Load(); err == nil {
		log.Info().Msg("Loaded environment from .env")
	}

	// Load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Setup logger
	setupLogger(cfg.Log.Level)

	// Connect to database
	db, err := pgxpool.New(context.Background(), cfg.Database.DSN())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to ping database")
	}
	log.Info().Msg("Database connection established")

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	partnershipRepo := repository.NewPartnershipRepository(db)
	gameRepo := repository.NewGameRepository(db)
	moodRepo := repository.NewMoodRepository(db)
	bucketRepo := repository.NewBucketRepository(db)
	missYouRepo := repository.NewMissYouRepository(db)
	driveRepo := repository.NewDriveRepository(db)
	notifRepo := repository.NewNotificationRepository(db)

	// Initialize services
	userService := services.NewUserService(userRepo, cfg.JWT)
	partnershipService := services.NewPartnershipService(partnershipRepo, userRepo)
	generator := services.NewOllamaGenerator(cfg.Ollama)
	gameService := services.NewGameService(gameRepo, userRepo, partnershipRepo, generator)
	moodService := services.NewMoodService(moodRepo, partnershipRepo)
	bucketService := services.NewBucketService(bucketRepo, partnershipRepo)
	missYouService := services.NewMissYouService(missYouRepo, partnershipRepo)
	driveService, err := services.NewDriveService(driveRepo, partnershipRepo, cfg.Storage)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create drive service")
	}
	notifyService, err := services.NewNotifyService(cfg.APNs, userRepo, partnershipRepo, notifRepo)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create notify service")
	}
	wsHub := services.NewWSHub()

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	profileHandler := handlers.NewProfileHandler(userService)
	partnershipHandler := handlers.NewPartnershipHandler(partnershipService, notifyService, wsHub)
	gameHandler := handlers.NewGameHandler(gameService, wsHub)
	moodHandler := handlers.NewMoodHandler(moodService, partnershipService, wsHub)
	bucketHandler := handlers.NewBucketHandler(bucketService)
	missYouHandler := handlers.NewMissYouHandler(missYouService, notifyService, wsHub)
	driveHandler := handlers.NewDriveHandler(driveService)
	notifyHandler := handlers.NewNotifyHandler(notifyService)
	versionHandler := handlers.NewVersionHandler(cfg.Versions.File)
	wsHandler := handlers.NewWebSocketHandler(wsHub, userService, partnershipService)

	// Setup router
	r := chi.NewRouter()

	// Middleware
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(corsMiddleware)

	// Routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public routes
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/refresh", authHandler.Refresh)
		r.Post("/auth/recover-codes", authHandler.RecoverCodes)
		r.Post("/auth/device-token", authHandler.UpdateDeviceToken)
		r.Get("/app-version", versionHandler.Latest)
		r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"success":true,"message":"pong"}`))
		})

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthMiddleware(userService))

			r.Get("/profile", profileHandler.Get)
			r.Put("/profile", profileHandler.Update)
			r.Post("/profile/password", profileHandler.ChangePassword)

			r.Post("/partnerships/request", partnershipHandler.SendRequest)
			r.Post("/partnerships/accept", partnershipHandler.Accept)
			r.Post("/partnerships/reject", partnershipHandler.Reject)
			r.Get("/partnerships", partnershipHandler.Get)
			r.Get("/partnerships/search", partnershipHandler.Search)

			r.Get("/game/new", gameHandler.CurrentQuestion)
			r.Post("/game/answer", gameHandler.SubmitAnswer)
			r.Get("/game/stats", gameHandler.Stats)

			r.Post("/mood", moodHandler.Set)
			r.Get("/mood", moodHandler.Get)
			r.Get("/mood/recent", moodHandler.RecentCouple)

			r.Get("/bucket", bucketHandler.List)
			r.Post("/bucket", bucketHandler.Add)
			r.Patch("/bucket/{id}/toggle", bucketHandler.ToggleDone)
			r.Delete("/bucket/{id}", bucketHandler.Delete)

			r.Post("/missyou", missYouHandler.Send)
			r.Get("/missyou", missYouHandler.Total)

			r.Get("/drive", driveHandler.List)
			r.Post("/drive", driveHandler.Create)
			r.Get("/drive/changes", driveHandler.Changes)
			r.Post("/drive/upload", driveHandler.Upload)
			r.Get("/drive/{id}", driveHandler.Get)
			r.Delete("/drive/{id}", driveHandler.Delete)
			r.Post("/drive/{id}/reaction", driveHandler.AddReaction)
			r.Get("/drive/{id}/reactions", driveHandler.Reactions)
			r.Post("/drive/{id}/favorite", driveHandler.AddFavorite)
			r.Delete("/drive/{id}/favorite", driveHandler.RemoveFavorite)

			r.Post("/notify/{type}", notifyHandler.Send)
		})
	})

	// WebSocket route
	r.Get("/ws", wsHandler.HandleWebSocket)

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("host", cfg.Server.Host).
			Int("port", cfg.Server.Port).
			Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// setupLogger configures zerolog logger
func setupLogger(level string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

// corsMiddleware handles CORS
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
