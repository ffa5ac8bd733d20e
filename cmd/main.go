package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dosada05/tournament-progression/config"
	"github.com/Dosada05/tournament-progression/db"
	"github.com/Dosada05/tournament-progression/handlers"
	"github.com/Dosada05/tournament-progression/realtime"
	"github.com/Dosada05/tournament-progression/repositories"
	"github.com/Dosada05/tournament-progression/repositories/memstore"
	api "github.com/Dosada05/tournament-progression/routes"
	"github.com/Dosada05/tournament-progression/services"
	"github.com/Dosada05/tournament-progression/storage"
	"github.com/Dosada05/tournament-progression/telemetry"
	"github.com/go-chi/chi/v5"
	"github.com/go-co-op/gocron/v2"
)

const serviceName = "tournament-progression"

//go:generate swag init -g cmd/main.go -d .. -o ../docs

// @title Tournament Progression API
// @version 1.0
// @description Schedules, match results, scoring ledger and competitor progression.
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	level, _ := cfg.SlogLevel()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort), slog.String("storage", cfg.StorageDriver))

	ctx := context.Background()

	shutdownTracing, err := telemetry.Setup(ctx, serviceName, cfg.OTelEndpoint)
	if err != nil {
		logger.Error("failed to set up tracing", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			logger.Error("failed to flush traces", slog.Any("error", err))
		}
	}()

	var store repositories.Store
	switch cfg.StorageDriver {
	case config.StoragePostgres:
		dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second, logger)
		if err != nil {
			logger.Error("failed to connect to database", slog.Any("error", err))
			os.Exit(1)
		}
		defer closeDB(dbConn, logger)
		logger.Info("database connection established")

		if err := db.Migrate(ctx, dbConn); err != nil {
			logger.Error("failed to migrate database", slog.Any("error", err))
			os.Exit(1)
		}
		store = repositories.NewPostgresStore(dbConn, logger)
	default:
		logger.Warn("using in-memory storage, data is lost on restart")
		store = memstore.New()
	}

	var uploader storage.FileUploader
	r2 := storage.R2Config{
		AccountID:       cfg.R2AccountID,
		AccessKeyID:     cfg.R2AccessKeyID,
		SecretAccessKey: cfg.R2SecretAccessKey,
		BucketName:      cfg.R2BucketName,
		PublicBaseURL:   cfg.R2PublicBaseURL,
	}
	if cfg.R2Configured() {
		uploader, err = storage.NewR2Uploader(ctx, r2, logger)
		if err != nil {
			logger.Error("failed to initialize R2 uploader", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("R2 snapshot storage initialized", slog.String("bucket", cfg.R2BucketName))
	} else {
		uploader = storage.NewMemoryUploader(cfg.R2PublicBaseURL, logger)
		logger.Info("R2 not configured, keeping snapshots in memory")
	}

	hub := realtime.NewHub(logger)
	go hub.Run()
	logger.Info("WebSocket hub started")

	competitionService := services.NewCompetitionService(store, logger)
	scheduleService := services.NewScheduleService(store, hub, logger)
	matchService := services.NewMatchService(store, hub, logger)
	scoringService := services.NewScoringService(store, hub, logger)
	progressionService := services.NewProgressionService(store, logger)
	snapshotService := services.NewSnapshotService(store, uploader, logger)
	logger.Info("services initialized")

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		logger.Error("failed to create scheduler", slog.Any("error", err))
		os.Exit(1)
	}
	if cfg.SnapshotInterval > 0 {
		if _, err := snapshotService.Schedule(scheduler, cfg.SnapshotInterval); err != nil {
			logger.Error("failed to schedule standings snapshots", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("standings snapshot job scheduled", slog.Duration("interval", cfg.SnapshotInterval))
	}
	scheduler.Start()
	defer func() {
		if err := scheduler.Shutdown(); err != nil {
			logger.Error("failed to stop scheduler", slog.Any("error", err))
		}
	}()

	router := chi.NewRouter()
	api.SetupRoutes(router, api.Handlers{
		Competitions: handlers.NewCompetitionHandler(competitionService, scheduleService, matchService),
		Matches:      handlers.NewMatchHandler(matchService, scoringService, logger),
		Progression:  handlers.NewProgressionHandler(progressionService),
		WebSocket:    handlers.NewWebSocketHandler(hub, competitionService, cfg.CORSAllowedOrigins, logger),
	}, api.Options{
		JWTSecret:      cfg.JWTSecretKey,
		AllowedOrigins: cfg.CORSAllowedOrigins,
		RequestTimeout: cfg.RequestTimeout,
	})
	logger.Info("routes configured")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			return
		}
		logger.Info("server stopped gracefully")
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			return
		}
		logger.Info("server shutdown complete")
	}
	logger.Info("application exited")
}

func closeDB(conn *sql.DB, logger *slog.Logger) {
	if err := conn.Close(); err != nil {
		logger.Error("failed to close database connection", slog.Any("error", err))
		return
	}
	logger.Info("database connection closed")
}
