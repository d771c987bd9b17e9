package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/spikeline/tournament-system/brackets"
	"github.com/spikeline/tournament-system/config"
	"github.com/spikeline/tournament-system/db"
	"github.com/spikeline/tournament-system/handlers"
	"github.com/spikeline/tournament-system/repositories"
	api "github.com/spikeline/tournament-system/routes"
	"github.com/spikeline/tournament-system/services"
	"github.com/spikeline/tournament-system/storage"
)

const schedulerInterval = 60 * time.Second

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		}
	}()
	logger.Info("database connection established")

	var uploader storage.FileUploader
	if cfg.R2Configured() {
		uploader, err = storage.NewCloudflareR2Uploader(storage.CloudflareR2UploaderConfig{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			PublicBaseURL:   cfg.R2PublicBaseURL,
		})
		if err != nil {
			logger.Error("failed to initialize Cloudflare R2 uploader", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("Cloudflare R2 uploader initialized")
	} else {
		logger.Warn("R2 storage not configured, team photo uploads disabled")
	}

	wsHub := brackets.NewHub(logger)
	go wsHub.Run()
	logger.Info("websocket hub started")

	userRepo := repositories.NewPostgresUserRepository(dbConn)
	tournamentRepo := repositories.NewPostgresTournamentRepository(dbConn)
	registrationRepo := repositories.NewPostgresRegistrationRepository(dbConn)
	poolMatchRepo := repositories.NewPostgresPoolMatchRepository(dbConn)
	bracketMatchRepo := repositories.NewPostgresBracketMatchRepository(dbConn)

	authService := services.NewAuthService(userRepo)
	tournamentService := services.NewTournamentService(tournamentRepo)
	registrationService := services.NewRegistrationService(registrationRepo, tournamentRepo, uploader)
	standingsService := services.NewStandingsService(registrationRepo, poolMatchRepo)
	matchService := services.NewMatchService(poolMatchRepo, registrationRepo, tournamentRepo, wsHub)
	bracketService := services.NewBracketService(dbConn, bracketMatchRepo, registrationRepo, poolMatchRepo, tournamentRepo, wsHub, logger)
	logger.Info("services initialized")

	go func() {
		ticker := time.NewTicker(schedulerInterval)
		defer ticker.Stop()

		if err := tournamentService.AutoUpdateStatuses(context.Background(), time.Now()); err != nil {
			logger.Error("tournament status scheduler: initial run failed", slog.Any("error", err))
		}
		for range ticker.C {
			if err := tournamentService.AutoUpdateStatuses(context.Background(), time.Now()); err != nil {
				logger.Error("tournament status scheduler: run failed", slog.Any("error", err))
			}
		}
	}()

	authHandler := handlers.NewAuthHandler(authService, cfg.JWTSecretKey)
	tournamentHandler := handlers.NewTournamentHandler(tournamentService)
	registrationHandler := handlers.NewRegistrationHandler(registrationService)
	matchHandler := handlers.NewMatchHandler(matchService, standingsService)
	bracketHandler := handlers.NewBracketHandler(bracketService)
	webSocketHandler := handlers.NewWebSocketHandler(wsHub, logger)

	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		[]byte(cfg.JWTSecretKey),
		authHandler,
		tournamentHandler,
		registrationHandler,
		matchHandler,
		bracketHandler,
		webSocketHandler,
	)
	logger.Info("routes configured")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
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
			os.Exit(1)
		}
		logger.Info("server stopped gracefully")
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		}
		logger.Info("server shutdown complete")
	}
}
