package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MarcusPreston/solvetrack/internal/background"
	"github.com/MarcusPreston/solvetrack/internal/config"
	"github.com/MarcusPreston/solvetrack/internal/database"
	"github.com/MarcusPreston/solvetrack/internal/handlers"
	middlewareCustom "github.com/MarcusPreston/solvetrack/internal/middleware"
	"github.com/MarcusPreston/solvetrack/internal/problems"
	"github.com/MarcusPreston/solvetrack/internal/repositories"
	"github.com/MarcusPreston/solvetrack/internal/routes"
	"github.com/MarcusPreston/solvetrack/internal/services"
	pkglogger "github.com/MarcusPreston/solvetrack/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("configuration loaded", slog.String("env", cfg.Server.Env))

	// Initialize database
	db, err := database.NewConnection(&cfg.Database, logger)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer db.Close()

	// Initialize repositories
	problemRepo := repositories.NewProblemRepository(db)
	attemptRepo := repositories.NewAttemptRepository(db)

	// Built-in problem catalog with validators
	registry := problems.DefaultRegistry()

	auditLogger := pkglogger.NewAuditLogger(logger)

	// Initialize services
	problemService := services.NewProblemService(problemRepo, logger)
	submissionService := services.NewSubmissionService(
		attemptRepo,
		problemRepo,
		registry,
		cfg.Submit.ValidatorTimeout,
		logger,
		auditLogger,
	)
	leaderboardService := services.NewLeaderboardService(problemRepo, attemptRepo, logger)

	// Initialize handlers
	problemHandler := handlers.NewProblemHandler(problemService)
	submissionHandler := handlers.NewSubmissionHandler(submissionService)
	leaderboardHandler := handlers.NewLeaderboardHandler(leaderboardService)

	// Seed the catalog so every registered problem is queryable
	seedCtx, seedCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := problemService.SeedProblems(seedCtx, registry.Problems()); err != nil {
		seedCancel()
		logger.Error("failed to seed problem catalog", slog.Any("error", err))
		os.Exit(1)
	}
	seedCancel()

	// Initialize leaderboard warmer
	warmupManager := background.NewWarmupManager(leaderboardService, problemRepo, logger, cfg.Submit.LeaderboardWarmInterval)

	// Setup CORS middleware
	corsConfig := middlewareCustom.DefaultCORSConfig(cfg.Server.Env)
	corsConfig.AllowedOrigins = cfg.Server.AllowedOrigins

	// Setup router
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middlewareCustom.SecurityHeaders(middlewareCustom.SecurityHeadersConfig{Env: cfg.Server.Env}))
	router.Use(middlewareCustom.CORS(corsConfig))
	router.Use(middlewareCustom.RequestLogger(logger))
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(60 * time.Second))

	// Register routes
	routes.RegisterRoutes(router, problemHandler, submissionHandler, leaderboardHandler)

	// Health check with database
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.HealthCheck(ctx); err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status":"unhealthy","database":"down"}`))
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy","database":"up"}`))
	})

	// Create server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start leaderboard warmup task
	warmupCtx, warmupCancel := context.WithCancel(context.Background())
	defer warmupCancel()

	go warmupManager.Start(warmupCtx)

	// Start server
	go func() {
		logger.Info("starting server", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("shutdown signal received")

	warmupCancel()
	warmupManager.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("server stopped gracefully")
}
