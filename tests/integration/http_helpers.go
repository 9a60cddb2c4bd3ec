package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/MarcusPreston/solvetrack/internal/config"
	"github.com/MarcusPreston/solvetrack/internal/database"
	"github.com/MarcusPreston/solvetrack/internal/handlers"
	middlewareCustom "github.com/MarcusPreston/solvetrack/internal/middleware"
	"github.com/MarcusPreston/solvetrack/internal/problems"
	"github.com/MarcusPreston/solvetrack/internal/routes"
	"github.com/MarcusPreston/solvetrack/internal/services"
	pkglogger "github.com/MarcusPreston/solvetrack/pkg/logger"
)

// TestServer wraps httptest.Server with database and all dependencies
type TestServer struct {
	Server   *httptest.Server
	DB       *database.DB
	Registry *problems.Registry
	Config   *config.Config

	Problems     *services.ProblemService
	Submissions  *services.SubmissionService
	Leaderboards *services.LeaderboardService

	logger *slog.Logger
}

// NewTestServer initializes a complete HTTP server against a real database
func NewTestServer(db *database.DB) *TestServer {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelWarn}))

	cfg := &config.Config{
		Server: config.ServerConfig{
			Port:           "0",
			Env:            "test",
			AllowedOrigins: []string{},
		},
		Submit: config.SubmitConfig{
			ValidatorTimeout:        2 * time.Second,
			LeaderboardWarmInterval: 0,
		},
	}

	problemRepo, attemptRepo := InitializeRepositories(db)

	registry := problems.DefaultRegistry()
	auditLogger := pkglogger.NewAuditLogger(logger)

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

	problemHandler := handlers.NewProblemHandler(problemService)
	submissionHandler := handlers.NewSubmissionHandler(submissionService)
	leaderboardHandler := handlers.NewLeaderboardHandler(leaderboardService)

	corsConfig := middlewareCustom.DefaultCORSConfig(cfg.Server.Env)

	router := chi.NewRouter()
	router.Use(chiMiddleware.RequestID)
	router.Use(middlewareCustom.SecurityHeaders(middlewareCustom.SecurityHeadersConfig{Env: cfg.Server.Env}))
	router.Use(middlewareCustom.CORS(corsConfig))
	router.Use(chiMiddleware.Recoverer)

	routes.RegisterRoutes(router, problemHandler, submissionHandler, leaderboardHandler)

	return &TestServer{
		Server:       httptest.NewServer(router),
		DB:           db,
		Registry:     registry,
		Config:       cfg,
		Problems:     problemService,
		Submissions:  submissionService,
		Leaderboards: leaderboardService,
		logger:       logger,
	}
}

// Close shuts down the test server
func (ts *TestServer) Close() {
	ts.Server.Close()
}

// PostJSON sends a POST request with a JSON body and returns the response
func (ts *TestServer) PostJSON(path string, body interface{}) (*http.Response, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	return http.Post(ts.Server.URL+path, "application/json", bytes.NewReader(payload))
}

// Get sends a GET request and returns the response
func (ts *TestServer) Get(path string) (*http.Response, error) {
	return http.Get(ts.Server.URL + path)
}

// DecodeJSON reads a response body into target and closes it
func DecodeJSON(resp *http.Response, target interface{}) error {
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("failed to decode response %q: %w", string(data), err)
	}

	return nil
}
