package routes

import (
	"github.com/MarcusPreston/solvetrack/internal/handlers"
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all application routes
func RegisterRoutes(
	router chi.Router,
	problemHandler *handlers.ProblemHandler,
	submissionHandler *handlers.SubmissionHandler,
	leaderboardHandler *handlers.LeaderboardHandler,
) {
	router.Route("/api/problems", func(r chi.Router) {
		r.Get("/", problemHandler.ListProblems)
		r.Get("/{id}", problemHandler.GetProblem)
		r.Post("/{id}/solution", submissionHandler.SubmitSolution)
		r.Get("/{id}/leaderboard", leaderboardHandler.GetLeaderboard)
	})
}
