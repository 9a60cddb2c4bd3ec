package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/MarcusPreston/solvetrack/internal/models"
	pkghttp "github.com/MarcusPreston/solvetrack/pkg/http"
)

// LeaderboardService defines the interface for leaderboard aggregation
type LeaderboardService interface {
	Leaderboard(ctx context.Context, problemID int) ([]*models.LeaderboardEntry, error)
}

// LeaderboardHandler handles leaderboard HTTP requests
type LeaderboardHandler struct {
	service LeaderboardService
}

// NewLeaderboardHandler creates a new LeaderboardHandler
func NewLeaderboardHandler(service LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{
		service: service,
	}
}

// LeaderboardEntryResponse represents one leaderboard row in the HTTP response
type LeaderboardEntryResponse struct {
	UserName                  string `json:"userName"`
	EarliestSuccessfulAttempt string `json:"earliestSuccessfulAttempt"`
	NumberOfAttempts          int    `json:"numberOfAttempts"`
}

// GetLeaderboard returns a problem's ranking of users with at least one
// successful attempt. An empty array means the problem exists but has no
// solvers yet.
//
// @Summary Get problem leaderboard
// @Param id path int true "Problem ID"
// @Produce json
// @Success 200 {array} LeaderboardEntryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/problems/{id}/leaderboard [get]
func (h *LeaderboardHandler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	problemID, err := parseProblemID(r)
	if err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	entries, err := h.service.Leaderboard(r.Context(), problemID)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrNotFound):
			pkghttp.WriteNotFound(w, "Problem not found")
		case errors.Is(err, models.ErrBadRequest):
			pkghttp.WriteBadRequest(w, "Invalid problem ID")
		default:
			pkghttp.WriteInternalError(w, "Internal server error")
		}
		return
	}

	response := make([]*LeaderboardEntryResponse, len(entries))
	for i, entry := range entries {
		response[i] = &LeaderboardEntryResponse{
			UserName:                  entry.UserName,
			EarliestSuccessfulAttempt: entry.EarliestSuccessfulAttempt.Format(time.RFC3339),
			NumberOfAttempts:          entry.NumberOfAttempts,
		}
	}

	pkghttp.WriteJSON(w, http.StatusOK, response)
}
