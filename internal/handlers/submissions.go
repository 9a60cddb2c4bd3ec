package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/MarcusPreston/solvetrack/internal/models"
	pkghttp "github.com/MarcusPreston/solvetrack/pkg/http"
)

// SubmissionService defines the interface for the submission pipeline
type SubmissionService interface {
	Submit(ctx context.Context, problemID int, userName, rawValue string) (*models.Attempt, error)
}

// SubmissionHandler handles solution submission HTTP requests
type SubmissionHandler struct {
	service SubmissionService
}

// NewSubmissionHandler creates a new SubmissionHandler
func NewSubmissionHandler(service SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{
		service: service,
	}
}

// SubmitSolutionRequest represents the request body for submitting a solution
type SubmitSolutionRequest struct {
	UserName      string `json:"userName" validate:"required,min=3"`
	SolutionValue string `json:"solutionValue" validate:"required,min=1"`
}

// AttemptResponse represents a recorded attempt in the HTTP response
type AttemptResponse struct {
	ProblemID         int    `json:"problemId"`
	UserName          string `json:"userName"`
	DateTime          string `json:"dateTime"`
	AttemptValue      string `json:"attemptValue"`
	AttemptSuccessful bool   `json:"attemptSuccessful"`
}

// attemptModelToResponse converts an attempt model to a response DTO
func attemptModelToResponse(attempt *models.Attempt) *AttemptResponse {
	return &AttemptResponse{
		ProblemID:         attempt.ProblemID,
		UserName:          attempt.UserName,
		DateTime:          attempt.DateTime.Format(time.RFC3339),
		AttemptValue:      attempt.AttemptValue,
		AttemptSuccessful: attempt.AttemptSuccessful,
	}
}

// SubmitSolution records one attempt against a problem
//
// @Summary Submit a candidate solution
// @Param id path int true "Problem ID"
// @Accept json
// @Param request body SubmitSolutionRequest true "Submission"
// @Produce json
// @Success 201 {object} AttemptResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/problems/{id}/solution [post]
func (h *SubmissionHandler) SubmitSolution(w http.ResponseWriter, r *http.Request) {
	problemID, err := parseProblemID(r)
	if err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	var req SubmitSolutionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	// Validate request
	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	attempt, err := h.service.Submit(r.Context(), problemID, req.UserName, req.SolutionValue)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrBadRequest):
			pkghttp.WriteBadRequest(w, "Invalid submission")
		case errors.Is(err, models.ErrNotFound):
			pkghttp.WriteNotFound(w, "Problem not found")
		default:
			// Validator and store failures both surface as a generic
			// submission error, distinct from an incorrect answer.
			pkghttp.WriteSubmissionError(w, "Submission could not be processed")
		}
		return
	}

	pkghttp.WriteJSON(w, http.StatusCreated, attemptModelToResponse(attempt))
}
