package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/MarcusPreston/solvetrack/internal/models"
	pkghttp "github.com/MarcusPreston/solvetrack/pkg/http"
	"github.com/go-chi/chi/v5"
)

// ProblemService defines the interface for problem catalog business logic
type ProblemService interface {
	GetProblem(ctx context.Context, problemID int) (*models.Problem, error)
	ListProblems(ctx context.Context) ([]*models.Problem, error)
}

// ProblemHandler handles problem catalog HTTP requests
type ProblemHandler struct {
	service ProblemService
}

// NewProblemHandler creates a new ProblemHandler
func NewProblemHandler(service ProblemService) *ProblemHandler {
	return &ProblemHandler{
		service: service,
	}
}

// ProblemResponse represents a catalog problem in the HTTP response
type ProblemResponse struct {
	ProblemID   int    `json:"problemId"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	License     string `json:"license"`
}

// ListProblemsResponse represents the full catalog
type ListProblemsResponse struct {
	Problems []*ProblemResponse `json:"problems"`
	Total    int                `json:"total"`
}

// problemModelToResponse converts a problem model to a response DTO
func problemModelToResponse(problem *models.Problem) *ProblemResponse {
	return &ProblemResponse{
		ProblemID:   problem.ProblemID,
		Title:       problem.Title,
		Description: problem.Description,
		URL:         problem.URL,
		License:     problem.License,
	}
}

// parseProblemID parses the {id} URL parameter as a positive integer
func parseProblemID(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "id")
	problemID, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.New("problem ID must be an integer")
	}
	if problemID <= 0 {
		return 0, errors.New("problem ID must be a positive integer")
	}
	return problemID, nil
}

// GetProblem retrieves a problem's catalog metadata
//
// @Summary Get problem by ID
// @Param id path int true "Problem ID"
// @Produce json
// @Success 200 {object} ProblemResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/problems/{id} [get]
func (h *ProblemHandler) GetProblem(w http.ResponseWriter, r *http.Request) {
	problemID, err := parseProblemID(r)
	if err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	problem, err := h.service.GetProblem(r.Context(), problemID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			pkghttp.WriteNotFound(w, "Problem not found")
			return
		}
		pkghttp.WriteInternalError(w, "Internal server error")
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, problemModelToResponse(problem))
}

// ListProblems retrieves the full problem catalog
//
// @Summary List problems
// @Produce json
// @Success 200 {object} ListProblemsResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/problems [get]
func (h *ProblemHandler) ListProblems(w http.ResponseWriter, r *http.Request) {
	problems, err := h.service.ListProblems(r.Context())
	if err != nil {
		pkghttp.WriteInternalError(w, "Internal server error")
		return
	}

	response := &ListProblemsResponse{
		Problems: make([]*ProblemResponse, len(problems)),
		Total:    len(problems),
	}

	for i, problem := range problems {
		response.Problems[i] = problemModelToResponse(problem)
	}

	pkghttp.WriteJSON(w, http.StatusOK, response)
}
