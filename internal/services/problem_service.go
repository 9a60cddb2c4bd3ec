package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/MarcusPreston/solvetrack/internal/models"
)

// ProblemRepository defines the interface for problem catalog data access
type ProblemRepository interface {
	GetByProblemID(ctx context.Context, problemID int) (*models.Problem, error)
	List(ctx context.Context) ([]*models.Problem, error)
	Upsert(ctx context.Context, problem *models.Problem) (*models.Problem, error)
}

// ProblemService handles problem catalog business logic
type ProblemService struct {
	repo   ProblemRepository
	logger *slog.Logger
}

// NewProblemService creates a new ProblemService
func NewProblemService(repo ProblemRepository, logger *slog.Logger) *ProblemService {
	return &ProblemService{
		repo:   repo,
		logger: logger,
	}
}

// GetProblem retrieves a problem's catalog metadata by its problem ID
func (s *ProblemService) GetProblem(ctx context.Context, problemID int) (*models.Problem, error) {
	if problemID <= 0 {
		return nil, models.ErrBadRequest
	}

	problem, err := s.repo.GetByProblemID(ctx, problemID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			s.logger.Info("problem not found", slog.Int("problem_id", problemID))
			return nil, models.ErrNotFound
		}
		s.logger.Error("failed to get problem", slog.Int("problem_id", problemID), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	return problem, nil
}

// ListProblems retrieves the full problem catalog
func (s *ProblemService) ListProblems(ctx context.Context) ([]*models.Problem, error) {
	problems, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("failed to list problems", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	return problems, nil
}

// SeedProblems reconciles the stored catalog with the registered problem
// definitions. It runs at startup; failing to index at least one problem is
// an error since the service is useless without a catalog.
func (s *ProblemService) SeedProblems(ctx context.Context, problems []models.Problem) error {
	if len(problems) == 0 {
		return fmt.Errorf("no problems registered to seed")
	}

	for i := range problems {
		stored, err := s.repo.Upsert(ctx, &problems[i])
		if err != nil {
			s.logger.Error("failed to seed problem",
				slog.Int("problem_id", problems[i].ProblemID),
				slog.Any("error", err),
			)
			return fmt.Errorf("failed to seed problem %d: %w", problems[i].ProblemID, err)
		}
		s.logger.Info("problem seeded",
			slog.Int("problem_id", stored.ProblemID),
			slog.String("title", stored.Title),
		)
	}

	return nil
}
