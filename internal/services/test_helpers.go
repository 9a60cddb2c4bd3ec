package services

import (
	"context"
	"time"

	"github.com/MarcusPreston/solvetrack/internal/models"
	"github.com/MarcusPreston/solvetrack/internal/problems"
)

// MockProblemRepository implements ProblemRepository for testing
type MockProblemRepository struct {
	GetByProblemIDFunc func(ctx context.Context, problemID int) (*models.Problem, error)
	ListFunc           func(ctx context.Context) ([]*models.Problem, error)
	UpsertFunc         func(ctx context.Context, problem *models.Problem) (*models.Problem, error)
}

func (m *MockProblemRepository) GetByProblemID(ctx context.Context, problemID int) (*models.Problem, error) {
	if m.GetByProblemIDFunc != nil {
		return m.GetByProblemIDFunc(ctx, problemID)
	}
	return nil, models.ErrNotFound
}

func (m *MockProblemRepository) List(ctx context.Context) ([]*models.Problem, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return []*models.Problem{}, nil
}

func (m *MockProblemRepository) Upsert(ctx context.Context, problem *models.Problem) (*models.Problem, error) {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, problem)
	}
	return problem, nil
}

// MockAttemptRepository implements AttemptRepository for testing
type MockAttemptRepository struct {
	InsertFunc          func(ctx context.Context, attempt *models.Attempt) (*models.Attempt, error)
	ListByProblemIDFunc func(ctx context.Context, problemID int) ([]*models.Attempt, error)
	CountByProblemIDFunc func(ctx context.Context, problemID int) (int64, error)
}

func (m *MockAttemptRepository) Insert(ctx context.Context, attempt *models.Attempt) (*models.Attempt, error) {
	if m.InsertFunc != nil {
		return m.InsertFunc(ctx, attempt)
	}
	return nil, models.ErrInternalServer
}

func (m *MockAttemptRepository) ListByProblemID(ctx context.Context, problemID int) ([]*models.Attempt, error) {
	if m.ListByProblemIDFunc != nil {
		return m.ListByProblemIDFunc(ctx, problemID)
	}
	return []*models.Attempt{}, nil
}

func (m *MockAttemptRepository) CountByProblemID(ctx context.Context, problemID int) (int64, error) {
	if m.CountByProblemIDFunc != nil {
		return m.CountByProblemIDFunc(ctx, problemID)
	}
	return 0, nil
}

// MockValidatorResolver implements ValidatorResolver for testing
type MockValidatorResolver struct {
	ValidatorFunc func(problemID int) (problems.Validator, error)
}

func (m *MockValidatorResolver) Validator(problemID int) (problems.Validator, error) {
	if m.ValidatorFunc != nil {
		return m.ValidatorFunc(problemID)
	}
	return nil, models.ErrNotFound
}

// NewTestProblem builds a catalog problem for tests
func NewTestProblem(problemID int, title string) *models.Problem {
	now := time.Now()
	return &models.Problem{
		ProblemID:   problemID,
		Title:       title,
		Description: "<p>Description for " + title + "</p>",
		URL:         "https://example.com/problems/" + title,
		License:     "Test license",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// NewTestAttempt builds a ledger attempt for tests
func NewTestAttempt(problemID int, userName string, dateTime time.Time, value string, successful bool) *models.Attempt {
	return &models.Attempt{
		ID:                "attempt-" + userName + "-" + dateTime.Format("150405.000"),
		ProblemID:         problemID,
		UserName:          userName,
		DateTime:          dateTime,
		AttemptValue:      value,
		AttemptSuccessful: successful,
	}
}

// AcceptingValidator reports every candidate as correct
func AcceptingValidator() problems.Validator {
	return problems.ValidatorFunc(func(ctx context.Context, candidate string) (bool, error) {
		return true, nil
	})
}

// RejectingValidator reports every candidate as incorrect
func RejectingValidator() problems.Validator {
	return problems.ValidatorFunc(func(ctx context.Context, candidate string) (bool, error) {
		return false, nil
	})
}
