package services

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/MarcusPreston/solvetrack/internal/models"
	"github.com/MarcusPreston/solvetrack/internal/problems"
	pkglogger "github.com/MarcusPreston/solvetrack/pkg/logger"
	"github.com/stretchr/testify/assert"
)

func newSubmissionService(
	attemptRepo *MockAttemptRepository,
	problemRepo *MockProblemRepository,
	resolver *MockValidatorResolver,
) *SubmissionService {
	logger := slog.Default()
	return NewSubmissionService(attemptRepo, problemRepo, resolver, time.Second, logger, pkglogger.NewAuditLogger(logger))
}

func echoInsert() func(ctx context.Context, attempt *models.Attempt) (*models.Attempt, error) {
	return func(ctx context.Context, attempt *models.Attempt) (*models.Attempt, error) {
		attempt.ID = "attempt-123"
		return attempt, nil
	}
}

func TestSubmit_Success_TrimsValue(t *testing.T) {
	var inserted *models.Attempt

	problemRepo := &MockProblemRepository{
		GetByProblemIDFunc: func(ctx context.Context, problemID int) (*models.Problem, error) {
			return NewTestProblem(42, "Test Problem"), nil
		},
	}
	attemptRepo := &MockAttemptRepository{
		InsertFunc: func(ctx context.Context, attempt *models.Attempt) (*models.Attempt, error) {
			attempt.ID = "attempt-123"
			inserted = attempt
			return attempt, nil
		},
	}
	resolver := &MockValidatorResolver{
		ValidatorFunc: func(problemID int) (problems.Validator, error) {
			return problems.ValidatorFunc(func(ctx context.Context, candidate string) (bool, error) {
				return candidate == "42", nil
			}), nil
		},
	}

	svc := newSubmissionService(attemptRepo, problemRepo, resolver)

	stored, err := svc.Submit(context.Background(), 42, "Alice", "  42  ")

	assert.NoError(t, err)
	assert.NotNil(t, stored)
	assert.Equal(t, "42", stored.AttemptValue)
	assert.True(t, stored.AttemptSuccessful)
	assert.Equal(t, 42, stored.ProblemID)
	assert.Equal(t, "Alice", stored.UserName)
	assert.False(t, stored.DateTime.IsZero())
	assert.NotNil(t, inserted)
}

func TestSubmit_IncorrectAnswerIsRecordedNotError(t *testing.T) {
	problemRepo := &MockProblemRepository{
		GetByProblemIDFunc: func(ctx context.Context, problemID int) (*models.Problem, error) {
			return NewTestProblem(42, "Test Problem"), nil
		},
	}
	attemptRepo := &MockAttemptRepository{InsertFunc: echoInsert()}
	resolver := &MockValidatorResolver{
		ValidatorFunc: func(problemID int) (problems.Validator, error) {
			return RejectingValidator(), nil
		},
	}

	svc := newSubmissionService(attemptRepo, problemRepo, resolver)

	stored, err := svc.Submit(context.Background(), 42, "Alice", "999")

	assert.NoError(t, err)
	assert.NotNil(t, stored)
	assert.False(t, stored.AttemptSuccessful)
	assert.Equal(t, "999", stored.AttemptValue)
}

func TestSubmit_ShortUserName_NoValidatorNoWrite(t *testing.T) {
	validatorInvoked := false
	catalogQueried := false

	problemRepo := &MockProblemRepository{
		GetByProblemIDFunc: func(ctx context.Context, problemID int) (*models.Problem, error) {
			catalogQueried = true
			return NewTestProblem(42, "Test Problem"), nil
		},
	}
	attemptRepo := &MockAttemptRepository{
		InsertFunc: func(ctx context.Context, attempt *models.Attempt) (*models.Attempt, error) {
			t.Fatal("attempt must not be written for invalid input")
			return nil, nil
		},
	}
	resolver := &MockValidatorResolver{
		ValidatorFunc: func(problemID int) (problems.Validator, error) {
			validatorInvoked = true
			return AcceptingValidator(), nil
		},
	}

	svc := newSubmissionService(attemptRepo, problemRepo, resolver)

	stored, err := svc.Submit(context.Background(), 42, "Al", "x")

	assert.Nil(t, stored)
	assert.ErrorIs(t, err, models.ErrBadRequest)
	assert.False(t, validatorInvoked)
	assert.False(t, catalogQueried, "input must be rejected before any database access")
}

func TestSubmit_BlankValueRejected(t *testing.T) {
	svc := newSubmissionService(&MockAttemptRepository{}, &MockProblemRepository{}, &MockValidatorResolver{})

	stored, err := svc.Submit(context.Background(), 42, "Alice", "   ")

	assert.Nil(t, stored)
	assert.ErrorIs(t, err, models.ErrBadRequest)
}

func TestSubmit_NonPositiveProblemIDRejected(t *testing.T) {
	svc := newSubmissionService(&MockAttemptRepository{}, &MockProblemRepository{}, &MockValidatorResolver{})

	for _, problemID := range []int{0, -1} {
		stored, err := svc.Submit(context.Background(), problemID, "Alice", "42")
		assert.Nil(t, stored)
		assert.ErrorIs(t, err, models.ErrBadRequest)
	}
}

func TestSubmit_UnknownProblem_NoWrite(t *testing.T) {
	validatorInvoked := false

	problemRepo := &MockProblemRepository{
		GetByProblemIDFunc: func(ctx context.Context, problemID int) (*models.Problem, error) {
			return nil, models.ErrNotFound
		},
	}
	attemptRepo := &MockAttemptRepository{
		InsertFunc: func(ctx context.Context, attempt *models.Attempt) (*models.Attempt, error) {
			t.Fatal("attempt must not be written for unknown problem")
			return nil, nil
		},
	}
	resolver := &MockValidatorResolver{
		ValidatorFunc: func(problemID int) (problems.Validator, error) {
			validatorInvoked = true
			return AcceptingValidator(), nil
		},
	}

	svc := newSubmissionService(attemptRepo, problemRepo, resolver)

	stored, err := svc.Submit(context.Background(), 42, "Alice", "42")

	assert.Nil(t, stored)
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.False(t, validatorInvoked, "validator must never run against a nonexistent problem")
}

func TestSubmit_ValidatorError_NoWrite(t *testing.T) {
	problemRepo := &MockProblemRepository{
		GetByProblemIDFunc: func(ctx context.Context, problemID int) (*models.Problem, error) {
			return NewTestProblem(42, "Test Problem"), nil
		},
	}
	attemptRepo := &MockAttemptRepository{
		InsertFunc: func(ctx context.Context, attempt *models.Attempt) (*models.Attempt, error) {
			t.Fatal("attempt must not be written when validation cannot complete")
			return nil, nil
		},
	}
	resolver := &MockValidatorResolver{
		ValidatorFunc: func(problemID int) (problems.Validator, error) {
			return problems.ValidatorFunc(func(ctx context.Context, candidate string) (bool, error) {
				return false, errors.New("checker exploded")
			}), nil
		},
	}

	svc := newSubmissionService(attemptRepo, problemRepo, resolver)

	stored, err := svc.Submit(context.Background(), 42, "Alice", "42")

	assert.Nil(t, stored)
	assert.ErrorIs(t, err, models.ErrValidator)
}

func TestSubmit_ValidatorTimeout_NoWrite(t *testing.T) {
	problemRepo := &MockProblemRepository{
		GetByProblemIDFunc: func(ctx context.Context, problemID int) (*models.Problem, error) {
			return NewTestProblem(42, "Test Problem"), nil
		},
	}
	attemptRepo := &MockAttemptRepository{
		InsertFunc: func(ctx context.Context, attempt *models.Attempt) (*models.Attempt, error) {
			t.Fatal("attempt must not be written when validation times out")
			return nil, nil
		},
	}
	resolver := &MockValidatorResolver{
		ValidatorFunc: func(problemID int) (problems.Validator, error) {
			return problems.ValidatorFunc(func(ctx context.Context, candidate string) (bool, error) {
				<-ctx.Done()
				return false, ctx.Err()
			}), nil
		},
	}

	logger := slog.Default()
	svc := NewSubmissionService(attemptRepo, problemRepo, resolver, 20*time.Millisecond, logger, pkglogger.NewAuditLogger(logger))

	stored, err := svc.Submit(context.Background(), 42, "Alice", "42")

	assert.Nil(t, stored)
	assert.ErrorIs(t, err, models.ErrValidator)
}

func TestSubmit_MissingValidatorIsValidatorError(t *testing.T) {
	problemRepo := &MockProblemRepository{
		GetByProblemIDFunc: func(ctx context.Context, problemID int) (*models.Problem, error) {
			return NewTestProblem(42, "Test Problem"), nil
		},
	}

	svc := newSubmissionService(&MockAttemptRepository{}, problemRepo, &MockValidatorResolver{})

	stored, err := svc.Submit(context.Background(), 42, "Alice", "42")

	assert.Nil(t, stored)
	assert.ErrorIs(t, err, models.ErrValidator)
}

func TestSubmit_StoreFailure_Surfaced(t *testing.T) {
	problemRepo := &MockProblemRepository{
		GetByProblemIDFunc: func(ctx context.Context, problemID int) (*models.Problem, error) {
			return NewTestProblem(42, "Test Problem"), nil
		},
	}
	attemptRepo := &MockAttemptRepository{
		InsertFunc: func(ctx context.Context, attempt *models.Attempt) (*models.Attempt, error) {
			return nil, errors.New("connection reset")
		},
	}
	resolver := &MockValidatorResolver{
		ValidatorFunc: func(problemID int) (problems.Validator, error) {
			return AcceptingValidator(), nil
		},
	}

	svc := newSubmissionService(attemptRepo, problemRepo, resolver)

	stored, err := svc.Submit(context.Background(), 42, "Alice", "42")

	assert.Nil(t, stored)
	assert.ErrorIs(t, err, models.ErrInternalServer)
}

func TestSubmit_RepeatSubmissionsProduceDistinctAttempts(t *testing.T) {
	insertCount := 0

	problemRepo := &MockProblemRepository{
		GetByProblemIDFunc: func(ctx context.Context, problemID int) (*models.Problem, error) {
			return NewTestProblem(42, "Test Problem"), nil
		},
	}
	attemptRepo := &MockAttemptRepository{
		InsertFunc: func(ctx context.Context, attempt *models.Attempt) (*models.Attempt, error) {
			insertCount++
			attempt.ID = "attempt-" + string(rune('0'+insertCount))
			return attempt, nil
		},
	}
	resolver := &MockValidatorResolver{
		ValidatorFunc: func(problemID int) (problems.Validator, error) {
			return AcceptingValidator(), nil
		},
	}

	svc := newSubmissionService(attemptRepo, problemRepo, resolver)

	first, err := svc.Submit(context.Background(), 42, "Alice", "42")
	assert.NoError(t, err)
	second, err := svc.Submit(context.Background(), 42, "Alice", "42")
	assert.NoError(t, err)

	// No dedup of repeat correct answers: each submit is its own attempt
	assert.Equal(t, 2, insertCount)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestSubmit_TimestampCapturedBeforeValidation(t *testing.T) {
	var validationStarted time.Time

	problemRepo := &MockProblemRepository{
		GetByProblemIDFunc: func(ctx context.Context, problemID int) (*models.Problem, error) {
			return NewTestProblem(42, "Test Problem"), nil
		},
	}
	attemptRepo := &MockAttemptRepository{InsertFunc: echoInsert()}
	resolver := &MockValidatorResolver{
		ValidatorFunc: func(problemID int) (problems.Validator, error) {
			return problems.ValidatorFunc(func(ctx context.Context, candidate string) (bool, error) {
				validationStarted = time.Now()
				time.Sleep(30 * time.Millisecond)
				return true, nil
			}), nil
		},
	}

	svc := newSubmissionService(attemptRepo, problemRepo, resolver)

	stored, err := svc.Submit(context.Background(), 42, "Alice", "42")

	assert.NoError(t, err)
	// Validator latency is not attributed to the attempt time
	assert.False(t, stored.DateTime.After(validationStarted))
}
