package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/MarcusPreston/solvetrack/internal/models"
	"github.com/MarcusPreston/solvetrack/internal/problems"
	pkglogger "github.com/MarcusPreston/solvetrack/pkg/logger"
)

// MinUserNameLength is the shortest user name accepted on a submission.
const MinUserNameLength = 3

// AttemptRepository defines the interface for attempt ledger data access
type AttemptRepository interface {
	Insert(ctx context.Context, attempt *models.Attempt) (*models.Attempt, error)
	ListByProblemID(ctx context.Context, problemID int) ([]*models.Attempt, error)
	CountByProblemID(ctx context.Context, problemID int) (int64, error)
}

// ValidatorResolver resolves the checking capability for a problem ID
type ValidatorResolver interface {
	Validator(problemID int) (problems.Validator, error)
}

// SubmissionService runs the submission pipeline: resolve the problem, run
// its validator, append the attempt, return the stored record.
type SubmissionService struct {
	attemptRepo      AttemptRepository
	problemRepo      ProblemRepository
	validators       ValidatorResolver
	validatorTimeout time.Duration
	logger           *slog.Logger
	auditLogger      *pkglogger.AuditLogger
}

// NewSubmissionService creates a new SubmissionService
func NewSubmissionService(
	attemptRepo AttemptRepository,
	problemRepo ProblemRepository,
	validators ValidatorResolver,
	validatorTimeout time.Duration,
	logger *slog.Logger,
	auditLogger *pkglogger.AuditLogger,
) *SubmissionService {
	return &SubmissionService{
		attemptRepo:      attemptRepo,
		problemRepo:      problemRepo,
		validators:       validators,
		validatorTimeout: validatorTimeout,
		logger:           logger,
		auditLogger:      auditLogger,
	}
}

// Submit records one attempt against a problem.
//
// Input checks happen before any database access, and the problem must
// resolve before its validator is invoked. The attempt timestamp is captured
// before validation so validator latency is not attributed to the user. A
// validator failure or timeout surfaces as ErrValidator and records nothing;
// an incorrect answer is not an error, just an attempt with
// AttemptSuccessful = false. Repeat submissions, including repeat correct
// answers, each produce a new attempt.
func (s *SubmissionService) Submit(ctx context.Context, problemID int, userName, rawValue string) (*models.Attempt, error) {
	if problemID <= 0 {
		return nil, models.ErrBadRequest
	}

	userName = strings.TrimSpace(userName)
	if len(userName) < MinUserNameLength {
		return nil, models.ErrBadRequest
	}

	attemptValue := strings.TrimSpace(rawValue)
	if attemptValue == "" {
		return nil, models.ErrBadRequest
	}

	problem, err := s.problemRepo.GetByProblemID(ctx, problemID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			s.logger.Info("submission against unknown problem", slog.Int("problem_id", problemID))
			return nil, models.ErrNotFound
		}
		s.logger.Error("failed to resolve problem", slog.Int("problem_id", problemID), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	// Capture the attempt time now: the record represents when the user
	// tried, not when the server finished checking.
	submittedAt := time.Now()

	validator, err := s.validators.Validator(problem.ProblemID)
	if err != nil {
		// The problem is in the catalog but has no registered checker.
		s.logger.Error("no validator registered for problem", slog.Int("problem_id", problem.ProblemID))
		return nil, models.ErrValidator
	}

	successful, err := problems.WithTimeout(validator, s.validatorTimeout).Validate(ctx, attemptValue)
	if err != nil {
		s.logger.Error("validator failed",
			slog.Int("problem_id", problem.ProblemID),
			slog.Any("error", err),
		)
		s.auditLogger.LogSubmission(pkglogger.SubmissionEvent{
			ProblemID: problem.ProblemID,
			UserName:  userName,
			Outcome:   "validator_error",
		})
		return nil, models.ErrValidator
	}

	attempt := &models.Attempt{
		ProblemID:         problem.ProblemID,
		UserName:          userName,
		DateTime:          submittedAt,
		AttemptValue:      attemptValue,
		AttemptSuccessful: successful,
	}

	stored, err := s.attemptRepo.Insert(ctx, attempt)
	if err != nil {
		s.logger.Error("failed to record attempt",
			slog.Int("problem_id", problem.ProblemID),
			slog.Any("error", err),
		)
		s.auditLogger.LogSubmission(pkglogger.SubmissionEvent{
			ProblemID: problem.ProblemID,
			UserName:  userName,
			Outcome:   "store_error",
		})
		return nil, models.ErrInternalServer
	}

	outcome := "incorrect"
	if stored.AttemptSuccessful {
		outcome = "correct"
	}
	s.auditLogger.LogSubmission(pkglogger.SubmissionEvent{
		ProblemID: stored.ProblemID,
		UserName:  stored.UserName,
		AttemptID: stored.ID,
		Outcome:   outcome,
	})

	return stored, nil
}
