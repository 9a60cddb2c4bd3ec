package services

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/MarcusPreston/solvetrack/internal/models"
)

// LeaderboardService folds a problem's attempt history into ranked per-user
// summaries. The leaderboard is always a pure function of the current
// attempt set; the cache below only avoids repeating a fold whose input is
// provably unchanged.
type LeaderboardService struct {
	problemRepo ProblemRepository
	attemptRepo AttemptRepository
	logger      *slog.Logger

	mu    sync.Mutex
	cache map[int]*cachedLeaderboard
}

// cachedLeaderboard remembers the fold result for one problem together with
// the size of the attempt set it was computed from. The ledger is
// append-only, so an equal count proves the set has not changed.
type cachedLeaderboard struct {
	attemptCount int
	entries      []*models.LeaderboardEntry
}

// NewLeaderboardService creates a new LeaderboardService
func NewLeaderboardService(problemRepo ProblemRepository, attemptRepo AttemptRepository, logger *slog.Logger) *LeaderboardService {
	return &LeaderboardService{
		problemRepo: problemRepo,
		attemptRepo: attemptRepo,
		logger:      logger,
		cache:       make(map[int]*cachedLeaderboard),
	}
}

// Leaderboard returns the ranking for a problem: one entry per user with at
// least one successful attempt, ordered by earliest success, then fewest
// attempts, then user name. An empty result means the problem exists but
// nobody has solved it yet; an unknown problem is ErrNotFound.
func (s *LeaderboardService) Leaderboard(ctx context.Context, problemID int) ([]*models.LeaderboardEntry, error) {
	if problemID <= 0 {
		return nil, models.ErrBadRequest
	}

	if _, err := s.problemRepo.GetByProblemID(ctx, problemID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			s.logger.Info("leaderboard requested for unknown problem", slog.Int("problem_id", problemID))
			return nil, models.ErrNotFound
		}
		s.logger.Error("failed to resolve problem", slog.Int("problem_id", problemID), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	count, err := s.attemptRepo.CountByProblemID(ctx, problemID)
	if err != nil {
		s.logger.Error("failed to count attempts", slog.Int("problem_id", problemID), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	s.mu.Lock()
	cached, ok := s.cache[problemID]
	s.mu.Unlock()
	if ok && int64(cached.attemptCount) == count {
		return cached.entries, nil
	}

	attempts, err := s.attemptRepo.ListByProblemID(ctx, problemID)
	if err != nil {
		s.logger.Error("failed to list attempts", slog.Int("problem_id", problemID), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	entries := foldAttempts(attempts)

	// Key the cache on the number of attempts actually folded rather than
	// the count read above; a concurrent append between the two reads
	// would otherwise poison the cache.
	s.mu.Lock()
	s.cache[problemID] = &cachedLeaderboard{
		attemptCount: len(attempts),
		entries:      entries,
	}
	s.mu.Unlock()

	return entries, nil
}

// foldAttempts derives leaderboard entries from a problem's full attempt
// history. Users without a successful attempt are dropped entirely.
func foldAttempts(attempts []*models.Attempt) []*models.LeaderboardEntry {
	type userSummary struct {
		attempts        int
		earliestSuccess time.Time
		solved          bool
	}

	summaries := make(map[string]*userSummary)
	for _, attempt := range attempts {
		summary, ok := summaries[attempt.UserName]
		if !ok {
			summary = &userSummary{}
			summaries[attempt.UserName] = summary
		}

		summary.attempts++
		if attempt.AttemptSuccessful {
			if !summary.solved || attempt.DateTime.Before(summary.earliestSuccess) {
				summary.earliestSuccess = attempt.DateTime
				summary.solved = true
			}
		}
	}

	entries := make([]*models.LeaderboardEntry, 0, len(summaries))
	for userName, summary := range summaries {
		if !summary.solved {
			continue
		}
		entries = append(entries, &models.LeaderboardEntry{
			UserName:                  userName,
			EarliestSuccessfulAttempt: summary.earliestSuccess,
			NumberOfAttempts:          summary.attempts,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if !a.EarliestSuccessfulAttempt.Equal(b.EarliestSuccessfulAttempt) {
			return a.EarliestSuccessfulAttempt.Before(b.EarliestSuccessfulAttempt)
		}
		if a.NumberOfAttempts != b.NumberOfAttempts {
			return a.NumberOfAttempts < b.NumberOfAttempts
		}
		// Final tie-break keeps repeated calls deterministic.
		return a.UserName < b.UserName
	})

	return entries
}

// Refresh recomputes a problem's leaderboard regardless of cache state. The
// background warmer uses it to keep caches hot.
func (s *LeaderboardService) Refresh(ctx context.Context, problemID int) error {
	attempts, err := s.attemptRepo.ListByProblemID(ctx, problemID)
	if err != nil {
		return err
	}

	entries := foldAttempts(attempts)

	s.mu.Lock()
	s.cache[problemID] = &cachedLeaderboard{
		attemptCount: len(attempts),
		entries:      entries,
	}
	s.mu.Unlock()

	return nil
}
