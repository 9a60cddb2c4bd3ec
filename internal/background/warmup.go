package background

import (
	"context"
	"log/slog"
	"time"

	"github.com/MarcusPreston/solvetrack/internal/models"
)

// LeaderboardRefresher recomputes one problem's leaderboard cache
type LeaderboardRefresher interface {
	Refresh(ctx context.Context, problemID int) error
}

// ProblemLister enumerates the catalog
type ProblemLister interface {
	List(ctx context.Context) ([]*models.Problem, error)
}

// WarmupManager periodically refreshes per-problem leaderboard caches so
// reads hit a warm cache. Correctness never depends on it: the cache is
// keyed by attempt count and a stale entry is recomputed on read.
type WarmupManager struct {
	leaderboards LeaderboardRefresher
	problems     ProblemLister
	logger       *slog.Logger
	interval     time.Duration
	stopCh       chan struct{}
}

// NewWarmupManager creates a new warmup manager
func NewWarmupManager(
	leaderboards LeaderboardRefresher,
	problems ProblemLister,
	logger *slog.Logger,
	interval time.Duration,
) *WarmupManager {
	return &WarmupManager{
		leaderboards: leaderboards,
		problems:     problems,
		logger:       logger,
		interval:     interval,
		stopCh:       make(chan struct{}),
	}
}

// Start begins the periodic warmup task
func (wm *WarmupManager) Start(ctx context.Context) {
	if wm.interval <= 0 {
		wm.logger.Info("leaderboard warmup disabled")
		return
	}

	ticker := time.NewTicker(wm.interval)
	defer ticker.Stop()

	// Run immediately on startup
	wm.runWarmup(ctx)

	for {
		select {
		case <-ticker.C:
			wm.runWarmup(ctx)
		case <-wm.stopCh:
			wm.logger.Info("warmup manager stopped")
			return
		case <-ctx.Done():
			wm.logger.Info("warmup manager context cancelled")
			return
		}
	}
}

// runWarmup refreshes the leaderboard cache for every catalog problem
func (wm *WarmupManager) runWarmup(ctx context.Context) {
	warmupCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	problems, err := wm.problems.List(warmupCtx)
	if err != nil {
		wm.logger.Error("failed to list problems for warmup", slog.Any("error", err))
		return
	}

	refreshed := 0
	for _, problem := range problems {
		if err := wm.leaderboards.Refresh(warmupCtx, problem.ProblemID); err != nil {
			wm.logger.Error("failed to refresh leaderboard",
				slog.Int("problem_id", problem.ProblemID),
				slog.Any("error", err),
			)
			continue
		}
		refreshed++
	}

	wm.logger.Info("leaderboard warmup completed", slog.Int("problems_refreshed", refreshed))
}

// Stop signals the warmup manager to stop
func (wm *WarmupManager) Stop() {
	close(wm.stopCh)
}
