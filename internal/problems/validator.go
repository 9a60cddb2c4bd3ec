package problems

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/MarcusPreston/solvetrack/internal/models"
)

// Validator is the per-problem capability that decides whether a trimmed
// candidate string is the correct answer. Implementations may be expensive;
// callers bound them with a context deadline.
type Validator interface {
	Validate(ctx context.Context, candidate string) (bool, error)
}

// ValidatorFunc adapts a plain function to the Validator interface.
type ValidatorFunc func(ctx context.Context, candidate string) (bool, error)

func (f ValidatorFunc) Validate(ctx context.Context, candidate string) (bool, error) {
	return f(ctx, candidate)
}

// Definition couples a problem's catalog metadata with its validator. One
// independent checker exists per problem; they are resolved from the registry
// by problem ID rather than loaded dynamically.
type Definition struct {
	Metadata  models.Problem
	Validator Validator
}

// Registry holds every registered problem definition keyed by problem ID.
type Registry struct {
	mu          sync.RWMutex
	definitions map[int]Definition
}

func NewRegistry() *Registry {
	return &Registry{
		definitions: make(map[int]Definition),
	}
}

// Register adds a problem definition. Problem IDs must be positive and
// unique within the registry.
func (r *Registry) Register(def Definition) error {
	if def.Metadata.ProblemID <= 0 {
		return fmt.Errorf("problem ID must be positive, got %d", def.Metadata.ProblemID)
	}
	if def.Validator == nil {
		return fmt.Errorf("problem %d has no validator", def.Metadata.ProblemID)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.definitions[def.Metadata.ProblemID]; exists {
		return fmt.Errorf("problem %d already registered: %w", def.Metadata.ProblemID, models.ErrConflict)
	}

	r.definitions[def.Metadata.ProblemID] = def
	return nil
}

// Validator resolves the checking capability for a problem ID.
func (r *Registry) Validator(problemID int) (Validator, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	def, ok := r.definitions[problemID]
	if !ok {
		return nil, models.ErrNotFound
	}
	return def.Validator, nil
}

// Problems returns the metadata of every registered problem, ordered by
// problem ID for deterministic seeding.
func (r *Registry) Problems() []models.Problem {
	r.mu.RLock()
	defer r.mu.RUnlock()

	problems := make([]models.Problem, 0, len(r.definitions))
	for _, def := range r.definitions {
		problems = append(problems, def.Metadata)
	}

	sort.Slice(problems, func(i, j int) bool {
		return problems[i].ProblemID < problems[j].ProblemID
	})

	return problems
}

// WithTimeout wraps a validator so an invocation that does not return within
// d fails instead of blocking the submission indefinitely. The wrapped
// validator keeps running in its goroutine until it notices the cancelled
// context; its late result is discarded.
func WithTimeout(v Validator, d time.Duration) Validator {
	return ValidatorFunc(func(ctx context.Context, candidate string) (bool, error) {
		ctx, cancel := context.WithTimeout(ctx, d)
		defer cancel()

		type result struct {
			ok  bool
			err error
		}

		resultCh := make(chan result, 1)
		go func() {
			ok, err := v.Validate(ctx, candidate)
			resultCh <- result{ok: ok, err: err}
		}()

		select {
		case res := <-resultCh:
			return res.ok, res.err
		case <-ctx.Done():
			return false, fmt.Errorf("validator did not complete: %w", ctx.Err())
		}
	})
}
