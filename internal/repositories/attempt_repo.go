package repositories

import (
	"context"
	"fmt"

	"github.com/MarcusPreston/solvetrack/internal/database"
	"github.com/MarcusPreston/solvetrack/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AttemptRepository persists the append-only attempt ledger. There are
// deliberately no update or delete operations: an attempt, once written,
// is immutable, and identical resubmissions produce new rows.
type AttemptRepository struct {
	pool *pgxpool.Pool
}

func NewAttemptRepository(db *database.DB) *AttemptRepository {
	return &AttemptRepository{pool: db.Pool}
}

// scanAttemptRow populates an Attempt model from a database row
func scanAttemptRow(scanner rowScanner) (*models.Attempt, error) {
	var attempt models.Attempt

	err := scanner.Scan(
		&attempt.ID, &attempt.ProblemID, &attempt.UserName,
		&attempt.DateTime, &attempt.AttemptValue, &attempt.AttemptSuccessful,
	)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}

	return &attempt, nil
}

// scanAttemptRows iterates through rows and scans each into Attempt models
func scanAttemptRows(rows pgx.Rows) ([]*models.Attempt, error) {
	defer rows.Close()

	attempts := make([]*models.Attempt, 0)

	for rows.Next() {
		attempt, err := scanAttemptRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attempt: %w", err)
		}
		attempts = append(attempts, attempt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return attempts, nil
}

// Insert appends an attempt to the ledger and returns the stored row. The
// caller supplies the server-captured timestamp; the repository assigns the
// record ID.
func (r *AttemptRepository) Insert(ctx context.Context, attempt *models.Attempt) (*models.Attempt, error) {
	attempt.ID = uuid.New().String()

	query := `
		INSERT INTO attempts (id, problem_id, user_name, date_time, attempt_value, attempt_successful)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, problem_id, user_name, date_time, attempt_value, attempt_successful
	`

	stored, err := scanAttemptRow(r.pool.QueryRow(ctx, query,
		attempt.ID, attempt.ProblemID, attempt.UserName,
		attempt.DateTime, attempt.AttemptValue, attempt.AttemptSuccessful,
	))
	if err != nil {
		return nil, err
	}

	return stored, nil
}

// ListByProblemID returns every attempt recorded against a problem,
// successful or not. Ordering is left to the aggregator.
func (r *AttemptRepository) ListByProblemID(ctx context.Context, problemID int) ([]*models.Attempt, error) {
	query := `
		SELECT id, problem_id, user_name, date_time, attempt_value, attempt_successful
		FROM attempts WHERE problem_id = $1
	`

	rows, err := r.pool.Query(ctx, query, problemID)
	if err != nil {
		return nil, fmt.Errorf("failed to query attempts: %w", err)
	}

	return scanAttemptRows(rows)
}

// CountByProblemID returns the total number of attempts against a problem.
// The ledger is append-only, so an unchanged count implies an unchanged
// attempt set; the leaderboard cache keys on it.
func (r *AttemptRepository) CountByProblemID(ctx context.Context, problemID int) (int64, error) {
	query := `SELECT COUNT(*) FROM attempts WHERE problem_id = $1`

	var count int64
	if err := r.pool.QueryRow(ctx, query, problemID).Scan(&count); err != nil {
		return 0, database.MapPostgresError(err)
	}

	return count, nil
}
