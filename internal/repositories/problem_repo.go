package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/MarcusPreston/solvetrack/internal/database"
	"github.com/MarcusPreston/solvetrack/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ProblemRepository struct {
	pool *pgxpool.Pool
}

func NewProblemRepository(db *database.DB) *ProblemRepository {
	return &ProblemRepository{pool: db.Pool}
}

// rowScanner interface for scanning rows (supports both single row and multiple rows)
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanProblemRow populates a Problem model from a database row
func scanProblemRow(scanner rowScanner) (*models.Problem, error) {
	var problem models.Problem

	err := scanner.Scan(
		&problem.ProblemID, &problem.Title, &problem.Description,
		&problem.URL, &problem.License,
		&problem.CreatedAt, &problem.UpdatedAt,
	)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}

	return &problem, nil
}

// scanProblemRows iterates through rows and scans each into Problem models
func scanProblemRows(rows pgx.Rows) ([]*models.Problem, error) {
	defer rows.Close()

	problems := make([]*models.Problem, 0)

	for rows.Next() {
		problem, err := scanProblemRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan problem: %w", err)
		}
		problems = append(problems, problem)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return problems, nil
}

func (r *ProblemRepository) GetByProblemID(ctx context.Context, problemID int) (*models.Problem, error) {
	query := `
		SELECT problem_id, title, description, url, license, created_at, updated_at
		FROM problems WHERE problem_id = $1
	`

	problem, err := scanProblemRow(r.pool.QueryRow(ctx, query, problemID))
	if err != nil {
		return nil, err
	}

	return problem, nil
}

func (r *ProblemRepository) List(ctx context.Context) ([]*models.Problem, error) {
	query := `
		SELECT problem_id, title, description, url, license, created_at, updated_at
		FROM problems ORDER BY problem_id ASC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query problems: %w", err)
	}

	return scanProblemRows(rows)
}

// Upsert writes catalog metadata for a problem, updating the stored copy if
// the problem ID is already present. Used only by startup seeding; the
// catalog is read-only to the submission and leaderboard paths.
func (r *ProblemRepository) Upsert(ctx context.Context, problem *models.Problem) (*models.Problem, error) {
	now := time.Now()

	query := `
		INSERT INTO problems (problem_id, title, description, url, license, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		ON CONFLICT (problem_id) DO UPDATE
		SET title = EXCLUDED.title,
		    description = EXCLUDED.description,
		    url = EXCLUDED.url,
		    license = EXCLUDED.license,
		    updated_at = EXCLUDED.updated_at
		RETURNING problem_id, title, description, url, license, created_at, updated_at
	`

	stored, err := scanProblemRow(r.pool.QueryRow(ctx, query,
		problem.ProblemID, problem.Title, problem.Description,
		problem.URL, problem.License, now,
	))
	if err != nil {
		return nil, err
	}

	return stored, nil
}
