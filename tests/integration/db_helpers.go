package integration

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/MarcusPreston/solvetrack/internal/database"
	"github.com/MarcusPreston/solvetrack/internal/models"
	"github.com/MarcusPreston/solvetrack/internal/repositories"
)

// TestDB manages PostgreSQL testcontainer and database operations
type TestDB struct {
	Container  testcontainers.Container
	ConnString string
	Pool       *pgxpool.Pool
	DB         *database.DB
}

// SetupTestDatabase creates a PostgreSQL testcontainer, runs migrations, returns TestDB
func SetupTestDatabase(ctx context.Context) (*TestDB, error) {
	container, err := postgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:16-alpine"),
		postgres.WithDatabase("solvetrack"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to start postgres container: %w", err)
	}

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		container.Terminate(ctx)
		return nil, fmt.Errorf("failed to get connection string: %w", err)
	}

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		container.Terminate(ctx)
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		container.Terminate(ctx)
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := runMigrations(ctx, pool); err != nil {
		pool.Close()
		container.Terminate(ctx)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	dbWrapper := &database.DB{
		Pool: pool,
	}

	return &TestDB{
		Container:  container,
		ConnString: connStr,
		Pool:       pool,
		DB:         dbWrapper,
	}, nil
}

// runMigrations executes all goose migrations
func runMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	migrationsDir, err := filepath.Abs("../../migrations")
	if err != nil {
		return fmt.Errorf("failed to get migrations path: %w", err)
	}

	goose.SetLogger(goose.NopLogger())

	// Goose needs a stdlib DB connection; use the stdlib adapter from pgx
	sqlDB := stdlib.OpenDB(*pool.Config().ConnConfig)
	defer sqlDB.Close()

	if err := goose.UpContext(ctx, sqlDB, migrationsDir); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	return nil
}

// Teardown stops the container and closes the connection pool
func (db *TestDB) Teardown(ctx context.Context) error {
	if db.Pool != nil {
		db.Pool.Close()
	}
	if db.Container != nil {
		return db.Container.Terminate(ctx)
	}
	return nil
}

// CleanupTables truncates all tables for test isolation
func (db *TestDB) CleanupTables(ctx context.Context) error {
	tables := []string{
		"attempts",
		"problems",
	}

	for _, table := range tables {
		if _, err := db.Pool.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)); err != nil {
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	return nil
}

// InitializeRepositories creates all repository instances from database wrapper
func InitializeRepositories(db *database.DB) (
	*repositories.ProblemRepository,
	*repositories.AttemptRepository,
) {
	return repositories.NewProblemRepository(db),
		repositories.NewAttemptRepository(db)
}

// SeedProblem inserts a catalog row directly
func SeedProblem(ctx context.Context, pool *pgxpool.Pool, problemID int, title string) (*models.Problem, error) {
	query := `
		INSERT INTO problems (problem_id, title, description, url, license, created_at, updated_at)
		VALUES ($1, $2, '', '', '', NOW(), NOW())
		RETURNING problem_id, title, description, url, license, created_at, updated_at
	`

	var problem models.Problem
	err := pool.QueryRow(ctx, query, problemID, title).Scan(
		&problem.ProblemID,
		&problem.Title,
		&problem.Description,
		&problem.URL,
		&problem.License,
		&problem.CreatedAt,
		&problem.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert problem: %w", err)
	}

	return &problem, nil
}

// SeedAttempt inserts a ledger row directly, bypassing the pipeline
func SeedAttempt(ctx context.Context, pool *pgxpool.Pool, attempt *models.Attempt) error {
	query := `
		INSERT INTO attempts (id, problem_id, user_name, date_time, attempt_value, attempt_successful)
		VALUES (gen_random_uuid(), $1, $2, $3, $4, $5)
	`

	_, err := pool.Exec(ctx, query,
		attempt.ProblemID, attempt.UserName, attempt.DateTime,
		attempt.AttemptValue, attempt.AttemptSuccessful,
	)
	if err != nil {
		return fmt.Errorf("failed to insert attempt: %w", err)
	}

	return nil
}
