package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/careercraft/careercraft/config"
	"github.com/careercraft/careercraft/internal/models"
)

const (
	DefaultTable           = "users"
	DefaultMaxOpenConns    = 10
	DefaultMaxIdleConns    = 5
	DefaultConnMaxLifetime = 30 * time.Second

	// 23505 is unique_violation
	pqUniqueViolation = "23505"
)

// PostgresUserRepository stores credential records in a PostgreSQL table
// with a unique constraint on username.
type PostgresUserRepository struct {
	db    *sql.DB
	table string
}

// NewPostgresUserRepository opens the connection pool and ensures the table.
func NewPostgresUserRepository(ctx context.Context, cfg *config.PostgresConfig) (*PostgresUserRepository, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("postgres dsn cannot be empty")
	}
	table := cfg.Table
	if table == "" {
		table = DefaultTable
	}

	db, err := sql.Open("postgres", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open PostgreSQL database: %w", err)
	}

	maxOpen := cfg.MaxOpenConns
	if maxOpen <= 0 {
		maxOpen = DefaultMaxOpenConns
	}
	maxIdle := cfg.MaxIdleConns
	if maxIdle <= 0 {
		maxIdle = DefaultMaxIdleConns
	}
	lifetime := cfg.ConnMaxLifetime
	if lifetime <= 0 {
		lifetime = DefaultConnMaxLifetime
	}
	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxIdle)
	db.SetConnMaxLifetime(lifetime)

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping PostgreSQL: %w", err)
	}

	repo := &PostgresUserRepository{db: db, table: table}
	if err := repo.ensureTable(ctx); err != nil {
		return nil, err
	}
	return repo, nil
}

// Load returns every credential record keyed by username.
func (r *PostgresUserRepository) Load(ctx context.Context) (map[string]models.User, error) {
	query := fmt.Sprintf(
		"SELECT username, salt, digest, algo, COALESCE(education, '') FROM %s", r.table)
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users from PostgreSQL: %w", err)
	}
	defer rows.Close()

	users := map[string]models.User{}
	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.Username, &user.Salt, &user.Digest, &user.Algo, &user.Education); err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		users[user.Username] = user
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row error listing users: %w", err)
	}
	return users, nil
}

// Get retrieves a single record, nil when the username is unknown.
func (r *PostgresUserRepository) Get(ctx context.Context, username string) (*models.User, error) {
	query := fmt.Sprintf(
		"SELECT username, salt, digest, algo, COALESCE(education, '') FROM %s WHERE username = $1", r.table)

	var user models.User
	err := r.db.QueryRowContext(ctx, query, username).
		Scan(&user.Username, &user.Salt, &user.Digest, &user.Algo, &user.Education)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user from PostgreSQL: %w", err)
	}
	return &user, nil
}

// Add inserts a new record. The unique constraint turns a duplicate insert
// into models.ErrUserExists.
func (r *PostgresUserRepository) Add(ctx context.Context, user models.User) error {
	query := fmt.Sprintf(
		"INSERT INTO %s (username, salt, digest, algo, education) VALUES ($1, $2, $3, $4, $5)", r.table)

	_, err := r.db.ExecContext(ctx, query,
		user.Username, user.Salt, user.Digest, user.Algo, user.Education)
	if err != nil {
		var pgErr *pq.Error
		if errors.As(err, &pgErr) && string(pgErr.Code) == pqUniqueViolation {
			return fmt.Errorf("%w: %s", models.ErrUserExists, user.Username)
		}
		return fmt.Errorf("failed to add user to PostgreSQL: %w", err)
	}
	return nil
}

// Close closes the connection pool.
func (r *PostgresUserRepository) Close(ctx context.Context) error {
	return r.db.Close()
}

func (r *PostgresUserRepository) ensureTable(ctx context.Context) error {
	query := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		username  TEXT PRIMARY KEY,
		salt      TEXT NOT NULL DEFAULT '',
		digest    TEXT NOT NULL,
		algo      TEXT NOT NULL DEFAULT 'argon2id',
		education TEXT
	)`, r.table)
	if _, err := r.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to ensure users table: %w", err)
	}
	return nil
}
