package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/selfviz/analytics-service/internal/models"
)

// ErrNotFound is returned when a lookup matches no row
var ErrNotFound = errors.New("record not found")

// Repository provides database operations
type Repository struct {
	db *sql.DB
}

// NewRepository initializes a new repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Migrate creates the tables and indexes the service relies on. It is safe
// to run on every startup.
func (r *Repository) Migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			username TEXT NOT NULL,
			email TEXT NOT NULL,
			password_hash TEXT NOT NULL,
			age INTEGER NOT NULL CHECK (age >= 0),
			gender TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS users_email_key ON users (email)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS users_username_key ON users (username)`,
		`CREATE TABLE IF NOT EXISTS feature_clicks (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES users (id),
			feature_name TEXT NOT NULL,
			timestamp TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS feature_clicks_timestamp_idx ON feature_clicks (timestamp)`,
		`CREATE INDEX IF NOT EXISTS feature_clicks_user_id_idx ON feature_clicks (user_id)`,
	}

	for _, stmt := range stmts {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to run migration: %w", err)
		}
	}
	return nil
}

// Ping checks database connectivity
func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// CreateUser creates a new user in the database. The uniqueness of email and
// username is enforced by the database; violations are detectable with
// IsUniqueViolation.
func (r *Repository) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, username, email, password_hash, age, gender, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, now())
		RETURNING created_at`
	err := r.db.QueryRowContext(ctx, query,
		user.ID, user.Username, user.Email, user.PasswordHash, user.Age, user.Gender).
		Scan(&user.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindUserByID retrieves a user by id
func (r *Repository) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	return r.findUser(ctx, "id", id)
}

// FindUserByUsername retrieves a user by username
func (r *Repository) FindUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.findUser(ctx, "username", username)
}

// FindUserByEmail retrieves a user by email
func (r *Repository) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findUser(ctx, "email", email)
}

func (r *Repository) findUser(ctx context.Context, column, value string) (*models.User, error) {
	user := &models.User{}
	query := fmt.Sprintf(`
		SELECT id, username, email, password_hash, age, gender, created_at
		FROM users
		WHERE %s = $1`, column)
	err := r.db.QueryRowContext(ctx, query, value).
		Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.Age, &user.Gender, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// CreateClick inserts a feature click event. The foreign key on user_id
// rejects clicks for users that do not exist.
func (r *Repository) CreateClick(ctx context.Context, click *models.FeatureClick) error {
	query := `
		INSERT INTO feature_clicks (id, user_id, feature_name, timestamp)
		VALUES ($1, $2, $3, now())
		RETURNING timestamp`
	err := r.db.QueryRowContext(ctx, query, click.ID, click.UserID, click.FeatureName).
		Scan(&click.Timestamp)
	if err != nil {
		return fmt.Errorf("failed to create click: %w", err)
	}
	return nil
}

// CreateClickAt inserts a click with an explicit timestamp. Used by the seed
// utility; the API always stamps clicks at insert time.
func (r *Repository) CreateClickAt(ctx context.Context, click *models.FeatureClick) error {
	query := `
		INSERT INTO feature_clicks (id, user_id, feature_name, timestamp)
		VALUES ($1, $2, $3, $4)`
	if _, err := r.db.ExecContext(ctx, query, click.ID, click.UserID, click.FeatureName, click.Timestamp); err != nil {
		return fmt.Errorf("failed to create click: %w", err)
	}
	return nil
}

// Reset drops all tables. Only the seed utility calls this.
func (r *Repository) Reset(ctx context.Context) error {
	stmts := []string{
		`DROP TABLE IF EXISTS feature_clicks`,
		`DROP TABLE IF EXISTS users`,
	}
	for _, stmt := range stmts {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to drop table: %w", err)
		}
	}
	return nil
}

// IsUniqueViolation reports whether err is a Postgres unique-constraint
// violation on the named constraint.
func IsUniqueViolation(err error, constraint string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code == "23505" && pqErr.Constraint == constraint
}

// IsForeignKeyViolation reports whether err is a Postgres foreign-key
// violation.
func IsForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code == "23503"
}
