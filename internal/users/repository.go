// internal/users/repository.go
package users

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Repository defines database operations for user accounts
type Repository interface {
	GetByID(ctx context.Context, id int64) (*Profile, error)
	GetPasswordHash(ctx context.Context, id int64) (string, error)
	UpdateProfile(ctx context.Context, id int64, name string, image *string) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	SetChallenge(ctx context.Context, id int64, year, goal int) error
	List(ctx context.Context, limit, offset int) ([]Profile, int, error)
	UpdateRole(ctx context.Context, id int64, role string) error
}

type postgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

const profileColumns = `id, name, email, role, image, challenge_year, challenge_goal,
	challenge_current, created_at, updated_at`

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*Profile, error) {
	var p Profile
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1`, profileColumns)

	err := r.db.GetContext(ctx, &p, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &p, nil
}

func (r *postgresRepository) GetPasswordHash(ctx context.Context, id int64) (string, error) {
	var hash string
	err := r.db.GetContext(ctx, &hash, `SELECT password_hash FROM users WHERE id = $1`, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", ErrUserNotFound
		}
		return "", fmt.Errorf("failed to get password hash: %w", err)
	}
	return hash, nil
}

func (r *postgresRepository) UpdateProfile(ctx context.Context, id int64, name string, image *string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE users SET name = $1, image = $2, updated_at = NOW() WHERE id = $3`,
		name, image, id)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}

	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return ErrUserNotFound
	}

	return nil
}

func (r *postgresRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE users SET password_hash = $1, updated_at = NOW() WHERE id = $2`,
		passwordHash, id)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return ErrUserNotFound
	}

	return nil
}

func (r *postgresRepository) SetChallenge(ctx context.Context, id int64, year, goal int) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE users SET challenge_year = $1, challenge_goal = $2, updated_at = NOW() WHERE id = $3`,
		year, goal, id)
	if err != nil {
		return fmt.Errorf("failed to set challenge: %w", err)
	}

	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return ErrUserNotFound
	}

	return nil
}

func (r *postgresRepository) List(ctx context.Context, limit, offset int) ([]Profile, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM users`); err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s FROM users
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`, profileColumns)

	var list []Profile
	if err := r.db.SelectContext(ctx, &list, query, limit, offset); err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}

	return list, total, nil
}

func (r *postgresRepository) UpdateRole(ctx context.Context, id int64, role string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE users SET role = $1, updated_at = NOW() WHERE id = $2`, role, id)
	if err != nil {
		return fmt.Errorf("failed to update role: %w", err)
	}

	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return ErrUserNotFound
	}

	return nil
}
