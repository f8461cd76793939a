// internal/genres/repository.go
package genres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// Repository defines database operations for genres
type Repository interface {
	Create(ctx context.Context, genre *Genre) error
	GetByID(ctx context.Context, id int64) (*Genre, error)
	List(ctx context.Context) ([]Genre, error)
	Update(ctx context.Context, genre *Genre) error
	Delete(ctx context.Context, id int64) error
}

type postgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) Create(ctx context.Context, genre *Genre) error {
	query := `
		INSERT INTO genres (name, slug, description, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query, genre.Name, genre.Slug, genre.Description).
		Scan(&genre.ID, &genre.CreatedAt, &genre.UpdatedAt)

	if err != nil {
		if pgErr, ok := err.(*pq.Error); ok && pgErr.Code == "23505" {
			return ErrGenreAlreadyExists
		}
		return fmt.Errorf("failed to create genre: %w", err)
	}

	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*Genre, error) {
	var genre Genre
	query := `
		SELECT id, name, slug, description, created_at, updated_at
		FROM genres WHERE id = $1`

	err := r.db.GetContext(ctx, &genre, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrGenreNotFound
		}
		return nil, fmt.Errorf("failed to get genre: %w", err)
	}

	return &genre, nil
}

func (r *postgresRepository) List(ctx context.Context) ([]Genre, error) {
	var list []Genre
	query := `
		SELECT id, name, slug, description, created_at, updated_at
		FROM genres ORDER BY name ASC`

	if err := r.db.SelectContext(ctx, &list, query); err != nil {
		return nil, fmt.Errorf("failed to list genres: %w", err)
	}

	return list, nil
}

func (r *postgresRepository) Update(ctx context.Context, genre *Genre) error {
	query := `
		UPDATE genres
		SET name = $1, slug = $2, description = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING updated_at`

	err := r.db.QueryRowContext(ctx, query, genre.Name, genre.Slug, genre.Description, genre.ID).
		Scan(&genre.UpdatedAt)

	if err != nil {
		if err == sql.ErrNoRows {
			return ErrGenreNotFound
		}
		if pgErr, ok := err.(*pq.Error); ok && pgErr.Code == "23505" {
			return ErrGenreAlreadyExists
		}
		return fmt.Errorf("failed to update genre: %w", err)
	}

	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM genres WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete genre: %w", err)
	}

	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return ErrGenreNotFound
	}

	return nil
}
