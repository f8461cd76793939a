// internal/reviews/repository.go
package reviews

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// Repository defines database operations for reviews
type Repository interface {
	Create(ctx context.Context, review *Review) error
	GetByID(ctx context.Context, id int64) (*Review, error)
	FindApprovedByBook(ctx context.Context, bookID int64, limit, offset int) ([]Review, int, error)
	FindByStatus(ctx context.Context, status string, limit, offset int) ([]Review, int, error)
	FindApprovedByUser(ctx context.Context, userID int64) ([]UserRating, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
	Delete(ctx context.Context, id int64) error
	RecomputeBookAggregates(ctx context.Context, bookID int64) error
}

type postgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) Create(ctx context.Context, review *Review) error {
	query := `
		INSERT INTO reviews (user_id, book_id, rating, comment, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		review.UserID, review.BookID, review.Rating, review.Comment, StatusPending).
		Scan(&review.ID, &review.CreatedAt, &review.UpdatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Code {
			case "23505":
				return ErrAlreadyReviewed
			case "23503":
				return ErrBookNotFound
			}
		}
		return fmt.Errorf("failed to create review: %w", err)
	}

	review.Status = StatusPending
	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*Review, error) {
	var review Review
	query := `
		SELECT id, user_id, book_id, rating, comment, status, created_at, updated_at
		FROM reviews WHERE id = $1`

	err := r.db.GetContext(ctx, &review, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to get review: %w", err)
	}

	return &review, nil
}

func (r *postgresRepository) FindApprovedByBook(ctx context.Context, bookID int64, limit, offset int) ([]Review, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		`SELECT COUNT(*) FROM reviews WHERE book_id = $1 AND status = $2`, bookID, StatusApproved)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count reviews: %w", err)
	}

	query := `
		SELECT r.id, r.user_id, r.book_id, r.rating, r.comment, r.status,
		       r.created_at, r.updated_at, u.name AS reviewer_name
		FROM reviews r
		JOIN users u ON r.user_id = u.id
		WHERE r.book_id = $1 AND r.status = $2
		ORDER BY r.created_at DESC
		LIMIT $3 OFFSET $4`

	var list []Review
	if err := r.db.SelectContext(ctx, &list, query, bookID, StatusApproved, limit, offset); err != nil {
		return nil, 0, fmt.Errorf("failed to list reviews: %w", err)
	}

	return list, total, nil
}

func (r *postgresRepository) FindByStatus(ctx context.Context, status string, limit, offset int) ([]Review, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		`SELECT COUNT(*) FROM reviews WHERE status = $1`, status)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count reviews: %w", err)
	}

	query := `
		SELECT r.id, r.user_id, r.book_id, r.rating, r.comment, r.status,
		       r.created_at, r.updated_at, u.name AS reviewer_name, b.title AS book_title
		FROM reviews r
		JOIN users u ON r.user_id = u.id
		JOIN books b ON r.book_id = b.id
		WHERE r.status = $1
		ORDER BY r.created_at ASC
		LIMIT $2 OFFSET $3`

	var list []Review
	if err := r.db.SelectContext(ctx, &list, query, status, limit, offset); err != nil {
		return nil, 0, fmt.Errorf("failed to list reviews: %w", err)
	}

	return list, total, nil
}

func (r *postgresRepository) FindApprovedByUser(ctx context.Context, userID int64) ([]UserRating, error) {
	query := `
		SELECT book_id, rating FROM reviews
		WHERE user_id = $1 AND status = $2`

	var ratings []UserRating
	if err := r.db.SelectContext(ctx, &ratings, query, userID, StatusApproved); err != nil {
		return nil, fmt.Errorf("failed to fetch user ratings: %w", err)
	}

	return ratings, nil
}

func (r *postgresRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE reviews SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("failed to update review status: %w", err)
	}

	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return ErrReviewNotFound
	}

	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}

	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return ErrReviewNotFound
	}

	return nil
}

// RecomputeBookAggregates rebuilds a book's average rating and rating
// count from its approved reviews.
func (r *postgresRepository) RecomputeBookAggregates(ctx context.Context, bookID int64) error {
	query := `
		UPDATE books
		SET avg_rating = COALESCE((
			SELECT AVG(rating)::float8 FROM reviews WHERE book_id = $1 AND status = $2
		), 0),
		total_ratings = (
			SELECT COUNT(*) FROM reviews WHERE book_id = $1 AND status = $2
		),
		updated_at = NOW()
		WHERE id = $1`

	if _, err := r.db.ExecContext(ctx, query, bookID, StatusApproved); err != nil {
		return fmt.Errorf("failed to recompute book aggregates: %w", err)
	}

	return nil
}
