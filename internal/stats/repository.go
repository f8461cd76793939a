// internal/stats/repository.go
package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// Repository defines the aggregate queries behind the stats endpoints
type Repository interface {
	GenreDistributionForUser(ctx context.Context, userID int64) ([]GenreCount, error)
	GenreDistributionCatalog(ctx context.Context) ([]GenreCount, error)
	MonthlyReadCounts(ctx context.Context, userID int64, since time.Time) (map[string]int, error)
	ShelfCounts(ctx context.Context, userID int64) (total, read int, err error)
	CatalogTotals(ctx context.Context) (users, books, pendingReviews int, err error)
}

type postgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) GenreDistributionForUser(ctx context.Context, userID int64) ([]GenreCount, error) {
	query := `
		SELECT g.id AS genre_id, g.name, COUNT(*) AS count
		FROM shelves s
		JOIN book_genres bg ON s.book_id = bg.book_id
		JOIN genres g ON bg.genre_id = g.id
		WHERE s.user_id = $1
		GROUP BY g.id, g.name
		ORDER BY count DESC, g.name ASC`

	var dist []GenreCount
	if err := r.db.SelectContext(ctx, &dist, query, userID); err != nil {
		return nil, fmt.Errorf("failed to compute genre distribution: %w", err)
	}

	return dist, nil
}

func (r *postgresRepository) GenreDistributionCatalog(ctx context.Context) ([]GenreCount, error) {
	query := `
		SELECT g.id AS genre_id, g.name, COUNT(*) AS count
		FROM book_genres bg
		JOIN genres g ON bg.genre_id = g.id
		GROUP BY g.id, g.name
		ORDER BY count DESC, g.name ASC`

	var dist []GenreCount
	if err := r.db.SelectContext(ctx, &dist, query); err != nil {
		return nil, fmt.Errorf("failed to compute catalog distribution: %w", err)
	}

	return dist, nil
}

// MonthlyReadCounts returns read-shelf counts keyed by "YYYY-MM",
// based on when the entry was last updated.
func (r *postgresRepository) MonthlyReadCounts(ctx context.Context, userID int64, since time.Time) (map[string]int, error) {
	query := `
		SELECT to_char(date_trunc('month', updated_at), 'YYYY-MM') AS month, COUNT(*) AS count
		FROM shelves
		WHERE user_id = $1 AND status = 'read' AND updated_at >= $2
		GROUP BY 1`

	rows, err := r.db.QueryContext(ctx, query, userID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to compute monthly reads: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var month string
		var count int
		if err := rows.Scan(&month, &count); err != nil {
			return nil, fmt.Errorf("failed to scan monthly count: %w", err)
		}
		counts[month] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return counts, nil
}

func (r *postgresRepository) ShelfCounts(ctx context.Context, userID int64) (int, int, error) {
	var total, read int

	err := r.db.GetContext(ctx, &total,
		`SELECT COUNT(*) FROM shelves WHERE user_id = $1`, userID)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count shelf: %w", err)
	}

	err = r.db.GetContext(ctx, &read,
		`SELECT COUNT(*) FROM shelves WHERE user_id = $1 AND status = 'read'`, userID)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count read books: %w", err)
	}

	return total, read, nil
}

func (r *postgresRepository) CatalogTotals(ctx context.Context) (int, int, int, error) {
	var users, books, pending int

	if err := r.db.GetContext(ctx, &users, `SELECT COUNT(*) FROM users`); err != nil {
		return 0, 0, 0, fmt.Errorf("failed to count users: %w", err)
	}
	if err := r.db.GetContext(ctx, &books, `SELECT COUNT(*) FROM books`); err != nil {
		return 0, 0, 0, fmt.Errorf("failed to count books: %w", err)
	}
	if err := r.db.GetContext(ctx, &pending,
		`SELECT COUNT(*) FROM reviews WHERE status = 'pending'`); err != nil {
		return 0, 0, 0, fmt.Errorf("failed to count pending reviews: %w", err)
	}

	return users, books, pending, nil
}
