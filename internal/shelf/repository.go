// internal/shelf/repository.go
package shelf

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/bookwormapp/bookworm-backend/internal/books"
)

// Repository defines database operations for user shelves
type Repository interface {
	Upsert(ctx context.Context, entry *Entry) error
	FindByUser(ctx context.Context, userID int64, status string) ([]Entry, error)
	FindReadEntries(ctx context.Context, userID int64) ([]Entry, error)
	FindAll(ctx context.Context, userID int64) ([]Entry, error)
	CountByUser(ctx context.Context, userID int64) (int, error)
	CountRead(ctx context.Context, userID int64) (int, error)
	Remove(ctx context.Context, userID, bookID int64) error
	RecountChallenge(ctx context.Context, userID int64) error
}

type postgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) Upsert(ctx context.Context, entry *Entry) error {
	query := `
		INSERT INTO shelves (user_id, book_id, status, progress, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		ON CONFLICT (user_id, book_id)
		DO UPDATE SET status = EXCLUDED.status, progress = EXCLUDED.progress, updated_at = NOW()
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		entry.UserID, entry.BookID, entry.Status, entry.Progress).
		Scan(&entry.ID, &entry.CreatedAt, &entry.UpdatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return ErrBookNotFound
		}
		return fmt.Errorf("failed to upsert shelf entry: %w", err)
	}

	return nil
}

func (r *postgresRepository) FindByUser(ctx context.Context, userID int64, status string) ([]Entry, error) {
	query := `
		SELECT s.id, s.user_id, s.book_id, s.status, s.progress, s.created_at, s.updated_at,
		       b.id AS "book.id", b.title AS "book.title", b.author AS "book.author",
		       b.description AS "book.description", b.cover_image AS "book.cover_image",
		       b.avg_rating AS "book.avg_rating", b.total_ratings AS "book.total_ratings",
		       b.created_at AS "book.created_at", b.updated_at AS "book.updated_at"
		FROM shelves s
		JOIN books b ON s.book_id = b.id
		WHERE s.user_id = $1`
	args := []interface{}{userID}

	if status != "" {
		query += ` AND s.status = $2`
		args = append(args, status)
	}

	query += ` ORDER BY s.updated_at DESC`

	return r.queryEntriesWithBooks(ctx, query, args...)
}

func (r *postgresRepository) FindReadEntries(ctx context.Context, userID int64) ([]Entry, error) {
	query := `
		SELECT s.id, s.user_id, s.book_id, s.status, s.progress, s.created_at, s.updated_at,
		       b.id AS "book.id", b.title AS "book.title", b.author AS "book.author",
		       b.description AS "book.description", b.cover_image AS "book.cover_image",
		       b.avg_rating AS "book.avg_rating", b.total_ratings AS "book.total_ratings",
		       b.created_at AS "book.created_at", b.updated_at AS "book.updated_at"
		FROM shelves s
		JOIN books b ON s.book_id = b.id
		WHERE s.user_id = $1 AND s.status = $2
		ORDER BY s.updated_at DESC`

	return r.queryEntriesWithBooks(ctx, query, userID, StatusRead)
}

func (r *postgresRepository) FindAll(ctx context.Context, userID int64) ([]Entry, error) {
	query := `
		SELECT id, user_id, book_id, status, progress, created_at, updated_at
		FROM shelves WHERE user_id = $1`

	var entries []Entry
	if err := r.db.SelectContext(ctx, &entries, query, userID); err != nil {
		return nil, fmt.Errorf("failed to fetch shelf entries: %w", err)
	}

	return entries, nil
}

func (r *postgresRepository) CountByUser(ctx context.Context, userID int64) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM shelves WHERE user_id = $1`, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to count shelf entries: %w", err)
	}
	return count, nil
}

func (r *postgresRepository) CountRead(ctx context.Context, userID int64) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM shelves WHERE user_id = $1 AND status = $2`, userID, StatusRead)
	if err != nil {
		return 0, fmt.Errorf("failed to count read entries: %w", err)
	}
	return count, nil
}

func (r *postgresRepository) Remove(ctx context.Context, userID, bookID int64) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM shelves WHERE user_id = $1 AND book_id = $2`, userID, bookID)
	if err != nil {
		return fmt.Errorf("failed to remove shelf entry: %w", err)
	}

	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return ErrEntryNotFound
	}

	return nil
}

// RecountChallenge resets the user's challenge progress to the actual
// number of read books, so it self-corrects on every shelf change.
func (r *postgresRepository) RecountChallenge(ctx context.Context, userID int64) error {
	query := `
		UPDATE users
		SET challenge_current = (
			SELECT COUNT(*) FROM shelves WHERE user_id = $1 AND status = $2
		), updated_at = NOW()
		WHERE id = $1`

	if _, err := r.db.ExecContext(ctx, query, userID, StatusRead); err != nil {
		return fmt.Errorf("failed to recount challenge: %w", err)
	}

	return nil
}

func (r *postgresRepository) queryEntriesWithBooks(ctx context.Context, query string, args ...interface{}) ([]Entry, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch shelf: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var b books.Book
		err := rows.Scan(
			&e.ID, &e.UserID, &e.BookID, &e.Status, &e.Progress, &e.CreatedAt, &e.UpdatedAt,
			&b.ID, &b.Title, &b.Author, &b.Description, &b.CoverImage,
			&b.AvgRating, &b.TotalRatings, &b.CreatedAt, &b.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shelf entry: %w", err)
		}
		e.Book = &b
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	if err := r.attachGenres(ctx, entries); err != nil {
		return nil, err
	}

	return entries, nil
}

func (r *postgresRepository) attachGenres(ctx context.Context, entries []Entry) error {
	if len(entries) == 0 {
		return nil
	}

	ids := make([]int64, len(entries))
	for i, e := range entries {
		ids[i] = e.BookID
	}

	query := `
		SELECT bg.book_id, g.id, g.name, g.slug
		FROM book_genres bg
		JOIN genres g ON bg.genre_id = g.id
		WHERE bg.book_id = ANY($1)
		ORDER BY g.name ASC`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("failed to fetch genres: %w", err)
	}
	defer rows.Close()

	byBook := make(map[int64][]books.GenreInfo)
	for rows.Next() {
		var bookID int64
		var g books.GenreInfo
		if err := rows.Scan(&bookID, &g.ID, &g.Name, &g.Slug); err != nil {
			return fmt.Errorf("failed to scan genre: %w", err)
		}
		byBook[bookID] = append(byBook[bookID], g)
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("rows iteration error: %w", err)
	}

	for i := range entries {
		if entries[i].Book == nil {
			continue
		}
		if g, ok := byBook[entries[i].BookID]; ok {
			entries[i].Book.Genres = g
		} else {
			entries[i].Book.Genres = []books.GenreInfo{}
		}
	}

	return nil
}
