// internal/books/repository.go
package books

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// Repository defines database operations for the book catalog
type Repository interface {
	Create(ctx context.Context, book *Book, genreIDs []int64) error
	GetByID(ctx context.Context, id int64) (*Book, error)
	List(ctx context.Context, filter *ListFilter) ([]Book, int, error)
	Update(ctx context.Context, book *Book, genreIDs []int64) error
	UpdateCover(ctx context.Context, id int64, coverURL string) error
	Delete(ctx context.Context, id int64) error
	FindCandidates(ctx context.Context, filter *CandidateFilter) ([]Book, error)
}

type postgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) Create(ctx context.Context, book *Book, genreIDs []int64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO books (title, author, description, cover_image, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id, avg_rating, total_ratings, created_at, updated_at`

	err = tx.QueryRowContext(ctx, query, book.Title, book.Author, book.Description, book.CoverImage).
		Scan(&book.ID, &book.AvgRating, &book.TotalRatings, &book.CreatedAt, &book.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create book: %w", err)
	}

	if err := linkGenres(ctx, tx, book.ID, genreIDs); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}

	genres, err := r.genresForBooks(ctx, []int64{book.ID})
	if err != nil {
		return err
	}
	book.Genres = genres[book.ID]
	if book.Genres == nil {
		book.Genres = []GenreInfo{}
	}

	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*Book, error) {
	var book Book
	query := `
		SELECT id, title, author, description, cover_image, avg_rating, total_ratings,
		       created_at, updated_at
		FROM books WHERE id = $1`

	err := r.db.GetContext(ctx, &book, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to get book: %w", err)
	}

	genres, err := r.genresForBooks(ctx, []int64{id})
	if err != nil {
		return nil, err
	}
	book.Genres = genres[id]
	if book.Genres == nil {
		book.Genres = []GenreInfo{}
	}

	return &book, nil
}

func (r *postgresRepository) List(ctx context.Context, filter *ListFilter) ([]Book, int, error) {
	var conditions []string
	var args []interface{}
	argCount := 1

	if filter.Query != "" {
		conditions = append(conditions,
			fmt.Sprintf("(title ILIKE $%d OR author ILIKE $%d)", argCount, argCount))
		args = append(args, "%"+filter.Query+"%")
		argCount++
	}

	if filter.GenreID != 0 {
		conditions = append(conditions,
			fmt.Sprintf("id IN (SELECT book_id FROM book_genres WHERE genre_id = $%d)", argCount))
		args = append(args, filter.GenreID)
		argCount++
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	// Total count for pagination
	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM books %s`, where)
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count books: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, title, author, description, cover_image, avg_rating, total_ratings,
		       created_at, updated_at
		FROM books %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`, where, argCount, argCount+1)
	args = append(args, filter.Limit, filter.Offset)

	var list []Book
	if err := r.db.SelectContext(ctx, &list, query, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to list books: %w", err)
	}

	if err := r.attachGenres(ctx, list); err != nil {
		return nil, 0, err
	}

	return list, total, nil
}

func (r *postgresRepository) Update(ctx context.Context, book *Book, genreIDs []int64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		UPDATE books
		SET title = $1, author = $2, description = $3, cover_image = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING updated_at`

	err = tx.QueryRowContext(ctx, query,
		book.Title, book.Author, book.Description, book.CoverImage, book.ID).
		Scan(&book.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return ErrBookNotFound
		}
		return fmt.Errorf("failed to update book: %w", err)
	}

	if genreIDs != nil {
		if _, err := tx.ExecContext(ctx, `DELETE FROM book_genres WHERE book_id = $1`, book.ID); err != nil {
			return fmt.Errorf("failed to clear genre links: %w", err)
		}
		if err := linkGenres(ctx, tx, book.ID, genreIDs); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}

	genres, err := r.genresForBooks(ctx, []int64{book.ID})
	if err != nil {
		return err
	}
	book.Genres = genres[book.ID]
	if book.Genres == nil {
		book.Genres = []GenreInfo{}
	}

	return nil
}

func (r *postgresRepository) UpdateCover(ctx context.Context, id int64, coverURL string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE books SET cover_image = $1, updated_at = NOW() WHERE id = $2`, coverURL, id)
	if err != nil {
		return fmt.Errorf("failed to update cover: %w", err)
	}

	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return ErrBookNotFound
	}

	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Delete related data
	if _, err := tx.ExecContext(ctx, `DELETE FROM book_genres WHERE book_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete genre links: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM shelves WHERE book_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete shelf entries: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM reviews WHERE book_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete reviews: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete book: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return ErrBookNotFound
	}

	return tx.Commit()
}

func (r *postgresRepository) FindCandidates(ctx context.Context, filter *CandidateFilter) ([]Book, error) {
	var conditions []string
	var args []interface{}
	argCount := 1

	if len(filter.ExcludeIDs) > 0 {
		conditions = append(conditions, fmt.Sprintf("id != ALL($%d)", argCount))
		args = append(args, pq.Array(filter.ExcludeIDs))
		argCount++
	}

	if len(filter.GenreIDs) > 0 {
		conditions = append(conditions,
			fmt.Sprintf("id IN (SELECT book_id FROM book_genres WHERE genre_id = ANY($%d))", argCount))
		args = append(args, pq.Array(filter.GenreIDs))
		argCount++
	}

	if filter.MinAvgRating > 0 {
		conditions = append(conditions, fmt.Sprintf("avg_rating >= $%d", argCount))
		args = append(args, filter.MinAvgRating)
		argCount++
	}

	if filter.MinRatingCount > 0 {
		conditions = append(conditions, fmt.Sprintf("total_ratings >= $%d", argCount))
		args = append(args, filter.MinRatingCount)
		argCount++
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	order := "avg_rating DESC, total_ratings DESC"
	if filter.OrderByPopularity {
		order = "total_ratings DESC, avg_rating DESC"
	}

	query := fmt.Sprintf(`
		SELECT id, title, author, description, cover_image, avg_rating, total_ratings,
		       created_at, updated_at
		FROM books %s
		ORDER BY %s
		LIMIT $%d`, where, order, argCount)
	args = append(args, filter.Limit)

	var list []Book
	if err := r.db.SelectContext(ctx, &list, query, args...); err != nil {
		return nil, fmt.Errorf("failed to find candidate books: %w", err)
	}

	if err := r.attachGenres(ctx, list); err != nil {
		return nil, err
	}

	return list, nil
}

// linkGenres inserts book/genre join rows inside a transaction
func linkGenres(ctx context.Context, tx *sqlx.Tx, bookID int64, genreIDs []int64) error {
	if len(genreIDs) == 0 {
		return nil
	}

	valueStrings := make([]string, 0, len(genreIDs))
	valueArgs := make([]interface{}, 0, len(genreIDs)*2)

	for i, genreID := range genreIDs {
		valueStrings = append(valueStrings, fmt.Sprintf("($%d, $%d)", i*2+1, i*2+2))
		valueArgs = append(valueArgs, bookID, genreID)
	}

	query := fmt.Sprintf(`
		INSERT INTO book_genres (book_id, genre_id)
		VALUES %s ON CONFLICT DO NOTHING`, strings.Join(valueStrings, ","))

	if _, err := tx.ExecContext(ctx, query, valueArgs...); err != nil {
		return fmt.Errorf("failed to link genres: %w", err)
	}

	return nil
}

// attachGenres resolves genre tags for a slice of books in one query
func (r *postgresRepository) attachGenres(ctx context.Context, list []Book) error {
	if len(list) == 0 {
		return nil
	}

	ids := make([]int64, len(list))
	for i, b := range list {
		ids[i] = b.ID
	}

	byBook, err := r.genresForBooks(ctx, ids)
	if err != nil {
		return err
	}

	for i := range list {
		if g, ok := byBook[list[i].ID]; ok {
			list[i].Genres = g
		} else {
			list[i].Genres = []GenreInfo{}
		}
	}

	return nil
}

func (r *postgresRepository) genresForBooks(ctx context.Context, bookIDs []int64) (map[int64][]GenreInfo, error) {
	query := `
		SELECT bg.book_id, g.id, g.name, g.slug
		FROM book_genres bg
		JOIN genres g ON bg.genre_id = g.id
		WHERE bg.book_id = ANY($1)
		ORDER BY g.name ASC`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(bookIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch genres: %w", err)
	}
	defer rows.Close()

	byBook := make(map[int64][]GenreInfo)
	for rows.Next() {
		var bookID int64
		var g GenreInfo
		if err := rows.Scan(&bookID, &g.ID, &g.Name, &g.Slug); err != nil {
			return nil, fmt.Errorf("failed to scan genre: %w", err)
		}
		byBook[bookID] = append(byBook[bookID], g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return byBook, nil
}
