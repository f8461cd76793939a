// internal/books/models.go
package books

import (
	"time"
)

// Book is a catalog record with resolved genre tags
type Book struct {
	ID           int64     `db:"id" json:"id"`
	Title        string    `db:"title" json:"title"`
	Author       string    `db:"author" json:"author"`
	Description  string    `db:"description" json:"description"`
	CoverImage   string    `db:"cover_image" json:"cover_image"`
	AvgRating    float64   `db:"avg_rating" json:"avg_rating"`
	TotalRatings int       `db:"total_ratings" json:"total_ratings"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`

	// Joined fields
	Genres []GenreInfo `json:"genres"`
}

// GenreInfo is the genre projection embedded in book responses
type GenreInfo struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
	Slug string `db:"slug" json:"slug"`
}

// CreateBookRequest is the payload for adding a book to the catalog
type CreateBookRequest struct {
	Title       string  `json:"title" validate:"required,min=1,max=200"`
	Author      string  `json:"author" validate:"required,min=1,max=200"`
	Description string  `json:"description" validate:"required"`
	CoverImage  string  `json:"cover_image,omitempty"`
	GenreIDs    []int64 `json:"genre_ids,omitempty"`
}

// UpdateBookRequest is the payload for editing a book
type UpdateBookRequest struct {
	Title       string  `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Author      string  `json:"author,omitempty" validate:"omitempty,min=1,max=200"`
	Description string  `json:"description,omitempty"`
	CoverImage  string  `json:"cover_image,omitempty"`
	GenreIDs    []int64 `json:"genre_ids,omitempty"`
}

// ListFilter narrows catalog listings
type ListFilter struct {
	Query   string // matches title or author
	GenreID int64  // 0 means any genre
	Limit   int
	Offset  int
}

// CandidateFilter narrows the pool of books the recommendation
// engine draws from.
type CandidateFilter struct {
	ExcludeIDs        []int64
	GenreIDs          []int64 // non-empty restricts to books tagged with any of these
	MinAvgRating      float64
	MinRatingCount    int
	OrderByPopularity bool // total_ratings desc, avg_rating desc; default avg_rating desc
	Limit             int
}

// PaginationMeta describes a paginated result set
type PaginationMeta struct {
	Page    int  `json:"page"`
	Limit   int  `json:"limit"`
	Total   int  `json:"total"`
	HasNext bool `json:"has_next"`
}

// ListResponse is a page of books
type ListResponse struct {
	Books      []Book         `json:"books"`
	Pagination PaginationMeta `json:"pagination"`
}
