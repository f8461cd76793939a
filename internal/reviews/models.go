// internal/reviews/models.go
package reviews

import (
	"time"
)

// Review statuses
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Review is a user's rating and comment for a book. Reviews start
// pending and only count toward the book's aggregates once approved.
type Review struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	BookID    int64     `db:"book_id" json:"book_id"`
	Rating    int       `db:"rating" json:"rating"`
	Comment   string    `db:"comment" json:"comment"`
	Status    string    `db:"status" json:"status"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`

	// Joined fields
	ReviewerName string `db:"reviewer_name" json:"reviewer_name,omitempty"`
	BookTitle    string `db:"book_title" json:"book_title,omitempty"`
}

// UserRating is the (book, rating) projection the recommendation
// engine consumes.
type UserRating struct {
	BookID int64 `db:"book_id"`
	Rating int   `db:"rating"`
}

// CreateReviewRequest submits a review for moderation
type CreateReviewRequest struct {
	BookID  int64  `json:"book_id" validate:"required"`
	Rating  int    `json:"rating" validate:"required,gte=1,lte=5"`
	Comment string `json:"comment" validate:"max=2000"`
}

// UpdateStatusRequest moderates a pending review
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending approved rejected"`
}

// ListResponse is a page of reviews
type ListResponse struct {
	Reviews []Review `json:"reviews"`
	Total   int      `json:"total"`
	Page    int      `json:"page"`
	Limit   int      `json:"limit"`
}
