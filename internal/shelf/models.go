// internal/shelf/models.go
package shelf

import (
	"time"

	"github.com/bookwormapp/bookworm-backend/internal/books"
)

// Shelf statuses
const (
	StatusWantToRead       = "want-to-read"
	StatusCurrentlyReading = "currently-reading"
	StatusRead             = "read"
)

// Entry is one book on a user's shelf
type Entry struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	BookID    int64     `db:"book_id" json:"book_id"`
	Status    string    `db:"status" json:"status"`
	Progress  int       `db:"progress" json:"progress"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`

	// Joined fields
	Book *books.Book `json:"book,omitempty"`
}

// UpsertRequest adds or moves a book on the shelf
type UpsertRequest struct {
	BookID   int64  `json:"book_id" validate:"required"`
	Status   string `json:"status" validate:"required,oneof=want-to-read currently-reading read"`
	Progress *int   `json:"progress,omitempty" validate:"omitempty,gte=0,lte=100"`
}
