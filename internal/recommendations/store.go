// internal/recommendations/store.go
package recommendations

import (
	"context"

	"github.com/bookwormapp/bookworm-backend/internal/books"
	"github.com/bookwormapp/bookworm-backend/internal/reviews"
	"github.com/bookwormapp/bookworm-backend/internal/shelf"
)

// The engine reads through three narrow store interfaces. The shelf,
// review, and book repositories satisfy them directly; tests supply
// in-memory fakes.

// ShelfStore reads a user's shelf
type ShelfStore interface {
	FindReadEntries(ctx context.Context, userID int64) ([]shelf.Entry, error)
	FindAll(ctx context.Context, userID int64) ([]shelf.Entry, error)
}

// ReviewStore reads a user's approved ratings
type ReviewStore interface {
	FindApprovedByUser(ctx context.Context, userID int64) ([]reviews.UserRating, error)
}

// BookStore reads candidate books from the catalog
type BookStore interface {
	FindCandidates(ctx context.Context, filter *books.CandidateFilter) ([]books.Book, error)
}
