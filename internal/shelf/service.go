// internal/shelf/service.go
package shelf

import (
	"context"
	"errors"
)

// Common errors
var (
	ErrEntryNotFound = errors.New("shelf entry not found")
	ErrBookNotFound  = errors.New("book not found")
)

// Service wraps shelf business logic
type Service struct {
	repo Repository
}

// NewService creates a new shelf service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Upsert adds a book to the shelf or moves it between statuses, then
// recounts the user's reading challenge progress.
func (s *Service) Upsert(ctx context.Context, userID int64, req *UpsertRequest) (*Entry, error) {
	entry := &Entry{
		UserID: userID,
		BookID: req.BookID,
		Status: req.Status,
	}
	if req.Progress != nil {
		entry.Progress = *req.Progress
	}
	if entry.Status == StatusRead {
		entry.Progress = 100
	}

	if err := s.repo.Upsert(ctx, entry); err != nil {
		return nil, err
	}

	if err := s.repo.RecountChallenge(ctx, userID); err != nil {
		return nil, err
	}

	return entry, nil
}

func (s *Service) List(ctx context.Context, userID int64, status string) ([]Entry, error) {
	entries, err := s.repo.FindByUser(ctx, userID, status)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []Entry{}
	}
	return entries, nil
}

func (s *Service) Remove(ctx context.Context, userID, bookID int64) error {
	if err := s.repo.Remove(ctx, userID, bookID); err != nil {
		return err
	}

	return s.repo.RecountChallenge(ctx, userID)
}
