// internal/reviews/service.go
package reviews

import (
	"context"
	"errors"
)

// Common errors
var (
	ErrReviewNotFound  = errors.New("review not found")
	ErrAlreadyReviewed = errors.New("book already reviewed by this user")
	ErrBookNotFound    = errors.New("book not found")
)

// Service wraps review business logic
type Service struct {
	repo Repository
}

// NewService creates a new review service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, userID int64, req *CreateReviewRequest) (*Review, error) {
	review := &Review{
		UserID:  userID,
		BookID:  req.BookID,
		Rating:  req.Rating,
		Comment: req.Comment,
	}

	if err := s.repo.Create(ctx, review); err != nil {
		return nil, err
	}

	return review, nil
}

func (s *Service) ListForBook(ctx context.Context, bookID int64, page, limit int) (*ListResponse, error) {
	offset := (page - 1) * limit
	list, total, err := s.repo.FindApprovedByBook(ctx, bookID, limit, offset)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []Review{}
	}

	return &ListResponse{Reviews: list, Total: total, Page: page, Limit: limit}, nil
}

func (s *Service) ListByStatus(ctx context.Context, status string, page, limit int) (*ListResponse, error) {
	offset := (page - 1) * limit
	list, total, err := s.repo.FindByStatus(ctx, status, limit, offset)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []Review{}
	}

	return &ListResponse{Reviews: list, Total: total, Page: page, Limit: limit}, nil
}

// SetStatus moderates a review. Any status change rebuilds the book's
// aggregates, which covers both approving a pending review and
// rejecting a previously approved one.
func (s *Service) SetStatus(ctx context.Context, id int64, status string) (*Review, error) {
	review, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if review.Status != status {
		if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
			return nil, err
		}
		review.Status = status

		if err := s.repo.RecomputeBookAggregates(ctx, review.BookID); err != nil {
			return nil, err
		}
	}

	return review, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	review, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if review.Status == StatusApproved {
		return s.repo.RecomputeBookAggregates(ctx, review.BookID)
	}

	return nil
}
