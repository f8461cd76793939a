// internal/reviews/service_test.go
package reviews

import (
	"context"
	"testing"
)

// fakeRepository keeps reviews in memory and records aggregate
// recomputations
type fakeRepository struct {
	reviews    map[int64]*Review
	nextID     int64
	recomputed []int64
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{reviews: make(map[int64]*Review), nextID: 1}
}

func (f *fakeRepository) Create(ctx context.Context, review *Review) error {
	for _, r := range f.reviews {
		if r.UserID == review.UserID && r.BookID == review.BookID {
			return ErrAlreadyReviewed
		}
	}
	review.ID = f.nextID
	f.nextID++
	review.Status = StatusPending
	stored := *review
	f.reviews[review.ID] = &stored
	return nil
}

func (f *fakeRepository) GetByID(ctx context.Context, id int64) (*Review, error) {
	r, ok := f.reviews[id]
	if !ok {
		return nil, ErrReviewNotFound
	}
	copied := *r
	return &copied, nil
}

func (f *fakeRepository) FindApprovedByBook(ctx context.Context, bookID int64, limit, offset int) ([]Review, int, error) {
	var list []Review
	for _, r := range f.reviews {
		if r.BookID == bookID && r.Status == StatusApproved {
			list = append(list, *r)
		}
	}
	return list, len(list), nil
}

func (f *fakeRepository) FindByStatus(ctx context.Context, status string, limit, offset int) ([]Review, int, error) {
	var list []Review
	for _, r := range f.reviews {
		if r.Status == status {
			list = append(list, *r)
		}
	}
	return list, len(list), nil
}

func (f *fakeRepository) FindApprovedByUser(ctx context.Context, userID int64) ([]UserRating, error) {
	var ratings []UserRating
	for _, r := range f.reviews {
		if r.UserID == userID && r.Status == StatusApproved {
			ratings = append(ratings, UserRating{BookID: r.BookID, Rating: r.Rating})
		}
	}
	return ratings, nil
}

func (f *fakeRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	r, ok := f.reviews[id]
	if !ok {
		return ErrReviewNotFound
	}
	r.Status = status
	return nil
}

func (f *fakeRepository) Delete(ctx context.Context, id int64) error {
	if _, ok := f.reviews[id]; !ok {
		return ErrReviewNotFound
	}
	delete(f.reviews, id)
	return nil
}

func (f *fakeRepository) RecomputeBookAggregates(ctx context.Context, bookID int64) error {
	f.recomputed = append(f.recomputed, bookID)
	return nil
}

func TestCreateStartsPending(t *testing.T) {
	repo := newFakeRepository()
	service := NewService(repo)

	review, err := service.Create(context.Background(), 1, &CreateReviewRequest{
		BookID: 7, Rating: 4, Comment: "Solid read",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if review.Status != StatusPending {
		t.Errorf("status = %q, want %q", review.Status, StatusPending)
	}
	if len(repo.recomputed) != 0 {
		t.Errorf("pending review must not touch book aggregates")
	}
}

func TestCreateRejectsDuplicate(t *testing.T) {
	repo := newFakeRepository()
	service := NewService(repo)

	req := &CreateReviewRequest{BookID: 7, Rating: 4}
	if _, err := service.Create(context.Background(), 1, req); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	if _, err := service.Create(context.Background(), 1, req); err != ErrAlreadyReviewed {
		t.Errorf("expected ErrAlreadyReviewed, got %v", err)
	}
}

func TestSetStatusRecomputesAggregates(t *testing.T) {
	tests := []struct {
		name          string
		initialStatus string
		newStatus     string
		wantRecompute bool
	}{
		{"approve pending", StatusPending, StatusApproved, true},
		{"reject pending", StatusPending, StatusRejected, true},
		{"reject previously approved", StatusApproved, StatusRejected, true},
		{"no-op same status", StatusApproved, StatusApproved, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeRepository()
			repo.reviews[1] = &Review{ID: 1, UserID: 1, BookID: 9, Rating: 5, Status: tt.initialStatus}
			service := NewService(repo)

			review, err := service.SetStatus(context.Background(), 1, tt.newStatus)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if review.Status != tt.newStatus {
				t.Errorf("status = %q, want %q", review.Status, tt.newStatus)
			}

			if tt.wantRecompute {
				if len(repo.recomputed) != 1 || repo.recomputed[0] != 9 {
					t.Errorf("expected aggregate recompute for book 9, got %v", repo.recomputed)
				}
			} else if len(repo.recomputed) != 0 {
				t.Errorf("unexpected recompute: %v", repo.recomputed)
			}
		})
	}
}

func TestSetStatusMissingReview(t *testing.T) {
	service := NewService(newFakeRepository())

	if _, err := service.SetStatus(context.Background(), 42, StatusApproved); err != ErrReviewNotFound {
		t.Errorf("expected ErrReviewNotFound, got %v", err)
	}
}

func TestDeleteRecomputesOnlyForApproved(t *testing.T) {
	tests := []struct {
		name          string
		status        string
		wantRecompute bool
	}{
		{"approved review", StatusApproved, true},
		{"pending review", StatusPending, false},
		{"rejected review", StatusRejected, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeRepository()
			repo.reviews[1] = &Review{ID: 1, UserID: 1, BookID: 9, Rating: 5, Status: tt.status}
			service := NewService(repo)

			if err := service.Delete(context.Background(), 1); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if _, ok := repo.reviews[1]; ok {
				t.Error("review not deleted")
			}

			if tt.wantRecompute != (len(repo.recomputed) == 1) {
				t.Errorf("recompute = %v, want %v", repo.recomputed, tt.wantRecompute)
			}
		})
	}
}
