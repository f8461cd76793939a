// internal/shelf/service_test.go
package shelf

import (
	"context"
	"testing"
)

type shelfKey struct {
	userID int64
	bookID int64
}

// fakeRepository keeps shelf entries in memory and records challenge
// recounts
type fakeRepository struct {
	entries  map[shelfKey]*Entry
	nextID   int64
	recounts []int64
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{entries: make(map[shelfKey]*Entry), nextID: 1}
}

func (f *fakeRepository) Upsert(ctx context.Context, entry *Entry) error {
	key := shelfKey{entry.UserID, entry.BookID}
	if existing, ok := f.entries[key]; ok {
		existing.Status = entry.Status
		existing.Progress = entry.Progress
		entry.ID = existing.ID
		return nil
	}
	entry.ID = f.nextID
	f.nextID++
	stored := *entry
	f.entries[key] = &stored
	return nil
}

func (f *fakeRepository) FindByUser(ctx context.Context, userID int64, status string) ([]Entry, error) {
	var list []Entry
	for _, e := range f.entries {
		if e.UserID == userID && (status == "" || e.Status == status) {
			list = append(list, *e)
		}
	}
	return list, nil
}

func (f *fakeRepository) FindReadEntries(ctx context.Context, userID int64) ([]Entry, error) {
	return f.FindByUser(ctx, userID, StatusRead)
}

func (f *fakeRepository) FindAll(ctx context.Context, userID int64) ([]Entry, error) {
	return f.FindByUser(ctx, userID, "")
}

func (f *fakeRepository) CountByUser(ctx context.Context, userID int64) (int, error) {
	list, _ := f.FindByUser(ctx, userID, "")
	return len(list), nil
}

func (f *fakeRepository) CountRead(ctx context.Context, userID int64) (int, error) {
	list, _ := f.FindByUser(ctx, userID, StatusRead)
	return len(list), nil
}

func (f *fakeRepository) Remove(ctx context.Context, userID, bookID int64) error {
	key := shelfKey{userID, bookID}
	if _, ok := f.entries[key]; !ok {
		return ErrEntryNotFound
	}
	delete(f.entries, key)
	return nil
}

func (f *fakeRepository) RecountChallenge(ctx context.Context, userID int64) error {
	f.recounts = append(f.recounts, userID)
	return nil
}

func TestUpsertAddsAndMoves(t *testing.T) {
	repo := newFakeRepository()
	service := NewService(repo)

	entry, err := service.Upsert(context.Background(), 1, &UpsertRequest{
		BookID: 5, Status: StatusWantToRead,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	firstID := entry.ID

	// Moving the same book to another status must reuse the entry
	entry, err = service.Upsert(context.Background(), 1, &UpsertRequest{
		BookID: 5, Status: StatusCurrentlyReading,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry.ID != firstID {
		t.Errorf("upsert created a second entry: id %d then %d", firstID, entry.ID)
	}
	if len(repo.entries) != 1 {
		t.Errorf("expected 1 entry, got %d", len(repo.entries))
	}
	if repo.entries[shelfKey{1, 5}].Status != StatusCurrentlyReading {
		t.Errorf("status not updated: %+v", repo.entries[shelfKey{1, 5}])
	}
}

func TestUpsertReadForcesFullProgress(t *testing.T) {
	repo := newFakeRepository()
	service := NewService(repo)

	progress := 40
	entry, err := service.Upsert(context.Background(), 1, &UpsertRequest{
		BookID: 5, Status: StatusRead, Progress: &progress,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry.Progress != 100 {
		t.Errorf("progress = %d, want 100 for a read book", entry.Progress)
	}
}

func TestUpsertRecountsChallenge(t *testing.T) {
	repo := newFakeRepository()
	service := NewService(repo)

	if _, err := service.Upsert(context.Background(), 7, &UpsertRequest{
		BookID: 5, Status: StatusRead,
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(repo.recounts) != 1 || repo.recounts[0] != 7 {
		t.Errorf("expected challenge recount for user 7, got %v", repo.recounts)
	}
}

func TestRemoveRecountsChallenge(t *testing.T) {
	repo := newFakeRepository()
	service := NewService(repo)

	if _, err := service.Upsert(context.Background(), 7, &UpsertRequest{
		BookID: 5, Status: StatusRead,
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := service.Remove(context.Background(), 7, 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.entries) != 0 {
		t.Error("entry not removed")
	}
	if len(repo.recounts) != 2 {
		t.Errorf("expected recount on remove, got %v", repo.recounts)
	}
}

func TestRemoveMissingEntry(t *testing.T) {
	service := NewService(newFakeRepository())

	if err := service.Remove(context.Background(), 1, 99); err != ErrEntryNotFound {
		t.Errorf("expected ErrEntryNotFound, got %v", err)
	}
}

func TestListEmptyShelf(t *testing.T) {
	service := NewService(newFakeRepository())

	entries, err := service.List(context.Background(), 1, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entries == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(entries) != 0 {
		t.Errorf("expected no entries, got %d", len(entries))
	}
}
