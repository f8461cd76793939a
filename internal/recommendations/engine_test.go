// internal/recommendations/engine_test.go
package recommendations

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"

	"github.com/bookwormapp/bookworm-backend/internal/books"
	"github.com/bookwormapp/bookworm-backend/internal/reviews"
	"github.com/bookwormapp/bookworm-backend/internal/shelf"
)

// fakeShelfStore serves canned shelf entries
type fakeShelfStore struct {
	entries []shelf.Entry
	err     error
}

func (f *fakeShelfStore) FindReadEntries(ctx context.Context, userID int64) ([]shelf.Entry, error) {
	if f.err != nil {
		return nil, f.err
	}
	var read []shelf.Entry
	for _, e := range f.entries {
		if e.Status == shelf.StatusRead {
			read = append(read, e)
		}
	}
	return read, nil
}

func (f *fakeShelfStore) FindAll(ctx context.Context, userID int64) ([]shelf.Entry, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.entries, nil
}

// fakeReviewStore serves canned approved ratings
type fakeReviewStore struct {
	ratings []reviews.UserRating
	err     error
}

func (f *fakeReviewStore) FindApprovedByUser(ctx context.Context, userID int64) ([]reviews.UserRating, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.ratings, nil
}

// fakeBookStore applies CandidateFilter semantics in memory
type fakeBookStore struct {
	catalog    []books.Book
	err        error
	lastFilter *books.CandidateFilter
}

func (f *fakeBookStore) FindCandidates(ctx context.Context, filter *books.CandidateFilter) ([]books.Book, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.lastFilter = filter

	excluded := make(map[int64]bool, len(filter.ExcludeIDs))
	for _, id := range filter.ExcludeIDs {
		excluded[id] = true
	}
	wantGenre := make(map[int64]bool, len(filter.GenreIDs))
	for _, id := range filter.GenreIDs {
		wantGenre[id] = true
	}

	var out []books.Book
	for _, b := range f.catalog {
		if excluded[b.ID] {
			continue
		}
		if b.AvgRating < filter.MinAvgRating {
			continue
		}
		if b.TotalRatings < filter.MinRatingCount {
			continue
		}
		if len(wantGenre) > 0 {
			matched := false
			for _, g := range b.Genres {
				if wantGenre[g.ID] {
					matched = true
					break
				}
			}
			if !matched {
				continue
			}
		}
		out = append(out, b)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if filter.OrderByPopularity {
			if out[i].TotalRatings != out[j].TotalRatings {
				return out[i].TotalRatings > out[j].TotalRatings
			}
			return out[i].AvgRating > out[j].AvgRating
		}
		return out[i].AvgRating > out[j].AvgRating
	})

	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func mkBook(id int64, title string, avg float64, total int, genres ...books.GenreInfo) books.Book {
	if genres == nil {
		genres = []books.GenreInfo{}
	}
	return books.Book{
		ID:           id,
		Title:        title,
		Author:       "Author",
		AvgRating:    avg,
		TotalRatings: total,
		Genres:       genres,
	}
}

func mkEntry(status string, book books.Book) shelf.Entry {
	return shelf.Entry{BookID: book.ID, Status: status, Book: &book}
}

func newTestEngine(shelves *fakeShelfStore, revs *fakeReviewStore, catalog *fakeBookStore) *Engine {
	if shelves == nil {
		shelves = &fakeShelfStore{}
	}
	if revs == nil {
		revs = &fakeReviewStore{}
	}
	if catalog == nil {
		catalog = &fakeBookStore{}
	}
	return NewEngine(shelves, revs, catalog)
}

var (
	mystery = books.GenreInfo{ID: 1, Name: "Mystery", Slug: "mystery"}
	romance = books.GenreInfo{ID: 2, Name: "Romance", Slug: "romance"}
	scifi   = books.GenreInfo{ID: 3, Name: "Sci-Fi", Slug: "sci-fi"}
)

func TestGenerateEmptyCatalogNewUser(t *testing.T) {
	// No shelf entries and no book meets the popularity floor
	engine := newTestEngine(nil, nil, &fakeBookStore{
		catalog: []books.Book{mkBook(1, "Obscure", 4.9, 2, mystery)},
	})

	results, err := engine.Generate(context.Background(), 1, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("expected empty result, got %d", len(results))
	}
}

func TestGenerateColdStartFallback(t *testing.T) {
	shelved := mkBook(10, "Shelved", 4.6, 300, mystery)
	popular := mkBook(11, "Popular", 4.2, 250, romance)
	lessPopular := mkBook(12, "Less Popular", 4.8, 50, scifi)
	obscure := mkBook(13, "Obscure", 4.9, 3, scifi)

	shelves := &fakeShelfStore{entries: []shelf.Entry{
		mkEntry(shelf.StatusWantToRead, shelved),
	}}
	catalog := &fakeBookStore{catalog: []books.Book{shelved, popular, lessPopular, obscure}}
	engine := newTestEngine(shelves, nil, catalog)

	results, err := engine.Generate(context.Background(), 1, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	// Popularity order: total ratings first
	if results[0].Book.ID != popular.ID {
		t.Errorf("expected book %d first, got %d", popular.ID, results[0].Book.ID)
	}

	for _, rec := range results {
		if rec.Book.ID == shelved.ID {
			t.Errorf("shelved book %d leaked into recommendations", shelved.ID)
		}
		want := rec.Book.AvgRating + float64(rec.Book.TotalRatings)/100
		if rec.Score != want {
			t.Errorf("book %d: score = %v, want %v", rec.Book.ID, rec.Score, want)
		}
		if !strings.HasPrefix(rec.Reason, "Popular choice with") {
			t.Errorf("book %d: fallback reason = %q", rec.Book.ID, rec.Reason)
		}
	}
}

func TestGenerateColdStartBelowShelfFloor(t *testing.T) {
	// Two entries read and rated, but still under the personalization
	// floor of three total shelf entries
	read := mkBook(20, "Read", 4.0, 100, mystery)
	shelves := &fakeShelfStore{entries: []shelf.Entry{
		mkEntry(shelf.StatusRead, read),
		mkEntry(shelf.StatusRead, mkBook(21, "Also Read", 4.1, 80, mystery)),
	}}
	catalog := &fakeBookStore{catalog: []books.Book{
		mkBook(22, "Candidate", 4.5, 120, mystery),
	}}
	engine := newTestEngine(shelves, nil, catalog)

	results, err := engine.Generate(context.Background(), 1, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, rec := range results {
		if !strings.HasPrefix(rec.Reason, "Popular choice with") {
			t.Errorf("expected fallback-only results, got reason %q", rec.Reason)
		}
	}
}

func TestGeneratePersonalizedHappyPath(t *testing.T) {
	// 3 Mystery reads averaging 4.5, 2 Romance reads averaging 3.0
	readBooks := []books.Book{
		mkBook(1, "Mystery One", 4.0, 50, mystery),
		mkBook(2, "Mystery Two", 4.0, 60, mystery),
		mkBook(3, "Mystery Three", 4.0, 70, mystery),
		mkBook(4, "Romance One", 3.5, 40, romance),
		mkBook(5, "Romance Two", 3.5, 30, romance),
	}
	var entries []shelf.Entry
	for _, b := range readBooks {
		entries = append(entries, mkEntry(shelf.StatusRead, b))
	}

	revs := &fakeReviewStore{ratings: []reviews.UserRating{
		{BookID: 1, Rating: 5}, {BookID: 2, Rating: 4}, {BookID: 3, Rating: 5},
		{BookID: 4, Rating: 3}, {BookID: 5, Rating: 3},
	}}

	target := mkBook(100, "Unread Mystery", 4.8, 200, mystery)
	filler := mkBook(101, "Other Mystery", 3.6, 20, mystery)
	catalog := &fakeBookStore{catalog: []books.Book{target, filler}}

	engine := newTestEngine(&fakeShelfStore{entries: entries}, revs, catalog)

	results, err := engine.Generate(context.Background(), 7, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) == 0 {
		t.Fatal("expected personalized results")
	}

	if results[0].Book.ID != target.ID {
		t.Fatalf("expected book %d at the top, got %d", target.ID, results[0].Book.ID)
	}
	if !strings.Contains(results[0].Reason, "Mystery") {
		t.Errorf("reason %q does not mention Mystery", results[0].Reason)
	}
	if !strings.Contains(results[0].Reason, "exceptional") {
		t.Errorf("reason %q does not call out the exceptional rating", results[0].Reason)
	}

	// Score breakdown for the top book:
	// Mystery weight = 3 * ((5+4+5)/3) / 5 = 2.8
	// rating boost = 4.8/5*2 = 1.92, popularity boost = min(200/100, 1) = 1
	want := 2.8 + 1.92 + 1.0
	if diff := results[0].Score - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("score = %v, want %v", results[0].Score, want)
	}

	// Descending by score
	for i := 1; i < len(results); i++ {
		if results[i-1].Score < results[i].Score {
			t.Errorf("results not sorted: score[%d]=%v < score[%d]=%v",
				i-1, results[i-1].Score, i, results[i].Score)
		}
	}
}

func TestGenerateExclusionAndRatingFloor(t *testing.T) {
	read := []books.Book{
		mkBook(1, "A", 4.0, 10, scifi),
		mkBook(2, "B", 4.0, 10, scifi),
		mkBook(3, "C", 4.0, 10, scifi),
	}
	var entries []shelf.Entry
	for _, b := range read {
		entries = append(entries, mkEntry(shelf.StatusRead, b))
	}

	lowRated := mkBook(50, "Low", 3.0, 500, scifi)
	excluded := mkBook(51, "Excluded", 4.9, 500, scifi)
	good := mkBook(52, "Good", 4.4, 90, scifi)
	catalog := &fakeBookStore{catalog: []books.Book{lowRated, excluded, good}}

	engine := newTestEngine(&fakeShelfStore{entries: entries}, nil, catalog)

	results, err := engine.Generate(context.Background(), 1, Options{
		ExcludeBookIDs: []int64{excluded.ID},
		MinRating:      4.2,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	shelved := map[int64]bool{1: true, 2: true, 3: true}
	for _, rec := range results {
		if shelved[rec.Book.ID] || rec.Book.ID == excluded.ID {
			t.Errorf("excluded book %d returned", rec.Book.ID)
		}
		if rec.Book.AvgRating < 4.2 {
			t.Errorf("book %d below rating floor: %v", rec.Book.ID, rec.Book.AvgRating)
		}
	}
	if len(results) != 1 || results[0].Book.ID != good.ID {
		t.Fatalf("expected only book %d, got %+v", good.ID, results)
	}
}

func TestGenerateLimitTruncation(t *testing.T) {
	var entries []shelf.Entry
	for i := int64(1); i <= 3; i++ {
		entries = append(entries, mkEntry(shelf.StatusRead, mkBook(i, "Read", 4.0, 10, mystery)))
	}

	var catalog []books.Book
	for i := int64(100); i < 120; i++ {
		catalog = append(catalog, mkBook(i, "Candidate", 4.0, 50, mystery))
	}

	engine := newTestEngine(&fakeShelfStore{entries: entries}, nil, &fakeBookStore{catalog: catalog})

	results, err := engine.Generate(context.Background(), 1, Options{Limit: 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) > 5 {
		t.Errorf("limit exceeded: got %d results", len(results))
	}
}

func TestGenerateCandidateOverFetch(t *testing.T) {
	var entries []shelf.Entry
	for i := int64(1); i <= 3; i++ {
		entries = append(entries, mkEntry(shelf.StatusRead, mkBook(i, "Read", 4.0, 10, mystery)))
	}
	catalog := &fakeBookStore{catalog: []books.Book{mkBook(100, "X", 4.0, 50, mystery)}}

	engine := newTestEngine(&fakeShelfStore{entries: entries}, nil, catalog)

	if _, err := engine.Generate(context.Background(), 1, Options{Limit: 6}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if catalog.lastFilter.Limit != 12 {
		t.Errorf("candidate fetch limit = %d, want 12", catalog.lastFilter.Limit)
	}
	if catalog.lastFilter.MinAvgRating != DefaultMinRating {
		t.Errorf("min rating = %v, want %v", catalog.lastFilter.MinAvgRating, DefaultMinRating)
	}
}

func TestGenerateStoreErrorPropagates(t *testing.T) {
	storeErr := errors.New("connection refused")

	tests := []struct {
		name   string
		engine *Engine
	}{
		{
			name:   "shelf store",
			engine: newTestEngine(&fakeShelfStore{err: storeErr}, nil, nil),
		},
		{
			name: "review store",
			engine: newTestEngine(
				&fakeShelfStore{entries: []shelf.Entry{
					mkEntry(shelf.StatusRead, mkBook(1, "A", 4.0, 10, mystery)),
				}},
				&fakeReviewStore{err: storeErr},
				nil,
			),
		},
		{
			name: "book store",
			engine: newTestEngine(
				&fakeShelfStore{},
				&fakeReviewStore{},
				&fakeBookStore{err: storeErr},
			),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.engine.Generate(context.Background(), 1, Options{})
			if !errors.Is(err, storeErr) {
				t.Errorf("expected store error to propagate, got %v", err)
			}
		})
	}
}

func TestQuickReturnsBooksOnly(t *testing.T) {
	popular := mkBook(11, "Popular", 4.2, 250, romance)
	engine := newTestEngine(nil, nil, &fakeBookStore{catalog: []books.Book{popular}})

	list, err := engine.Quick(context.Background(), 1, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list) != 1 || list[0].ID != popular.ID {
		t.Fatalf("expected [%d], got %+v", popular.ID, list)
	}
}
