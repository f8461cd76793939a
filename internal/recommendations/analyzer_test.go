// internal/recommendations/analyzer_test.go
package recommendations

import (
	"context"
	"testing"

	"github.com/bookwormapp/bookworm-backend/internal/books"
	"github.com/bookwormapp/bookworm-backend/internal/reviews"
	"github.com/bookwormapp/bookworm-backend/internal/shelf"
)

func TestAnalyzePreferencesWeightFormula(t *testing.T) {
	// Two Sci-Fi reads rated 5 and 3: count 2, average 4.0, weight 1.6
	shelves := &fakeShelfStore{entries: []shelf.Entry{
		mkEntry(shelf.StatusRead, mkBook(1, "A", 4.2, 10, scifi)),
		mkEntry(shelf.StatusRead, mkBook(2, "B", 4.4, 10, scifi)),
	}}
	revs := &fakeReviewStore{ratings: []reviews.UserRating{
		{BookID: 1, Rating: 5},
		{BookID: 2, Rating: 3},
	}}
	engine := newTestEngine(shelves, revs, nil)

	prefs, err := engine.analyzePreferences(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(prefs) != 1 {
		t.Fatalf("expected 1 preference, got %d", len(prefs))
	}

	p := prefs[0]
	if p.GenreID != scifi.ID || p.GenreName != "Sci-Fi" {
		t.Errorf("wrong genre: %+v", p)
	}
	if p.Count != 2 {
		t.Errorf("count = %d, want 2", p.Count)
	}
	if p.AverageRating != 4.0 {
		t.Errorf("average rating = %v, want 4.0", p.AverageRating)
	}
	if p.Weight != 1.6 {
		t.Errorf("weight = %v, want 1.6", p.Weight)
	}
}

func TestAnalyzePreferencesEffectiveRating(t *testing.T) {
	tests := []struct {
		name        string
		book        books.Book
		ratings     []reviews.UserRating
		wantAverage float64
	}{
		{
			name:        "user review wins over catalog average",
			book:        mkBook(1, "A", 2.0, 10, mystery),
			ratings:     []reviews.UserRating{{BookID: 1, Rating: 5}},
			wantAverage: 5.0,
		},
		{
			name:        "catalog average when no review",
			book:        mkBook(1, "A", 4.2, 10, mystery),
			wantAverage: 4.2,
		},
		{
			name:        "neutral default when nothing is known",
			book:        mkBook(1, "A", 0, 0, mystery),
			wantAverage: 3.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shelves := &fakeShelfStore{entries: []shelf.Entry{
				mkEntry(shelf.StatusRead, tt.book),
			}}
			engine := newTestEngine(shelves, &fakeReviewStore{ratings: tt.ratings}, nil)

			prefs, err := engine.analyzePreferences(context.Background(), 1)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(prefs) != 1 {
				t.Fatalf("expected 1 preference, got %d", len(prefs))
			}
			if prefs[0].AverageRating != tt.wantAverage {
				t.Errorf("average rating = %v, want %v", prefs[0].AverageRating, tt.wantAverage)
			}
		})
	}
}

func TestAnalyzePreferencesSkipsBooksWithoutGenres(t *testing.T) {
	noGenres := mkBook(1, "Untagged", 4.5, 10)
	unresolved := shelf.Entry{BookID: 2, Status: shelf.StatusRead, Book: nil}

	shelves := &fakeShelfStore{entries: []shelf.Entry{
		mkEntry(shelf.StatusRead, noGenres),
		unresolved,
		mkEntry(shelf.StatusRead, mkBook(3, "Tagged", 4.0, 10, romance)),
	}}
	engine := newTestEngine(shelves, nil, nil)

	prefs, err := engine.analyzePreferences(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(prefs) != 1 || prefs[0].GenreID != romance.ID {
		t.Fatalf("expected only the Romance preference, got %+v", prefs)
	}
}

func TestAnalyzePreferencesSortedByWeight(t *testing.T) {
	// Three genres with distinct weights via read counts
	shelves := &fakeShelfStore{entries: []shelf.Entry{
		mkEntry(shelf.StatusRead, mkBook(1, "A", 4.0, 10, mystery)),
		mkEntry(shelf.StatusRead, mkBook(2, "B", 4.0, 10, mystery)),
		mkEntry(shelf.StatusRead, mkBook(3, "C", 4.0, 10, mystery)),
		mkEntry(shelf.StatusRead, mkBook(4, "D", 4.0, 10, romance)),
		mkEntry(shelf.StatusRead, mkBook(5, "E", 4.0, 10, romance, scifi)),
	}}
	engine := newTestEngine(shelves, nil, nil)

	prefs, err := engine.analyzePreferences(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(prefs) != 3 {
		t.Fatalf("expected 3 preferences, got %d", len(prefs))
	}
	for i := 1; i < len(prefs); i++ {
		if prefs[i-1].Weight < prefs[i].Weight {
			t.Errorf("preferences not sorted: weight[%d]=%v < weight[%d]=%v",
				i-1, prefs[i-1].Weight, i, prefs[i].Weight)
		}
	}
	if prefs[0].GenreID != mystery.ID {
		t.Errorf("expected Mystery first, got %+v", prefs[0])
	}
}

func TestAnalyzePreferencesEmptyHistory(t *testing.T) {
	engine := newTestEngine(&fakeShelfStore{}, nil, nil)

	prefs, err := engine.analyzePreferences(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(prefs) != 0 {
		t.Fatalf("expected no preferences, got %+v", prefs)
	}
}
