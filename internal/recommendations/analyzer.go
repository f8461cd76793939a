// internal/recommendations/analyzer.go
package recommendations

import (
	"context"
	"sort"

	"github.com/bookwormapp/bookworm-backend/internal/books"
)

// neutralRating is the midpoint of the 1-5 scale, used when a read
// book has neither a user review nor a catalog average.
const neutralRating = 3.0

type genreStat struct {
	name        string
	count       int
	totalRating float64
}

// analyzePreferences scans the user's read books and approved reviews
// and derives a per-genre affinity list, sorted descending by weight.
// Books with no resolved genres are skipped.
func (e *Engine) analyzePreferences(ctx context.Context, userID int64) ([]GenrePreference, error) {
	entries, err := e.shelves.FindReadEntries(ctx, userID)
	if err != nil {
		return nil, err
	}

	ratings, err := e.reviews.FindApprovedByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	ratingByBook := make(map[int64]int, len(ratings))
	for _, r := range ratings {
		ratingByBook[r.BookID] = r.Rating
	}

	stats := make(map[int64]*genreStat)
	for _, entry := range entries {
		if entry.Book == nil || len(entry.Book.Genres) == 0 {
			continue
		}

		rating := effectiveRating(ratingByBook, entry.Book)

		for _, genre := range entry.Book.Genres {
			stat, ok := stats[genre.ID]
			if !ok {
				stat = &genreStat{name: genre.Name}
				stats[genre.ID] = stat
			}
			stat.count++
			stat.totalRating += rating
		}
	}

	preferences := make([]GenrePreference, 0, len(stats))
	for genreID, stat := range stats {
		avg := stat.totalRating / float64(stat.count)
		preferences = append(preferences, GenrePreference{
			GenreID:       genreID,
			GenreName:     stat.name,
			Count:         stat.count,
			AverageRating: avg,
			// Weight = frequency * average rating (normalized)
			Weight: float64(stat.count) * avg / 5,
		})
	}

	sort.SliceStable(preferences, func(i, j int) bool {
		return preferences[i].Weight > preferences[j].Weight
	})

	return preferences, nil
}

// effectiveRating resolves a read book's rating with an explicit
// precedence chain: the user's own review, then the catalog average,
// then the neutral default.
func effectiveRating(ratingByBook map[int64]int, book *books.Book) float64 {
	if rating, ok := ratingByBook[book.ID]; ok {
		return float64(rating)
	}
	if book.AvgRating > 0 {
		return book.AvgRating
	}
	return neutralRating
}
