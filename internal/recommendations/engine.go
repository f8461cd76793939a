// internal/recommendations/engine.go
package recommendations

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/bookwormapp/bookworm-backend/internal/books"
)

const (
	// coldStartMinShelfEntries is the personalization floor: users
	// with fewer total shelf entries get popularity-ranked results.
	// Changing this changes product behavior, not just implementation.
	coldStartMinShelfEntries = 3

	// fallbackMinRatingCount keeps barely-rated books out of the
	// popularity fallback.
	fallbackMinRatingCount = 5

	// topGenreCount is how many preferred genres drive the candidate
	// query.
	topGenreCount = 3
)

// Engine produces ranked, explained book recommendations. Every call
// recomputes preferences and candidates from current data; there is no
// caching and no shared mutable state between calls.
type Engine struct {
	shelves ShelfStore
	reviews ReviewStore
	catalog BookStore
}

// NewEngine creates a recommendation engine over the given stores
func NewEngine(shelves ShelfStore, reviews ReviewStore, catalog BookStore) *Engine {
	return &Engine{
		shelves: shelves,
		reviews: reviews,
		catalog: catalog,
	}
}

// Generate returns up to opts.Limit recommendations for the user,
// sorted descending by score. New users fall back to a popularity
// ranking; an empty catalog yields an empty list, not an error.
func (e *Engine) Generate(ctx context.Context, userID int64, opts Options) ([]RecommendationResult, error) {
	start := time.Now()

	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	minRating := opts.MinRating
	if minRating <= 0 {
		minRating = DefaultMinRating
	}

	// Exclude everything already on the shelf, any status
	entries, err := e.shelves.FindAll(ctx, userID)
	if err != nil {
		return nil, err
	}

	excludeIDs := make([]int64, 0, len(entries)+len(opts.ExcludeBookIDs))
	for _, entry := range entries {
		excludeIDs = append(excludeIDs, entry.BookID)
	}
	excludeIDs = append(excludeIDs, opts.ExcludeBookIDs...)

	preferences, err := e.analyzePreferences(ctx, userID)
	if err != nil {
		return nil, err
	}

	if len(preferences) == 0 || len(entries) < coldStartMinShelfEntries {
		results, err := e.fallback(ctx, excludeIDs, limit, minRating)
		if err != nil {
			return nil, err
		}
		observeRequest("fallback", len(results), time.Since(start))
		return results, nil
	}

	results, err := e.personalized(ctx, preferences, excludeIDs, limit, minRating)
	if err != nil {
		return nil, err
	}
	observeRequest("personalized", len(results), time.Since(start))
	return results, nil
}

// Quick returns books only, without scores or reasons
func (e *Engine) Quick(ctx context.Context, userID int64, limit int) ([]books.Book, error) {
	if limit <= 0 {
		limit = QuickLimit
	}

	results, err := e.Generate(ctx, userID, Options{Limit: limit})
	if err != nil {
		return nil, err
	}

	list := make([]books.Book, len(results))
	for i, rec := range results {
		list[i] = rec.Book
	}
	return list, nil
}

func (e *Engine) personalized(ctx context.Context, preferences []GenrePreference, excludeIDs []int64, limit int, minRating float64) ([]RecommendationResult, error) {
	topGenres := preferences
	if len(topGenres) > topGenreCount {
		topGenres = topGenres[:topGenreCount]
	}

	genreIDs := make([]int64, len(topGenres))
	for i, pref := range topGenres {
		genreIDs[i] = pref.GenreID
	}

	// Over-fetch for scoring headroom
	candidates, err := e.catalog.FindCandidates(ctx, &books.CandidateFilter{
		ExcludeIDs:   excludeIDs,
		GenreIDs:     genreIDs,
		MinAvgRating: minRating,
		Limit:        limit * 2,
	})
	if err != nil {
		return nil, err
	}

	prefByGenre := make(map[int64]GenrePreference, len(preferences))
	for _, pref := range preferences {
		prefByGenre[pref.GenreID] = pref
	}

	results := make([]RecommendationResult, 0, len(candidates))
	for _, book := range candidates {
		var score float64
		var matchedGenres []string

		for _, genre := range book.Genres {
			if pref, ok := prefByGenre[genre.ID]; ok {
				score += pref.Weight
				matchedGenres = append(matchedGenres, genre.Name)
			}
		}

		// Rating boost, capped at 2.0 for a perfect 5.0
		score += (book.AvgRating / 5) * 2

		// Popularity boost with diminishing returns, capped at 1.0
		score += math.Min(float64(book.TotalRatings)/100, 1)

		results = append(results, RecommendationResult{
			Book:   book,
			Score:  score,
			Reason: buildReason(matchedGenres, book.AvgRating, preferences),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

func (e *Engine) fallback(ctx context.Context, excludeIDs []int64, limit int, minRating float64) ([]RecommendationResult, error) {
	popular, err := e.catalog.FindCandidates(ctx, &books.CandidateFilter{
		ExcludeIDs:        excludeIDs,
		MinAvgRating:      minRating,
		MinRatingCount:    fallbackMinRatingCount,
		OrderByPopularity: true,
		Limit:             limit,
	})
	if err != nil {
		return nil, err
	}

	results := make([]RecommendationResult, len(popular))
	for i, book := range popular {
		results[i] = RecommendationResult{
			Book:   book,
			Score:  book.AvgRating + float64(book.TotalRatings)/100,
			Reason: popularReason(book.AvgRating, book.TotalRatings),
		}
	}
	return results, nil
}
