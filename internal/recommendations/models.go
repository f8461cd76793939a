// internal/recommendations/models.go
package recommendations

import (
	"github.com/bookwormapp/bookworm-backend/internal/books"
)

// Defaults for a recommendation request
const (
	DefaultLimit     = 18
	DefaultMinRating = 3.5
	QuickLimit       = 12
)

// GenrePreference is a user's derived affinity for one genre. It is
// recomputed fresh on every request and never persisted.
type GenrePreference struct {
	GenreID       int64   `json:"genre_id"`
	GenreName     string  `json:"genre_name"`
	Count         int     `json:"count"`
	AverageRating float64 `json:"average_rating"`
	Weight        float64 `json:"weight"`
}

// RecommendationResult is one ranked, explained recommendation
type RecommendationResult struct {
	Book   books.Book `json:"book"`
	Score  float64    `json:"score"`
	Reason string     `json:"reason"`
}

// Options tune a recommendation request. Zero values fall back to the
// defaults above.
type Options struct {
	Limit          int
	ExcludeBookIDs []int64
	MinRating      float64
}
