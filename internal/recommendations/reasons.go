// internal/recommendations/reasons.go
package recommendations

import (
	"fmt"
	"strings"
)

// buildReason explains a personalized match from the matched genre
// names, the book's rating, and the user's preferences. It is fully
// deterministic.
func buildReason(matchedGenres []string, rating float64, preferences []GenrePreference) string {
	if len(matchedGenres) == 0 {
		return fmt.Sprintf("Highly rated (%.1f⭐) and popular among readers", rating)
	}

	topMatched := matchedGenres[0]
	var preference *GenrePreference
	for i := range preferences {
		if preferences[i].GenreName == topMatched {
			preference = &preferences[i]
			break
		}
	}

	if preference == nil {
		return fmt.Sprintf("Great %s book with %.1f⭐ rating",
			strings.Join(matchedGenres, ", "), rating)
	}

	var reasons []string

	if len(matchedGenres) == 1 {
		noun := "books"
		if preference.Count == 1 {
			noun = "book"
		}
		reasons = append(reasons,
			fmt.Sprintf("You enjoyed %d %s %s", preference.Count, topMatched, noun))
	} else {
		reasons = append(reasons,
			fmt.Sprintf("Matches your taste in %s", strings.Join(matchedGenres[:2], " and ")))
	}

	if rating >= 4.5 {
		reasons = append(reasons, fmt.Sprintf("exceptional %.1f⭐ rating", rating))
	} else if rating >= 4.0 {
		reasons = append(reasons, fmt.Sprintf("%.1f⭐ rating", rating))
	}

	return strings.Join(reasons, " • ")
}

func popularReason(rating float64, totalRatings int) string {
	return fmt.Sprintf("Popular choice with %.1f⭐ rating from %d readers", rating, totalRatings)
}
