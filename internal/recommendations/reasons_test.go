// internal/recommendations/reasons_test.go
package recommendations

import (
	"testing"
)

func TestBuildReason(t *testing.T) {
	prefs := []GenrePreference{
		{GenreID: 1, GenreName: "Mystery", Count: 3, AverageRating: 4.5, Weight: 2.7},
		{GenreID: 2, GenreName: "Romance", Count: 1, AverageRating: 3.0, Weight: 0.6},
	}

	tests := []struct {
		name    string
		matched []string
		rating  float64
		prefs   []GenrePreference
		want    string
	}{
		{
			name:   "no matched genres",
			rating: 4.7,
			prefs:  prefs,
			want:   "Highly rated (4.7⭐) and popular among readers",
		},
		{
			name:    "single match plural",
			matched: []string{"Mystery"},
			rating:  3.8,
			prefs:   prefs,
			want:    "You enjoyed 3 Mystery books",
		},
		{
			name:    "single match singular",
			matched: []string{"Romance"},
			rating:  3.8,
			prefs:   prefs,
			want:    "You enjoyed 1 Romance book",
		},
		{
			name:    "single match with good rating",
			matched: []string{"Mystery"},
			rating:  4.2,
			prefs:   prefs,
			want:    "You enjoyed 3 Mystery books • 4.2⭐ rating",
		},
		{
			name:    "single match with exceptional rating",
			matched: []string{"Mystery"},
			rating:  4.8,
			prefs:   prefs,
			want:    "You enjoyed 3 Mystery books • exceptional 4.8⭐ rating",
		},
		{
			name:    "multiple matches use first two",
			matched: []string{"Mystery", "Romance", "Sci-Fi"},
			rating:  3.9,
			prefs:   prefs,
			want:    "Matches your taste in Mystery and Romance",
		},
		{
			name:    "multiple matches with exceptional rating",
			matched: []string{"Mystery", "Romance"},
			rating:  4.5,
			prefs:   prefs,
			want:    "Matches your taste in Mystery and Romance • exceptional 4.5⭐ rating",
		},
		{
			name:    "matched genre without a preference entry",
			matched: []string{"Horror", "Thriller"},
			rating:  4.1,
			prefs:   prefs,
			want:    "Great Horror, Thriller book with 4.1⭐ rating",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := buildReason(tt.matched, tt.rating, tt.prefs)
			if got != tt.want {
				t.Errorf("buildReason() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPopularReason(t *testing.T) {
	got := popularReason(4.25, 130)
	want := "Popular choice with 4.2⭐ rating from 130 readers"
	if got != want {
		t.Errorf("popularReason() = %q, want %q", got, want)
	}
}
