// internal/genres/service_test.go
package genres

import (
	"testing"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple name", "Mystery", "mystery"},
		{"two words", "Science Fiction", "science-fiction"},
		{"punctuation", "Sci-Fi & Fantasy", "sci-fi-fantasy"},
		{"surrounding whitespace", "  Horror  ", "horror"},
		{"repeated separators", "True   Crime", "true-crime"},
		{"leading punctuation", "#1 Bestsellers!", "1-bestsellers"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Slugify(tt.in); got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
