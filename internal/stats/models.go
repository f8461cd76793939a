// internal/stats/models.go
package stats

// GenreCount is one slice of a genre distribution
type GenreCount struct {
	GenreID int64  `db:"genre_id" json:"genre_id"`
	Name    string `db:"name" json:"name"`
	Count   int    `db:"count" json:"count"`
}

// MonthlyCount is the number of books finished in one month
type MonthlyCount struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

// UserStats summarizes a reader's activity
type UserStats struct {
	GenreDistribution []GenreCount   `json:"genre_distribution"`
	MonthlyReads      []MonthlyCount `json:"monthly_reads"`
	TotalShelved      int            `json:"total_shelved"`
	TotalRead         int            `json:"total_read"`
}

// AdminStats summarizes the whole catalog
type AdminStats struct {
	GenreDistribution []GenreCount `json:"genre_distribution"`
	TotalUsers        int          `json:"total_users"`
	TotalBooks        int          `json:"total_books"`
	PendingReviews    int          `json:"pending_reviews"`
}
