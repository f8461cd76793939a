// internal/stats/service.go
package stats

import (
	"context"
	"time"
)

// monthsBack is how far the monthly reading chart looks back
const monthsBack = 6

// Service wraps the stats queries
type Service struct {
	repo Repository
	now  func() time.Time
}

// NewService creates a new stats service
func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

func (s *Service) UserStats(ctx context.Context, userID int64) (*UserStats, error) {
	dist, err := s.repo.GenreDistributionForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if dist == nil {
		dist = []GenreCount{}
	}

	now := s.now()
	since := startOfMonth(now).AddDate(0, -(monthsBack - 1), 0)

	counts, err := s.repo.MonthlyReadCounts(ctx, userID, since)
	if err != nil {
		return nil, err
	}

	// Zero-fill the last N months, oldest first, keyed by short name
	monthly := make([]MonthlyCount, 0, monthsBack)
	for i := monthsBack - 1; i >= 0; i-- {
		m := startOfMonth(now).AddDate(0, -i, 0)
		monthly = append(monthly, MonthlyCount{
			Month: m.Format("Jan"),
			Count: counts[m.Format("2006-01")],
		})
	}

	total, read, err := s.repo.ShelfCounts(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &UserStats{
		GenreDistribution: dist,
		MonthlyReads:      monthly,
		TotalShelved:      total,
		TotalRead:         read,
	}, nil
}

func (s *Service) AdminStats(ctx context.Context) (*AdminStats, error) {
	dist, err := s.repo.GenreDistributionCatalog(ctx)
	if err != nil {
		return nil, err
	}
	if dist == nil {
		dist = []GenreCount{}
	}

	users, books, pending, err := s.repo.CatalogTotals(ctx)
	if err != nil {
		return nil, err
	}

	return &AdminStats{
		GenreDistribution: dist,
		TotalUsers:        users,
		TotalBooks:        books,
		PendingReviews:    pending,
	}, nil
}

func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
