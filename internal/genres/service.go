// internal/genres/service.go
package genres

import (
	"context"
	"errors"
	"regexp"
	"strings"
)

// Common errors
var (
	ErrGenreNotFound      = errors.New("genre not found")
	ErrGenreAlreadyExists = errors.New("genre already exists")
)

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// Service wraps genre business logic
type Service struct {
	repo Repository
}

// NewService creates a new genre service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, req *CreateGenreRequest) (*Genre, error) {
	name := strings.TrimSpace(req.Name)

	genre := &Genre{
		Name: name,
		Slug: Slugify(name),
	}
	if req.Description != "" {
		desc := req.Description
		genre.Description = &desc
	}

	if err := s.repo.Create(ctx, genre); err != nil {
		return nil, err
	}

	return genre, nil
}

func (s *Service) List(ctx context.Context) ([]Genre, error) {
	return s.repo.List(ctx)
}

func (s *Service) Update(ctx context.Context, id int64, req *UpdateGenreRequest) (*Genre, error) {
	genre, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		genre.Name = strings.TrimSpace(req.Name)
		genre.Slug = Slugify(genre.Name)
	}
	if req.Description != "" {
		desc := req.Description
		genre.Description = &desc
	}

	if err := s.repo.Update(ctx, genre); err != nil {
		return nil, err
	}

	return genre, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// Slugify converts a genre name to its URL slug
func Slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = slugPattern.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}
