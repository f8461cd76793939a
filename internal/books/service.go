// internal/books/service.go
package books

import (
	"context"
	"errors"
	"mime/multipart"
)

// Common errors
var (
	ErrBookNotFound = errors.New("book not found")
)

// Service wraps catalog business logic
type Service struct {
	repo          Repository
	uploadService *UploadService
}

// NewService creates a new book service
func NewService(repo Repository, uploadService *UploadService) *Service {
	return &Service{
		repo:          repo,
		uploadService: uploadService,
	}
}

func (s *Service) Create(ctx context.Context, req *CreateBookRequest) (*Book, error) {
	book := &Book{
		Title:       req.Title,
		Author:      req.Author,
		Description: req.Description,
		CoverImage:  req.CoverImage,
	}

	if err := s.repo.Create(ctx, book, req.GenreIDs); err != nil {
		return nil, err
	}

	return book, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Book, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, query string, genreID int64, page, limit int) (*ListResponse, error) {
	offset := (page - 1) * limit
	filter := &ListFilter{
		Query:   query,
		GenreID: genreID,
		Limit:   limit,
		Offset:  offset,
	}

	list, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &ListResponse{
		Books: list,
		Pagination: PaginationMeta{
			Page:    page,
			Limit:   limit,
			Total:   total,
			HasNext: offset+limit < total,
		},
	}, nil
}

func (s *Service) Update(ctx context.Context, id int64, req *UpdateBookRequest) (*Book, error) {
	book, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != "" {
		book.Title = req.Title
	}
	if req.Author != "" {
		book.Author = req.Author
	}
	if req.Description != "" {
		book.Description = req.Description
	}
	if req.CoverImage != "" {
		book.CoverImage = req.CoverImage
	}

	if err := s.repo.Update(ctx, book, req.GenreIDs); err != nil {
		return nil, err
	}

	return book, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// UploadCover stores a cover image and points the book at it
func (s *Service) UploadCover(ctx context.Context, id int64, file multipart.File, header *multipart.FileHeader) (string, error) {
	// Confirm the book exists before storing anything
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return "", err
	}

	url, err := s.uploadService.UploadFile(file, header)
	if err != nil {
		return "", err
	}

	if err := s.repo.UpdateCover(ctx, id, url); err != nil {
		return "", err
	}

	return url, nil
}
