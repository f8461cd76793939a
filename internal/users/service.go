// internal/users/service.go
package users

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// Common errors
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrWrongPassword   = errors.New("current password is incorrect")
	ErrNothingToUpdate = errors.New("nothing to update")
)

// Service wraps account business logic
type Service struct {
	repo       Repository
	bcryptCost int
}

// NewService creates a new user service
func NewService(repo Repository, bcryptCost int) *Service {
	return &Service{repo: repo, bcryptCost: bcryptCost}
}

func (s *Service) GetProfile(ctx context.Context, userID int64) (*Profile, error) {
	return s.repo.GetByID(ctx, userID)
}

func (s *Service) UpdateProfile(ctx context.Context, userID int64, req *UpdateProfileRequest) (*Profile, error) {
	profile, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	name := profile.Name
	if req.Name != "" {
		name = req.Name
	}
	image := profile.Image
	if req.Image != nil {
		image = req.Image
	}

	if name == profile.Name && image == profile.Image {
		return nil, ErrNothingToUpdate
	}

	if err := s.repo.UpdateProfile(ctx, userID, name, image); err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, userID)
}

func (s *Service) ChangePassword(ctx context.Context, userID int64, req *ChangePasswordRequest) error {
	hash, err := s.repo.GetPasswordHash(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.CurrentPassword)); err != nil {
		return ErrWrongPassword
	}

	newHash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), s.bcryptCost)
	if err != nil {
		return err
	}

	return s.repo.UpdatePassword(ctx, userID, string(newHash))
}

func (s *Service) GetChallenge(ctx context.Context, userID int64) (*ReadingChallenge, error) {
	profile, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &ReadingChallenge{
		Year:    profile.ChallengeYear,
		Goal:    profile.ChallengeGoal,
		Current: profile.ChallengeCurrent,
	}, nil
}

func (s *Service) SetChallenge(ctx context.Context, userID int64, req *SetChallengeRequest) (*ReadingChallenge, error) {
	if err := s.repo.SetChallenge(ctx, userID, req.Year, req.Goal); err != nil {
		return nil, err
	}

	return s.GetChallenge(ctx, userID)
}

func (s *Service) List(ctx context.Context, page, limit int) (*ListResponse, error) {
	offset := (page - 1) * limit
	list, total, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []Profile{}
	}

	return &ListResponse{Users: list, Total: total, Page: page, Limit: limit}, nil
}

func (s *Service) UpdateRole(ctx context.Context, userID int64, role string) (*Profile, error) {
	if err := s.repo.UpdateRole(ctx, userID, role); err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, userID)
}
