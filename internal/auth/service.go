// internal/auth/service.go
// Service layer contains all business logic for authentication.

package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"golang.org/x/crypto/bcrypt"

	"github.com/bookwormapp/bookworm-backend/internal/common/utils"
)

// Common errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenRevoked       = errors.New("token revoked")
)

// Service interface
type Service interface {
	Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*AuthResponse, error)
	Logout(ctx context.Context, accessToken, refreshToken string) error
	ValidateToken(ctx context.Context, token string) (*utils.JWTClaims, error)
	GetUserByID(ctx context.Context, userID int64) (*User, error)
}

// Config holds service configuration
type Config struct {
	JWTSecret          string
	AccessTokenExpiry  time.Duration
	RefreshTokenExpiry time.Duration
	BCryptCost         int
}

// service implementation
type service struct {
	repo   Repository
	redis  *redis.Client
	config *Config
}

// NewService creates a new auth service
// The Redis client is optional; without it refresh tokens live only in
// Postgres and logout cannot blacklist outstanding access tokens.
func NewService(repo Repository, redisClient *redis.Client, config *Config) Service {
	return &service{
		repo:   repo,
		redis:  redisClient,
		config: config,
	}
}

// Register creates a new user account and signs it in
func (s *service) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if taken, err := s.repo.IsEmailTaken(ctx, email); err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	} else if taken {
		return nil, ErrEmailAlreadyExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.config.BCryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: string(hashedPassword),
		Role:         "user",
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, user)
}

// Login verifies credentials and issues a token pair
func (s *service) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issueTokens(ctx, user)
}

// RefreshToken exchanges a valid refresh token for a new token pair
func (s *service) RefreshToken(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	claims, err := utils.ValidateJWT(refreshToken, s.config.JWTSecret)
	if err != nil {
		return nil, ErrInvalidToken
	}

	if claims.Type != "refresh" {
		return nil, ErrInvalidToken
	}

	// The token must still be on record; a logged-out token is refused
	session, err := s.repo.GetSessionByRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	if time.Now().After(session.ExpiresAt) {
		_ = s.repo.DeleteSessionByRefreshToken(ctx, refreshToken)
		return nil, ErrInvalidToken
	}

	user, err := s.repo.GetUserByID(ctx, session.UserID)
	if err != nil {
		return nil, err
	}

	// Rotate: old refresh token is revoked before a new pair is issued
	if err := s.repo.DeleteSessionByRefreshToken(ctx, refreshToken); err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, user)
}

// Logout revokes the refresh token and blacklists the access token
func (s *service) Logout(ctx context.Context, accessToken, refreshToken string) error {
	if refreshToken != "" {
		if err := s.repo.DeleteSessionByRefreshToken(ctx, refreshToken); err != nil {
			return err
		}
	}

	// Blacklist the access token in Redis until it would have expired
	if s.redis != nil && accessToken != "" {
		claims, err := utils.ValidateJWT(accessToken, s.config.JWTSecret)
		if err == nil {
			ttl := time.Until(time.Unix(claims.ExpiresAt, 0))
			if ttl > 0 {
				if err := s.redis.Set(ctx, blacklistKey(accessToken), "1", ttl).Err(); err != nil {
					return fmt.Errorf("failed to blacklist token: %w", err)
				}
			}
		}
	}

	return nil
}

// ValidateToken checks signature, expiry and the logout blacklist
func (s *service) ValidateToken(ctx context.Context, token string) (*utils.JWTClaims, error) {
	claims, err := utils.ValidateJWT(token, s.config.JWTSecret)
	if err != nil {
		return nil, ErrInvalidToken
	}

	if s.redis != nil {
		exists, err := s.redis.Exists(ctx, blacklistKey(token)).Result()
		if err == nil && exists > 0 {
			return nil, ErrTokenRevoked
		}
	}

	return claims, nil
}

// GetUserByID fetches a user for authenticated requests
func (s *service) GetUserByID(ctx context.Context, userID int64) (*User, error) {
	return s.repo.GetUserByID(ctx, userID)
}

// issueTokens creates and records an access/refresh pair for a user
func (s *service) issueTokens(ctx context.Context, user *User) (*AuthResponse, error) {
	now := time.Now()

	accessClaims := &utils.JWTClaims{
		UserID:    user.ID,
		Email:     user.Email,
		Role:      user.Role,
		Type:      "access",
		ExpiresAt: now.Add(s.config.AccessTokenExpiry).Unix(),
		IssuedAt:  now.Unix(),
		NotBefore: now.Unix(),
		Issuer:    "bookworm-api",
		Subject:   fmt.Sprintf("%d", user.ID),
	}

	accessToken, err := utils.GenerateJWT(accessClaims, s.config.JWTSecret)
	if err != nil {
		return nil, err
	}

	refreshClaims := &utils.JWTClaims{
		UserID:    user.ID,
		Email:     user.Email,
		Role:      user.Role,
		Type:      "refresh",
		ExpiresAt: now.Add(s.config.RefreshTokenExpiry).Unix(),
		IssuedAt:  now.Unix(),
		NotBefore: now.Unix(),
		Issuer:    "bookworm-api",
		Subject:   fmt.Sprintf("%d", user.ID),
	}

	refreshToken, err := utils.GenerateJWT(refreshClaims, s.config.JWTSecret)
	if err != nil {
		return nil, err
	}

	session := &Session{
		UserID:       user.ID,
		RefreshToken: refreshToken,
		ExpiresAt:    now.Add(s.config.RefreshTokenExpiry),
	}
	if err := s.repo.CreateSession(ctx, session); err != nil {
		return nil, err
	}

	return &AuthResponse{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.config.AccessTokenExpiry.Seconds()),
	}, nil
}

func blacklistKey(token string) string {
	return "auth:blacklist:" + token
}
