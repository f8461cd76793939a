// internal/users/models.go
package users

import (
	"time"
)

// Profile is the user-facing account view
type Profile struct {
	ID               int64     `db:"id" json:"id"`
	Name             string    `db:"name" json:"name"`
	Email            string    `db:"email" json:"email"`
	Role             string    `db:"role" json:"role"`
	Image            *string   `db:"image" json:"image"`
	ChallengeYear    *int      `db:"challenge_year" json:"challenge_year"`
	ChallengeGoal    *int      `db:"challenge_goal" json:"challenge_goal"`
	ChallengeCurrent int       `db:"challenge_current" json:"challenge_current"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time `db:"updated_at" json:"updated_at"`
}

// ReadingChallenge is a yearly reading goal. Current is recounted
// from read shelf entries and never set by the client.
type ReadingChallenge struct {
	Year    *int `json:"year"`
	Goal    *int `json:"goal"`
	Current int  `json:"current"`
}

// UpdateProfileRequest edits display fields. Email is immutable.
type UpdateProfileRequest struct {
	Name  string  `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Image *string `json:"image,omitempty"`
}

// ChangePasswordRequest rotates the password after verifying the
// current one.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

// SetChallengeRequest sets the yearly goal
type SetChallengeRequest struct {
	Year int `json:"year" validate:"required,gte=2000,lte=2100"`
	Goal int `json:"goal" validate:"required,gte=1,lte=1000"`
}

// UpdateRoleRequest changes a user's role (admin only)
type UpdateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=user admin"`
}

// ListResponse is a page of user profiles
type ListResponse struct {
	Users []Profile `json:"users"`
	Total int       `json:"total"`
	Page  int       `json:"page"`
	Limit int       `json:"limit"`
}
