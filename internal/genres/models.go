// internal/genres/models.go
package genres

import (
	"time"
)

// Genre is a catalog tag books can carry
type Genre struct {
	ID          int64     `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Slug        string    `db:"slug" json:"slug"`
	Description *string   `db:"description" json:"description,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// CreateGenreRequest is the payload for creating a genre
type CreateGenreRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=50"`
	Description string `json:"description,omitempty" validate:"max=500"`
}

// UpdateGenreRequest is the payload for updating a genre
type UpdateGenreRequest struct {
	Name        string `json:"name,omitempty" validate:"omitempty,min=2,max=50"`
	Description string `json:"description,omitempty" validate:"max=500"`
}
