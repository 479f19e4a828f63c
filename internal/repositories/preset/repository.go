// Package preset stores shared presets behind short ids
package preset

import (
	"context"
	"time"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=presetmock github.com/KirkDiggler/deck-api/internal/repositories/preset Repository

// DefaultTTL is how long a shared preset lives when no TTL is given
const DefaultTTL = 30 * 24 * time.Hour

// SharedPreset is a stored preset in URL text form
type SharedPreset struct {
	ID string `json:"id"`

	// Text is the URL-format encoded preset
	Text string `json:"text"`

	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// CreateInput contains parameters for storing a preset
type CreateInput struct {
	ID   string
	Text string
	TTL  time.Duration
}

// CreateOutput contains the stored preset
type CreateOutput struct {
	Preset *SharedPreset
}

// GetInput contains parameters for retrieving a preset
type GetInput struct {
	ID string
}

// GetOutput contains the retrieved preset
type GetOutput struct {
	Preset *SharedPreset
}

// DeleteInput contains parameters for deleting a preset
type DeleteInput struct {
	ID string
}

// DeleteOutput is returned by Delete
type DeleteOutput struct{}

// Repository defines storage operations for shared presets
type Repository interface {
	// Create stores a preset; an existing id is rejected with AlreadyExists
	Create(ctx context.Context, input *CreateInput) (*CreateOutput, error)

	// Get retrieves a preset by id
	Get(ctx context.Context, input *GetInput) (*GetOutput, error)

	// Delete removes a preset
	Delete(ctx context.Context, input *DeleteInput) (*DeleteOutput, error)
}

const (
	errInputNil  = "input is required"
	errIDEmpty   = "preset ID is required"
	errTextEmpty = "preset text is required"
)
