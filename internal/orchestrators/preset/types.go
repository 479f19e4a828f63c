package preset

import (
	"time"

	"github.com/KirkDiggler/deck-api/internal/codec"
	"github.com/KirkDiggler/deck-api/internal/entities/deck"
)

// DecodeInput defines the request for decoding preset text
type DecodeInput struct {
	Text   string
	Format codec.Format
}

// DecodeOutput defines the response for decoding preset text
type DecodeOutput struct {
	Preset *deck.Preset
}

// EncodeInput defines the request for encoding a preset
type EncodeInput struct {
	Preset *deck.Preset
	Format codec.Format
}

// EncodeOutput defines the response for encoding a preset
type EncodeOutput struct {
	Text string
}

// ReconcileInput defines the request for replaying preset text against the
// current reference data
type ReconcileInput struct {
	Text   string
	Format codec.Format
}

// ReconcileOutput defines the response for reconciling a preset.
// Preset and Text are only set when the import succeeded.
type ReconcileOutput struct {
	Result deck.ImportResult
	Preset *deck.Preset
	// Text is the reconciled deck re-encoded in the input format
	Text string
}

// ShareInput defines the request for sharing a preset
type ShareInput struct {
	Text   string
	Format codec.Format
	// TTL overrides the configured share lifetime when positive
	TTL time.Duration
}

// ShareOutput defines the response for sharing a preset
type ShareOutput struct {
	ID        string
	Link      string
	ExpiresAt time.Time
}

// GetSharedInput defines the request for loading a shared preset
type GetSharedInput struct {
	ID string
}

// GetSharedOutput defines the response for loading a shared preset
type GetSharedOutput struct {
	ID        string
	Preset    *deck.Preset
	Text      string
	Link      string
	ExpiresAt time.Time
}
