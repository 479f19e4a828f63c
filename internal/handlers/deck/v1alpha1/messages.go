package v1alpha1

import (
	"time"

	"github.com/KirkDiggler/deck-api/internal/entities/deck"
)

// Messages travel as google.protobuf.Struct payloads; the json tags define
// their field names on the wire.

// DecodePresetRequest asks for preset text to be decoded
type DecodePresetRequest struct {
	Text   string `json:"text"`
	Format string `json:"format"`
}

// DecodePresetResponse carries the decoded preset
type DecodePresetResponse struct {
	Preset *deck.Preset `json:"preset"`
}

// EncodePresetRequest asks for a preset to be encoded
type EncodePresetRequest struct {
	Preset *deck.Preset `json:"preset"`
	Format string       `json:"format"`
}

// EncodePresetResponse carries the encoded text
type EncodePresetResponse struct {
	Text string `json:"text"`
}

// ReconcilePresetRequest asks for preset text to be replayed against the
// server's reference data
type ReconcilePresetRequest struct {
	Text   string `json:"text"`
	Format string `json:"format"`
}

// ReconcilePresetResponse reports the import outcome
type ReconcilePresetResponse struct {
	Success       bool              `json:"success"`
	Message       string            `json:"message"`
	Substitutions map[string]string `json:"substitutions,omitempty"`
	Dropped       []string          `json:"dropped,omitempty"`
	Skipped       []string          `json:"skipped,omitempty"`
	Preset        *deck.Preset      `json:"preset,omitempty"`
	Text          string            `json:"text,omitempty"`
}

// SharePresetRequest asks for a preset to be stored under a short id
type SharePresetRequest struct {
	Text       string `json:"text"`
	Format     string `json:"format"`
	TTLSeconds int64  `json:"ttl_seconds,omitempty"`
}

// SharePresetResponse carries the share id and link
type SharePresetResponse struct {
	ID        string    `json:"id"`
	Link      string    `json:"link"`
	ExpiresAt time.Time `json:"expires_at"`
}

// GetSharedPresetRequest asks for a shared preset
type GetSharedPresetRequest struct {
	ID string `json:"id"`
}

// GetSharedPresetResponse carries a shared preset
type GetSharedPresetResponse struct {
	ID        string       `json:"id"`
	Preset    *deck.Preset `json:"preset"`
	Text      string       `json:"text"`
	Link      string       `json:"link"`
	ExpiresAt time.Time    `json:"expires_at"`
}
