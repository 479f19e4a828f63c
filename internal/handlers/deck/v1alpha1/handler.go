// Package v1alpha1 handles the deck preset grpc service interface
package v1alpha1

import (
	"context"
	"time"

	"github.com/KirkDiggler/deck-api/internal/codec"
	"github.com/KirkDiggler/deck-api/internal/errors"
	"github.com/KirkDiggler/deck-api/internal/orchestrators/preset"
)

// HandlerConfig holds dependencies for the handler
type HandlerConfig struct {
	PresetService preset.Service
}

// Validate ensures all required dependencies are present
func (c *HandlerConfig) Validate() error {
	if c == nil || c.PresetService == nil {
		return errors.InvalidArgument("preset service is required")
	}
	return nil
}

// Handler implements PresetServiceServer
type Handler struct {
	presetService preset.Service
}

// NewHandler creates a new handler with the given configuration
func NewHandler(cfg *HandlerConfig) (*Handler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Handler{
		presetService: cfg.PresetService,
	}, nil
}

var _ PresetServiceServer = (*Handler)(nil)

// DecodePreset decodes preset text
func (h *Handler) DecodePreset(ctx context.Context, req *DecodePresetRequest) (*DecodePresetResponse, error) {
	if req.Text == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("text is required"))
	}
	format, err := codec.ParseFormat(req.Format)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	output, err := h.presetService.DecodePreset(ctx, &preset.DecodeInput{
		Text:   req.Text,
		Format: format,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &DecodePresetResponse{Preset: output.Preset}, nil
}

// EncodePreset encodes a preset
func (h *Handler) EncodePreset(ctx context.Context, req *EncodePresetRequest) (*EncodePresetResponse, error) {
	if req.Preset == nil {
		return nil, errors.ToGRPCError(errors.InvalidArgument("preset is required"))
	}
	format, err := codec.ParseFormat(req.Format)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	output, err := h.presetService.EncodePreset(ctx, &preset.EncodeInput{
		Preset: req.Preset,
		Format: format,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &EncodePresetResponse{Text: output.Text}, nil
}

// ReconcilePreset replays a preset against the current reference data.
// A failed import is a normal response with success set to false.
func (h *Handler) ReconcilePreset(ctx context.Context, req *ReconcilePresetRequest) (*ReconcilePresetResponse, error) {
	if req.Text == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("text is required"))
	}
	format, err := codec.ParseFormat(req.Format)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	output, err := h.presetService.ReconcilePreset(ctx, &preset.ReconcileInput{
		Text:   req.Text,
		Format: format,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &ReconcilePresetResponse{
		Success:       output.Result.Success,
		Message:       output.Result.Message,
		Substitutions: output.Result.Substitutions,
		Dropped:       output.Result.Dropped,
		Skipped:       output.Result.Skipped,
		Preset:        output.Preset,
		Text:          output.Text,
	}, nil
}

// SharePreset stores a preset under a short id
func (h *Handler) SharePreset(ctx context.Context, req *SharePresetRequest) (*SharePresetResponse, error) {
	if req.Text == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("text is required"))
	}
	if req.TTLSeconds < 0 {
		return nil, errors.ToGRPCError(errors.InvalidArgument("ttl_seconds must not be negative"))
	}
	format, err := codec.ParseFormat(req.Format)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	output, err := h.presetService.SharePreset(ctx, &preset.ShareInput{
		Text:   req.Text,
		Format: format,
		TTL:    time.Duration(req.TTLSeconds) * time.Second,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &SharePresetResponse{
		ID:        output.ID,
		Link:      output.Link,
		ExpiresAt: output.ExpiresAt,
	}, nil
}

// GetSharedPreset loads a shared preset
func (h *Handler) GetSharedPreset(ctx context.Context, req *GetSharedPresetRequest) (*GetSharedPresetResponse, error) {
	if req.ID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("id is required"))
	}

	output, err := h.presetService.GetSharedPreset(ctx, &preset.GetSharedInput{ID: req.ID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &GetSharedPresetResponse{
		ID:        output.ID,
		Preset:    output.Preset,
		Text:      output.Text,
		Link:      output.Link,
		ExpiresAt: output.ExpiresAt,
	}, nil
}
