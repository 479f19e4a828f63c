// Package preset implements the preset orchestrator: stateless decode,
// encode and reconcile operations plus short-id sharing of URL presets.
package preset

//go:generate mockgen -destination=mock/mock_service.go -package=presetmock github.com/KirkDiggler/deck-api/internal/orchestrators/preset Service

import (
	"context"
	"log/slog"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/deck-api/internal/codec"
	"github.com/KirkDiggler/deck-api/internal/engine"
	"github.com/KirkDiggler/deck-api/internal/errors"
	"github.com/KirkDiggler/deck-api/internal/orchestrators/session"
	"github.com/KirkDiggler/deck-api/internal/pkg/idgen"
	"github.com/KirkDiggler/deck-api/internal/refdata"
	presetrepo "github.com/KirkDiggler/deck-api/internal/repositories/preset"
)

// maxShareAttempts bounds retries when a generated share id collides
const maxShareAttempts = 3

// Service defines the interface for preset operations
type Service interface {
	DecodePreset(ctx context.Context, input *DecodeInput) (*DecodeOutput, error)
	EncodePreset(ctx context.Context, input *EncodeInput) (*EncodeOutput, error)

	// ReconcilePreset imports the preset into a scratch deck and reports the
	// substitutions and drops drift caused
	ReconcilePreset(ctx context.Context, input *ReconcileInput) (*ReconcileOutput, error)

	SharePreset(ctx context.Context, input *ShareInput) (*ShareOutput, error)
	GetSharedPreset(ctx context.Context, input *GetSharedInput) (*GetSharedOutput, error)
}

// Config holds the dependencies for the preset orchestrator
type Config struct {
	Database    *refdata.Database
	Resolver    engine.SkillResolver
	Index       engine.AvailabilityIndex
	PresetRepo  presetrepo.Repository
	IDGenerator idgen.Generator

	// EventBus receives the events of every scratch deck; optional
	EventBus events.EventBus

	ReferenceLanguage string
	ShareBaseURL      string
	ShareTTL          time.Duration
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	if c.Database == nil {
		vb.RequiredField("Database")
	}
	if c.Resolver == nil {
		vb.RequiredField("Resolver")
	}
	if c.Index == nil {
		vb.RequiredField("Index")
	}
	if c.PresetRepo == nil {
		vb.RequiredField("PresetRepo")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.ShareBaseURL == "" {
		vb.RequiredField("ShareBaseURL")
	}
	if c.ShareTTL < 0 {
		vb.Field("ShareTTL", "must not be negative")
	}
	return vb.Build()
}

type orchestrator struct {
	db         *refdata.Database
	resolver   engine.SkillResolver
	index      engine.AvailabilityIndex
	presetRepo presetrepo.Repository
	idGen      idgen.Generator
	bus        events.EventBus
	refLang    string
	shareBase  string
	shareTTL   time.Duration
}

// NewOrchestrator creates a new preset orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	ttl := cfg.ShareTTL
	if ttl == 0 {
		ttl = presetrepo.DefaultTTL
	}

	return &orchestrator{
		db:         cfg.Database,
		resolver:   cfg.Resolver,
		index:      cfg.Index,
		presetRepo: cfg.PresetRepo,
		idGen:      cfg.IDGenerator,
		bus:        cfg.EventBus,
		refLang:    cfg.ReferenceLanguage,
		shareBase:  cfg.ShareBaseURL,
		shareTTL:   ttl,
	}, nil
}

// DecodePreset decodes preset text without touching any deck
func (o *orchestrator) DecodePreset(ctx context.Context, input *DecodeInput) (*DecodeOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.Text == "" {
		return nil, errors.InvalidArgument("text is required")
	}

	p, err := codec.Decode(input.Text, input.Format)
	if err != nil {
		slog.DebugContext(ctx, "preset decode failed",
			"format", input.Format.String(),
			"error", err)
		return nil, err
	}

	return &DecodeOutput{Preset: p}, nil
}

// EncodePreset encodes a preset as text
func (o *orchestrator) EncodePreset(_ context.Context, input *EncodeInput) (*EncodeOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.Preset == nil {
		return nil, errors.InvalidArgument("preset is required")
	}

	text, err := codec.Encode(input.Preset, input.Format)
	if err != nil {
		return nil, err
	}

	return &EncodeOutput{Text: text}, nil
}

// ReconcilePreset replays the preset through a fresh session. An import that
// does not succeed is reported in the result rather than as an error.
func (o *orchestrator) ReconcilePreset(ctx context.Context, input *ReconcileInput) (*ReconcileOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.Text == "" {
		return nil, errors.InvalidArgument("text is required")
	}

	s, err := o.newSession()
	if err != nil {
		return nil, err
	}

	result := s.ImportText(ctx, input.Text, input.Format)
	output := &ReconcileOutput{Result: result}
	if !result.Success {
		return output, nil
	}

	output.Preset = s.Preset()
	output.Text, err = s.ExportText(ctx, input.Format)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode reconciled preset")
	}

	slog.InfoContext(ctx, "preset reconciled",
		"format", input.Format.String(),
		"substitutions", len(result.Substitutions),
		"dropped", len(result.Dropped))

	return output, nil
}

// SharePreset reconciles the preset and stores it in URL form under a
// generated short id
func (o *orchestrator) SharePreset(ctx context.Context, input *ShareInput) (*ShareOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	reconciled, err := o.ReconcilePreset(ctx, &ReconcileInput{Text: input.Text, Format: input.Format})
	if err != nil {
		return nil, err
	}
	if !reconciled.Result.Success {
		return nil, errors.InvalidArgumentf("preset cannot be shared: %s", reconciled.Result.Message).
			WithReason(reconciled.Result.Message)
	}

	text := reconciled.Text
	if input.Format != codec.FormatURL {
		text, err = codec.Encode(reconciled.Preset, codec.FormatURL)
		if err != nil {
			return nil, errors.Wrap(err, "failed to encode shared preset")
		}
	}

	ttl := o.shareTTL
	if input.TTL > 0 {
		ttl = input.TTL
	}

	var created *presetrepo.CreateOutput
	for attempt := 1; ; attempt++ {
		created, err = o.presetRepo.Create(ctx, &presetrepo.CreateInput{
			ID:   o.idGen.Generate(),
			Text: text,
			TTL:  ttl,
		})
		if err == nil {
			break
		}
		if !errors.IsAlreadyExists(err) || attempt == maxShareAttempts {
			return nil, errors.Wrap(err, "failed to store shared preset")
		}
		slog.WarnContext(ctx, "share id collision, retrying",
			"attempt", attempt)
	}

	link, err := codec.ShareURL(o.shareBase, reconciled.Preset)
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "preset shared",
		"preset_id", created.Preset.ID,
		"expires_at", created.Preset.ExpiresAt)

	return &ShareOutput{
		ID:        created.Preset.ID,
		Link:      link,
		ExpiresAt: created.Preset.ExpiresAt,
	}, nil
}

// GetSharedPreset loads a shared preset by id
func (o *orchestrator) GetSharedPreset(ctx context.Context, input *GetSharedInput) (*GetSharedOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.ID == "" {
		return nil, errors.InvalidArgument("id is required")
	}

	got, err := o.presetRepo.Get(ctx, &presetrepo.GetInput{ID: input.ID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get shared preset %s", input.ID)
	}

	p, err := codec.Decode(got.Preset.Text, codec.FormatURL)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeDataLoss, "stored preset is corrupt")
	}

	link, err := codec.ShareURL(o.shareBase, p)
	if err != nil {
		return nil, err
	}

	return &GetSharedOutput{
		ID:        got.Preset.ID,
		Preset:    p,
		Text:      got.Preset.Text,
		Link:      link,
		ExpiresAt: got.Preset.ExpiresAt,
	}, nil
}

func (o *orchestrator) newSession() (*session.Session, error) {
	s, err := session.New(&session.Config{
		Database:          o.db,
		Resolver:          o.resolver,
		Index:             o.index,
		EventBus:          o.bus,
		ID:                "reconcile",
		ReferenceLanguage: o.refLang,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create scratch session")
	}
	return s, nil
}
