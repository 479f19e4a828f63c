package preset

import (
	"context"
	"sync"
	"time"

	"github.com/KirkDiggler/deck-api/internal/errors"
	"github.com/KirkDiggler/deck-api/internal/pkg/clock"
)

// InMemoryRepository implements Repository using in-memory storage.
// Expired presets are removed when read and swept on every Create, so the
// map never outgrows the live presets plus those expired since the last
// write.
type InMemoryRepository struct {
	mu    sync.RWMutex
	clock clock.Clock
	store map[string]SharedPreset
}

// NewInMemory creates a new in-memory repository
func NewInMemory(c clock.Clock) *InMemoryRepository {
	if c == nil {
		c = clock.New()
	}
	return &InMemoryRepository{
		clock: c,
		store: make(map[string]SharedPreset),
	}
}

var _ Repository = (*InMemoryRepository)(nil)

// Create stores a preset
func (r *InMemoryRepository) Create(_ context.Context, input *CreateInput) (*CreateOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument(errInputNil)
	}
	if input.ID == "" {
		return nil, errors.InvalidArgument(errIDEmpty)
	}
	if input.Text == "" {
		return nil, errors.InvalidArgument(errTextEmpty)
	}

	ttl := input.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	now := r.clock.Now()

	r.mu.Lock()
	defer r.mu.Unlock()

	r.sweepLocked(now)
	if _, ok := r.store[input.ID]; ok {
		return nil, errors.AlreadyExistsf("preset %s already exists", input.ID)
	}

	stored := SharedPreset{
		ID:        input.ID,
		Text:      input.Text,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
	r.store[input.ID] = stored

	return &CreateOutput{Preset: &stored}, nil
}

// Get retrieves a preset by id
func (r *InMemoryRepository) Get(_ context.Context, input *GetInput) (*GetOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument(errInputNil)
	}
	if input.ID == "" {
		return nil, errors.InvalidArgument(errIDEmpty)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.store[input.ID]
	if !ok {
		return nil, errors.NotFoundf("preset %s not found", input.ID)
	}
	if !r.clock.Now().Before(stored.ExpiresAt) {
		delete(r.store, input.ID)
		return nil, errors.NotFoundf("preset %s not found", input.ID)
	}

	return &GetOutput{Preset: &stored}, nil
}

// Delete removes a preset
func (r *InMemoryRepository) Delete(_ context.Context, input *DeleteInput) (*DeleteOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument(errInputNil)
	}
	if input.ID == "" {
		return nil, errors.InvalidArgument(errIDEmpty)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.store[input.ID]
	if !ok {
		return nil, errors.NotFoundf("preset %s not found", input.ID)
	}
	delete(r.store, input.ID)
	if !r.clock.Now().Before(stored.ExpiresAt) {
		return nil, errors.NotFoundf("preset %s not found", input.ID)
	}
	return &DeleteOutput{}, nil
}

// sweepLocked drops every preset expired at now. The caller holds mu.
func (r *InMemoryRepository) sweepLocked(now time.Time) {
	for id, stored := range r.store {
		if !now.Before(stored.ExpiresAt) {
			delete(r.store, id)
		}
	}
}
