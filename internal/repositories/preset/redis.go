package preset

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/deck-api/internal/errors"
	"github.com/KirkDiggler/deck-api/internal/pkg/clock"
	redisclient "github.com/KirkDiggler/deck-api/internal/redis"
)

// Key pattern: preset:{id}
const keyPrefix = "preset:"

// KeyPattern matches every shared preset key
const KeyPattern = keyPrefix + "*"

// RedisConfig holds the configuration for the Redis repository
type RedisConfig struct {
	Client redisclient.Client
	Clock  clock.Clock
}

// Validate ensures all required dependencies are provided
func (c *RedisConfig) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	vb := errors.NewValidationBuilder()
	if c.Client == nil {
		vb.RequiredField("Client")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}
	return vb.Build()
}

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
}

// NewRedis creates a Redis-backed preset repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &redisRepository{
		client: cfg.Client,
		clock:  cfg.Clock,
	}, nil
}

// Ensure redisRepository implements Repository
var _ Repository = (*redisRepository)(nil)

func buildKey(id string) string {
	return keyPrefix + id
}

// IDFromKey returns the share id stored under a preset key
func IDFromKey(key string) (string, bool) {
	id, ok := strings.CutPrefix(key, keyPrefix)
	return id, ok && id != ""
}

// Create stores a preset with its TTL
func (r *redisRepository) Create(ctx context.Context, input *CreateInput) (*CreateOutput, error) {
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
	stored := &SharedPreset{
		ID:        input.ID,
		Text:      input.Text,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}

	data, err := json.Marshal(stored)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal preset")
	}

	ok, err := r.client.SetNX(ctx, buildKey(input.ID), data, ttl).Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to store preset in Redis")
	}
	if !ok {
		return nil, errors.AlreadyExistsf("preset %s already exists", input.ID)
	}

	slog.DebugContext(ctx, "preset stored",
		"preset_id", input.ID,
		"ttl", ttl.String())

	return &CreateOutput{Preset: stored}, nil
}

// Get retrieves a preset by id
func (r *redisRepository) Get(ctx context.Context, input *GetInput) (*GetOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument(errInputNil)
	}
	if input.ID == "" {
		return nil, errors.InvalidArgument(errIDEmpty)
	}

	data, err := r.client.Get(ctx, buildKey(input.ID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("preset %s not found", input.ID)
		}
		return nil, errors.Wrap(err, "failed to get preset from Redis")
	}

	var stored SharedPreset
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeDataLoss, "failed to unmarshal preset")
	}

	return &GetOutput{Preset: &stored}, nil
}

// Delete removes a preset
func (r *redisRepository) Delete(ctx context.Context, input *DeleteInput) (*DeleteOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument(errInputNil)
	}
	if input.ID == "" {
		return nil, errors.InvalidArgument(errIDEmpty)
	}

	n, err := r.client.Del(ctx, buildKey(input.ID)).Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to delete preset from Redis")
	}
	if n == 0 {
		return nil, errors.NotFoundf("preset %s not found", input.ID)
	}

	return &DeleteOutput{}, nil
}
