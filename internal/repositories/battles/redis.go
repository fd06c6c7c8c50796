package battles

import (
	"context"
	"encoding/json"

	redis "github.com/redis/go-redis/v9"

	"github.com/skirmishlabs/combat-api/internal/errors"
	"github.com/skirmishlabs/combat-api/internal/pkg/clock"
	redisclient "github.com/skirmishlabs/combat-api/internal/redis"
)

const (
	// Key pattern: battle:{id}
	battleKeyPrefix = "battle:"

	errRecordNil = "record cannot be nil"
	errIDEmpty   = "battle ID cannot be empty"
)

// Config holds the configuration for the Redis repository
type Config struct {
	Client redisclient.Client
	Clock  clock.Clock
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c.Client == nil {
		return errors.InvalidArgument("redis client is required")
	}
	if c.Clock == nil {
		return errors.InvalidArgument("clock is required")
	}
	return nil
}

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
}

// NewRedisRepository creates a new Redis repository for battle records
func NewRedisRepository(cfg *Config) (Repository, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
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

// Save stores or replaces a battle record
func (r *redisRepository) Save(ctx context.Context, input SaveInput) (*SaveOutput, error) {
	if input.Record == nil {
		return nil, errors.InvalidArgument(errRecordNil)
	}
	if input.Record.ID == "" {
		return nil, errors.InvalidArgument(errIDEmpty)
	}

	record := *input.Record
	if record.CompletedAt.IsZero() {
		record.CompletedAt = r.clock.Now()
	}

	recordJSON, err := json.Marshal(&record)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal battle record")
	}

	// Records persist indefinitely; retention policy belongs to ops.
	if err := r.client.Set(ctx, battleKey(record.ID), recordJSON, 0).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to store battle record in Redis")
	}

	return &SaveOutput{Record: &record}, nil
}

// Get retrieves a battle record by ID
func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errIDEmpty)
	}

	recordJSON, err := r.client.Get(ctx, battleKey(input.ID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFound("battle record not found: " + input.ID)
		}
		return nil, errors.Wrapf(err, "failed to get battle record from Redis")
	}

	var record BattleRecord
	if err := json.Unmarshal([]byte(recordJSON), &record); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal battle record")
	}

	return &GetOutput{Record: &record}, nil
}

// Delete removes a battle record
func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errIDEmpty)
	}

	if err := r.client.Del(ctx, battleKey(input.ID)).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to delete battle record from Redis")
	}

	return &DeleteOutput{}, nil
}

// battleKey creates the Redis key for a battle record
func battleKey(id string) string {
	return battleKeyPrefix + id
}
