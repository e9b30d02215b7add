package progress

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/questline/questline/internal/entities"
	apperrors "github.com/questline/questline/internal/errors"
	"github.com/redis/go-redis/v9"
)

// RedisRepoConfig holds configuration for the Redis repository
type RedisRepoConfig struct {
	Client *redis.Client
}

// redisRepository implements Repository using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedisRepository creates a new Redis-backed progress repository
func NewRedisRepository(cfg *RedisRepoConfig) Repository {
	if cfg == nil || cfg.Client == nil {
		panic("RedisRepoConfig and Client are required")
	}

	return &redisRepository{
		client: cfg.Client,
	}
}

func progressKey(playerID string) string {
	return fmt.Sprintf("progress:%s", playerID)
}

// Get retrieves a player's progress record
func (r *redisRepository) Get(ctx context.Context, playerID string) (*entities.PlayerProgress, error) {
	data, err := r.client.Get(ctx, progressKey(playerID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, apperrors.NotFoundf("no progress record for player '%s'", playerID)
		}
		return nil, fmt.Errorf("failed to get progress from Redis: %w", err)
	}

	var record entities.PlayerProgress
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal progress data: %w", err)
	}

	return &record, nil
}

// Save persists a player's progress record
func (r *redisRepository) Save(ctx context.Context, record *entities.PlayerProgress) error {
	if record == nil {
		return fmt.Errorf("progress cannot be nil")
	}
	if record.PlayerID == "" {
		return fmt.Errorf("progress player ID cannot be empty")
	}

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal progress data: %w", err)
	}

	if err := r.client.Set(ctx, progressKey(record.PlayerID), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save progress in Redis: %w", err)
	}

	return nil
}
