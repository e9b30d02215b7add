package catalogs

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/questline/questline/internal/entities"
	apperrors "github.com/questline/questline/internal/errors"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

// RedisRepoConfig holds configuration for the Redis repository
type RedisRepoConfig struct {
	Client *redis.Client
}

// redisRepository implements Repository using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedisRepository creates a new Redis-backed catalog repository
func NewRedisRepository(cfg *RedisRepoConfig) Repository {
	if cfg == nil || cfg.Client == nil {
		panic("RedisRepoConfig and Client are required")
	}

	return &redisRepository{
		client: cfg.Client,
	}
}

func catalogKey(slug string) string {
	return fmt.Sprintf("catalog:dungeon:%s", slug)
}

// GetBySlug retrieves a dungeon definition by slug
func (r *redisRepository) GetBySlug(ctx context.Context, slug string) (*entities.Dungeon, error) {
	data, err := r.client.Get(ctx, catalogKey(slug)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, apperrors.NotFoundf("dungeon '%s' not found", slug)
		}
		return nil, fmt.Errorf("failed to get dungeon from Redis: %w", err)
	}

	var dungeon entities.Dungeon
	if err := json.Unmarshal(data, &dungeon); err != nil {
		return nil, fmt.Errorf("failed to unmarshal dungeon data: %w", err)
	}

	return &dungeon, nil
}

// ListActive retrieves all dungeons open for exploration
func (r *redisRepository) ListActive(ctx context.Context) ([]*entities.Dungeon, error) {
	slugs, err := r.client.SMembers(ctx, "catalog:dungeons:active").Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list active dungeons: %w", err)
	}

	dungeons := make([]*entities.Dungeon, len(slugs))

	g, ctx := errgroup.WithContext(ctx)
	for i, slug := range slugs {
		g.Go(func() error {
			dungeon, err := r.GetBySlug(ctx, slug)
			if err != nil {
				return err
			}
			dungeons[i] = dungeon
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return dungeons, nil
}

// Put stores a dungeon definition, overwriting any prior one
func (r *redisRepository) Put(ctx context.Context, dungeon *entities.Dungeon) error {
	if dungeon == nil || dungeon.Slug == "" {
		return fmt.Errorf("dungeon with a slug is required")
	}

	data, err := json.Marshal(dungeon)
	if err != nil {
		return fmt.Errorf("failed to marshal dungeon data: %w", err)
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, catalogKey(dungeon.Slug), data, 0)
	if dungeon.Active {
		pipe.SAdd(ctx, "catalog:dungeons:active", dungeon.Slug)
	} else {
		pipe.SRem(ctx, "catalog:dungeons:active", dungeon.Slug)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to store dungeon in Redis: %w", err)
	}

	return nil
}
