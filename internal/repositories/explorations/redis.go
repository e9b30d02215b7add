package explorations

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/questline/questline/internal/entities"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

// SaveScript is the Lua compare-and-swap used by Save. It rejects the write
// when the stored document's version differs from the version the caller
// loaded, which keeps two racing explore steps from silently overwriting
// each other. Exported so repository tests can set expectations against it.
const SaveScript = `local cur = redis.call("GET", KEYS[1])
if cur then
  local doc = cjson.decode(cur)
  if tonumber(doc.version) ~= tonumber(ARGV[1]) then
    return 0
  end
elseif tonumber(ARGV[1]) ~= 0 then
  return 0
end
redis.call("SET", KEYS[1], ARGV[2])
redis.call("SADD", KEYS[2], ARGV[3])
return 1`

const activeIndexKey = "explorations:active"

// RedisRepoConfig holds configuration for the Redis repository
type RedisRepoConfig struct {
	Client *redis.Client
}

// redisRepository implements Repository using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedisRepository creates a new Redis-backed exploration repository
func NewRedisRepository(cfg *RedisRepoConfig) Repository {
	if cfg == nil || cfg.Client == nil {
		panic("RedisRepoConfig and Client are required")
	}

	return &redisRepository{
		client: cfg.Client,
	}
}

func stateKey(playerID string) string {
	return fmt.Sprintf("exploration:%s", playerID)
}

// Get retrieves a player's live session, nil when none exists
func (r *redisRepository) Get(ctx context.Context, playerID string) (*entities.ExplorationState, error) {
	data, err := r.client.Get(ctx, stateKey(playerID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get exploration state from Redis: %w", err)
	}

	var state entities.ExplorationState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to unmarshal exploration state: %w", err)
	}

	return &state, nil
}

// Save persists the session behind the version compare-and-swap
func (r *redisRepository) Save(ctx context.Context, state *entities.ExplorationState) error {
	if state == nil {
		return fmt.Errorf("exploration state cannot be nil")
	}
	if state.PlayerID == "" {
		return fmt.Errorf("exploration state player ID cannot be empty")
	}

	expected := state.Version
	state.Version = expected + 1

	data, err := json.Marshal(state)
	if err != nil {
		state.Version = expected
		return fmt.Errorf("failed to marshal exploration state: %w", err)
	}

	keys := []string{stateKey(state.PlayerID), activeIndexKey}
	result, err := r.client.Eval(ctx, SaveScript, keys, expected, string(data), state.PlayerID).Int64()
	if err != nil {
		state.Version = expected
		return fmt.Errorf("failed to save exploration state in Redis: %w", err)
	}
	if result == 0 {
		state.Version = expected
		return ErrStaleState
	}

	return nil
}

// Delete removes a player's session
func (r *redisRepository) Delete(ctx context.Context, playerID string) error {
	pipe := r.client.Pipeline()
	pipe.Del(ctx, stateKey(playerID))
	pipe.SRem(ctx, activeIndexKey, playerID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete exploration state from Redis: %w", err)
	}

	return nil
}

// ListActive retrieves every live session
func (r *redisRepository) ListActive(ctx context.Context) ([]*entities.ExplorationState, error) {
	playerIDs, err := r.client.SMembers(ctx, activeIndexKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list active explorations: %w", err)
	}

	states := make([]*entities.ExplorationState, len(playerIDs))

	g, ctx := errgroup.WithContext(ctx)
	for i, playerID := range playerIDs {
		g.Go(func() error {
			state, err := r.Get(ctx, playerID)
			if err != nil {
				return fmt.Errorf("failed to get exploration for %s: %w", playerID, err)
			}
			states[i] = state
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Index members whose document already expired come back nil
	live := states[:0]
	for _, state := range states {
		if state != nil {
			live = append(live, state)
		}
	}

	return live, nil
}
