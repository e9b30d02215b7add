package explorations_test

import (
	"context"
	"testing"

	"github.com/questline/questline/internal/repositories/explorations"
	"github.com/questline/questline/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Requires a local Redis; skipped otherwise.
func TestRedisRepository_Integration(t *testing.T) {
	client := testutils.CreateTestRedisClientOrSkip(t)
	repo := explorations.NewRedisRepository(&explorations.RedisRepoConfig{Client: client})
	ctx := context.Background()

	state := testutils.CreateTestState("player-1", "crypt", 1)
	require.NoError(t, repo.Save(ctx, state))

	loaded, err := repo.Get(ctx, "player-1")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "crypt", loaded.DungeonSlug)
	assert.Equal(t, state.Version, loaded.Version)

	// a writer holding the old version loses to one that saved first
	stale := testutils.CreateTestState("player-1", "crypt", 1)
	stale.Version = loaded.Version - 1
	err = repo.Save(ctx, stale)
	require.Error(t, err)
	assert.ErrorIs(t, err, explorations.ErrStaleState)

	loaded.FloorIndex = 2
	require.NoError(t, repo.Save(ctx, loaded))

	active, err := repo.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, 2, active[0].FloorIndex)

	require.NoError(t, repo.Delete(ctx, "player-1"))
	gone, err := repo.Get(ctx, "player-1")
	require.NoError(t, err)
	assert.Nil(t, gone)
}
