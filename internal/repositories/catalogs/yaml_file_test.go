package catalogs_test

import (
	"context"
	"testing"

	"github.com/questline/questline/internal/entities"
	"github.com/questline/questline/internal/repositories/catalogs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFile(t *testing.T) {
	dungeons, err := catalogs.LoadFile("testdata/catalog.yaml")
	require.NoError(t, err)
	require.Len(t, dungeons, 2)

	catacombs := dungeons[0]
	assert.Equal(t, "catacombs", catacombs.Slug)
	assert.True(t, catacombs.Active)
	assert.Equal(t, 2, catacombs.MaxFloor())
	assert.Equal(t, 1, catacombs.FirstFloorIndex())

	require.Len(t, catacombs.Monsters, 1)
	ratKing := catacombs.MonsterByID("rat-king")
	require.NotNil(t, ratKing)
	assert.Equal(t, 40, ratKing.Stats.MaxHP)
	assert.Equal(t, 12, ratKing.ExpDrop)
	require.Len(t, ratKing.DropTable, 1)
	assert.Equal(t, 35, ratKing.DropTable[0].Rate)

	floor := catacombs.FloorByIndex(2)
	require.NotNil(t, floor)
	assert.True(t, floor.Checkpoint)
	require.Len(t, floor.Events, 1)
	assert.Equal(t, entities.EventKindTrap, floor.Events[0].Kind)

	require.Len(t, catacombs.ShopStock, 1)
	assert.Equal(t, 15, catacombs.ShopStock[0].Price)

	assert.False(t, dungeons[1].Active)
}

func TestLoadFile_MissingFile(t *testing.T) {
	_, err := catalogs.LoadFile("testdata/does-not-exist.yaml")
	assert.Error(t, err)
}

func TestSeedFromFile(t *testing.T) {
	repo := catalogs.NewInMemoryRepository()

	err := catalogs.SeedFromFile(context.Background(), repo, "testdata/catalog.yaml")
	require.NoError(t, err)

	dungeon, err := repo.GetBySlug(context.Background(), "catacombs")
	require.NoError(t, err)
	assert.Equal(t, "The Catacombs", dungeon.Name)

	active, err := repo.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "catacombs", active[0].Slug)
}
