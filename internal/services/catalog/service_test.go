package catalog_test

import (
	"context"
	"testing"

	"github.com/questline/questline/internal/entities"
	apperrors "github.com/questline/questline/internal/errors"
	"github.com/questline/questline/internal/repositories/catalogs"
	"github.com/questline/questline/internal/services/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T, dungeons ...*entities.Dungeon) catalog.Service {
	t.Helper()

	repo := catalogs.NewInMemoryRepository()
	for _, dungeon := range dungeons {
		require.NoError(t, repo.Put(context.Background(), dungeon))
	}

	return catalog.NewService(&catalog.ServiceConfig{Repository: repo})
}

func TestCatalogService_GetDungeon(t *testing.T) {
	svc := newService(t, &entities.Dungeon{
		Slug:   "catacombs",
		Name:   "The Catacombs",
		Active: true,
		Floors: []entities.Floor{{Index: 1}},
	})

	dungeon, err := svc.GetDungeon(context.Background(), "catacombs")
	require.NoError(t, err)
	assert.Equal(t, "The Catacombs", dungeon.Name)

	_, err = svc.GetDungeon(context.Background(), "missing")
	assert.True(t, apperrors.IsNotFound(err))

	_, err = svc.GetDungeon(context.Background(), "  ")
	assert.True(t, apperrors.IsInvalidArgument(err))
}

func TestCatalogService_GetDungeon_InactiveIsNotFound(t *testing.T) {
	svc := newService(t, &entities.Dungeon{
		Slug:   "closed-mine",
		Active: false,
		Floors: []entities.Floor{{Index: 1}},
	})

	_, err := svc.GetDungeon(context.Background(), "closed-mine")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestCatalogService_ListActive(t *testing.T) {
	svc := newService(t,
		&entities.Dungeon{Slug: "catacombs", Active: true, Floors: []entities.Floor{{Index: 1}}},
		&entities.Dungeon{Slug: "closed-mine", Active: false, Floors: []entities.Floor{{Index: 1}}},
	)

	active, err := svc.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "catacombs", active[0].Slug)
}
