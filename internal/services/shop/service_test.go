package shop_test

import (
	"context"
	"testing"

	"github.com/questline/questline/internal/entities"
	apperrors "github.com/questline/questline/internal/errors"
	"github.com/questline/questline/internal/repositories/explorations"
	progressrepo "github.com/questline/questline/internal/repositories/progress"
	"github.com/questline/questline/internal/services/catalog"
	"github.com/questline/questline/internal/services/shop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogrepo "github.com/questline/questline/internal/repositories/catalogs"
)

type fixedGenerator struct {
	id string
}

func (g *fixedGenerator) New() string { return g.id }

type fixture struct {
	svc        shop.Service
	stateRepo  explorations.Repository
	recordRepo progressrepo.Repository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	catalogRepo := catalogrepo.NewInMemoryRepository()
	require.NoError(t, catalogRepo.Put(context.Background(), &entities.Dungeon{
		Slug:   "bazaar",
		Name:   "Sunken Bazaar",
		Active: true,
		Floors: []entities.Floor{{Index: 1}},
		ShopStock: []entities.ShopItem{
			{ID: "tonic", Name: "Tonic", Price: 5},
			{ID: "charm", Name: "Bone Charm", Price: 50},
		},
	}))

	f := &fixture{
		stateRepo:  explorations.NewInMemoryRepository(),
		recordRepo: progressrepo.NewInMemoryRepository(),
	}

	f.svc = shop.NewService(&shop.ServiceConfig{
		ExplorationRepository: f.stateRepo,
		ProgressRepository:    f.recordRepo,
		CatalogService:        catalog.NewService(&catalog.ServiceConfig{Repository: catalogRepo}),
		UUIDGenerator:         &fixedGenerator{id: "receipt-1"},
	})

	return f
}

func (f *fixture) seedVisit(t *testing.T, gold int) {
	t.Helper()

	record := entities.NewPlayerProgress("player-1")
	record.AssignedStats = entities.CombatStats{MaxHP: 100, Attack: 10}
	record.Gold = gold
	require.NoError(t, f.recordRepo.Save(context.Background(), record))

	require.NoError(t, f.stateRepo.Save(context.Background(), &entities.ExplorationState{
		PlayerID:    "player-1",
		DungeonSlug: "bazaar",
		FloorIndex:  1,
		CurrentHP:   100,
		Status:      entities.ExplorationStatus{InShop: true},
	}))
}

func TestInteract_BuyDebitsGold(t *testing.T) {
	f := newFixture(t)
	f.seedVisit(t, 20)

	result, err := f.svc.Interact(context.Background(), "player-1", shop.ActionBuy, "tonic")
	require.NoError(t, err)

	assert.Equal(t, shop.ActionBuy, result.Action)
	assert.Equal(t, "receipt-1", result.ReceiptID)
	require.NotNil(t, result.Item)
	assert.Equal(t, "tonic", result.Item.ID)
	assert.Equal(t, 15, result.Gold)

	record, err := f.recordRepo.Get(context.Background(), "player-1")
	require.NoError(t, err)
	assert.Equal(t, 15, record.Gold)
}

func TestInteract_BuyWithoutEnoughGold(t *testing.T) {
	f := newFixture(t)
	f.seedVisit(t, 20)

	_, err := f.svc.Interact(context.Background(), "player-1", shop.ActionBuy, "charm")
	require.Error(t, err)
	assert.True(t, apperrors.IsFailedPrecondition(err))

	record, err := f.recordRepo.Get(context.Background(), "player-1")
	require.NoError(t, err)
	assert.Equal(t, 20, record.Gold, "failed purchase must not debit")
}

func TestInteract_BuyUnknownItem(t *testing.T) {
	f := newFixture(t)
	f.seedVisit(t, 20)

	_, err := f.svc.Interact(context.Background(), "player-1", shop.ActionBuy, "sword")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestInteract_LeaveClearsShopFlag(t *testing.T) {
	f := newFixture(t)
	f.seedVisit(t, 20)

	result, err := f.svc.Interact(context.Background(), "player-1", shop.ActionLeave, "")
	require.NoError(t, err)

	assert.True(t, result.Left)
	assert.Equal(t, 20, result.Gold)

	state, err := f.stateRepo.Get(context.Background(), "player-1")
	require.NoError(t, err)
	require.NotNil(t, state)
	assert.False(t, state.Status.InShop)
}

func TestInteract_WithoutSession(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Interact(context.Background(), "player-1", shop.ActionLeave, "")
	require.Error(t, err)
	assert.True(t, apperrors.IsFailedPrecondition(err))
}

func TestInteract_UnknownAction(t *testing.T) {
	f := newFixture(t)
	f.seedVisit(t, 20)

	_, err := f.svc.Interact(context.Background(), "player-1", "haggle", "")
	require.Error(t, err)
	assert.True(t, apperrors.IsInvalidArgument(err))
}
