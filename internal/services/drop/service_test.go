package drop_test

import (
	"context"
	"testing"

	"github.com/questline/questline/internal/dice"
	"github.com/questline/questline/internal/entities"
	"github.com/questline/questline/internal/services/drop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDropService_RollDrops(t *testing.T) {
	roller := dice.NewMockRoller()
	svc := drop.NewService(&drop.ServiceConfig{Roller: roller})

	table := []entities.DropEntry{
		{ItemID: "rat-tail", Rate: 35},
		{ItemID: "rusty-key", Rate: 10},
		{ItemID: "crown", Rate: 1},
	}

	// 34 < 35 hits, 10 < 10 misses, 0 < 1 hits
	roller.SetRolls([]int{34, 10, 0})

	drops, err := svc.RollDrops(context.Background(), table)
	require.NoError(t, err)
	require.Len(t, drops, 2)
	assert.Equal(t, "rat-tail", drops[0].ItemID)
	assert.Equal(t, "crown", drops[1].ItemID)
}

func TestDropService_RollDrops_SkipsDegenerateEntries(t *testing.T) {
	roller := dice.NewMockRoller()
	svc := drop.NewService(&drop.ServiceConfig{Roller: roller})

	table := []entities.DropEntry{
		{ItemID: "", Rate: 100},
		{ItemID: "never", Rate: 0},
	}

	// no rolls queued: degenerate entries must not consume any
	drops, err := svc.RollDrops(context.Background(), table)
	require.NoError(t, err)
	assert.Empty(t, drops)
}

func TestDropService_RollDrops_EmptyTable(t *testing.T) {
	svc := drop.NewService(nil)

	drops, err := svc.RollDrops(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, drops)
}
