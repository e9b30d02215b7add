package testutils

import (
	"time"

	"github.com/questline/questline/internal/entities"
)

// CreateTestMonster creates a weak monster that dies to a single hit from
// CreateTestProgress's stats
func CreateTestMonster(id, name string) entities.Monster {
	return entities.Monster{
		ID:       id,
		Name:     name,
		Stats:    entities.CombatStats{MaxHP: 10, Attack: 5, Speed: 1},
		ExpDrop:  5,
		GoldDrop: 3,
	}
}

// CreateTestDungeon creates a minimal active dungeon with one monster floor
func CreateTestDungeon(slug string, floorCount int) *entities.Dungeon {
	d := &entities.Dungeon{
		Slug:     slug,
		Name:     slug,
		Active:   true,
		Monsters: []entities.Monster{CreateTestMonster("slime", "Slime")},
	}

	for i := 1; i <= floorCount; i++ {
		d.Floors = append(d.Floors, entities.Floor{
			Index:    i,
			Monsters: []entities.MonsterSpawn{{MonsterID: "slime", Count: 1}},
		})
	}

	return d
}

// CreateTestProgress creates a progress record with a class assigned
func CreateTestProgress(playerID string) *entities.PlayerProgress {
	record := entities.NewPlayerProgress(playerID)
	record.AssignedStats = entities.CombatStats{MaxHP: 100, Attack: 15, Defense: 10, Speed: 10}
	return record
}

// CreateTestState creates a session positioned on the given floor
func CreateTestState(playerID, dungeonSlug string, floorIndex int) *entities.ExplorationState {
	return &entities.ExplorationState{
		PlayerID:    playerID,
		DungeonSlug: dungeonSlug,
		FloorIndex:  floorIndex,
		CurrentHP:   100,
		StartTime:   time.Now().UTC().Truncate(time.Second),
	}
}
