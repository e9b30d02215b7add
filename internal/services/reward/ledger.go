package reward

import (
	"fmt"

	"github.com/questline/questline/internal/entities"
)

const (
	expPerLevel        = 100
	statPointsPerLevel = 5

	// maxSettleRounds bounds the level settlement loop. Settlement
	// normally converges in one round; hitting the bound means the ledger
	// math itself is broken and we fail loudly instead of spinning.
	maxSettleRounds = 50
)

// LevelUp describes the outcome of folding experience into a progress
// record
type LevelUp struct {
	PreviousLevel    int
	NewLevel         int
	LevelDiff        int
	StatPointsGained int
}

// Leveled reports whether any level was gained
func (l LevelUp) Leveled() bool {
	return l.LevelDiff > 0
}

// LevelFromExp maps accumulated experience to a level. Pure and
// deterministic: the same experience total always yields the same level, so
// folding it twice grants nothing the second time.
func LevelFromExp(exp int) int {
	if exp < 0 {
		exp = 0
	}
	return 1 + exp/expPerLevel
}

// Apply adds gained experience to a progress record and settles the level.
// Experience is monotone: negative gains are ignored. Level can only move
// up; a record whose stored level is already past the computed one keeps it
// and gains nothing.
func Apply(record *entities.PlayerProgress, gainedExp int) (LevelUp, error) {
	if gainedExp > 0 {
		record.DungeonExp += gainedExp
	}

	return Settle(record)
}

// Settle recomputes the level from the record's experience total until it
// reaches a fixed point, granting stat points for each level gained. Bounded
// at maxSettleRounds; exceeding the bound returns an error rather than
// looping forever.
func Settle(record *entities.PlayerProgress) (LevelUp, error) {
	result := LevelUp{
		PreviousLevel: record.DungeonLevel,
		NewLevel:      record.DungeonLevel,
	}

	for round := 0; round < maxSettleRounds; round++ {
		target := LevelFromExp(record.DungeonExp)
		if target <= record.DungeonLevel {
			result.NewLevel = record.DungeonLevel
			return result, nil
		}

		diff := target - record.DungeonLevel
		record.DungeonLevel = target
		record.UnspentStatPoints += diff * statPointsPerLevel
		result.LevelDiff += diff
		result.StatPointsGained += diff * statPointsPerLevel
	}

	return result, fmt.Errorf("level settlement did not converge after %d rounds (exp=%d, level=%d)",
		maxSettleRounds, record.DungeonExp, record.DungeonLevel)
}
