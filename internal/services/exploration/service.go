package exploration

//go:generate mockgen -destination=mock/mock_service.go -package=mockexploration -source=service.go

import (
	"context"
	"time"

	"github.com/questline/questline/internal/entities"
)

// StepResult names the outcome of one engine operation
type StepResult string

const (
	// ResultContinue means the floor was cleared and exploration goes on
	ResultContinue StepResult = "continue"
	// ResultDefeat means the player fell and the session is gone
	ResultDefeat StepResult = "defeat"
	// ResultCompleted means the final floor was cleared
	ResultCompleted StepResult = "completed"
	// ResultRetry means the session pointed at a missing floor and was
	// snapped back to the first one; the client should call explore again
	ResultRetry StepResult = "retry"
	// ResultShop means a shop encounter paused the step
	ResultShop StepResult = "shop"
	// ResultCombat means combat is prepared and waiting on a fight call
	ResultCombat StepResult = "combat"
	// ResultVictory means a pending fight was won
	ResultVictory StepResult = "victory"
)

// EnterResult summarizes a freshly started session
type EnterResult struct {
	DungeonSlug string               `json:"dungeon_slug"`
	DungeonName string               `json:"dungeon_name"`
	MaxFloor    int                  `json:"max_floor"`
	FloorIndex  int                  `json:"floor_index"`
	CurrentHP   int                  `json:"current_hp"`
	Stats       entities.CombatStats `json:"stats"`
}

// StepOutcome is the response shape shared by explore, fight, and continue
type StepOutcome struct {
	Result           StepResult `json:"result"`
	Logs             []string   `json:"logs,omitempty"`
	Monsters         []string   `json:"monsters,omitempty"`
	NextFloor        int        `json:"next_floor"`
	CurrentHP        int        `json:"current_hp"`
	GainedExp        int        `json:"gained_exp"`
	GoldGain         int        `json:"gold_gain"`
	Drops            []string   `json:"drops,omitempty"`
	LevelUp          bool       `json:"level_up"`
	NewLevel         int        `json:"new_level,omitempty"`
	StatPointsGained int        `json:"stat_points_gained,omitempty"`
	AtCheckpoint     bool       `json:"at_checkpoint"`
}

// Summary is the result of finalizing (or inspecting) a session
type Summary struct {
	Finalized        bool  `json:"finalized"`
	TotalExp         int   `json:"total_exp"`
	TotalGold        int   `json:"total_gold"`
	Level            int   `json:"level"`
	LevelUp          bool  `json:"level_up"`
	StatPointsGained int   `json:"stat_points_gained"`
	ExploredFloors   []int `json:"explored_floors,omitempty"`
}

// TimeProvider supplies the clock, injectable for tests
type TimeProvider interface {
	Now() time.Time
}

type realTimeProvider struct{}

func (realTimeProvider) Now() time.Time { return time.Now() }

// Service is the exploration engine: it orchestrates events, combat, floor
// progression, and the reward ledger across independent HTTP calls
type Service interface {
	// Enter starts a session in the named dungeon, overwriting any stale
	// one for the player
	Enter(ctx context.Context, playerID, dungeonSlug string) (*EnterResult, error)

	// Explore runs one step: floor events, then combat, then floor
	// advancement
	Explore(ctx context.Context, playerID string) (*StepOutcome, error)

	// Fight resolves combat a previous call left pending
	Fight(ctx context.Context, playerID string) (*StepOutcome, error)

	// Continue resumes after a shop pause
	Continue(ctx context.Context, playerID string) (*StepOutcome, error)

	// Summarize finalizes whatever session exists; safe to call anytime
	Summarize(ctx context.Context, playerID string) (*Summary, error)
}
