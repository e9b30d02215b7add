package entities

import (
	"fmt"
	"time"
)

// sanitizeDefaultHP is the HP a corrupted session is repaired to
const sanitizeDefaultHP = 100

// sanitizeMaxNumeric bounds any persisted counter; values past it are
// treated as corruption from a bad document, not legitimate progress
const sanitizeMaxNumeric = 1_000_000_000

// ExplorationStatus holds the session's flag set. InShop and InCombat
// alternate: a shop detour interrupts combat and Continue re-enters it.
type ExplorationStatus struct {
	InCombat     bool `json:"in_combat"`
	AtCheckpoint bool `json:"at_checkpoint"`
	InShop       bool `json:"in_shop"`
}

// ShopCombatMarker records where combat was interrupted by a shop detour so
// floor-entry rewards are not credited twice when the fight resumes.
type ShopCombatMarker struct {
	FloorIndex   int `json:"floor_index"`
	MonsterCount int `json:"monster_count"`
}

// ExplorationState is the live, mutable record of a player's in-progress run
// through a dungeon. Exactly one exists per player; its absence (a nil
// pointer from the repository) is the valid "not exploring" state.
type ExplorationState struct {
	PlayerID    string            `json:"player_id"`
	DungeonSlug string            `json:"dungeon_slug"`
	FloorIndex  int               `json:"floor_index"`
	CurrentHP   int               `json:"current_hp"`
	Status      ExplorationStatus `json:"status"`

	// ActiveMonsters is the pending combat roster, monster IDs in order
	ActiveMonsters []string `json:"active_monsters,omitempty"`
	// ActiveEvents holds the IDs of this floor's events that had not yet
	// run when a shop pause interrupted the step; resume runs only these
	ActiveEvents []string `json:"active_events,omitempty"`

	ShopCombatMarker *ShopCombatMarker `json:"shop_combat_marker,omitempty"`

	// Pending deltas from floor events that have run but whose floor is
	// not yet cleared; folded into the ledger when the floor resolves so a
	// shop pause neither loses nor double-credits them
	PendingExp  int `json:"pending_exp"`
	PendingGold int `json:"pending_gold"`

	// Run accumulators, reported by the session summary
	RunExp  int `json:"run_exp"`
	RunGold int `json:"run_gold"`
	// RunBoosts are temporary stat deltas from floor events, live for this
	// run only
	RunBoosts CombatStats `json:"run_boosts"`

	StartTime time.Time `json:"start_time"`

	// Version guards read-modify-write cycles: saves are rejected when the
	// stored version no longer matches
	Version int64 `json:"version"`
}

// Sanitize repairs out-of-range numeric fields to safe defaults and returns
// a description of every repair made. Corrupted persisted state must never
// reach combat math, so this runs at the start of every mutating operation.
func (s *ExplorationState) Sanitize() []string {
	var repairs []string

	if s.CurrentHP < 1 || s.CurrentHP > sanitizeMaxNumeric {
		repairs = append(repairs, fmt.Sprintf("current_hp %d -> %d", s.CurrentHP, sanitizeDefaultHP))
		s.CurrentHP = sanitizeDefaultHP
	}
	if s.FloorIndex < 1 || s.FloorIndex > sanitizeMaxNumeric {
		repairs = append(repairs, fmt.Sprintf("floor_index %d -> 1", s.FloorIndex))
		s.FloorIndex = 1
	}
	if s.PendingExp < 0 || s.PendingExp > sanitizeMaxNumeric {
		repairs = append(repairs, fmt.Sprintf("pending_exp %d -> 0", s.PendingExp))
		s.PendingExp = 0
	}
	if s.PendingGold < 0 || s.PendingGold > sanitizeMaxNumeric {
		repairs = append(repairs, fmt.Sprintf("pending_gold %d -> 0", s.PendingGold))
		s.PendingGold = 0
	}
	if s.RunExp < 0 || s.RunExp > sanitizeMaxNumeric {
		repairs = append(repairs, fmt.Sprintf("run_exp %d -> 0", s.RunExp))
		s.RunExp = 0
	}
	if s.RunGold < 0 || s.RunGold > sanitizeMaxNumeric {
		repairs = append(repairs, fmt.Sprintf("run_gold %d -> 0", s.RunGold))
		s.RunGold = 0
	}
	if s.Version < 0 {
		repairs = append(repairs, fmt.Sprintf("version %d -> 0", s.Version))
		s.Version = 0
	}
	s.RunBoosts = s.RunBoosts.Clamp()

	return repairs
}

// ClampHP keeps CurrentHP inside [0, maxHP]
func (s *ExplorationState) ClampHP(maxHP int) {
	if s.CurrentHP > maxHP {
		s.CurrentHP = maxHP
	}
	if s.CurrentHP < 0 {
		s.CurrentHP = 0
	}
}
