package entities

import "sort"

// PlayerProgress is the durable record of a player's dungeon career. It
// outlives exploration sessions; DungeonExp only ever grows and
// ExploredFloors is union-only.
type PlayerProgress struct {
	PlayerID          string       `json:"player_id"`
	DungeonLevel      int          `json:"dungeon_level"`
	DungeonExp        int          `json:"dungeon_exp"`
	UnspentStatPoints int          `json:"unspent_stat_points"`
	ExploredFloors    map[int]bool `json:"explored_floors"`
	CheckpointFloor   int          `json:"checkpoint_floor"`
	Gold              int          `json:"gold"`

	// AssignedStats are the base combat stats granted by class selection.
	// A zero MaxHP means no class has been picked yet.
	AssignedStats CombatStats `json:"assigned_stats"`
	// BonusStats are permanent boosts from spent stat points and gear
	BonusStats CombatStats `json:"bonus_stats"`
}

// NewPlayerProgress creates an empty progress record for a player
func NewPlayerProgress(playerID string) *PlayerProgress {
	return &PlayerProgress{
		PlayerID:       playerID,
		DungeonLevel:   1,
		ExploredFloors: map[int]bool{},
	}
}

// HasClass reports whether the player finished class selection
func (p *PlayerProgress) HasClass() bool {
	return p.AssignedStats.MaxHP > 0
}

// EffectiveStats is the player's combat stat block: assigned class stats
// plus permanent boosts
func (p *PlayerProgress) EffectiveStats() CombatStats {
	return p.AssignedStats.Add(p.BonusStats).Clamp()
}

// MarkExplored unions a floor index into the explored set
func (p *PlayerProgress) MarkExplored(floorIndex int) {
	if floorIndex < 1 {
		return
	}
	if p.ExploredFloors == nil {
		p.ExploredFloors = map[int]bool{}
	}
	p.ExploredFloors[floorIndex] = true
}

// ExploredFloorList returns the explored floors in ascending order
func (p *PlayerProgress) ExploredFloorList() []int {
	floors := make([]int, 0, len(p.ExploredFloors))
	for floor := range p.ExploredFloors {
		floors = append(floors, floor)
	}
	sort.Ints(floors)
	return floors
}
