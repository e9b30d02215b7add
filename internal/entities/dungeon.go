package entities

// Catalog types are immutable reference data. The engine only reads them;
// floors reference monster pools, an optional boss, and a list of events.

// SkillKind categorizes monster skills
type SkillKind string

const (
	SkillKindDealDamage SkillKind = "deal_damage"
	SkillKindBuff       SkillKind = "buff"
)

// EventKind categorizes floor events
type EventKind string

const (
	EventKindHeal  EventKind = "heal"
	EventKindTrap  EventKind = "trap"
	EventKindShop  EventKind = "shop"
	EventKindStory EventKind = "story"
)

// MonsterSkill is one ability in a monster's kit. Higher Priority wins when
// the monster picks an attack.
type MonsterSkill struct {
	Name        string    `json:"name" yaml:"name"`
	Kind        SkillKind `json:"kind" yaml:"kind"`
	Priority    int       `json:"priority" yaml:"priority"`
	EffectValue int       `json:"effect_value" yaml:"effect_value"`
}

// DropEntry is one row of a drop table: ItemID drops when a percent roll
// lands under Rate.
type DropEntry struct {
	ItemID string `json:"item_id" yaml:"item_id"`
	Rate   int    `json:"rate" yaml:"rate"`
}

// Monster is a catalog monster definition
type Monster struct {
	ID        string         `json:"id" yaml:"id"`
	Name      string         `json:"name" yaml:"name"`
	Stats     CombatStats    `json:"stats" yaml:"stats"`
	Skills    []MonsterSkill `json:"skills" yaml:"skills"`
	ExpDrop   int            `json:"exp_drop" yaml:"exp_drop"`
	GoldDrop  int            `json:"gold_drop" yaml:"gold_drop"`
	DropTable []DropEntry    `json:"drop_table" yaml:"drop_table"`
}

// HighestPriorityAttack returns the monster's best deal_damage skill, or nil
// when it only has basic attacks.
func (m *Monster) HighestPriorityAttack() *MonsterSkill {
	var best *MonsterSkill
	for i := range m.Skills {
		skill := &m.Skills[i]
		if skill.Kind != SkillKindDealDamage {
			continue
		}
		if best == nil || skill.Priority > best.Priority {
			best = skill
		}
	}
	return best
}

// MonsterSpawn references a monster pool entry with a spawn count
type MonsterSpawn struct {
	MonsterID string `json:"monster_id" yaml:"monster_id"`
	Count     int    `json:"count" yaml:"count"`
}

// FloorEvent is an event that fires when a floor is explored
type FloorEvent struct {
	ID         string      `json:"id" yaml:"id"`
	Kind       EventKind   `json:"kind" yaml:"kind"`
	Narrative  string      `json:"narrative" yaml:"narrative"`
	GoldDelta  int         `json:"gold_delta" yaml:"gold_delta"`
	ExpDelta   int         `json:"exp_delta" yaml:"exp_delta"`
	StatDeltas CombatStats `json:"stat_deltas" yaml:"stat_deltas"`
	DropTable  []DropEntry `json:"drop_table" yaml:"drop_table"`
}

// Floor is one indexed stage of a dungeon
type Floor struct {
	Index      int            `json:"index" yaml:"index"`
	Name       string         `json:"name" yaml:"name"`
	Checkpoint bool           `json:"checkpoint" yaml:"checkpoint"`
	Monsters   []MonsterSpawn `json:"monsters" yaml:"monsters"`
	Boss       *Monster       `json:"boss,omitempty" yaml:"boss,omitempty"`
	Events     []FloorEvent   `json:"events" yaml:"events"`
}

// MonsterCount is the number of monsters this floor spawns, boss included
func (f *Floor) MonsterCount() int {
	count := 0
	for _, spawn := range f.Monsters {
		n := spawn.Count
		if n < 1 {
			n = 1
		}
		count += n
	}
	if f.Boss != nil {
		count++
	}
	return count
}

// ShopItem is a purchasable entry in a dungeon's shop stock
type ShopItem struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Price int    `json:"price" yaml:"price"`
}

// Dungeon is a catalog dungeon definition keyed by slug
type Dungeon struct {
	Slug      string     `json:"slug" yaml:"slug"`
	Name      string     `json:"name" yaml:"name"`
	Active    bool       `json:"active" yaml:"active"`
	Monsters  []Monster  `json:"monsters" yaml:"monsters"`
	Floors    []Floor    `json:"floors" yaml:"floors"`
	ShopStock []ShopItem `json:"shop_stock" yaml:"shop_stock"`
}

// MaxFloor is the highest floor index in the dungeon
func (d *Dungeon) MaxFloor() int {
	maxIndex := 0
	for i := range d.Floors {
		if d.Floors[i].Index > maxIndex {
			maxIndex = d.Floors[i].Index
		}
	}
	return maxIndex
}

// FloorByIndex finds a floor by index, nil when absent
func (d *Dungeon) FloorByIndex(index int) *Floor {
	for i := range d.Floors {
		if d.Floors[i].Index == index {
			return &d.Floors[i]
		}
	}
	return nil
}

// FirstFloorIndex is the lowest floor index, used when a session points at a
// floor that no longer exists
func (d *Dungeon) FirstFloorIndex() int {
	first := 0
	for i := range d.Floors {
		if first == 0 || d.Floors[i].Index < first {
			first = d.Floors[i].Index
		}
	}
	if first == 0 {
		return 1
	}
	return first
}

// MonsterByID finds a monster in the dungeon's pool, nil when absent
func (d *Dungeon) MonsterByID(id string) *Monster {
	for i := range d.Monsters {
		if d.Monsters[i].ID == id {
			return &d.Monsters[i]
		}
	}
	return nil
}

// ShopItemByID finds a shop stock entry, nil when absent
func (d *Dungeon) ShopItemByID(id string) *ShopItem {
	for i := range d.ShopStock {
		if d.ShopStock[i].ID == id {
			return &d.ShopStock[i]
		}
	}
	return nil
}
