package entities

// CombatStats holds the numbers combat resolution runs on. CritRate and
// Evasion are percentages in [0, 100].
type CombatStats struct {
	MaxHP    int `json:"max_hp" yaml:"max_hp"`
	Attack   int `json:"attack" yaml:"attack"`
	Defense  int `json:"defense" yaml:"defense"`
	Speed    int `json:"speed" yaml:"speed"`
	CritRate int `json:"crit_rate" yaml:"crit_rate"`
	Evasion  int `json:"evasion" yaml:"evasion"`
}

// Add returns the sum of two stat blocks
func (s CombatStats) Add(other CombatStats) CombatStats {
	return CombatStats{
		MaxHP:    s.MaxHP + other.MaxHP,
		Attack:   s.Attack + other.Attack,
		Defense:  s.Defense + other.Defense,
		Speed:    s.Speed + other.Speed,
		CritRate: s.CritRate + other.CritRate,
		Evasion:  s.Evasion + other.Evasion,
	}
}

// Clamp forces every field into a sane range. Percentages cap at 100,
// everything else at floor 0.
func (s CombatStats) Clamp() CombatStats {
	clampMin := func(v int) int {
		if v < 0 {
			return 0
		}
		return v
	}
	clampPct := func(v int) int {
		v = clampMin(v)
		if v > 100 {
			return 100
		}
		return v
	}

	return CombatStats{
		MaxHP:    clampMin(s.MaxHP),
		Attack:   clampMin(s.Attack),
		Defense:  clampMin(s.Defense),
		Speed:    clampMin(s.Speed),
		CritRate: clampPct(s.CritRate),
		Evasion:  clampPct(s.Evasion),
	}
}
