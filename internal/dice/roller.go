package dice

// Roller provides an interface for rolling dice
// This allows us to inject different implementations for testing
type Roller interface {
	// Roll rolls a number of dice with the given sides and adds a bonus
	Roll(count, sides, bonus int) (*RollResult, error)

	// Percent rolls a uniform percentage in [0, 100). Rate checks are
	// written as Percent() < rate, so a rate of 0 never triggers and a
	// rate of 100 always does.
	Percent() (int, error)
}

// RollResult holds the outcome of a dice roll
type RollResult struct {
	Total   int
	Highest int
	Lowest  int
	Rolls   []int
	Bonus   int
}
