package explorations

import (
	"context"

	"github.com/questline/questline/internal/entities"
	"github.com/questline/questline/internal/errors"
)

// ErrStaleState is returned when a save loses a read-modify-write race:
// the stored version no longer matches the one the caller loaded.
var ErrStaleState = errors.Conflict("exploration state was modified concurrently")

// Repository defines the interface for exploration session storage. A
// player has at most one live session; Get returns (nil, nil) for the valid
// "not exploring" state.
type Repository interface {
	// Get retrieves a player's live session, nil when none exists
	Get(ctx context.Context, playerID string) (*entities.ExplorationState, error)

	// Save persists the session if the stored version still matches
	// state.Version, then bumps the version. Returns ErrStaleState on a
	// version mismatch.
	Save(ctx context.Context, state *entities.ExplorationState) error

	// Delete removes a player's session; deleting a missing session is a
	// no-op
	Delete(ctx context.Context, playerID string) error

	// ListActive retrieves every live session
	ListActive(ctx context.Context) ([]*entities.ExplorationState, error)
}
