package progress

import (
	"context"

	"github.com/questline/questline/internal/entities"
)

// Repository defines the interface for durable player progress storage
type Repository interface {
	// Get retrieves a player's progress record; not-found is an error
	// because a progress record is created at class selection, before the
	// engine is ever reachable
	Get(ctx context.Context, playerID string) (*entities.PlayerProgress, error)

	// Save persists a player's progress record
	Save(ctx context.Context, progress *entities.PlayerProgress) error
}
