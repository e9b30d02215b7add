package catalogs

import (
	"context"

	"github.com/questline/questline/internal/entities"
)

// Repository defines the interface for dungeon catalog storage. The catalog
// is reference data: the engine reads it, only seeding tools write it.
type Repository interface {
	// GetBySlug retrieves a dungeon definition by slug
	GetBySlug(ctx context.Context, slug string) (*entities.Dungeon, error)

	// ListActive retrieves all dungeons open for exploration
	ListActive(ctx context.Context) ([]*entities.Dungeon, error)

	// Put stores a dungeon definition, overwriting any prior one
	Put(ctx context.Context, dungeon *entities.Dungeon) error
}
