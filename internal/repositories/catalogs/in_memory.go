package catalogs

import (
	"context"
	"fmt"
	"sync"

	"github.com/questline/questline/internal/entities"
	"github.com/questline/questline/internal/errors"
)

// inMemoryRepository implements Repository using in-memory storage
type inMemoryRepository struct {
	mu       sync.RWMutex
	dungeons map[string]*entities.Dungeon
}

// NewInMemoryRepository creates a new in-memory catalog repository
func NewInMemoryRepository() Repository {
	return &inMemoryRepository{
		dungeons: make(map[string]*entities.Dungeon),
	}
}

// GetBySlug retrieves a dungeon definition by slug
func (r *inMemoryRepository) GetBySlug(ctx context.Context, slug string) (*entities.Dungeon, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	dungeon, exists := r.dungeons[slug]
	if !exists {
		return nil, errors.NotFoundf("dungeon '%s' not found", slug)
	}

	// Return a copy to avoid external modifications
	dungeonCopy := *dungeon
	return &dungeonCopy, nil
}

// ListActive retrieves all dungeons open for exploration
func (r *inMemoryRepository) ListActive(ctx context.Context) ([]*entities.Dungeon, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var active []*entities.Dungeon
	for _, dungeon := range r.dungeons {
		if dungeon.Active {
			dungeonCopy := *dungeon
			active = append(active, &dungeonCopy)
		}
	}

	return active, nil
}

// Put stores a dungeon definition, overwriting any prior one
func (r *inMemoryRepository) Put(ctx context.Context, dungeon *entities.Dungeon) error {
	if dungeon == nil {
		return fmt.Errorf("dungeon cannot be nil")
	}
	if dungeon.Slug == "" {
		return fmt.Errorf("dungeon slug cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	dungeonCopy := *dungeon
	r.dungeons[dungeon.Slug] = &dungeonCopy
	return nil
}
