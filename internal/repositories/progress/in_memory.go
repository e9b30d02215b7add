package progress

import (
	"context"
	"fmt"
	"sync"

	"github.com/questline/questline/internal/entities"
	"github.com/questline/questline/internal/errors"
)

// inMemoryRepository implements Repository using in-memory storage
type inMemoryRepository struct {
	mu      sync.RWMutex
	records map[string]*entities.PlayerProgress
}

// NewInMemoryRepository creates a new in-memory progress repository
func NewInMemoryRepository() Repository {
	return &inMemoryRepository{
		records: make(map[string]*entities.PlayerProgress),
	}
}

// Get retrieves a player's progress record
func (r *inMemoryRepository) Get(ctx context.Context, playerID string) (*entities.PlayerProgress, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, exists := r.records[playerID]
	if !exists {
		return nil, errors.NotFoundf("no progress record for player '%s'", playerID)
	}

	// Return a copy to avoid external modifications; the explored set is
	// the only reference field
	recordCopy := *record
	recordCopy.ExploredFloors = make(map[int]bool, len(record.ExploredFloors))
	for floor, seen := range record.ExploredFloors {
		recordCopy.ExploredFloors[floor] = seen
	}
	return &recordCopy, nil
}

// Save persists a player's progress record
func (r *inMemoryRepository) Save(ctx context.Context, record *entities.PlayerProgress) error {
	if record == nil {
		return fmt.Errorf("progress cannot be nil")
	}
	if record.PlayerID == "" {
		return fmt.Errorf("progress player ID cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	recordCopy := *record
	recordCopy.ExploredFloors = make(map[int]bool, len(record.ExploredFloors))
	for floor, seen := range record.ExploredFloors {
		recordCopy.ExploredFloors[floor] = seen
	}
	r.records[record.PlayerID] = &recordCopy

	return nil
}
