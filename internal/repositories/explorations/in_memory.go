package explorations

import (
	"context"
	"fmt"
	"sync"

	"github.com/questline/questline/internal/entities"
)

// inMemoryRepository implements Repository using in-memory storage
type inMemoryRepository struct {
	mu     sync.RWMutex
	states map[string]*entities.ExplorationState
}

// NewInMemoryRepository creates a new in-memory exploration repository
func NewInMemoryRepository() Repository {
	return &inMemoryRepository{
		states: make(map[string]*entities.ExplorationState),
	}
}

// Get retrieves a player's live session, nil when none exists
func (r *inMemoryRepository) Get(ctx context.Context, playerID string) (*entities.ExplorationState, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	state, exists := r.states[playerID]
	if !exists {
		return nil, nil
	}

	// Return a copy to avoid external modifications
	stateCopy := *state
	return &stateCopy, nil
}

// Save persists the session behind the version compare-and-swap
func (r *inMemoryRepository) Save(ctx context.Context, state *entities.ExplorationState) error {
	if state == nil {
		return fmt.Errorf("exploration state cannot be nil")
	}
	if state.PlayerID == "" {
		return fmt.Errorf("exploration state player ID cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored, exists := r.states[state.PlayerID]
	if exists {
		if stored.Version != state.Version {
			return ErrStaleState
		}
	} else if state.Version != 0 {
		return ErrStaleState
	}

	state.Version++
	stateCopy := *state
	r.states[state.PlayerID] = &stateCopy

	return nil
}

// Delete removes a player's session
func (r *inMemoryRepository) Delete(ctx context.Context, playerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.states, playerID)
	return nil
}

// ListActive retrieves every live session
func (r *inMemoryRepository) ListActive(ctx context.Context) ([]*entities.ExplorationState, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var active []*entities.ExplorationState
	for _, state := range r.states {
		stateCopy := *state
		active = append(active, &stateCopy)
	}

	return active, nil
}
