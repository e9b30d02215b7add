package event

//go:generate mockgen -destination=mock/mock_service.go -package=mockevent -source=service.go

import (
	"context"
	"fmt"

	"github.com/questline/questline/internal/entities"
	apperrors "github.com/questline/questline/internal/errors"
	"github.com/questline/questline/internal/services/drop"
)

const (
	healPercent = 30
	trapPercent = 15
)

// Outcome is the effect of one resolved floor event
type Outcome struct {
	Log  string
	Kind entities.EventKind

	// HP is the player's HP after the event
	HP int

	// Pause signals the caller to stop processing this explore step and
	// hand control back to the client (shop encounters)
	Pause bool

	GoldDelta  int
	ExpDelta   int
	StatDeltas entities.CombatStats
	Drops      []drop.Drop
}

// Service applies floor events to an exploration step
type Service interface {
	// Resolve applies one event. Gold, experience, and stat deltas apply
	// in that order; HP effects depend on the event kind.
	Resolve(ctx context.Context, floorEvent *entities.FloorEvent, currentHP, maxHP int) (*Outcome, error)
}

// service implements the Service interface
type service struct {
	dropService drop.Service
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	DropService drop.Service // Required
}

// NewService creates a new event service
func NewService(cfg *ServiceConfig) Service {
	if cfg.DropService == nil {
		panic("drop service is required")
	}

	return &service{
		dropService: cfg.DropService,
	}
}

// Resolve applies one event
func (s *service) Resolve(ctx context.Context, floorEvent *entities.FloorEvent, currentHP, maxHP int) (*Outcome, error) {
	if floorEvent == nil {
		return nil, apperrors.InvalidArgument("event cannot be nil")
	}

	outcome := &Outcome{
		Kind:       floorEvent.Kind,
		HP:         currentHP,
		GoldDelta:  floorEvent.GoldDelta,
		ExpDelta:   floorEvent.ExpDelta,
		StatDeltas: floorEvent.StatDeltas.Clamp(),
	}

	switch floorEvent.Kind {
	case entities.EventKindHeal:
		healed := currentHP * healPercent / 100
		outcome.HP = currentHP + healed
		if outcome.HP > maxHP {
			outcome.HP = maxHP
		}
		outcome.Log = fmt.Sprintf("%s: recovered %d HP", floorEvent.Narrative, outcome.HP-currentHP)

	case entities.EventKindTrap:
		damage := maxHP * trapPercent / 100
		outcome.HP = currentHP - damage
		// A trap never outright kills
		if outcome.HP < 1 {
			outcome.HP = 1
		}
		outcome.Log = fmt.Sprintf("%s: took %d damage", floorEvent.Narrative, currentHP-outcome.HP)

	case entities.EventKindShop:
		outcome.Pause = true
		outcome.Log = fmt.Sprintf("%s: a merchant blocks the way", floorEvent.Narrative)

	default:
		outcome.Log = floorEvent.Narrative
	}

	if len(floorEvent.DropTable) > 0 {
		drops, err := s.dropService.RollDrops(ctx, floorEvent.DropTable)
		if err != nil {
			return nil, apperrors.Wrapf(err, "failed to roll drops for event '%s'", floorEvent.ID)
		}
		outcome.Drops = drops
	}

	return outcome, nil
}
