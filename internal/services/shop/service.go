package shop

//go:generate mockgen -destination=mock/mock_service.go -package=mockshop -source=service.go

import (
	"context"

	"github.com/questline/questline/internal/entities"
	apperrors "github.com/questline/questline/internal/errors"
	"github.com/questline/questline/internal/repositories/explorations"
	progressrepo "github.com/questline/questline/internal/repositories/progress"
	"github.com/questline/questline/internal/services/catalog"
	"github.com/questline/questline/internal/uuid"
)

// Actions a player can take at a shop encounter
const (
	ActionBuy   = "buy"
	ActionLeave = "leave"
)

// InteractResult is the outcome of a shop interaction
type InteractResult struct {
	Action    string
	ReceiptID string
	Item      *entities.ShopItem
	Gold      int
	Left      bool
}

// Service handles the mid-exploration shop encounter
type Service interface {
	// Interact performs a buy or leave action for the player's current
	// shop visit
	Interact(ctx context.Context, playerID, action, itemID string) (*InteractResult, error)
}

// service implements the Service interface
type service struct {
	explorationRepo explorations.Repository
	progressRepo    progressrepo.Repository
	catalogService  catalog.Service
	uuidGenerator   uuid.Generator
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	ExplorationRepository explorations.Repository // Required
	ProgressRepository    progressrepo.Repository // Required
	CatalogService        catalog.Service         // Required
	UUIDGenerator         uuid.Generator          // Optional
}

// NewService creates a new shop service
func NewService(cfg *ServiceConfig) Service {
	if cfg.ExplorationRepository == nil {
		panic("exploration repository is required")
	}
	if cfg.ProgressRepository == nil {
		panic("progress repository is required")
	}
	if cfg.CatalogService == nil {
		panic("catalog service is required")
	}

	svc := &service{
		explorationRepo: cfg.ExplorationRepository,
		progressRepo:    cfg.ProgressRepository,
		catalogService:  cfg.CatalogService,
		uuidGenerator:   cfg.UUIDGenerator,
	}

	if svc.uuidGenerator == nil {
		svc.uuidGenerator = uuid.NewGoogleUUIDGenerator()
	}

	return svc
}

// Interact performs a buy or leave action
func (s *service) Interact(ctx context.Context, playerID, action, itemID string) (*InteractResult, error) {
	state, err := s.explorationRepo.Get(ctx, playerID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to load exploration state")
	}
	if state == nil {
		return nil, apperrors.FailedPrecondition("no active exploration session")
	}

	switch action {
	case ActionBuy:
		return s.buy(ctx, state, itemID)
	case ActionLeave:
		return s.leave(ctx, state)
	default:
		return nil, apperrors.InvalidArgumentf("unknown shop action '%s'", action)
	}
}

func (s *service) buy(ctx context.Context, state *entities.ExplorationState, itemID string) (*InteractResult, error) {
	dungeon, err := s.catalogService.GetDungeon(ctx, state.DungeonSlug)
	if err != nil {
		return nil, err
	}

	item := dungeon.ShopItemByID(itemID)
	if item == nil {
		return nil, apperrors.NotFoundf("item '%s' is not in stock", itemID).
			WithMeta("dungeon_slug", state.DungeonSlug)
	}

	record, err := s.progressRepo.Get(ctx, state.PlayerID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to load player progress")
	}

	if record.Gold < item.Price {
		return nil, apperrors.FailedPreconditionf("not enough gold: have %d, need %d", record.Gold, item.Price)
	}

	record.Gold -= item.Price
	if err := s.progressRepo.Save(ctx, record); err != nil {
		return nil, apperrors.Wrap(err, "failed to save player progress")
	}

	return &InteractResult{
		Action:    ActionBuy,
		ReceiptID: s.uuidGenerator.New(),
		Item:      item,
		Gold:      record.Gold,
	}, nil
}

func (s *service) leave(ctx context.Context, state *entities.ExplorationState) (*InteractResult, error) {
	if state.Status.InShop {
		state.Status.InShop = false
		if err := s.explorationRepo.Save(ctx, state); err != nil {
			return nil, apperrors.Wrap(err, "failed to save exploration state")
		}
	}

	record, err := s.progressRepo.Get(ctx, state.PlayerID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to load player progress")
	}

	return &InteractResult{
		Action: ActionLeave,
		Gold:   record.Gold,
		Left:   true,
	}, nil
}
