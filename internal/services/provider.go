package services

import (
	"github.com/questline/questline/internal/dice"
	"github.com/questline/questline/internal/notify"
	"github.com/questline/questline/internal/repositories/catalogs"
	"github.com/questline/questline/internal/repositories/explorations"
	progressrepo "github.com/questline/questline/internal/repositories/progress"
	catalogService "github.com/questline/questline/internal/services/catalog"
	combatService "github.com/questline/questline/internal/services/combat"
	dropService "github.com/questline/questline/internal/services/drop"
	eventService "github.com/questline/questline/internal/services/event"
	explorationService "github.com/questline/questline/internal/services/exploration"
	shopService "github.com/questline/questline/internal/services/shop"
)

// Provider holds all service instances
type Provider struct {
	CatalogService     catalogService.Service
	CombatService      combatService.Service
	DropService        dropService.Service
	EventService       eventService.Service
	ExplorationService explorationService.Service
	ShopService        shopService.Service
}

// ProviderConfig holds configuration for creating services
type ProviderConfig struct {
	CatalogRepository     catalogs.Repository
	ExplorationRepository explorations.Repository
	ProgressRepository    progressrepo.Repository
	Roller                dice.Roller
	Notifier              notify.Notifier
}

// NewProvider creates a new service provider with all services initialized
func NewProvider(cfg *ProviderConfig) *Provider {
	// Use in-memory repositories if none provided
	catalogRepo := cfg.CatalogRepository
	if catalogRepo == nil {
		catalogRepo = catalogs.NewInMemoryRepository()
	}

	explorationRepo := cfg.ExplorationRepository
	if explorationRepo == nil {
		explorationRepo = explorations.NewInMemoryRepository()
	}

	progressRepo := cfg.ProgressRepository
	if progressRepo == nil {
		progressRepo = progressrepo.NewInMemoryRepository()
	}

	roller := cfg.Roller
	if roller == nil {
		roller = dice.NewRandomRoller()
	}

	catSvc := catalogService.NewService(&catalogService.ServiceConfig{
		Repository: catalogRepo,
	})

	cmbSvc := combatService.NewService(&combatService.ServiceConfig{
		Roller: roller,
	})

	drpSvc := dropService.NewService(&dropService.ServiceConfig{
		Roller: roller,
	})

	evtSvc := eventService.NewService(&eventService.ServiceConfig{
		DropService: drpSvc,
	})

	expSvc := explorationService.NewService(&explorationService.ServiceConfig{
		ExplorationRepository: explorationRepo,
		ProgressRepository:    progressRepo,
		CatalogService:        catSvc,
		CombatService:         cmbSvc,
		EventService:          evtSvc,
		DropService:           drpSvc,
		Notifier:              cfg.Notifier,
	})

	shpSvc := shopService.NewService(&shopService.ServiceConfig{
		ExplorationRepository: explorationRepo,
		ProgressRepository:    progressRepo,
		CatalogService:        catSvc,
	})

	return &Provider{
		CatalogService:     catSvc,
		CombatService:      cmbSvc,
		DropService:        drpSvc,
		EventService:       evtSvc,
		ExplorationService: expSvc,
		ShopService:        shpSvc,
	}
}
