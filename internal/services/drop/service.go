package drop

//go:generate mockgen -destination=mock/mock_service.go -package=mockdrop -source=service.go

import (
	"context"

	"github.com/questline/questline/internal/dice"
	"github.com/questline/questline/internal/entities"
)

// Drop is one item won from a drop table roll
type Drop struct {
	ItemID string
}

// Service rolls item drops from monster and event drop tables
type Service interface {
	// RollDrops rolls every entry of a drop table independently
	RollDrops(ctx context.Context, table []entities.DropEntry) ([]Drop, error)
}

// service implements the Service interface
type service struct {
	roller dice.Roller
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Roller dice.Roller // Optional, defaults to a random roller
}

// NewService creates a new drop service
func NewService(cfg *ServiceConfig) Service {
	svc := &service{}

	if cfg != nil && cfg.Roller != nil {
		svc.roller = cfg.Roller
	} else {
		svc.roller = dice.NewRandomRoller()
	}

	return svc
}

// RollDrops rolls every entry of a drop table independently
func (s *service) RollDrops(ctx context.Context, table []entities.DropEntry) ([]Drop, error) {
	var drops []Drop

	for _, entry := range table {
		if entry.ItemID == "" || entry.Rate <= 0 {
			continue
		}

		roll, err := s.roller.Percent()
		if err != nil {
			return nil, err
		}

		if roll < entry.Rate {
			drops = append(drops, Drop{ItemID: entry.ItemID})
		}
	}

	return drops, nil
}
