package catalog

//go:generate mockgen -destination=mock/mock_service.go -package=mockcatalog -source=service.go

import (
	"context"
	"strings"

	"github.com/questline/questline/internal/entities"
	apperrors "github.com/questline/questline/internal/errors"
	"github.com/questline/questline/internal/repositories/catalogs"
)

// Repository is an alias for the catalog repository interface
type Repository = catalogs.Repository

// Service defines the dungeon catalog lookups the engine consumes
type Service interface {
	// GetDungeon retrieves an active dungeon by slug
	GetDungeon(ctx context.Context, slug string) (*entities.Dungeon, error)

	// ListActive retrieves all dungeons open for exploration
	ListActive(ctx context.Context) ([]*entities.Dungeon, error)
}

// service implements the Service interface
type service struct {
	repository Repository
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Repository Repository // Required
}

// NewService creates a new catalog service
func NewService(cfg *ServiceConfig) Service {
	if cfg.Repository == nil {
		panic("repository is required")
	}

	return &service{
		repository: cfg.Repository,
	}
}

// GetDungeon retrieves an active dungeon by slug
func (s *service) GetDungeon(ctx context.Context, slug string) (*entities.Dungeon, error) {
	if strings.TrimSpace(slug) == "" {
		return nil, apperrors.InvalidArgument("dungeon slug is required")
	}

	dungeon, err := s.repository.GetBySlug(ctx, slug)
	if err != nil {
		return nil, apperrors.Wrapf(err, "failed to get dungeon '%s'", slug).
			WithMeta("dungeon_slug", slug)
	}

	if !dungeon.Active {
		return nil, apperrors.NotFoundf("dungeon '%s' is not open for exploration", slug).
			WithMeta("dungeon_slug", slug)
	}

	return dungeon, nil
}

// ListActive retrieves all dungeons open for exploration
func (s *service) ListActive(ctx context.Context) ([]*entities.Dungeon, error) {
	dungeons, err := s.repository.ListActive(ctx)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list active dungeons")
	}

	return dungeons, nil
}
