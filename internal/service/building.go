package service

import (
	"context"
	"strings"

	"habitat-portal-backend/internal/domain"
	"habitat-portal-backend/internal/repository"
)

type buildingService struct {
	buildings repository.BuildingRepository
}

func NewBuildingService(buildings repository.BuildingRepository) BuildingService {
	return &buildingService{buildings: buildings}
}

func (s *buildingService) Create(ctx context.Context, b *domain.Building) error {
	return withRetry(ctx, "buildings.Create", func() error {
		return s.buildings.Create(ctx, b)
	})
}

func (s *buildingService) Update(ctx context.Context, b *domain.Building) error {
	return withRetry(ctx, "buildings.Update", func() error {
		return s.buildings.Update(ctx, b)
	})
}

func (s *buildingService) Deactivate(ctx context.Context, id string) error {
	return withRetry(ctx, "buildings.Deactivate", func() error {
		return s.buildings.Deactivate(ctx, id)
	})
}

func (s *buildingService) Get(ctx context.Context, id string) (*domain.Building, error) {
	return s.buildings.GetByID(ctx, strings.TrimSpace(id))
}

func (s *buildingService) Catalog(ctx context.Context) ([]domain.Building, error) {
	return s.buildings.ListActive(ctx)
}

func (s *buildingService) List(ctx context.Context) ([]domain.Building, error) {
	return s.buildings.List(ctx)
}
