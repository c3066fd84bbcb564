package service

import (
	"context"
	"strings"

	"habitat-portal-backend/internal/domain"
	"habitat-portal-backend/internal/repository"
)

type consumptionService struct {
	records repository.ConsumptionRepository
}

func NewConsumptionService(records repository.ConsumptionRepository) ConsumptionService {
	return &consumptionService{records: records}
}

// normalize coerces identifying fields to trimmed strings so equality
// queries stay consistent across records written by different admin forms.
func normalize(c *domain.Consumption) {
	c.BuildingID = strings.TrimSpace(c.BuildingID)
	c.Unit = strings.TrimSpace(c.Unit)
}

func (s *consumptionService) Create(ctx context.Context, c *domain.Consumption) error {
	normalize(c)
	return withRetry(ctx, "consumption.Create", func() error {
		return s.records.Create(ctx, c)
	})
}

func (s *consumptionService) Update(ctx context.Context, c *domain.Consumption) error {
	normalize(c)
	return withRetry(ctx, "consumption.Update", func() error {
		return s.records.Update(ctx, c)
	})
}

func (s *consumptionService) Delete(ctx context.Context, id string) error {
	return withRetry(ctx, "consumption.Delete", func() error {
		return s.records.Delete(ctx, id)
	})
}

func (s *consumptionService) ListAdmin(ctx context.Context, buildingID string) ([]domain.Consumption, error) {
	return s.records.List(ctx, buildingID)
}

// ListForResident scopes to the caller's own building and unit. The scope
// comes from the resolved profile, never from request parameters.
func (s *consumptionService) ListForResident(ctx context.Context, p *domain.Profile) ([]domain.Consumption, error) {
	return s.records.ListForUnit(ctx, p.BuildingID, p.Unit)
}
