package repository

import (
	"context"

	"habitat-portal-backend/internal/domain"
)

// AdminFeedLimit caps the admin-facing live report feed at the most recent
// records. The resident-facing feed is unscoped by count.
const AdminFeedLimit = 25

// UnscopedBuilding reports whether a building filter value means "no filter".
// Call sites historically passed "", "all" or "Global" interchangeably; the
// normalization lives here so every consumer agrees on what unscoped means.
func UnscopedBuilding(buildingID string) bool {
	return buildingID == "" || buildingID == "all" || buildingID == "Global"
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	// GetByAuthUID finds the user whose stored provider uid field matches.
	// This is the sign-in lookup; GetByID is the display-name lookup.
	GetByAuthUID(ctx context.Context, uid string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	SetActive(ctx context.Context, id string, active bool) error
}

type BuildingRepository interface {
	Create(ctx context.Context, b *domain.Building) error
	GetByID(ctx context.Context, id string) (*domain.Building, error)
	// ListActive returns active buildings newest first (public catalog).
	ListActive(ctx context.Context) ([]domain.Building, error)
	List(ctx context.Context) ([]domain.Building, error)
	Update(ctx context.Context, b *domain.Building) error
	Deactivate(ctx context.Context, id string) error
}

type UnitRepository interface {
	Create(ctx context.Context, u *domain.Unit) error
	GetByID(ctx context.Context, id string) (*domain.Unit, error)
	ListByBuilding(ctx context.Context, buildingID string) ([]domain.Unit, error)
	List(ctx context.Context) ([]domain.Unit, error)
	Update(ctx context.Context, u *domain.Unit) error
	Delete(ctx context.Context, id string) error
}

type ReportRepository interface {
	Create(ctx context.Context, r *domain.Report) error
	GetByID(ctx context.Context, id string) (*domain.Report, error)
	// List returns reports newest first. An unscoped buildingID (see
	// UnscopedBuilding) lists across all buildings. limit <= 0 means no limit.
	List(ctx context.Context, buildingID string, limit int) ([]domain.Report, error)
	// Watch establishes a live subscription over the same scope as List.
	// The returned channel re-delivers the full ordered result set whenever
	// any matching record changes, and is closed when ctx is cancelled or
	// the subscription fails.
	Watch(ctx context.Context, buildingID string, limit int) (<-chan []domain.Report, error)
	// Resolve performs the single atomic resolution update: resolution text,
	// status resuelto, resolution timestamp.
	Resolve(ctx context.Context, id, resolution string) error
	Delete(ctx context.Context, id string) error
}

type ConsumptionRepository interface {
	Create(ctx context.Context, c *domain.Consumption) error
	GetByID(ctx context.Context, id string) (*domain.Consumption, error)
	// List returns records newest first, optionally building-scoped.
	List(ctx context.Context, buildingID string) ([]domain.Consumption, error)
	// ListForUnit returns one unit's records newest first.
	ListForUnit(ctx context.Context, buildingID, unit string) ([]domain.Consumption, error)
	Update(ctx context.Context, c *domain.Consumption) error
	Delete(ctx context.Context, id string) error
}

type DocumentRepository interface {
	Create(ctx context.Context, d *domain.Document) error
	GetByID(ctx context.Context, id string) (*domain.Document, error)
	List(ctx context.Context) ([]domain.Document, error)
	ListByBuilding(ctx context.Context, buildingID string) ([]domain.Document, error)
	Delete(ctx context.Context, id string) error
}
