package service

import (
	"context"
	"errors"
	"io"

	"habitat-portal-backend/internal/domain"
)

// Validation and authorization errors surfaced by services. Store-level
// failures keep their domain error kinds.
var (
	ErrEmptyResolution = errors.New("resolution text is required")
	ErrEmptyBody       = errors.New("report body is required")
	ErrSelfReport      = errors.New("cannot report your own unit")
	ErrWrongBuilding   = errors.New("unit belongs to another building")
	ErrNotAuthor       = errors.New("only the report author may delete it")
	ErrInactiveUser    = errors.New("account is deactivated")
)

// AuthProvider is the slice of the identity platform the services need.
type AuthProvider interface {
	// CreateAccount provisions a login and returns the provider uid.
	CreateAccount(ctx context.Context, email, password, displayName string) (string, error)
	// SetDisabled enables or disables a login.
	SetDisabled(ctx context.Context, uid string, disabled bool) error
	// SignOut revokes the principal's refresh tokens, ending its sessions.
	SignOut(ctx context.Context, uid string) error
}

type IdentityService interface {
	// Resolve maps an authenticated provider uid to a portal profile.
	// Fail-closed: no matching active profile means the session is invalid
	// and the principal is signed out.
	Resolve(ctx context.Context, authUID string) (*domain.Profile, error)
}

type ReportService interface {
	Submit(ctx context.Context, p *domain.Profile, targetUnitID, body string) (*domain.Report, error)
	Resolve(ctx context.Context, p *domain.Profile, reportID, resolution string) error
	Delete(ctx context.Context, p *domain.Profile, reportID string) error
	List(ctx context.Context, buildingID string, limit int) ([]domain.Report, error)
	// ReportableUnits lists the units a resident may report: same building,
	// own unit excluded, natural label order.
	ReportableUnits(ctx context.Context, p *domain.Profile) ([]domain.Unit, error)
}

type UserService interface {
	// Create provisions the login and the profile record; the generated
	// initial password is returned exactly once.
	Create(ctx context.Context, u *domain.User) (password string, err error)
	Update(ctx context.Context, u *domain.User) error
	SetActive(ctx context.Context, id string, active bool) error
	List(ctx context.Context) ([]domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
}

type BuildingService interface {
	Create(ctx context.Context, b *domain.Building) error
	Update(ctx context.Context, b *domain.Building) error
	Deactivate(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*domain.Building, error)
	// Catalog lists active buildings newest first (public view).
	Catalog(ctx context.Context) ([]domain.Building, error)
	List(ctx context.Context) ([]domain.Building, error)
}

// UnitListFilter selects the occupancy bucket for admin unit listings.
type UnitListFilter string

const (
	UnitsAll      UnitListFilter = "todos"
	UnitsActive   UnitListFilter = "activos"
	UnitsInactive UnitListFilter = "inactivos"
)

type UnitService interface {
	Create(ctx context.Context, u *domain.Unit) error
	Update(ctx context.Context, u *domain.Unit) error
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*domain.Unit, error)
	ListByBuilding(ctx context.Context, buildingID string, filter UnitListFilter) ([]domain.Unit, error)
	// AddGalleryImage stores an image and appends its URL to the gallery.
	AddGalleryImage(ctx context.Context, unitID, filename, contentType string, r io.Reader) (string, error)
}

type ConsumptionService interface {
	Create(ctx context.Context, c *domain.Consumption) error
	Update(ctx context.Context, c *domain.Consumption) error
	Delete(ctx context.Context, id string) error
	// ListAdmin lists records, optionally building-scoped, newest first.
	ListAdmin(ctx context.Context, buildingID string) ([]domain.Consumption, error)
	// ListForResident lists the caller's own unit's records only.
	ListForResident(ctx context.Context, p *domain.Profile) ([]domain.Consumption, error)
}

type DocumentService interface {
	Upload(ctx context.Context, title, buildingID, category, year, filename, contentType string, r io.Reader) (*domain.Document, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.Document, error)
	ListByBuilding(ctx context.Context, buildingID string) ([]domain.Document, error)
}

type EmailService interface {
	SendPendingDigest(ctx context.Context, toEmail, toName, buildingName string, pending []domain.Report) error
}
