// Package firestore implements the repository interfaces on the managed
// Firestore document store. All backend failures are classified into the
// domain error kinds via their gRPC status codes.
package firestore

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"habitat-portal-backend/internal/domain"
	"habitat-portal-backend/internal/repository"
)

// Collection names are the persisted layout contract shared with the SPA.
const (
	colUsers       = "usuarios"
	colBuildings   = "edificios"
	colUnits       = "inmuebles"
	colReports     = "mensajes"
	colConsumption = "consumos"
	colDocuments   = "documents"
)

type Store struct {
	client *firestore.Client
	repository.UserRepository
	repository.BuildingRepository
	repository.UnitRepository
	repository.ReportRepository
	repository.ConsumptionRepository
	repository.DocumentRepository
}

func NewStore(client *firestore.Client) *Store {
	return &Store{
		client:                client,
		UserRepository:        NewUserRepository(client),
		BuildingRepository:    NewBuildingRepository(client),
		UnitRepository:        NewUnitRepository(client),
		ReportRepository:      NewReportRepository(client),
		ConsumptionRepository: NewConsumptionRepository(client),
		DocumentRepository:    NewDocumentRepository(client),
	}
}

// Close releases the underlying client.
func (s *Store) Close() error {
	return s.client.Close()
}

// mapErr classifies a Firestore failure into a domain error kind. Transient
// kinds are the only ones callers retry.
func mapErr(op string, err error) error {
	if err == nil {
		return nil
	}
	var kind error
	switch status.Code(err) {
	case codes.NotFound:
		kind = domain.ErrNotFound
	case codes.PermissionDenied, codes.Unauthenticated:
		kind = domain.ErrPermissionDenied
	case codes.Aborted, codes.AlreadyExists, codes.FailedPrecondition:
		kind = domain.ErrConflict
	case codes.Unavailable, codes.DeadlineExceeded, codes.ResourceExhausted, codes.Internal:
		kind = domain.ErrTransient
	case codes.Canceled:
		return context.Canceled
	default:
		kind = domain.ErrUnknown
	}
	return fmt.Errorf("%s: %v: %w", op, err, kind)
}

// isCancelled reports whether a watch iterator error means the owning
// context was torn down rather than the backend failing.
func isCancelled(ctx context.Context, err error) bool {
	return ctx.Err() != nil || status.Code(err) == codes.Canceled
}
