package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"habitat-portal-backend/internal/domain"
	"habitat-portal-backend/internal/logger"
	"habitat-portal-backend/internal/repository"
)

type unitRepository struct {
	client *firestore.Client
}

func NewUnitRepository(client *firestore.Client) repository.UnitRepository {
	return &unitRepository{client: client}
}

func (r *unitRepository) col() *firestore.CollectionRef {
	return r.client.Collection(colUnits)
}

func (r *unitRepository) Create(ctx context.Context, u *domain.Unit) error {
	if u.Status == "" {
		u.Status = domain.UnitAvailable
	}
	ref := r.col().NewDoc()
	_, err := ref.Set(ctx, u)
	logger.StoreResult("CREATE", colUnits, err, "id", ref.ID, "building_id", u.BuildingID)
	if err != nil {
		return mapErr("create unit", err)
	}
	u.ID = ref.ID
	return nil
}

func (r *unitRepository) GetByID(ctx context.Context, id string) (*domain.Unit, error) {
	snap, err := r.col().Doc(id).Get(ctx)
	if err != nil {
		return nil, mapErr("get unit", err)
	}
	return snapToUnit(snap)
}

func (r *unitRepository) ListByBuilding(ctx context.Context, buildingID string) ([]domain.Unit, error) {
	it := r.col().Where("edificioId", "==", buildingID).Documents(ctx)
	return collectUnits(it)
}

func (r *unitRepository) List(ctx context.Context) ([]domain.Unit, error) {
	it := r.col().Documents(ctx)
	return collectUnits(it)
}

func (r *unitRepository) Update(ctx context.Context, u *domain.Unit) error {
	// A full Set keeps unknown legacy fields from older records out of the
	// document, matching how the admin form always writes the whole unit.
	_, err := r.col().Doc(u.ID).Set(ctx, u)
	logger.StoreResult("SET", colUnits, err, "id", u.ID)
	return mapErr("update unit", err)
}

func (r *unitRepository) Delete(ctx context.Context, id string) error {
	logger.StoreCall("DELETE", colUnits, "id", id)
	_, err := r.col().Doc(id).Delete(ctx)
	return mapErr("delete unit", err)
}

func collectUnits(it *firestore.DocumentIterator) ([]domain.Unit, error) {
	defer it.Stop()
	var units []domain.Unit
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, mapErr("list units", err)
		}
		u, err := snapToUnit(snap)
		if err != nil {
			return nil, err
		}
		units = append(units, *u)
	}
	return units, nil
}

func snapToUnit(snap *firestore.DocumentSnapshot) (*domain.Unit, error) {
	var u domain.Unit
	if err := snap.DataTo(&u); err != nil {
		return nil, domain.WrapError(domain.ErrUnknown, "decode unit %s: %v", snap.Ref.ID, err)
	}
	u.ID = snap.Ref.ID
	return &u, nil
}
