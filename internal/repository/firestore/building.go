package firestore

import (
	"context"
	"sort"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"habitat-portal-backend/internal/domain"
	"habitat-portal-backend/internal/logger"
	"habitat-portal-backend/internal/repository"
)

type buildingRepository struct {
	client *firestore.Client
}

func NewBuildingRepository(client *firestore.Client) repository.BuildingRepository {
	return &buildingRepository{client: client}
}

func (r *buildingRepository) col() *firestore.CollectionRef {
	return r.client.Collection(colBuildings)
}

func (r *buildingRepository) Create(ctx context.Context, b *domain.Building) error {
	b.Status = domain.BuildingActive
	ref := r.col().NewDoc()
	_, err := ref.Set(ctx, b)
	logger.StoreResult("CREATE", colBuildings, err, "id", ref.ID, "name", b.Name)
	if err != nil {
		return mapErr("create building", err)
	}
	b.ID = ref.ID
	return nil
}

func (r *buildingRepository) GetByID(ctx context.Context, id string) (*domain.Building, error) {
	snap, err := r.col().Doc(id).Get(ctx)
	if err != nil {
		return nil, mapErr("get building", err)
	}
	return snapToBuilding(snap)
}

func (r *buildingRepository) ListActive(ctx context.Context) ([]domain.Building, error) {
	// Equality filter only; ordering happens in memory so the query needs
	// no composite index.
	it := r.col().Where("estado", "==", string(domain.BuildingActive)).Documents(ctx)
	buildings, err := collectBuildings(it)
	if err != nil {
		return nil, err
	}
	sort.Slice(buildings, func(i, j int) bool {
		return buildings[i].CreatedAt.After(buildings[j].CreatedAt)
	})
	return buildings, nil
}

func (r *buildingRepository) List(ctx context.Context) ([]domain.Building, error) {
	it := r.col().Documents(ctx)
	buildings, err := collectBuildings(it)
	if err != nil {
		return nil, err
	}
	sort.Slice(buildings, func(i, j int) bool {
		return buildings[i].CreatedAt.After(buildings[j].CreatedAt)
	})
	return buildings, nil
}

func (r *buildingRepository) Update(ctx context.Context, b *domain.Building) error {
	_, err := r.col().Doc(b.ID).Update(ctx, []firestore.Update{
		{Path: "nombre", Value: b.Name},
		{Path: "departamento", Value: b.Department},
		{Path: "ciudad", Value: b.City},
		{Path: "barrio", Value: b.Neighborhood},
		{Path: "direccion", Value: b.Address},
		{Path: "telefonoAdmin", Value: b.AdminPhone},
		{Path: "emailAdmin", Value: b.AdminEmail},
		{Path: "logo", Value: b.LogoURL},
		{Path: "updatedAt", Value: firestore.ServerTimestamp},
	})
	return mapErr("update building", err)
}

func (r *buildingRepository) Deactivate(ctx context.Context, id string) error {
	logger.StoreCall("UPDATE", colBuildings, "id", id, "estado", domain.BuildingInactive)
	_, err := r.col().Doc(id).Update(ctx, []firestore.Update{
		{Path: "estado", Value: string(domain.BuildingInactive)},
		{Path: "inactivatedAt", Value: firestore.ServerTimestamp},
	})
	return mapErr("deactivate building", err)
}

func collectBuildings(it *firestore.DocumentIterator) ([]domain.Building, error) {
	defer it.Stop()
	var buildings []domain.Building
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, mapErr("list buildings", err)
		}
		b, err := snapToBuilding(snap)
		if err != nil {
			return nil, err
		}
		buildings = append(buildings, *b)
	}
	return buildings, nil
}

func snapToBuilding(snap *firestore.DocumentSnapshot) (*domain.Building, error) {
	var b domain.Building
	if err := snap.DataTo(&b); err != nil {
		return nil, domain.WrapError(domain.ErrUnknown, "decode building %s: %v", snap.Ref.ID, err)
	}
	b.ID = snap.Ref.ID
	return &b, nil
}
