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

type consumptionRepository struct {
	client *firestore.Client
}

func NewConsumptionRepository(client *firestore.Client) repository.ConsumptionRepository {
	return &consumptionRepository{client: client}
}

func (r *consumptionRepository) col() *firestore.CollectionRef {
	return r.client.Collection(colConsumption)
}

func (r *consumptionRepository) Create(ctx context.Context, c *domain.Consumption) error {
	ref := r.col().NewDoc()
	_, err := ref.Set(ctx, c)
	logger.StoreResult("CREATE", colConsumption, err, "id", ref.ID, "unit", c.Unit)
	if err != nil {
		return mapErr("create consumption", err)
	}
	c.ID = ref.ID
	return nil
}

func (r *consumptionRepository) GetByID(ctx context.Context, id string) (*domain.Consumption, error) {
	snap, err := r.col().Doc(id).Get(ctx)
	if err != nil {
		return nil, mapErr("get consumption", err)
	}
	return snapToConsumption(snap)
}

func (r *consumptionRepository) List(ctx context.Context, buildingID string) ([]domain.Consumption, error) {
	q := r.col().Query
	if !repository.UnscopedBuilding(buildingID) {
		q = q.Where("edificioId", "==", buildingID)
	}
	records, err := collectConsumption(q.Documents(ctx))
	if err != nil {
		return nil, err
	}
	sortConsumptionDesc(records)
	return records, nil
}

func (r *consumptionRepository) ListForUnit(ctx context.Context, buildingID, unit string) ([]domain.Consumption, error) {
	// Two equality filters plus an order-by would need a composite index;
	// the result set per unit is small, so sort in memory instead.
	q := r.col().
		Where("edificioId", "==", buildingID).
		Where("unidad", "==", unit)
	records, err := collectConsumption(q.Documents(ctx))
	if err != nil {
		return nil, err
	}
	sortConsumptionDesc(records)
	return records, nil
}

func (r *consumptionRepository) Update(ctx context.Context, c *domain.Consumption) error {
	_, err := r.col().Doc(c.ID).Update(ctx, []firestore.Update{
		{Path: "edificioId", Value: c.BuildingID},
		{Path: "unidad", Value: c.Unit},
		{Path: "tipo", Value: string(c.Utility)},
		{Path: "periodo", Value: c.Period},
		{Path: "lectura", Value: c.Reading},
		{Path: "valor", Value: c.Amount},
		{Path: "ultimaModificacion", Value: firestore.ServerTimestamp},
	})
	logger.StoreResult("UPDATE", colConsumption, err, "id", c.ID)
	return mapErr("update consumption", err)
}

func (r *consumptionRepository) Delete(ctx context.Context, id string) error {
	_, err := r.col().Doc(id).Delete(ctx)
	return mapErr("delete consumption", err)
}

func sortConsumptionDesc(records []domain.Consumption) {
	sort.Slice(records, func(i, j int) bool {
		return records[i].RecordedAt.After(records[j].RecordedAt)
	})
}

func collectConsumption(it *firestore.DocumentIterator) ([]domain.Consumption, error) {
	defer it.Stop()
	var records []domain.Consumption
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, mapErr("list consumption", err)
		}
		c, err := snapToConsumption(snap)
		if err != nil {
			return nil, err
		}
		records = append(records, *c)
	}
	return records, nil
}

func snapToConsumption(snap *firestore.DocumentSnapshot) (*domain.Consumption, error) {
	var c domain.Consumption
	if err := snap.DataTo(&c); err != nil {
		return nil, domain.WrapError(domain.ErrUnknown, "decode consumption %s: %v", snap.Ref.ID, err)
	}
	c.ID = snap.Ref.ID
	return &c, nil
}
