package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"habitat-portal-backend/internal/domain"
	"habitat-portal-backend/internal/logger"
	"habitat-portal-backend/internal/repository"
)

type reportRepository struct {
	client *firestore.Client
}

func NewReportRepository(client *firestore.Client) repository.ReportRepository {
	return &reportRepository{client: client}
}

func (r *reportRepository) col() *firestore.CollectionRef {
	return r.client.Collection(colReports)
}

// query builds the scoped, ordered report query. Unscoped feeds are a
// supported mode (the admin "Global" view); the normalization of what counts
// as unscoped lives in repository.UnscopedBuilding.
func (r *reportRepository) query(buildingID string, limit int) firestore.Query {
	q := r.col().Query
	if !repository.UnscopedBuilding(buildingID) {
		q = q.Where("edificioId", "==", buildingID)
	}
	q = q.OrderBy("fecha", firestore.Desc)
	if limit > 0 {
		q = q.Limit(limit)
	}
	return q
}

func (r *reportRepository) Create(ctx context.Context, rep *domain.Report) error {
	logger.StoreCall("CREATE", colReports, "building_id", rep.BuildingID, "ticket", rep.Ticket)
	ref := r.col().NewDoc()
	_, err := ref.Set(ctx, rep)
	logger.StoreResult("CREATE", colReports, err, "id", ref.ID)
	if err != nil {
		return mapErr("create report", err)
	}
	rep.ID = ref.ID
	return nil
}

func (r *reportRepository) GetByID(ctx context.Context, id string) (*domain.Report, error) {
	snap, err := r.col().Doc(id).Get(ctx)
	if err != nil {
		return nil, mapErr("get report", err)
	}
	return snapToReport(snap)
}

func (r *reportRepository) List(ctx context.Context, buildingID string, limit int) ([]domain.Report, error) {
	it := r.query(buildingID, limit).Documents(ctx)
	return collectReports(it)
}

func (r *reportRepository) Watch(ctx context.Context, buildingID string, limit int) (<-chan []domain.Report, error) {
	snaps := r.query(buildingID, limit).Snapshots(ctx)
	out := make(chan []domain.Report, 1)

	go func() {
		defer close(out)
		defer snaps.Stop()
		for {
			qs, err := snaps.Next()
			if err != nil {
				if isCancelled(ctx, err) {
					return
				}
				logger.Error("Report watch failed", "building_id", buildingID, "error", err)
				return
			}
			reports, err := collectReports(qs.Documents)
			if err != nil {
				logger.Error("Report watch decode failed", "building_id", buildingID, "error", err)
				continue
			}
			deliver(ctx, out, reports)
		}
	}()

	return out, nil
}

// deliver pushes a snapshot, replacing an undelivered older one. A slow
// subscriber only ever misses superseded snapshots, never the latest.
func deliver(ctx context.Context, out chan []domain.Report, reports []domain.Report) {
	for {
		select {
		case out <- reports:
			return
		case <-ctx.Done():
			return
		default:
			select {
			case <-out:
			default:
			}
		}
	}
}

func (r *reportRepository) Resolve(ctx context.Context, id, resolution string) error {
	logger.StoreCall("UPDATE", colReports, "id", id, "status", domain.ReportResolved)
	// One partial update carries text, status and timestamp together so no
	// reader can observe a resolved report without its resolution text.
	_, err := r.col().Doc(id).Update(ctx, []firestore.Update{
		{Path: "respuestaAdmin", Value: resolution},
		{Path: "status", Value: string(domain.ReportResolved)},
		{Path: "fechaRespuesta", Value: firestore.ServerTimestamp},
	})
	logger.StoreResult("UPDATE", colReports, err, "id", id)
	return mapErr("resolve report", err)
}

func (r *reportRepository) Delete(ctx context.Context, id string) error {
	logger.StoreCall("DELETE", colReports, "id", id)
	_, err := r.col().Doc(id).Delete(ctx)
	return mapErr("delete report", err)
}

func collectReports(it *firestore.DocumentIterator) ([]domain.Report, error) {
	defer it.Stop()
	var reports []domain.Report
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, mapErr("list reports", err)
		}
		rep, err := snapToReport(snap)
		if err != nil {
			return nil, err
		}
		reports = append(reports, *rep)
	}
	return reports, nil
}

func snapToReport(snap *firestore.DocumentSnapshot) (*domain.Report, error) {
	var rep domain.Report
	if err := snap.DataTo(&rep); err != nil {
		return nil, domain.WrapError(domain.ErrUnknown, "decode report %s: %v", snap.Ref.ID, err)
	}
	rep.ID = snap.Ref.ID
	return &rep, nil
}
