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

type documentRepository struct {
	client *firestore.Client
}

func NewDocumentRepository(client *firestore.Client) repository.DocumentRepository {
	return &documentRepository{client: client}
}

func (r *documentRepository) col() *firestore.CollectionRef {
	return r.client.Collection(colDocuments)
}

func (r *documentRepository) Create(ctx context.Context, d *domain.Document) error {
	ref := r.col().NewDoc()
	_, err := ref.Set(ctx, d)
	logger.StoreResult("CREATE", colDocuments, err, "id", ref.ID, "title", d.Title)
	if err != nil {
		return mapErr("create document", err)
	}
	d.ID = ref.ID
	return nil
}

func (r *documentRepository) GetByID(ctx context.Context, id string) (*domain.Document, error) {
	snap, err := r.col().Doc(id).Get(ctx)
	if err != nil {
		return nil, mapErr("get document", err)
	}
	return snapToDocument(snap)
}

func (r *documentRepository) List(ctx context.Context) ([]domain.Document, error) {
	it := r.col().OrderBy("createdAt", firestore.Desc).Documents(ctx)
	return collectDocuments(it, false)
}

func (r *documentRepository) ListByBuilding(ctx context.Context, buildingID string) ([]domain.Document, error) {
	// Equality filter only, sorted in memory afterwards.
	it := r.col().Where("edificioId", "==", buildingID).Documents(ctx)
	return collectDocuments(it, true)
}

func (r *documentRepository) Delete(ctx context.Context, id string) error {
	logger.StoreCall("DELETE", colDocuments, "id", id)
	_, err := r.col().Doc(id).Delete(ctx)
	return mapErr("delete document", err)
}

func collectDocuments(it *firestore.DocumentIterator, sortLocal bool) ([]domain.Document, error) {
	defer it.Stop()
	var docs []domain.Document
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, mapErr("list documents", err)
		}
		d, err := snapToDocument(snap)
		if err != nil {
			return nil, err
		}
		docs = append(docs, *d)
	}
	if sortLocal {
		sort.Slice(docs, func(i, j int) bool {
			return docs[i].CreatedAt.After(docs[j].CreatedAt)
		})
	}
	return docs, nil
}

func snapToDocument(snap *firestore.DocumentSnapshot) (*domain.Document, error) {
	var d domain.Document
	if err := snap.DataTo(&d); err != nil {
		return nil, domain.WrapError(domain.ErrUnknown, "decode document %s: %v", snap.Ref.ID, err)
	}
	d.ID = snap.Ref.ID
	return &d, nil
}
