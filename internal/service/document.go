package service

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"habitat-portal-backend/internal/domain"
	"habitat-portal-backend/internal/logger"
	"habitat-portal-backend/internal/repository"
	"habitat-portal-backend/internal/storage"
)

type documentService struct {
	documents repository.DocumentRepository
	buildings repository.BuildingRepository
	files     storage.ObjectStorage
}

func NewDocumentService(documents repository.DocumentRepository, buildings repository.BuildingRepository, files storage.ObjectStorage) DocumentService {
	return &documentService{documents: documents, buildings: buildings, files: files}
}

// Upload stores the file first, then writes the metadata record referencing
// it. The building name is denormalized into the record so resident listings
// need no join against a possibly-deactivated building.
func (s *documentService) Upload(ctx context.Context, title, buildingID, category, year, filename, contentType string, r io.Reader) (*domain.Document, error) {
	buildingID = strings.TrimSpace(buildingID)

	buildingName := "Sin nombre"
	if b, err := s.buildings.GetByID(ctx, buildingID); err == nil && b.Name != "" {
		buildingName = b.Name
	}

	if year == "" {
		year = strconv.Itoa(time.Now().Year())
	}

	path := fmt.Sprintf("documents/%s/%d_%s", buildingID, time.Now().UnixMilli(), sanitizeFilename(filename))
	url, err := s.files.Upload(ctx, path, contentType, r)
	if err != nil {
		return nil, err
	}

	doc := &domain.Document{
		Title:        title,
		BuildingID:   buildingID,
		BuildingName: buildingName,
		Category:     category,
		Year:         year,
		FileURL:      url,
		StoragePath:  path,
	}

	err = withRetry(ctx, "documents.Create", func() error {
		return s.documents.Create(ctx, doc)
	})
	if err != nil {
		// Metadata write failed after the object landed; remove the object
		// so the sweep job has nothing to find.
		if derr := s.files.Delete(ctx, path); derr != nil {
			logger.Error("Failed to remove orphaned object", "path", path, "error", derr)
		}
		return nil, err
	}

	logger.Info("Document uploaded", "id", doc.ID, "building_id", buildingID, "path", path)
	return doc, nil
}

// Delete removes the metadata record and then the stored object. A missing
// object is fine; a missing storage path means the record predates path
// tracking and only the metadata goes.
func (s *documentService) Delete(ctx context.Context, id string) error {
	doc, err := s.documents.GetByID(ctx, id)
	if err != nil {
		return err
	}

	err = withRetry(ctx, "documents.Delete", func() error {
		return s.documents.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	if doc.StoragePath != "" {
		if err := s.files.Delete(ctx, doc.StoragePath); err != nil {
			logger.Error("Failed to delete stored file", "id", id, "path", doc.StoragePath, "error", err)
		}
	}
	return nil
}

func (s *documentService) List(ctx context.Context) ([]domain.Document, error) {
	return s.documents.List(ctx)
}

func (s *documentService) ListByBuilding(ctx context.Context, buildingID string) ([]domain.Document, error) {
	return s.documents.ListByBuilding(ctx, strings.TrimSpace(buildingID))
}
