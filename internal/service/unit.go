package service

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"
	"unicode"

	"habitat-portal-backend/internal/domain"
	"habitat-portal-backend/internal/repository"
	"habitat-portal-backend/internal/storage"
)

type unitService struct {
	units repository.UnitRepository
	files storage.ObjectStorage
}

func NewUnitService(units repository.UnitRepository, files storage.ObjectStorage) UnitService {
	return &unitService{units: units, files: files}
}

func (s *unitService) Create(ctx context.Context, u *domain.Unit) error {
	u.BuildingID = strings.TrimSpace(u.BuildingID)
	return withRetry(ctx, "units.Create", func() error {
		return s.units.Create(ctx, u)
	})
}

func (s *unitService) Update(ctx context.Context, u *domain.Unit) error {
	u.BuildingID = strings.TrimSpace(u.BuildingID)
	return withRetry(ctx, "units.Update", func() error {
		return s.units.Update(ctx, u)
	})
}

func (s *unitService) Delete(ctx context.Context, id string) error {
	return withRetry(ctx, "units.Delete", func() error {
		return s.units.Delete(ctx, id)
	})
}

func (s *unitService) Get(ctx context.Context, id string) (*domain.Unit, error) {
	return s.units.GetByID(ctx, strings.TrimSpace(id))
}

func (s *unitService) ListByBuilding(ctx context.Context, buildingID string, filter UnitListFilter) ([]domain.Unit, error) {
	units, err := s.units.ListByBuilding(ctx, strings.TrimSpace(buildingID))
	if err != nil {
		return nil, err
	}

	switch filter {
	case UnitsActive:
		units = filterUnits(units, func(u *domain.Unit) bool {
			return u.Status == domain.UnitAvailable
		})
	case UnitsInactive:
		units = filterUnits(units, func(u *domain.Unit) bool {
			return u.Status == domain.UnitSold || u.Status == domain.UnitOccupied
		})
	}

	sortUnitsNatural(units)
	return units, nil
}

func (s *unitService) AddGalleryImage(ctx context.Context, unitID, filename, contentType string, r io.Reader) (string, error) {
	unit, err := s.units.GetByID(ctx, unitID)
	if err != nil {
		return "", err
	}

	path := fmt.Sprintf("inmuebles/%d_%s", time.Now().UnixMilli(), sanitizeFilename(filename))
	url, err := s.files.Upload(ctx, path, contentType, r)
	if err != nil {
		return "", err
	}

	unit.Gallery = append(unit.Gallery, url)
	if err := s.units.Update(ctx, unit); err != nil {
		return "", err
	}
	return url, nil
}

func filterUnits(units []domain.Unit, keep func(*domain.Unit) bool) []domain.Unit {
	out := units[:0]
	for i := range units {
		if keep(&units[i]) {
			out = append(out, units[i])
		}
	}
	return out
}

// sortUnitsNatural orders units by display label with embedded numbers
// compared numerically, so "9" sorts before "10" and "T2-101" before
// "T2-102".
func sortUnitsNatural(units []domain.Unit) {
	sort.Slice(units, func(i, j int) bool {
		return naturalLess(units[i].DisplayLabel(), units[j].DisplayLabel())
	})
}

func naturalLess(a, b string) bool {
	for a != "" && b != "" {
		if unicode.IsDigit(rune(a[0])) && unicode.IsDigit(rune(b[0])) {
			na, ra := leadingInt(a)
			nb, rb := leadingInt(b)
			if na != nb {
				return na < nb
			}
			a, b = ra, rb
			continue
		}
		if a[0] != b[0] {
			return a[0] < b[0]
		}
		a, b = a[1:], b[1:]
	}
	return len(a) < len(b)
}

func leadingInt(s string) (int, string) {
	i := 0
	n := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		n = n*10 + int(s[i]-'0')
		i++
	}
	return n, s[i:]
}

// sanitizeFilename collapses whitespace runs to underscores, matching how
// uploaded object names have always been built.
func sanitizeFilename(name string) string {
	return strings.Join(strings.Fields(name), "_")
}
