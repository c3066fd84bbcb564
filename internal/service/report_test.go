package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"habitat-portal-backend/internal/domain"
)

func residentProfile() *domain.Profile {
	return &domain.Profile{
		UserID:     "user-1",
		Name:       "Laura Pérez",
		Phone:      "3001234567",
		Role:       domain.RoleResident,
		BuildingID: "bld-1",
		Unit:       "302",
	}
}

func TestReportService_Submit(t *testing.T) {
	ctx := context.Background()

	t.Run("EmptyBody", func(t *testing.T) {
		svc := NewReportService(new(MockReportRepo), new(MockUnitRepo))
		_, err := svc.Submit(ctx, residentProfile(), "unit-2", "   ")
		assert.ErrorIs(t, err, ErrEmptyBody)
	})

	t.Run("WrongBuilding", func(t *testing.T) {
		units := new(MockUnitRepo)
		units.On("GetByID", ctx, "unit-2").Return(&domain.Unit{ID: "unit-2", BuildingID: "other", Label: "101"}, nil)
		svc := NewReportService(new(MockReportRepo), units)

		_, err := svc.Submit(ctx, residentProfile(), "unit-2", "Ruido excesivo")
		assert.ErrorIs(t, err, ErrWrongBuilding)
	})

	t.Run("OwnUnitRejectedBeforeCreate", func(t *testing.T) {
		reports := new(MockReportRepo)
		units := new(MockUnitRepo)
		// Label differs only in case from the caller's unit.
		units.On("GetByID", ctx, "unit-own").Return(&domain.Unit{ID: "unit-own", BuildingID: "bld-1", Name: "apt 302", Label: "302"}, nil)
		svc := NewReportService(reports, units)

		p := residentProfile()
		p.Unit = "APT 302"
		_, err := svc.Submit(ctx, p, "unit-own", "Ruido excesivo")
		assert.ErrorIs(t, err, ErrSelfReport)
		reports.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("DenormalizesContactSnapshot", func(t *testing.T) {
		reports := new(MockReportRepo)
		units := new(MockUnitRepo)
		units.On("GetByID", ctx, "unit-2").Return(&domain.Unit{
			ID: "unit-2", BuildingID: "bld-1", Label: "101", CellPhone: "3109876543",
		}, nil)
		reports.On("Create", ctx, mock.AnythingOfType("*domain.Report")).Return(nil)
		svc := NewReportService(reports, units)

		report, err := svc.Submit(ctx, residentProfile(), "unit-2", "Ruido excesivo")
		assert.NoError(t, err)
		assert.Equal(t, "bld-1", report.BuildingID)
		assert.Equal(t, "101", report.TargetUnit)
		assert.Equal(t, "3109876543", report.TargetPhone)
		assert.Equal(t, "302", report.OriginUnit)
		assert.Equal(t, "3001234567", report.OriginPhone)
		assert.Equal(t, domain.ReportPending, report.Status)
		assert.Equal(t, domain.ReportKindIncident, report.Kind)
		assert.True(t, report.IsPending())
		reports.AssertExpectations(t)
	})

	t.Run("MissingPhoneFallback", func(t *testing.T) {
		reports := new(MockReportRepo)
		units := new(MockUnitRepo)
		units.On("GetByID", ctx, "unit-2").Return(&domain.Unit{ID: "unit-2", BuildingID: "bld-1", Label: "101"}, nil)
		reports.On("Create", ctx, mock.AnythingOfType("*domain.Report")).Return(nil)
		svc := NewReportService(reports, units)

		p := residentProfile()
		p.Phone = ""
		report, err := svc.Submit(ctx, p, "unit-2", "Fuga de agua")
		assert.NoError(t, err)
		assert.Equal(t, "No registrado", report.OriginPhone)
		assert.Equal(t, "No registrado", report.TargetPhone)
	})
}

func TestNewTicketFormat(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		ticket := newTicket()
		assert.True(t, strings.HasPrefix(ticket, "REP-"))
		assert.Len(t, ticket, 12)
		assert.Equal(t, strings.ToUpper(ticket), ticket)
		assert.False(t, seen[ticket], "duplicate ticket %s", ticket)
		seen[ticket] = true
	}
}

func TestReportService_Resolve(t *testing.T) {
	ctx := context.Background()
	admin := &domain.Profile{UserID: "admin-1", Role: domain.RoleAdmin}

	t.Run("EmptyResolution", func(t *testing.T) {
		reports := new(MockReportRepo)
		svc := NewReportService(reports, new(MockUnitRepo))
		err := svc.Resolve(ctx, admin, "rep-1", "  \t ")
		assert.ErrorIs(t, err, ErrEmptyResolution)
		reports.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Resolves", func(t *testing.T) {
		reports := new(MockReportRepo)
		reports.On("Resolve", ctx, "rep-1", "Se habló con el residente").Return(nil).Once()
		svc := NewReportService(reports, new(MockUnitRepo))

		err := svc.Resolve(ctx, admin, "rep-1", "Se habló con el residente")
		assert.NoError(t, err)
		reports.AssertExpectations(t)
	})

	t.Run("SecondResolveOverwrites", func(t *testing.T) {
		// Last write wins: a second resolution is just another update.
		reports := new(MockReportRepo)
		reports.On("Resolve", ctx, "rep-1", "Primera respuesta").Return(nil).Once()
		reports.On("Resolve", ctx, "rep-1", "Respuesta corregida").Return(nil).Once()
		svc := NewReportService(reports, new(MockUnitRepo))

		assert.NoError(t, svc.Resolve(ctx, admin, "rep-1", "Primera respuesta"))
		assert.NoError(t, svc.Resolve(ctx, admin, "rep-1", "Respuesta corregida"))
		reports.AssertExpectations(t)
	})
}

func TestReportService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("AdminDeletesAnyReport", func(t *testing.T) {
		reports := new(MockReportRepo)
		reports.On("Delete", ctx, "rep-1").Return(nil).Once()
		svc := NewReportService(reports, new(MockUnitRepo))

		admin := &domain.Profile{UserID: "admin-1", Role: domain.RoleAdmin}
		assert.NoError(t, svc.Delete(ctx, admin, "rep-1"))
		reports.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
		reports.AssertExpectations(t)
	})

	t.Run("AuthorDeletesOwn", func(t *testing.T) {
		reports := new(MockReportRepo)
		reports.On("GetByID", ctx, "rep-1").Return(&domain.Report{ID: "rep-1", UserID: "user-1"}, nil)
		reports.On("Delete", ctx, "rep-1").Return(nil).Once()
		svc := NewReportService(reports, new(MockUnitRepo))

		assert.NoError(t, svc.Delete(ctx, residentProfile(), "rep-1"))
		reports.AssertExpectations(t)
	})

	t.Run("NonAuthorRejectedBeforeMutation", func(t *testing.T) {
		reports := new(MockReportRepo)
		reports.On("GetByID", ctx, "rep-1").Return(&domain.Report{ID: "rep-1", UserID: "someone-else"}, nil)
		svc := NewReportService(reports, new(MockUnitRepo))

		err := svc.Delete(ctx, residentProfile(), "rep-1")
		assert.ErrorIs(t, err, ErrNotAuthor)
		reports.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

// memReportRepo is a small in-memory store for exercising the full report
// lifecycle through the service without mock choreography.
type memReportRepo struct {
	seq     int
	records map[string]*domain.Report
}

func newMemReportRepo() *memReportRepo {
	return &memReportRepo{records: make(map[string]*domain.Report)}
}

func (m *memReportRepo) Create(_ context.Context, r *domain.Report) error {
	m.seq++
	r.ID = fmt.Sprintf("rep-%d", m.seq)
	r.CreatedAt = time.Now()
	stored := *r
	m.records[r.ID] = &stored
	return nil
}

func (m *memReportRepo) GetByID(_ context.Context, id string) (*domain.Report, error) {
	r, ok := m.records[id]
	if !ok {
		return nil, domain.WrapError(domain.ErrNotFound, "report %s", id)
	}
	out := *r
	return &out, nil
}

func (m *memReportRepo) List(_ context.Context, buildingID string, limit int) ([]domain.Report, error) {
	out := make([]domain.Report, 0, len(m.records))
	for _, r := range m.records {
		if buildingID != "" && r.BuildingID != buildingID {
			continue
		}
		out = append(out, *r)
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memReportRepo) Watch(context.Context, string, int) (<-chan []domain.Report, error) {
	ch := make(chan []domain.Report)
	close(ch)
	return ch, nil
}

func (m *memReportRepo) Resolve(_ context.Context, id, resolution string) error {
	r, ok := m.records[id]
	if !ok {
		return domain.WrapError(domain.ErrNotFound, "report %s", id)
	}
	r.Resolution = resolution
	r.Status = domain.ReportResolved
	r.ResolvedAt = time.Now()
	return nil
}

func (m *memReportRepo) Delete(_ context.Context, id string) error {
	delete(m.records, id)
	return nil
}

func TestReportLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := newMemReportRepo()
	units := new(MockUnitRepo)
	units.On("GetByID", ctx, "unit-2").Return(&domain.Unit{
		ID: "unit-2", BuildingID: "bld-1", Label: "101", CellPhone: "3109876543",
	}, nil)
	svc := NewReportService(repo, units)

	submitted, err := svc.Submit(ctx, residentProfile(), "unit-2", "Ruido excesivo")
	require.NoError(t, err)
	require.NotEmpty(t, submitted.ID)
	assert.Equal(t, domain.ReportPending, submitted.Status)

	admin := &domain.Profile{UserID: "admin-1", Role: domain.RoleAdmin}
	require.NoError(t, svc.Resolve(ctx, admin, submitted.ID, "Se habló con el residente"))

	stored, err := repo.GetByID(ctx, submitted.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ReportResolved, stored.Status)
	assert.Equal(t, "Se habló con el residente", stored.Resolution)
	assert.Equal(t, "Ruido excesivo", stored.Body)
	assert.Equal(t, submitted.Ticket, stored.Ticket)
	assert.False(t, stored.ResolvedAt.IsZero())
	assert.False(t, stored.IsPending())
	assert.True(t, stored.Valid())
}

func TestReportService_ReportableUnits(t *testing.T) {
	ctx := context.Background()
	units := new(MockUnitRepo)
	units.On("ListByBuilding", ctx, "bld-1").Return([]domain.Unit{
		{ID: "u10", BuildingID: "bld-1", Label: "10"},
		{ID: "u302", BuildingID: "bld-1", Label: "302"}, // caller's own
		{ID: "u9", BuildingID: "bld-1", Label: "9"},
		{ID: "u101", BuildingID: "bld-1", Label: "101"},
	}, nil)
	svc := NewReportService(new(MockReportRepo), units)

	out, err := svc.ReportableUnits(ctx, residentProfile())
	assert.NoError(t, err)

	labels := make([]string, 0, len(out))
	for _, u := range out {
		labels = append(labels, u.Label)
	}
	assert.Equal(t, []string{"9", "10", "101"}, labels)
}
