package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"habitat-portal-backend/internal/domain"
	"habitat-portal-backend/internal/logger"
	"habitat-portal-backend/internal/repository"
)

type reportService struct {
	reports repository.ReportRepository
	units   repository.UnitRepository
}

func NewReportService(reports repository.ReportRepository, units repository.UnitRepository) ReportService {
	return &reportService{reports: reports, units: units}
}

// newTicket builds a server-assigned, effectively unique ticket number. The
// numbers exist for residents to quote on the phone, nothing ever queries by
// them.
func newTicket() string {
	return "REP-" + strings.ToUpper(uuid.NewString()[:8])
}

func (s *reportService) Submit(ctx context.Context, p *domain.Profile, targetUnitID, body string) (*domain.Report, error) {
	if strings.TrimSpace(body) == "" {
		return nil, ErrEmptyBody
	}

	target, err := s.units.GetByID(ctx, targetUnitID)
	if err != nil {
		return nil, err
	}
	if target.BuildingID != p.BuildingID {
		return nil, ErrWrongBuilding
	}
	// The reportable list never offers the caller's own unit, but the list
	// is advisory; the check has to hold here too.
	if strings.EqualFold(target.DisplayLabel(), p.Unit) {
		return nil, ErrSelfReport
	}

	phone := p.Phone
	if phone == "" {
		phone = "No registrado"
	}

	// Contact details are denormalized at creation: the record is an audit
	// snapshot, later profile edits must not rewrite it.
	report := &domain.Report{
		BuildingID:  p.BuildingID,
		UserID:      p.UserID,
		UserName:    p.Name,
		TargetUnit:  target.DisplayLabel(),
		TargetPhone: target.ContactPhone(),
		OriginUnit:  p.Unit,
		OriginPhone: phone,
		Body:        body,
		Status:      domain.ReportPending,
		Kind:        domain.ReportKindIncident,
		Ticket:      newTicket(),
	}

	err = withRetry(ctx, "reports.Submit", func() error {
		return s.reports.Create(ctx, report)
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Report submitted", "ticket", report.Ticket, "building_id", report.BuildingID, "target_unit", report.TargetUnit)
	return report, nil
}

// Resolve attaches the resolution text and marks the report resolved in one
// update. Resolving an already-resolved report overwrites the previous
// resolution; there is deliberately no idempotency guard.
func (s *reportService) Resolve(ctx context.Context, p *domain.Profile, reportID, resolution string) error {
	if strings.TrimSpace(resolution) == "" {
		return ErrEmptyResolution
	}
	err := withRetry(ctx, "reports.Resolve", func() error {
		return s.reports.Resolve(ctx, reportID, resolution)
	})
	if err != nil {
		return err
	}
	logger.Info("Report resolved", "report_id", reportID, "admin", p.UserID)
	return nil
}

// Delete removes a report. Residents may only delete their own; the author
// check runs against the stored record before any mutation.
func (s *reportService) Delete(ctx context.Context, p *domain.Profile, reportID string) error {
	if !p.IsAdmin() {
		report, err := s.reports.GetByID(ctx, reportID)
		if err != nil {
			return err
		}
		if report.UserID != p.UserID {
			return ErrNotAuthor
		}
	}
	return withRetry(ctx, "reports.Delete", func() error {
		return s.reports.Delete(ctx, reportID)
	})
}

func (s *reportService) List(ctx context.Context, buildingID string, limit int) ([]domain.Report, error) {
	return s.reports.List(ctx, buildingID, limit)
}

func (s *reportService) ReportableUnits(ctx context.Context, p *domain.Profile) ([]domain.Unit, error) {
	units, err := s.units.ListByBuilding(ctx, p.BuildingID)
	if err != nil {
		return nil, err
	}

	own := strings.ToLower(p.Unit)
	out := make([]domain.Unit, 0, len(units))
	for _, u := range units {
		if strings.ToLower(u.DisplayLabel()) == own {
			continue
		}
		out = append(out, u)
	}
	sortUnitsNatural(out)
	return out, nil
}
