package jobs

import (
	"context"

	"habitat-portal-backend/internal/domain"
	"habitat-portal-backend/internal/logger"
)

// SweepOrphans scans child collections for records pointing at missing or
// deactivated buildings. Buildings are never hard-deleted, so orphans are
// reported for operator review rather than removed.
func (jr *JobRunner) SweepOrphans() {
	jr.runWithRecovery("SweepOrphans", func() {
		ctx := context.Background()

		buildings, err := jr.store.BuildingRepository.List(ctx)
		if err != nil {
			logger.Error("Failed to list buildings", "error", err)
			return
		}
		active := make(map[string]bool, len(buildings))
		for i := range buildings {
			active[buildings[i].ID] = buildings[i].Status == domain.BuildingActive
		}

		orphaned := func(buildingID string) bool {
			if buildingID == "" {
				return false
			}
			return !active[buildingID]
		}

		units, err := jr.store.UnitRepository.List(ctx)
		if err != nil {
			logger.Error("Failed to list units", "error", err)
			return
		}
		unitOrphans := 0
		for i := range units {
			if orphaned(units[i].BuildingID) {
				unitOrphans++
				logger.Debug("Orphaned unit", "unit_id", units[i].ID, "building_id", units[i].BuildingID)
			}
		}

		reports, err := jr.store.ReportRepository.List(ctx, "", 0)
		if err != nil {
			logger.Error("Failed to list reports", "error", err)
			return
		}
		reportOrphans := 0
		for i := range reports {
			if orphaned(reports[i].BuildingID) {
				reportOrphans++
			}
		}

		docs, err := jr.store.DocumentRepository.List(ctx)
		if err != nil {
			logger.Error("Failed to list documents", "error", err)
			return
		}
		docOrphans := 0
		for i := range docs {
			if orphaned(docs[i].BuildingID) {
				docOrphans++
			}
		}

		records, err := jr.store.ConsumptionRepository.List(ctx, "")
		if err != nil {
			logger.Error("Failed to list consumption records", "error", err)
			return
		}
		consumptionOrphans := 0
		for i := range records {
			if orphaned(records[i].BuildingID) {
				consumptionOrphans++
			}
		}

		logger.Info("Orphan sweep finished",
			"units", unitOrphans,
			"reports", reportOrphans,
			"documents", docOrphans,
			"consumption", consumptionOrphans)
	})
}
