package jobs

import (
	"context"

	"habitat-portal-backend/internal/domain"
	"habitat-portal-backend/internal/logger"
)

// SendPendingDigest emails each active building's administrator the list of
// reports still awaiting a resolution.
func (jr *JobRunner) SendPendingDigest() {
	jr.runWithRecovery("SendPendingDigest", func() {
		ctx := context.Background()

		buildings, err := jr.services.Buildings.Catalog(ctx)
		if err != nil {
			logger.Error("Failed to list active buildings", "error", err)
			return
		}

		sent := 0
		for i := range buildings {
			b := &buildings[i]
			if b.AdminEmail == "" {
				continue
			}

			reports, err := jr.services.Reports.List(ctx, b.ID, 0)
			if err != nil {
				logger.Error("Failed to list reports for digest",
					"building_id", b.ID, "error", err)
				continue
			}

			pending := make([]domain.Report, 0, len(reports))
			for _, rep := range reports {
				if rep.IsPending() {
					pending = append(pending, rep)
				}
			}
			if len(pending) == 0 {
				continue
			}

			if err := jr.services.Email.SendPendingDigest(ctx, b.AdminEmail, b.Name, b.Name, pending); err != nil {
				logger.Error("Failed to send pending digest",
					"building_id", b.ID, "email", b.AdminEmail, "error", err)
				continue
			}

			sent++
			logger.Debug("Sent pending digest",
				"building_id", b.ID, "pending", len(pending))
		}

		logger.Info("Pending digest run finished", "emails_sent", sent)
	})
}
