package feed

import (
	"strings"

	"habitat-portal-backend/internal/domain"
)

// matches reports whether any field contains needle, case-insensitively.
func matches(needle string, fields ...string) bool {
	needle = strings.ToLower(strings.TrimSpace(needle))
	if needle == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}

// FilterReports applies the local search box over a delivered snapshot. This
// runs per subscriber after delivery, not as a query predicate.
func FilterReports(reports []domain.Report, query string) []domain.Report {
	if strings.TrimSpace(query) == "" {
		return reports
	}
	out := make([]domain.Report, 0, len(reports))
	for _, r := range reports {
		if matches(query, r.TargetUnit, r.OriginUnit, r.UserName, r.Ticket, r.Body) {
			out = append(out, r)
		}
	}
	return out
}

// FilterConsumption applies the same local search over consumption records,
// matching utility type and period label.
func FilterConsumption(records []domain.Consumption, query string) []domain.Consumption {
	if strings.TrimSpace(query) == "" {
		return records
	}
	out := make([]domain.Consumption, 0, len(records))
	for _, c := range records {
		if matches(query, string(c.Utility), c.Period, c.Unit) {
			out = append(out, c)
		}
	}
	return out
}
