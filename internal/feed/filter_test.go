package feed

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"habitat-portal-backend/internal/domain"
)

func TestFilterReports(t *testing.T) {
	reports := []domain.Report{
		{ID: "r1", TargetUnit: "302", OriginUnit: "101", UserName: "Laura Pérez", Ticket: "REP-AB12CD34", Body: "Ruido excesivo"},
		{ID: "r2", TargetUnit: "204", OriginUnit: "303", UserName: "Carlos Gómez", Ticket: "REP-EF56GH78", Body: "Fuga de agua"},
	}

	t.Run("EmptyQueryReturnsAll", func(t *testing.T) {
		assert.Len(t, FilterReports(reports, "   "), 2)
	})

	t.Run("MatchesAnyField", func(t *testing.T) {
		assert.Len(t, FilterReports(reports, "302"), 1)
		assert.Len(t, FilterReports(reports, "laura"), 1)
		assert.Len(t, FilterReports(reports, "rep-ef56"), 1)
		assert.Len(t, FilterReports(reports, "ruido"), 1)
	})

	t.Run("CaseInsensitive", func(t *testing.T) {
		assert.Equal(t, FilterReports(reports, "FUGA"), FilterReports(reports, "fuga"))
	})

	t.Run("NoMatch", func(t *testing.T) {
		assert.Empty(t, FilterReports(reports, "ascensor"))
	})
}

func TestFilterConsumption(t *testing.T) {
	records := []domain.Consumption{
		{ID: "c1", Unit: "302", Utility: domain.UtilityWater, Period: "2026-07"},
		{ID: "c2", Unit: "101", Utility: domain.UtilityGas, Period: "2026-08"},
	}

	assert.Len(t, FilterConsumption(records, ""), 2)
	assert.Len(t, FilterConsumption(records, "agua"), 1)
	assert.Len(t, FilterConsumption(records, "2026-08"), 1)
	assert.Len(t, FilterConsumption(records, "302"), 1)
	assert.Empty(t, FilterConsumption(records, "electricidad"))
}
