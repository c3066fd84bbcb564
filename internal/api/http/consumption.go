package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"habitat-portal-backend/internal/domain"
	"habitat-portal-backend/internal/feed"
)

type consumptionRequest struct {
	BuildingID string  `json:"building_id" validate:"required"`
	Unit       string  `json:"unit" validate:"required"`
	Utility    string  `json:"utility" validate:"required,oneof=agua electricidad gas"`
	Period     string  `json:"period" validate:"required"`
	Reading    float64 `json:"reading"`
	Amount     float64 `json:"amount"`
}

func (r *consumptionRequest) toDomain(id string) *domain.Consumption {
	return &domain.Consumption{
		ID:         id,
		BuildingID: r.BuildingID,
		Unit:       r.Unit,
		Utility:    domain.Utility(r.Utility),
		Period:     r.Period,
		Reading:    r.Reading,
		Amount:     r.Amount,
	}
}

func (a *API) handleListConsumption(w http.ResponseWriter, r *http.Request) {
	records, err := a.consumption.ListAdmin(r.Context(), r.URL.Query().Get("building_id"))
	if err != nil {
		writeError(w, err)
		return
	}
	records = feed.FilterConsumption(records, r.URL.Query().Get("q"))
	writeJSON(w, http.StatusOK, records)
}

func (a *API) handleMyConsumption(w http.ResponseWriter, r *http.Request) {
	records, err := a.consumption.ListForResident(r.Context(), profileFrom(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	records = feed.FilterConsumption(records, r.URL.Query().Get("q"))
	writeJSON(w, http.StatusOK, records)
}

func (a *API) handleCreateConsumption(w http.ResponseWriter, r *http.Request) {
	var req consumptionRequest
	if err := a.decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	record := req.toDomain("")
	if err := a.consumption.Create(r.Context(), record); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, record)
}

func (a *API) handleUpdateConsumption(w http.ResponseWriter, r *http.Request) {
	var req consumptionRequest
	if err := a.decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	record := req.toDomain(mux.Vars(r)["id"])
	if err := a.consumption.Update(r.Context(), record); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (a *API) handleDeleteConsumption(w http.ResponseWriter, r *http.Request) {
	if err := a.consumption.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
