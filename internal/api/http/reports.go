package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"habitat-portal-backend/internal/feed"
	"habitat-portal-backend/internal/repository"
)

type submitReportRequest struct {
	TargetUnitID string `json:"target_unit_id" validate:"required"`
	Body         string `json:"body" validate:"required"`
}

type resolveReportRequest struct {
	Resolution string `json:"resolution" validate:"required"`
}

func (a *API) handleSubmitReport(w http.ResponseWriter, r *http.Request) {
	var req submitReportRequest
	if err := a.decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	report, err := a.reports.Submit(r.Context(), profileFrom(r.Context()), req.TargetUnitID, req.Body)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, report)
}

func (a *API) handleResolveReport(w http.ResponseWriter, r *http.Request) {
	var req resolveReportRequest
	if err := a.decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	reportID := mux.Vars(r)["id"]
	if err := a.reports.Resolve(r.Context(), profileFrom(r.Context()), reportID, req.Resolution); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "resuelto"})
}

func (a *API) handleDeleteReport(w http.ResponseWriter, r *http.Request) {
	reportID := mux.Vars(r)["id"]
	if err := a.reports.Delete(r.Context(), profileFrom(r.Context()), reportID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

// handleAdminReports lists the admin feed: optionally building-scoped,
// newest first, capped at the feed limit. The q parameter applies the local
// search filter over the result.
func (a *API) handleAdminReports(w http.ResponseWriter, r *http.Request) {
	buildingID := r.URL.Query().Get("building_id")
	reports, err := a.reports.List(r.Context(), buildingID, repository.AdminFeedLimit)
	if err != nil {
		writeError(w, err)
		return
	}
	reports = feed.FilterReports(reports, r.URL.Query().Get("q"))
	writeJSON(w, http.StatusOK, reports)
}

// handleMyReports lists the resident feed for the caller's building, no
// record cap.
func (a *API) handleMyReports(w http.ResponseWriter, r *http.Request) {
	p := profileFrom(r.Context())
	reports, err := a.reports.List(r.Context(), p.BuildingID, 0)
	if err != nil {
		writeError(w, err)
		return
	}
	reports = feed.FilterReports(reports, r.URL.Query().Get("q"))
	writeJSON(w, http.StatusOK, reports)
}

func (a *API) handlePendingCount(w http.ResponseWriter, r *http.Request) {
	p := profileFrom(r.Context())
	count, err := a.hub.PendingCount(r.Context(), p.BuildingID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"pending_count": count})
}

func (a *API) handleReportableUnits(w http.ResponseWriter, r *http.Request) {
	units, err := a.reports.ReportableUnits(r.Context(), profileFrom(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, units)
}
