package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"habitat-portal-backend/internal/domain"
)

type buildingRequest struct {
	Name         string `json:"name" validate:"required"`
	Department   string `json:"department"`
	City         string `json:"city"`
	Neighborhood string `json:"neighborhood"`
	Address      string `json:"address"`
	AdminPhone   string `json:"admin_phone"`
	AdminEmail   string `json:"admin_email" validate:"omitempty,email"`
	LogoURL      string `json:"logo_url"`
}

func (r *buildingRequest) toDomain(id string) *domain.Building {
	return &domain.Building{
		ID:           id,
		Name:         r.Name,
		Department:   r.Department,
		City:         r.City,
		Neighborhood: r.Neighborhood,
		Address:      r.Address,
		AdminPhone:   r.AdminPhone,
		AdminEmail:   r.AdminEmail,
		LogoURL:      r.LogoURL,
	}
}

func (a *API) handleCatalogBuildings(w http.ResponseWriter, r *http.Request) {
	buildings, err := a.buildings.Catalog(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, buildings)
}

func (a *API) handleCatalogBuilding(w http.ResponseWriter, r *http.Request) {
	building, err := a.buildings.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, building)
}

func (a *API) handleListBuildings(w http.ResponseWriter, r *http.Request) {
	buildings, err := a.buildings.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, buildings)
}

func (a *API) handleCreateBuilding(w http.ResponseWriter, r *http.Request) {
	var req buildingRequest
	if err := a.decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	building := req.toDomain("")
	if err := a.buildings.Create(r.Context(), building); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, building)
}

func (a *API) handleUpdateBuilding(w http.ResponseWriter, r *http.Request) {
	var req buildingRequest
	if err := a.decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	building := req.toDomain(mux.Vars(r)["id"])
	if err := a.buildings.Update(r.Context(), building); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, building)
}

// handleDeactivateBuilding soft-deactivates: the building drops off the
// public catalog while its units, reports and documents stay untouched.
func (a *API) handleDeactivateBuilding(w http.ResponseWriter, r *http.Request) {
	if err := a.buildings.Deactivate(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": string(domain.BuildingInactive)})
}
