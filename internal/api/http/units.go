package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"habitat-portal-backend/internal/domain"
	"habitat-portal-backend/internal/service"
)

// Multipart uploads (gallery images, documents) are capped well below
// Firestore/Storage practical limits.
const maxUploadBytes = 20 << 20

type unitRequest struct {
	BuildingID   string   `json:"building_id" validate:"required"`
	Label        string   `json:"label" validate:"required"`
	Name         string   `json:"name"`
	Apartment    string   `json:"apartment"`
	Floor        int      `json:"floor"`
	Rooms        int      `json:"rooms"`
	Baths        int      `json:"baths"`
	Area         string   `json:"area"`
	Price        float64  `json:"price"`
	Offer        string   `json:"offer" validate:"omitempty,oneof=Venta Arriendo Entrega"`
	Status       string   `json:"status" validate:"omitempty,oneof=Disponible Habitado Vendido"`
	Neighborhood string   `json:"neighborhood"`
	Stratum      int      `json:"stratum"`
	Parking      bool     `json:"parking"`
	Furnished    bool     `json:"furnished"`
	Featured     bool     `json:"featured"`
	Phone        string   `json:"phone"`
	CellPhone    string   `json:"cell_phone"`
	OwnerPhone   string   `json:"owner_phone"`
	Gallery      []string `json:"gallery"`
}

func (r *unitRequest) toDomain(id string) *domain.Unit {
	return &domain.Unit{
		ID:           id,
		BuildingID:   r.BuildingID,
		Label:        r.Label,
		Name:         r.Name,
		Apartment:    r.Apartment,
		Floor:        r.Floor,
		Rooms:        r.Rooms,
		Baths:        r.Baths,
		Area:         r.Area,
		Price:        r.Price,
		Offer:        domain.OfferKind(r.Offer),
		Status:       r.Status,
		Neighborhood: r.Neighborhood,
		Stratum:      r.Stratum,
		Parking:      r.Parking,
		Furnished:    r.Furnished,
		Featured:     r.Featured,
		Phone:        r.Phone,
		CellPhone:    r.CellPhone,
		OwnerPhone:   r.OwnerPhone,
		Gallery:      r.Gallery,
	}
}

func (a *API) handleCatalogUnits(w http.ResponseWriter, r *http.Request) {
	units, err := a.units.ListByBuilding(r.Context(), mux.Vars(r)["id"], service.UnitsActive)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, units)
}

func (a *API) handleCatalogUnit(w http.ResponseWriter, r *http.Request) {
	unit, err := a.units.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, unit)
}

func (a *API) handleListUnits(w http.ResponseWriter, r *http.Request) {
	filter := service.UnitListFilter(r.URL.Query().Get("filter"))
	if filter == "" {
		filter = service.UnitsAll
	}
	units, err := a.units.ListByBuilding(r.Context(), r.URL.Query().Get("building_id"), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, units)
}

func (a *API) handleCreateUnit(w http.ResponseWriter, r *http.Request) {
	var req unitRequest
	if err := a.decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	unit := req.toDomain("")
	if err := a.units.Create(r.Context(), unit); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, unit)
}

func (a *API) handleUpdateUnit(w http.ResponseWriter, r *http.Request) {
	var req unitRequest
	if err := a.decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	unit := req.toDomain(mux.Vars(r)["id"])
	if err := a.units.Update(r.Context(), unit); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, unit)
}

func (a *API) handleDeleteUnit(w http.ResponseWriter, r *http.Request) {
	if err := a.units.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (a *API) handleUnitGalleryUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed multipart body"})
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "image file is required"})
		return
	}
	defer file.Close()

	url, err := a.units.AddGalleryImage(r.Context(), mux.Vars(r)["id"], header.Filename, header.Header.Get("Content-Type"), file)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"url": url})
}
