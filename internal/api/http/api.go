// Package http exposes the portal's JSON API and live streams.
package http

import (
	"context"
	"fmt"
	"net/http"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"habitat-portal-backend/internal/domain"
	"habitat-portal-backend/internal/feed"
	"habitat-portal-backend/internal/security"
	"habitat-portal-backend/internal/service"
)

// API holds the handler dependencies and assembles the router.
type API struct {
	verifier     TokenVerifier
	identity     service.IdentityService
	reports      service.ReportService
	users        service.UserService
	buildings    service.BuildingService
	units        service.UnitService
	consumption  service.ConsumptionService
	documents    service.DocumentService
	hub          *feed.Hub
	streamTokens security.StreamTokenManager
	validate     *validator.Validate
}

type Services struct {
	Identity    service.IdentityService
	Reports     service.ReportService
	Users       service.UserService
	Buildings   service.BuildingService
	Units       service.UnitService
	Consumption service.ConsumptionService
	Documents   service.DocumentService
}

func NewAPI(verifier TokenVerifier, svcs Services, hub *feed.Hub, streamTokens security.StreamTokenManager) *API {
	return &API{
		verifier:     verifier,
		identity:     svcs.Identity,
		reports:      svcs.Reports,
		users:        svcs.Users,
		buildings:    svcs.Buildings,
		units:        svcs.Units,
		consumption:  svcs.Consumption,
		documents:    svcs.Documents,
		hub:          hub,
		streamTokens: streamTokens,
		validate:     validator.New(),
	}
}

// Router builds the full route table.
func (a *API) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(logRequests)

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	v1 := r.PathPrefix("/api/v1").Subrouter()

	// Public catalog: no session required, active buildings only.
	catalog := v1.PathPrefix("/catalog").Subrouter()
	catalog.HandleFunc("/buildings", a.handleCatalogBuildings).Methods(http.MethodGet)
	catalog.HandleFunc("/buildings/{id}", a.handleCatalogBuilding).Methods(http.MethodGet)
	catalog.HandleFunc("/buildings/{id}/units", a.handleCatalogUnits).Methods(http.MethodGet)
	catalog.HandleFunc("/units/{id}", a.handleCatalogUnit).Methods(http.MethodGet)

	// Live streams authenticate with a short-lived token in the query
	// string; they sit outside the bearer-token middleware.
	v1.HandleFunc("/streams/reports", a.handleReportStream).Methods(http.MethodGet)
	v1.HandleFunc("/streams/pending-count", a.handlePendingCountStream).Methods(http.MethodGet)

	// Everything below requires a resolved profile.
	authed := v1.NewRoute().Subrouter()
	authed.Use(a.authenticate)
	authed.HandleFunc("/me", a.handleMe).Methods(http.MethodGet)
	authed.HandleFunc("/streams/token", a.handleStreamToken).Methods(http.MethodPost)
	authed.HandleFunc("/reports/{id}", a.handleDeleteReport).Methods(http.MethodDelete)

	// Resident surface, scoped by the caller's own profile.
	res := authed.PathPrefix("/my").Subrouter()
	res.Use(requireRole(domain.RoleResident))
	res.HandleFunc("/reports", a.handleMyReports).Methods(http.MethodGet)
	res.HandleFunc("/reports", a.handleSubmitReport).Methods(http.MethodPost)
	res.HandleFunc("/reports/pending-count", a.handlePendingCount).Methods(http.MethodGet)
	res.HandleFunc("/units/reportable", a.handleReportableUnits).Methods(http.MethodGet)
	res.HandleFunc("/consumption", a.handleMyConsumption).Methods(http.MethodGet)
	res.HandleFunc("/documents", a.handleMyDocuments).Methods(http.MethodGet)

	// Admin surface.
	adm := authed.PathPrefix("/admin").Subrouter()
	adm.Use(requireRole(domain.RoleAdmin))
	adm.HandleFunc("/reports", a.handleAdminReports).Methods(http.MethodGet)
	adm.HandleFunc("/reports/{id}/resolve", a.handleResolveReport).Methods(http.MethodPost)

	adm.HandleFunc("/users", a.handleListUsers).Methods(http.MethodGet)
	adm.HandleFunc("/users", a.handleCreateUser).Methods(http.MethodPost)
	adm.HandleFunc("/users/{id}", a.handleUpdateUser).Methods(http.MethodPut)
	adm.HandleFunc("/users/{id}/active", a.handleSetUserActive).Methods(http.MethodPatch)

	adm.HandleFunc("/buildings", a.handleListBuildings).Methods(http.MethodGet)
	adm.HandleFunc("/buildings", a.handleCreateBuilding).Methods(http.MethodPost)
	adm.HandleFunc("/buildings/{id}", a.handleUpdateBuilding).Methods(http.MethodPut)
	adm.HandleFunc("/buildings/{id}", a.handleDeactivateBuilding).Methods(http.MethodDelete)

	adm.HandleFunc("/units", a.handleListUnits).Methods(http.MethodGet)
	adm.HandleFunc("/units", a.handleCreateUnit).Methods(http.MethodPost)
	adm.HandleFunc("/units/{id}", a.handleUpdateUnit).Methods(http.MethodPut)
	adm.HandleFunc("/units/{id}", a.handleDeleteUnit).Methods(http.MethodDelete)
	adm.HandleFunc("/units/{id}/gallery", a.handleUnitGalleryUpload).Methods(http.MethodPost)

	adm.HandleFunc("/consumption", a.handleListConsumption).Methods(http.MethodGet)
	adm.HandleFunc("/consumption", a.handleCreateConsumption).Methods(http.MethodPost)
	adm.HandleFunc("/consumption/{id}", a.handleUpdateConsumption).Methods(http.MethodPut)
	adm.HandleFunc("/consumption/{id}", a.handleDeleteConsumption).Methods(http.MethodDelete)

	adm.HandleFunc("/documents", a.handleListDocuments).Methods(http.MethodGet)
	adm.HandleFunc("/documents", a.handleUploadDocument).Methods(http.MethodPost)
	adm.HandleFunc("/documents/{id}", a.handleDeleteDocument).Methods(http.MethodDelete)

	return r
}

func (a *API) handleMe(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, profileFrom(r.Context()))
}

// FirebaseTokenVerifier adapts the admin auth client to TokenVerifier.
type FirebaseTokenVerifier struct {
	client *fbauth.Client
}

func NewFirebaseTokenVerifier(client *fbauth.Client) *FirebaseTokenVerifier {
	return &FirebaseTokenVerifier{client: client}
}

func (v *FirebaseTokenVerifier) Verify(ctx context.Context, idToken string) (string, error) {
	token, err := v.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return "", fmt.Errorf("verify id token: %w", err)
	}
	return token.UID, nil
}
