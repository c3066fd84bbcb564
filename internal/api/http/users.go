package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"habitat-portal-backend/internal/domain"
)

type createUserRequest struct {
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Phone      string `json:"phone"`
	Role       string `json:"role" validate:"required,oneof=admin residente"`
	BuildingID string `json:"building_id"`
	Unit       string `json:"unit"`
}

type updateUserRequest struct {
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Phone      string `json:"phone"`
	Role       string `json:"role" validate:"required,oneof=admin residente"`
	BuildingID string `json:"building_id"`
	Unit       string `json:"unit"`
}

type setActiveRequest struct {
	Active *bool `json:"active" validate:"required"`
}

func (a *API) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := a.users.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (a *API) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := a.decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	user := &domain.User{
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Role:       domain.Role(req.Role),
		BuildingID: req.BuildingID,
		Unit:       req.Unit,
	}
	password, err := a.users.Create(r.Context(), user)
	if err != nil {
		writeError(w, err)
		return
	}

	// The generated password is shown exactly once, at creation time.
	writeJSON(w, http.StatusCreated, map[string]any{
		"user":     user,
		"password": password,
	})
}

func (a *API) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	var req updateUserRequest
	if err := a.decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	user := &domain.User{
		ID:         mux.Vars(r)["id"],
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Role:       domain.Role(req.Role),
		BuildingID: req.BuildingID,
		Unit:       req.Unit,
	}
	if err := a.users.Update(r.Context(), user); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (a *API) handleSetUserActive(w http.ResponseWriter, r *http.Request) {
	var req setActiveRequest
	if err := a.decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if err := a.users.SetActive(r.Context(), mux.Vars(r)["id"], *req.Active); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"active": *req.Active})
}
