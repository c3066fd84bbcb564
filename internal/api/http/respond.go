package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"habitat-portal-backend/internal/domain"
	"habitat-portal-backend/internal/logger"
	"habitat-portal-backend/internal/service"
)

var errMalformedBody = errors.New("malformed request body")

type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

// writeError maps service and store failures onto HTTP statuses. The typed
// store-error kinds make this a straight table instead of string matching.
func writeError(w http.ResponseWriter, err error) {
	var vErrs validator.ValidationErrors
	if errors.As(err, &vErrs) {
		fields := make(map[string]string, len(vErrs))
		for _, fe := range vErrs {
			fields[fe.Field()] = fe.Tag()
		}
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "validation failed", Fields: fields})
		return
	}

	switch {
	case errors.Is(err, domain.ErrNoProfile):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "not authenticated"})
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
	case errors.Is(err, domain.ErrPermissionDenied),
		errors.Is(err, service.ErrNotAuthor):
		writeJSON(w, http.StatusForbidden, errorResponse{Error: "forbidden"})
	case errors.Is(err, domain.ErrConflict):
		writeJSON(w, http.StatusConflict, errorResponse{Error: "conflict"})
	case errors.Is(err, domain.ErrTransient):
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "backend temporarily unavailable"})
	case errors.Is(err, errMalformedBody),
		errors.Is(err, service.ErrEmptyResolution),
		errors.Is(err, service.ErrEmptyBody),
		errors.Is(err, service.ErrSelfReport),
		errors.Is(err, service.ErrWrongBuilding):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	default:
		logger.Error("Unhandled error", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

// decodeJSON parses and validates a request body.
func (a *API) decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errMalformedBody
	}
	return a.validate.Struct(v)
}
