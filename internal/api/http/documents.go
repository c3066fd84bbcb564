package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

func (a *API) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	if buildingID := r.URL.Query().Get("building_id"); buildingID != "" {
		docs, err := a.documents.ListByBuilding(r.Context(), buildingID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, docs)
		return
	}

	docs, err := a.documents.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, docs)
}

func (a *API) handleMyDocuments(w http.ResponseWriter, r *http.Request) {
	p := profileFrom(r.Context())
	docs, err := a.documents.ListByBuilding(r.Context(), p.BuildingID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, docs)
}

func (a *API) handleUploadDocument(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed multipart body"})
		return
	}

	title := r.FormValue("title")
	buildingID := r.FormValue("building_id")
	if title == "" || buildingID == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "title and building_id are required"})
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "document file is required"})
		return
	}
	defer file.Close()

	doc, err := a.documents.Upload(r.Context(), title, buildingID, r.FormValue("category"),
		r.FormValue("year"), header.Filename, header.Header.Get("Content-Type"), file)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, doc)
}

func (a *API) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	if err := a.documents.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
