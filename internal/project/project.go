// Package project exposes save/load/list of named sizing projects. The
// document is whatever the client assembled (inputs plus results); it is
// stored and returned verbatim.
package project

import (
	"encoding/json"
	"net/http"

	"github.com/ansel1/merry"
	"github.com/gorilla/mux"

	"micropipe/internal/auth"
	"micropipe/internal/repo"
)

type Handler struct {
	Repo repo.Repository
}

type saveRequest struct {
	Name     string          `json:"name"`
	Document json.RawMessage `json:"document"`
}

func (h *Handler) Save(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())
	if userID == 0 {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req saveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if req.Name == "" || len(req.Document) == 0 {
		http.Error(w, "Name and document required", http.StatusBadRequest)
		return
	}

	id, err := h.Repo.SaveProject(r.Context(), userID, req.Name, req.Document)
	if err != nil {
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(repo.ProjectInfo{ID: id, Name: req.Name})
}

func (h *Handler) Load(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())
	if userID == 0 {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	name := mux.Vars(r)["name"]
	document, err := h.Repo.LoadProject(r.Context(), userID, name)
	if err != nil {
		if merry.Is(err, repo.ErrNotFound) {
			http.Error(w, "Project not found", http.StatusNotFound)
			return
		}
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(document)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())
	if userID == 0 {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	projects, err := h.Repo.ListProjects(r.Context(), userID)
	if err != nil {
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}
	if projects == nil {
		projects = []repo.ProjectInfo{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(projects)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())
	if userID == 0 {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	name := mux.Vars(r)["name"]
	if err := h.Repo.DeleteProject(r.Context(), userID, name); err != nil {
		if merry.Is(err, repo.ErrNotFound) {
			http.Error(w, "Project not found", http.StatusNotFound)
			return
		}
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
