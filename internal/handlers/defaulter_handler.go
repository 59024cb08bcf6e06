package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"outreach-backend/internal/models"
	"outreach-backend/internal/repositories"
	"outreach-backend/internal/services"
)

type DefaulterHandler struct {
	Service  *services.DefaulterService
	Profiles *repositories.ProfileRepository
}

func NewDefaulterHandler(service *services.DefaulterService, profiles *repositories.ProfileRepository) *DefaulterHandler {
	return &DefaulterHandler{Service: service, Profiles: profiles}
}

// List returns defaulter entries. Global admins see all and may filter by
// team and date; field staff see only their own.
// GET /api/defaulters?team=&date=
func (h *DefaulterHandler) List(w http.ResponseWriter, r *http.Request) {
	viewer, _, err := resolveViewer(r, h.Profiles)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	logs, err := h.Service.List(r.Context(), viewer, r.URL.Query().Get("team"), r.URL.Query().Get("date"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if logs == nil {
		logs = []*models.DefaulterLog{}
	}
	writeJSON(w, http.StatusOK, logs)
}

// Sync runs today's defaulter detection and returns the new entries.
// POST /api/admin/defaulters/sync
func (h *DefaulterHandler) Sync(w http.ResponseWriter, r *http.Request) {
	viewer, _, err := resolveViewer(r, h.Profiles)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	inserted, err := h.Service.Sync(r.Context(), viewer)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if inserted == nil {
		inserted = []*models.DefaulterLog{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"inserted": inserted,
		"count":    len(inserted),
	})
}

// Delete removes a defaulter entry after review.
// DELETE /api/admin/defaulters/{id}
func (h *DefaulterHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid entry id")
		return
	}

	viewer, _, err := resolveViewer(r, h.Profiles)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if err := h.Service.Delete(r.Context(), viewer, id); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "entry deleted"})
}
