package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"outreach-backend/internal/models"
	"outreach-backend/internal/repositories"
	"outreach-backend/internal/services"
)

type ProfileHandler struct {
	Roster   *services.RosterService
	Profiles *repositories.ProfileRepository
}

func NewProfileHandler(roster *services.RosterService, profiles *repositories.ProfileRepository) *ProfileHandler {
	return &ProfileHandler{Roster: roster, Profiles: profiles}
}

// Directory returns the staff directory, scoped to the caller's visibility.
// GET /api/profiles
func (h *ProfileHandler) Directory(w http.ResponseWriter, r *http.Request) {
	viewer, _, err := resolveViewer(r, h.Profiles)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	profiles, err := h.Roster.Directory(r.Context(), viewer)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if profiles == nil {
		profiles = []*models.Profile{}
	}
	writeJSON(w, http.StatusOK, profiles)
}

// Teams returns the team registry with the roles each team allows. The
// admin form builds its dropdowns from this.
// GET /api/teams
func (h *ProfileHandler) Teams(w http.ResponseWriter, r *http.Request) {
	teams := make([]map[string]interface{}, 0, len(models.Teams))
	for _, t := range models.Teams {
		teams = append(teams, map[string]interface{}{
			"team":  t,
			"roles": models.RolesForTeam(t),
		})
	}
	writeJSON(w, http.StatusOK, teams)
}

// Create adds a staff member (admin only).
// POST /api/admin/profiles
func (h *ProfileHandler) Create(w http.ResponseWriter, r *http.Request) {
	viewer, _, err := resolveViewer(r, h.Profiles)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	var req models.CreateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	profile, err := h.Roster.Create(r.Context(), viewer, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, profile)
}

// BulkCreate adds several staff members at once (admin only).
// POST /api/admin/profiles/bulk
func (h *ProfileHandler) BulkCreate(w http.ResponseWriter, r *http.Request) {
	viewer, _, err := resolveViewer(r, h.Profiles)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	var reqs []*models.CreateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&reqs); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(reqs) == 0 {
		writeError(w, http.StatusBadRequest, "empty roster")
		return
	}

	created, err := h.Roster.BulkCreate(r.Context(), viewer, reqs)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"created": created,
		"count":   len(created),
	})
}

// Update edits a staff member (admin only).
// PUT /api/admin/profiles/{id}
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid profile id")
		return
	}

	viewer, _, err := resolveViewer(r, h.Profiles)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	var req models.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	profile, err := h.Roster.Update(r.Context(), viewer, id, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// ResetPassword sets a member's password back to the default (admin only).
// POST /api/admin/profiles/{id}/reset-password
func (h *ProfileHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid profile id")
		return
	}

	viewer, _, err := resolveViewer(r, h.Profiles)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if err := h.Roster.ResetPassword(r.Context(), viewer, id); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "password reset"})
}

// Delete removes a staff member (admin only).
// DELETE /api/admin/profiles/{id}
func (h *ProfileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid profile id")
		return
	}

	viewer, _, err := resolveViewer(r, h.Profiles)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if err := h.Roster.Delete(r.Context(), viewer, id); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "profile deleted"})
}
