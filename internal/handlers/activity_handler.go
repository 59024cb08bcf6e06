package handlers

import (
	"encoding/json"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"outreach-backend/internal/models"
	"outreach-backend/internal/repositories"
	"outreach-backend/internal/services"
)

// maxUploadBytes caps a single submission's multipart body (photos included).
const maxUploadBytes = 32 << 20

type ActivityHandler struct {
	Service  *services.ActivityService
	Profiles *repositories.ProfileRepository
}

func NewActivityHandler(service *services.ActivityService, profiles *repositories.ProfileRepository) *ActivityHandler {
	return &ActivityHandler{Service: service, Profiles: profiles}
}

// List returns the caller's visible activities, narrowed by query filters.
// GET /api/staff/activities?team=&role=&date=&status=
func (h *ActivityHandler) List(w http.ResponseWriter, r *http.Request) {
	viewer, _, err := resolveViewer(r, h.Profiles)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	q := r.URL.Query()
	filter := models.ActivityFilter{
		Team:   q.Get("team"),
		Role:   q.Get("role"),
		Date:   q.Get("date"),
		Status: q.Get("status"),
	}

	activities, err := h.Service.List(r.Context(), viewer, filter)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, activities)
}

// Get returns a single visible activity.
// GET /api/staff/activities/{id}
func (h *ActivityHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid activity id")
		return
	}

	viewer, _, err := resolveViewer(r, h.Profiles)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	activity, err := h.Service.Get(r.Context(), viewer, id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, activity)
}

// Create logs a new visit. Accepts multipart form data (fields + photo
// files under "photos") or a plain JSON body when there are no photos.
// POST /api/staff/activities
func (h *ActivityHandler) Create(w http.ResponseWriter, r *http.Request) {
	_, profile, err := resolveViewer(r, h.Profiles)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	var req models.CreateActivityRequest
	var photos []services.PhotoFile
	var openFiles []multipart.File
	defer func() {
		for _, f := range openFiles {
			f.Close()
		}
	}()

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			writeError(w, http.StatusBadRequest, "invalid multipart body")
			return
		}
		req = models.CreateActivityRequest{
			ActivityType:     r.FormValue("activity_type"),
			CustomerType:     r.FormValue("customer_type"),
			ClientName:       r.FormValue("client_name"),
			Phone:            r.FormValue("phone"),
			CustomerActivity: r.FormValue("customer_activity"),
			Outcome:          r.FormValue("outcome"),
			Notes:            r.FormValue("notes"),
			Location:         r.FormValue("location"),
			FollowUpDate:     r.FormValue("follow_up_date"),
			FollowUpTime:     r.FormValue("follow_up_time"),
		}
		if v := r.FormValue("follow_up_of"); v != "" {
			req.FollowUpOf, _ = strconv.Atoi(v)
		}

		for _, header := range r.MultipartForm.File["photos"] {
			f, err := header.Open()
			if err != nil {
				writeError(w, http.StatusBadRequest, "unreadable photo upload")
				return
			}
			openFiles = append(openFiles, f)
			photos = append(photos, services.PhotoFile{
				Filename: header.Filename,
				Reader:   f,
				Size:     header.Size,
			})
		}
	} else {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	activity, err := h.Service.Create(r.Context(), profile, &req, photos)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, activity)
}

// Update edits one of the caller's records, optionally appending photos.
// PATCH /api/staff/activities/{id}
func (h *ActivityHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid activity id")
		return
	}

	viewer, _, err := resolveViewer(r, h.Profiles)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	var req models.UpdateActivityRequest
	var photos []services.PhotoFile
	var openFiles []multipart.File
	defer func() {
		for _, f := range openFiles {
			f.Close()
		}
	}()

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			writeError(w, http.StatusBadRequest, "invalid multipart body")
			return
		}
		formPtr := func(key string) *string {
			if values, ok := r.MultipartForm.Value[key]; ok && len(values) > 0 {
				return &values[0]
			}
			return nil
		}
		req = models.UpdateActivityRequest{
			ClientName:       formPtr("client_name"),
			Phone:            formPtr("phone"),
			CustomerActivity: formPtr("customer_activity"),
			Status:           formPtr("status"),
			Notes:            formPtr("notes"),
			Location:         formPtr("location"),
			FollowUpDate:     formPtr("follow_up_date"),
			FollowUpTime:     formPtr("follow_up_time"),
		}

		for _, header := range r.MultipartForm.File["photos"] {
			f, err := header.Open()
			if err != nil {
				writeError(w, http.StatusBadRequest, "unreadable photo upload")
				return
			}
			openFiles = append(openFiles, f)
			photos = append(photos, services.PhotoFile{
				Filename: header.Filename,
				Reader:   f,
				Size:     header.Size,
			})
		}
	} else {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	activity, err := h.Service.Update(r.Context(), viewer, id, &req, photos)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, activity)
}

// Delete removes an activity record.
// DELETE /api/staff/activities/{id}
func (h *ActivityHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid activity id")
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
	writeJSON(w, http.StatusOK, map[string]string{"message": "activity deleted"})
}

// Pending returns the caller's open records for the follow-up picker.
// GET /api/staff/activities/pending
func (h *ActivityHandler) Pending(w http.ResponseWriter, r *http.Request) {
	viewer, _, err := resolveViewer(r, h.Profiles)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	activities, err := h.Service.Pending(r.Context(), viewer.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if activities == nil {
		activities = []*models.Activity{}
	}
	writeJSON(w, http.StatusOK, activities)
}

// DueFollowUps returns today's due follow-ups for the caller's scope.
// GET /api/staff/followups/due
func (h *ActivityHandler) DueFollowUps(w http.ResponseWriter, r *http.Request) {
	viewer, _, err := resolveViewer(r, h.Profiles)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	due, err := h.Service.DueFollowUps(r.Context(), viewer)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, due)
}

// DashboardStats returns the stat-card counters for the caller's scope.
// GET /api/staff/dashboard/stats
func (h *ActivityHandler) DashboardStats(w http.ResponseWriter, r *http.Request) {
	viewer, _, err := resolveViewer(r, h.Profiles)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	stats, err := h.Service.DashboardStats(r.Context(), viewer)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
