package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"outreach-backend/internal/models"
	"outreach-backend/internal/services"
)

// LegacyHandler serves the original mobile app's API unchanged: cookie
// sessions, phone-only login, and the flat activities and users tables.
// Paths and response shapes are frozen; the app in the field depends on
// them byte for byte.
type LegacyHandler struct {
	Service    *services.LegacyService
	CookieName string
}

func NewLegacyHandler(service *services.LegacyService, cookieName string) *LegacyHandler {
	if cookieName == "" {
		cookieName = "session_id"
	}
	return &LegacyHandler{Service: service, CookieName: cookieName}
}

func (h *LegacyHandler) setSessionCookie(w http.ResponseWriter, token string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   maxAge,
	})
}

// sessionUser resolves the request's session cookie to a directory user.
func (h *LegacyHandler) sessionUser(r *http.Request) (*models.DirectoryUser, error) {
	cookie, err := r.Cookie(h.CookieName)
	if err != nil {
		return nil, services.ErrUnauthorized
	}
	return h.Service.Authenticate(r.Context(), cookie.Value)
}

// Login signs in by phone number alone and sets the session cookie.
// POST /api/auth/login
func (h *LegacyHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PhoneNumber string `json:"phone_number"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, token, err := h.Service.Login(r.Context(), req.PhoneNumber)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Phone number not registered. Please contact your administrator.")
		return
	}

	h.setSessionCookie(w, token, int(h.Service.SessionTTL.Seconds()))
	writeJSON(w, http.StatusOK, map[string]interface{}{"user": user})
}

// Me returns the session's user, or a null user when not signed in. Always
// answers 200 so the app can probe without error handling.
// GET /api/auth/me
func (h *LegacyHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.sessionUser(r)
	if err != nil {
		writeJSON(w, http.StatusOK, map[string]interface{}{"user": nil})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"user": user})
}

// Logout drops the session and clears the cookie.
// POST /api/auth/logout
func (h *LegacyHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(h.CookieName); err == nil {
		h.Service.Logout(cookie.Value)
	}
	h.setSessionCookie(w, "", -1)
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// MyActivities returns the caller's own entries, newest first.
// GET /api/activities
func (h *LegacyHandler) MyActivities(w http.ResponseWriter, r *http.Request) {
	user, err := h.sessionUser(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	activities, err := h.Service.MyActivities(r.Context(), user)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if activities == nil {
		activities = []*models.LegacyActivity{}
	}
	writeJSON(w, http.StatusOK, activities)
}

// CreateActivity logs a new entry.
// POST /api/activities
func (h *LegacyHandler) CreateActivity(w http.ResponseWriter, r *http.Request) {
	user, err := h.sessionUser(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req models.CreateLegacyActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	activity, err := h.Service.CreateActivity(r.Context(), user, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, activity)
}

// UpdateActivity toggles an entry's completion flag.
// PATCH /api/activities/{id}
func (h *LegacyHandler) UpdateActivity(w http.ResponseWriter, r *http.Request) {
	user, err := h.sessionUser(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid activity id")
		return
	}

	var req struct {
		IsCompleted bool `json:"is_completed"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	activity, err := h.Service.SetActivityCompleted(r.Context(), user, id, req.IsCompleted)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, activity)
}

// DeleteActivity removes one of the caller's entries.
// DELETE /api/activities/{id}
func (h *LegacyHandler) DeleteActivity(w http.ResponseWriter, r *http.Request) {
	user, err := h.sessionUser(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid activity id")
		return
	}

	if err := h.Service.DeleteActivity(r.Context(), user, id); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// AllActivities returns every entry with user details (admin only).
// GET /api/admin/activities
func (h *LegacyHandler) AllActivities(w http.ResponseWriter, r *http.Request) {
	user, err := h.sessionUser(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	activities, err := h.Service.AllActivities(r.Context(), user)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if activities == nil {
		activities = []*models.LegacyActivity{}
	}
	writeJSON(w, http.StatusOK, activities)
}

// ListUsers returns the directory (admin only).
// GET /api/admin/users
func (h *LegacyHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	user, err := h.sessionUser(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	users, err := h.Service.ListUsers(r.Context(), user)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if users == nil {
		users = []*models.DirectoryUser{}
	}
	writeJSON(w, http.StatusOK, users)
}

// CreateUser adds a directory entry (admin only).
// POST /api/admin/users
func (h *LegacyHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.sessionUser(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req models.CreateDirectoryUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.Service.CreateUser(r.Context(), user, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// DeleteUser removes a directory entry (admin only).
// DELETE /api/admin/users/{id}
func (h *LegacyHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.sessionUser(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	if err := h.Service.DeleteUser(r.Context(), user, id); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
