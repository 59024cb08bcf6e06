package handlers

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"outreach-backend/internal/services"
)

// ImageHandler uploads photos to the storage backend and streams them back.
// Both API surfaces share it: the canonical app embeds photos in the
// activity form, the legacy app uploads first and submits the key.
type ImageHandler struct {
	Storage services.StorageBackend
}

func NewImageHandler(storage services.StorageBackend) *ImageHandler {
	return &ImageHandler{Storage: storage}
}

// Upload stores a single photo and returns its key and serving URL.
// POST /api/upload-image (multipart field "file")
func (h *ImageHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart body")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No file provided")
		return
	}
	defer file.Close()

	key := services.PhotoKey(header.Filename)
	if err := h.Storage.Upload(r.Context(), key, file, header.Size); err != nil {
		writeServiceError(w, services.ErrUpstream)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"key":     key,
		"url":     "/api/images/" + key,
	})
}

// Serve streams a stored photo. Keys are immutable (timestamped), so
// clients may cache aggressively.
// GET /api/images/{key:.*}
func (h *ImageHandler) Serve(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]
	if key == "" {
		writeError(w, http.StatusBadRequest, "missing image key")
		return
	}

	reader, size, err := h.Storage.Download(r.Context(), key)
	if err != nil {
		writeError(w, http.StatusNotFound, "image not found")
		return
	}
	defer reader.Close()

	w.Header().Set("Content-Type", services.ContentTypeForKey(key))
	w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	if size > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(size, 10))
	}
	io.Copy(w, reader)
}
