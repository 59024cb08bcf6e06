package handlers

import (
	"net/http"
	"strconv"

	"outreach-backend/internal/services"
)

type GeocodeHandler struct {
	Service *services.GeocodeService
}

func NewGeocodeHandler(service *services.GeocodeService) *GeocodeHandler {
	return &GeocodeHandler{Service: service}
}

// Reverse resolves coordinates to a place name. Always answers 200: on a
// lookup failure the location field carries the raw coordinates.
// GET /api/geocode/reverse?lat=&lon=
func (h *GeocodeHandler) Reverse(w http.ResponseWriter, r *http.Request) {
	lat, err := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid lat")
		return
	}
	lon, err := strconv.ParseFloat(r.URL.Query().Get("lon"), 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid lon")
		return
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		writeError(w, http.StatusBadRequest, "coordinates out of range")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"location": h.Service.Reverse(r.Context(), lat, lon),
	})
}
