package handlers

import (
	"net/http"

	"outreach-backend/internal/middleware"
	"outreach-backend/internal/models"
	"outreach-backend/internal/repositories"
	"outreach-backend/internal/services"
)

// resolveViewer loads the caller's live profile and builds the visibility
// identity from it. Token claims only prove who is calling; role and team
// always come from the current profile row so a demotion takes effect
// before the token expires.
func resolveViewer(r *http.Request, profiles *repositories.ProfileRepository) (services.Viewer, *models.Profile, error) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		return services.Viewer{}, nil, services.ErrUnauthorized
	}

	profile, err := profiles.GetByID(r.Context(), claims.UserID)
	if err != nil {
		return services.Viewer{}, nil, services.ErrUnauthorized
	}

	return services.ViewerFromProfile(profile), profile, nil
}
