package middleware

import (
	"net/http"

	"github.com/rs/cors"

	"outreach-backend/internal/config"
)

// CORS builds the cross-origin policy for the browser dashboard and the
// mobile app's webview.
func CORS(cfg *config.Config) func(http.Handler) http.Handler {
	origins := cfg.CORS.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	})
	return c.Handler
}
