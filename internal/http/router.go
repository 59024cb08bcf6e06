package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"outreach-backend/internal/handlers"
	"outreach-backend/internal/health"
	"outreach-backend/internal/middleware"
	"outreach-backend/internal/monitoring"
	"outreach-backend/internal/realtime"
)

// NewRouter wires every endpoint. Two API surfaces share the router: the
// canonical staff API under /api/staff (bearer tokens) and the legacy
// mobile app API at its original paths (session cookie). The legacy paths
// must not move; the app in the field has them hardcoded.
func NewRouter(
	authHandler *handlers.AuthHandler,
	profileHandler *handlers.ProfileHandler,
	activityHandler *handlers.ActivityHandler,
	defaulterHandler *handlers.DefaulterHandler,
	imageHandler *handlers.ImageHandler,
	geocodeHandler *handlers.GeocodeHandler,
	legacyHandler *handlers.LegacyHandler,
	monitoringHandler *handlers.MonitoringHandler,
	monitoringService *monitoring.MonitoringService,
	healthChecker *health.HealthChecker,
	hub *realtime.Hub,
	authMiddleware *middleware.AuthMiddleware,
	apiLogging *middleware.APILoggingMiddleware,
) *mux.Router {
	r := mux.NewRouter()

	r.Use(middleware.HTTPSRedirect)
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.GzipCompression)
	r.Use(middleware.APIRateLimiter.Middleware)
	r.Use(apiLogging.Handler)

	// Operational endpoints
	r.HandleFunc("/health", func(w http.ResponseWriter, req *http.Request) {
		status := healthChecker.CheckBasic()
		code := http.StatusOK
		if status.Status != "healthy" {
			code = http.StatusServiceUnavailable
		}
		writeHealth(w, code, status)
	}).Methods("GET")
	r.Handle("/metrics", monitoringService.PrometheusHandler()).Methods("GET")
	r.Handle("/api/ws", hub).Methods("GET")

	// Canonical staff API (bearer tokens)
	r.Handle("/api/staff/auth/login",
		middleware.LoginRateLimiter.Middleware(http.HandlerFunc(authHandler.Login))).Methods("POST")

	staff := r.PathPrefix("/api").Subrouter()
	staff.Use(authMiddleware.RequireAuth)
	staff.HandleFunc("/staff/auth/me", authHandler.Me).Methods("GET")
	staff.HandleFunc("/staff/auth/change-password", authHandler.ChangePassword).Methods("POST")

	staff.HandleFunc("/profiles", profileHandler.Directory).Methods("GET")
	staff.HandleFunc("/teams", profileHandler.Teams).Methods("GET")

	staff.HandleFunc("/staff/activities", activityHandler.List).Methods("GET")
	staff.HandleFunc("/staff/activities", activityHandler.Create).Methods("POST")
	staff.HandleFunc("/staff/activities/pending", activityHandler.Pending).Methods("GET")
	staff.HandleFunc("/staff/activities/{id:[0-9]+}", activityHandler.Get).Methods("GET")
	staff.HandleFunc("/staff/activities/{id:[0-9]+}", activityHandler.Update).Methods("PATCH")
	staff.HandleFunc("/staff/activities/{id:[0-9]+}", activityHandler.Delete).Methods("DELETE")
	staff.HandleFunc("/staff/followups/due", activityHandler.DueFollowUps).Methods("GET")
	staff.HandleFunc("/staff/dashboard/stats", activityHandler.DashboardStats).Methods("GET")

	staff.HandleFunc("/defaulters", defaulterHandler.List).Methods("GET")
	staff.HandleFunc("/geocode/reverse", geocodeHandler.Reverse).Methods("GET")

	// Admin-only canonical routes
	admin := r.PathPrefix("/api/admin").Subrouter()
	admin.Use(authMiddleware.RequireGlobal)
	admin.HandleFunc("/profiles", profileHandler.Create).Methods("POST")
	admin.HandleFunc("/profiles/bulk", profileHandler.BulkCreate).Methods("POST")
	admin.HandleFunc("/profiles/{id:[0-9]+}", profileHandler.Update).Methods("PUT")
	admin.HandleFunc("/profiles/{id:[0-9]+}", profileHandler.Delete).Methods("DELETE")
	admin.HandleFunc("/profiles/{id:[0-9]+}/reset-password", profileHandler.ResetPassword).Methods("POST")
	admin.HandleFunc("/defaulters/sync", defaulterHandler.Sync).Methods("POST")
	admin.HandleFunc("/defaulters/{id:[0-9]+}", defaulterHandler.Delete).Methods("DELETE")

	admin.HandleFunc("/monitoring/dashboard", monitoringHandler.GetDashboardData).Methods("GET")
	admin.HandleFunc("/monitoring/api-analytics", monitoringHandler.GetAPIAnalytics).Methods("GET")
	admin.HandleFunc("/monitoring/history", monitoringHandler.GetNodeMetricsHistory).Methods("GET")
	admin.HandleFunc("/monitoring/logs", monitoringHandler.GetRecentAPILogs).Methods("GET")

	// Legacy mobile app API (session cookie, original paths)
	r.Handle("/api/auth/login",
		middleware.LoginRateLimiter.Middleware(http.HandlerFunc(legacyHandler.Login))).Methods("POST")
	r.HandleFunc("/api/auth/me", legacyHandler.Me).Methods("GET")
	r.HandleFunc("/api/auth/logout", legacyHandler.Logout).Methods("POST")

	r.HandleFunc("/api/activities", legacyHandler.MyActivities).Methods("GET")
	r.HandleFunc("/api/activities", legacyHandler.CreateActivity).Methods("POST")
	r.HandleFunc("/api/activities/{id:[0-9]+}", legacyHandler.UpdateActivity).Methods("PATCH")
	r.HandleFunc("/api/activities/{id:[0-9]+}", legacyHandler.DeleteActivity).Methods("DELETE")

	r.HandleFunc("/api/admin/users", legacyHandler.ListUsers).Methods("GET")
	r.HandleFunc("/api/admin/users", legacyHandler.CreateUser).Methods("POST")
	r.HandleFunc("/api/admin/users/{id:[0-9]+}", legacyHandler.DeleteUser).Methods("DELETE")
	r.HandleFunc("/api/admin/activities", legacyHandler.AllActivities).Methods("GET")

	// Photos (shared by both surfaces)
	r.HandleFunc("/api/upload-image", imageHandler.Upload).Methods("POST")
	r.HandleFunc("/api/images/{key:.+}", imageHandler.Serve).Methods("GET")

	return r
}
