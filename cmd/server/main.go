package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"outreach-backend/internal/auth"
	"outreach-backend/internal/config"
	"outreach-backend/internal/database"
	"outreach-backend/internal/db"
	"outreach-backend/internal/handlers"
	"outreach-backend/internal/health"
	h "outreach-backend/internal/http"
	"outreach-backend/internal/middleware"
	"outreach-backend/internal/monitoring"
	"outreach-backend/internal/realtime"
	"outreach-backend/internal/repositories"
	"outreach-backend/internal/services"
	"outreach-backend/internal/sms"
	"outreach-backend/migrations"
)

func main() {
	port := flag.Int("port", 0, "Server port (overrides config)")
	flag.Parse()

	// Load configuration
	cfg := config.Load()
	if *port != 0 {
		cfg.Server.Port = *port
	}

	// Connect to database and run migrations
	pool := db.Connect(cfg)
	defer pool.Close()

	migrator := database.NewMigratorWithFS(pool, migrations.FS, ".")
	if err := migrator.RunMigrations(context.Background()); err != nil {
		log.Fatalf("Migrations failed: %v", err)
	}

	// Shared infrastructure
	jwtManager := auth.NewJWTManager(cfg)
	sessionStore := auth.NewMemorySessionStore()

	storage, err := services.NewStorageBackend(cfg)
	if err != nil {
		log.Fatalf("Storage backend failed to initialize: %v", err)
	}
	log.Printf("[Storage] Using %s backend", storage.Name())

	var smsProvider sms.SMSProvider
	if cfg.SMS.Provider == "fast2sms" {
		smsProvider = sms.NewFast2SMSService(cfg.SMS.APIKey)
	} else {
		smsProvider = sms.NewMockSMSService()
	}

	hub := realtime.NewHub()

	// Repositories
	profileRepo := repositories.NewProfileRepository(pool)
	activityRepo := repositories.NewActivityRepository(pool)
	defaulterRepo := repositories.NewDefaulterLogRepository(pool)
	directoryUserRepo := repositories.NewDirectoryUserRepository(pool)
	legacyActivityRepo := repositories.NewLegacyActivityRepository(pool)

	// Services
	authService := services.NewAuthService(profileRepo, jwtManager)
	rosterService := services.NewRosterService(profileRepo)
	activityService := services.NewActivityService(activityRepo, profileRepo, storage, hub)
	defaulterService := services.NewDefaulterService(profileRepo, activityRepo, defaulterRepo, smsProvider, cfg.SMS.DefaulterAlerts, hub)
	geocodeService := services.NewGeocodeService(cfg)
	sessionTTL := time.Duration(cfg.Session.LifetimeDays) * 24 * time.Hour
	legacyService := services.NewLegacyService(directoryUserRepo, legacyActivityRepo, sessionStore, sessionTTL)

	// Monitoring
	metricsStore := monitoring.NewStore(pool)
	monitoringService := monitoring.NewMonitoringService(metricsStore)
	monitoringService.StartCollection()
	defer monitoringService.StopCollection()

	healthChecker := health.NewHealthChecker(pool)

	// End-of-day defaulter sweep
	defaulterService.StartDailySweep()
	defer defaulterService.StopDailySweep()

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	profileHandler := handlers.NewProfileHandler(rosterService, profileRepo)
	activityHandler := handlers.NewActivityHandler(activityService, profileRepo)
	defaulterHandler := handlers.NewDefaulterHandler(defaulterService, profileRepo)
	imageHandler := handlers.NewImageHandler(storage)
	geocodeHandler := handlers.NewGeocodeHandler(geocodeService)
	legacyHandler := handlers.NewLegacyHandler(legacyService, cfg.Session.CookieName)
	monitoringHandler := handlers.NewMonitoringHandler(metricsStore, pool)

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtManager)
	apiLogging := middleware.NewAPILoggingMiddleware(monitoringService)
	corsMiddleware := middleware.CORS(cfg)

	router := h.NewRouter(
		authHandler,
		profileHandler,
		activityHandler,
		defaulterHandler,
		imageHandler,
		geocodeHandler,
		legacyHandler,
		monitoringHandler,
		monitoringService,
		healthChecker,
		hub,
		authMiddleware,
		apiLogging,
	)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("Server running on %s", addr)
	if err := http.ListenAndServe(addr, corsMiddleware(router)); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
