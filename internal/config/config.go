package config

import (
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all runtime configuration for the outreach backend
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Session  SessionConfig
	Storage  StorageConfig
	SMS      SMSConfig
	Geocode  GeocodeConfig
	CORS     CORSConfig
}

type ServerConfig struct {
	Port int
	Host string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

type JWTConfig struct {
	Secret      string
	ExpiryHours int
}

type SessionConfig struct {
	// CookieName is the legacy API session cookie.
	CookieName string
	// LifetimeDays controls the legacy session cookie max-age.
	LifetimeDays int
}

type StorageConfig struct {
	// Backend selects "local" or "s3" (R2/MinIO compatible).
	Backend   string
	LocalDir  string
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
}

type SMSConfig struct {
	// Provider: "mock" (default, prints to console) or "fast2sms".
	Provider string
	APIKey   string
	// DefaulterAlerts enables SMS alerts to regional managers after a sync.
	DefaulterAlerts bool
}

type GeocodeConfig struct {
	// BaseURL of the Nominatim-compatible reverse geocoding service.
	BaseURL        string
	TimeoutSeconds int
}

type CORSConfig struct {
	AllowedOrigins []string
}

// Load reads config.yaml (if present) and environment variables.
// Environment variables win, e.g. SERVER_PORT, DATABASE_PASSWORD, JWT_SECRET.
func Load() *Config {
	// .env is optional; ignore the error when it is absent
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("[Config] No config.yaml found, using defaults and environment")
		} else {
			log.Printf("[Config] Failed to read config file: %v", err)
		}
	}

	return &Config{
		Server: ServerConfig{
			Port: v.GetInt("server.port"),
			Host: v.GetString("server.host"),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("database.host"),
			Port:     v.GetInt("database.port"),
			User:     v.GetString("database.user"),
			Password: v.GetString("database.password"),
			Name:     v.GetString("database.name"),
			SSLMode:  v.GetString("database.sslmode"),
		},
		JWT: JWTConfig{
			Secret:      v.GetString("jwt.secret"),
			ExpiryHours: v.GetInt("jwt.expiry_hours"),
		},
		Session: SessionConfig{
			CookieName:   v.GetString("session.cookie_name"),
			LifetimeDays: v.GetInt("session.lifetime_days"),
		},
		Storage: StorageConfig{
			Backend:   v.GetString("storage.backend"),
			LocalDir:  v.GetString("storage.local_dir"),
			Endpoint:  v.GetString("storage.endpoint"),
			AccessKey: v.GetString("storage.access_key"),
			SecretKey: v.GetString("storage.secret_key"),
			Bucket:    v.GetString("storage.bucket"),
			Region:    v.GetString("storage.region"),
		},
		SMS: SMSConfig{
			Provider:        v.GetString("sms.provider"),
			APIKey:          v.GetString("sms.api_key"),
			DefaulterAlerts: v.GetBool("sms.defaulter_alerts"),
		},
		Geocode: GeocodeConfig{
			BaseURL:        v.GetString("geocode.base_url"),
			TimeoutSeconds: v.GetInt("geocode.timeout_seconds"),
		},
		CORS: CORSConfig{
			AllowedOrigins: v.GetStringSlice("cors.allowed_origins"),
		},
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.host", "0.0.0.0")

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "outreach_user")
	v.SetDefault("database.password", "")
	v.SetDefault("database.name", "outreach_db")
	v.SetDefault("database.sslmode", "disable")

	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.expiry_hours", 72)

	v.SetDefault("session.cookie_name", "session_id")
	v.SetDefault("session.lifetime_days", 30)

	v.SetDefault("storage.backend", "local")
	v.SetDefault("storage.local_dir", "./data/photos")
	v.SetDefault("storage.region", "auto")

	v.SetDefault("sms.provider", "mock")
	v.SetDefault("sms.defaulter_alerts", false)

	v.SetDefault("geocode.base_url", "https://nominatim.openstreetmap.org")
	v.SetDefault("geocode.timeout_seconds", 5)

	v.SetDefault("cors.allowed_origins", []string{"*"})
}
