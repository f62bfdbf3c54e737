package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Search    SearchConfig
	Intent    IntentConfig
	Providers ProvidersConfig
	Logging   LoggingConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port           int
	Host           string
	GinMode        string
	AllowedOrigins string
	AllowedMethods string
	AllowedHeaders string
}

// SearchConfig holds aggregator configuration
type SearchConfig struct {
	DefaultLimit   int
	MaxLimit       int
	DefaultRadiusM int
	AdapterTimeout time.Duration
}

// IntentConfig holds classifier configuration
type IntentConfig struct {
	DefaultRegion string
}

// ProvidersConfig holds one block per upstream provider
type ProvidersConfig struct {
	OpenTripMap  OpenTripMapConfig
	GooglePlaces GooglePlacesConfig
	Mapbox       MapboxConfig
	Curated      CuratedConfig
}

// OpenTripMapConfig holds OpenTripMap API configuration
type OpenTripMapConfig struct {
	APIKey         string
	BaseURL        string
	Timeout        time.Duration
	RequestsPerSec float64
	Enabled        bool
}

// GooglePlacesConfig holds Google Places API configuration
type GooglePlacesConfig struct {
	APIKey         string
	BaseURL        string
	Timeout        time.Duration
	RequestsPerSec float64
	Enabled        bool
}

// MapboxConfig holds Mapbox geocoding API configuration
type MapboxConfig struct {
	AccessToken    string
	BaseURL        string
	Timeout        time.Duration
	RequestsPerSec float64
	Enabled        bool
}

// CuratedConfig holds the curated-places database configuration
type CuratedConfig struct {
	DSN                string
	MaxConnections     int
	MaxIdleConnections int
	Enabled            bool
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level      string
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (optional)
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:           getEnvAsInt("SERVER_PORT", 8080),
			Host:           getEnv("SERVER_HOST", "0.0.0.0"),
			GinMode:        getEnv("GIN_MODE", "release"),
			AllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
			AllowedMethods: getEnv("CORS_ALLOWED_METHODS", "GET,POST,PUT,DELETE,OPTIONS"),
			AllowedHeaders: getEnv("CORS_ALLOWED_HEADERS", "Content-Type,Authorization"),
		},
		Search: SearchConfig{
			DefaultLimit:   getEnvAsInt("SEARCH_DEFAULT_LIMIT", 20),
			MaxLimit:       getEnvAsInt("SEARCH_MAX_LIMIT", 100),
			DefaultRadiusM: getEnvAsInt("SEARCH_DEFAULT_RADIUS_M", 50000),
			AdapterTimeout: time.Duration(getEnvAsInt("SEARCH_ADAPTER_TIMEOUT_SEC", 10)) * time.Second,
		},
		Intent: IntentConfig{
			DefaultRegion: getEnv("INTENT_DEFAULT_REGION", "Sikkim"),
		},
		Providers: ProvidersConfig{
			OpenTripMap: OpenTripMapConfig{
				APIKey:         getEnv("OPENTRIPMAP_API_KEY", ""),
				BaseURL:        getEnv("OPENTRIPMAP_BASE_URL", "https://api.opentripmap.com/0.1/en/places"),
				Timeout:        time.Duration(getEnvAsInt("OPENTRIPMAP_TIMEOUT_SEC", 10)) * time.Second,
				RequestsPerSec: getEnvAsFloat("OPENTRIPMAP_REQUESTS_PER_SEC", 5),
				Enabled:        getEnv("OPENTRIPMAP_API_KEY", "") != "",
			},
			GooglePlaces: GooglePlacesConfig{
				APIKey:         getEnv("GOOGLE_PLACES_API_KEY", ""),
				BaseURL:        getEnv("GOOGLE_PLACES_BASE_URL", "https://maps.googleapis.com/maps/api/place"),
				Timeout:        time.Duration(getEnvAsInt("GOOGLE_PLACES_TIMEOUT_SEC", 10)) * time.Second,
				RequestsPerSec: getEnvAsFloat("GOOGLE_PLACES_REQUESTS_PER_SEC", 10),
				Enabled:        getEnv("GOOGLE_PLACES_API_KEY", "") != "",
			},
			Mapbox: MapboxConfig{
				AccessToken:    getEnv("MAPBOX_ACCESS_TOKEN", ""),
				BaseURL:        getEnv("MAPBOX_BASE_URL", "https://api.mapbox.com"),
				Timeout:        time.Duration(getEnvAsInt("MAPBOX_TIMEOUT_SEC", 10)) * time.Second,
				RequestsPerSec: getEnvAsFloat("MAPBOX_REQUESTS_PER_SEC", 10),
				Enabled:        getEnv("MAPBOX_ACCESS_TOKEN", "") != "",
			},
			Curated: CuratedConfig{
				DSN:                getEnv("DATABASE_URL", getEnv("PG_DSN", "")),
				MaxConnections:     getEnvAsInt("PG_MAX_CONNECTIONS", 25),
				MaxIdleConnections: getEnvAsInt("PG_MAX_IDLE_CONNECTIONS", 5),
				Enabled:            getEnv("DATABASE_URL", getEnv("PG_DSN", "")) != "",
			},
		},
		Logging: LoggingConfig{
			Level:      getEnv("LOG_LEVEL", "info"),
			File:       getEnv("LOG_FILE", ""),
			MaxSizeMB:  getEnvAsInt("LOG_MAX_SIZE_MB", 50),
			MaxBackups: getEnvAsInt("LOG_MAX_BACKUPS", 3),
			MaxAgeDays: getEnvAsInt("LOG_MAX_AGE_DAYS", 28),
		},
	}

	return cfg, nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer value for %s, using default %d", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("Warning: Invalid float value for %s, using default %f", key, defaultValue)
		return defaultValue
	}
	return value
}
