package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"roadwatch-go/internal/geo"
	"roadwatch-go/internal/services/regions"
)

type Config struct {
	// Application
	Version     string
	Environment string
	WorkerID    string
	Port        int
	LogLevel    string

	// Logdy (lightweight web log viewer)
	LogdyEnabled bool
	LogdyHost    string
	LogdyPort    int

	// NATS (notification delivery)
	// Default: nats://localhost:4222 (works with Docker Compose setup)
	// Docker: Use nats://nats:4222 if running the alerter in Docker
	NatsURL            string
	NatsConnectTimeout time.Duration
	NatsReconnectWait  time.Duration
	NatsMaxReconnects  int
	NatsDrainTimeout   time.Duration

	// Per-user delivery channel: subject is "<prefix>.<user_id>"
	NotifySubjectPrefix string

	// Matching
	ScanInterval         time.Duration
	NearbyRadiusKm       float64
	RegionAssignRadiusKm float64

	// Region catalog, fixed for the process lifetime.
	// REGIONS format: "Name@lat,lon;Name@lat,lon"
	Regions []regions.Definition

	// Traffic feed polling (optional; empty URL disables the poller and
	// snapshots arrive via PUT /traffic only)
	TrafficFeedURL      string
	TrafficPollInterval time.Duration
	TrafficFeedTimeout  time.Duration

	// Graceful Shutdown
	ShutdownTimeout time.Duration
}

func Load() *Config {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg("No .env file found or error loading .env file, using environment variables and defaults")
	} else {
		log.Info().Msg("Loaded configuration from .env file")
	}

	return &Config{
		// Application
		Version:     getEnv("VERSION", "1.0.0"),
		Environment: getEnv("ENVIRONMENT", "development"),
		WorkerID:    getEnv("WORKER_ID", "alerter-1"),
		Port:        getEnvInt("PORT", 8200),
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		// Logdy (lightweight web log viewer)
		LogdyEnabled: getEnvBool("LOGDY_ENABLED", false),
		LogdyHost:    getEnv("LOGDY_HOST", "localhost"),
		LogdyPort:    getEnvInt("LOGDY_PORT", 8080),

		// NATS
		NatsURL:            getNatsURL(),
		NatsConnectTimeout: getEnvDuration("NATS_CONNECT_TIMEOUT", 10*time.Second),
		NatsReconnectWait:  getEnvDuration("NATS_RECONNECT_WAIT", 2*time.Second),
		NatsMaxReconnects:  getEnvInt("NATS_MAX_RECONNECTS", -1), // -1 = unlimited
		NatsDrainTimeout:   getEnvDuration("NATS_DRAIN_TIMEOUT", 5*time.Second),

		NotifySubjectPrefix: getEnv("NOTIFY_SUBJECT_PREFIX", "notifications"),

		// Matching
		ScanInterval:         getEnvDuration("SCAN_INTERVAL", 30*time.Second),
		NearbyRadiusKm:       getEnvFloat("NEARBY_RADIUS_KM", geo.DefaultNearbyKm),
		RegionAssignRadiusKm: getEnvFloat("REGION_ASSIGN_RADIUS_KM", geo.RegionAssignKm),

		Regions: parseRegions(getEnv("REGIONS", "")),

		// Traffic feed polling
		TrafficFeedURL:      getEnv("TRAFFIC_FEED_URL", ""),
		TrafficPollInterval: getEnvDuration("TRAFFIC_POLL_INTERVAL", 60*time.Second),
		TrafficFeedTimeout:  getEnvDuration("TRAFFIC_FEED_TIMEOUT", 10*time.Second),

		// Graceful Shutdown
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 30*time.Second),
	}
}

// defaultRegions covers the Gauteng metro area plus the other major
// centres the traffic feed reports on.
var defaultRegions = []regions.Definition{
	{Name: "Johannesburg", Latitude: -26.2041, Longitude: 28.0473},
	{Name: "Sandton", Latitude: -26.1076, Longitude: 28.0567},
	{Name: "Randburg", Latitude: -26.0936, Longitude: 28.0064},
	{Name: "Midrand", Latitude: -25.9992, Longitude: 28.1263},
	{Name: "Centurion", Latitude: -25.8603, Longitude: 28.1894},
	{Name: "Pretoria", Latitude: -25.7479, Longitude: 28.2293},
	{Name: "Cape Town", Latitude: -33.9249, Longitude: 18.4241},
	{Name: "Durban", Latitude: -29.8587, Longitude: 31.0218},
}

// parseRegions parses "Name@lat,lon;Name@lat,lon". Malformed entries are
// logged and skipped; an empty or fully malformed value falls back to the
// built-in catalog.
func parseRegions(raw string) []regions.Definition {
	if raw == "" {
		return defaultRegions
	}

	var defs []regions.Definition
	for _, entry := range strings.Split(raw, ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		name, coords, ok := strings.Cut(entry, "@")
		if !ok {
			log.Warn().Str("entry", entry).Msg("Malformed REGIONS entry, expected Name@lat,lon")
			continue
		}
		latStr, lonStr, ok := strings.Cut(coords, ",")
		if !ok {
			log.Warn().Str("entry", entry).Msg("Malformed REGIONS coordinates, expected lat,lon")
			continue
		}
		lat, latErr := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
		lon, lonErr := strconv.ParseFloat(strings.TrimSpace(lonStr), 64)
		if latErr != nil || lonErr != nil {
			log.Warn().Str("entry", entry).Msg("Non-numeric REGIONS coordinates")
			continue
		}
		defs = append(defs, regions.Definition{
			Name:      strings.TrimSpace(name),
			Latitude:  lat,
			Longitude: lon,
		})
	}

	if len(defs) == 0 {
		log.Warn().Msg("REGIONS set but no valid entries parsed, using default catalog")
		return defaultRegions
	}
	return defs
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// Helper functions for Docker environment detection
func isRunningInDocker() bool {
	if os.Getenv("DOCKER_CONTAINER") == "true" {
		return true
	}

	if _, err := os.Stat("/.dockerenv"); err == nil {
		return true
	}

	return false
}

// getNatsURL returns the appropriate NATS URL based on environment
func getNatsURL() string {
	if envURL := os.Getenv("NATS_URL"); envURL != "" {
		return envURL
	}

	if isRunningInDocker() {
		return "nats://nats:4222"
	}

	return "nats://localhost:4222"
}
