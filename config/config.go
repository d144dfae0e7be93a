package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Store backends.
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
)

// Config holds all application configuration, read from the environment
// once at startup.
type Config struct {
	Port           string
	AllowedOrigins string

	// StoreBackend selects the persistence layer: "memory" or "postgres".
	StoreBackend string
	DatabaseURL  string

	// SeedDemoData loads the demo dataset on boot (always on for the
	// memory backend, which starts empty otherwise).
	SeedDemoData bool

	JWTSecret string
	TokenTTL  time.Duration

	// RedisAddr enables the community leaderboard cache when non-empty.
	RedisAddr                string
	RedisPassword            string
	LeaderboardCacheTTL      time.Duration
	LeaderboardRebuildPeriod time.Duration

	// R2/S3 object storage for profile images. Uploads are disabled when
	// the bucket is unset.
	R2AccountID       string
	R2AccessKeyID     string
	R2AccessKeySecret string
	R2Bucket          string
	CDNBaseURL        string
}

// Load reads configuration from the environment, applying defaults that
// suit local development.
func Load() (*Config, error) {
	cfg := &Config{
		Port:                     getenv("PORT", "5300"),
		AllowedOrigins:           getenv("ALLOWED_ORIGINS", "http://localhost:3000"),
		StoreBackend:             getenv("STORE_BACKEND", BackendMemory),
		DatabaseURL:              os.Getenv("DATABASE_URL"),
		SeedDemoData:             getbool("SEED_DEMO_DATA", true),
		JWTSecret:                os.Getenv("JWT_SECRET"),
		TokenTTL:                 getduration("TOKEN_TTL", 24*time.Hour),
		RedisAddr:                os.Getenv("REDIS_ADDR"),
		RedisPassword:            os.Getenv("REDIS_PASSWORD"),
		LeaderboardCacheTTL:      getduration("LEADERBOARD_CACHE_TTL", 5*time.Minute),
		LeaderboardRebuildPeriod: getduration("LEADERBOARD_REBUILD_PERIOD", 2*time.Minute),
		R2AccountID:              os.Getenv("CLOUDFLARE_ACCOUNT_ID"),
		R2AccessKeyID:            os.Getenv("R2_ACCESS_KEY_ID"),
		R2AccessKeySecret:        os.Getenv("R2_ACCESS_KEY_SECRET"),
		R2Bucket:                 os.Getenv("R2_BUCKET_NAME"),
		CDNBaseURL:               os.Getenv("CDN_BASE_URL"),
	}

	switch cfg.StoreBackend {
	case BackendMemory:
	case BackendPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("config: STORE_BACKEND=postgres requires DATABASE_URL")
		}
	default:
		return nil, fmt.Errorf("config: unknown STORE_BACKEND %q", cfg.StoreBackend)
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("config: JWT_SECRET not set")
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getbool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func getduration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
