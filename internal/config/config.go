package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv         string
	Port           string
	AllowedOrigins string

	DatabaseURL string
	RedisURL    string

	JWTSecret   string
	TokenExpiry time.Duration

	// AdminFids is the authorization policy for the admin endpoints: the set
	// of Farcaster ids allowed to approve artists and mint codes without being
	// verified artists themselves.
	AdminFids []int64

	MeiliSearchHost string
	MeiliMasterKey  string

	CloudinaryUploadFolder string

	LeaderboardCacheTTL time.Duration
}

func Load() (*Config, error) {
	// Don't fail if .env doesn't exist (might be prod env vars)
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:         getEnv("APP_ENV", "development"),
		Port:           getEnv("PORT", "8080"),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "http://localhost:3000"),

		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisURL:    os.Getenv("REDIS_URL"),

		JWTSecret: getEnv("JWT_SECRET", "dev-secret"),

		MeiliSearchHost: getEnv("MEILISEARCH_HOST", ""),
		MeiliMasterKey:  os.Getenv("MEILI_MASTER_KEY"),

		CloudinaryUploadFolder: getEnv("CLOUDINARY_UPLOAD_FOLDER", "art_claps"),
	}

	var err error
	cfg.AdminFids, err = parseFids(getEnv("ADMIN_FIDS", ""))
	if err != nil {
		return nil, fmt.Errorf("invalid ADMIN_FIDS: %w", err)
	}

	cfg.TokenExpiry, err = time.ParseDuration(getEnv("TOKEN_EXPIRY", "168h"))
	if err != nil {
		return nil, fmt.Errorf("invalid TOKEN_EXPIRY: %w", err)
	}

	cfg.LeaderboardCacheTTL, err = time.ParseDuration(getEnv("LEADERBOARD_CACHE_TTL", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid LEADERBOARD_CACHE_TTL: %w", err)
	}

	return cfg, nil
}

// IsAdmin reports whether fid belongs to the configured administrator set.
func (c *Config) IsAdmin(fid int64) bool {
	for _, admin := range c.AdminFids {
		if admin == fid {
			return true
		}
	}
	return false
}

func parseFids(raw string) ([]int64, error) {
	if raw == "" {
		return nil, nil
	}

	var fids []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		fid, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%q is not a valid fid", part)
		}
		fids = append(fids, fid)
	}
	return fids, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
