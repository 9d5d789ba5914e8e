package config

import (
	"strconv"
	"strings"
	"time"

	"vph-backend/utils"
)

// Config carries everything read from the environment at startup.
type Config struct {
	Port        string
	CORSOrigins []string

	JWTSecret string
	TokenTTL  time.Duration

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// AlertWebhookURL, when set, receives partial-operation reports.
	AlertWebhookURL string

	LogLevel  string
	LogFormat string
}

// Load reads configuration from environment variables with defaults
// suitable for local development.
func Load() *Config {
	ttl := 12 * time.Hour
	if raw := utils.EnvOrDefault("TOKEN_TTL_HOURS", ""); raw != "" {
		if h, err := strconv.Atoi(raw); err == nil && h > 0 {
			ttl = time.Duration(h) * time.Hour
		}
	}

	redisDB := 0
	if raw := utils.EnvOrDefault("REDIS_DB", ""); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n >= 0 {
			redisDB = n
		}
	}

	return &Config{
		Port:            utils.EnvOrDefault("PORT", "8080"),
		CORSOrigins:     parseCORSOrigins(utils.EnvOrDefault("CORS_ORIGINS", "")),
		JWTSecret:       utils.EnvOrDefault("JWT_SECRET", "dev-secret-change-me"),
		TokenTTL:        ttl,
		RedisAddr:       utils.EnvOrDefault("REDIS_ADDR", ""),
		RedisPassword:   utils.EnvOrDefault("REDIS_PASSWORD", ""),
		RedisDB:         redisDB,
		AlertWebhookURL: utils.EnvOrDefault("ALERT_WEBHOOK_URL", ""),
		LogLevel:        utils.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       utils.EnvOrDefault("LOG_FORMAT", "console"),
	}
}

func parseCORSOrigins(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []string{"*"}
	}
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		if origin := strings.TrimSpace(part); origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}
