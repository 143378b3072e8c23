package config

import (
	"os"
	"time"
)

// MaxTokenTTL bounds the leaked-token window. Configured TTLs above this are
// clamped at load time.
const MaxTokenTTL = 24 * time.Hour

// Server captures process-level configuration.
type Server struct {
	Addr          string
	MetricsAddr   string
	DatabaseURL   string
	RedisURL      string
	JWTSigningKey string
	TokenTTL      time.Duration
	Development   bool
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("CONTACTHUB_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	metricsAddr := os.Getenv("CONTACTHUB_METRICS_ADDR")
	if metricsAddr == "" {
		metricsAddr = ":9090"
	}

	jwtSigningKey := os.Getenv("JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		// Use a default for development - should be overridden in production
		jwtSigningKey = "dev-secret-key-change-in-production"
	}

	tokenTTL := 15 * time.Minute
	if raw := os.Getenv("CONTACTHUB_TOKEN_TTL"); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil && parsed > 0 {
			tokenTTL = parsed
		}
	}
	if tokenTTL > MaxTokenTTL {
		tokenTTL = MaxTokenTTL
	}

	return Server{
		Addr:          addr,
		MetricsAddr:   metricsAddr,
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		RedisURL:      os.Getenv("REDIS_URL"),
		JWTSigningKey: jwtSigningKey,
		TokenTTL:      tokenTTL,
		Development:   os.Getenv("CONTACTHUB_ENV") == "development",
	}
}
