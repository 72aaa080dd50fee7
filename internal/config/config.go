// Package config holds the runtime configuration for the zenith front end.
// Everything is environment-driven; a .env file in the working directory is
// loaded first when present.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	// DefaultBackendURL matches the local FastAPI backend used in development.
	DefaultBackendURL = "http://127.0.0.1:8000"
	DefaultAddr       = ":3000"

	// Cookie lifetimes mirror the product's login flows: password logins
	// last a week, Google OAuth sessions thirty minutes.
	DefaultLoginCookieMaxAge = 7 * 24 * time.Hour
	DefaultOAuthCookieMaxAge = 30 * time.Minute
)

// Config is the resolved configuration of one serve invocation.
type Config struct {
	Addr              string
	BackendURL        string
	Dev               bool
	LoginCookieMaxAge time.Duration
	OAuthCookieMaxAge time.Duration
	ProfileCachePath  string
}

// Load reads configuration from the environment (after a best-effort .env
// load) and falls back to defaults for anything unset.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		Addr:              envOr("ZENITH_ADDR", DefaultAddr),
		BackendURL:        envOr("ZENITH_BACKEND_URL", DefaultBackendURL),
		Dev:               envBool("ZENITH_DEV"),
		LoginCookieMaxAge: envDuration("ZENITH_LOGIN_COOKIE_MAX_AGE", DefaultLoginCookieMaxAge),
		OAuthCookieMaxAge: envDuration("ZENITH_OAUTH_COOKIE_MAX_AGE", DefaultOAuthCookieMaxAge),
		ProfileCachePath:  envOr("ZENITH_PROFILE_CACHE", defaultProfileCachePath()),
	}
	return cfg
}

func defaultProfileCachePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "zenith-profiles.db"
	}
	return home + "/.zenith/profiles.db"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string) bool {
	v := os.Getenv(key)
	b, err := strconv.ParseBool(v)
	return err == nil && b
}

func envDuration(key string, fallback time.Duration) time.Duration {
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
