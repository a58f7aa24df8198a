// ABOUTME: Configuration loader for the BlogHub client
// ABOUTME: Loads settings from environment variables (and an optional .env) with defaults

package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/Pinerealm/my-blogging-app/internal/storage"
)

// DefaultAPIURL is the backend a fresh checkout talks to
const DefaultAPIURL = "http://localhost:8000/api"

type Config struct {
	// Backend
	APIURL      string
	HTTPTimeout int     // seconds, default 30
	RateLimit   float64 // outbound requests per second, 0 disables throttling
	RateBurst   int     // burst allowed by the limiter (default: 5)

	// Session persistence
	ConfigDir      string // default: $XDG_CONFIG_HOME/bloghub
	SessionStore   string // file, memory, redis (default: file)
	RedisURL       string // required when SessionStore is redis
	RedisNamespace string // key prefix in Redis (default: bloghub)

	// Author pages
	AuthorCacheTTL int // seconds, 0 disables caching (default: 60)
}

// LoadDotEnv reads KEY=value pairs from .env files into the environment.
// Variables already set win; a missing file is not an error.
func LoadDotEnv(files ...string) {
	if err := godotenv.Load(files...); err != nil {
		slog.Debug("No .env file loaded", "error", err)
	}
}

func Load() (*Config, error) {
	cfg := &Config{
		APIURL:      strings.TrimRight(ensureScheme(getEnv("BLOGHUB_API_URL", DefaultAPIURL)), "/"),
		HTTPTimeout: getEnvInt("BLOGHUB_HTTP_TIMEOUT", 30),
		RateLimit:   getEnvFloat("BLOGHUB_RATE_LIMIT", 0),
		RateBurst:   getEnvInt("BLOGHUB_RATE_BURST", 5),

		ConfigDir:      getEnv("BLOGHUB_CONFIG_DIR", storage.DefaultConfigDir()),
		SessionStore:   strings.ToLower(getEnv("BLOGHUB_SESSION_STORE", storage.BackendFile)),
		RedisURL:       os.Getenv("BLOGHUB_REDIS_URL"),
		RedisNamespace: getEnv("BLOGHUB_REDIS_NAMESPACE", storage.DefaultNamespace),

		AuthorCacheTTL: getEnvInt("BLOGHUB_AUTHOR_CACHE_TTL", 60),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that Load cannot default away. Call it again after
// applying flag overrides.
func (c *Config) Validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("BLOGHUB_API_URL must be an http(s) URL, got %q", c.APIURL)
	}

	switch c.SessionStore {
	case storage.BackendFile, storage.BackendMemory:
	case storage.BackendRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("BLOGHUB_REDIS_URL is required when BLOGHUB_SESSION_STORE is redis")
		}
	default:
		return fmt.Errorf("BLOGHUB_SESSION_STORE must be one of file, memory, redis, got %q", c.SessionStore)
	}

	if c.HTTPTimeout < 1 || c.HTTPTimeout > 600 {
		return fmt.Errorf("BLOGHUB_HTTP_TIMEOUT must be between 1 and 600, got %d", c.HTTPTimeout)
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("BLOGHUB_RATE_LIMIT must not be negative, got %g", c.RateLimit)
	}
	if c.RateBurst < 1 {
		return fmt.Errorf("BLOGHUB_RATE_BURST must be at least 1, got %d", c.RateBurst)
	}
	if c.AuthorCacheTTL < 0 {
		return fmt.Errorf("BLOGHUB_AUTHOR_CACHE_TTL must not be negative, got %d", c.AuthorCacheTTL)
	}
	return nil
}

// Timeout is HTTPTimeout as a duration
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.HTTPTimeout) * time.Second
}

// AuthorCacheDuration is AuthorCacheTTL as a duration
func (c *Config) AuthorCacheDuration() time.Duration {
	return time.Duration(c.AuthorCacheTTL) * time.Second
}

// StorageOptions selects the session storage backend
func (c *Config) StorageOptions() storage.Options {
	return storage.Options{
		Backend:   c.SessionStore,
		ConfigDir: c.ConfigDir,
		RedisURL:  c.RedisURL,
		Namespace: c.RedisNamespace,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

// ensureScheme adds http:// prefix if the URL has no scheme
func ensureScheme(url string) string {
	if url == "" {
		return url
	}
	if !strings.Contains(url, "://") {
		return "http://" + url
	}
	return url
}
