package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Fetch     FetchConfig
	Extract   ExtractConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
	Log       LogConfig
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Host string // default: "0.0.0.0"
	Port int    // default: 3000

	// Mode is the gin mode: "debug", "release" or "test". In debug mode
	// error envelopes also carry the internal error chain.
	Mode string // default: "release"

	// MaxBodyBytes caps the request body size.
	MaxBodyBytes int64 // default: 1 MiB
}

// Debug reports whether diagnostic detail may be included in responses.
func (s ServerConfig) Debug() bool {
	return s.Mode == "debug"
}

// FetchConfig controls outbound requests (short-link resolution and page fetch).
type FetchConfig struct {
	// Timeout bounds each of the two network calls independently.
	Timeout time.Duration // default: 20s

	// MaxRedirects is the redirect hop bound.
	MaxRedirects int // default: 5

	// ChromeTLS enables the Chrome TLS ClientHello for https targets.
	ChromeTLS bool // default: true

	// Proxy is an optional http(s) proxy URL for outbound requests.
	Proxy string

	// MaxBodyBytes caps how much of a fetched page is read.
	MaxBodyBytes int64 // default: 10 MiB
}

// ExtractConfig controls field extraction limits.
type ExtractConfig struct {
	ImageCap            int // default: 10
	SpecsMaxChars       int // default: 600
	SpecsCandidates     int // default: 3
	SpecsMinChars       int // default: 20; a summary must be longer
	DescriptionMaxChars int // default: 600
}

// AuthConfig controls API key authentication.
type AuthConfig struct {
	// Enabled toggles API key authentication.
	Enabled bool // default: false

	// APIKeys is the list of valid API keys.
	APIKeys []string
}

// RateLimitConfig controls per-key rate limiting.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate per API key (or client IP).
	RequestsPerSecond float64 // default: 5

	// Burst is the maximum burst size per identity.
	Burst int // default: 10
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string // default: "info"
	Format string // "json" or "text"; default: "json"
}

// Load reads configuration from environment variables with sane defaults.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host:         envOr("ALI_HOST", "0.0.0.0"),
			Port:         envIntOr("PORT", 3000),
			Mode:         envOneOf("ALI_MODE", "release", "debug", "release", "test"),
			MaxBodyBytes: int64(envIntOr("ALI_MAX_BODY_BYTES", 1<<20)),
		},
		Fetch: FetchConfig{
			Timeout:      envDurationOr("ALI_FETCH_TIMEOUT", 20*time.Second),
			MaxRedirects: envIntOr("ALI_MAX_REDIRECTS", 5),
			ChromeTLS:    envBoolOr("ALI_CHROME_TLS", true),
			Proxy:        os.Getenv("ALI_PROXY"),
			MaxBodyBytes: int64(envIntOr("ALI_MAX_PAGE_BYTES", 10<<20)),
		},
		Extract: ExtractConfig{
			ImageCap:            envIntOr("ALI_IMAGE_CAP", 10),
			SpecsMaxChars:       envIntOr("ALI_SPECS_MAX_CHARS", 600),
			SpecsCandidates:     envIntOr("ALI_SPECS_CANDIDATES", 3),
			SpecsMinChars:       envIntOr("ALI_SPECS_MIN_CHARS", 20),
			DescriptionMaxChars: envIntOr("ALI_DESCRIPTION_MAX_CHARS", 600),
		},
		Auth: AuthConfig{
			Enabled: envBoolOr("ALI_AUTH_ENABLED", false),
			APIKeys: envSliceOr("ALI_API_KEYS", nil),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: envFloatOr("ALI_RATE_RPS", 5.0),
			Burst:             envIntOr("ALI_RATE_BURST", 10),
		},
		Log: LogConfig{
			Level:  envOr("ALI_LOG_LEVEL", "info"),
			Format: envOr("ALI_LOG_FORMAT", "json"),
		},
	}
}

// --- helper functions ---

// envOneOf returns the variable when it is one of allowed, else fallback.
func envOneOf(key, fallback string, allowed ...string) string {
	v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	for _, a := range allowed {
		if v == a {
			return v
		}
	}
	return fallback
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBoolOr(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envFloatOr(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envSliceOr(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		return result
	}
	return fallback
}
