package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Endpoint path pattern (supports prefix matching)
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	CleanupInterval time.Duration
	IdleTimeout     time.Duration // Limiters unused for this long are dropped
	Whitelist       map[string]bool
	Blacklist       map[string]bool
	EndpointConfigs []EndpointConfig
}

// NewConfig returns an enabled configuration limiting the expensive endpoints
// to perMinute requests per client with the given burst.
func NewConfig(perMinute float64, burst int) *Config {
	return &Config{
		Enabled:         perMinute > 0,
		CleanupInterval: 5 * time.Minute,
		IdleTimeout:     time.Hour,
		Whitelist:       make(map[string]bool),
		Blacklist:       make(map[string]bool),
		EndpointConfigs: DefaultEndpointConfigs(perMinute, burst),
	}
}

// LoadConfig builds on NewConfig with overrides from environment variables.
func LoadConfig(perMinute float64, burst int) *Config {
	cfg := NewConfig(perMinute, burst)
	cfg.Enabled = getEnvBool("RATE_LIMIT_ENABLED", cfg.Enabled)
	cfg.CleanupInterval = getEnvDuration("RATE_LIMIT_CLEANUP_INTERVAL", cfg.CleanupInterval)
	cfg.Whitelist = parseIPList(getEnvString("RATE_LIMIT_WHITELIST", ""))
	cfg.Blacklist = parseIPList(getEnvString("RATE_LIMIT_BLACKLIST", ""))
	return cfg
}

// DefaultEndpointConfigs limits generation and export; every other route is unlimited.
func DefaultEndpointConfigs(perMinute float64, burst int) []EndpointConfig {
	if perMinute <= 0 {
		return nil
	}
	// Express fractional per-minute rates as whole requests per longer window
	limit, window := int(perMinute), time.Minute
	if perMinute < 1 {
		limit, window = 1, time.Duration(float64(time.Minute)/perMinute)
	}
	return []EndpointConfig{
		{Path: "/plans", Method: "POST", Limit: limit, Window: window, Burst: burst},
		{Path: "/plans/stream", Method: "POST", Limit: limit, Window: window, Burst: burst},
		{Path: "/plans/export", Method: "POST", Limit: limit, Window: window, Burst: burst},
	}
}

// getEnvString gets an environment variable as a string with a default value.
func getEnvString(key string, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets an environment variable as a boolean with a default value.
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvDuration gets an environment variable as a duration with a default value.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// parseIPList parses a comma-separated list of IP addresses into a map.
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	if list == "" {
		return result
	}

	for _, ip := range strings.Split(list, ",") {
		ip = strings.TrimSpace(ip)
		if ip != "" {
			result[ip] = true
		}
	}

	return result
}
