package mcpserver

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/erraggy/apidiff/differ"
)

// serverConfig holds all configurable MCP server defaults.
// Loaded once at startup from environment variables via loadConfig().
type serverConfig struct {
	// Cache settings.
	CacheEnabled       bool
	CacheMaxSize       int
	CacheFileTTL       time.Duration
	CacheContentTTL    time.Duration
	CacheSweepInterval time.Duration

	// Input limits.
	MaxInlineSize int64

	// Pagination of modified endpoints.
	ListLimit int
	MaxLimit  int

	// Diff tool defaults.
	DiffResponses     bool
	DiffParamIdentity differ.ParamIdentity
}

// cfg is the active server configuration, initialized at package load time.
var cfg = loadConfig()

// loadConfig reads configuration from APIDIFF_MCP_* environment variables.
// Invalid values log a warning and fall back to the hardcoded default.
func loadConfig() *serverConfig {
	return &serverConfig{
		CacheEnabled:       envBool("APIDIFF_MCP_CACHE_ENABLED", true),
		CacheMaxSize:       envInt("APIDIFF_MCP_CACHE_MAX_SIZE", 10),
		CacheFileTTL:       envDuration("APIDIFF_MCP_CACHE_FILE_TTL", 15*time.Minute),
		CacheContentTTL:    envDuration("APIDIFF_MCP_CACHE_CONTENT_TTL", 15*time.Minute),
		CacheSweepInterval: envDuration("APIDIFF_MCP_CACHE_SWEEP_INTERVAL", 60*time.Second),
		MaxInlineSize:      int64(envInt("APIDIFF_MCP_MAX_INLINE_SIZE", 10*1024*1024)),
		ListLimit:          envInt("APIDIFF_MCP_LIST_LIMIT", 100),
		MaxLimit:           envInt("APIDIFF_MCP_MAX_LIMIT", 1000),
		DiffResponses:      envBool("APIDIFF_MCP_DIFF_RESPONSES", false),
		DiffParamIdentity:  envParamIdentity("APIDIFF_MCP_PARAM_IDENTITY"),
	}
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid bool env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return b
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return n
}

func envParamIdentity(key string) differ.ParamIdentity {
	v := os.Getenv(key)
	identity, err := differ.ParseParamIdentity(v)
	if err != nil {
		slog.Warn("invalid parameter identity env var, using default", "key", key, "value", v, "default", differ.ParamIdentityName) //nolint:gosec // G706: values are structured log fields, not format strings
		return differ.ParamIdentityName
	}
	return identity
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		slog.Warn("invalid duration env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return d
}
