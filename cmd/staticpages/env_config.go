package main

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/capreq/staticpages/internal/config"
)

// envPrefix is shared by every recognized environment variable.
const envPrefix = "STATICPAGES_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath  string // STATICPAGES_CONFIG: config file name or path
	Dir         string // STATICPAGES_DIR: pages directory
	SupabaseURL string // STATICPAGES_SUPABASE_URL: project URL inlined into pages
	AnonKey     string // STATICPAGES_ANON_KEY: anon key inlined into pages
	Workers     int    // STATICPAGES_WORKERS: parallel workers
}

// knownEnvVars lists valid STATICPAGES_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"STATICPAGES_CONFIG":       true,
	"STATICPAGES_DIR":          true,
	"STATICPAGES_SUPABASE_URL": true,
	"STATICPAGES_ANON_KEY":     true,
	"STATICPAGES_WORKERS":      true,
}

// loadEnvConfig reads configuration from environment variables.
// Returns a struct with all recognized STATICPAGES_* values.
func loadEnvConfig(getenv func(string) string) *envConfig {
	cfg := &envConfig{
		ConfigPath:  getenv("STATICPAGES_CONFIG"),
		Dir:         getenv("STATICPAGES_DIR"),
		SupabaseURL: getenv("STATICPAGES_SUPABASE_URL"),
		AnonKey:     getenv("STATICPAGES_ANON_KEY"),
	}

	// Parse int for workers
	if workers := getenv("STATICPAGES_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized STATICPAGES_* variables.
// Helps catch typos like STATICPAGES_ANONKEY instead of STATICPAGES_ANON_KEY.
func warnUnknownEnvVars(environ []string, logger *slog.Logger) {
	for _, env := range environ {
		if strings.HasPrefix(env, envPrefix) {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				logger.Warn("unknown environment variable (typo?)", "name", name)
			}
		}
	}
}

// applyEnvConfig applies environment variable values to config.
// Set variables override the config file; CLI flags are applied afterwards
// via mergeFlags, giving: CLI flags > env vars > config file > defaults.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Dir != "" {
		cfg.Site.Dir = env.Dir
	}
	if env.SupabaseURL != "" {
		cfg.Credentials.URL = env.SupabaseURL
	}
	if env.AnonKey != "" {
		cfg.Credentials.AnonKey = env.AnonKey
	}
	if env.Workers > 0 {
		cfg.Migration.Workers = env.Workers
	}
}
