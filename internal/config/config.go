/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config covers process level configuration read from environment variables.
type Config struct {
	Environment string
	HTTPBind    string
	HTTPPort    int

	// CatalogPath points at the track catalog CSV loaded at startup.
	CatalogPath string

	// TuningPath optionally overrides curation thresholds (YAML).
	TuningPath string

	JWTSigningKey string

	// APIKeys holds sha256 hex digests of accepted static API keys.
	APIKeys []string

	// Tracing configuration
	TracingEnabled    bool
	OTLPEndpoint      string
	TracingSampleRate float64
}

// Load reads environment variables, applies defaults, and validates the result.
func Load() (*Config, error) {
	cfg := &Config{
		Environment:   getEnv("BRAGI_ENV", "development"),
		HTTPBind:      getEnv("BRAGI_HTTP_BIND", "0.0.0.0"),
		HTTPPort:      getEnvInt("BRAGI_HTTP_PORT", 8080),
		CatalogPath:   getEnv("BRAGI_CATALOG_PATH", ""),
		TuningPath:    getEnv("BRAGI_TUNING_PATH", ""),
		JWTSigningKey: getEnv("BRAGI_JWT_SIGNING_KEY", ""),
		APIKeys:       splitList(getEnv("BRAGI_API_KEY_HASHES", "")),

		TracingEnabled:    getEnvBool("BRAGI_TRACING_ENABLED", false),
		OTLPEndpoint:      getEnv("BRAGI_OTLP_ENDPOINT", "localhost:4317"),
		TracingSampleRate: getEnvFloat("BRAGI_TRACING_SAMPLE_RATE", 1.0),
	}

	if cfg.CatalogPath == "" {
		return nil, fmt.Errorf("BRAGI_CATALOG_PATH must be provided")
	}

	if cfg.JWTSigningKey == "" {
		return nil, fmt.Errorf("BRAGI_JWT_SIGNING_KEY must be provided")
	}

	if strings.EqualFold(cfg.Environment, "production") && len(cfg.JWTSigningKey) < 32 {
		return nil, fmt.Errorf("BRAGI_JWT_SIGNING_KEY must be at least 32 bytes in production")
	}

	return cfg, nil
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvInt(key string, def int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if val := os.Getenv(key); val != "" {
		val = strings.ToLower(strings.TrimSpace(val))
		if val == "true" || val == "1" || val == "yes" {
			return true
		}
		if val == "false" || val == "0" || val == "no" {
			return false
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseFloat(val, 64); err == nil {
			return parsed
		}
	}
	return def
}
