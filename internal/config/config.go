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

// SessionLookupFailureMode selects how an invocation reacts when the active
// session listing for one studio fails.
type SessionLookupFailureMode string

const (
	// SessionLookupAbort fails the whole invocation before any launch is
	// attempted. Default: a missing exclusion set risks duplicate launches.
	SessionLookupAbort SessionLookupFailureMode = "abort"
	// SessionLookupSkipStudio drops the failing studio's configs from this
	// invocation and keeps processing the remaining studios.
	SessionLookupSkipStudio SessionLookupFailureMode = "skip-studio"
)

// Config covers process level configuration read from environment variables.
// It is constructed once at the entrypoint and threaded into every component
// that needs it; nothing reads the environment after Load returns.
type Config struct {
	Environment     string
	AWSRegion       string
	ConfigTableName string
	RuleName        string

	// Daemon mode
	HTTPBind string
	HTTPPort int

	SessionLookupFailure SessionLookupFailureMode

	// Optional static AWS credentials; the default provider chain is used
	// when unset.
	AWSAccessKeyID     string
	AWSSecretAccessKey string

	// Tracing configuration
	TracingEnabled    bool
	OTLPEndpoint      string
	TracingSampleRate float64
}

// Load reads environment variables, applies defaults, and validates the result.
func Load() (*Config, error) {
	cfg := &Config{
		Environment:     getEnvAny([]string{"SCHEDULER_ENV", "ENVIRONMENT"}, "development"),
		AWSRegion:       getEnvAny([]string{"SCHEDULER_AWS_REGION", "AWS_REGION"}, "us-west-2"),
		ConfigTableName: getEnvAny([]string{"SCHEDULER_TABLE_NAME", "TABLE_NAME"}, "nimble_studio_auto_workstation_scheduler_config"),
		RuleName:        getEnvAny([]string{"SCHEDULER_RULE_NAME", "RULE_NAME"}, "nimble-studio-auto-workstation-scheduler-rule"),

		HTTPBind: getEnv("SCHEDULER_HTTP_BIND", "0.0.0.0"),
		HTTPPort: getEnvInt("SCHEDULER_HTTP_PORT", 8080),

		SessionLookupFailure: SessionLookupFailureMode(getEnv("SCHEDULER_SESSION_LOOKUP_FAILURE_MODE", string(SessionLookupAbort))),

		AWSAccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),

		TracingEnabled:    getEnvBool("SCHEDULER_TRACING_ENABLED", false),
		OTLPEndpoint:      getEnv("SCHEDULER_OTLP_ENDPOINT", "localhost:4317"),
		TracingSampleRate: getEnvFloat("SCHEDULER_TRACING_SAMPLE_RATE", 1.0),
	}

	if cfg.ConfigTableName == "" {
		return nil, fmt.Errorf("SCHEDULER_TABLE_NAME must not be empty")
	}

	if cfg.SessionLookupFailure != SessionLookupAbort && cfg.SessionLookupFailure != SessionLookupSkipStudio {
		return nil, fmt.Errorf("unsupported session lookup failure mode %q", cfg.SessionLookupFailure)
	}

	return cfg, nil
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
	if v := os.Getenv(key); v != "" {
		v = strings.ToLower(strings.TrimSpace(v))
		if v == "true" || v == "1" || v == "yes" {
			return true
		}
		if v == "false" || v == "0" || v == "no" {
			return false
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			return parsed
		}
	}
	return def
}

// getEnvAny returns the first non-empty environment variable value from keys, or def if none set.
func getEnvAny(keys []string, def string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return def
}
