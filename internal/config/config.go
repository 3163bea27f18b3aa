package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds the environment-driven settings. Exactly one reference data
// source is used: the GCS pair wins when set, otherwise the export URL.
type Config struct {
	Port string

	ReferenceExportURL string
	ReferenceGCSBucket string
	ReferenceGCSObject string
	ReferenceGCSPublic bool

	ReferenceCacheTTLSeconds int
	CooldownDays             int
}

func ProcessEnvironmentVariables() (*Config, error) {
	// Defaults suit the docker compose setup.
	env := Config{
		Port:                     "9446",
		ReferenceCacheTTLSeconds: 0,
		CooldownDays:             7,
	}

	if v := os.Getenv("PORT"); v != "" {
		env.Port = v
	}

	env.ReferenceExportURL = os.Getenv("REFERENCE_EXPORT_URL")
	env.ReferenceGCSBucket = os.Getenv("REFERENCE_GCS_BUCKET")
	env.ReferenceGCSObject = os.Getenv("REFERENCE_GCS_OBJECT")
	env.ReferenceGCSPublic = os.Getenv("REFERENCE_GCS_PUBLIC") != ""

	if v := os.Getenv("REFERENCE_CACHE_TTL_SECONDS"); v != "" {
		ttl, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid REFERENCE_CACHE_TTL_SECONDS %q: %w", v, err)
		}
		env.ReferenceCacheTTLSeconds = ttl
	}

	if v := os.Getenv("COOLDOWN_DAYS"); v != "" {
		days, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid COOLDOWN_DAYS %q: %w", v, err)
		}
		env.CooldownDays = days
	}

	if env.ReferenceExportURL == "" && (env.ReferenceGCSBucket == "" || env.ReferenceGCSObject == "") {
		return nil, fmt.Errorf("no reference data source: set REFERENCE_EXPORT_URL or REFERENCE_GCS_BUCKET + REFERENCE_GCS_OBJECT")
	}

	return &env, nil
}
