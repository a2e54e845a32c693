// Package config loads checker configuration from environment variables.
package config

import (
	"os"
	"strconv"
)

// DefaultDatasetPath is used when no path is given.
const DefaultDatasetPath = "./fine_tuning_data/fine_tuning_data.jsonl"

// Config holds all runtime configuration for tunecheck.
type Config struct {
	DatasetPath string
	Encoding    string
	Format      string

	NoColor bool
	Verbose bool
}

// Load reads environment variables and returns a Config.
// Command-line flags override these values in main.
func Load() *Config {
	return &Config{
		DatasetPath: getEnv("TUNECHECK_DATASET", DefaultDatasetPath),
		Encoding:    getEnv("TUNECHECK_ENCODING", "cl100k_base"),
		Format:      getEnv("TUNECHECK_FORMAT", "text"),

		// https://no-color.org: any non-empty value disables color.
		NoColor: os.Getenv("NO_COLOR") != "" || getEnvBool("TUNECHECK_NO_COLOR", false),
		Verbose: getEnvBool("TUNECHECK_VERBOSE", false),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
