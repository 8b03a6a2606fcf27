/*
Copyright 2024-2025 the Unikorn Authors.
Copyright 2026 Nscale.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package api

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var ErrMissingConfiguration = errors.New("missing required configuration")

type TestConfig struct {
	BaseURL         string
	AuthToken       string
	RequestTimeout  time.Duration
	SkipIntegration bool
	UseReferenceAPI bool
	LogRequests     bool
	LogResponses    bool
}

// LoadTestConfig loads configuration from environment variables and .env files.
// Returns an error if required configuration values are missing.
func LoadTestConfig() (*TestConfig, error) {
	loadEnvFile()

	config := &TestConfig{
		BaseURL:         getWithFallback("API_BASE_URL", "URL"),
		AuthToken:       getWithFallback("API_AUTH_TOKEN", "ACCESS_CODE"),
		RequestTimeout:  getDurationWithDefault("REQUEST_TIMEOUT", 0),
		SkipIntegration: getBoolWithDefault("SKIP_INTEGRATION", false),
		UseReferenceAPI: getBoolWithDefault("USE_REFERENCE_API", false),
		LogRequests:     getBoolWithDefault("LOG_REQUESTS", false),
		LogResponses:    getBoolWithDefault("LOG_RESPONSES", false),
	}

	// The reference API provides its own URL and token.
	if config.SkipIntegration || config.UseReferenceAPI {
		return config, nil
	}

	if err := validateRequiredFields(config); err != nil {
		return nil, err
	}

	return config, nil
}

// getWithFallback reads key, or fallback when key is unset, so existing
// .env files using the older names keep working.
func getWithFallback(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return os.Getenv(fallback)
}

// getDurationWithDefault gets a duration from environment variable or returns default.
func getDurationWithDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}

	return duration
}

// getBoolWithDefault gets a boolean from environment variable or returns default.
func getBoolWithDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}

	return boolValue
}

func loadEnvFile() {
	envPaths := []string{
		"../../../test/.env", // From test/api/suites directory
		"../../test/.env",    // From test/api directory
		".env",
	}

	var envPath string

	for _, path := range envPaths {
		if _, err := os.Stat(path); err == nil {
			absPath, err := filepath.Abs(path)
			if err == nil {
				envPath = absPath
				break
			}
		}
	}

	if envPath == "" {
		// .env file not found - this is OK in CI/CD where env vars are set directly
		return
	}

	// godotenv.Load never overrides variables that are already set.
	if err := godotenv.Load(envPath); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load .env file from %s: %v\n", envPath, err)
	}
}

// validateRequiredFields checks that all required configuration values are set.
func validateRequiredFields(config *TestConfig) error {
	var missing []string

	if config.BaseURL == "" {
		missing = append(missing, "API_BASE_URL")
	}

	if config.AuthToken == "" {
		missing = append(missing, "API_AUTH_TOKEN")
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: %s. Please set these environment variables, add them to a .env file, or set USE_REFERENCE_API=true", ErrMissingConfiguration, strings.Join(missing, ", "))
	}

	return nil
}
