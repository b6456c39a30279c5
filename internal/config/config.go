// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config stores the application configuration.
type Config struct {
	Port            string
	AnalysisBaseURL string
	StaticDir       string
	TemplatesDir    string
	LogDir          string
	DebugMode       bool

	// Outbound HTTP timeout for analysis requests, in seconds.
	HTTPTimeoutSeconds int

	// When true all analysis kinds share one throttle window instead of
	// one window per kind.
	GlobalThrottle bool
}

// DefaultAnalysisBaseURL is the deployed analysis service. Each kind maps
// to one function under this base.
const DefaultAnalysisBaseURL = "https://us-central1-automatedcontenthub.cloudfunctions.net"

// Load reads configuration from the environment. A .env file is loaded
// first when present.
func Load() (*Config, error) {
	godotenv.Load()

	config := &Config{
		Port:               getEnv("PORT", "8080"),
		AnalysisBaseURL:    getEnv("ANALYSIS_BASE_URL", DefaultAnalysisBaseURL),
		StaticDir:          getEnvPath("STATIC_DIR", "web/static"),
		TemplatesDir:       getEnvPath("TEMPLATES_DIR", "web/templates"),
		LogDir:             getEnvPath("LOG_DIR", "logs"),
		DebugMode:          getEnvBool("DEBUG_MODE", true),
		HTTPTimeoutSeconds: getEnvInt("HTTP_TIMEOUT_SECONDS", 30),
		GlobalThrottle:     getEnvBool("GLOBAL_THROTTLE", false),
	}

	if config.AnalysisBaseURL == "" {
		return nil, fmt.Errorf("ANALYSIS_BASE_URL must not be empty")
	}

	return config, nil
}

// getEnv returns the environment value or a default when unset.
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvPath returns a directory path from the environment, creating the
// directory when it does not exist.
func getEnvPath(key, defaultValue string) string {
	path := getEnv(key, defaultValue)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := os.MkdirAll(path, 0755); err != nil {
			fmt.Printf("warning: failed to create directory %s: %v\n", path, err)
		}
	}

	return path
}

// getEnvBool returns a boolean environment value.
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	return value == "true" || value == "1" || value == "yes"
}

// getEnvInt returns an integer environment value.
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}
	return defaultValue
}
