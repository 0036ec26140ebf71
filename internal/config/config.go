// Package config reads the configuration of the backend from environment
// variables. A .env file in the working directory is loaded first if it
// exists, variables already set in the environment take precedence.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	// Base URL of the API, used for links in responses
	APIURL *url.URL

	// HTTP server
	Port string

	// Directory the SQLite database is stored in
	DataDir string

	// gin mode: debug, release or test
	GinMode string

	// Log format: human or json. Empty selects human in debug mode
	// and json otherwise.
	LogFormat string

	CORSAllowOrigins []string
	EnablePprof      bool
}

// Load reads the configuration. Files are loaded in order, the first file
// that sets a variable wins. Without files, ".env" is tried.
func Load(files ...string) (Config, error) {
	err := godotenv.Load(files...)
	if err != nil && len(files) > 0 {
		return Config{}, fmt.Errorf("could not load environment file: %w", err)
	}

	c := Config{
		Port:             getEnv("PORT", "8080"),
		DataDir:          getEnv("DATA_DIR", "data"),
		GinMode:          getEnv("GIN_MODE", "release"),
		LogFormat:        getEnv("LOG_FORMAT", ""),
		CORSAllowOrigins: strings.Fields(os.Getenv("CORS_ALLOW_ORIGINS")),
		EnablePprof:      getEnvBool("ENABLE_PPROF", false),
	}

	apiURL, ok := os.LookupEnv("API_URL")
	if !ok {
		return Config{}, fmt.Errorf("environment variable API_URL must be set")
	}

	c.APIURL, err = url.Parse(apiURL)
	if err != nil {
		return Config{}, fmt.Errorf("environment variable API_URL must be a valid URL: %w", err)
	}

	return c, c.Validate()
}

// Validate checks the configuration for invalid values.
func (c Config) Validate() error {
	var errs []string

	if c.APIURL == nil || c.APIURL.Scheme == "" || c.APIURL.Host == "" {
		errs = append(errs, "API_URL must be an absolute URL")
	}

	if port, err := strconv.Atoi(c.Port); err != nil {
		errs = append(errs, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errs = append(errs, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	switch c.GinMode {
	case "debug", "release", "test":
	default:
		errs = append(errs, fmt.Sprintf("invalid GIN_MODE '%s': must be one of debug, release, test", c.GinMode))
	}

	switch c.LogFormat {
	case "", "human", "json":
	default:
		errs = append(errs, fmt.Sprintf("invalid LOG_FORMAT '%s': must be human or json", c.LogFormat))
	}

	if c.DataDir == "" {
		errs = append(errs, "DATA_DIR must not be empty")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
	}

	return nil
}

// HumanLogs reports whether logs should be written in human readable form.
func (c Config) HumanLogs() bool {
	if c.LogFormat == "" {
		return c.GinMode == "debug"
	}
	return c.LogFormat == "human"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
