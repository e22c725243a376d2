// Package config provides application configuration loaded from the environment.
package config

import (
	"fmt"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	// Server holds HTTP server configuration.
	Server ServerConfig
	// Logger holds logger configuration.
	Logger LoggerConfig
	// Auth holds token and password hashing configuration.
	Auth AuthConfig
	// Storage holds object storage configuration for uploaded images.
	Storage StorageConfig
	// CORS holds the browser origins allowed to call the API.
	CORS CORSConfig
	// GinMode is the Gin framework mode (debug, release, test).
	GinMode string
}

// CORSConfig holds CORS configuration.
type CORSConfig struct {
	AllowedOrigins []string
}

// Load reads an optional .env file and then loads configuration from the environment.
// A missing .env file is not an error.
func Load(envFiles ...string) Config {
	_ = godotenv.Load(envFiles...)
	return LoadFromEnv()
}

// LoadFromEnv loads all configuration from environment variables.
func LoadFromEnv() Config {
	return Config{
		Server:  LoadServerConfigFromEnv(),
		Logger:  LoadLoggerConfigFromEnv(),
		Auth:    LoadAuthConfigFromEnv(),
		Storage: LoadStorageConfigFromEnv(),
		CORS: CORSConfig{
			AllowedOrigins: GetEnvList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		},
		GinMode: GetEnv("GIN_MODE", "release"),
	}
}

// Validate validates all configuration.
func (c Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("server config validation failed: %w", err)
	}

	if err := c.Logger.Validate(); err != nil {
		return fmt.Errorf("logger config validation failed: %w", err)
	}

	if err := c.Auth.Validate(); err != nil {
		return fmt.Errorf("auth config validation failed: %w", err)
	}

	if err := c.Storage.Validate(); err != nil {
		return fmt.Errorf("storage config validation failed: %w", err)
	}

	validGinModes := map[string]bool{
		"debug":   true,
		"release": true,
		"test":    true,
	}
	if !validGinModes[c.GinMode] {
		return fmt.Errorf("invalid GIN_MODE: %s (must be: debug, release, test)", c.GinMode)
	}

	return nil
}

// IsDevelopment reports whether internal error details may be exposed to clients.
func (c Config) IsDevelopment() bool {
	return c.GinMode == "debug"
}
