package config

import (
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// minSecretLength is the shortest accepted HMAC signing secret.
const minSecretLength = 16

// AuthConfig holds authentication configuration.
type AuthConfig struct {
	// JWTSecret signs and verifies bearer tokens (HS256).
	JWTSecret string
	// TokenTTL is the lifetime of an issued token.
	TokenTTL time.Duration
	// BcryptCost is the bcrypt work factor for stored passwords.
	BcryptCost int
}

// LoadAuthConfigFromEnv loads auth configuration from environment variables.
func LoadAuthConfigFromEnv() AuthConfig {
	return AuthConfig{
		JWTSecret:  GetEnv("JWT_SECRET", ""),
		TokenTTL:   GetEnvDuration("JWT_TTL", time.Hour),
		BcryptCost: GetEnvInt("BCRYPT_COST", bcrypt.DefaultCost),
	}
}

// Validate validates auth configuration.
func (c AuthConfig) Validate() error {
	if len(c.JWTSecret) < minSecretLength {
		return fmt.Errorf("JWT_SECRET must be at least %d characters", minSecretLength)
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be greater than 0")
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	return nil
}
