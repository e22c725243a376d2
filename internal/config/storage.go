package config

import "fmt"

// StorageConfig holds S3-compatible object storage configuration.
type StorageConfig struct {
	// Enabled turns image uploads on; when false upload endpoints answer 503.
	Enabled bool
	// Endpoint overrides the S3 endpoint (R2, MinIO). Empty means AWS.
	Endpoint string
	// Region is the signing region ("auto" for R2).
	Region string
	// Bucket receives uploaded objects.
	Bucket string
	// AccessKeyID and SecretAccessKey are static credentials.
	AccessKeyID     string
	SecretAccessKey string
	// PublicBaseURL prefixes object keys to build public URLs.
	PublicBaseURL string
}

// LoadStorageConfigFromEnv loads storage configuration from environment variables.
func LoadStorageConfigFromEnv() StorageConfig {
	return StorageConfig{
		Enabled:         GetEnvBool("STORAGE_ENABLED", false),
		Endpoint:        GetEnv("S3_ENDPOINT", ""),
		Region:          GetEnv("S3_REGION", "auto"),
		Bucket:          GetEnv("S3_BUCKET", ""),
		AccessKeyID:     GetEnv("S3_ACCESS_KEY_ID", ""),
		SecretAccessKey: GetEnv("S3_SECRET_ACCESS_KEY", ""),
		PublicBaseURL:   GetEnv("S3_PUBLIC_BASE_URL", ""),
	}
}

// Validate validates storage configuration. Disabled storage is always valid.
func (c StorageConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.Bucket == "" {
		return fmt.Errorf("S3_BUCKET is required when storage is enabled")
	}
	if c.AccessKeyID == "" || c.SecretAccessKey == "" {
		return fmt.Errorf("S3 credentials are required when storage is enabled")
	}
	if c.PublicBaseURL == "" {
		return fmt.Errorf("S3_PUBLIC_BASE_URL is required when storage is enabled")
	}
	return nil
}
