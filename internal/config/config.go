package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"marketplace/internal/media"
	"marketplace/internal/notify"

	"github.com/rs/zerolog/log"
)

const (
	StorageDisk = "disk"
	StorageS3   = "s3"
)

// AppConfig holds everything main needs besides the database
type AppConfig struct {
	ServerPort         string
	JWTSecret          string
	JWTExpirationHours int64
	LogLevel           string
	GinMode            string

	StorageBackend string
	UploadsDir     string
	S3             media.S3Config

	// SMTP.Host is empty when welcome messages should only be logged
	SMTP notify.SMTPConfig
}

// SMTPEnabled reports whether an SMTP relay is configured
func (c *AppConfig) SMTPEnabled() bool {
	return c.SMTP.Host != ""
}

// LoadAppConfig loads application configuration from environment variables
func LoadAppConfig() (*AppConfig, error) {
	cfg := &AppConfig{
		ServerPort:     getEnv("SERVER_PORT", "8080"),
		JWTSecret:      os.Getenv("JWT_SECRET_KEY"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		GinMode:        os.Getenv("GIN_MODE"),
		StorageBackend: strings.ToLower(getEnv("STORAGE_BACKEND", StorageDisk)),
		UploadsDir:     getEnv("UPLOADS_DIR", "uploads"),
		S3: media.S3Config{
			Bucket:        os.Getenv("S3_BUCKET"),
			Region:        getEnv("S3_REGION", "us-east-1"),
			Endpoint:      os.Getenv("S3_ENDPOINT"),
			AccessKey:     os.Getenv("S3_ACCESS_KEY"),
			SecretKey:     os.Getenv("S3_SECRET_KEY"),
			PublicBaseURL: os.Getenv("S3_PUBLIC_BASE_URL"),
		},
		SMTP: notify.SMTPConfig{
			Host:     os.Getenv("SMTP_HOST"),
			Username: os.Getenv("SMTP_USER"),
			Password: os.Getenv("SMTP_PASSWORD"),
			Port:     getEnv("SMTP_PORT", "587"),
			From:     getEnv("SMTP_FROM", "no-reply@marketplace.local"),
		},
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET_KEY not set in environment")
	}

	jwtExpHours, err := strconv.ParseInt(getEnv("JWT_EXPIRATION_HOURS", "24"), 10, 64)
	if err != nil || jwtExpHours <= 0 {
		log.Warn().Str("value", os.Getenv("JWT_EXPIRATION_HOURS")).Msg("Invalid JWT_EXPIRATION_HOURS, defaulting to 24")
		jwtExpHours = 24
	}
	cfg.JWTExpirationHours = jwtExpHours

	if _, err := strconv.Atoi(cfg.SMTP.Port); err != nil {
		return nil, fmt.Errorf("invalid SMTP_PORT: %w", err)
	}

	switch cfg.StorageBackend {
	case StorageDisk:
	case StorageS3:
		if cfg.S3.Bucket == "" || cfg.S3.PublicBaseURL == "" {
			return nil, fmt.Errorf("S3_BUCKET and S3_PUBLIC_BASE_URL are required when STORAGE_BACKEND=s3")
		}
	default:
		return nil, fmt.Errorf("unknown STORAGE_BACKEND %q (use %s or %s)", cfg.StorageBackend, StorageDisk, StorageS3)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
