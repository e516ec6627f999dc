package config

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"SERVER_PORT", "JWT_SECRET_KEY", "JWT_EXPIRATION_HOURS", "LOG_LEVEL", "GIN_MODE",
		"STORAGE_BACKEND", "UPLOADS_DIR", "S3_BUCKET", "S3_REGION", "S3_ENDPOINT",
		"S3_ACCESS_KEY", "S3_SECRET_KEY", "S3_PUBLIC_BASE_URL",
		"SMTP_HOST", "SMTP_PORT", "SMTP_USER", "SMTP_PASSWORD", "SMTP_FROM",
		"DATABASE_URL", "DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SSLMODE",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadAppConfig_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET_KEY", "secret")

	cfg, err := LoadAppConfig()

	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, int64(24), cfg.JWTExpirationHours)
	assert.Equal(t, StorageDisk, cfg.StorageBackend)
	assert.Equal(t, "uploads", cfg.UploadsDir)
	assert.Equal(t, "587", cfg.SMTP.Port)
	assert.False(t, cfg.SMTPEnabled())
}

func TestLoadAppConfig_MissingSecret(t *testing.T) {
	clearEnv(t)

	_, err := LoadAppConfig()

	assert.ErrorContains(t, err, "JWT_SECRET_KEY")
}

func TestLoadAppConfig_InvalidExpiryFallsBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET_KEY", "secret")
	t.Setenv("JWT_EXPIRATION_HOURS", "soon")

	cfg, err := LoadAppConfig()

	require.NoError(t, err)
	assert.Equal(t, int64(24), cfg.JWTExpirationHours)
}

func TestLoadAppConfig_S3(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET_KEY", "secret")
	t.Setenv("STORAGE_BACKEND", "S3")

	_, err := LoadAppConfig()
	require.Error(t, err, "bucket is required")

	t.Setenv("S3_BUCKET", "media")
	t.Setenv("S3_PUBLIC_BASE_URL", "https://cdn.example.com")
	t.Setenv("S3_ENDPOINT", "http://minio:9000")
	t.Setenv("SMTP_HOST", "smtp.example.com")

	cfg, err := LoadAppConfig()
	require.NoError(t, err)
	assert.Equal(t, StorageS3, cfg.StorageBackend)
	assert.Equal(t, "media", cfg.S3.Bucket)
	assert.Equal(t, "http://minio:9000", cfg.S3.Endpoint)
	assert.True(t, cfg.SMTPEnabled())
}

func TestLoadAppConfig_Rejects(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET_KEY", "secret")

	t.Setenv("STORAGE_BACKEND", "ftp")
	_, err := LoadAppConfig()
	assert.ErrorContains(t, err, "unknown STORAGE_BACKEND")

	t.Setenv("STORAGE_BACKEND", "")
	t.Setenv("SMTP_PORT", "smtp")
	_, err = LoadAppConfig()
	assert.ErrorContains(t, err, "invalid SMTP_PORT")
}

func TestLoadDBConfig(t *testing.T) {
	clearEnv(t)

	_, err := LoadDBConfig()
	assert.Error(t, err)

	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_PORT", "5432")
	t.Setenv("DB_USER", "market")
	t.Setenv("DB_PASSWORD", "pw")
	t.Setenv("DB_NAME", "marketplace")
	cfg, err := LoadDBConfig()
	require.NoError(t, err)
	assert.Equal(t, "host=localhost port=5432 user=market password=pw dbname=marketplace sslmode=disable", cfg.DSN)

	t.Setenv("DATABASE_URL", "postgres://market:pw@db:5432/marketplace")
	cfg, err = LoadDBConfig()
	require.NoError(t, err)
	assert.Equal(t, "postgres://market:pw@db:5432/marketplace", cfg.DSN)
}

func TestConnectDB_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ConnectDB(ctx, &DBConfig{DSN: "host=127.0.0.1 port=1 user=x dbname=x sslmode=disable connect_timeout=1"})

	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunMigrations(t *testing.T) {
	orig := gooseUp
	t.Cleanup(func() { gooseUp = orig })

	var gotDir string
	gooseUp = func(_ context.Context, _ *sql.DB, dir string) error {
		gotDir = dir
		return nil
	}
	require.NoError(t, runMigrations(context.Background(), nil))
	assert.Equal(t, ".", gotDir)

	gooseUp = func(context.Context, *sql.DB, string) error { return errors.New("dirty database") }
	assert.ErrorContains(t, runMigrations(context.Background(), nil), "unable to apply migrations")
}
