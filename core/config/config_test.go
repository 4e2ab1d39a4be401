package config_test

import (
	"testing"

	"model-fetcher/core/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := config.LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, "s3.amazonaws.com", cfg.S3.Endpoint)
	assert.True(t, cfg.S3.UseSSL)
	assert.Equal(t, 30, cfg.S3.TimeoutSeconds)
	assert.Equal(t, 120, cfg.HTTP.TimeoutSeconds)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.False(t, cfg.Azure.HasServicePrincipal())
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("S3_ENDPOINT", "minio.internal:9000")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("AZURE_TENANT_ID", "tenant")
	t.Setenv("AZURE_CLIENT_ID", "client")
	t.Setenv("AZURE_CLIENT_SECRET", "secret")

	cfg, err := config.LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "minio.internal:9000", cfg.S3.Endpoint)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Azure.HasServicePrincipal())
}
